package jsonlib

import (
	"encoding/json"

	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
)

// Flatten decodes the keys T declares into Defined and keeps every other
// key of the object in Extra. T should be a struct or map[string].
// On encode, Defined wins over an Extra key of the same name.
type Flatten[T any] struct {
	Defined T
	Extra   map[string]any
}

func (f Flatten[T]) MarshalJSON() ([]byte, error) {
	outputMap := map[string]any{}

	for k, v := range f.Extra {
		outputMap[k] = v
	}

	definedFieldsMap, err := StructToMap(f.Defined)
	if err != nil {
		return nil, cerr.Wrap(err).Error("Could not convert defined fields into a map")
	}

	for k, v := range definedFieldsMap {
		outputMap[k] = v
	}

	return json.Marshal(outputMap)
}

func (f *Flatten[T]) UnmarshalJSON(b []byte) error {
	definedFieldsObj := *new(T)
	if err := json.Unmarshal(b, &definedFieldsObj); err != nil {
		return cerr.Wrap(err).Error("Could not unmarshal json data into defined fields")
	}

	objectMap := map[string]any{}
	if err := json.Unmarshal(b, &objectMap); err != nil {
		return cerr.Wrap(err).Error("Could not unmarshal json data into a map")
	}

	definedKeys, err := declaredKeys(definedFieldsObj)
	if err != nil {
		return cerr.Wrap(err).Error("Could not determine the defined keys")
	}

	extras := map[string]any{}
	for k, v := range objectMap {
		if !definedKeys[k] {
			extras[k] = v
		}
	}

	*f = Flatten[T]{
		Defined: definedFieldsObj,
		Extra:   extras,
	}

	return nil
}

func (f Flatten[T]) ToMap() (map[string]any, error) {
	return StructToMap(f)
}

func (f *Flatten[T]) FromMap(m map[string]any) error {
	newObj, err := MapToStruct[Flatten[T]](m)
	if err != nil {
		return cerr.Wrap(err).Error("Could not convert map to struct")
	}

	*f = newObj
	return nil
}

// declaredKeys is every key T would emit, including omitempty ones that are unset
func declaredKeys[T any](defined T) (map[string]bool, error) {
	keys := map[string]bool{}

	present, err := StructToMap(defined)
	if err != nil {
		return nil, err
	}

	for k := range present {
		keys[k] = true
	}

	for _, k := range omitEmptyKeys(defined) {
		keys[k] = true
	}

	return keys, nil
}

func StructToMap(s any) (map[string]any, error) {
	jsonBytes, err := json.Marshal(s)
	if err != nil {
		return nil, cerr.Wrap(err).Error("Could not marshal struct")
	}

	fieldsMap := map[string]any{}
	err = json.Unmarshal(jsonBytes, &fieldsMap)
	if err != nil {
		return nil, cerr.Wrap(err).Error("Could not unmarshal struct into a map")
	}

	return fieldsMap, nil
}

func MapToStruct[T any](m map[string]any) (T, error) {
	t := new(T)
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return *t, cerr.Wrap(err).Error("Could not marshal map")
	}

	err = json.Unmarshal(jsonBytes, t)
	if err != nil {
		return *t, cerr.Wrap(err).Error("Could not unmarshal json map to object")
	}

	return *t, nil
}
