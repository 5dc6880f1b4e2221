package jsonlib

import (
	"reflect"
	"strings"
)

// omitEmptyKeys lists the json keys of struct fields tagged omitempty.
// Without it, a null or zero value for such a key would leak into Extra.
func omitEmptyKeys(v any) []string {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	keys := []string{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			keys = append(keys, omitEmptyKeys(reflect.Zero(field.Type).Interface())...)
			continue
		}

		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "" || !strings.Contains(","+opts+",", ",omitempty,") {
			continue
		}

		keys = append(keys, name)
	}

	return keys
}
