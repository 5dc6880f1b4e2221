package cerr

import (
	"github.com/apex/log"
	"github.com/cockroachdb/errors"
)

// F is a set of fields attached to an error for logging
type F = map[string]any

// Context accumulates fields and an optional cause before an error is committed with Error
type Context struct {
	fields  F
	wrapped error
}

func Field(key string, value any) Context {
	return Context{}.Field(key, value)
}

func Fields(fields F) Context {
	return Context{}.Fields(fields)
}

func Wrap(err error) Context {
	return Context{}.Wrap(err)
}

func Error(msg string) error {
	return Context{}.commit(msg)
}

func (c Context) Field(key string, value any) Context {
	return c.Fields(F{key: value})
}

func (c Context) Fields(fields F) Context {
	merged := F{}
	for k, v := range c.fields {
		merged[k] = v
	}

	for k, v := range fields {
		merged[k] = v
	}

	return Context{
		fields:  merged,
		wrapped: c.wrapped,
	}
}

func (c Context) Wrap(err error) Context {
	return Context{
		fields:  c.fields,
		wrapped: err,
	}
}

func (c Context) Error(msg string) error {
	return c.commit(msg)
}

func (c Context) commit(msg string) error {
	var err error
	if c.wrapped != nil {
		err = errors.WrapWithDepth(2, c.wrapped, msg)
	} else {
		err = errors.NewWithDepth(2, msg)
	}

	if len(c.fields) == 0 {
		return err
	}

	return &fieldsError{
		cause:  err,
		fields: c.fields,
	}
}

type fieldsError struct {
	cause  error
	fields F
}

func (f *fieldsError) Error() string {
	return f.cause.Error()
}

func (f *fieldsError) Cause() error {
	return f.cause
}

func (f *fieldsError) Unwrap() error {
	return f.cause
}

// CollectFields gathers every field attached along the cause chain.
// Outer fields win over inner ones with the same key.
func CollectFields(err error) log.Fields {
	chain := []error{}
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		chain = append(chain, e)
	}

	fields := log.Fields{}
	for i := len(chain) - 1; i >= 0; i-- {
		if fe, ok := chain[i].(*fieldsError); ok {
			for k, v := range fe.fields {
				fields[k] = v
			}
		}
	}

	return fields
}

func Log(err error) {
	if err == nil {
		return
	}

	log.WithFields(CollectFields(err)).
		WithError(err).
		Error(err.Error())
}
