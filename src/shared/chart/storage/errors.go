package chartstorage

import "github.com/cockroachdb/errors"

var (
	ReadMark         = errors.New("chart_registry_read_fail")
	UnmarshalMark    = errors.New("chart_unmarshal_fail")
	MarshalMark      = errors.New("chart_marshal_fail")
	DefaultErrorMark = errors.New("default_error")
)
