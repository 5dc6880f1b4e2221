package splitjoberrors

import (
	"github.com/veedubyou/vocal-split/src/server/internal/errors/api"
)

const (
	BadSplitRequestCode = api.ErrorCode("bad_split_request")
)
