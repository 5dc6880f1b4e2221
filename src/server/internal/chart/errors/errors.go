package charterrors

import (
	"github.com/veedubyou/vocal-split/src/server/internal/errors/api"
)

const (
	ChartNotFoundCode = api.ErrorCode("chart_not_found")
	BadDurationCode   = api.ErrorCode("bad_duration")
	InvalidTempoCode  = api.ErrorCode("invalid_tempo")
)
