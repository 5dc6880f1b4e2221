package gateway

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/veedubyou/vocal-split/src/server/api_error"
	"github.com/veedubyou/vocal-split/src/server/internal/chart/errors"
	"github.com/veedubyou/vocal-split/src/server/internal/errors/api"
	"github.com/veedubyou/vocal-split/src/server/internal/split/errors"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
)

var httpStatusCodeMap = map[api.ErrorCode]int{
	api.DefaultErrorCode:               http.StatusInternalServerError,
	charterrors.ChartNotFoundCode:      http.StatusNotFound,
	charterrors.BadDurationCode:        http.StatusBadRequest,
	charterrors.InvalidTempoCode:       http.StatusUnprocessableEntity,
	splitjoberrors.BadSplitRequestCode: http.StatusBadRequest,
}

func ErrorResponse(c echo.Context, err *api.Error) error {
	statusCode, ok := httpStatusCodeMap[err.ErrorCode]
	if !ok {
		msg := fmt.Sprintf("Error code %s has no HTTP status code mapping", err.ErrorCode)
		panic(msg)
	}

	if statusCode >= http.StatusInternalServerError {
		cerr.Log(err)
	}

	return c.JSON(statusCode, api_error.JSONAPIError{
		Code:         string(err.ErrorCode),
		Msg:          err.UserMessage,
		ErrorDetails: err.Error(),
	})
}
