package chartgateway

import (
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/veedubyou/vocal-split/src/server/internal/chart/errors"
	"github.com/veedubyou/vocal-split/src/server/internal/chart/usecase"
	"github.com/veedubyou/vocal-split/src/server/internal/errors/api"
	"github.com/veedubyou/vocal-split/src/server/internal/errors/gateway"
)

type Gateway struct {
	usecase chartusecase.Usecase
}

func NewGateway(usecase chartusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

func (g Gateway) GetTimeline(c echo.Context, songKey string) error {
	durationParam := c.QueryParam("duration_ms")

	durationMs, err := strconv.ParseFloat(durationParam, 64)
	if err != nil {
		err = errors.Wrap(err, "Failed to parse duration_ms query param")
		apiErr := api.CommitError(err,
			charterrors.BadDurationCode,
			"The duration_ms query param must be a number of milliseconds")
		return gateway.ErrorResponse(c, apiErr)
	}

	preview, apiErr := g.usecase.Timeline(songKey, durationMs)
	if apiErr != nil {
		apiErr = api.WrapError(apiErr, "Failed to get timeline")
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, preview)
}
