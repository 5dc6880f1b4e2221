package splitgateway

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/veedubyou/vocal-split/src/server/internal/errors/api"
	"github.com/veedubyou/vocal-split/src/server/internal/errors/gateway"
	"github.com/veedubyou/vocal-split/src/server/internal/lib/request"
	"github.com/veedubyou/vocal-split/src/server/internal/split/errors"
	"github.com/veedubyou/vocal-split/src/server/internal/split/usecase"
)

type Gateway struct {
	usecase splitusecase.Usecase
}

func NewGateway(usecase splitusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

func (g Gateway) EnqueueSplit(c echo.Context, songKey string) error {
	ctx := request.Context(c)

	splitRequest := splitusecase.SplitRequest{}
	err := c.Bind(&splitRequest)
	if err != nil {
		err = errors.Wrap(err, "Failed to bind request body to split request")
		apiErr := api.CommitError(err,
			splitjoberrors.BadSplitRequestCode,
			"The split request was malformed")
		return gateway.ErrorResponse(c, apiErr)
	}

	job, apiErr := g.usecase.EnqueueSplit(ctx, songKey, splitRequest)
	if apiErr != nil {
		apiErr = api.WrapError(apiErr, "Failed to enqueue split")
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusAccepted, job)
}
