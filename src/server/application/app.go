package application

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/veedubyou/vocal-split/src/server/internal/chart/gateway"
	"github.com/veedubyou/vocal-split/src/server/internal/chart/usecase"
	"github.com/veedubyou/vocal-split/src/server/internal/split/gateway"
	"github.com/veedubyou/vocal-split/src/server/internal/split/usecase"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	chartstorage "github.com/veedubyou/vocal-split/src/shared/chart/storage"
	"github.com/veedubyou/vocal-split/src/shared/config"
	"github.com/veedubyou/vocal-split/src/shared/lib/rabbitmq"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
)

type HTTPMethod string

const (
	GET  HTTPMethod = "GET"
	POST HTTPMethod = "POST"
)

type App struct {
	echo      *echo.Echo
	port      string
	publisher *rabbitmq.QueuePublisher
}

type Config struct {
	ChartSource        config.ChartSource
	RabbitMQURL        string
	RabbitMQQueueName  string
	CORSAllowedOrigins []string
	CorrectedAnchors   bool
	Port               string
	Log                bool
}

// Deps are the pieces NewApp would otherwise connect to on its own
type Deps struct {
	Registry  chartentity.Registry
	Publisher rabbitmq.Publisher
}

func NewApp(config Config) App {
	registry := makeRegistry(config.ChartSource)
	publisher := makeRabbitMQPublisher(config)

	app := NewAppWithDeps(config, Deps{
		Registry:  registry,
		Publisher: publisher,
	})
	app.publisher = publisher

	return app
}

func NewAppWithDeps(config Config, deps Deps) App {
	e := echo.New()
	e.HideBanner = true

	if config.Log {
		e.Use(middleware.Logger())
	}

	e.Use(middleware.Recover())

	corsMiddleware := makeCorsMiddleware(config)

	handleRoute := func(method HTTPMethod, path string, handlerFunc echo.HandlerFunc) {
		params := func() (string, echo.HandlerFunc, echo.MiddlewareFunc) {
			return path, handlerFunc, corsMiddleware
		}

		e.OPTIONS(params())

		switch method {
		case GET:
			e.GET(params())
		case POST:
			e.POST(params())
		default:
			panic("unhandled http method!")
		}
	}

	chartGateway := makeChartGateway(config, deps.Registry)
	splitGateway := makeSplitGateway(deps.Publisher)

	// health check
	handleRoute(GET, "/health-check", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// chart routes
	handleRoute(GET, "/charts/:song_key/timeline", func(c echo.Context) error {
		songKey := c.Param("song_key")
		return chartGateway.GetTimeline(c, songKey)
	})

	// split routes
	handleRoute(POST, "/songs/:song_key/split", func(c echo.Context) error {
		songKey := c.Param("song_key")
		return splitGateway.EnqueueSplit(c, songKey)
	})

	return App{
		echo: e,
		port: config.Port,
	}
}

func (a *App) Handler() http.Handler {
	return a.echo
}

func (a *App) Start() error {
	err := a.echo.Start(a.port)
	if err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "Couldn't start echo server")
	}

	return nil
}

func (a *App) Stop() error {
	err := a.echo.Close()
	if err != nil {
		return errors.Wrap(err, "Failed to stop echo server")
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			return errors.Wrap(err, "Failed to close rabbitMQ publisher")
		}
	}

	return nil
}

func makeRegistry(chartSource config.ChartSource) chartentity.Registry {
	loader, closeLoader, err := chartstorage.NewLoader(chartSource)
	if err != nil {
		panic(errors.Wrap(err, "Failed to open chart registry"))
	}

	defer closeLoader()

	registry, err := chartentity.LoadRegistry(context.Background(), loader)
	if err != nil {
		panic(errors.Wrap(err, "Failed to load chart registry"))
	}

	return registry
}

func makeRabbitMQPublisher(config Config) *rabbitmq.QueuePublisher {
	publisher, err := rabbitmq.NewQueuePublisher(config.RabbitMQURL, config.RabbitMQQueueName)
	if err != nil {
		panic(errors.Wrap(err, "Failed to create rabbitMQ publisher"))
	}

	return publisher
}

func makeChartGateway(config Config, registry chartentity.Registry) chartgateway.Gateway {
	anchorMode := timeline.ParseAnchorMode(config.CorrectedAnchors)
	return chartgateway.NewGateway(chartusecase.NewUsecase(registry, anchorMode))
}

func makeSplitGateway(publisher rabbitmq.Publisher) splitgateway.Gateway {
	return splitgateway.NewGateway(splitusecase.NewUsecase(publisher))
}

func makeCorsMiddleware(config Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: config.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderContentType},
	})
}
