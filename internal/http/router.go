package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "recap/backend/docs"
	"recap/backend/internal/handler"
)

func NewRouter(
	generateHandler *handler.GenerateHandler,
	summaryHandler *handler.SummaryHandler,
	emailHandler *handler.EmailHandler,
	transcriptHandler *handler.TranscriptHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	generateHandler.RegisterRoutes(api)
	summaryHandler.RegisterRoutes(api)
	emailHandler.RegisterRoutes(api)
	transcriptHandler.RegisterRoutes(api)

	return e
}
