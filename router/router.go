package router

import (
	"github.com/labstack/echo/v4"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/middleware"
)

func New(
	e *echo.Echo,
	jwtSecret string,
	userCtrl interface {
		Register(echo.Context) error
		Login(echo.Context) error
	},
	cropCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	syncCtrl interface {
		Pull(echo.Context) error
		Push(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.POST("/user", userCtrl.Register)
	e.POST("/login", userCtrl.Login)

	api := e.Group("", middleware.JWT(jwtSecret))

	api.POST("/cultura", cropCtrl.Create)
	api.GET("/cultura", cropCtrl.List)
	api.GET("/cultura/:id", cropCtrl.Get)
	api.PUT("/cultura/:id", cropCtrl.Update)
	api.DELETE("/cultura/:id", cropCtrl.Delete)

	api.GET("/sync/pull", syncCtrl.Pull)
	api.POST("/sync/push", syncCtrl.Push)

	return e
}
