package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/user/controller"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/user/repository"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/user/service"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/user/serviceImp"
)

type userCtrl struct{ svc service.UserService }

func New(svc service.UserService) controller.UserController { return &userCtrl{svc} }

type credsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *userCtrl) Register(c echo.Context) error {
	var req credsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Username == "" || len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username required, password must have at least 6 characters"})
	}
	u, err := h.svc.Register(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, repository.ErrConflict) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "username already exists"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *userCtrl) Login(c echo.Context) error {
	var req credsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	token, userID, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, serviceImp.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token, "user_id": userID})
}
