package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/controller"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/repository"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/service"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/serviceImp"
)

type cropCtrl struct{ svc service.CropService }

func New(svc service.CropService) controller.CropController { return &cropCtrl{svc} }

type cropReq struct {
	ID             string            `json:"id"`
	Name           string            `json:"nome_cultivo"`
	Location       entities.Location `json:"ponto_cultivo"`
	TemperatureMax float64           `json:"temperatura_max"`
	RainfallMax    float64           `json:"pluviometria_max"`
	TemperatureMin float64           `json:"temperatura_min"`
	RainfallMin    float64           `json:"pluviometria_min"`
}

func (r cropReq) toNewCrop() service.NewCrop {
	return service.NewCrop{
		ID:             r.ID,
		Name:           r.Name,
		Location:       r.Location,
		TemperatureMin: r.TemperatureMin,
		TemperatureMax: r.TemperatureMax,
		RainfallMin:    r.RainfallMin,
		RainfallMax:    r.RainfallMax,
	}
}

func (h *cropCtrl) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if len(req.Name) < 4 || len(req.Name) > 30 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "nome_cultivo must be between 4 and 30 characters"})
	}
	crop, err := h.svc.Create(c.Request().Context(), uid, req.toNewCrop())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, crop)
}

func (h *cropCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	out, err := h.svc.List(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *cropCtrl) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	crop, err := h.svc.Get(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, crop)
}

func (h *cropCtrl) Update(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	crop, err := h.svc.Update(c.Request().Context(), uid, c.Param("id"), req.toNewCrop())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, crop)
}

func (h *cropCtrl) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if err := h.svc.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// jsonError hides ownership mismatches behind 404 so crop ids of other users
// cannot be probed.
func jsonError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, serviceImp.ErrNotOwner) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
