package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/controller"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/service"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/types"
)

type syncCtrl struct{ svc service.SyncService }

func New(svc service.SyncService) controller.SyncController { return &syncCtrl{svc} }

// Pull handles GET /sync/pull?last_pulled_at=<epoch-seconds>. An absent
// parameter means full initial sync and is not the same as zero.
func (h *syncCtrl) Pull(c echo.Context) error {
	uid, _ := c.Get("uid").(string)

	var lastPulledAt *int64
	if raw := c.QueryParam("last_pulled_at"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "last_pulled_at must be epoch seconds"})
		}
		lastPulledAt = &v
	}

	resp, err := h.svc.Pull(c.Request().Context(), uid, lastPulledAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// Push handles POST /sync/push with the per-collection change envelope.
func (h *syncCtrl) Push(c echo.Context) error {
	uid, _ := c.Get("uid").(string)

	var changes types.Changes
	if err := c.Bind(&changes); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	resp, err := h.svc.Push(c.Request().Context(), uid, changes)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}
