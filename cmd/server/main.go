package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/config"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/database"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/router"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/catalog"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/climate"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/weather"

	cropCtrlImp "github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/controllerImp"
	cropRepoImp "github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/repositoryImp"
	cropSvcImp "github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/serviceImp"

	syncCtrlImp "github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/controllerImp"
	syncSvcImp "github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/serviceImp"

	userCtrlImp "github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/user/controllerImp"
	userRepoImp "github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/user/repositoryImp"
	userSvcImp "github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/user/serviceImp"

	healthCtrlImp "github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()
	loc := cfg.Location()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// 4) Species tolerance presets (optional files)
	presets, err := catalog.LoadFromFiles(cfg.CatalogCSV, cfg.CatalogXLSX)
	if err != nil {
		log.Printf("catalog warn: %v", err)
		presets, _ = catalog.LoadFromFiles("", "")
	}

	// 5) Climate data source (mock fallback for offline runs)
	var climateClient climate.Client
	if cfg.ClimateMock {
		climateClient = climate.NewMock()
	} else {
		climateClient = climate.NewOpenMeteo(cfg.ClimateBaseURL, cfg.Timezone, cfg.ClimateTimeout)
	}

	// 6) Repos/Services
	cropRepo := cropRepoImp.New(db)
	userRepo := userRepoImp.New(db)
	refreshSvc := weather.NewRefreshService(climateClient, cropRepo, loc)
	cropSvc := cropSvcImp.New(cropRepo, refreshSvc, presets)
	syncSvc := syncSvcImp.New(cropRepo, refreshSvc, loc)
	userSvc := userSvcImp.New(userRepo, cfg.JWTSecret, cfg.JWTTTL)

	// 7) Controllers
	cropCtrl := cropCtrlImp.New(cropSvc)
	syncCtrl := syncCtrlImp.New(syncSvc)
	userCtrl := userCtrlImp.New(userSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 8) Router
	r := router.New(e, cfg.JWTSecret, userCtrl, cropCtrl, syncCtrl, hCtrl)

	// 9) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
