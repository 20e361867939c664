package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dearbird/muddery/internal/api"
	"github.com/dearbird/muddery/internal/config"
	"github.com/dearbird/muddery/internal/constants"
	"github.com/dearbird/muddery/internal/logging"
	"github.com/dearbird/muddery/internal/registry"
	"github.com/dearbird/muddery/internal/storage"
)

// endedEncounterRetention is how long finished encounters stay queryable so
// clients can drain their final notifications.
const endedEncounterRetention = 2 * time.Minute

func main() {
	// Load the world configuration file (required). Path may be provided
	// via MUDDERY_CONFIG or defaults to ./muddery_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvMudderyConfig)
	if configPath == "" {
		configPath = "./muddery_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid muddery configuration", err, logging.Fields{"config_path": configPath, "hint": "create a muddery_config.json with 'skill_list' and 'character_list' arrays and optional keys: server.address, default_timeout_seconds"})
	}

	// Allow the DB path to be configured via MUDDERY_DB. Default to a
	// `data/` directory for local development.
	dbPath := os.Getenv(constants.EnvMudderyDB)
	if dbPath == "" {
		dbPath = "./data/muddery.db"
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg.Skills, cfg.Characters)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	reg := registry.New(repo, cfg.DefaultTimeoutSeconds)
	handler := api.NewEncounterHandler(reg, repo)

	// Background sweeper: forget ended encounters once their clients had a
	// chance to drain the final events.
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if n := reg.Sweep(endedEncounterRetention); n > 0 {
				logging.Info("swept ended encounters", logging.Fields{"count": n})
			}
		}
	}()

	router := gin.Default()

	router.GET(constants.RouteHealthz, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
	})

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteCharacters, handler.ListCharacters)
		apiRoutes.GET(constants.RouteSkills, handler.ListSkills)

		apiRoutes.POST(constants.RouteEncounters, handler.CreateEncounter)
		apiRoutes.GET(constants.RouteEncounterByID, handler.GetEncounter)
		apiRoutes.POST(constants.RouteEncounterAction, handler.SubmitAction)
		apiRoutes.POST(constants.RouteEncounterEscape, handler.Escape)
		apiRoutes.POST(constants.RouteEncounterLeave, handler.Leave)
		apiRoutes.POST(constants.RouteEncounterEnd, handler.EndEncounter)
		apiRoutes.GET(constants.RouteEncounterEvents, handler.DrainEvents)

		apiRoutes.GET(constants.RouteVersion, api.Version)
	}

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
	}

	// Serve until interrupted; on shutdown every live encounter is
	// force-terminated so no actor is left holding combat state.
	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", err, nil)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.Info("Shutting down", nil)
	reg.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("HTTP server shutdown failed", err, nil)
	}
}
