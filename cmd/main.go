package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lightbulb/internal/handlers"
	"lightbulb/internal/led"
	"lightbulb/internal/logger"
	"lightbulb/internal/models"
	"lightbulb/internal/repository"
	"lightbulb/internal/repository/db"
	"lightbulb/internal/server"
	"lightbulb/internal/service"
	"lightbulb/internal/wakeword"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// wakeScene is activated when a wake word is detected.
const wakeScene = "idea"

// @title           Lightbulb API
// @version         1.0
// @description     REST API for an addressable LED strip with scenes, animation and wake word detection.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// load config.yml first so the log level is configurable
	cfgErr := loadConfig()

	log := logger.Get(viper.GetString("log.level"))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)

	controller := led.NewController(led.Config{
		LEDCount:   viper.GetInt("led.count"),
		Brightness: viper.GetInt("led.brightness"),
	}, nil, log) // nil sink: simulation mode

	restoreSettings(repos, controller, log)

	listener := newWakeWordListener(repos, controller, log)

	services := service.NewService(repos, controller, listener)
	apiHandler := handlers.NewHandler(services, log)

	logEvent(repos, log, models.EventStart, "Lightbulb started")

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, listener, controller, repos, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "lightbulb.db")
		dbPath = "lightbulb.db"
	}
	return db.InitDB(dbPath)
}

// restoreSettings re-applies the persisted brightness and scene so the strip
// comes back with its last look.
func restoreSettings(repos *repository.Repository, controller *led.Controller, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings, err := repos.SettingsRepo.Load(ctx)
	if err != nil {
		log.Errorw("failed to load strip settings", "err", err)
		return
	}
	if settings.ID == 0 {
		return // nothing persisted yet
	}

	if err := controller.SetBrightness(settings.Brightness); err != nil {
		log.Errorw("failed to restore brightness", "err", err, "level", settings.Brightness)
	}
	if settings.ActiveScene != "" {
		if err := controller.ApplyScene(settings.ActiveScene); err != nil {
			log.Errorw("failed to restore scene", "err", err, "scene", settings.ActiveScene)
		}
	}
	log.Infow("restored strip settings", "brightness", settings.Brightness, "scene", settings.ActiveScene)
}

// newWakeWordListener wires and starts the detection pipeline when enabled.
// Returns nil when the feature is off or the pipeline fails to start; the
// rest of the app keeps running either way.
func newWakeWordListener(repos *repository.Repository, controller *led.Controller, log *logger.Logger) *wakeword.Listener {
	if !viper.GetBool("wake_word.enabled") {
		return nil
	}

	cfg := wakeword.Config{
		ModelPath:   viper.GetString("wake_word.model_path"),
		Threshold:   viper.GetFloat64("wake_word.threshold"),
		Cooldown:    time.Duration(viper.GetFloat64("wake_word.cooldown_seconds") * float64(time.Second)),
		SampleRate:  viper.GetInt("audio.sample_rate"),
		ChunkFrames: viper.GetInt("audio.chunk_frames"),
		DeviceIndex: viper.GetInt("audio.device_index"),
	}

	listener := wakeword.NewListener(cfg, wakeword.NewSimSource(), wakeword.LoadSimScorer, log)
	listener.SetCallback(func(d wakeword.Detection) {
		log.Infow("wake word detected", "model", d.Model, "score", d.Score)
		if err := controller.ApplyScene(wakeScene); err != nil {
			log.Errorw("failed to apply wake scene", "err", err, "scene", wakeScene)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := repos.EventRepo.Append(ctx, models.StripEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  d.At.UTC(),
			Type:        models.EventWakeWord,
			Description: "Wake word detected: " + d.Model,
			Metadata:    map[string]any{"model": d.Model, "score": d.Score},
		})
		if err != nil {
			log.Errorw("failed to log wake word event", "err", err)
		}
	})

	if err := listener.Start(); err != nil {
		log.Errorw("wake word pipeline failed to start", "err", err)
		return nil
	}
	log.Infow("wake word pipeline running", "model", cfg.ModelPath, "threshold", cfg.Threshold)
	return listener
}

// logEvent appends a lifecycle event, best-effort.
func logEvent(repos *repository.Repository, log *logger.Logger, typ, msg string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repos.EventRepo.Append(ctx, models.StripEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: msg,
	}); err != nil {
		log.Errorw("failed to log lifecycle event", "err", err, "type", typ)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown:
// stop the listener, park the strip, then drain HTTP.
func waitForShutdown(srv *server.Server, listener *wakeword.Listener, controller *led.Controller, repos *repository.Repository, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down...")

	if listener != nil {
		listener.Stop()
	}
	controller.Shutdown()

	logEvent(repos, log, models.EventStop, "Lightbulb stopped")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
