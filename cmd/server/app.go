package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/palime/palime-api/internal/api"
	"github.com/palime/palime-api/internal/config"
	"github.com/palime/palime-api/internal/domain/srs"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/platform/sqlite"
	"github.com/palime/palime-api/internal/service"
)

// application holds the composed dependencies of a running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	itemService   service.ItemService
	deckService   service.DeckService
	studyService  service.StudyService
	exportService service.ExportService
}

// initializeApp loads configuration, opens and migrates the database, and
// wires the service graph.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_path", cfg.Database.Path))

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := sqlite.MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database ready", slog.Int("schema_version", sqlite.SchemaVersion))

	itemStore := sqlite.NewItemStore(db, log)
	reviewStore := sqlite.NewReviewStore(db, log)
	deckStore := sqlite.NewDeckStore(db, log)
	snapshotStore := sqlite.NewSnapshotStore(db, log)

	scheduler := srs.NewServiceWithParams(srs.Params{
		FirstInterval: srs.DefaultParams().FirstInterval,
		MaxInterval:   cfg.Study.MaxIntervalDays,
		EasePenalty:   cfg.Study.EasePenalty,
		MinEase:       srs.DefaultParams().MinEase,
	})

	return &application{
		config:        cfg,
		logger:        log,
		db:            db,
		itemService:   service.NewItemService(db, itemStore, reviewStore, deckStore, log),
		deckService:   service.NewDeckService(deckStore, log),
		studyService:  service.NewStudyService(db, reviewStore, deckStore, scheduler, log),
		exportService: service.NewExportService(db, snapshotStore, sqlite.SchemaVersion, log),
	}, nil
}

// router builds the HTTP router over the application's handlers.
func (app *application) router() *api.Handlers {
	return &api.Handlers{
		Items:  api.NewItemHandler(app.itemService, app.logger),
		Decks:  api.NewDeckHandler(app.deckService, app.logger),
		Study:  api.NewStudyHandler(app.studyService, app.logger),
		Export: api.NewExportHandler(app.exportService, app.logger),
	}
}

// cleanup releases the application's resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
