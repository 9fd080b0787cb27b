// Command mood-recommender runs the mood song recommender web application.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
	"github.com/justestif/go-mood-song-recommender/internal/config"
	"github.com/justestif/go-mood-song-recommender/internal/db"
	"github.com/justestif/go-mood-song-recommender/internal/logging"
	"github.com/justestif/go-mood-song-recommender/internal/media"
	"github.com/justestif/go-mood-song-recommender/internal/mood"
	"github.com/justestif/go-mood-song-recommender/internal/recommend"
	"github.com/justestif/go-mood-song-recommender/internal/web"
	webfs "github.com/justestif/go-mood-song-recommender/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// The service cannot answer anything without a classifier.
	predictor, err := mood.LoadPredictor(cfg.ModelPath, cfg.EncoderPath)
	if err != nil {
		return err
	}
	logger.Info("classifier loaded",
		zap.String("model", cfg.ModelPath),
		zap.Strings("moods", predictor.Labels()))

	songs, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}
	if err := songs.Covers(predictor.Labels()); err != nil {
		return fmt.Errorf("checking catalog: %w", err)
	}

	assets, err := media.NewStore(cfg.AssetRoot)
	if err != nil {
		return fmt.Errorf("opening asset root: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	report, err := media.Audit(ctx, songs, assets)
	cancel()
	if err != nil {
		return fmt.Errorf("auditing assets: %w", err)
	}
	report.Log(logger)

	service := recommend.NewService(
		predictor,
		recommend.NewSampler(songs, recommend.WithSampleSize(cfg.SampleSize)),
		media.NewResolver(assets, cfg.Placeholder, logger),
		logger,
	)

	// Create sub-filesystems for templates and static files
	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	// Create and start server
	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		TemplatesFS: templates,
		StaticFS:    static,
		Assets:      assets,
		Recommender: service,
		BaseURL:     cfg.BaseURL(),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}

// loadCatalog reads the song catalog from Postgres when a database URL is
// configured and falls back to the built-in catalog otherwise.
func loadCatalog(cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("using built-in catalog")
		return catalog.Default(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	songs, err := database.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	logger.Info("catalog loaded from database", zap.Strings("moods", moodNames(songs.Moods())))
	return songs, nil
}

func moodNames(moods []catalog.Mood) []string {
	names := make([]string, len(moods))
	for i, m := range moods {
		names[i] = string(m)
	}
	return names
}
