// Command catalog-seed writes the built-in song catalog to PostgreSQL.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
	"github.com/justestif/go-mood-song-recommender/internal/config"
	"github.com/justestif/go-mood-song-recommender/internal/db"
	"github.com/justestif/go-mood-song-recommender/internal/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("catalog-seed", pflag.ContinueOnError)
	databaseURL := flags.String("database-url", os.Getenv(config.EnvPrefix+"_DATABASE_URL"), "PostgreSQL URL")
	replace := flags.Bool("replace", false, "delete existing songs first")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *databaseURL == "" {
		return fmt.Errorf("please set --database-url or %s_DATABASE_URL", config.EnvPrefix)
	}

	logger, err := logging.New("info", true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.New(ctx, *databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	songs := database.Songs()
	if *replace {
		if err := songs.DeleteAll(ctx); err != nil {
			return err
		}
	}

	records := catalog.Default().Records()
	if err := songs.UpsertBatch(ctx, records); err != nil {
		return err
	}

	logger.Info("catalog seeded", zap.Int("songs", len(records)), zap.Bool("replaced", *replace))
	return nil
}
