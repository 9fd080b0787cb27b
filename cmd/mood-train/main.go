// Command mood-train fits the mood classifier from a labelled CSV dataset
// and writes the model and label decoder artifacts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/justestif/go-mood-song-recommender/internal/logging"
	"github.com/justestif/go-mood-song-recommender/internal/mood"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("mood-train", pflag.ContinueOnError)
	dataset := flags.String("dataset", "data/mood_song_dataset.csv", "labelled CSV dataset")
	modelPath := flags.String("model-path", "models/mood_model.json", "output classifier artifact")
	encoderPath := flags.String("encoder-path", "models/label_encoder.json", "output label decoder artifact")
	k := flags.Int("k", mood.DefaultTrainConfig().PrototypesPerClass, "prototypes per mood")
	testFraction := flags.Float64("test-fraction", 0.2, "held-out fraction for the accuracy report")
	seed := flags.Uint64("seed", 42, "split seed")
	verbose := flags.BoolP("verbose", "v", false, "debug logging")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *testFraction < 0 || *testFraction >= 1 {
		return fmt.Errorf("--test-fraction must be in [0, 1), got %g", *testFraction)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(level, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(*dataset)
	if err != nil {
		return fmt.Errorf("opening dataset: %w", err)
	}
	samples, err := mood.ReadSamples(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}
	logger.Info("dataset loaded", zap.String("path", *dataset), zap.Int("samples", len(samples)))

	cfg := mood.TrainConfig{PrototypesPerClass: *k}

	// Report held-out accuracy, then fit the shipped model on everything.
	train, test := mood.Split(samples, *testFraction, *seed)
	if len(test) > 0 {
		model, enc, err := mood.Train(train, cfg)
		if err != nil {
			return fmt.Errorf("training: %w", err)
		}
		p, err := mood.NewPredictor(model, enc)
		if err != nil {
			return err
		}
		acc, err := mood.Accuracy(p, test)
		if err != nil {
			return fmt.Errorf("scoring: %w", err)
		}
		logger.Info("held-out accuracy",
			zap.Int("train", len(train)),
			zap.Int("test", len(test)),
			zap.Float64("accuracy", acc))
	}

	model, enc, err := mood.Train(samples, cfg)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}
	if err := model.Save(*modelPath); err != nil {
		return err
	}
	if err := enc.Save(*encoderPath); err != nil {
		return err
	}

	logger.Info("artifacts written",
		zap.String("model", *modelPath),
		zap.String("encoder", *encoderPath),
		zap.Int("prototypes", len(model.Prototypes)),
		zap.Strings("classes", enc.Classes))
	return nil
}
