package recommend

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justestif/go-mood-song-recommender/internal/catalog"
	"github.com/justestif/go-mood-song-recommender/internal/media"
	"github.com/justestif/go-mood-song-recommender/internal/mood"
)

// ErrInternal wraps every failure that is not an input error.
var ErrInternal = errors.New("internal error")

// User-facing failure messages.
const (
	MsgOutOfRange = "Please enter values between 1 and 10"
	MsgNonNumeric = "Please enter valid numbers"
	MsgInternal   = "An unexpected error occurred. Please try again."
)

// Stage is a step of the recommendation pipeline.
type Stage int

const (
	StageIdle Stage = iota
	StageValidating
	StagePredicting
	StageSampling
	StageResolving
	StageResponding
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageValidating:
		return "validating"
	case StagePredicting:
		return "predicting"
	case StageSampling:
		return "sampling"
	case StageResolving:
		return "resolving"
	case StageResponding:
		return "responding"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Error is a failed recommendation. Message is safe to show to users;
// Err carries the cause and never reaches the client.
type Error struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("recommendation failed while %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Input holds the raw form values.
type Input struct {
	Energy       string
	Danceability string
	Valence      string
}

// Result is a successful recommendation.
type Result struct {
	ID       string
	Mood     catalog.Mood
	Features mood.FeatureVector
	Songs    []media.ResolvedSong
}

// MoodPredictor maps features to a mood.
type MoodPredictor interface {
	Predict(v mood.FeatureVector) (catalog.Mood, error)
}

// SongSampler draws songs for a mood.
type SongSampler interface {
	Sample(m catalog.Mood) ([]catalog.Song, error)
}

// SongResolver attaches public URLs to songs.
type SongResolver interface {
	ResolveAll(base *url.URL, songs []catalog.Song) []media.ResolvedSong
}

// Service runs the recommendation pipeline. It is stateless and safe for
// concurrent use when its collaborators are.
type Service struct {
	predictor MoodPredictor
	sampler   SongSampler
	resolver  SongResolver
	logger    *zap.Logger
}

// NewService creates a new recommendation service.
func NewService(predictor MoodPredictor, sampler SongSampler, resolver SongResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		predictor: predictor,
		sampler:   sampler,
		resolver:  resolver,
		logger:    logger,
	}
}

// Recommend validates input, predicts a mood, samples songs and resolves
// their URLs. Any failure stops the pipeline and returns an *Error; a
// result is either complete or absent. Panics are recovered as internal
// errors.
func (s *Service) Recommend(in Input, base *url.URL) (res *Result, err error) {
	id := uuid.NewString()
	log := s.logger.With(zap.String("recommendation_id", id))
	stage := StageIdle

	defer func() {
		if p := recover(); p != nil {
			log.Error("recommendation panicked",
				zap.Stringer("stage", stage),
				zap.Any("panic", p),
				zap.Stack("stack"))
			res, err = nil, &Error{
				Stage:   stage,
				Message: MsgInternal,
				Err:     fmt.Errorf("%w: panic: %v", ErrInternal, p),
			}
		}
	}()

	stage = StageValidating
	features, err := mood.ParseFeatures(in.Energy, in.Danceability, in.Valence)
	if err != nil {
		return nil, s.fail(log, stage, err)
	}

	stage = StagePredicting
	m, err := s.predictor.Predict(features)
	if err != nil {
		return nil, s.fail(log, stage, err)
	}

	stage = StageSampling
	songs, err := s.sampler.Sample(m)
	if err != nil {
		return nil, s.fail(log, stage, err)
	}

	stage = StageResolving
	resolved := s.resolver.ResolveAll(base, songs)

	stage = StageResponding
	log.Info("recommendation ready",
		zap.String("mood", string(m)),
		zap.Float64("energy", features.Energy),
		zap.Float64("danceability", features.Danceability),
		zap.Float64("valence", features.Valence),
		zap.Int("songs", len(resolved)))

	return &Result{
		ID:       id,
		Mood:     m,
		Features: features,
		Songs:    resolved,
	}, nil
}

// fail converts a stage error into an *Error with a user-facing message.
func (s *Service) fail(log *zap.Logger, stage Stage, err error) *Error {
	var inputErr *mood.InvalidInputError
	if errors.As(err, &inputErr) {
		log.Info("invalid input",
			zap.Stringer("stage", stage),
			zap.String("field", inputErr.Field),
			zap.Stringer("kind", inputErr.Kind))

		msg := MsgNonNumeric
		if inputErr.Kind == mood.OutOfRange {
			msg = MsgOutOfRange
		}
		return &Error{Stage: stage, Message: msg, Err: err}
	}

	log.Error("recommendation failed", zap.Stringer("stage", stage), zap.Error(err))
	return &Error{
		Stage:   stage,
		Message: MsgInternal,
		Err:     fmt.Errorf("%w: %w", ErrInternal, err),
	}
}
