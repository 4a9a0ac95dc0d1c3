package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"mirrormirror/internal/models/db_models"
	"mirrormirror/internal/repositories"
	"mirrormirror/pkg/utils"
)

// SubmitOutcome carries everything a submission produced. PersistErr is set
// when the record could not be stored; the fortune is still usable so the
// client can display it (graceful degradation).
type SubmitOutcome struct {
	Record     *db_models.FortuneRecord
	Hints      map[string]string
	PersistErr error
}

type ResultsServiceInterface interface {
	Submit(ctx context.Context, name, birthdate string, rawQuiz map[string]interface{}) (*SubmitOutcome, error)
	Export(ctx context.Context) ([]db_models.FortuneRecord, error)
	History(ctx context.Context, name string) ([]db_models.FortuneRecord, error)
	LatestFortune(ctx context.Context, name string) (string, bool, error)
	SampleFortune(ctx context.Context) string
}

type ResultsService struct {
	resultsRepo repositories.ResultsRepository
	fortune     FortuneServiceInterface
	astro       AstrologyServiceInterface
	analytics   AnalyticsServiceInterface
	logger      *zap.Logger
}

func NewResultsService(
	resultsRepo repositories.ResultsRepository,
	fortune FortuneServiceInterface,
	astro AstrologyServiceInterface,
	analytics AnalyticsServiceInterface,
	logger *zap.Logger,
) ResultsServiceInterface {
	return &ResultsService{
		resultsRepo: resultsRepo,
		fortune:     fortune,
		astro:       astro,
		analytics:   analytics,
		logger:      logger,
	}
}

func (s *ResultsService) Submit(ctx context.Context, name, birthdate string, rawQuiz map[string]interface{}) (*SubmitOutcome, error) {
	if len(rawQuiz) == 0 {
		return nil, utils.ErrInvalidInput
	}
	if _, err := utils.ParseBirthdate(birthdate); err != nil {
		return nil, utils.ErrInvalidInput
	}

	name = utils.SanitizeName(name)
	profile := MapProfile(rawQuiz)

	result := s.fortune.Generate(ctx, name, birthdate, profile)

	record := &db_models.FortuneRecord{
		Name:      name,
		Birthdate: birthdate,
		Zodiac:    result.Zodiac,
		Element:   result.Element,
		Tone:      result.Tone,
		Profile:   profile,
		Fortune:   result.Text,
		Timestamp: time.Now(),
	}

	persistErr := s.resultsRepo.Append(ctx, record)
	if persistErr != nil {
		// The fortune is already generated; log and degrade rather than
		// discard it.
		s.logger.Error("failed to persist fortune record",
			zap.String("name", name), zap.Error(persistErr))
	}

	s.analytics.RecordSubmission(name, profile, result.Zodiac)

	hints := s.fortune.Hints(profile)
	hints["zodiac"] = result.Zodiac
	hints["element"] = result.Element

	return &SubmitOutcome{Record: record, Hints: hints, PersistErr: persistErr}, nil
}

func (s *ResultsService) Export(ctx context.Context) ([]db_models.FortuneRecord, error) {
	records, err := s.resultsRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("results export failed", zap.Error(err))
		return nil, utils.ErrStorageError
	}
	return records, nil
}

func (s *ResultsService) History(ctx context.Context, name string) ([]db_models.FortuneRecord, error) {
	records, err := s.resultsRepo.ListByName(ctx, utils.SanitizeName(name))
	if err != nil {
		return nil, utils.ErrStorageError
	}
	return records, nil
}

// LatestFortune returns the newest persisted fortune for a name. The second
// return is false when the name has no history.
func (s *ResultsService) LatestFortune(ctx context.Context, name string) (string, bool, error) {
	records, err := s.History(ctx, name)
	if err != nil {
		return "", false, err
	}
	if len(records) == 0 {
		return "", false, nil
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records[len(records)-1].Fortune, true, nil
}

// SampleFortune produces a fortune for an anonymous visitor without touching
// storage.
func (s *ResultsService) SampleFortune(ctx context.Context) string {
	result := s.fortune.Generate(ctx, utils.DefaultName, "1900-01-01", db_models.Profile{})
	return result.Text
}
