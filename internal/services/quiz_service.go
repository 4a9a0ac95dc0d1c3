package services

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"mirrormirror/internal/models/db_models"
	"mirrormirror/internal/repositories"
)

type QuizServiceInterface interface {
	Questions() []db_models.Question
	QuestionCount() int
	Complete(profile db_models.Profile) bool
	Followups(profile db_models.Profile, n int) []db_models.Question
	AddQuestion(q db_models.Question) (db_models.Question, error)
	ReloadQuestions() (int, error)
}

type QuizService struct {
	questionRepo repositories.QuestionRepository
	logger       *zap.Logger
}

func NewQuizService(questionRepo repositories.QuestionRepository, logger *zap.Logger) QuizServiceInterface {
	return &QuizService{questionRepo: questionRepo, logger: logger}
}

func (s *QuizService) Questions() []db_models.Question {
	return s.questionRepo.All()
}

func (s *QuizService) QuestionCount() int {
	return s.questionRepo.Count()
}

// Complete reports whether every trait category in the bank has an answer.
// The quiz has no state machine beyond collecting versus complete.
func (s *QuizService) Complete(profile db_models.Profile) bool {
	for _, cat := range s.questionRepo.Categories() {
		if _, ok := profile[cat]; !ok {
			return false
		}
	}
	return true
}

// Per-trait reflection prompt templates, one per bucket. Selection is
// deterministic by trait and bucket; data ordering is the only variation.
var followupTemplates = map[string]map[db_models.Bucket]string{
	"mood": {
		db_models.BucketLow:    "What small thing dims your mood most days, and what lifts it?",
		db_models.BucketMedium: "When your mood is steady, what do you reach for first?",
		db_models.BucketHigh:   "You rated mood highly. Tell a short story of when this showed up recently.",
	},
	"focus": {
		db_models.BucketLow:    "Where do your thoughts drift when focus slips away?",
		db_models.BucketMedium: "What helps you hold your attention when it wavers?",
		db_models.BucketHigh:   "What were you doing the last time the world fell away completely?",
	},
	"trust": {
		db_models.BucketLow:    "What would someone have to do to earn your trust?",
		db_models.BucketMedium: "How do you decide who gets past careful observation?",
		db_models.BucketHigh:   "Describe a moment when trusting someone changed things for you.",
	},
	"creativity": {
		db_models.BucketLow:    "What would you make if nobody were watching?",
		db_models.BucketMedium: "Where do your ideas usually arrive: walking, talking, or alone?",
		db_models.BucketHigh:   "How might you support creativity more often in daily life?",
	},
	"patience": {
		db_models.BucketLow:    "What is the longest you have waited for something worth waiting for?",
		db_models.BucketMedium: "When do you choose to act fast, and when to hold back?",
		db_models.BucketHigh:   "What has patience quietly earned you that hurry never could?",
	},
	"empathy": {
		db_models.BucketLow:    "Whose feelings do you find easiest to read, and why?",
		db_models.BucketMedium: "When did you last feel moved by someone else's story?",
		db_models.BucketHigh:   "How do you protect yourself when you feel everything around you?",
	},
}

var genericFollowups = []string{
	"Describe a small ritual that helps you reset.",
	"When did you last feel most like yourself? Describe briefly.",
	"What would you like to explore more deeply about yourself right now?",
}

// Followups derives up to n personalized reflection prompts from a bucketed
// profile. Unknown trait categories and literal choices fall back to generic
// prompts rather than failing.
func (s *QuizService) Followups(profile db_models.Profile, n int) []db_models.Question {
	if n <= 0 {
		return nil
	}

	traits := make([]string, 0, len(profile))
	for trait := range profile {
		traits = append(traits, trait)
	}
	sort.Strings(traits)

	var prompts []string
	for _, trait := range traits {
		answer := profile[trait]
		if !answer.IsBucket() {
			continue
		}
		pool, known := followupTemplates[trait]
		if !known {
			continue
		}
		if text, ok := pool[answer.Bucket]; ok {
			prompts = append(prompts, text)
		}
	}
	for len(prompts) < n {
		prompts = append(prompts, genericFollowups[len(prompts)%len(genericFollowups)])
	}
	prompts = prompts[:n]

	nextID := s.maxQuestionID() + 1
	out := make([]db_models.Question, 0, n)
	for i, text := range prompts {
		out = append(out, db_models.Question{
			ID:       nextID + i,
			Category: "followup",
			Text:     text,
		})
	}
	return out
}

func (s *QuizService) AddQuestion(q db_models.Question) (db_models.Question, error) {
	added, err := s.questionRepo.Add(q)
	if err != nil {
		return db_models.Question{}, err
	}
	return added, nil
}

func (s *QuizService) ReloadQuestions() (int, error) {
	if err := s.questionRepo.Reload(); err != nil {
		s.logger.Error("question bank reload failed", zap.Error(err))
		return 0, fmt.Errorf("reload questions: %w", err)
	}
	return s.questionRepo.Count(), nil
}

func (s *QuizService) maxQuestionID() int {
	max := 0
	for _, q := range s.questionRepo.All() {
		if q.ID > max {
			max = q.ID
		}
	}
	return max
}
