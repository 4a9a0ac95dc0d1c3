package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"

	"mirrormirror/internal/models/db_models"
	"mirrormirror/pkg/utils"
)

// QuestionRepository owns the static question bank. The bank is loaded once at
// startup and exposed as an ordered sequence; admin endpoints may append to it
// and trigger a reload.
type QuestionRepository interface {
	All() []db_models.Question
	Count() int
	Categories() []string
	Add(q db_models.Question) (db_models.Question, error)
	Reload() error
}

type fileQuestionRepository struct {
	path   string
	logger *zap.Logger

	mu   sync.RWMutex
	bank []db_models.Question
}

func NewQuestionRepository(path string, logger *zap.Logger) (QuestionRepository, error) {
	r := &fileQuestionRepository{path: path, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *fileQuestionRepository) All() []db_models.Question {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]db_models.Question, len(r.bank))
	copy(out, r.bank)
	return out
}

func (r *fileQuestionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bank)
}

func (r *fileQuestionRepository) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for _, q := range r.bank {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}

func (r *fileQuestionRepository) Add(q db_models.Question) (db_models.Question, error) {
	if q.Text == "" {
		return db_models.Question{}, utils.ErrInvalidInput
	}
	if q.Category == "" {
		q.Category = "general"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	used := map[int]bool{}
	for _, b := range r.bank {
		used[b.ID] = true
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	if q.ID <= 0 || used[q.ID] {
		q.ID = maxID + 1
	}

	r.bank = append(r.bank, q)
	sort.Slice(r.bank, func(i, j int) bool { return r.bank[i].ID < r.bank[j].ID })

	if err := r.saveLocked(); err != nil {
		return db_models.Question{}, err
	}
	r.logger.Debug("question added", zap.Int("id", q.ID), zap.String("category", q.Category))
	return q, nil
}

func (r *fileQuestionRepository) Reload() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read question file: %w", err)
	}

	bank, err := normalizeQuestions(raw)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.bank = bank
	r.mu.Unlock()

	r.logger.Info("question bank loaded",
		zap.String("file", r.path),
		zap.Int("count", len(bank)))
	return nil
}

func (r *fileQuestionRepository) saveLocked() error {
	raw, err := json.MarshalIndent(r.bank, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write question temp file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace question file: %w", err)
	}
	return nil
}

// normalizeQuestions accepts the three shapes question files have shipped in:
// a flat list, an envelope {"questions": [...]}, or a grouped object mapping
// category to a list of question texts. The result is a flat list with unique
// ids, sorted by id.
func normalizeQuestions(raw []byte) ([]db_models.Question, error) {
	var flat []db_models.Question
	if err := json.Unmarshal(raw, &flat); err == nil {
		return dedupeAndSort(flat), nil
	}

	var envelope struct {
		Questions []db_models.Question `json:"questions"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Questions != nil {
		return dedupeAndSort(envelope.Questions), nil
	}

	var grouped map[string][]string
	if err := json.Unmarshal(raw, &grouped); err == nil {
		var out []db_models.Question
		cats := make([]string, 0, len(grouped))
		for cat := range grouped {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		nextID := 1
		for _, cat := range cats {
			for _, text := range grouped[cat] {
				out = append(out, db_models.Question{ID: nextID, Category: cat, Text: text})
				nextID++
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("unrecognized question file shape")
}

func dedupeAndSort(in []db_models.Question) []db_models.Question {
	used := map[int]bool{}
	maxID := 0
	out := make([]db_models.Question, 0, len(in))
	for _, q := range in {
		if q.Category == "" {
			q.Category = "general"
		}
		if q.ID <= 0 || used[q.ID] {
			maxID++
			q.ID = maxID
			for used[q.ID] {
				q.ID++
			}
		}
		used[q.ID] = true
		if q.ID > maxID {
			maxID = q.ID
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
