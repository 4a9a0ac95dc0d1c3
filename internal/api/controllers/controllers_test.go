package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mirrormirror/internal/infra"
	"mirrormirror/internal/models/db_models"
	"mirrormirror/internal/repositories"
	"mirrormirror/internal/services"
	"mirrormirror/pkg/middleware"
)

const testQuestions = `[
  {"id": 1, "category": "mood", "text": "How bright is the face looking back?"},
  {"id": 2, "category": "risk", "text": "How readily do you leap?"}
]`

type testEnv struct {
	router      *gin.Engine
	cfg         *infra.Config
	resultsRepo repositories.ResultsRepository
}

func newTestEnv(t *testing.T, override repositories.ResultsRepository) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	questionPath := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(questionPath, []byte(testQuestions), 0o644))

	cfg := &infra.Config{
		SecretKey:      "test-secret",
		AdminToken:     "test-admin-token",
		AllowedOrigins: []string{"http://localhost:8000"},
		ForceRuleBased: true,
		ResultsFile:    filepath.Join(dir, "quiz_results.json"),
		QuestionFile:   questionPath,
	}
	logger := zap.NewNop()

	questionRepo, err := repositories.NewQuestionRepository(cfg.QuestionFile, logger)
	require.NoError(t, err)

	var resultsRepo repositories.ResultsRepository = repositories.NewFileResultsRepository(cfg.ResultsFile)
	if override != nil {
		resultsRepo = override
	}

	astro := services.NewAstrologyService()
	analytics := services.NewAnalyticsService()
	quizService := services.NewQuizService(questionRepo, logger)
	fortuneService := services.NewFortuneService(astro, nil, cfg.ForceRuleBased, logger)
	resultsService := services.NewResultsService(resultsRepo, fortuneService, astro, analytics, logger)

	quizController := NewQuizController(quizService)
	fortuneController := NewFortuneController(resultsService, analytics, cfg, logger)
	adminController := NewAdminController(resultsService, quizService, cfg)
	astrologyController := NewAstrologyController(astro)

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.SessionMiddleware([]byte(cfg.SecretKey)))

	r.GET("/quizdata", quizController.GetQuizData)
	r.POST("/quizdata/followups", quizController.GetFollowups)
	r.POST("/submit", fortuneController.Submit)
	r.GET("/fortune_data", fortuneController.FortuneData)
	r.GET("/history/:username", fortuneController.History)
	r.GET("/analytics", fortuneController.Analytics)
	r.GET("/reset", fortuneController.Reset)
	r.GET("/astrology/:birthdate", astrologyController.GetAstrology)
	r.GET("/admin/download_results", adminController.DownloadResults)
	r.POST("/admin/add_question", adminController.AddQuestion)
	r.GET("/admin/reload_questions", adminController.ReloadQuestions)

	return &testEnv{router: r, cfg: cfg, resultsRepo: resultsRepo}
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestGetQuizData_Idempotent(t *testing.T) {
	env := newTestEnv(t, nil)

	first := env.do(http.MethodGet, "/quizdata", nil)
	second := env.do(http.MethodGet, "/quizdata", nil)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	var resp struct {
		Questions []db_models.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, "mood", resp.Questions[0].Category)
}

func TestSubmit_HappyPath(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/submit", map[string]interface{}{
		"name":      "Ana",
		"birthdate": "1990-05-01",
		"quiz":      map[string]interface{}{"mood": "high", "risk": "low"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fortune string            `json:"fortune"`
		Profile map[string]string `json:"profile"`
		Hints   map[string]string `json:"hints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Fortune)
	assert.Equal(t, "high", resp.Profile["mood"])
	assert.Equal(t, "low", resp.Profile["risk"])
	assert.Equal(t, "Taurus", resp.Hints["zodiac"])

	records, err := env.resultsRepo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana", records[0].Name)
	assert.Equal(t, "1990-05-01", records[0].Birthdate)
	assert.Equal(t, db_models.BucketHigh, records[0].Profile["mood"].Bucket)
	assert.Equal(t, db_models.BucketLow, records[0].Profile["risk"].Bucket)
	assert.Equal(t, resp.Fortune, records[0].Fortune)
}

func TestSubmit_NumericSliders(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/submit", map[string]interface{}{
		"name":      "Ben",
		"birthdate": "2000-08-01",
		"quiz":      map[string]interface{}{"mood": 5, "risk": 1, "focus": 3},
	})
	require.Equal(t, http.StatusOK, w.Code)

	records, err := env.resultsRepo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, db_models.BucketHigh, records[0].Profile["mood"].Bucket)
	assert.Equal(t, db_models.BucketLow, records[0].Profile["risk"].Bucket)
	assert.Equal(t, db_models.BucketMedium, records[0].Profile["focus"].Bucket)
}

func TestSubmit_UnknownTraitStillSucceeds(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/submit", map[string]interface{}{
		"name":      "Ana",
		"birthdate": "1990-05-01",
		"quiz":      map[string]interface{}{"unknown_trait": "high"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fortune string `json:"fortune"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Fortune)
}

func TestSubmit_MalformedPayloadRejected(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing quiz", map[string]interface{}{"name": "Ana", "birthdate": "1990-05-01"}},
		{"missing birthdate", map[string]interface{}{"name": "Ana", "quiz": map[string]interface{}{"mood": "high"}}},
		{"bad birthdate", map[string]interface{}{"name": "Ana", "birthdate": "yesterday", "quiz": map[string]interface{}{"mood": "high"}}},
		{"empty quiz", map[string]interface{}{"name": "Ana", "birthdate": "1990-05-01", "quiz": map[string]interface{}{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/submit", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	// No partial records persisted.
	records, err := env.resultsRepo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSubmit_ConcurrentSubmissions(t *testing.T) {
	env := newTestEnv(t, nil)

	var wg sync.WaitGroup
	for _, name := range []string{"Ana", "Ben"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			w := env.do(http.MethodPost, "/submit", map[string]interface{}{
				"name":      name,
				"birthdate": "1990-05-01",
				"quiz":      map[string]interface{}{"mood": "high"},
			})
			assert.Equal(t, http.StatusOK, w.Code)
		}(name)
	}
	wg.Wait()

	records, err := env.resultsRepo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEqual(t, records[0].Name, records[1].Name)
}

type failingResultsRepo struct{}

func (f *failingResultsRepo) Append(ctx context.Context, record *db_models.FortuneRecord) error {
	return errors.New("disk full")
}

func (f *failingResultsRepo) ListAll(ctx context.Context) ([]db_models.FortuneRecord, error) {
	return nil, errors.New("disk full")
}

func (f *failingResultsRepo) ListByName(ctx context.Context, name string) ([]db_models.FortuneRecord, error) {
	return nil, errors.New("disk full")
}

func TestSubmit_StorageFailureStillReturnsFortune(t *testing.T) {
	env := newTestEnv(t, &failingResultsRepo{})

	w := env.do(http.MethodPost, "/submit", map[string]interface{}{
		"name":      "Ana",
		"birthdate": "1990-05-01",
		"quiz":      map[string]interface{}{"mood": "high"},
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Fortune string `json:"fortune"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.Data.Fortune)
}

func TestAdminDownloadResults_RoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)

	submit := env.do(http.MethodPost, "/submit", map[string]interface{}{
		"name":      "Ana",
		"birthdate": "1990-05-01",
		"quiz":      map[string]interface{}{"mood": "high", "risk": "low"},
	})
	require.Equal(t, http.StatusOK, submit.Code)

	var submitted struct {
		Fortune string `json:"fortune"`
	}
	require.NoError(t, json.Unmarshal(submit.Body.Bytes(), &submitted))

	w := env.do(http.MethodGet, "/admin/download_results?token=test-admin-token", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var export struct {
		Results []struct {
			Name      string            `json:"name"`
			Birthdate string            `json:"birthdate"`
			Profile   map[string]string `json:"profile"`
			Fortune   string            `json:"fortune"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &export))
	require.Len(t, export.Results, 1)

	got := export.Results[0]
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "1990-05-01", got.Birthdate)
	assert.Equal(t, "high", got.Profile["mood"])
	assert.Equal(t, "low", got.Profile["risk"])
	assert.Equal(t, submitted.Fortune, got.Fortune)
}

func TestAdminDownloadResults_TokenMismatch(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range []string{
		"/admin/download_results",
		"/admin/download_results?token=wrong",
	} {
		w := env.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.NotContains(t, w.Body.String(), "results")
	}
}

func TestAdminAddQuestion_AndReload(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/admin/add_question?token=test-admin-token", map[string]interface{}{
		"category": "focus",
		"text":     "How steady is your gaze?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	reload := env.do(http.MethodGet, "/admin/reload_questions?token=test-admin-token", nil)
	require.Equal(t, http.StatusOK, reload.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(reload.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
}

func TestAdminEndpoints_RequireToken(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/admin/add_question", map[string]interface{}{"text": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodGet, "/admin/reload_questions", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFollowups(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/quizdata/followups", map[string]interface{}{
		"quiz": map[string]interface{}{"mood": "high"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Questions []db_models.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 3)
	for _, q := range resp.Questions {
		assert.Equal(t, "followup", q.Category)
	}
}

func TestFortuneData_SampleAndHistory(t *testing.T) {
	env := newTestEnv(t, nil)

	// No history yet: a sample fortune comes back.
	w := env.do(http.MethodGet, "/fortune_data?name=Ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sample struct {
		Fortune string `json:"fortune"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sample))
	assert.NotEmpty(t, sample.Fortune)

	submit := env.do(http.MethodPost, "/submit", map[string]interface{}{
		"name":      "Ana",
		"birthdate": "1990-05-01",
		"quiz":      map[string]interface{}{"mood": "high"},
	})
	require.Equal(t, http.StatusOK, submit.Code)
	var submitted struct {
		Fortune string `json:"fortune"`
	}
	require.NoError(t, json.Unmarshal(submit.Body.Bytes(), &submitted))

	w = env.do(http.MethodGet, "/fortune_data?name=Ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var latest struct {
		Fortune string `json:"fortune"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	assert.Equal(t, submitted.Fortune, latest.Fortune)

	history := env.do(http.MethodGet, "/history/Ana", nil)
	require.Equal(t, http.StatusOK, history.Code)
	var hist struct {
		History []db_models.FortuneRecord `json:"history"`
	}
	require.NoError(t, json.Unmarshal(history.Body.Bytes(), &hist))
	require.Len(t, hist.History, 1)
	assert.Equal(t, "Ana", hist.History[0].Name)
}

func TestAnalyticsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	for i := 0; i < 2; i++ {
		w := env.do(http.MethodPost, "/submit", map[string]interface{}{
			"name":      "Ana",
			"birthdate": "1990-05-01",
			"quiz":      map[string]interface{}{"mood": "high"},
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := env.do(http.MethodGet, "/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalSubmissions   int            `json:"total_submissions"`
		ZodiacDistribution map[string]int `json:"zodiac_distribution"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalSubmissions)
	assert.Equal(t, 2, resp.ZodiacDistribution["Taurus"])
}

func TestAstrologyEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/astrology/1990-05-01", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Zodiac  string `json:"zodiac"`
		Element string `json:"element"`
		Hint    string `json:"hint"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Taurus", resp.Zodiac)
	assert.Equal(t, "Earth", resp.Element)
	assert.NotEmpty(t, resp.Hint)
}

func TestSubmit_SetsSessionCookie(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/submit", map[string]interface{}{
		"name":      "Ana",
		"birthdate": "1990-05-01",
		"quiz":      map[string]interface{}{"mood": "high"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == middleware.SessionCookieName {
			found = true
			assert.NotEmpty(t, c.Value)
		}
	}
	assert.True(t, found, "expected a session cookie to be set")
}

func TestReset_ClearsSessionCookie(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
