package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mirrormirror/internal/models/db_models"
)

func TestAnalyticsService_CountsSubmissions(t *testing.T) {
	svc := NewAnalyticsService()
	profile := db_models.Profile{
		"mood": db_models.BucketAnswer(db_models.BucketHigh),
	}

	svc.RecordSubmission("Ana", profile, "Taurus")
	svc.RecordSubmission("Ana", profile, "Taurus")
	svc.RecordSubmission("Ben", profile, "Leo")

	snap := svc.Snapshot()
	assert.Equal(t, 3, snap.TotalSubmissions)
	assert.Equal(t, 2, snap.ZodiacDistribution["Taurus"])
	assert.Equal(t, 1, snap.ZodiacDistribution["Leo"])

	assert.Equal(t, "Ana", snap.TopNames[0].Name)
	assert.Equal(t, 2, snap.TopNames[0].Count)
}

func TestAnalyticsService_EmptySnapshot(t *testing.T) {
	snap := NewAnalyticsService().Snapshot()
	assert.Zero(t, snap.TotalSubmissions)
	assert.Empty(t, snap.TopNames)
}
