package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mirrormirror/internal/models/db_models"
)

func TestMapAnswer_SliderBuckets(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		expected db_models.Bucket
	}{
		{"one is low", 1, db_models.BucketLow},
		{"two is low", 2, db_models.BucketLow},
		{"three is medium", 3, db_models.BucketMedium},
		{"four is high", 4, db_models.BucketHigh},
		{"five is high", 5, db_models.BucketHigh},
		{"json numbers arrive as float64", float64(2), db_models.BucketLow},
		{"numeric strings coerce", "4", db_models.BucketHigh},
		{"zero clamps low", 0, db_models.BucketLow},
		{"overshoot clamps high", 9, db_models.BucketHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := MapAnswer(tt.raw)
			assert.True(t, answer.IsBucket())
			assert.Equal(t, tt.expected, answer.Bucket)
		})
	}
}

func TestMapAnswer_BucketNamesPassAsBuckets(t *testing.T) {
	for _, name := range []string{"low", "medium", "high", "High", " LOW "} {
		answer := MapAnswer(name)
		assert.True(t, answer.IsBucket(), "expected %q to resolve to a bucket", name)
	}
}

func TestMapAnswer_LiteralPassthrough(t *testing.T) {
	answer := MapAnswer("Flame")
	assert.False(t, answer.IsBucket())
	assert.Equal(t, "Flame", answer.Literal)
	assert.Equal(t, "Flame", answer.String())
}

func TestMapProfile(t *testing.T) {
	profile := MapProfile(map[string]interface{}{
		"mood":          float64(5),
		"risk":          "low",
		"spirit_symbol": "Moon",
	})

	assert.Equal(t, db_models.BucketHigh, profile["mood"].Bucket)
	assert.Equal(t, db_models.BucketLow, profile["risk"].Bucket)
	assert.Equal(t, "Moon", profile["spirit_symbol"].Literal)
}
