package services

import (
	"fmt"
	"strconv"
	"strings"

	"mirrormirror/internal/models/db_models"
)

// MapAnswer resolves one raw quiz value into the tagged answer variant.
// Numeric slider values collapse into the three buckets; canonical bucket
// names pass as buckets; anything else is a literal choice label, returned
// unchanged. There are no error cases.
func MapAnswer(raw interface{}) db_models.Answer {
	switch v := raw.(type) {
	case float64:
		return bucketFromScore(int(v))
	case int:
		return bucketFromScore(v)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return bucketFromScore(n)
		}
		if b := db_models.Bucket(strings.ToLower(s)); b.Valid() {
			return db_models.BucketAnswer(b)
		}
		return db_models.LiteralAnswer(v)
	default:
		return db_models.LiteralAnswer(fmt.Sprint(raw))
	}
}

// MapProfile resolves a whole raw submission, so everything downstream of the
// boundary sees one explicit type.
func MapProfile(raw map[string]interface{}) db_models.Profile {
	profile := make(db_models.Profile, len(raw))
	for trait, value := range raw {
		profile[trait] = MapAnswer(value)
	}
	return profile
}

func bucketFromScore(v int) db_models.Answer {
	switch {
	case v <= 2:
		return db_models.BucketAnswer(db_models.BucketLow)
	case v == 3:
		return db_models.BucketAnswer(db_models.BucketMedium)
	default:
		return db_models.BucketAnswer(db_models.BucketHigh)
	}
}

// bucketScore is the inverse weighting used for tone derivation.
func bucketScore(b db_models.Bucket) int {
	switch b {
	case db_models.BucketLow:
		return 1
	case db_models.BucketMedium:
		return 3
	case db_models.BucketHigh:
		return 5
	}
	return 3
}
