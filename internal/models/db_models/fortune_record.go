package db_models

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bucket is one of the three semantic answer levels derived from a slider.
type Bucket string

const (
	BucketLow    Bucket = "low"
	BucketMedium Bucket = "medium"
	BucketHigh   Bucket = "high"
)

func (b Bucket) Valid() bool {
	return b == BucketLow || b == BucketMedium || b == BucketHigh
}

// Answer is the tagged value a quiz trait resolves to: either a semantic
// bucket or a literal choice label taken verbatim from the question. Exactly
// one side is set.
type Answer struct {
	Bucket  Bucket
	Literal string
}

func BucketAnswer(b Bucket) Answer  { return Answer{Bucket: b} }
func LiteralAnswer(s string) Answer { return Answer{Literal: s} }
func (a Answer) IsBucket() bool     { return a.Bucket != "" }

func (a Answer) String() string {
	if a.IsBucket() {
		return string(a.Bucket)
	}
	return a.Literal
}

// Answers travel on the wire and in storage as their bare string value, so an
// exported record shows the submitted mapping verbatim.
func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Raw sliders may arrive as numbers from older clients.
		var n float64
		if err2 := json.Unmarshal(data, &n); err2 != nil {
			return err
		}
		s = strconv.Itoa(int(n))
	}
	if b := Bucket(s); b.Valid() {
		*a = Answer{Bucket: b}
		return nil
	}
	*a = Answer{Literal: s}
	return nil
}

// Profile maps a trait category to its resolved answer.
type Profile map[string]Answer

// FortuneRecord is the append-only persisted unit: one submitted profile plus
// the fortune generated for it.
type FortuneRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null;index" json:"name"`
	Birthdate string    `gorm:"type:text" json:"birthdate"`
	Zodiac    string    `gorm:"type:text" json:"zodiac,omitempty"`
	Element   string    `gorm:"type:text" json:"element,omitempty"`
	Tone      string    `gorm:"type:text" json:"tone,omitempty"`
	Profile   Profile   `gorm:"serializer:json;type:jsonb" json:"profile"`
	Fortune   string    `gorm:"type:text;not null" json:"fortune"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (r *FortuneRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	return nil
}
