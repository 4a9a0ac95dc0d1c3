package services

import (
	"sort"
	"sync"

	"mirrormirror/internal/models/db_models"
	"mirrormirror/internal/models/response_models"
)

type AnalyticsServiceInterface interface {
	RecordSubmission(name string, profile db_models.Profile, zodiac string)
	Snapshot() response_models.AnalyticsResponse
}

// AnalyticsService keeps in-process submission counters. They reset with the
// process; durable analysis belongs to the results export.
type AnalyticsService struct {
	mu sync.Mutex

	totalSubmissions int
	namesCounter     map[string]int
	traitsCounter    map[string]map[string]int
	zodiacCounter    map[string]int
}

func NewAnalyticsService() AnalyticsServiceInterface {
	return &AnalyticsService{
		namesCounter:  map[string]int{},
		traitsCounter: map[string]map[string]int{},
		zodiacCounter: map[string]int{},
	}
}

func (s *AnalyticsService) RecordSubmission(name string, profile db_models.Profile, zodiac string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalSubmissions++
	s.namesCounter[name]++
	s.zodiacCounter[zodiac]++
	for trait, answer := range profile {
		if s.traitsCounter[trait] == nil {
			s.traitsCounter[trait] = map[string]int{}
		}
		s.traitsCounter[trait][answer.String()]++
	}
}

func (s *AnalyticsService) Snapshot() response_models.AnalyticsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]response_models.NameCount, 0, len(s.namesCounter))
	for name, count := range s.namesCounter {
		names = append(names, response_models.NameCount{Name: name, Count: count})
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i].Count != names[j].Count {
			return names[i].Count > names[j].Count
		}
		return names[i].Name < names[j].Name
	})
	if len(names) > 10 {
		names = names[:10]
	}

	zodiac := make(map[string]int, len(s.zodiacCounter))
	for k, v := range s.zodiacCounter {
		zodiac[k] = v
	}

	return response_models.AnalyticsResponse{
		TotalSubmissions:   s.totalSubmissions,
		TopNames:           names,
		ZodiacDistribution: zodiac,
	}
}
