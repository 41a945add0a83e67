// Package registry coordinates animal record reads and mutations: it fronts
// the store with a query cache, memoizes rescue-profile frames, and emits
// operational telemetry on writes.
package registry

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/graziososalvare/rescuehub/internal/animal"
	"github.com/graziososalvare/rescuehub/internal/services/registry/cache"
	"github.com/graziososalvare/rescuehub/internal/services/registry/storage"
	"github.com/graziososalvare/rescuehub/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FrameSortField orders dashboard frames youngest-first.
const FrameSortField = "age_upon_outcome_in_weeks"

// FrameFields is the projection the dashboard renders. Fetching only these
// fields keeps frames small; everything else stays in the collection.
var FrameFields = []string{
	"name",
	"breed",
	"animal_type",
	"sex_upon_outcome",
	"age_upon_outcome_in_weeks",
	"location_lat",
	"location_long",
}

// Config defines the inputs for the registry service.
type Config struct {
	// Store is the backing animal store. Required.
	Store storage.AnimalStore
	// Cache memoizes read results. Nil disables read caching.
	Cache *cache.QueryCache
	// Telemetry receives operational events. Nil disables emission.
	Telemetry *telemetry.Emitter
	// PushdownFilters applies rescue-profile filters as MongoDB queries
	// instead of in-memory predicates over the base frame.
	PushdownFilters bool
}

// Service is the animal registry.
type Service struct {
	store    storage.AnimalStore
	cache    *cache.QueryCache
	emitter  *telemetry.Emitter
	pushdown bool
	tracer   trace.Tracer

	mu            sync.Mutex
	profileFrames map[animal.Profile][]animal.Record
}

// New creates a registry service.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	return &Service{
		store:         cfg.Store,
		cache:         cfg.Cache,
		emitter:       cfg.Telemetry,
		pushdown:      cfg.PushdownFilters,
		tracer:        otel.Tracer("rescuehub/registry"),
		profileFrames: make(map[animal.Profile][]animal.Record),
	}, nil
}

// Fetch returns records matching the query, read through the cache.
// forceRefresh bypasses the cache and overwrites the entry.
func (s *Service) Fetch(ctx context.Context, query storage.Query, opts storage.FindOptions, forceRefresh bool) ([]animal.Record, error) {
	ctx, span := s.tracer.Start(ctx, "registry.fetch")
	defer span.End()

	key := query.Key() + "|" + opts.Key()
	if !forceRefresh {
		if records, ok := s.cache.Get(key); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return records, nil
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	records, err := s.store.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, records)
	return records, nil
}

func frameOptions() storage.FindOptions {
	return storage.FindOptions{
		Fields: FrameFields,
		SortBy: FrameSortField,
	}
}

// BaseFrame returns the full projected, age-sorted dataset.
func (s *Service) BaseFrame(ctx context.Context, forceRefresh bool) ([]animal.Record, error) {
	return s.Fetch(ctx, storage.Query{}, frameOptions(), forceRefresh)
}

// ProfileFrame returns the frame for a rescue profile. Filtered frames are
// memoized per profile so repeated dashboard clicks are served from memory.
func (s *Service) ProfileFrame(ctx context.Context, profile animal.Profile) ([]animal.Record, error) {
	criteria, ok := profile.Criteria()
	if !ok {
		return s.BaseFrame(ctx, false)
	}

	s.mu.Lock()
	memoized, hit := s.profileFrames[profile]
	s.mu.Unlock()
	if hit {
		return memoized, nil
	}

	var frame []animal.Record
	var err error
	if s.pushdown {
		frame, err = s.Fetch(ctx, QueryForCriteria(criteria), frameOptions(), false)
	} else {
		var base []animal.Record
		base, err = s.BaseFrame(ctx, false)
		if err == nil {
			frame = animal.Filter(base, profile)
		}
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.profileFrames[profile] = frame
	s.mu.Unlock()
	return frame, nil
}

// QueryForCriteria translates rescue criteria into a storage query for
// pushdown filtering.
func QueryForCriteria(c animal.Criteria) storage.Query {
	ageMin := c.AgeMinWeeks
	ageMax := c.AgeMaxWeeks
	return storage.Query{
		Eq: map[string]string{
			"animal_type":      "Dog",
			"sex_upon_outcome": c.Sex,
		},
		In: map[string][]string{
			"breed": append([]string(nil), c.Breeds...),
		},
		Range: map[string]storage.Range{
			"age_upon_outcome_in_weeks": {Min: &ageMin, Max: &ageMax},
		},
	}
}

// Create inserts one record and invalidates cached reads.
func (s *Service) Create(ctx context.Context, record animal.Record) error {
	if err := s.store.Insert(ctx, record); err != nil {
		return err
	}
	s.invalidate()
	s.emit(ctx, "animal.created", "inserted animal record")
	return nil
}

// UpdateMany applies the set document to every matching record and returns
// the modified count. Any successful update invalidates cached reads.
func (s *Service) UpdateMany(ctx context.Context, query storage.Query, set map[string]any) (int64, error) {
	modified, err := s.store.UpdateMany(ctx, query, set)
	if err != nil {
		return 0, err
	}
	s.invalidate()
	s.emit(ctx, "animal.updated", "updated animal records")
	return modified, nil
}

// DeleteMany removes every matching record and returns the deleted count.
// Any successful delete invalidates cached reads.
func (s *Service) DeleteMany(ctx context.Context, query storage.Query) (int64, error) {
	deleted, err := s.store.DeleteMany(ctx, query)
	if err != nil {
		return 0, err
	}
	s.invalidate()
	s.emit(ctx, "animal.deleted", "deleted animal records")
	return deleted, nil
}

func (s *Service) invalidate() {
	s.cache.Clear()
	s.mu.Lock()
	s.profileFrames = make(map[animal.Profile][]animal.Record)
	s.mu.Unlock()
}

func (s *Service) emit(ctx context.Context, kind, message string) {
	err := s.emitter.Emit(ctx, telemetry.Event{
		Severity: telemetry.SeverityInfo,
		Source:   "registry",
		Kind:     kind,
		Message:  message,
	})
	if err != nil {
		log.Printf("emit telemetry %s: %v", kind, err)
	}
}
