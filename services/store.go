package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"juris_dashboard_go/models"

	"go.uber.org/zap"
)

// Collection is the normalized record set of one data source together with
// the KPIs and alerts computed from it. Treat it as read-only.
type Collection struct {
	Source         models.DataSource
	Records        []models.CaseRecord
	KPIs           models.KPIs
	Alerts         []models.Alert
	LoadedAt       time.Time
	Fallback       bool
	FallbackReason string

	index map[string]int
}

// NewCollection computes the KPIs and alerts of records
func NewCollection(source models.DataSource, records []models.CaseRecord, loadedAt time.Time, fallback bool) Collection {
	if records == nil {
		records = []models.CaseRecord{}
	}
	index := make(map[string]int, len(records))
	for i, r := range records {
		if _, dup := index[r.ID]; !dup {
			index[r.ID] = i
		}
	}
	return Collection{
		Source:   source,
		Records:  records,
		KPIs:     CalculateKPIs(records),
		Alerts:   GenerateAlerts(records),
		LoadedAt: loadedAt,
		Fallback: fallback,
		index:    index,
	}
}

// Get returns the record with the given id
func (c Collection) Get(id string) (models.CaseRecord, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.CaseRecord{}, false
	}
	return c.Records[i], true
}

// CollectionLoader produces a collection for a data source
type CollectionLoader interface {
	Load(ctx context.Context, source models.DataSource) (Collection, error)
}

// Store holds the collection of the selected data source. Switching source
// replaces the whole collection; edits produce a new collection.
type Store struct {
	mu      sync.RWMutex
	current Collection
	loader  CollectionLoader
	logger  *zap.SugaredLogger
	now     func() time.Time

	// selected is the most recently requested source; generation counts
	// load requests so only the newest one is committed
	selected   models.DataSource
	generation uint64
}

// NewStore creates an empty store backed by loader
func NewStore(loader CollectionLoader, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		loader:  loader,
		logger:  logger,
		now:     time.Now,
		current: NewCollection("", nil, time.Time{}, false),
	}
}

// Current returns the active collection
func (s *Store) Current() Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SwitchSource loads source and replaces the active collection. When a newer
// switch or reload starts while this one is loading, the result is discarded
// and the collection active at that point is returned.
func (s *Store) SwitchSource(ctx context.Context, source models.DataSource) (Collection, error) {
	if !models.IsValidDataSource(string(source)) {
		return Collection{}, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.selected = source
	s.mu.Unlock()

	return s.load(ctx, source, gen)
}

// Reload reloads the selected source
func (s *Store) Reload(ctx context.Context) (Collection, error) {
	s.mu.Lock()
	source := s.selected
	if source == "" {
		s.mu.Unlock()
		return Collection{}, fmt.Errorf("%w: no source selected", ErrUnknownSource)
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	return s.load(ctx, source, gen)
}

func (s *Store) load(ctx context.Context, source models.DataSource, gen uint64) (Collection, error) {
	// Load outside the lock; readers keep seeing the old collection meanwhile
	c, err := s.loader.Load(ctx, source)

	s.mu.Lock()
	latest := s.generation == gen
	if err != nil {
		if latest {
			s.selected = s.current.Source
		}
		s.mu.Unlock()
		return Collection{}, err
	}
	if !latest {
		active := s.current
		s.mu.Unlock()
		s.logger.Infow("stale load discarded", "source", source, "active", active.Source)
		return active, nil
	}
	s.current = c
	s.mu.Unlock()

	s.logger.Infow("data source switched",
		"source", source,
		"count", len(c.Records),
		"alerts", len(c.Alerts),
		"fallback", c.Fallback,
	)
	return c, nil
}

// Get returns a record of the active collection
func (s *Store) Get(id string) (models.CaseRecord, error) {
	r, ok := s.Current().Get(id)
	if !ok {
		return models.CaseRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return r, nil
}

// Assign sets the responsible person of a record. The active collection is
// replaced by a copy holding the updated record.
func (s *Store) Assign(id string, assignee models.Assignee) (models.CaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.current.index[id]
	if !ok {
		return models.CaseRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	records := make([]models.CaseRecord, len(s.current.Records))
	copy(records, s.current.Records)
	updated := records[i].WithAssignee(assignee, s.now())
	records[i] = updated

	next := NewCollection(s.current.Source, records, s.current.LoadedAt, s.current.Fallback)
	next.FallbackReason = s.current.FallbackReason
	s.current = next

	s.logger.Infow("case assigned", "case", updated.NumeroProcesso, "assignee", assignee.Nome)
	return updated, nil
}
