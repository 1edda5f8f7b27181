package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"juris_dashboard_go/db"
	"juris_dashboard_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxSourceBytes caps the size of a JSON source
const maxSourceBytes = 64 << 20

// RawSource fetches the raw records of one data source
type RawSource interface {
	Fetch(ctx context.Context) ([]models.RawRecord, error)
}

// JSONSource reads a JSON array (or a single object) from an http(s) URL or
// a local file path
type JSONSource struct {
	Location string
	client   *http.Client
	// Expand turns a single object document into records; nil wraps it as one
	Expand func(models.RawRecord) []models.RawRecord
}

// NewJSONSource creates a JSON source with the given request timeout
func NewJSONSource(location string, timeout time.Duration) *JSONSource {
	return &JSONSource{
		Location: location,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch loads and decodes the document
func (s *JSONSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	if s.Location == "" {
		return nil, fmt.Errorf("source location not configured")
	}

	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(s.Location, "http://") || strings.HasPrefix(s.Location, "https://") {
		body, err = s.get(ctx)
	} else {
		body, err = os.ReadFile(s.Location)
	}
	if err != nil {
		return nil, err
	}
	return s.decode(body)
}

func (s *JSONSource) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.Location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status: %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
}

func (s *JSONSource) decode(body []byte) ([]models.RawRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty source document")
	}

	if trimmed[0] == '{' {
		var single models.RawRecord
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("failed to decode source object: %w", err)
		}
		if s.Expand != nil {
			return s.Expand(single), nil
		}
		return []models.RawRecord{single}, nil
	}

	var raws []models.RawRecord
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode source array: %w", err)
	}
	return raws, nil
}

// SQLiteSource reads the scraped processos table
type SQLiteSource struct {
	DB *gorm.DB
}

// Fetch reads every row of the table
func (s *SQLiteSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("sqlite source not configured")
	}
	return db.ReadRawRecords(ctx, s.DB)
}

// Loader builds collections for a data source, falling back to mock data
// when the source cannot be read
type Loader struct {
	sources    map[models.DataSource]RawSource
	normalizer *Normalizer
	logger     *zap.SugaredLogger
	now        func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// LoaderConfig holds the locations of every source
type LoaderConfig struct {
	PGMLocation    string
	UnimedLocation string
	DB             *gorm.DB
	FetchTimeout   time.Duration
	Seed           int64
}

// NewLoader wires the pgm, unimed and sqlite sources
func NewLoader(cfg LoaderConfig, normalizer *Normalizer, logger *zap.SugaredLogger) *Loader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(WithLogger(logger), WithSeed(cfg.Seed))
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	l := &Loader{
		normalizer: normalizer,
		logger:     logger,
		now:        time.Now,
		rng:        rand.New(rand.NewSource(seed)),
	}

	pgm := NewJSONSource(cfg.PGMLocation, timeout)
	pgm.Expand = l.expandPGM
	l.sources = map[models.DataSource]RawSource{
		models.SourcePGM:    pgm,
		models.SourceUnimed: NewJSONSource(cfg.UnimedLocation, timeout),
		models.SourceSQLite: &SQLiteSource{DB: cfg.DB},
	}
	return l
}

// SetSource replaces the reader of one data source
func (l *Loader) SetSource(source models.DataSource, raw RawSource) {
	l.sources[source] = raw
}

func (l *Loader) expandPGM(sample models.RawRecord) []models.RawRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ExpandPGMSample(sample, l.rng)
}

// Load reads and normalizes a source. Read failures fall back to mock data
// with a warning. Errors are returned only for unknown sources, cancelled
// contexts and strict normalization failures.
func (l *Loader) Load(ctx context.Context, source models.DataSource) (Collection, error) {
	raw, ok := l.sources[source]
	if !ok {
		return Collection{}, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}

	raws, err := raw.Fetch(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Collection{}, fmt.Errorf("loading %s: %w", source, ctxErr)
	}
	if err == nil && len(raws) == 0 {
		err = errors.New("source returned no records")
	}
	if err != nil {
		l.logger.Warnw("failed to load source, falling back to mock data", "source", source, "error", err)
		return l.mockCollection(source, err.Error()), nil
	}

	records, err := l.normalizer.NormalizeAll(raws)
	if err != nil {
		return Collection{}, fmt.Errorf("normalizing %s: %w", source, err)
	}

	l.logger.Infow("source loaded", "source", source, "count", len(records))
	return NewCollection(source, records, l.now(), false), nil
}

// mockCollection normalizes the local mock data of a source leniently
func (l *Loader) mockCollection(source models.DataSource, reason string) Collection {
	var raws []models.RawRecord
	if source == models.SourcePGM {
		raws = GenericMockRecords()
	} else {
		l.mu.Lock()
		raws = GenerateHealthMockRecords(l.rng, l.now())
		l.mu.Unlock()
	}

	c := NewCollection(source, l.normalizer.Normalize(raws), l.now(), true)
	c.FallbackReason = reason
	return c
}
