package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"juris_dashboard_go/db"
	"juris_dashboard_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func jsonServer(t *testing.T, status int, payload any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if payload != nil {
			_ = json.NewEncoder(w).Encode(payload)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestLoader(cfg LoaderConfig) *Loader {
	cfg.Seed = 5
	cfg.FetchTimeout = 2 * time.Second
	return NewLoader(cfg, newTestNormalizer(), nil)
}

func setupSourceDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(conn))
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}

func TestLoadUnimedFromHTTP(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, []models.RawRecord{healthRaw()})
	l := newTestLoader(LoaderConfig{UnimedLocation: srv.URL})

	c, err := l.Load(context.Background(), models.SourceUnimed)
	require.NoError(t, err)
	assert.False(t, c.Fallback)
	assert.Equal(t, models.SourceUnimed, c.Source)
	require.Len(t, c.Records, 1)
	assert.Equal(t, 250000.0, c.Records[0].ClaimValue())
	assert.Equal(t, 1, c.KPIs.TotalProcessos)
	assert.NotEmpty(t, c.Alerts)
}

func TestLoadPGMExpandsSingleObject(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, GenericMockRecords()[0])
	l := newTestLoader(LoaderConfig{PGMLocation: srv.URL})

	c, err := l.Load(context.Background(), models.SourcePGM)
	require.NoError(t, err)
	assert.False(t, c.Fallback)
	require.Len(t, c.Records, PGMExpansionCount)

	seen := map[string]bool{}
	for i, r := range c.Records {
		assert.Equal(t, fmt.Sprintf("%d", i+1), r.ID)
		assert.Equal(t, fmt.Sprintf("5000%03d-12.2024.8.19.0001", i+1), r.NumeroProcesso)
		assert.GreaterOrEqual(t, r.ClaimValue(), 10000.0)
		assert.Less(t, r.ClaimValue(), 1010000.0)
		seen[r.NumeroProcesso] = true
	}
	assert.Len(t, seen, PGMExpansionCount)
}

func TestLoadPGMArrayIsNotExpanded(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, GenericMockRecords())
	l := newTestLoader(LoaderConfig{PGMLocation: srv.URL})

	c, err := l.Load(context.Background(), models.SourcePGM)
	require.NoError(t, err)
	assert.Len(t, c.Records, 6)
}

func TestLoadFallsBackOnFetchFailure(t *testing.T) {
	srv := jsonServer(t, http.StatusInternalServerError, nil)
	l := newTestLoader(LoaderConfig{UnimedLocation: srv.URL, PGMLocation: srv.URL})

	c, err := l.Load(context.Background(), models.SourceUnimed)
	require.NoError(t, err)
	assert.True(t, c.Fallback)
	assert.Contains(t, c.FallbackReason, "500")
	assert.Len(t, c.Records, HealthMockRecordCount)

	c, err = l.Load(context.Background(), models.SourcePGM)
	require.NoError(t, err)
	assert.True(t, c.Fallback)
	assert.Len(t, c.Records, 6)
}

func TestLoadFallsBackOnEmptyOrInvalidDocument(t *testing.T) {
	empty := jsonServer(t, http.StatusOK, []models.RawRecord{})
	l := newTestLoader(LoaderConfig{UnimedLocation: empty.URL})

	c, err := l.Load(context.Background(), models.SourceUnimed)
	require.NoError(t, err)
	assert.True(t, c.Fallback)

	invalid := jsonServer(t, http.StatusOK, "not a document")
	l = newTestLoader(LoaderConfig{UnimedLocation: invalid.URL})
	c, err = l.Load(context.Background(), models.SourceUnimed)
	require.NoError(t, err)
	assert.True(t, c.Fallback)
}

func TestLoadFallsBackWhenUnconfigured(t *testing.T) {
	c, err := newTestLoader(LoaderConfig{}).Load(context.Background(), models.SourceSQLite)
	require.NoError(t, err)
	assert.True(t, c.Fallback)
	assert.Len(t, c.Records, HealthMockRecordCount)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unimed.json")
	body, err := json.Marshal([]models.RawRecord{healthRaw(), healthRaw()})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	c, err := newTestLoader(LoaderConfig{UnimedLocation: path}).Load(context.Background(), models.SourceUnimed)
	require.NoError(t, err)
	assert.False(t, c.Fallback)
	assert.Len(t, c.Records, 2)
}

func TestLoadFromSQLite(t *testing.T) {
	conn := setupSourceDB(t)
	row, err := models.RawProcessRowFromRecord(healthRaw())
	require.NoError(t, err)
	_, err = db.UpsertRawRows(context.Background(), conn, []models.RawProcessRow{row})
	require.NoError(t, err)

	c, err := newTestLoader(LoaderConfig{DB: conn}).Load(context.Background(), models.SourceSQLite)
	require.NoError(t, err)
	assert.False(t, c.Fallback)
	require.Len(t, c.Records, 1)

	r := c.Records[0]
	assert.Equal(t, models.SchemaHealthInsurance, r.Schema)
	assert.Equal(t, 250000.0, r.ClaimValue())
	assert.Equal(t, models.SpecialtyCardiologia, r.Classificacao.EspecialidadeMedica)
	assert.Equal(t, 9, r.Scores.Urgencia)
}

func TestLoadUnknownSource(t *testing.T) {
	_, err := newTestLoader(LoaderConfig{}).Load(context.Background(), "tjsp")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestLoadCancelledContext(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, []models.RawRecord{healthRaw()})
	l := newTestLoader(LoaderConfig{UnimedLocation: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Load(ctx, models.SourceUnimed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadStrictNormalizationFails(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, []models.RawRecord{{"numero_processo": "X", "analise_llm": map[string]any{}}})
	l := NewLoader(LoaderConfig{UnimedLocation: srv.URL}, newTestNormalizer(WithStrict(true)), nil)

	_, err := l.Load(context.Background(), models.SourceUnimed)
	assert.ErrorIs(t, err, ErrMissingField)
}

type staticSource []models.RawRecord

func (s staticSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	return s, nil
}

func TestLoaderSetSource(t *testing.T) {
	l := newTestLoader(LoaderConfig{})
	l.SetSource(models.SourceUnimed, staticSource{healthRaw()})

	c, err := l.Load(context.Background(), models.SourceUnimed)
	require.NoError(t, err)
	assert.False(t, c.Fallback)
	assert.Len(t, c.Records, 1)
}

func TestCollectionGet(t *testing.T) {
	c := NewCollection(models.SourceUnimed, sampleRecords(), time.Now(), false)

	r, ok := c.Get("6")
	require.True(t, ok)
	assert.Equal(t, "6", r.ID)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}
