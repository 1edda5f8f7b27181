package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"juris_dashboard_go/config"
	"juris_dashboard_go/middleware"
	"juris_dashboard_go/models"
	"juris_dashboard_go/services"
	"juris_dashboard_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 28, 12, 0, 0, 0, time.UTC)

// staticLoader serves fixed records per source
type staticLoader struct {
	records map[models.DataSource][]models.CaseRecord
}

func (l staticLoader) Load(ctx context.Context, source models.DataSource) (services.Collection, error) {
	records, ok := l.records[source]
	if !ok {
		return services.Collection{}, fmt.Errorf("%w: %s", services.ErrUnknownSource, source)
	}
	return services.NewCollection(source, records, testNow, false), nil
}

func testRecord(id int, urgency int, claim float64, specialty models.MedicalSpecialty) models.CaseRecord {
	return models.CaseRecord{
		ID:               fmt.Sprintf("proc-%03d", id),
		NumeroProcesso:   fmt.Sprintf("0800%03d-34.2023.8.19.0212", id),
		PartesPrincipais: fmt.Sprintf("Beneficiário %d vs Unimed Rio", id),
		Classificacao: models.Classification{
			AreaDireito:            models.LegalAreaHealthInsurance,
			TipoDemanda:            models.DemandCoberturaNegada,
			EspecialidadeMedica:    specialty,
			ProcedimentoEspecifico: "Cirurgia",
			Tribunal:               "Tribunal de Justiça do Estado do Rio de Janeiro",
		},
		Financeiro:     models.Financials{ValorInicialCausa: claim},
		Cronologia:     models.Timeline{DiasTramitacaoTotal: 120, ProcessoAtivo: true},
		Scores:         models.Scores{Urgencia: urgency, Complexidade: 5, ImpactoFinanceiro: 5},
		FaseProcessual: models.PhaseConhecimento,
	}
}

func testRecords() []models.CaseRecord {
	return []models.CaseRecord{
		testRecord(1, 9, 250000, models.SpecialtyCardiologia),
		testRecord(2, 7, 40000, models.SpecialtyOncologia),
		testRecord(3, 3, 10000, models.SpecialtyCardiologia),
		testRecord(4, 5, 15000, models.SpecialtyOrtopedia),
	}
}

// stubGenerator returns a fixed draft or error
type stubGenerator struct {
	err error
}

func (g stubGenerator) Generate(ctx context.Context, docType services.DocumentType, record models.CaseRecord, opts services.DocumentOptions) (*services.GeneratedDocument, error) {
	if g.err != nil {
		return nil, g.err
	}
	if !docType.IsValid() {
		return nil, fmt.Errorf("%w: %s", services.ErrUnknownDocumentType, docType)
	}
	return &services.GeneratedDocument{
		ID:       "doc-1",
		RecordID: record.ID,
		Tipo:     docType,
		Titulo:   docType.Title(),
		Conteudo: "Processo: " + record.NumeroProcesso + "\n" + opts.Instructions,
		Status:   services.DocumentStatusDraft,
	}, nil
}

type testEnv struct {
	e       *echo.Echo
	h       *Handler
	store   *services.Store
	storage *services.LocalStorage
}

func setupHandler(t *testing.T, limiter *middleware.RateLimiter) *testEnv {
	t.Helper()
	require.NoError(t, i18n.Load())

	loader := staticLoader{records: map[models.DataSource][]models.CaseRecord{
		models.SourceUnimed: testRecords(),
		models.SourcePGM:    testRecords()[:2],
	}}
	store := services.NewStore(loader, nil)
	_, err := store.SwitchSource(context.Background(), models.SourceUnimed)
	require.NoError(t, err)

	storage := services.NewLocalStorage(t.TempDir())
	cfg := &config.Config{Environment: "test"}

	h := New(store, cfg, nil, services.NewTemplateGenerator(services.OfficeData{Name: "MUNICÍPIO DE TESTE", City: "Natal/RN", Signature: "Procuradoria"}, 0), storage)
	h.now = func() time.Time { return testNow }
	h.renderPDF = func(ctx context.Context, doc *services.GeneratedDocument) ([]byte, error) {
		return []byte("%PDF-1.4 " + doc.Titulo), nil
	}

	e := echo.New()
	e.Use(middleware.Locale(cfg))
	h.Register(e, limiter)
	return &testEnv{e: e, h: h, store: store, storage: storage}
}

func (env *testEnv) do(method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]string](t, rec)
	return body["message"]
}
