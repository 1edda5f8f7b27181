package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(urgency int, claim float64, penalty *float64) CaseRecord {
	return CaseRecord{
		ID:             "1",
		NumeroProcesso: "0800001-34.2023.8.19.0212",
		Financeiro: Financials{
			ValorInicialCausa: claim,
			ValorMultaDiaria:  penalty,
		},
		Scores: Scores{Urgencia: urgency, Complexidade: 5, ImpactoFinanceiro: 5},
	}
}

func TestRequiresEscalation(t *testing.T) {
	tests := []struct {
		name     string
		record   CaseRecord
		expected bool
	}{
		{"low urgency, low values", newRecord(5, 100000, nil), false},
		{"urgency at threshold", newRecord(9, 1000, nil), true},
		{"urgency just below", newRecord(8, 1000, nil), false},
		{"claim above 200k", newRecord(5, 250000, nil), true},
		{"claim exactly 200k", newRecord(5, 200000, nil), false},
		{"penalty above 1000", newRecord(2, 1000, Float64Ptr(1500)), true},
		{"penalty exactly 1000", newRecord(2, 1000, Float64Ptr(1000)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.RequiresEscalation())
		})
	}
}

func TestTrafficLightAndPriority(t *testing.T) {
	tests := []struct {
		urgency  int
		light    TrafficLightStatus
		priority ManagementPriority
		carater  UrgencyCharacter
	}{
		{1, TrafficLightVerde, PriorityBaixa, UrgencyEletivo},
		{3, TrafficLightVerde, PriorityBaixa, UrgencyEletivo},
		{4, TrafficLightVerde, PriorityMedia, UrgencyEletivo},
		{5, TrafficLightVerde, PriorityMedia, UrgencyEletivo},
		{6, TrafficLightAmarelo, PriorityAlta, UrgencyEmergencia},
		{7, TrafficLightAmarelo, PriorityAlta, UrgencyEmergencia},
		{8, TrafficLightVermelho, PriorityCritica, UrgencyUrgente},
		{10, TrafficLightVermelho, PriorityCritica, UrgencyUrgente},
	}

	for _, tt := range tests {
		r := newRecord(tt.urgency, 1000, nil)
		assert.Equal(t, tt.light, r.TrafficLight(), "urgency %d", tt.urgency)
		assert.Equal(t, tt.priority, r.ManagementPriority(), "urgency %d", tt.urgency)
		assert.Equal(t, tt.carater, r.UrgencyCharacter(), "urgency %d", tt.urgency)
	}
}

func TestGrowingPenaltyRisk(t *testing.T) {
	assert.False(t, newRecord(5, 1000, nil).GrowingPenaltyRisk())
	assert.False(t, newRecord(5, 1000, Float64Ptr(0)).GrowingPenaltyRisk())
	assert.True(t, newRecord(5, 1000, Float64Ptr(0.5)).GrowingPenaltyRisk())
}

func TestHasActiveInjunction(t *testing.T) {
	r := newRecord(5, 1000, nil)
	assert.False(t, r.HasActiveInjunction())

	r.Liminar = &Injunction{Requerida: true}
	assert.False(t, r.HasActiveInjunction())

	r.Liminar = &Injunction{Requerida: true, Deferida: true}
	assert.True(t, r.HasActiveInjunction())
}

func TestWithAssigneeReturnsCopy(t *testing.T) {
	original := newRecord(5, 1000, nil)
	at := time.Date(2025, 6, 26, 10, 0, 0, 0, time.UTC)

	assigned := original.WithAssignee(Assignee{ID: "user-1", Nome: "Dr. João Silva", Role: "procurador"}, at)

	assert.Nil(t, original.Responsavel)
	assert.Nil(t, original.DataAtribuicao)
	require.NotNil(t, assigned.Responsavel)
	assert.Equal(t, "Dr. João Silva", assigned.Responsavel.Nome)
	assert.Equal(t, at, *assigned.DataAtribuicao)
}

func TestMarshalJSONIncludesDerivedMetrics(t *testing.T) {
	r := newRecord(9, 250000, Float64Ptr(50))

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "0800001-34.2023.8.19.0212", decoded["numero_processo"])
	derived, ok := decoded["metricas_derivadas"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, derived["requer_escalacao_executiva"])
	assert.Equal(t, "vermelho", derived["status_semaforo"])
	assert.Equal(t, "critica", derived["prioridade_gestao"])
	assert.Equal(t, true, derived["risco_multa_crescente"])
	assert.Equal(t, false, derived["possui_liminar_ativa"])
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "Cardiologia", SpecialtyCardiologia.DisplayName())
	assert.Equal(t, "Cobertura Negada", DemandCoberturaNegada.DisplayName())
	assert.Equal(t, "desconhecida", MedicalSpecialty("desconhecida").DisplayName())
	assert.False(t, DemandType("x").IsValid())
	assert.True(t, IsValidDataSource("sqlite"))
	assert.False(t, IsValidDataSource("mongo"))
}

func TestFilterStateIsEmpty(t *testing.T) {
	assert.True(t, FilterState{}.IsEmpty())
	assert.False(t, FilterState{Busca: "x"}.IsEmpty())
	assert.False(t, FilterState{ValorMin: Float64Ptr(0)}.IsEmpty())
	assert.False(t, FilterState{Fases: []CourtPhase{PhaseRecurso}}.IsEmpty())
}

func TestAlertSeverityRank(t *testing.T) {
	assert.Less(t, SeverityCritica.Rank(), SeverityImportante.Rank())
	assert.Less(t, SeverityImportante.Rank(), SeverityInformativa.Rank())
	assert.False(t, AlertSeverity("x").IsValid())
}

func TestRawProcessRowRoundTrip(t *testing.T) {
	raw := RawRecord{
		"numero_processo":          "0800001-34.2023.8.19.0212",
		"detalhes_capa_processual": "<dl><dt>Assunto</dt></dl>",
		"analise_llm":              map[string]any{"metricas_dashboard": map[string]any{"score_urgencia": 7.0}},
		"linha_tempo_otimizada":    []any{map[string]any{"data": "01/02/2023", "descricao": "Distribuído"}},
	}

	row, err := RawProcessRowFromRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "processos", row.TableName())
	assert.JSONEq(t, `{"metricas_dashboard":{"score_urgencia":7}}`, row.AnaliseLLM)

	back := row.ToRaw()
	assert.Equal(t, "0800001-34.2023.8.19.0212", back["numero_processo"])
	assert.IsType(t, "", back["analise_llm"])
	assert.Len(t, back["linha_tempo_otimizada"], 1)
	_, hasLink := back["link_processo"]
	assert.False(t, hasLink)

	_, err = RawProcessRowFromRecord(RawRecord{"link_processo": "x"})
	assert.Error(t, err)
}
