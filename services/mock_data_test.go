package services

import (
	"math/rand"
	"testing"

	"juris_dashboard_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHealthMockRecords(t *testing.T) {
	raws := GenerateHealthMockRecords(rand.New(rand.NewSource(1)), fixedNow)
	require.Len(t, raws, HealthMockRecordCount)

	records := newTestNormalizer().Normalize(raws)
	specialties := map[models.MedicalSpecialty]bool{}
	for i, r := range records {
		assert.Equal(t, models.SchemaHealthInsurance, r.Schema)
		assert.NotEmpty(t, r.NumeroProcesso)
		assert.Equal(t, raws[i]["numero_processo"], r.NumeroProcesso)
		assert.GreaterOrEqual(t, r.ClaimValue(), float64(FallbackClaimMin))
		assert.Less(t, r.ClaimValue(), float64(FallbackClaimMax))
		if r.GrowingPenaltyRisk() {
			require.NotNil(t, r.Liminar)
			assert.True(t, r.Liminar.Deferida)
		}
		specialties[r.Classificacao.EspecialidadeMedica] = true
	}
	assert.Greater(t, len(specialties), 3)
}

func TestGenerateHealthMockRecordsSeeded(t *testing.T) {
	a := GenerateHealthMockRecords(rand.New(rand.NewSource(8)), fixedNow)
	b := GenerateHealthMockRecords(rand.New(rand.NewSource(8)), fixedNow)
	assert.Equal(t, a, b)
}

func TestExpandPGMSample(t *testing.T) {
	sample := models.RawRecord{
		"numeroProcesso": "0835078-22.2023.8.20.5001",
		"valorCausa":     36569.20,
		"assunto":        "Enquadramento",
		"intimacoes":     []any{map[string]any{"tipo": "citacao", "prazo": 15.0}},
	}

	out := ExpandPGMSample(sample, rand.New(rand.NewSource(2)))
	require.Len(t, out, PGMExpansionCount)
	for _, rec := range out {
		assert.NotContains(t, rec, "numeroProcesso")
		assert.NotContains(t, rec, "valorCausa")
		assert.Equal(t, "Enquadramento", rec["assunto"])
		intimacoes := rec["intimacoes"].([]any)
		require.Len(t, intimacoes, 1)
		prazo := intimacoes[0].(map[string]any)["prazo"].(float64)
		assert.GreaterOrEqual(t, prazo, 1.0)
		assert.LessOrEqual(t, prazo, 30.0)
	}

	// the sample itself is untouched
	assert.Equal(t, "0835078-22.2023.8.20.5001", sample["numeroProcesso"])
	assert.Equal(t, 15.0, sample["intimacoes"].([]any)[0].(map[string]any)["prazo"])
}
