package services

import (
	"testing"

	"juris_dashboard_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateKPIs(t *testing.T) {
	k := CalculateKPIs(sampleRecords())

	assert.Equal(t, 10, k.TotalProcessos)
	assert.Equal(t, 8, k.ProcessosAtivos)
	assert.Equal(t, 605000.0, k.ExposicaoTotal)
	assert.Equal(t, 60500.0, k.ValorMedioCausa)
	assert.Equal(t, 3, k.CasosEscalacaoExecutiva)
	assert.Equal(t, 2, k.MultasAtivas)
	assert.Equal(t, 100, k.TempoMedioTramitacao)
	assert.Equal(t, 80.0, k.PercentualAtivos)
	assert.Equal(t, 30.0, k.PercentualEscalacao)
	assert.Equal(t, 20.0, k.PercentualMultas)

	assert.Equal(t, 3, k.DistribuicaoEspecialidades[models.SpecialtyCardiologia])
	assert.Equal(t, 2, k.DistribuicaoEspecialidades[models.SpecialtyOutros])
	assert.Equal(t, 1, k.DistribuicaoTiposDemanda[models.DemandHomeCare])
	assert.Equal(t, 3, k.DistribuicaoPrioridades[models.PriorityCritica])
	assert.Equal(t, 3, k.DistribuicaoSemaforo[models.TrafficLightVermelho])
	assert.Equal(t, 2, k.DistribuicaoSemaforo[models.TrafficLightAmarelo])
	assert.Equal(t, 5, k.DistribuicaoSemaforo[models.TrafficLightVerde])
}

func TestCalculateKPIsDistributionsSumToTotal(t *testing.T) {
	records := sampleRecords()
	k := CalculateKPIs(records)

	sum := func(m map[models.MedicalSpecialty]int) int {
		total := 0
		for _, v := range m {
			total += v
		}
		return total
	}
	assert.Equal(t, len(records), sum(k.DistribuicaoEspecialidades))

	total := 0
	for _, v := range k.DistribuicaoPrioridades {
		total += v
	}
	assert.Equal(t, len(records), total)
}

func TestCalculateKPIsIncludesAccumulatedPenalty(t *testing.T) {
	r := newRecord(1, withClaim(10000))
	r.Financeiro.ValorMultaAcumulado = 2500
	k := CalculateKPIs([]models.CaseRecord{r})
	assert.Equal(t, 12500.0, k.ExposicaoTotal)
	assert.Equal(t, 10000.0, k.ValorMedioCausa)
}

func TestCalculateKPIsEmpty(t *testing.T) {
	k := CalculateKPIs(nil)

	assert.Equal(t, 0, k.TotalProcessos)
	assert.Equal(t, 0, k.TempoMedioTramitacao)
	assert.Equal(t, 0.0, k.ValorMedioCausa)
	assert.Equal(t, 0.0, k.PercentualAtivos)
	assert.NotNil(t, k.DistribuicaoEspecialidades)
	assert.Empty(t, k.DistribuicaoSemaforo)
}

func TestPercentageRounding(t *testing.T) {
	assert.Equal(t, 33.3, percentage(1, 3))
	assert.Equal(t, 66.7, percentage(2, 3))
	assert.Equal(t, 100.0, percentage(5, 5))
	assert.Equal(t, 0.0, percentage(1, 0))
}
