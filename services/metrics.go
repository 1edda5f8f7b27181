package services

import (
	"math"

	"juris_dashboard_go/models"
)

// CalculateKPIs aggregates the dashboard metrics of a full collection.
// Means and percentages are 0 for an empty collection.
func CalculateKPIs(records []models.CaseRecord) models.KPIs {
	k := models.KPIs{
		TotalProcessos:             len(records),
		DistribuicaoEspecialidades: make(map[models.MedicalSpecialty]int),
		DistribuicaoTiposDemanda:   make(map[models.DemandType]int),
		DistribuicaoPrioridades:    make(map[models.ManagementPriority]int),
		DistribuicaoSemaforo:       make(map[models.TrafficLightStatus]int),
	}

	var totalDays int
	var totalClaims float64
	for _, r := range records {
		if r.IsActive() {
			k.ProcessosAtivos++
		}
		claim := math.Max(r.ClaimValue(), 0)
		totalClaims += claim
		k.ExposicaoTotal += claim + math.Max(r.Financeiro.ValorMultaAcumulado, 0)
		if r.RequiresEscalation() {
			k.CasosEscalacaoExecutiva++
		}
		if r.GrowingPenaltyRisk() {
			k.MultasAtivas++
		}
		totalDays += r.DaysPending()

		k.DistribuicaoEspecialidades[r.Classificacao.EspecialidadeMedica]++
		k.DistribuicaoTiposDemanda[r.Classificacao.TipoDemanda]++
		k.DistribuicaoPrioridades[r.ManagementPriority()]++
		k.DistribuicaoSemaforo[r.TrafficLight()]++
	}

	if n := len(records); n > 0 {
		k.TempoMedioTramitacao = int(math.Round(float64(totalDays) / float64(n)))
		k.ValorMedioCausa = math.Round(totalClaims / float64(n))
		k.PercentualAtivos = percentage(k.ProcessosAtivos, n)
		k.PercentualEscalacao = percentage(k.CasosEscalacaoExecutiva, n)
		k.PercentualMultas = percentage(k.MultasAtivas, n)
	}
	return k
}

// percentage returns part/total in [0,100] rounded to one decimal
func percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
