package services

import (
	"slices"
	"strings"

	"juris_dashboard_go/models"
)

// ApplyFilters returns the records matching every active predicate of f, in
// their original order. The input slice is never modified.
func ApplyFilters(records []models.CaseRecord, f models.FilterState) []models.CaseRecord {
	out := make([]models.CaseRecord, 0, len(records))
	search := strings.ToLower(strings.TrimSpace(f.Busca))
	for _, r := range records {
		if matchesFilter(r, f, search) {
			out = append(out, r)
		}
	}
	return out
}

// MatchesFilter reports whether a single record passes f
func MatchesFilter(r models.CaseRecord, f models.FilterState) bool {
	return matchesFilter(r, f, strings.ToLower(strings.TrimSpace(f.Busca)))
}

func matchesFilter(r models.CaseRecord, f models.FilterState, search string) bool {
	if len(f.Especialidades) > 0 && !slices.Contains(f.Especialidades, r.Classificacao.EspecialidadeMedica) {
		return false
	}
	if len(f.TiposDemanda) > 0 && !slices.Contains(f.TiposDemanda, r.Classificacao.TipoDemanda) {
		return false
	}
	if len(f.Prioridades) > 0 && !slices.Contains(f.Prioridades, r.ManagementPriority()) {
		return false
	}
	if len(f.Semaforos) > 0 && !slices.Contains(f.Semaforos, r.TrafficLight()) {
		return false
	}
	if len(f.Fases) > 0 && !slices.Contains(f.Fases, r.FaseProcessual) {
		return false
	}
	if f.ValorMin != nil && r.ClaimValue() < *f.ValorMin {
		return false
	}
	if f.ValorMax != nil && r.ClaimValue() > *f.ValorMax {
		return false
	}
	if f.UrgenciaMin > 0 && r.Scores.Urgencia < f.UrgenciaMin {
		return false
	}
	if f.ApenasAtivos && !r.IsActive() {
		return false
	}
	if f.EscalacaoExecutiva && !r.RequiresEscalation() {
		return false
	}
	if f.RiscoMulta && !r.GrowingPenaltyRisk() {
		return false
	}
	if search != "" && !strings.Contains(searchText(r), search) {
		return false
	}
	return true
}

// searchText is the lowercase haystack for free text search
func searchText(r models.CaseRecord) string {
	return strings.ToLower(strings.Join([]string{
		r.NumeroProcesso,
		r.PartesPrincipais,
		r.Classificacao.ProcedimentoEspecifico,
		r.Classificacao.EspecialidadeMedica.DisplayName(),
		r.Classificacao.TipoDemanda.DisplayName(),
	}, " "))
}
