package services

import (
	"math"
	"strings"
	"time"

	"juris_dashboard_go/models"
)

var inactiveStatuses = map[string]bool{
	"concluida": true,
	"arquivado": true,
	"vencida":   true,
}

// courtStates maps the TR segment of a state court (J = 8) case number
var courtStates = map[string]string{
	"13": "Minas Gerais",
	"19": "Rio de Janeiro",
	"20": "Rio Grande do Norte",
	"26": "São Paulo",
}

func (b *recordBuilder) extractionDate(v any) time.Time {
	if t, ok := parseDate(v); ok {
		return t
	}
	return b.now
}

func (b *recordBuilder) firstDecision(v any) int {
	if d, ok := parseDays(v); ok && d > 0 {
		return d
	}
	b.fallback("dias_ate_primeira_decisao")
	return b.randRange(FallbackFirstDecisionMin, FallbackFirstDecisionMax)
}

// genericDaysPending counts days since the receipt or filing date
func (b *recordBuilder) genericDaysPending() int {
	if d, ok := parseDays(b.raw["dias_tramitacao_total"]); ok {
		return d
	}
	for _, key := range []string{"dataRecebimento", "dataAutuacao", "data_autuacao"} {
		if t, ok := parseDate(b.raw[key]); ok {
			days := int(b.now.Sub(t).Hours() / 24)
			if days < 0 {
				days = 0
			}
			return days
		}
	}
	return b.daysPending(nil)
}

func genericParties(raw models.RawRecord) (string, string) {
	if partes := asMap(raw["partes"]); partes != nil {
		ativo := strings.Join(asStrings(partes["ativo"]), ", ")
		passivo := strings.Join(asStrings(partes["passivo"]), ", ")
		if ativo != "" || passivo != "" {
			return ativo, passivo
		}
	}
	return firstString(raw, "parte_ativa"), firstString(raw, "parte_passiva")
}

func genericActive(raw models.RawRecord) bool {
	status := strings.ToLower(firstString(raw, "status", "situacao"))
	return !inactiveStatuses[status]
}

func isExplicitFalse(v any) bool {
	switch b := v.(type) {
	case bool:
		return !b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "false", "nao", "não", "n", "no":
			return true
		}
	}
	return false
}

func courtPhase(v any) models.CourtPhase {
	phase := models.CourtPhase(strings.ToLower(asString(v)))
	if phase.IsValid() {
		return phase
	}
	return models.PhaseConhecimento
}

// courtFromCaseNumber names the state court of a unified (CNJ) case number,
// NNNNNNN-DD.AAAA.J.TR.OOOO
func courtFromCaseNumber(numero string) string {
	parts := strings.Split(numero, ".")
	if len(parts) >= 4 && parts[2] == "8" {
		if state, ok := courtStates[parts[3]]; ok {
			return "Tribunal de Justiça do Estado do " + state
		}
	}
	return "Tribunal de Justiça"
}

// optionalAmount returns the first non-negative parsable amount
func optionalAmount(candidates ...any) *float64 {
	for _, c := range candidates {
		if v, ok := parseNumber(c); ok && v >= 0 {
			return models.Float64Ptr(v)
		}
	}
	return nil
}

func positiveAmount(v any) *float64 {
	if f, ok := parseNumber(v); ok && f > 0 {
		return models.Float64Ptr(f)
	}
	return nil
}

func amountOrZero(v any) float64 {
	if f, ok := parseNumber(v); ok && f > 0 {
		return f
	}
	return 0
}

func intOrZero(v any) int {
	if f, ok := parseNumber(v); ok && f > 0 {
		return int(math.Round(f))
	}
	return 0
}

func timelineEntries(v any) []models.TimelineEntry {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	entries := make([]models.TimelineEntry, 0, len(list))
	for _, item := range list {
		m := asMap(item)
		if m == nil {
			continue
		}
		entries = append(entries, models.TimelineEntry{
			Data:       asString(m["data"]),
			Descricao:  asString(m["descricao"]),
			Documentos: asStrings(m["documento"]),
		})
	}
	return entries
}
