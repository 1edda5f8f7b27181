package services

import (
	"sort"

	"juris_dashboard_go/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Alert rule thresholds
const (
	HighPenaltyThreshold  = 1000.0
	PenaltyImpactDays     = 30
	HighUrgencyScore      = 8
	LongProcessDays       = 730
	LongProcessClaimValue = 50000.0
)

// AlertRule turns one record into at most one alert
type AlertRule struct {
	Type      models.AlertType
	IDPrefix  string
	Severity  models.AlertSeverity
	DueInDays int
	Action    string
	Owner     string
	Applies   func(r models.CaseRecord) bool
	Message   func(p *message.Printer, r models.CaseRecord) string
	// Impact may be nil when the alert carries no monetary impact
	Impact func(r models.CaseRecord) float64
}

// DefaultAlertRules are evaluated in this order for every record
var DefaultAlertRules = []AlertRule{
	{
		Type:      models.AlertEscalacaoExecutiva,
		IDPrefix:  "escalacao",
		Severity:  models.SeverityCritica,
		DueInDays: 1,
		Action:    "Comunicar diretoria em 24h e designar equipe sênior",
		Owner:     "Gerente Jurídico",
		Applies:   models.CaseRecord.RequiresEscalation,
		Message: func(p *message.Printer, r models.CaseRecord) string {
			return p.Sprintf("Caso crítico requer atenção da diretoria - Score urgência: %d/10", r.Scores.Urgencia)
		},
		Impact: models.CaseRecord.ClaimValue,
	},
	{
		Type:      models.AlertMultaAlta,
		IDPrefix:  "multa",
		Severity:  models.SeverityCritica,
		DueInDays: 2,
		Action:    "Avaliar cumprimento ou acordo urgente",
		Owner:     "Coordenador Jurídico",
		Applies: func(r models.CaseRecord) bool {
			return r.DailyPenalty() > HighPenaltyThreshold
		},
		Message: func(p *message.Printer, r models.CaseRecord) string {
			return p.Sprintf("Multa de R$ %.2f/dia ativa", r.DailyPenalty())
		},
		Impact: func(r models.CaseRecord) float64 {
			return r.DailyPenalty() * PenaltyImpactDays
		},
	},
	{
		Type:      models.AlertAltaUrgencia,
		IDPrefix:  "urgencia",
		Severity:  models.SeverityImportante,
		DueInDays: 7,
		Action:    "Designar advogado sênior especializado",
		Owner:     "Coordenador Jurídico",
		Applies: func(r models.CaseRecord) bool {
			return r.Scores.Urgencia >= HighUrgencyScore && !r.RequiresEscalation()
		},
		Message: func(p *message.Printer, r models.CaseRecord) string {
			return p.Sprintf("Procedimento de alta urgência médica - %s", r.Classificacao.EspecialidadeMedica.DisplayName())
		},
	},
	{
		Type:      models.AlertTramitacaoLonga,
		IDPrefix:  "tempo",
		Severity:  models.SeverityImportante,
		DueInDays: 14,
		Action:    "Avaliar estratégia de acordo judicial",
		Owner:     "Advogado Pleno",
		Applies: func(r models.CaseRecord) bool {
			return r.DaysPending() > LongProcessDays && r.ClaimValue() > LongProcessClaimValue
		},
		Message: func(p *message.Printer, r models.CaseRecord) string {
			return p.Sprintf("%d dias de tramitação - Alto valor em risco", r.DaysPending())
		},
		Impact: models.CaseRecord.ClaimValue,
	},
}

// GenerateAlerts evaluates DefaultAlertRules over the collection
func GenerateAlerts(records []models.CaseRecord) []models.Alert {
	return GenerateAlertsWith(records, DefaultAlertRules)
}

// GenerateAlertsWith evaluates rules over every record and returns the
// alerts ordered by severity tier, then by due date. Ties keep record order,
// then rule order.
func GenerateAlertsWith(records []models.CaseRecord, rules []AlertRule) []models.Alert {
	p := message.NewPrinter(language.BrazilianPortuguese)
	alerts := make([]models.Alert, 0)
	for _, r := range records {
		for _, rule := range rules {
			if rule.Applies == nil || !rule.Applies(r) {
				continue
			}
			alert := models.Alert{
				ID:                  rule.IDPrefix + "-" + r.ID,
				RecordID:            r.ID,
				Processo:            r.NumeroProcesso,
				Tipo:                rule.Type,
				Severidade:          rule.Severity,
				AcaoRecomendada:     rule.Action,
				ResponsavelSugerido: rule.Owner,
				PrazoAcao:           rule.DueInDays,
			}
			if rule.Message != nil {
				alert.Mensagem = rule.Message(p, r)
			}
			if rule.Impact != nil {
				alert.ValorImpacto = models.Float64Ptr(rule.Impact(r))
			}
			alerts = append(alerts, alert)
		}
	}
	SortAlerts(alerts)
	return alerts
}

// SortAlerts orders alerts in place by severity tier then due-in days, stably
func SortAlerts(alerts []models.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Severidade.Rank(), alerts[j].Severidade.Rank()
		if ri != rj {
			return ri < rj
		}
		return alerts[i].PrazoAcao < alerts[j].PrazoAcao
	})
}

// FilterAlertsBySeverity keeps the alerts of one severity. An empty severity keeps all.
func FilterAlertsBySeverity(alerts []models.Alert, severity models.AlertSeverity) []models.Alert {
	out := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if severity == "" || a.Severidade == severity {
			out = append(out, a)
		}
	}
	return out
}

// CriticalAlerts returns the alerts of the critica tier
func CriticalAlerts(alerts []models.Alert) []models.Alert {
	return FilterAlertsBySeverity(alerts, models.SeverityCritica)
}

// AlertsForRecords keeps the alerts raised by the given records, in order
func AlertsForRecords(alerts []models.Alert, records []models.CaseRecord) []models.Alert {
	ids := make(map[string]struct{}, len(records))
	for _, r := range records {
		ids[r.ID] = struct{}{}
	}
	out := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if _, ok := ids[a.RecordID]; ok {
			out = append(out, a)
		}
	}
	return out
}
