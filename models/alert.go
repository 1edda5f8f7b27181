package models

// AlertType identifies the rule that produced an alert
type AlertType string

const (
	AlertEscalacaoExecutiva AlertType = "ESCALACAO_EXECUTIVA"
	AlertMultaAlta          AlertType = "MULTA_ALTA"
	AlertAltaUrgencia       AlertType = "ALTA_URGENCIA"
	AlertTramitacaoLonga    AlertType = "TRAMITACAO_LONGA"
)

// AlertSeverity is the tier used to order alerts
type AlertSeverity string

const (
	SeverityCritica     AlertSeverity = "critica"
	SeverityImportante  AlertSeverity = "importante"
	SeverityInformativa AlertSeverity = "informativa"
)

// Rank orders severities, lower first. Unknown severities sort last.
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityCritica:
		return 0
	case SeverityImportante:
		return 1
	case SeverityInformativa:
		return 2
	}
	return 3
}

// IsValid reports whether s is a known severity
func (s AlertSeverity) IsValid() bool {
	return s.Rank() < 3
}

// Alert is an executive alert derived from one case record
type Alert struct {
	ID                  string        `json:"id"`
	RecordID            string        `json:"processo_id"`
	Processo            string        `json:"processo"`
	Tipo                AlertType     `json:"tipo"`
	Severidade          AlertSeverity `json:"severidade"`
	Mensagem            string        `json:"mensagem"`
	AcaoRecomendada     string        `json:"acao_recomendada"`
	ResponsavelSugerido string        `json:"responsavel_sugerido"`
	PrazoAcao           int           `json:"prazo_acao"`
	ValorImpacto        *float64      `json:"valor_impacto,omitempty"`
}
