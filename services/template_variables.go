package services

import (
	"fmt"
	"strings"
	"time"

	"juris_dashboard_go/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// VariableCategory represents a group of template variables
type VariableCategory struct {
	Name      string     `json:"name"`
	NameKey   string     `json:"name_key"` // i18n key
	Variables []Variable `json:"variables"`
}

// Variable represents a single template variable
type Variable struct {
	Key      string `json:"key"` // e.g., "case.number"
	Label    string `json:"label"`
	LabelKey string `json:"label_key"`
	Example  string `json:"example"`
}

// TemplateData holds all data for template variable substitution
type TemplateData struct {
	Case     CaseData     `json:"case"`
	Parties  PartyData    `json:"parties"`
	Office   OfficeData   `json:"office"`
	Today    DateData     `json:"today"`
	Document DocumentData `json:"document"`
}

// CaseData holds process-related template data
type CaseData struct {
	Number       string `json:"number"`
	Class        string `json:"class"`
	Subject      string `json:"subject"`
	Court        string `json:"court"`
	Procedure    string `json:"procedure"`
	Specialty    string `json:"specialty"`
	Demand       string `json:"demand"`
	Phase        string `json:"phase"`
	ClaimValue   string `json:"claim_value"`
	DailyPenalty string `json:"daily_penalty"`
	DaysPending  string `json:"days_pending"`
	Urgency      string `json:"urgency"`
	Priority     string `json:"priority"`
}

// PartyData holds the litigants
type PartyData struct {
	Summary string `json:"summary"`
	Active  string `json:"active"`
	Passive string `json:"passive"`
}

// OfficeData identifies the legal office signing the drafts
type OfficeData struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	Signature string `json:"signature"`
}

// DateData holds current date template data
type DateData struct {
	Date     string `json:"date"`      // 02/01/2006
	DateLong string `json:"date_long"` // 2 de janeiro de 2006
	Year     string `json:"year"`
}

// DocumentData holds the per-request sections of a draft
type DocumentData struct {
	Instructions string `json:"instructions"`
	Grounds      string `json:"grounds"`
}

// GetVariableDictionary returns all available template variables organized by category
func GetVariableDictionary() []VariableCategory {
	return []VariableCategory{
		{
			Name:    "Processo",
			NameKey: "templates.variables.case",
			Variables: []Variable{
				{Key: "case.number", Label: "Número do processo", LabelKey: "templates.variables.case_number", Example: "0800123-34.2023.8.19.0212"},
				{Key: "case.class", Label: "Classe judicial", LabelKey: "templates.variables.case_class", Example: "PROCEDIMENTO COMUM CÍVEL"},
				{Key: "case.subject", Label: "Assunto", LabelKey: "templates.variables.case_subject", Example: "Serviços Hospitalares"},
				{Key: "case.court", Label: "Tribunal", LabelKey: "templates.variables.case_court", Example: "Tribunal de Justiça do Estado do Rio de Janeiro"},
				{Key: "case.procedure", Label: "Procedimento", LabelKey: "templates.variables.case_procedure", Example: "Cirurgia Cardíaca"},
				{Key: "case.specialty", Label: "Especialidade", LabelKey: "templates.variables.case_specialty", Example: "Cardiologia"},
				{Key: "case.demand", Label: "Tipo de demanda", LabelKey: "templates.variables.case_demand", Example: "Cobertura Negada"},
				{Key: "case.phase", Label: "Fase processual", LabelKey: "templates.variables.case_phase", Example: "conhecimento"},
				{Key: "case.claim_value", Label: "Valor da causa", LabelKey: "templates.variables.case_claim_value", Example: "R$ 250.000,00"},
				{Key: "case.daily_penalty", Label: "Multa diária", LabelKey: "templates.variables.case_daily_penalty", Example: "R$ 1.500,00"},
				{Key: "case.days_pending", Label: "Dias de tramitação", LabelKey: "templates.variables.case_days_pending", Example: "800"},
				{Key: "case.urgency", Label: "Score de urgência", LabelKey: "templates.variables.case_urgency", Example: "9"},
				{Key: "case.priority", Label: "Prioridade", LabelKey: "templates.variables.case_priority", Example: "critica"},
			},
		},
		{
			Name:    "Partes",
			NameKey: "templates.variables.parties",
			Variables: []Variable{
				{Key: "parties.summary", Label: "Partes", LabelKey: "templates.variables.parties_summary", Example: "Fulano de Tal vs Unimed Rio"},
				{Key: "parties.active", Label: "Polo ativo", LabelKey: "templates.variables.parties_active", Example: "Fulano de Tal"},
				{Key: "parties.passive", Label: "Polo passivo", LabelKey: "templates.variables.parties_passive", Example: "Unimed Rio"},
			},
		},
		{
			Name:    "Órgão",
			NameKey: "templates.variables.office",
			Variables: []Variable{
				{Key: "office.name", Label: "Nome", LabelKey: "templates.variables.office_name", Example: "MUNICÍPIO DE NATAL"},
				{Key: "office.city", Label: "Cidade", LabelKey: "templates.variables.office_city", Example: "Natal/RN"},
				{Key: "office.signature", Label: "Assinatura", LabelKey: "templates.variables.office_signature", Example: "Procuradoria Geral do Município"},
			},
		},
		{
			Name:    "Datas",
			NameKey: "templates.variables.dates",
			Variables: []Variable{
				{Key: "today.date", Label: "Data de hoje", LabelKey: "templates.variables.today_date", Example: "19/01/2026"},
				{Key: "today.date_long", Label: "Data por extenso", LabelKey: "templates.variables.today_date_long", Example: "19 de janeiro de 2026"},
				{Key: "today.year", Label: "Ano", LabelKey: "templates.variables.today_year", Example: "2026"},
			},
		},
	}
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// LongDate formats t as "2 de janeiro de 2006"
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatBRL formats an amount as Brazilian reais, e.g. R$ 1.500,00
func FormatBRL(v float64) string {
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("R$ %.2f", v)
}

// BuildTemplateData extracts the template data of a record
func BuildTemplateData(r models.CaseRecord, office OfficeData, now time.Time) TemplateData {
	data := TemplateData{
		Case: CaseData{
			Number:      r.NumeroProcesso,
			Class:       r.Classificacao.Classe,
			Subject:     r.Classificacao.Assunto,
			Court:       r.Classificacao.Tribunal,
			Procedure:   r.Classificacao.ProcedimentoEspecifico,
			Specialty:   r.Classificacao.EspecialidadeMedica.DisplayName(),
			Demand:      r.Classificacao.TipoDemanda.DisplayName(),
			Phase:       string(r.FaseProcessual),
			ClaimValue:  FormatBRL(r.ClaimValue()),
			DaysPending: fmt.Sprintf("%d", r.DaysPending()),
			Urgency:     fmt.Sprintf("%d", r.Scores.Urgencia),
			Priority:    string(r.ManagementPriority()),
		},
		Parties: PartyData{
			Summary: r.PartesPrincipais,
		},
		Office: office,
		Today: DateData{
			Date:     now.Format("02/01/2006"),
			DateLong: LongDate(now),
			Year:     now.Format("2006"),
		},
	}

	if data.Case.Subject == "" {
		data.Case.Subject = data.Case.Procedure
	}
	if r.GrowingPenaltyRisk() {
		data.Case.DailyPenalty = FormatBRL(r.DailyPenalty())
	}

	if r.PoloAtivo != nil {
		data.Parties.Active = *r.PoloAtivo
	}
	if r.PoloPassivo != nil {
		data.Parties.Passive = *r.PoloPassivo
	}
	// Health records only carry "A vs B"
	if data.Parties.Active == "" && data.Parties.Passive == "" {
		if ativo, passivo, ok := strings.Cut(r.PartesPrincipais, " vs "); ok {
			data.Parties.Active = strings.TrimSpace(ativo)
			data.Parties.Passive = strings.TrimSpace(passivo)
		}
	}
	return data
}
