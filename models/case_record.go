package models

import (
	"encoding/json"
	"time"
)

// Thresholds used by the derived fields of a CaseRecord
const (
	EscalationUrgencyScore   = 9
	EscalationClaimValue     = 200000.0
	EscalationDailyPenalty   = 1000.0
	TrafficLightRedScore     = 8
	TrafficLightYellowScore  = 6
	PriorityMediumScore      = 4
	MinScore                 = 1
	MaxScore                 = 10
	LegalAreaHealthInsurance = "direito_saude_suplementar"
)

// CaseRecord is the normalized representation of one legal process.
// Derived fields (priority, traffic light, escalation, penalty risk) are
// methods so they can never drift from the scores and amounts they depend on.
type CaseRecord struct {
	// Identity
	ID             string       `json:"id"`
	NumeroProcesso string       `json:"numero_processo"`
	LinkProcesso   *string      `json:"link_processo,omitempty"`
	DataExtracao   time.Time    `json:"data_extracao_dados"`
	Schema         RecordSchema `json:"schema"`

	// Parties
	PartesPrincipais string  `json:"partes_principais"`
	PoloAtivo        *string `json:"polo_ativo,omitempty"`
	PoloPassivo      *string `json:"polo_passivo,omitempty"`

	Classificacao Classification `json:"classificacao_demanda"`
	Financeiro    Financials     `json:"aspectos_financeiros"`
	Cronologia    Timeline       `json:"cronologia_processual"`
	Scores        Scores         `json:"metricas_dashboard"`

	Liminar               *Injunction `json:"liminar_antecipacao,omitempty"`
	FaseProcessual        CourtPhase  `json:"fase_processual"`
	AguardandoCumprimento bool        `json:"aguardando_cumprimento"`

	// Assignment made from the dashboard; never written back to a source
	Responsavel    *Assignee  `json:"responsavel,omitempty"`
	DataAtribuicao *time.Time `json:"data_atribuicao,omitempty"`

	DetalhesCapa    string          `json:"detalhes_capa_processual,omitempty"`
	UltimoMovimento string          `json:"ultimo_movimento_processo,omitempty"`
	LinhaTempo      []TimelineEntry `json:"linha_tempo_otimizada,omitempty"`
	AnaliseLLM      map[string]any  `json:"analise_llm,omitempty"`
}

// Classification groups the categorization of the demand
type Classification struct {
	AreaDireito            string           `json:"area_direito"`
	TipoDemanda            DemandType       `json:"tipo_demanda"`
	EspecialidadeMedica    MedicalSpecialty `json:"especialidade_medica"`
	ProcedimentoEspecifico string           `json:"procedimento_especifico"`
	Classe                 string           `json:"classe,omitempty"`
	Assunto                string           `json:"assunto,omitempty"`
	Tribunal               string           `json:"tribunal,omitempty"`
}

// Financials holds the monetary aspects of a case
type Financials struct {
	ValorInicialCausa      float64  `json:"valor_inicial_causa"`
	ValorPedidoDanosMorais *float64 `json:"valor_pedido_danos_morais,omitempty"`
	ValorFinalCondenacao   *float64 `json:"valor_final_condenacao,omitempty"`
	ValorMultaConfigurada  float64  `json:"valor_multa_configurada"`
	ValorMultaAcumulado    float64  `json:"valor_multa_acumulado"`
	ValorMultaDiaria       *float64 `json:"valor_multa_diaria,omitempty"`
}

// Timeline holds the duration data of a case
type Timeline struct {
	DiasTramitacaoTotal    int  `json:"dias_tramitacao_total"`
	DiasAtePrimeiraDecisao int  `json:"dias_ate_primeira_decisao"`
	ProcessoAtivo          bool `json:"processo_ativo"`
}

// Scores are the 1-10 executive metrics
type Scores struct {
	Urgencia          int `json:"score_urgencia"`
	Complexidade      int `json:"score_complexidade"`
	ImpactoFinanceiro int `json:"score_impacto_financeiro"`
}

// Injunction is a preliminary injunction (liminar/antecipação de tutela)
type Injunction struct {
	Requerida        bool       `json:"requerida"`
	Deferida         bool       `json:"deferida"`
	DataDecisao      *time.Time `json:"data_decisao,omitempty"`
	ResumoObrigacao  []string   `json:"resumo_obrigacao,omitempty"`
	PrazoCumprimento int        `json:"prazo_cumprimento"`
	MultaDiaria      float64    `json:"multa_diaria"`
	LimiteMulta      float64    `json:"limite_multa"`
}

// Assignee is the person responsible for a case
type Assignee struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
	Role string `json:"role,omitempty"`
}

// TimelineEntry is one event of the optimized process timeline
type TimelineEntry struct {
	Data       string   `json:"data"`
	Descricao  string   `json:"descricao"`
	Documentos []string `json:"documento,omitempty"`
}

// DerivedMetrics is the computed view of a record's status flags
type DerivedMetrics struct {
	PrioridadeGestao         ManagementPriority `json:"prioridade_gestao"`
	StatusSemaforo           TrafficLightStatus `json:"status_semaforo"`
	RequerEscalacaoExecutiva bool               `json:"requer_escalacao_executiva"`
	RiscoMultaCrescente      bool               `json:"risco_multa_crescente"`
	PossuiLiminarAtiva       bool               `json:"possui_liminar_ativa"`
	CaraterUrgencia          UrgencyCharacter   `json:"carater_urgencia"`
}

// ClaimValue returns the initial claim value
func (r CaseRecord) ClaimValue() float64 {
	return r.Financeiro.ValorInicialCausa
}

// DailyPenalty returns the daily penalty, 0 when absent
func (r CaseRecord) DailyPenalty() float64 {
	if r.Financeiro.ValorMultaDiaria == nil {
		return 0
	}
	return *r.Financeiro.ValorMultaDiaria
}

// DaysPending returns the total days the process has been pending
func (r CaseRecord) DaysPending() int {
	return r.Cronologia.DiasTramitacaoTotal
}

// IsActive reports whether the process is still running
func (r CaseRecord) IsActive() bool {
	return r.Cronologia.ProcessoAtivo
}

// RequiresEscalation reports whether the case needs executive attention
func (r CaseRecord) RequiresEscalation() bool {
	return r.Scores.Urgencia >= EscalationUrgencyScore ||
		r.ClaimValue() > EscalationClaimValue ||
		r.DailyPenalty() > EscalationDailyPenalty
}

// TrafficLight derives the status light from the urgency score
func (r CaseRecord) TrafficLight() TrafficLightStatus {
	switch {
	case r.Scores.Urgencia >= TrafficLightRedScore:
		return TrafficLightVermelho
	case r.Scores.Urgencia >= TrafficLightYellowScore:
		return TrafficLightAmarelo
	default:
		return TrafficLightVerde
	}
}

// ManagementPriority derives the priority from the urgency score
func (r CaseRecord) ManagementPriority() ManagementPriority {
	switch {
	case r.Scores.Urgencia >= TrafficLightRedScore:
		return PriorityCritica
	case r.Scores.Urgencia >= TrafficLightYellowScore:
		return PriorityAlta
	case r.Scores.Urgencia >= PriorityMediumScore:
		return PriorityMedia
	default:
		return PriorityBaixa
	}
}

// UrgencyCharacter derives the medical urgency label from the urgency score
func (r CaseRecord) UrgencyCharacter() UrgencyCharacter {
	switch {
	case r.Scores.Urgencia >= TrafficLightRedScore:
		return UrgencyUrgente
	case r.Scores.Urgencia >= TrafficLightYellowScore:
		return UrgencyEmergencia
	default:
		return UrgencyEletivo
	}
}

// GrowingPenaltyRisk reports whether a daily penalty is accruing
func (r CaseRecord) GrowingPenaltyRisk() bool {
	return r.DailyPenalty() > 0
}

// HasActiveInjunction reports whether a preliminary injunction was granted
func (r CaseRecord) HasActiveInjunction() bool {
	return r.Liminar != nil && r.Liminar.Deferida
}

// Derived returns all computed flags at once
func (r CaseRecord) Derived() DerivedMetrics {
	return DerivedMetrics{
		PrioridadeGestao:         r.ManagementPriority(),
		StatusSemaforo:           r.TrafficLight(),
		RequerEscalacaoExecutiva: r.RequiresEscalation(),
		RiscoMultaCrescente:      r.GrowingPenaltyRisk(),
		PossuiLiminarAtiva:       r.HasActiveInjunction(),
		CaraterUrgencia:          r.UrgencyCharacter(),
	}
}

// WithAssignee returns a copy of the record assigned to a. The receiver is
// left untouched.
func (r CaseRecord) WithAssignee(a Assignee, at time.Time) CaseRecord {
	out := r
	assignee := a
	out.Responsavel = &assignee
	assignedAt := at
	out.DataAtribuicao = &assignedAt
	return out
}

// MarshalJSON includes the derived metrics alongside the stored fields
func (r CaseRecord) MarshalJSON() ([]byte, error) {
	type plain CaseRecord
	return json.Marshal(struct {
		plain
		Derivados DerivedMetrics `json:"metricas_derivadas"`
	}{
		plain:     plain(r),
		Derivados: r.Derived(),
	})
}

// Float64Ptr returns a pointer to v
func Float64Ptr(v float64) *float64 {
	return &v
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
