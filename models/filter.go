package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names of the process list filter
const (
	QueryEspecialidade      = "especialidade"
	QueryTipoDemanda        = "tipo_demanda"
	QueryPrioridadeGestao   = "prioridade_gestao"
	QueryStatusSemaforo     = "status_semaforo"
	QueryFaseProcessual     = "fase_processual"
	QueryValorCausaMin      = "valor_causa_min"
	QueryValorCausaMax      = "valor_causa_max"
	QueryUrgenciaMin        = "urgencia_min"
	QueryApenasAtivos       = "apenas_ativos"
	QueryEscalacaoExecutiva = "escalacao_executiva"
	QueryRiscoMulta         = "risco_multa"
	QueryBusca              = "busca"
)

// FilterState is the flat set of predicates applied to the process list.
// Empty sets, nil bounds and false flags are inactive.
type FilterState struct {
	Especialidades []MedicalSpecialty   `json:"especialidade,omitempty"`
	TiposDemanda   []DemandType         `json:"tipo_demanda,omitempty"`
	Prioridades    []ManagementPriority `json:"prioridade_gestao,omitempty"`
	Semaforos      []TrafficLightStatus `json:"status_semaforo,omitempty"`
	Fases          []CourtPhase         `json:"fase_processual,omitempty"`

	ValorMin    *float64 `json:"valor_causa_min,omitempty"`
	ValorMax    *float64 `json:"valor_causa_max,omitempty"`
	UrgenciaMin int      `json:"urgencia_min,omitempty"`

	ApenasAtivos       bool   `json:"apenas_ativos,omitempty"`
	EscalacaoExecutiva bool   `json:"escalacao_executiva,omitempty"`
	RiscoMulta         bool   `json:"risco_multa,omitempty"`
	Busca              string `json:"busca,omitempty"`
}

// IsEmpty reports whether no predicate is active
func (f FilterState) IsEmpty() bool {
	return len(f.Especialidades) == 0 &&
		len(f.TiposDemanda) == 0 &&
		len(f.Prioridades) == 0 &&
		len(f.Semaforos) == 0 &&
		len(f.Fases) == 0 &&
		f.ValorMin == nil &&
		f.ValorMax == nil &&
		f.UrgenciaMin <= 0 &&
		!f.ApenasAtivos &&
		!f.EscalacaoExecutiva &&
		!f.RiscoMulta &&
		strings.TrimSpace(f.Busca) == ""
}

// FilterStateFromQuery reads a filter from URL query parameters. Set values
// may be repeated or comma separated. Unknown enum values are dropped and
// unparsable numbers ignored.
func FilterStateFromQuery(q url.Values) FilterState {
	f := FilterState{
		Especialidades: enumValues(q[QueryEspecialidade], MedicalSpecialty.IsValid),
		TiposDemanda:   enumValues(q[QueryTipoDemanda], DemandType.IsValid),
		Prioridades:    enumValues(q[QueryPrioridadeGestao], ManagementPriority.IsValid),
		Semaforos:      enumValues(q[QueryStatusSemaforo], TrafficLightStatus.IsValid),
		Fases:          enumValues(q[QueryFaseProcessual], CourtPhase.IsValid),
		ValorMin:       floatParam(q.Get(QueryValorCausaMin)),
		ValorMax:       floatParam(q.Get(QueryValorCausaMax)),
		Busca:          strings.TrimSpace(q.Get(QueryBusca)),
	}
	if n, err := strconv.Atoi(q.Get(QueryUrgenciaMin)); err == nil && n > 0 {
		f.UrgenciaMin = n
	}
	f.ApenasAtivos = boolParam(q.Get(QueryApenasAtivos))
	f.EscalacaoExecutiva = boolParam(q.Get(QueryEscalacaoExecutiva))
	f.RiscoMulta = boolParam(q.Get(QueryRiscoMulta))
	return f
}

// Query encodes the active predicates as URL query parameters
func (f FilterState) Query() url.Values {
	q := url.Values{}
	addEnums(q, QueryEspecialidade, f.Especialidades)
	addEnums(q, QueryTipoDemanda, f.TiposDemanda)
	addEnums(q, QueryPrioridadeGestao, f.Prioridades)
	addEnums(q, QueryStatusSemaforo, f.Semaforos)
	addEnums(q, QueryFaseProcessual, f.Fases)
	if f.ValorMin != nil {
		q.Set(QueryValorCausaMin, strconv.FormatFloat(*f.ValorMin, 'f', -1, 64))
	}
	if f.ValorMax != nil {
		q.Set(QueryValorCausaMax, strconv.FormatFloat(*f.ValorMax, 'f', -1, 64))
	}
	if f.UrgenciaMin > 0 {
		q.Set(QueryUrgenciaMin, strconv.Itoa(f.UrgenciaMin))
	}
	if f.ApenasAtivos {
		q.Set(QueryApenasAtivos, "true")
	}
	if f.EscalacaoExecutiva {
		q.Set(QueryEscalacaoExecutiva, "true")
	}
	if f.RiscoMulta {
		q.Set(QueryRiscoMulta, "true")
	}
	if s := strings.TrimSpace(f.Busca); s != "" {
		q.Set(QueryBusca, s)
	}
	return q
}

func enumValues[E ~string](raw []string, valid func(E) bool) []E {
	var out []E
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			v := E(strings.TrimSpace(part))
			if valid(v) {
				out = append(out, v)
			}
		}
	}
	return out
}

func addEnums[E ~string](q url.Values, key string, values []E) {
	for _, v := range values {
		q.Add(key, string(v))
	}
}

func floatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func boolParam(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "sim", "on", "yes":
		return true
	}
	return false
}
