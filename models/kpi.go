package models

// KPIs are the aggregate dashboard metrics over a full collection
type KPIs struct {
	TotalProcessos          int     `json:"total_processos"`
	ProcessosAtivos         int     `json:"processos_ativos"`
	ExposicaoTotal          float64 `json:"exposicao_total"`
	CasosEscalacaoExecutiva int     `json:"casos_escalacao_executiva"`
	MultasAtivas            int     `json:"multas_ativas"`
	TempoMedioTramitacao    int     `json:"tempo_medio_tramitacao"`
	ValorMedioCausa         float64 `json:"valor_medio_causa"`

	PercentualAtivos    float64 `json:"percentual_ativos"`
	PercentualEscalacao float64 `json:"percentual_escalacao"`
	PercentualMultas    float64 `json:"percentual_multas"`

	DistribuicaoEspecialidades map[MedicalSpecialty]int   `json:"distribuicao_especialidades"`
	DistribuicaoTiposDemanda   map[DemandType]int         `json:"distribuicao_tipos_demanda"`
	DistribuicaoPrioridades    map[ManagementPriority]int `json:"distribuicao_prioridades"`
	DistribuicaoSemaforo       map[TrafficLightStatus]int `json:"distribuicao_semaforo"`
}
