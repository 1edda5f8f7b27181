package models

// MedicalSpecialty is the medical area a health-insurance claim refers to
type MedicalSpecialty string

const (
	SpecialtyCardiologia       MedicalSpecialty = "cardiologia"
	SpecialtyOncologia         MedicalSpecialty = "oncologia"
	SpecialtyNeurologia        MedicalSpecialty = "neurologia"
	SpecialtyOrtopedia         MedicalSpecialty = "ortopedia"
	SpecialtyPsiquiatria       MedicalSpecialty = "psiquiatria"
	SpecialtyGastroenterologia MedicalSpecialty = "gastroenterologia"
	SpecialtyGinecologia       MedicalSpecialty = "ginecologia"
	SpecialtyPediatria         MedicalSpecialty = "pediatria"
	SpecialtyUrologia          MedicalSpecialty = "urologia"
	SpecialtyOftalmologia      MedicalSpecialty = "oftalmologia"
	SpecialtyDermatologia      MedicalSpecialty = "dermatologia"
	SpecialtyEndocrinologia    MedicalSpecialty = "endocrinologia"
	SpecialtyReumatologia      MedicalSpecialty = "reumatologia"
	SpecialtyHematologia       MedicalSpecialty = "hematologia"
	SpecialtyNefrologia        MedicalSpecialty = "nefrologia"
	SpecialtyPneumologia       MedicalSpecialty = "pneumologia"
	SpecialtyOutros            MedicalSpecialty = "outros"
)

var specialtyNames = map[MedicalSpecialty]string{
	SpecialtyCardiologia:       "Cardiologia",
	SpecialtyOncologia:         "Oncologia",
	SpecialtyNeurologia:        "Neurologia",
	SpecialtyOrtopedia:         "Ortopedia",
	SpecialtyPsiquiatria:       "Psiquiatria",
	SpecialtyGastroenterologia: "Gastroenterologia",
	SpecialtyGinecologia:       "Ginecologia",
	SpecialtyPediatria:         "Pediatria",
	SpecialtyUrologia:          "Urologia",
	SpecialtyOftalmologia:      "Oftalmologia",
	SpecialtyDermatologia:      "Dermatologia",
	SpecialtyEndocrinologia:    "Endocrinologia",
	SpecialtyReumatologia:      "Reumatologia",
	SpecialtyHematologia:       "Hematologia",
	SpecialtyNefrologia:        "Nefrologia",
	SpecialtyPneumologia:       "Pneumologia",
	SpecialtyOutros:            "Outros",
}

// DisplayName returns the label shown to users
func (s MedicalSpecialty) DisplayName() string {
	if name, ok := specialtyNames[s]; ok {
		return name
	}
	return string(s)
}

// IsValid reports whether s is a known specialty
func (s MedicalSpecialty) IsValid() bool {
	_, ok := specialtyNames[s]
	return ok
}

// DemandType is the kind of health-insurance dispute
type DemandType string

const (
	DemandCoberturaNegada          DemandType = "cobertura_negada"
	DemandReajusteContratual       DemandType = "reajuste_contratual"
	DemandPrazoAutorizacao         DemandType = "prazo_autorizacao"
	DemandRedeCredenciada          DemandType = "rede_credenciada"
	DemandUrgenciaEmergencia       DemandType = "urgencia_emergencia"
	DemandDoencaPreexistente       DemandType = "doenca_preexistente"
	DemandCarencia                 DemandType = "carencia"
	DemandMedicamentoAltoCusto     DemandType = "medicamento_alto_custo"
	DemandProcedimentoExperimental DemandType = "procedimento_experimental"
	DemandHomeCare                 DemandType = "home_care"
	DemandInternacaoDomiciliar     DemandType = "internacao_domiciliar"
	DemandTerapias                 DemandType = "terapias"
	DemandExamesDiagnosticos       DemandType = "exames_diagnosticos"
	DemandCirurgiaEletiva          DemandType = "cirurgia_eletiva"
	DemandTransplante              DemandType = "transplante"
	DemandOutros                   DemandType = "outros"
)

var demandTypeNames = map[DemandType]string{
	DemandCoberturaNegada:          "Cobertura Negada",
	DemandReajusteContratual:       "Reajuste Contratual",
	DemandPrazoAutorizacao:         "Prazo Autorização",
	DemandRedeCredenciada:          "Rede Credenciada",
	DemandUrgenciaEmergencia:       "Urgência/Emergência",
	DemandDoencaPreexistente:       "Doença Preexistente",
	DemandCarencia:                 "Carência",
	DemandMedicamentoAltoCusto:     "Medicamento Alto Custo",
	DemandProcedimentoExperimental: "Procedimento Experimental",
	DemandHomeCare:                 "Home Care",
	DemandInternacaoDomiciliar:     "Internação Domiciliar",
	DemandTerapias:                 "Terapias",
	DemandExamesDiagnosticos:       "Exames Diagnósticos",
	DemandCirurgiaEletiva:          "Cirurgia Eletiva",
	DemandTransplante:              "Transplante",
	DemandOutros:                   "Outros",
}

// DisplayName returns the label shown to users
func (d DemandType) DisplayName() string {
	if name, ok := demandTypeNames[d]; ok {
		return name
	}
	return string(d)
}

// IsValid reports whether d is a known demand type
func (d DemandType) IsValid() bool {
	_, ok := demandTypeNames[d]
	return ok
}

// ManagementPriority ranks how much management attention a case needs
type ManagementPriority string

const (
	PriorityBaixa   ManagementPriority = "baixa"
	PriorityMedia   ManagementPriority = "media"
	PriorityAlta    ManagementPriority = "alta"
	PriorityCritica ManagementPriority = "critica"
)

// IsValid reports whether p is a known priority
func (p ManagementPriority) IsValid() bool {
	switch p {
	case PriorityBaixa, PriorityMedia, PriorityAlta, PriorityCritica:
		return true
	}
	return false
}

// TrafficLightStatus is the three-level visual urgency indicator
type TrafficLightStatus string

const (
	TrafficLightVerde    TrafficLightStatus = "verde"
	TrafficLightAmarelo  TrafficLightStatus = "amarelo"
	TrafficLightVermelho TrafficLightStatus = "vermelho"
)

// IsValid reports whether t is a known status
func (t TrafficLightStatus) IsValid() bool {
	switch t {
	case TrafficLightVerde, TrafficLightAmarelo, TrafficLightVermelho:
		return true
	}
	return false
}

// CourtPhase is the procedural stage of a case
type CourtPhase string

const (
	PhaseConhecimento CourtPhase = "conhecimento"
	PhaseExecucao     CourtPhase = "execucao"
	PhaseRecurso      CourtPhase = "recurso"
	PhaseArquivo      CourtPhase = "arquivo"
)

// IsValid reports whether p is a known phase
func (p CourtPhase) IsValid() bool {
	switch p {
	case PhaseConhecimento, PhaseExecucao, PhaseRecurso, PhaseArquivo:
		return true
	}
	return false
}

// UrgencyCharacter describes the medical urgency of the requested procedure
type UrgencyCharacter string

const (
	UrgencyEletivo    UrgencyCharacter = "eletivo"
	UrgencyUrgente    UrgencyCharacter = "urgente"
	UrgencyEmergencia UrgencyCharacter = "emergencia"
)

// RecordSchema identifies which raw shape a record was normalized from
type RecordSchema string

const (
	SchemaGeneric         RecordSchema = "generic"
	SchemaHealthInsurance RecordSchema = "health_insurance"
)

// DataSource selects where raw records are loaded from
type DataSource string

const (
	SourcePGM    DataSource = "pgm"
	SourceUnimed DataSource = "unimed"
	SourceSQLite DataSource = "sqlite"
)

// IsValidDataSource checks if a source name is supported
func IsValidDataSource(source string) bool {
	switch DataSource(source) {
	case SourcePGM, SourceUnimed, SourceSQLite:
		return true
	}
	return false
}
