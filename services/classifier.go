package services

import (
	"strings"

	"juris_dashboard_go/models"
)

// KeywordRule assigns Category when any keyword occurs in the text.
// Matching is case-sensitive.
type KeywordRule[C ~string] struct {
	Keywords []string
	Category C
}

// Matches reports whether any keyword is a substring of text
func (r KeywordRule[C]) Matches(text string) bool {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// firstMatch returns the category of the first matching rule
func firstMatch[C ~string](rules []KeywordRule[C], text string) (C, bool) {
	for _, rule := range rules {
		if rule.Matches(text) {
			return rule.Category, true
		}
	}
	var zero C
	return zero, false
}

// ClassificationRuleset is the ordered keyword table used to infer the
// medical specialty and demand type of a record. First match wins.
type ClassificationRuleset struct {
	Specialties      []KeywordRule[models.MedicalSpecialty]
	Demands          []KeywordRule[models.DemandType]
	DefaultSpecialty models.MedicalSpecialty
	DefaultDemand    models.DemandType
}

// DefaultSpecialtyRules is the specialty table applied to cover details
var DefaultSpecialtyRules = []KeywordRule[models.MedicalSpecialty]{
	{Keywords: []string{"Hospitalares", "Hospital"}, Category: models.SpecialtyCardiologia},
	{Keywords: []string{"Oncol", "Cancer"}, Category: models.SpecialtyOncologia},
	{Keywords: []string{"Neuro", "Cerebral"}, Category: models.SpecialtyNeurologia},
	{Keywords: []string{"Ortoped", "Fratura"}, Category: models.SpecialtyOrtopedia},
	{Keywords: []string{"Psiq", "Mental"}, Category: models.SpecialtyPsiquiatria},
	{Keywords: []string{"Gastro", "Endoscopia"}, Category: models.SpecialtyGastroenterologia},
	{Keywords: []string{"Gineco", "Obstetr"}, Category: models.SpecialtyGinecologia},
	{Keywords: []string{"Pediatr", "Criança"}, Category: models.SpecialtyPediatria},
	{Keywords: []string{"Urolog", "Próstata"}, Category: models.SpecialtyUrologia},
	{Keywords: []string{"Oftalm", "Olho"}, Category: models.SpecialtyOftalmologia},
}

// DefaultDemandRules is the demand type table applied to cover details
var DefaultDemandRules = []KeywordRule[models.DemandType]{
	{Keywords: []string{"Reajuste"}, Category: models.DemandReajusteContratual},
	{Keywords: []string{"Prazo", "Autorização"}, Category: models.DemandPrazoAutorizacao},
	{Keywords: []string{"Urgência", "Emergência"}, Category: models.DemandUrgenciaEmergencia},
	{Keywords: []string{"Medicamento"}, Category: models.DemandMedicamentoAltoCusto},
	{Keywords: []string{"Cirurgia"}, Category: models.DemandCirurgiaEletiva},
	{Keywords: []string{"Exame"}, Category: models.DemandExamesDiagnosticos},
	{Keywords: []string{"Terapia", "Fisioterapia"}, Category: models.DemandTerapias},
	{Keywords: []string{"Home Care", "Domiciliar"}, Category: models.DemandHomeCare},
}

// DefaultRuleset returns the built-in keyword tables
func DefaultRuleset() ClassificationRuleset {
	return ClassificationRuleset{
		Specialties:      DefaultSpecialtyRules,
		Demands:          DefaultDemandRules,
		DefaultSpecialty: models.SpecialtyOutros,
		DefaultDemand:    models.DemandCoberturaNegada,
	}
}

// Classification is the outcome of applying a ruleset to one text
type Classification struct {
	Specialty        models.MedicalSpecialty
	Demand           models.DemandType
	SpecialtyMatched bool
	DemandMatched    bool
}

// Classify applies both tables to text, using the defaults when nothing matches
func (rs ClassificationRuleset) Classify(text string) Classification {
	out := Classification{
		Specialty: rs.DefaultSpecialty,
		Demand:    rs.DefaultDemand,
	}
	if out.Specialty == "" {
		out.Specialty = models.SpecialtyOutros
	}
	if out.Demand == "" {
		out.Demand = models.DemandCoberturaNegada
	}
	if s, ok := firstMatch(rs.Specialties, text); ok {
		out.Specialty, out.SpecialtyMatched = s, true
	}
	if d, ok := firstMatch(rs.Demands, text); ok {
		out.Demand, out.DemandMatched = d, true
	}
	return out
}
