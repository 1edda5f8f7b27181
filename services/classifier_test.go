package services

import (
	"testing"

	"juris_dashboard_go/models"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRulesetClassify(t *testing.T) {
	rs := DefaultRuleset()

	tests := []struct {
		name      string
		text      string
		specialty models.MedicalSpecialty
		demand    models.DemandType
	}{
		{"Hospital services", "Serviços Hospitalares", models.SpecialtyCardiologia, models.DemandCoberturaNegada},
		{"Contract adjustment", "Reajuste de Mensalidade", models.SpecialtyOutros, models.DemandReajusteContratual},
		{"Oncology drug", "Tratamento Oncológico - Medicamento", models.SpecialtyOncologia, models.DemandMedicamentoAltoCusto},
		{"Authorization before exam", "Neurologia - Autorização de Exame", models.SpecialtyNeurologia, models.DemandPrazoAutorizacao},
		{"Home care", "Internação Domiciliar", models.SpecialtyOutros, models.DemandHomeCare},
		{"Nothing matches", "Plano de Saúde", models.SpecialtyOutros, models.DemandCoberturaNegada},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := rs.Classify(tt.text)
			assert.Equal(t, tt.specialty, c.Specialty)
			assert.Equal(t, tt.demand, c.Demand)
		})
	}
}

func TestClassifyIsCaseSensitive(t *testing.T) {
	c := DefaultRuleset().Classify("serviços hospitalares")
	assert.Equal(t, models.SpecialtyOutros, c.Specialty)
	assert.False(t, c.SpecialtyMatched)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// "Hospital" comes before "Oncol" in the table
	c := DefaultRuleset().Classify("Hospital Oncológico")
	assert.Equal(t, models.SpecialtyCardiologia, c.Specialty)
	assert.True(t, c.SpecialtyMatched)

	// "Prazo" is checked before "Cirurgia"
	c = DefaultRuleset().Classify("Cirurgia fora do Prazo")
	assert.Equal(t, models.DemandPrazoAutorizacao, c.Demand)
}

func TestCustomRuleset(t *testing.T) {
	rs := ClassificationRuleset{
		Specialties: []KeywordRule[models.MedicalSpecialty]{
			{Keywords: []string{"Rim"}, Category: models.SpecialtyNefrologia},
		},
		Demands: []KeywordRule[models.DemandType]{
			{Keywords: []string{"Transplante"}, Category: models.DemandTransplante},
		},
	}

	c := rs.Classify("Transplante de Rim")
	assert.Equal(t, models.SpecialtyNefrologia, c.Specialty)
	assert.Equal(t, models.DemandTransplante, c.Demand)

	// Zero defaults fall back to the built-in ones
	c = rs.Classify("Hospital")
	assert.Equal(t, models.SpecialtyOutros, c.Specialty)
	assert.Equal(t, models.DemandCoberturaNegada, c.Demand)
}

func TestKeywordRuleIgnoresEmptyKeyword(t *testing.T) {
	rule := KeywordRule[models.DemandType]{Keywords: []string{""}, Category: models.DemandCarencia}
	assert.False(t, rule.Matches("anything"))
}
