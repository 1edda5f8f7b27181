package services

import (
	"fmt"

	"juris_dashboard_go/models"
)

type recordOpt func(*models.CaseRecord)

func withSpecialty(s models.MedicalSpecialty) recordOpt {
	return func(r *models.CaseRecord) { r.Classificacao.EspecialidadeMedica = s }
}

func withDemand(d models.DemandType) recordOpt {
	return func(r *models.CaseRecord) { r.Classificacao.TipoDemanda = d }
}

func withUrgency(u int) recordOpt {
	return func(r *models.CaseRecord) { r.Scores.Urgencia = u }
}

func withClaim(v float64) recordOpt {
	return func(r *models.CaseRecord) { r.Financeiro.ValorInicialCausa = v }
}

func withPenalty(v float64) recordOpt {
	return func(r *models.CaseRecord) { r.Financeiro.ValorMultaDiaria = models.Float64Ptr(v) }
}

func withDays(d int) recordOpt {
	return func(r *models.CaseRecord) { r.Cronologia.DiasTramitacaoTotal = d }
}

func inactive() recordOpt {
	return func(r *models.CaseRecord) { r.Cronologia.ProcessoAtivo = false }
}

func withPhase(p models.CourtPhase) recordOpt {
	return func(r *models.CaseRecord) { r.FaseProcessual = p }
}

// newRecord builds a quiet record: low urgency, small claim, no penalty
func newRecord(id int, opts ...recordOpt) models.CaseRecord {
	r := models.CaseRecord{
		ID:               fmt.Sprintf("%d", id),
		NumeroProcesso:   fmt.Sprintf("0800%03d-34.2023.8.19.0212", id),
		PartesPrincipais: fmt.Sprintf("Beneficiário %d vs Unimed Rio", id),
		Classificacao: models.Classification{
			AreaDireito:            models.LegalAreaHealthInsurance,
			TipoDemanda:            models.DemandCoberturaNegada,
			EspecialidadeMedica:    models.SpecialtyOutros,
			ProcedimentoEspecifico: "Consulta",
		},
		Financeiro: models.Financials{ValorInicialCausa: 20000},
		Cronologia: models.Timeline{DiasTramitacaoTotal: 100, DiasAtePrimeiraDecisao: 20, ProcessoAtivo: true},
		Scores:     models.Scores{Urgencia: 3, Complexidade: 3, ImpactoFinanceiro: 3},

		FaseProcessual: models.PhaseConhecimento,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func ids(records []models.CaseRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
