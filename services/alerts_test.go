package services

import (
	"math/rand"
	"testing"

	"juris_dashboard_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/message"
)

func TestGenerateAlertsHighValueCase(t *testing.T) {
	r := newRecord(1, withUrgency(9), withClaim(250000), withPenalty(1500), withDays(800))

	alerts := GenerateAlerts([]models.CaseRecord{r})
	require.Len(t, alerts, 3)

	esc := alerts[0]
	assert.Equal(t, "escalacao-1", esc.ID)
	assert.Equal(t, models.AlertEscalacaoExecutiva, esc.Tipo)
	assert.Equal(t, models.SeverityCritica, esc.Severidade)
	assert.Equal(t, 1, esc.PrazoAcao)
	assert.Equal(t, "Gerente Jurídico", esc.ResponsavelSugerido)
	assert.Equal(t, "Caso crítico requer atenção da diretoria - Score urgência: 9/10", esc.Mensagem)
	require.NotNil(t, esc.ValorImpacto)
	assert.Equal(t, 250000.0, *esc.ValorImpacto)
	assert.Equal(t, r.NumeroProcesso, esc.Processo)
	assert.Equal(t, "1", esc.RecordID)

	penalty := alerts[1]
	assert.Equal(t, models.AlertMultaAlta, penalty.Tipo)
	assert.Equal(t, 2, penalty.PrazoAcao)
	assert.Contains(t, penalty.Mensagem, "1.500")
	require.NotNil(t, penalty.ValorImpacto)
	assert.Equal(t, 45000.0, *penalty.ValorImpacto)

	long := alerts[2]
	assert.Equal(t, models.AlertTramitacaoLonga, long.Tipo)
	assert.Equal(t, models.SeverityImportante, long.Severidade)
	assert.Equal(t, "800 dias de tramitação - Alto valor em risco", long.Mensagem)
}

func TestGenerateAlertsHighUrgencyWithoutEscalation(t *testing.T) {
	r := newRecord(5, withSpecialty(models.SpecialtyNeurologia), withUrgency(8), withClaim(80000))

	alerts := GenerateAlerts([]models.CaseRecord{r})
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertAltaUrgencia, alerts[0].Tipo)
	assert.Equal(t, 7, alerts[0].PrazoAcao)
	assert.Equal(t, "Procedimento de alta urgência médica - Neurologia", alerts[0].Mensagem)
	assert.Nil(t, alerts[0].ValorImpacto)
}

func TestGenerateAlertsThresholdsAreStrict(t *testing.T) {
	records := []models.CaseRecord{
		newRecord(1, withPenalty(1000)),
		newRecord(2, withDays(730), withClaim(100000)),
		newRecord(3, withDays(900), withClaim(50000)),
	}
	assert.Empty(t, GenerateAlerts(records))
}

func TestGenerateAlertsOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	records := make([]models.CaseRecord, 0, 200)
	for i := 1; i <= 200; i++ {
		opts := []recordOpt{
			withUrgency(1 + rng.Intn(10)),
			withClaim(float64(rng.Intn(400000))),
			withDays(rng.Intn(1500)),
		}
		if rng.Intn(3) == 0 {
			opts = append(opts, withPenalty(float64(rng.Intn(3000))))
		}
		records = append(records, newRecord(i, opts...))
	}

	alerts := GenerateAlerts(records)
	require.NotEmpty(t, alerts)
	for i := 1; i < len(alerts); i++ {
		prev, cur := alerts[i-1], alerts[i]
		require.LessOrEqual(t, prev.Severidade.Rank(), cur.Severidade.Rank())
		if prev.Severidade == cur.Severidade {
			require.LessOrEqual(t, prev.PrazoAcao, cur.PrazoAcao)
		}
	}

	// every escalation-worthy record yields exactly one escalation alert
	escalations := 0
	for _, r := range records {
		if r.RequiresEscalation() {
			escalations++
		}
	}
	count := 0
	for _, a := range alerts {
		if a.Tipo == models.AlertEscalacaoExecutiva {
			count++
		}
	}
	assert.Equal(t, escalations, count)
}

func TestGenerateAlertsStableWithinTier(t *testing.T) {
	records := []models.CaseRecord{
		newRecord(1, withUrgency(9)),
		newRecord(2, withUrgency(10)),
		newRecord(3, withClaim(300000)),
	}

	alerts := GenerateAlerts(records)
	require.Len(t, alerts, 3)
	assert.Equal(t, []string{"escalacao-1", "escalacao-2", "escalacao-3"}, []string{alerts[0].ID, alerts[1].ID, alerts[2].ID})
}

func TestGenerateAlertsWithCustomRules(t *testing.T) {
	rules := []AlertRule{
		{
			Type:      "REVISAO",
			IDPrefix:  "revisao",
			Severity:  models.SeverityInformativa,
			DueInDays: 30,
			Applies:   func(r models.CaseRecord) bool { return !r.IsActive() },
			Message: func(p *message.Printer, r models.CaseRecord) string {
				return p.Sprintf("Processo %s encerrado", r.NumeroProcesso)
			},
		},
		{
			Type:      models.AlertEscalacaoExecutiva,
			IDPrefix:  "escalacao",
			Severity:  models.SeverityCritica,
			DueInDays: 1,
			Applies:   models.CaseRecord.RequiresEscalation,
		},
	}

	alerts := GenerateAlertsWith(sampleRecords(), rules)
	require.Len(t, alerts, 5)
	assert.Equal(t, models.SeverityCritica, alerts[0].Severidade)
	assert.Equal(t, "revisao-4", alerts[3].ID)
	assert.Equal(t, "revisao-9", alerts[4].ID)

	assert.Len(t, CriticalAlerts(alerts), 3)
	assert.Len(t, FilterAlertsBySeverity(alerts, models.SeverityInformativa), 2)
	assert.Len(t, FilterAlertsBySeverity(alerts, ""), 5)
}

func TestGenerateAlertsEmpty(t *testing.T) {
	alerts := GenerateAlerts(nil)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestAlertsForRecords(t *testing.T) {
	records := []models.CaseRecord{
		newRecord(1, withUrgency(9)),
		newRecord(2, withUrgency(8)),
		newRecord(3, withClaim(300000)),
	}
	alerts := GenerateAlerts(records)
	require.Len(t, alerts, 3)

	kept := AlertsForRecords(alerts, []models.CaseRecord{records[0], records[1]})
	require.Len(t, kept, 2)
	assert.Equal(t, "escalacao-1", kept[0].ID)
	assert.Equal(t, "urgencia-2", kept[1].ID)

	assert.Empty(t, AlertsForRecords(alerts, nil))
}
