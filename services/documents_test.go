package services

import (
	"context"
	"testing"
	"time"

	"juris_dashboard_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOffice = OfficeData{Name: "MUNICÍPIO DE NATAL", City: "Natal/RN", Signature: "Procuradoria Geral do Município"}

func newTestGenerator(delay time.Duration) *TemplateGenerator {
	g := NewTemplateGenerator(testOffice, delay)
	g.now = fixedClock
	return g
}

func TestGenerateEveryDocumentType(t *testing.T) {
	g := newTestGenerator(0)
	r := newRecord(3, withSpecialty(models.SpecialtyCardiologia), withClaim(250000))

	for _, docType := range DocumentTypes() {
		t.Run(string(docType), func(t *testing.T) {
			doc, err := g.Generate(context.Background(), docType, r, DocumentOptions{})
			require.NoError(t, err)

			_, err = uuid.Parse(doc.ID)
			assert.NoError(t, err)
			assert.Equal(t, "3", doc.RecordID)
			assert.Equal(t, docType, doc.Tipo)
			assert.Equal(t, DocumentStatusDraft, doc.Status)
			assert.Equal(t, fixedNow, doc.DataGeracao)
			assert.Equal(t, documentTemplates[docType].Name, doc.Metadados.TemplateUtilizado)
			assert.Contains(t, doc.Conteudo, r.NumeroProcesso)
			assert.Contains(t, doc.Conteudo, "28 de junho de 2025")
			assert.NotContains(t, doc.Conteudo, "{{")
			assert.NotContains(t, doc.Conteudo, "\n\n\n")
		})
	}
}

func TestGenerateContestacaoContent(t *testing.T) {
	r := newRecord(1, withSpecialty(models.SpecialtyCardiologia), withClaim(250000))
	r.Classificacao.ProcedimentoEspecifico = "Cirurgia Cardíaca"

	doc, err := newTestGenerator(0).Generate(context.Background(), DocContestacao, r, DocumentOptions{})
	require.NoError(t, err)

	assert.Contains(t, doc.Conteudo, "CONTESTAÇÃO")
	assert.Contains(t, doc.Conteudo, "MUNICÍPIO DE NATAL")
	assert.Contains(t, doc.Conteudo, "Cirurgia Cardíaca (Cardiologia)")
	assert.Contains(t, doc.Conteudo, "• Lei 9.656/98")
	assert.Contains(t, doc.Conteudo, "Natal/RN, 28 de junho de 2025.")
	assert.NotContains(t, doc.Conteudo, "OBSERVAÇÕES ESPECIAIS")
}

func TestGenerateSanitizesInstructions(t *testing.T) {
	r := newRecord(1)
	opts := DocumentOptions{Instructions: `Destacar <b>urgência</b> & prazo<script>alert(1)</script>`}

	doc, err := newTestGenerator(0).Generate(context.Background(), DocPeticao, r, opts)
	require.NoError(t, err)

	assert.Contains(t, doc.Conteudo, "REQUERIMENTOS ESPECÍFICOS:\nDestacar urgência & prazo")
	assert.NotContains(t, doc.Conteudo, "<b>")
	assert.NotContains(t, doc.Conteudo, "alert(1)")
}

func TestGenerateUnknownType(t *testing.T) {
	_, err := newTestGenerator(0).Generate(context.Background(), "habeas_corpus", newRecord(1), DocumentOptions{})
	assert.ErrorIs(t, err, ErrUnknownDocumentType)
	assert.False(t, DocumentType("habeas_corpus").IsValid())
	assert.True(t, DocRecurso.IsValid())
}

func TestGenerateHonorsContext(t *testing.T) {
	g := NewTemplateGenerator(testOffice, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := g.Generate(ctx, DocContestacao, newRecord(1), DocumentOptions{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGenerateWaitsForDelay(t *testing.T) {
	g := NewTemplateGenerator(testOffice, 20*time.Millisecond)

	doc, err := g.Generate(context.Background(), DocEmbargo, newRecord(1), DocumentOptions{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, doc.Metadados.TempoGeracaoMS, int64(20))
}

func TestLegalGrounds(t *testing.T) {
	pgm := newRecord(1)
	pgm.Classificacao.AreaDireito = "administrativo"
	pgm.Classificacao.Classe = "CUMPRIMENTO DE SENTENÇA CONTRA A FAZENDA PÚBLICA"
	pgm.Classificacao.Assunto = "Enquadramento"

	assert.Equal(t, []string{
		"Lei 8.429/92", "Lei 4.717/65", "Decreto-Lei 201/67",
		"Lei 8.112/90", "Lei Complementar Municipal",
		"CPC, art. 523 e seguintes", "Lei 10.166/2017",
	}, LegalGrounds(pgm))

	health := newRecord(2)
	health.Liminar = &models.Injunction{Requerida: true, Deferida: true}
	assert.Equal(t, []string{
		"Lei 9.656/98", "Lei 8.078/90 (Código de Defesa do Consumidor)",
		"CPC, art. 300", "CPC, art. 537",
	}, LegalGrounds(health))

	none := newRecord(3)
	none.Classificacao.AreaDireito = "fiscal"
	assert.Empty(t, LegalGrounds(none))
	assert.Equal(t, "Aplicam-se ao caso os dispositivos legais pertinentes à matéria.", groundsSection(nil))
}
