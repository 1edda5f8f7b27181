package services

import (
	"context"
	"fmt"
	"html"
	"slices"
	"strings"
	"time"

	"juris_dashboard_go/models"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// DocumentStatusDraft is the status of every freshly generated document
const DocumentStatusDraft = "rascunho"

// maxInstructionsLength caps the free-text instructions kept in a draft
const maxInstructionsLength = 4000

// DocumentOptions are the per-request inputs of a generation
type DocumentOptions struct {
	Instructions string
}

// DocumentMetadata describes how a document was produced
type DocumentMetadata struct {
	TemplateUtilizado string   `json:"template_utilizado"`
	FundamentosLegais []string `json:"fundamentos_legais"`
	TempoGeracaoMS    int64    `json:"tempo_geracao"`
}

// GeneratedDocument is a draft produced for one record
type GeneratedDocument struct {
	ID          string           `json:"id"`
	RecordID    string           `json:"processo_id"`
	Tipo        DocumentType     `json:"tipo"`
	Titulo      string           `json:"titulo"`
	Conteudo    string           `json:"conteudo"`
	DataGeracao time.Time        `json:"data_geracao"`
	Status      string           `json:"status"`
	Metadados   DocumentMetadata `json:"metadados"`
}

// DocumentGenerator produces legal drafts. Implementations backed by a
// language model can replace TemplateGenerator behind this interface.
type DocumentGenerator interface {
	Generate(ctx context.Context, docType DocumentType, record models.CaseRecord, opts DocumentOptions) (*GeneratedDocument, error)
}

// TemplateGenerator fills the built-in templates with record data
type TemplateGenerator struct {
	office OfficeData
	delay  time.Duration
	now    func() time.Time
	policy *bluemonday.Policy
}

// NewTemplateGenerator creates a generator signing drafts as office. A
// positive delay simulates the latency of a model-backed generator.
func NewTemplateGenerator(office OfficeData, delay time.Duration) *TemplateGenerator {
	return &TemplateGenerator{
		office: office,
		delay:  delay,
		now:    time.Now,
		policy: bluemonday.StrictPolicy(),
	}
}

// Generate renders the template of docType for record
func (g *TemplateGenerator) Generate(ctx context.Context, docType DocumentType, record models.CaseRecord, opts DocumentOptions) (*GeneratedDocument, error) {
	tmpl, ok := documentTemplates[docType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocumentType, docType)
	}

	started := g.now()
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	grounds := LegalGrounds(record)
	data := BuildTemplateData(record, g.office, started)
	data.Document = DocumentData{
		Grounds:      groundsSection(grounds),
		Instructions: g.instructionsSection(tmpl.InstructionsHeading, opts.Instructions),
	}
	content := collapseBlankLines(RenderTemplate(tmpl.Body, data))

	return &GeneratedDocument{
		ID:          uuid.New().String(),
		RecordID:    record.ID,
		Tipo:        docType,
		Titulo:      tmpl.Title,
		Conteudo:    content,
		DataGeracao: started,
		Status:      DocumentStatusDraft,
		Metadados: DocumentMetadata{
			TemplateUtilizado: tmpl.Name,
			FundamentosLegais: grounds,
			TempoGeracaoMS:    g.now().Sub(started).Milliseconds(),
		},
	}, nil
}

// SanitizeInstructions strips markup from user supplied text
func (g *TemplateGenerator) SanitizeInstructions(s string) string {
	clean := strings.TrimSpace(html.UnescapeString(g.policy.Sanitize(s)))
	if len([]rune(clean)) > maxInstructionsLength {
		clean = string([]rune(clean)[:maxInstructionsLength])
	}
	return clean
}

func (g *TemplateGenerator) instructionsSection(heading, instructions string) string {
	clean := g.SanitizeInstructions(instructions)
	if clean == "" {
		return ""
	}
	return heading + ":\n" + clean
}

// LegalGrounds lists the statutes that apply to a record, without duplicates
func LegalGrounds(r models.CaseRecord) []string {
	grounds := make([]string, 0)
	for _, rule := range legalGroundRules {
		if !rule.applies(r) {
			continue
		}
		for _, g := range rule.grounds {
			if !slices.Contains(grounds, g) {
				grounds = append(grounds, g)
			}
		}
	}
	return grounds
}

func groundsSection(grounds []string) string {
	if len(grounds) == 0 {
		return "Aplicam-se ao caso os dispositivos legais pertinentes à matéria."
	}
	lines := make([]string, len(grounds))
	for i, g := range grounds {
		lines[i] = "• " + g
	}
	return strings.Join(lines, "\n")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// collapseBlankLines leaves at most one empty line between paragraphs
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
