package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"juris_dashboard_go/models"

	"go.uber.org/zap"
)

// Fallback ranges for values the sources leave out. Lower bound inclusive,
// upper bound exclusive.
const (
	FallbackClaimMin         = 10000
	FallbackClaimMax         = 210000
	FallbackDaysPendingMin   = 30
	FallbackDaysPendingMax   = 530
	FallbackFirstDecisionMin = 15
	FallbackFirstDecisionMax = 105

	defaultProcedure      = "Procedimento Médico"
	defaultHealthParties  = "Beneficiário vs Unimed"
	defaultGenericParties = "Partes não informadas"
)

// Fields a record must carry in strict mode
const (
	FieldClaimValue     = "valor_inicial_causa"
	FieldUrgency        = "score_urgencia"
	FieldComplexity     = "score_complexidade"
	FieldFinancialScore = "score_impacto_financeiro"
	FieldDaysPending    = "dias_tramitacao_total"
)

var healthSchemaKeys = []string{"analise_llm", "detalhes_capa_processual", "partes_principais"}

// Normalizer turns raw records of either source schema into CaseRecords.
// It is safe for concurrent use.
type Normalizer struct {
	mu     sync.Mutex
	rng    *rand.Rand
	now    func() time.Time
	rules  ClassificationRuleset
	logger *zap.SugaredLogger
	strict bool
}

// NormalizerOption configures a Normalizer
type NormalizerOption func(*Normalizer)

// WithRand sets the random source used for fallback values
func WithRand(rng *rand.Rand) NormalizerOption {
	return func(n *Normalizer) {
		if rng != nil {
			n.rng = rng
		}
	}
}

// WithSeed makes fallback values reproducible. Zero keeps the time based seed.
func WithSeed(seed int64) NormalizerOption {
	return func(n *Normalizer) {
		if seed != 0 {
			n.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithClock sets the clock used for extraction timestamps and day counts
func WithClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// WithRuleset replaces the keyword classification tables
func WithRuleset(rules ClassificationRuleset) NormalizerOption {
	return func(n *Normalizer) {
		n.rules = rules
	}
}

// WithLogger sets the logger for fallback and classification diagnostics
func WithLogger(logger *zap.SugaredLogger) NormalizerOption {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithStrict makes NormalizeAll reject records missing required fields
func WithStrict(strict bool) NormalizerOption {
	return func(n *Normalizer) {
		n.strict = strict
	}
}

// NewNormalizer creates a lenient normalizer with the default ruleset
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
		rules:  DefaultRuleset(),
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Strict reports whether the normalizer was built in strict mode
func (n *Normalizer) Strict() bool {
	return n.strict
}

// Normalize maps every raw record to a CaseRecord, same length and order.
// Missing or unparsable fields get fallback values; nothing is rejected.
func (n *Normalizer) Normalize(raws []models.RawRecord) []models.CaseRecord {
	records, _ := n.normalize(raws, false)
	return records
}

// NormalizeStrict maps raw records but fails when any record lacks a
// required field. The error joins one ErrMissingField per record and field.
func (n *Normalizer) NormalizeStrict(raws []models.RawRecord) ([]models.CaseRecord, error) {
	records, err := n.normalize(raws, true)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// NormalizeAll uses the mode the normalizer was configured with
func (n *Normalizer) NormalizeAll(raws []models.RawRecord) ([]models.CaseRecord, error) {
	if n.strict {
		return n.NormalizeStrict(raws)
	}
	return n.Normalize(raws), nil
}

func (n *Normalizer) normalize(raws []models.RawRecord, strict bool) ([]models.CaseRecord, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	records := make([]models.CaseRecord, len(raws))
	var errs []error
	for i, raw := range raws {
		b := &recordBuilder{n: n, raw: raw, index: i, now: now, strict: strict}
		if DetectSchema(raw) == models.SchemaHealthInsurance {
			records[i] = b.health()
		} else {
			records[i] = b.generic()
		}
		errs = append(errs, b.errs...)
	}
	n.uniqueIDs(raws, records)
	return records, errors.Join(errs...)
}

// uniqueIDs renames records whose id is already taken. Explicit raw ids keep
// their value on first occurrence; positional ids and later duplicates get a
// numeric suffix.
func (n *Normalizer) uniqueIDs(raws []models.RawRecord, records []models.CaseRecord) {
	reserved := make(map[string]int, len(raws))
	for i, raw := range raws {
		if id := asString(raw["id"]); id != "" {
			if _, ok := reserved[id]; !ok {
				reserved[id] = i
			}
		}
	}

	used := make(map[string]struct{}, len(records))
	for i := range records {
		id := records[i].ID
		if owner, ok := reserved[id]; (ok && owner != i) || isUsed(used, id) {
			candidate := id
			for k := 2; ; k++ {
				candidate = fmt.Sprintf("%s-%d", id, k)
				_, taken := reserved[candidate]
				if !taken && !isUsed(used, candidate) {
					break
				}
			}
			n.logger.Debugw("duplicate record id renamed", "index", i, "id", id, "renamed", candidate)
			records[i].ID = candidate
		}
		used[records[i].ID] = struct{}{}
	}
}

func isUsed(used map[string]struct{}, id string) bool {
	_, ok := used[id]
	return ok
}

// DetectSchema tells the health-insurance export apart from generic records
func DetectSchema(raw models.RawRecord) models.RecordSchema {
	for _, key := range healthSchemaKeys {
		if _, ok := raw[key]; ok {
			return models.SchemaHealthInsurance
		}
	}
	return models.SchemaGeneric
}

// recordBuilder carries the per-record state of one normalization
type recordBuilder struct {
	n      *Normalizer
	raw    models.RawRecord
	index  int
	now    time.Time
	strict bool
	numero string
	errs   []error
}

// missing records a required field that had to fall back
func (b *recordBuilder) missing(field string) {
	if b.strict {
		b.errs = append(b.errs, fmt.Errorf("record %d (%s): %s: %w", b.index+1, b.numero, field, ErrMissingField))
		return
	}
	b.fallback(field)
}

func (b *recordBuilder) fallback(field string) {
	b.n.logger.Debugw("fallback value applied", "case", b.numero, "field", field, "index", b.index)
}

func (b *recordBuilder) randRange(min, max int) int {
	return min + b.n.rng.Intn(max-min)
}

func (b *recordBuilder) score(metrics map[string]any, field string) int {
	if s, ok := parseScore(metrics[field]); ok {
		return s
	}
	b.missing(field)
	return b.randRange(models.MinScore, models.MaxScore+1)
}

func (b *recordBuilder) scores(metrics map[string]any) models.Scores {
	return models.Scores{
		Urgencia:          b.score(metrics, FieldUrgency),
		Complexidade:      b.score(metrics, FieldComplexity),
		ImpactoFinanceiro: b.score(metrics, FieldFinancialScore),
	}
}

// claim returns the first positive value among the candidates
func (b *recordBuilder) claim(candidates ...any) float64 {
	for _, c := range candidates {
		if v, ok := parseNumber(c); ok && v > 0 {
			return v
		}
	}
	b.missing(FieldClaimValue)
	return float64(b.randRange(FallbackClaimMin, FallbackClaimMax))
}

func (b *recordBuilder) daysPending(v any) int {
	if d, ok := parseDays(v); ok {
		return d
	}
	b.missing(FieldDaysPending)
	return b.randRange(FallbackDaysPendingMin, FallbackDaysPendingMax)
}

func (b *recordBuilder) classify(text string) Classification {
	c := b.n.rules.Classify(text)
	if !c.SpecialtyMatched || !c.DemandMatched {
		b.n.logger.Infow("classification unmatched, using defaults",
			"case", b.numero,
			"specialty_matched", c.SpecialtyMatched,
			"demand_matched", c.DemandMatched,
			"specialty", c.Specialty,
			"demand", c.Demand,
		)
	}
	return c
}

// health maps a record of the health-insurance export
func (b *recordBuilder) health() models.CaseRecord {
	raw := b.raw
	b.numero = firstString(raw, "numero_processo")
	if b.numero == "" {
		b.numero = fmt.Sprintf("UNIMED-%d", b.index+1)
		b.fallback("numero_processo")
	}

	analysis := asMap(raw["analise_llm"])
	if raw["analise_llm"] != nil && analysis == nil {
		b.fallback("analise_llm")
	}
	financial := asMap(analysis["aspectos_financeiros"])
	classification := asMap(analysis["classificacao_demanda"])
	metrics := asMap(analysis["metricas_dashboard"])
	timeline := asMap(analysis["cronologia_processual"])
	status := asMap(analysis["status_atual"])
	injunctionRaw := asMap(asMap(analysis["decisoes_judiciais"])["liminar_antecipacao"])

	cover := asString(raw["detalhes_capa_processual"])
	details := ParseCoverDetails(cover)

	rec := models.CaseRecord{
		ID:               rawID(raw["id"], b.index),
		NumeroProcesso:   b.numero,
		LinkProcesso:     models.StringPtr(asString(raw["link_processo"])),
		DataExtracao:     b.extractionDate(raw["data_extracao_dados"]),
		Schema:           models.SchemaHealthInsurance,
		PartesPrincipais: firstString(raw, "partes_principais"),
		PoloAtivo:        models.StringPtr(firstString(raw, "polo_ativo")),
		PoloPassivo:      models.StringPtr(firstString(raw, "polo_passivo")),
		DetalhesCapa:     details.Text,
		UltimoMovimento:  asString(raw["ultimo_movimento_processo"]),
		LinhaTempo:       timelineEntries(raw["linha_tempo_otimizada"]),
		AnaliseLLM:       analysis,
	}
	if rec.PartesPrincipais == "" {
		rec.PartesPrincipais = defaultHealthParties
	}

	c := b.classify(cover)
	rec.Classificacao = models.Classification{
		AreaDireito:            models.LegalAreaHealthInsurance,
		TipoDemanda:            c.Demand,
		EspecialidadeMedica:    c.Specialty,
		ProcedimentoEspecifico: firstString(classification, "procedimento_especifico"),
		Classe:                 details.Classe,
		Assunto:                details.Assunto,
		Tribunal:               courtFromCaseNumber(b.numero),
	}
	if rec.Classificacao.ProcedimentoEspecifico == "" {
		rec.Classificacao.ProcedimentoEspecifico = defaultProcedure
	}

	claim := b.claim(financial["valor_inicial_causa"], raw["valor_causa"], raw["valor_condenacao"], raw["valor_pedido"])
	dailyPenalty := optionalAmount(injunctionRaw["multa_diaria"], financial["valor_multa_diaria"])
	rec.Financeiro = models.Financials{
		ValorInicialCausa:      claim,
		ValorPedidoDanosMorais: positiveAmount(financial["valor_pedido_danos_morais"]),
		ValorFinalCondenacao:   positiveAmount(financial["valor_final_condenacao"]),
		ValorMultaConfigurada:  amountOrZero(financial["valor_multa_configurada"]),
		ValorMultaAcumulado:    amountOrZero(financial["valor_multa_acumulado"]),
		ValorMultaDiaria:       dailyPenalty,
	}

	rec.Cronologia = models.Timeline{
		DiasTramitacaoTotal:    b.daysPending(timeline["dias_tramitacao_total"]),
		DiasAtePrimeiraDecisao: b.firstDecision(timeline["dias_ate_primeira_decisao"]),
		ProcessoAtivo:          !isExplicitFalse(timeline["processo_ativo"]),
	}
	rec.Scores = b.scores(metrics)

	if len(injunctionRaw) > 0 {
		inj := &models.Injunction{
			Requerida:        asYes(injunctionRaw["requerida"]),
			Deferida:         asYes(injunctionRaw["deferida"]),
			ResumoObrigacao:  asStrings(injunctionRaw["resumo_obrigacao"]),
			PrazoCumprimento: intOrZero(injunctionRaw["prazo_cumprimento"]),
			LimiteMulta:      amountOrZero(injunctionRaw["limite_multa"]),
		}
		if dailyPenalty != nil {
			inj.MultaDiaria = *dailyPenalty
		}
		if t, ok := parseDate(injunctionRaw["data_decisao"]); ok {
			inj.DataDecisao = &t
		}
		rec.Liminar = inj
	}

	rec.FaseProcessual = courtPhase(status["fase_processual"])
	rec.AguardandoCumprimento = asYes(status["aguardando_cumprimento"])
	return rec
}

// generic maps a municipal (PGM) style record
func (b *recordBuilder) generic() models.CaseRecord {
	raw := b.raw
	b.numero = firstString(raw, "numeroProcesso", "numero_processo")
	if b.numero == "" {
		b.numero = fmt.Sprintf("PROC-%d", b.index+1)
		b.fallback("numero_processo")
	}

	classe := firstString(raw, "classe", "classe_judicial")
	assunto := firstString(raw, "assunto")
	ativo, passivo := genericParties(raw)

	rec := models.CaseRecord{
		ID:             rawID(raw["id"], b.index),
		NumeroProcesso: b.numero,
		LinkProcesso:   models.StringPtr(firstString(raw, "link", "link_processo")),
		DataExtracao:   b.extractionDate(raw["data_extracao_dados"]),
		Schema:         models.SchemaGeneric,
		PoloAtivo:      models.StringPtr(ativo),
		PoloPassivo:    models.StringPtr(passivo),
	}
	switch {
	case ativo != "" && passivo != "":
		rec.PartesPrincipais = ativo + " vs " + passivo
	case ativo != "" || passivo != "":
		rec.PartesPrincipais = ativo + passivo
	default:
		rec.PartesPrincipais = defaultGenericParties
	}

	c := b.classify(strings.TrimSpace(assunto + " " + classe))
	procedure := assunto
	if procedure == "" {
		procedure = classe
	}
	rec.Classificacao = models.Classification{
		AreaDireito:            firstString(raw, "area_direito", "departamentoResponsavel"),
		TipoDemanda:            c.Demand,
		EspecialidadeMedica:    c.Specialty,
		ProcedimentoEspecifico: procedure,
		Classe:                 classe,
		Assunto:                assunto,
		Tribunal:               firstString(raw, "tribunal", "orgao_julgador"),
	}
	if rec.Classificacao.AreaDireito == "" {
		rec.Classificacao.AreaDireito = asString(asMap(raw["tags"])["departamento"])
	}

	rec.Financeiro = models.Financials{
		ValorInicialCausa:   b.claim(raw["valorCausa"], raw["valor_causa"], raw["valor_condenacao"], raw["valor_pedido"]),
		ValorMultaAcumulado: amountOrZero(raw["valor_multa_acumulado"]),
		ValorMultaDiaria:    optionalAmount(raw["multa_diaria"], raw["valor_multa_diaria"]),
	}

	rec.Cronologia = models.Timeline{
		DiasTramitacaoTotal:    b.genericDaysPending(),
		DiasAtePrimeiraDecisao: b.firstDecision(raw["dias_ate_primeira_decisao"]),
		ProcessoAtivo:          genericActive(raw),
	}
	rec.Scores = b.scores(asMap(raw["metricas_dashboard"]))
	rec.FaseProcessual = courtPhase(raw["fase_processual"])

	if assignee := asMap(raw["responsavel"]); assignee != nil {
		rec.Responsavel = &models.Assignee{
			ID:   asString(assignee["id"]),
			Nome: asString(assignee["nome"]),
			Role: asString(assignee["role"]),
		}
		if t, ok := parseDate(raw["dataAtribuicao"]); ok {
			rec.DataAtribuicao = &t
		}
	}
	return rec
}
