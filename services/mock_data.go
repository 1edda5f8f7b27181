package services

import (
	"fmt"
	"maps"
	"math/rand"
	"time"

	"juris_dashboard_go/models"
)

// HealthMockRecordCount is the size of the health-insurance fallback collection
const HealthMockRecordCount = 10

// mockSubjects rotate through the fallback cover pages so the classifier
// sees a spread of specialties and demand types
var mockSubjects = []struct {
	assunto   string
	procedure string
}{
	{"Serviços Hospitalares", "Cirurgia Cardíaca"},
	{"Tratamento Oncológico - Medicamento", "Quimioterapia"},
	{"Reajuste de Mensalidade", "Plano Familiar"},
	{"Neurologia - Autorização de Exame", "Ressonância Magnética"},
	{"Home Care", "Internação Domiciliar"},
	{"Ortopedia - Cirurgia", "Artroplastia de Quadril"},
	{"Psiquiatria - Terapia", "Terapia Intensiva"},
	{"Pediatria - Urgência", "Atendimento de Urgência"},
	{"Oftalmologia - Cirurgia", "Cirurgia de Catarata"},
	{"Plano de Saúde", "Consulta Especializada"},
}

func mockCoverPage(assunto string) string {
	return fmt.Sprintf(`<dl><dt>Classe judicial</dt><dd>PROCEDIMENTO COMUM CÍVEL</dd>`+
		`<dt>Assunto</dt><dd><ul><li>%s (Plano de Saúde)</li></ul></dd></dl>`, assunto)
}

// GenerateHealthMockRecords builds the raw health-insurance collection used
// when the real export cannot be loaded. Values are drawn from rng.
func GenerateHealthMockRecords(rng *rand.Rand, now time.Time) []models.RawRecord {
	raws := make([]models.RawRecord, 0, HealthMockRecordCount)
	for i := 1; i <= HealthMockRecordCount; i++ {
		subject := mockSubjects[(i-1)%len(mockSubjects)]

		financial := map[string]any{
			"valor_inicial_causa": float64(FallbackClaimMin + rng.Intn(FallbackClaimMax-FallbackClaimMin)),
		}
		var injunction map[string]any
		if rng.Float64() > 0.7 {
			penalty := float64(100 + rng.Intn(1000))
			financial["valor_multa_diaria"] = penalty
			injunction = map[string]any{
				"requerida":    "sim",
				"deferida":     "sim",
				"multa_diaria": penalty,
			}
		}

		analysis := map[string]any{
			"aspectos_financeiros": financial,
			"classificacao_demanda": map[string]any{
				"procedimento_especifico": subject.procedure,
			},
			"cronologia_processual": map[string]any{
				"dias_tramitacao_total": float64(FallbackDaysPendingMin + rng.Intn(FallbackDaysPendingMax-FallbackDaysPendingMin)),
				"processo_ativo":        true,
			},
			"metricas_dashboard": map[string]any{
				"score_urgencia":           float64(1 + rng.Intn(10)),
				"score_complexidade":       float64(1 + rng.Intn(10)),
				"score_impacto_financeiro": float64(1 + rng.Intn(10)),
			},
			"status_atual": map[string]any{
				"fase_processual": string(models.PhaseConhecimento),
			},
		}
		if injunction != nil {
			analysis["decisoes_judiciais"] = map[string]any{"liminar_antecipacao": injunction}
		}

		raws = append(raws, models.RawRecord{
			"id":                       fmt.Sprintf("%d", i),
			"numero_processo":          fmt.Sprintf("0800%03d-34.2023.8.19.0212", i),
			"data_extracao_dados":      now.Format(time.RFC3339),
			"partes_principais":        fmt.Sprintf("Beneficiário %d vs Unimed Rio", i),
			"detalhes_capa_processual": mockCoverPage(subject.assunto),
			"analise_llm":              analysis,
		})
	}
	return raws
}

// GenericMockRecords returns the municipal sample processes
func GenericMockRecords() []models.RawRecord {
	return []models.RawRecord{
		{
			"id":                      "proc-001",
			"numeroProcesso":          "0835078-22.2023.8.20.5001",
			"tribunal":                "2º Juizado da Fazenda Pública da Comarca de Natal",
			"classe":                  "CUMPRIMENTO DE SENTENÇA CONTRA A FAZENDA PÚBLICA",
			"assunto":                 "Enquadramento",
			"partes":                  map[string]any{"ativo": []any{"CAIO HIGOR MORAIS ARAUJO"}, "passivo": []any{"Município de Natal"}},
			"status":                  "em_analise",
			"dataRecebimento":         "2025-05-29",
			"valorCausa":              36569.20,
			"departamentoResponsavel": "administrativo",
			"fase_processual":         "execucao",
			"responsavel":             map[string]any{"id": "user-1", "nome": "Dr. João Silva", "role": "procurador"},
			"dataAtribuicao":          "2025-06-26",
		},
		{
			"id":                      "proc-002",
			"numeroProcesso":          "5004567-89.2024.8.20.5002",
			"tribunal":                "1º Vara da Fazenda Pública da Comarca de Natal",
			"classe":                  "AÇÃO CIVIL PÚBLICA",
			"assunto":                 "Meio Ambiente",
			"partes":                  map[string]any{"ativo": []any{"MINISTÉRIO PÚBLICO DO RN"}, "passivo": []any{"Município de Natal", "EMPRESA ABC LTDA"}},
			"status":                  "nova",
			"dataRecebimento":         "2025-06-26",
			"valorCausa":              500000.0,
			"departamentoResponsavel": "ambiental",
		},
		{
			"id":                      "proc-003",
			"numeroProcesso":          "1234567-90.2024.8.20.5003",
			"tribunal":                "Vara de Direitos Difusos",
			"classe":                  "MANDADO DE SEGURANÇA",
			"assunto":                 "Licitação",
			"partes":                  map[string]any{"ativo": []any{"CONSTRUTORA XYZ LTDA"}, "passivo": []any{"Município de Natal"}},
			"status":                  "minuta_gerada",
			"dataRecebimento":         "2025-06-25",
			"valorCausa":              2000000.0,
			"departamentoResponsavel": "licitacao",
			"responsavel":             map[string]any{"id": "user-4", "nome": "Ana Costa", "role": "assessor"},
			"dataAtribuicao":          "2025-06-24",
		},
		{
			"id":                      "proc-004",
			"numeroProcesso":          "9876543-21.2024.8.20.5004",
			"tribunal":                "3ª Vara Cível",
			"classe":                  "AÇÃO DE COBRANÇA",
			"assunto":                 "IPTU",
			"partes":                  map[string]any{"ativo": []any{"Município de Natal"}, "passivo": []any{"JOÃO DA SILVA"}},
			"status":                  "concluida",
			"dataRecebimento":         "2025-06-20",
			"valorCausa":              15000.0,
			"departamentoResponsavel": "fiscal",
			"responsavel":             map[string]any{"id": "user-5", "nome": "Pedro Almeida", "role": "estagiario"},
			"dataAtribuicao":          "2025-06-19",
		},
		{
			"id":                      "proc-005",
			"numeroProcesso":          "1111222-33.2024.8.20.5005",
			"tribunal":                "Vara do Trabalho",
			"classe":                  "RECLAMAÇÃO TRABALHISTA",
			"assunto":                 "Horas Extras",
			"partes":                  map[string]any{"ativo": []any{"MARIA DOS SANTOS"}, "passivo": []any{"Município de Natal"}},
			"status":                  "em_analise",
			"dataRecebimento":         "2025-06-24",
			"valorCausa":              25000.0,
			"departamentoResponsavel": "trabalhista",
			"responsavel":             map[string]any{"id": "user-3", "nome": "Carlos Oliveira", "role": "assessor"},
			"dataAtribuicao":          "2025-06-23",
		},
		{
			"id":                      "proc-006",
			"numeroProcesso":          "4444555-66.2024.8.20.5006",
			"tribunal":                "Vara da Saúde Pública",
			"classe":                  "AÇÃO DE FORNECIMENTO DE MEDICAMENTO",
			"assunto":                 "Saúde Pública",
			"partes":                  map[string]any{"ativo": []any{"PEDRO OLIVEIRA"}, "passivo": []any{"Município de Natal", "Estado do RN"}},
			"status":                  "nova",
			"dataRecebimento":         "2025-06-27",
			"valorCausa":              80000.0,
			"departamentoResponsavel": "saude",
			"multa_diaria":            500.0,
			"responsavel":             map[string]any{"id": "user-2", "nome": "Dra. Maria Santos", "role": "procurador"},
			"dataAtribuicao":          "2025-06-27",
		},
	}
}

// PGMExpansionCount is how many demo processes a single PGM sample becomes
const PGMExpansionCount = 20

// ExpandPGMSample turns one sample process into PGMExpansionCount variants
// with distinct case numbers and claim values.
func ExpandPGMSample(sample models.RawRecord, rng *rand.Rand) []models.RawRecord {
	out := make([]models.RawRecord, 0, PGMExpansionCount)
	for i := 1; i <= PGMExpansionCount; i++ {
		rec := maps.Clone(sample)
		if rec == nil {
			rec = models.RawRecord{}
		}
		rec["id"] = fmt.Sprintf("%d", i)
		rec["numero_processo"] = fmt.Sprintf("5000%03d-12.2024.8.19.0001", i)
		delete(rec, "numeroProcesso")
		delete(rec, "valorCausa")
		rec["valor_causa"] = float64(10000 + rng.Intn(1000000))
		if list, ok := sample["intimacoes"].([]any); ok {
			intimacoes := make([]any, 0, len(list))
			for _, item := range list {
				m := asMap(item)
				if m == nil {
					continue
				}
				copied := maps.Clone(m)
				copied["prazo"] = float64(1 + rng.Intn(30))
				intimacoes = append(intimacoes, copied)
			}
			rec["intimacoes"] = intimacoes
		}
		out = append(out, rec)
	}
	return out
}
