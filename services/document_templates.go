package services

import "juris_dashboard_go/models"

// DocumentType is the kind of draft a generator can produce
type DocumentType string

const (
	DocContestacao      DocumentType = "contestacao"
	DocManifestacao     DocumentType = "manifestacao"
	DocRecurso          DocumentType = "recurso"
	DocPeticao          DocumentType = "peticao"
	DocEmbargo          DocumentType = "embargo"
	DocParecerExecutivo DocumentType = "parecer_executivo"
)

// IsValid reports whether t has a template
func (t DocumentType) IsValid() bool {
	_, ok := documentTemplates[t]
	return ok
}

// Title returns the heading of the draft, or the raw type when unknown
func (t DocumentType) Title() string {
	if tmpl, ok := documentTemplates[t]; ok {
		return tmpl.Title
	}
	return string(t)
}

// DocumentTypes lists the supported types in display order
func DocumentTypes() []DocumentType {
	return []DocumentType{DocContestacao, DocManifestacao, DocRecurso, DocPeticao, DocEmbargo, DocParecerExecutivo}
}

// DocumentTemplate is the body of one draft type
type DocumentTemplate struct {
	Name  string
	Title string
	// InstructionsHeading introduces the free-text instructions, when given
	InstructionsHeading string
	Body                string
}

const petitionHeader = `EXCELENTÍSSIMO(A) SENHOR(A) DOUTOR(A) JUIZ(A) DE DIREITO

Processo: {{case.number}}
Assunto: {{case.subject}}
Partes: {{parties.summary}}`

const petitionFooter = `{{document.instructions}}

Termos em que,
Pede deferimento.

{{office.city}}, {{today.date_long}}.

_________________________________
{{office.signature}}
OAB nº [número]`

var documentTemplates = map[DocumentType]DocumentTemplate{
	DocContestacao: {
		Name:                "template-contestacao-v1.0",
		Title:               "Contestação",
		InstructionsHeading: "OBSERVAÇÕES ESPECIAIS",
		Body: petitionHeader + `

{{office.name}}, já qualificado(a) nos autos, vem, respeitosamente, à presença de Vossa Excelência, apresentar

CONTESTAÇÃO

aos autos da ação em epígrafe, com fulcro no art. 335 do Código de Processo Civil, pelas razões de fato e de direito a seguir expostas:

I - DOS FATOS

Trata-se de demanda relativa a {{case.procedure}} ({{case.specialty}}), classificada como {{case.demand}}, em trâmite há {{case.days_pending}} dias, com valor da causa de {{case.claim_value}}.

II - DO DIREITO

Aplicam-se ao caso os seguintes fundamentos:

{{document.grounds}}

III - DOS PEDIDOS

Diante do exposto, requer-se:

a) O reconhecimento da legitimidade passiva de {{parties.passive}} nos limites da lei;
b) A total improcedência dos pedidos iniciais;
c) A condenação da parte autora ao pagamento das custas processuais e honorários advocatícios.

Protesta-se provar o alegado por todos os meios de prova em direito admitidos.

` + petitionFooter,
	},
	DocManifestacao: {
		Name:                "template-manifestacao-v1.0",
		Title:               "Manifestação",
		InstructionsHeading: "CONSIDERAÇÕES ADICIONAIS",
		Body: petitionHeader + `

{{office.name}}, já qualificado(a) nos autos, vem, respeitosamente, à presença de Vossa Excelência, apresentar

MANIFESTAÇÃO

nos autos em epígrafe, conforme determinação judicial, pelos fundamentos que passa a expor:

I - DA MANIFESTAÇÃO REQUERIDA

Em cumprimento à determinação de Vossa Excelência, manifesta-se sobre os pontos suscitados, esclarecendo que o processo se encontra na fase de {{case.phase}}, perante {{case.court}}.

II - DOS ARGUMENTOS JURÍDICOS

{{document.grounds}}

III - DA CONCLUSÃO

Com base nos elementos apresentados, requer-se a consideração dos argumentos expostos.

` + petitionFooter,
	},
	DocRecurso: {
		Name:                "template-recurso-v1.0",
		Title:               "Recurso de Apelação",
		InstructionsHeading: "ARGUMENTOS ESPECIAIS",
		Body: `EXCELENTÍSSIMO(A) SENHOR(A) DESEMBARGADOR(A) RELATOR(A)

Processo: {{case.number}}
Assunto: {{case.subject}}
Partes: {{parties.summary}}

{{office.name}}, já qualificado(a) nos autos, inconformado(a) com a r. decisão proferida, vem, tempestivamente, interpor

RECURSO DE APELAÇÃO

contra a sentença de fls. ___, pelas razões de fato e de direito que passa a expor:

I - DA TEMPESTIVIDADE E ADMISSIBILIDADE

O presente recurso é tempestivo, conforme se verifica da intimação ocorrida em ___, sendo cabível a apelação nos termos do art. 1.009 do CPC.

II - DO MÉRITO

{{document.grounds}}

III - DOS PEDIDOS

Diante do exposto, requer-se:

a) O conhecimento e provimento do presente recurso;
b) A reforma da sentença recorrida;
c) A inversão dos ônus sucumbenciais.

` + petitionFooter,
	},
	DocPeticao: {
		Name:                "template-peticao-v1.0",
		Title:               "Petição",
		InstructionsHeading: "REQUERIMENTOS ESPECÍFICOS",
		Body: petitionHeader + `

{{office.name}}, já qualificado(a) nos autos, vem, respeitosamente, à presença de Vossa Excelência, apresentar a presente

PETIÇÃO

pelos fundamentos que passa a expor:

I - DO REQUERIMENTO

Requer-se a análise das questões apresentadas nos autos, referentes a {{case.procedure}}.

II - DA LEGISLAÇÃO APLICÁVEL

{{document.grounds}}

` + petitionFooter,
	},
	DocEmbargo: {
		Name:                "template-embargo-v1.0",
		Title:               "Embargos de Declaração",
		InstructionsHeading: "PONTOS ESPECÍFICOS",
		Body: petitionHeader + `

{{office.name}}, já qualificado(a) nos autos, vem, respeitosamente, à presença de Vossa Excelência, opor

EMBARGOS DE DECLARAÇÃO

contra a r. decisão de fls. ___, nos termos do art. 1.022 do CPC, pelas razões que passa a expor:

I - DO CABIMENTO E TEMPESTIVIDADE

Os presentes embargos são cabíveis e tempestivos, tendo em vista a existência de omissão, contradição ou obscuridade na decisão embargada.

II - DO VÍCIO APONTADO

A r. decisão embargada não enfrentou adequadamente os seguintes fundamentos:

{{document.grounds}}

III - DO PEDIDO

Requer-se o acolhimento dos presentes embargos para que seja sanado o vício apontado, com a consequente integração da decisão.

` + petitionFooter,
	},
	DocParecerExecutivo: {
		Name:                "template-parecer-executivo-v1.0",
		Title:               "Parecer Executivo",
		InstructionsHeading: "ORIENTAÇÕES DA COORDENAÇÃO",
		Body: `PARECER EXECUTIVO

Processo: {{case.number}}
Tribunal: {{case.court}}
Partes: {{parties.summary}}

I - RESUMO DO CASO

Demanda de {{case.demand}} envolvendo {{case.procedure}} ({{case.specialty}}), fase de {{case.phase}}, com {{case.days_pending}} dias de tramitação.

II - EXPOSIÇÃO FINANCEIRA

Valor da causa: {{case.claim_value}}
Multa diária: {{case.daily_penalty}}

III - AVALIAÇÃO DE RISCO

Score de urgência: {{case.urgency}}/10
Prioridade de gestão: {{case.priority}}

IV - FUNDAMENTOS APLICÁVEIS

{{document.grounds}}

{{document.instructions}}

{{office.city}}, {{today.date_long}}.

{{office.signature}}`,
	},
}

// legalGroundRules add statutes based on the class, subject and area of a record
var legalGroundRules = []struct {
	applies func(models.CaseRecord) bool
	grounds []string
}{
	{
		applies: func(r models.CaseRecord) bool { return r.Classificacao.AreaDireito == models.LegalAreaHealthInsurance },
		grounds: []string{"Lei 9.656/98", "Lei 8.078/90 (Código de Defesa do Consumidor)"},
	},
	{
		applies: func(r models.CaseRecord) bool { return containsAny(r.Classificacao.Classe, "FAZENDA PÚBLICA") },
		grounds: []string{"Lei 8.429/92", "Lei 4.717/65", "Decreto-Lei 201/67"},
	},
	{
		applies: func(r models.CaseRecord) bool { return containsAny(r.Classificacao.Assunto, "Enquadramento", "Servidor") },
		grounds: []string{"Lei 8.112/90", "Lei Complementar Municipal"},
	},
	{
		applies: func(r models.CaseRecord) bool { return containsAny(r.Classificacao.Classe, "CUMPRIMENTO") },
		grounds: []string{"CPC, art. 523 e seguintes", "Lei 10.166/2017"},
	},
	{
		applies: models.CaseRecord.HasActiveInjunction,
		grounds: []string{"CPC, art. 300", "CPC, art. 537"},
	},
}
