package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RawRecord is one loosely typed record as parsed from a JSON source
type RawRecord map[string]any

// RawProcessRow is a health-insurance row of the scraped "processos" table.
// JSON payloads are kept as text, exactly as the scraper stores them.
type RawProcessRow struct {
	ID                      uint      `gorm:"primarykey" json:"id"`
	CreatedAt               time.Time `json:"created_at"`
	NumeroProcesso          string    `gorm:"not null;uniqueIndex" json:"numero_processo"`
	LinkProcesso            string    `json:"link_processo"`
	DataExtracaoDados       string    `json:"data_extracao_dados"`
	PartesPrincipais        string    `json:"partes_principais"`
	DetalhesCapaProcessual  string    `gorm:"type:text" json:"detalhes_capa_processual"`
	UltimoMovimentoProcesso string    `gorm:"type:text" json:"ultimo_movimento_processo"`
	LinhaTempoOtimizada     string    `gorm:"type:text" json:"linha_tempo_otimizada"`
	AnaliseLLM              string    `gorm:"type:text" json:"analise_llm"`
}

// TableName pins the table name used by the scraper
func (RawProcessRow) TableName() string {
	return "processos"
}

// ToRaw converts the row into the raw shape the normalizer accepts
func (r RawProcessRow) ToRaw() RawRecord {
	raw := RawRecord{
		"numero_processo": r.NumeroProcesso,
	}
	setIfPresent(raw, "link_processo", r.LinkProcesso)
	setIfPresent(raw, "data_extracao_dados", r.DataExtracaoDados)
	setIfPresent(raw, "partes_principais", r.PartesPrincipais)
	setIfPresent(raw, "detalhes_capa_processual", r.DetalhesCapaProcessual)
	setIfPresent(raw, "ultimo_movimento_processo", r.UltimoMovimentoProcesso)
	// analise_llm stays a string; the normalizer decodes it
	setIfPresent(raw, "analise_llm", r.AnaliseLLM)

	if r.LinhaTempoOtimizada != "" {
		var entries []any
		if err := json.Unmarshal([]byte(r.LinhaTempoOtimizada), &entries); err == nil {
			raw["linha_tempo_otimizada"] = entries
		}
	}
	return raw
}

// RawProcessRowFromRecord builds a table row from a raw export record.
// Nested payloads are serialized back to JSON text.
func RawProcessRowFromRecord(raw RawRecord) (RawProcessRow, error) {
	numero, _ := raw["numero_processo"].(string)
	if numero == "" {
		return RawProcessRow{}, fmt.Errorf("record without numero_processo")
	}

	row := RawProcessRow{
		NumeroProcesso:          numero,
		LinkProcesso:            stringField(raw, "link_processo"),
		DataExtracaoDados:       stringField(raw, "data_extracao_dados"),
		PartesPrincipais:        stringField(raw, "partes_principais"),
		DetalhesCapaProcessual:  stringField(raw, "detalhes_capa_processual"),
		UltimoMovimentoProcesso: stringField(raw, "ultimo_movimento_processo"),
	}

	var err error
	if row.LinhaTempoOtimizada, err = jsonText(raw["linha_tempo_otimizada"]); err != nil {
		return RawProcessRow{}, fmt.Errorf("linha_tempo_otimizada of %s: %w", numero, err)
	}
	if row.AnaliseLLM, err = jsonText(raw["analise_llm"]); err != nil {
		return RawProcessRow{}, fmt.Errorf("analise_llm of %s: %w", numero, err)
	}
	return row, nil
}

func setIfPresent(raw RawRecord, key, value string) {
	if value != "" {
		raw[key] = value
	}
}

func stringField(raw RawRecord, key string) string {
	s, _ := raw[key].(string)
	return s
}

func jsonText(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
