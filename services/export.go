package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"juris_dashboard_go/models"
	"juris_dashboard_go/services/i18n"

	"github.com/xuri/excelize/v2"
)

// ExportRecordJSON returns the indented JSON dump of a record, derived
// metrics included
func ExportRecordJSON(r models.CaseRecord) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode record %s: %w", r.ID, err)
	}
	return data, nil
}

// caseColumns are the i18n keys of the process list columns, in order
var caseColumns = []string{
	"export.headers.id",
	"export.headers.number",
	"export.headers.parties",
	"export.headers.specialty",
	"export.headers.demand",
	"export.headers.procedure",
	"export.headers.court",
	"export.headers.phase",
	"export.headers.claim_value",
	"export.headers.daily_penalty",
	"export.headers.days_pending",
	"export.headers.urgency",
	"export.headers.priority",
	"export.headers.traffic_light",
	"export.headers.escalation",
	"export.headers.active",
	"export.headers.assignee",
}

func caseHeaders(ctx context.Context) []string {
	headers := make([]string, len(caseColumns))
	for i, key := range caseColumns {
		headers[i] = i18n.T(ctx, key)
	}
	return headers
}

func yesNo(ctx context.Context, v bool) string {
	if v {
		return i18n.T(ctx, "common.yes")
	}
	return i18n.T(ctx, "common.no")
}

func assigneeName(r models.CaseRecord) string {
	if r.Responsavel == nil {
		return ""
	}
	return r.Responsavel.Nome
}

// caseRow returns the cells of one record. Amounts stay numeric so
// spreadsheets can sum them.
func caseRow(ctx context.Context, r models.CaseRecord) []any {
	return []any{
		r.ID,
		r.NumeroProcesso,
		r.PartesPrincipais,
		r.Classificacao.EspecialidadeMedica.DisplayName(),
		r.Classificacao.TipoDemanda.DisplayName(),
		r.Classificacao.ProcedimentoEspecifico,
		r.Classificacao.Tribunal,
		string(r.FaseProcessual),
		r.ClaimValue(),
		r.DailyPenalty(),
		r.DaysPending(),
		r.Scores.Urgencia,
		string(r.ManagementPriority()),
		string(r.TrafficLight()),
		yesNo(ctx, r.RequiresEscalation()),
		yesNo(ctx, r.IsActive()),
		assigneeName(r),
	}
}

// WriteCasesCSV writes the records as CSV with localized headers
func WriteCasesCSV(ctx context.Context, w io.Writer, records []models.CaseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(caseHeaders(ctx)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		cells := caseRow(ctx, r)
		line := make([]string, len(cells))
		for i, c := range cells {
			switch v := c.(type) {
			case float64:
				line[i] = strconv.FormatFloat(v, 'f', 2, 64)
			default:
				line[i] = fmt.Sprint(v)
			}
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// BuildWorkbook creates an xlsx report with the process list, the KPIs and
// the alerts, one sheet each
func BuildWorkbook(ctx context.Context, records []models.CaseRecord, kpis models.KPIs, alerts []models.Alert) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetCases := i18n.T(ctx, "export.sheets.processes")
	sheetKPIs := i18n.T(ctx, "export.sheets.kpis")
	sheetAlerts := i18n.T(ctx, "export.sheets.alerts")

	if err := f.SetSheetName("Sheet1", sheetCases); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetKPIs); err != nil {
		return nil, fmt.Errorf("failed to create kpi sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetAlerts); err != nil {
		return nil, fmt.Errorf("failed to create alerts sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F3A5F"}, Pattern: 1},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00

	// Processes
	writeHeader(f, sheetCases, caseHeaders(ctx), headerStyle)
	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := caseRow(ctx, r)
		if err := f.SetSheetRow(sheetCases, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %s: %w", r.ID, err)
		}
	}
	f.SetColWidth(sheetCases, "A", "Q", 20)
	if len(records) > 0 {
		// claim value and daily penalty columns
		last := len(records) + 1
		f.SetCellStyle(sheetCases, "I2", fmt.Sprintf("J%d", last), moneyStyle)
	}

	// KPIs
	writeHeader(f, sheetKPIs, []string{i18n.T(ctx, "export.kpis.metric"), i18n.T(ctx, "export.kpis.value")}, headerStyle)
	for i, kv := range kpiRows(kpis) {
		row := []any{i18n.T(ctx, kv.key), kv.value}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetKPIs, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write kpi %s: %w", kv.key, err)
		}
	}
	f.SetColWidth(sheetKPIs, "A", "A", 40)
	f.SetColWidth(sheetKPIs, "B", "B", 20)

	// Alerts
	writeHeader(f, sheetAlerts, []string{
		i18n.T(ctx, "export.alerts.severity"),
		i18n.T(ctx, "export.alerts.type"),
		i18n.T(ctx, "export.alerts.case"),
		i18n.T(ctx, "export.alerts.message"),
		i18n.T(ctx, "export.alerts.action"),
		i18n.T(ctx, "export.alerts.owner"),
		i18n.T(ctx, "export.alerts.due_days"),
		i18n.T(ctx, "export.alerts.impact"),
	}, headerStyle)
	for i, a := range alerts {
		var impact any
		if a.ValorImpacto != nil {
			impact = *a.ValorImpacto
		}
		row := []any{
			i18n.T(ctx, "alerts.severity."+string(a.Severidade)),
			string(a.Tipo),
			a.Processo,
			a.Mensagem,
			a.AcaoRecomendada,
			a.ResponsavelSugerido,
			a.PrazoAcao,
			impact,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetAlerts, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write alert %s: %w", a.ID, err)
		}
	}
	f.SetColWidth(sheetAlerts, "A", "C", 18)
	f.SetColWidth(sheetAlerts, "D", "F", 45)
	f.SetColWidth(sheetAlerts, "G", "H", 15)

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, style)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, Split: false, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

type kpiRow struct {
	key   string
	value any
}

func kpiRows(k models.KPIs) []kpiRow {
	return []kpiRow{
		{"export.kpis.total", k.TotalProcessos},
		{"export.kpis.active", k.ProcessosAtivos},
		{"export.kpis.exposure", k.ExposicaoTotal},
		{"export.kpis.escalation", k.CasosEscalacaoExecutiva},
		{"export.kpis.penalties", k.MultasAtivas},
		{"export.kpis.avg_days", k.TempoMedioTramitacao},
		{"export.kpis.avg_claim", k.ValorMedioCausa},
		{"export.kpis.pct_active", k.PercentualAtivos},
		{"export.kpis.pct_escalation", k.PercentualEscalacao},
		{"export.kpis.pct_penalties", k.PercentualMultas},
	}
}
