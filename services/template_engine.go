package services

import (
	"html"
	"regexp"
	"strings"
)

// variableRegex matches {{variable.path}} patterns, inner whitespace allowed
var variableRegex = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// RenderTemplate replaces {{variable}} placeholders with values from TemplateData.
// Known variables without a value render empty; unknown ones are left as is
// so a reviewer can spot them in the draft.
func RenderTemplate(content string, data TemplateData) string {
	return variableRegex.ReplaceAllStringFunc(content, func(match string) string {
		key := variableRegex.FindStringSubmatch(match)[1]
		value, ok := getValueByKey(key, data)
		if !ok {
			return match
		}
		return value
	})
}

// getValueByKey retrieves a value from TemplateData using a dot-notation key
func getValueByKey(key string, data TemplateData) (string, bool) {
	category, field, ok := strings.Cut(key, ".")
	if !ok {
		return "", false
	}

	switch category {
	case "case":
		return getCaseValue(field, data.Case)
	case "parties":
		return getPartyValue(field, data.Parties)
	case "office":
		return getOfficeValue(field, data.Office)
	case "today":
		return getTodayValue(field, data.Today)
	case "document":
		return getDocumentValue(field, data.Document)
	default:
		return "", false
	}
}

func getCaseValue(field string, c CaseData) (string, bool) {
	switch field {
	case "number":
		return c.Number, true
	case "class":
		return c.Class, true
	case "subject":
		return c.Subject, true
	case "court":
		return c.Court, true
	case "procedure":
		return c.Procedure, true
	case "specialty":
		return c.Specialty, true
	case "demand":
		return c.Demand, true
	case "phase":
		return c.Phase, true
	case "claim_value":
		return c.ClaimValue, true
	case "daily_penalty":
		return c.DailyPenalty, true
	case "days_pending":
		return c.DaysPending, true
	case "urgency":
		return c.Urgency, true
	case "priority":
		return c.Priority, true
	default:
		return "", false
	}
}

func getPartyValue(field string, p PartyData) (string, bool) {
	switch field {
	case "summary":
		return p.Summary, true
	case "active":
		return p.Active, true
	case "passive":
		return p.Passive, true
	default:
		return "", false
	}
}

func getOfficeValue(field string, o OfficeData) (string, bool) {
	switch field {
	case "name":
		return o.Name, true
	case "city":
		return o.City, true
	case "signature":
		return o.Signature, true
	default:
		return "", false
	}
}

func getTodayValue(field string, today DateData) (string, bool) {
	switch field {
	case "date":
		return today.Date, true
	case "date_long":
		return today.DateLong, true
	case "year":
		return today.Year, true
	default:
		return "", false
	}
}

func getDocumentValue(field string, d DocumentData) (string, bool) {
	switch field {
	case "instructions":
		return d.Instructions, true
	case "grounds":
		return d.Grounds, true
	default:
		return "", false
	}
}

// TextToHTML turns a plain-text draft into escaped HTML paragraphs.
// Blank lines separate paragraphs; all-caps lines become headings.
func TextToHTML(text string) string {
	var b strings.Builder
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if !strings.Contains(block, "\n") && block == strings.ToUpper(block) && strings.ToUpper(block) != strings.ToLower(block) {
			b.WriteString("<h2>" + html.EscapeString(block) + "</h2>\n")
			continue
		}
		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(line)
		}
		b.WriteString("<p>" + strings.Join(lines, "<br>") + "</p>\n")
	}
	return b.String()
}

// WrapHTMLForPDF wraps HTML content with petition styles for PDF generation
func WrapHTMLForPDF(content string) string {
	return `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <style>
        @page {
            margin: 3cm 2cm 2cm 3cm;
        }
        body {
            font-family: "Times New Roman", Times, serif;
            font-size: 12pt;
            line-height: 1.5;
            color: #000;
            text-align: justify;
        }
        h1 {
            font-size: 16pt;
            font-weight: bold;
            text-align: center;
            margin-bottom: 24pt;
        }
        h2 {
            font-size: 14pt;
            font-weight: bold;
            margin-top: 18pt;
            margin-bottom: 12pt;
        }
        h3 {
            font-size: 12pt;
            font-weight: bold;
            margin-top: 12pt;
            margin-bottom: 6pt;
        }
        p {
            margin-bottom: 12pt;
            text-indent: 0.5in;
        }
        p:first-of-type {
            text-indent: 0;
        }
        ul, ol {
            margin-left: 0.5in;
            margin-bottom: 12pt;
        }
        li {
            margin-bottom: 6pt;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 12pt;
        }
        th, td {
            border: 1px solid #000;
            padding: 6pt;
            text-align: left;
        }
        th {
            background-color: #f0f0f0;
            font-weight: bold;
        }
    </style>
</head>
<body>
` + content + `
</body>
</html>`
}
