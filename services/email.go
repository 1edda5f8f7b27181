package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"juris_dashboard_go/config"
	"juris_dashboard_go/models"
	"juris_dashboard_go/services/i18n"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

//go:embed emails/*
var emailFS embed.FS

var (
	digestHTML = htmltemplate.Must(htmltemplate.ParseFS(emailFS, "emails/escalation_digest.html"))
	digestText = texttemplate.Must(texttemplate.ParseFS(emailFS, "emails/escalation_digest.txt"))
)

// maxDigestAlerts caps the alerts listed in one digest
const maxDigestAlerts = 50

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// digestAlert is one alert as shown in the digest
type digestAlert struct {
	Processo    string
	Severidade  string
	Mensagem    string
	Acao        string
	Responsavel string
	Prazo       string
	Impacto     string
}

type digestData struct {
	Lang        string
	Title       string
	Intro       string
	Footer      string
	Source      string
	GeneratedAt string
	Alerts      []digestAlert
}

// BuildEscalationDigest renders the critical alerts of a collection for the
// escalation recipients. It returns nil when there is nothing critical or
// nobody to send to.
func BuildEscalationDigest(alerts []models.Alert, source models.DataSource, lang string, recipients []string, now time.Time) (*Email, error) {
	critical := CriticalAlerts(alerts)
	if len(critical) == 0 || len(recipients) == 0 {
		return nil, nil
	}
	if i18n.Normalize(lang) == "" {
		lang = i18n.DefaultLang
	}

	data := digestData{
		Lang:        lang,
		Title:       i18n.Translate(lang, "email.digest.title"),
		Intro:       i18n.Translate(lang, "email.digest.intro"),
		Footer:      i18n.Translate(lang, "email.digest.footer"),
		Source:      strings.ToUpper(string(source)),
		GeneratedAt: now.Format("02/01/2006 15:04"),
	}

	shown := critical
	if len(shown) > maxDigestAlerts {
		shown = shown[:maxDigestAlerts]
	}
	for _, a := range shown {
		item := digestAlert{
			Processo:    a.Processo,
			Severidade:  i18n.Translate(lang, "alerts.severity."+string(a.Severidade)),
			Mensagem:    a.Mensagem,
			Acao:        a.AcaoRecomendada,
			Responsavel: a.ResponsavelSugerido,
			Prazo:       i18n.Translate(lang, "email.digest.due", map[string]interface{}{"days": a.PrazoAcao}),
		}
		if a.ValorImpacto != nil {
			item.Impacto = i18n.Translate(lang, "email.digest.impact", map[string]interface{}{"value": FormatBRL(*a.ValorImpacto)})
		}
		data.Alerts = append(data.Alerts, item)
	}

	var html, text bytes.Buffer
	if err := digestHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render digest html: %w", err)
	}
	if err := digestText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render digest text: %w", err)
	}

	return &Email{
		To: append([]string{}, recipients...),
		Subject: i18n.Translate(lang, "email.digest.subject", map[string]interface{}{
			"count":  len(critical),
			"source": data.Source,
		}),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}

// SendEmail sends an email using the Resend API. In test mode the email is
// only logged.
func SendEmail(cfg *config.Config, email *Email, logger *zap.SugaredLogger) error {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if cfg.EmailTestMode {
		logger.Infow("email logged, not sent (test mode)",
			"to", email.To,
			"subject", email.Subject,
			"text", truncate(email.TextBody, 500),
		)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	return sendWithClient(resend.NewClient(cfg.ResendAPIKey), cfg, email, logger)
}

func sendWithClient(client *resend.Client, cfg *config.Config, email *Email, logger *zap.SugaredLogger) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	logger.Infow("email sent", "id", sent.Id, "to", email.To)
	return nil
}

// truncate truncates a string to at most maxLen runes
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}
