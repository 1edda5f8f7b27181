package services

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	classeRegex  = regexp.MustCompile(`<dt>Classe judicial</dt>\s*<dd>([^<]+)<`)
	assuntoRegex = regexp.MustCompile(`(?s)<dt>Assunto</dt>\s*<dd>.*?<li>([^<(]+)`)
	spaceRegex   = regexp.MustCompile(`\s+`)

	stripPolicy = bluemonday.StrictPolicy()
)

// CoverDetails holds what can be read from the court cover page markup
type CoverDetails struct {
	Classe  string
	Assunto string
	Text    string
}

// ParseCoverDetails extracts the judicial class and first subject from the
// cover page HTML and strips the markup to plain text.
func ParseCoverDetails(markup string) CoverDetails {
	var d CoverDetails
	if markup == "" {
		return d
	}
	if m := classeRegex.FindStringSubmatch(markup); m != nil {
		d.Classe = strings.TrimSpace(html.UnescapeString(m[1]))
	}
	if m := assuntoRegex.FindStringSubmatch(markup); m != nil {
		d.Assunto = strings.TrimSpace(html.UnescapeString(m[1]))
	}
	d.Text = StripHTML(markup)
	return d
}

// StripHTML removes every tag and collapses whitespace
func StripHTML(markup string) string {
	// Block-level tags would otherwise glue adjacent words together
	spaced := strings.NewReplacer("<", " <", ">", "> ").Replace(markup)
	text := html.UnescapeString(stripPolicy.Sanitize(spaced))
	return strings.TrimSpace(spaceRegex.ReplaceAllString(text, " "))
}
