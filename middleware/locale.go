package middleware

import (
	"net/http"
	"time"

	"juris_dashboard_go/config"
	"juris_dashboard_go/services/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

// supported languages, in the order returned by the matcher
var localeMatcher = language.NewMatcher([]language.Tag{
	language.BrazilianPortuguese,
	language.English,
})

var matchedLang = []string{"pt", "en"}

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("pt")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := ""
			if q := c.QueryParam("lang"); q != "" {
				lang = i18n.Normalize(q)
				if lang == "" {
					lang = i18n.DefaultLang
				}
				SetLanguageCookie(c, cfg, lang)
			} else if cookie, err := c.Cookie("lang"); err == nil {
				lang = i18n.Normalize(cookie.Value)
			}

			if lang == "" {
				lang = fromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))
			return next(c)
		}
	}
}

func fromAcceptLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return i18n.DefaultLang
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return i18n.DefaultLang
	}
	return matchedLang[index]
}

// SetLanguageCookie persists the language for a year
func SetLanguageCookie(c echo.Context, cfg *config.Config, lang string) {
	cookie := new(http.Cookie)
	cookie.Name = "lang"
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour)
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	if cfg != nil && cfg.Environment == "production" {
		cookie.Secure = true
	}
	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLang
}
