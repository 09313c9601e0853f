package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const localeKey = "elkcms.locale"

// LocaleNegotiation resolves the request locale: the ?lang= query wins,
// then Accept-Language matched against the supported set, then the default.
func LocaleNegotiation(supported []string, fallback string) gin.HandlerFunc {
	codes := []string{fallback}
	for _, code := range supported {
		if code != fallback {
			codes = append(codes, code)
		}
	}
	tags := make([]language.Tag, len(codes))
	for i, code := range codes {
		tags[i] = language.Make(code)
	}
	matcher := language.NewMatcher(tags)

	return func(c *gin.Context) {
		locale := fallback

		if lang := c.Query("lang"); lang != "" {
			for _, code := range codes {
				if code == lang {
					locale = code
				}
			}
		} else if accept := c.GetHeader("Accept-Language"); accept != "" {
			if prefs, _, err := language.ParseAcceptLanguage(accept); err == nil {
				_, idx, _ := matcher.Match(prefs...)
				locale = codes[idx]
			}
		}

		c.Set(localeKey, locale)
		c.Header("Content-Language", locale)
		c.Next()
	}
}

// Locale returns the negotiated locale for the request, or an empty string
// when the middleware did not run.
func Locale(c *gin.Context) string {
	return c.GetString(localeKey)
}
