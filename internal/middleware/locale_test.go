package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LocaleNegotiation([]string{"en", "it", "de"}, "en"))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Locale(c))
	})
	return r
}

func negotiate(t *testing.T, header, query string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	if header != "" {
		req.Header.Set("Accept-Language", header)
	}
	w := httptest.NewRecorder()
	localeRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String(), w
}

func TestLocaleDefault(t *testing.T) {
	locale, w := negotiate(t, "", "")
	assert.Equal(t, "en", locale)
	assert.Equal(t, "en", w.Header().Get("Content-Language"))
}

func TestLocaleFromAcceptLanguage(t *testing.T) {
	locale, _ := negotiate(t, "it-IT,it;q=0.9,en;q=0.5", "")
	assert.Equal(t, "it", locale)
}

func TestLocaleUnsupportedFallsBack(t *testing.T) {
	locale, _ := negotiate(t, "fr-FR,fr;q=0.9", "")
	assert.Equal(t, "en", locale)
}

func TestLocaleQueryOverride(t *testing.T) {
	locale, _ := negotiate(t, "it", "?lang=de")
	assert.Equal(t, "de", locale)

	// an unsupported override keeps the fallback
	locale, _ = negotiate(t, "", "?lang=xx")
	assert.Equal(t, "en", locale)
}
