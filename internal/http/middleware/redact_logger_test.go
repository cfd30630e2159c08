package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLogs swaps the global logger for one writing into buf for the
// duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestRedactingLogger_ScrubsEmailPhoneAndID(t *testing.T) {
	buf := captureLogs(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RedactingLogger(RedactOptions{}))
	r.GET("/contacts", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/contacts?search=grace@navy.mil&phone=%2B1+212-555-1212&id=64f1c0ffee64f1c0ffee64f1", nil)
	r.ServeHTTP(w, req)

	out := buf.String()
	for _, leaked := range []string{"grace@navy.mil", "212-555-1212", "64f1c0ffee64f1c0ffee64f1"} {
		if strings.Contains(out, leaked) {
			t.Errorf("log leaked %q:\n%s", leaked, out)
		}
	}
	for _, marker := range []string{"[REDACTED:email]", "[REDACTED:phone]", "[REDACTED:id]"} {
		if !strings.Contains(out, marker) {
			t.Errorf("expected marker %q in log:\n%s", marker, out)
		}
	}
}

func TestRedactingLogger_MasksSensitiveHeaders(t *testing.T) {
	buf := captureLogs(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Admin-Key"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer SaasUno@2025")
	req.Header.Set("X-Admin-Key", "supersecret")
	r.ServeHTTP(w, req)

	out := buf.String()
	if strings.Contains(out, "SaasUno@2025") || strings.Contains(out, "supersecret") {
		t.Fatalf("sensitive header value leaked:\n%s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Fatalf("expected masked header marker:\n%s", out)
	}
}
