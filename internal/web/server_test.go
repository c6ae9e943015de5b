package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/trade_text_builder/internal/domain"
	"github.com/vitos/trade_text_builder/internal/usecase"
	"github.com/vitos/trade_text_builder/internal/web"
	"go.uber.org/zap"
)

func newTestServer() http.Handler {
	settings := domain.Settings{Symbol: "ETH", RiskPct: 5, Leverage: 20, StopDistance: 50}
	svc := usecase.NewTradeService(settings.Symbol, zap.NewNop())
	return web.NewServer(0, svc, settings, zap.NewNop()).Handler()
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestForm_Defaults(t *testing.T) {
	h := newTestServer()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="symbol" value="ETH"`)
	assert.Contains(t, body, `name="stop_distance" type="number" min="0" step="5" value="50"`)
	assert.Contains(t, body, "Generate Text")
}

func TestGenerate_Long(t *testing.T) {
	h := newTestServer()
	rec := postForm(h, "/generate", url.Values{
		"symbol":    {"eth"},
		"direction": {"LONG"},
		"entry":     {"3543.5"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Entriamo ora a Mercato - ETH LONG 3543.5  -  Margine 18%")
	assert.Contains(t, body, "🟥SL 3493.5  -  🟩TP1 3568.5  •  🟩TP2 3593.5  •  🟩TP3 3643.5")
	assert.Contains(t, body, "✅ Take Profit 3 preso a 3643.5")
	assert.Contains(t, body, "🟦 Break Even preso a 3543.5")
	assert.Contains(t, body, "/download?")
	assert.Contains(t, body, `download="ETH_LONG_3543.5.txt"`)
}

func TestGenerate_InvalidEntry(t *testing.T) {
	h := newTestServer()

	tests := []struct {
		entry   string
		wantMsg string
	}{
		{"", "please enter an entry price"},
		{"abc", "invalid entry format"},
		{"-1", "entry price must be greater than 0"},
	}
	for _, tt := range tests {
		rec := postForm(h, "/generate", url.Values{"entry": {tt.entry}})
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.entry)
		assert.Contains(t, rec.Body.String(), tt.wantMsg)
		assert.NotContains(t, rec.Body.String(), "Entriamo ora a Mercato")
	}
}

func TestGenerate_BadSetting(t *testing.T) {
	h := newTestServer()
	rec := postForm(h, "/generate", url.Values{"entry": {"3543.5"}, "leverage": {"x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "leverage must be a number")
}

func TestDownload(t *testing.T) {
	h := newTestServer()
	q := url.Values{"symbol": {"ETH"}, "direction": {"SHORT"}, "entry": {"3543.5"}}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download?"+q.Encode(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename=ETH_SHORT_3543.5.txt`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		"Entriamo ora a Mercato - ETH SHORT 3543.5  -  Margine 18%\n"+
			"🟥SL 3593.5  -  🟩TP1 3518.5  •  🟩TP2 3493.5  •  🟩TP3 3443.5\n\n"+
			"SL distance: 1.41% (≈50$) | Risk: 5.00% | Leverage: 20x",
		rec.Body.String())
}

func TestLevelsJSON(t *testing.T) {
	h := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/levels", strings.NewReader(`{"entry":"3543.5","direction":"long","leverage":0}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Levels map[string]string `json:"levels"`
		Text   domain.TradeText  `json:"text"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "3493.5", resp.Levels["stop_loss"])
	assert.Equal(t, "0", resp.Levels["margin_pct"])
	assert.Equal(t, "3643.5", resp.Text.TP3)
	assert.Equal(t, "ETH_LONG_3543.5.txt", resp.Text.FileName)
}

func TestLevelsJSON_Errors(t *testing.T) {
	h := newTestServer()

	for body, want := range map[string]string{
		`{"entry":"0"}`: "entry price must be greater than 0",
		`{"entry":`:     "malformed JSON body",
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/levels", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, want, resp["error"])
	}
}

func TestStatus(t *testing.T) {
	h := newTestServer()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, "<div>System OK</div>", rec.Body.String())
}
