package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vitos/trade_text_builder/internal/domain"
	"github.com/vitos/trade_text_builder/internal/usecase"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type formView struct {
	Symbol       string
	Direction    string
	Entry        string
	RiskPct      string
	Leverage     string
	StopDistance string
	Error        string
}

func (s *Server) defaultForm() formView {
	return formView{
		Symbol:       s.settings.Symbol,
		Direction:    string(domain.SideLong),
		RiskPct:      formatSetting(s.settings.RiskPct),
		Leverage:     formatSetting(s.settings.Leverage),
		StopDistance: formatSetting(s.settings.StopDistance),
	}
}

func formatSetting(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "form.html", map[string]interface{}{
		"Form": s.defaultForm(),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := formView{
		Symbol:       r.FormValue("symbol"),
		Direction:    r.FormValue("direction"),
		Entry:        r.FormValue("entry"),
		RiskPct:      r.FormValue("risk"),
		Leverage:     r.FormValue("leverage"),
		StopDistance: r.FormValue("stop_distance"),
	}

	result, err := s.generate(r, form)
	if err != nil {
		form.Error = usecase.UserMessage(err)
		status := http.StatusBadRequest
		if !errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusInternalServerError
		}
		s.render(w, status, "form.html", map[string]interface{}{"Form": form})
		return
	}

	s.render(w, http.StatusOK, "result.html", map[string]interface{}{
		"Form":        form,
		"Text":        result.Text,
		"DownloadURL": "/download?" + downloadQuery(form).Encode(),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := formView{
		Symbol:       q.Get("symbol"),
		Direction:    q.Get("direction"),
		Entry:        q.Get("entry"),
		RiskPct:      q.Get("risk"),
		Leverage:     q.Get("leverage"),
		StopDistance: q.Get("stop_distance"),
	}

	result, err := s.generate(r, form)
	if err != nil {
		http.Error(w, usecase.UserMessage(err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": result.Text.FileName,
	}))
	if _, err := w.Write([]byte(result.Text.FileBody())); err != nil {
		s.logger.Error("Failed to write download", zap.Error(err))
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("<div>System OK</div>"))
}

// generate fills empty settings from the configured defaults.
func (s *Server) generate(r *http.Request, form formView) (*usecase.TradeResult, error) {
	in := usecase.TradeInput{
		Symbol:    form.Symbol,
		Direction: form.Direction,
		Entry:     form.Entry,
	}
	if in.Direction == "" {
		in.Direction = string(domain.SideLong)
	}

	var err error
	if in.RiskPct, err = parseSetting("risk", form.RiskPct, s.settings.RiskPct); err != nil {
		return nil, err
	}
	if in.Leverage, err = parseSetting("leverage", form.Leverage, s.settings.Leverage); err != nil {
		return nil, err
	}
	if in.StopDistance, err = parseSetting("stop distance", form.StopDistance, s.settings.StopDistance); err != nil {
		return nil, err
	}

	return s.service.Generate(r.Context(), in)
}

func parseSetting(field, raw string, def float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, field)
	}
	return v, nil
}

func downloadQuery(form formView) url.Values {
	q := url.Values{}
	q.Set("symbol", form.Symbol)
	q.Set("direction", form.Direction)
	q.Set("entry", form.Entry)
	q.Set("risk", form.RiskPct)
	q.Set("leverage", form.Leverage)
	q.Set("stop_distance", form.StopDistance)
	return q
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Template error", zap.Error(err))
	}
}
