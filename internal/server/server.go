package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFiles embed.FS

const pageTemplate = "index.html"

type handler struct {
	logger      *zap.Logger
	formatter   *format.Formatter
	placeholder string
	maxBodySize int64
	version     string
	page        *pongo2.Template
}

// NewHandler constructs the HTTP handler that serves the calculator form and
// calculation API.
func NewHandler(logger *zap.Logger, formatter *format.Formatter, placeholder string, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if formatter == nil {
		formatter = format.Default()
	}
	if placeholder == "" {
		placeholder = constants.Placeholder
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded templates: %v", err))
	}
	page, err := pongo2.NewSet("loan-calculator", pongo2.NewFSLoader(sub)).FromFile(pageTemplate)
	if err != nil {
		panic(fmt.Sprintf("failed to parse page template: %v", err))
	}

	h := &handler{
		logger:      logger,
		formatter:   formatter,
		placeholder: placeholder,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		page:        page,
	}

	mux := http.NewServeMux()

	// Calculator form page
	mux.HandleFunc("/", h.handleForm)

	// Calculation API used by the page for live updates
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return withRequestLogging(mux, logger)
}

func (h *handler) newAdapter(form calculator.FormPort) *calculator.Adapter {
	return calculator.NewAdapter(form, h.formatter,
		calculator.WithLogger(h.logger),
		calculator.WithPlaceholder(h.placeholder),
	)
}

func (h *handler) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var (
		values url.Values
		event  calculator.Event
	)

	switch r.Method {
	case http.MethodGet:
		values = r.URL.Query()
		event = calculator.Event{Kind: calculator.EventLoad}
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
		if err := r.ParseForm(); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), "server.handleForm")
				return
			}
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err), "server.handleForm")
			return
		}
		values = r.PostForm
		event = calculator.Event{Kind: calculator.EventCalculate}
		if r.PostForm.Get("action") == "clear" {
			event = calculator.Event{Kind: calculator.EventClear}
		}
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	form := newRequestForm(values)
	h.newAdapter(form).HandleEvent(event)

	var buf bytes.Buffer
	err := h.page.ExecuteWriter(pongo2.Context{
		"values":         form.echoed(),
		"display":        form.display,
		"interestOnly":   loans.ParseLoanType(form.values.LoanType) == loans.InterestOnly,
		"currencySymbol": h.formatter.Symbol(),
		"version":        h.version,
	}, &buf)
	if err != nil {
		h.logger.Error("failed to render page",
			zap.String("op", "server.handleForm"),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.logger.Debug("form rendered",
		zap.String("op", "server.handleForm"),
		zap.Stringer("event", event.Kind),
		zap.String("monthly", form.display.Monthly),
		zap.String("total", form.display.Total),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write page", zap.String("op", "server.handleForm"), zap.Error(err))
	}
}

// fieldValue accepts a JSON string, number or null.
type fieldValue string

func (v *fieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*v = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = fieldValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", trimmed)
		}
		*v = fieldValue(n.String())
	}
	return nil
}

type calculateRequest struct {
	Amount   fieldValue    `json:"amount"`
	Term     fieldValue    `json:"term"`
	Rate     fieldValue    `json:"rate"`
	LoanType fieldValue    `json:"type"`
	Event    *eventPayload `json:"event,omitempty"`
}

type eventPayload struct {
	Kind  string `json:"kind"`
	Field string `json:"field"`
	Key   string `json:"key"`
}

// calculateResponse reports the figures written by the event. The server keeps
// no form state, so when the event is ignored Updated is false, the figures
// are empty and the page keeps what it shows.
type calculateResponse struct {
	Updated        bool                  `json:"updated"`
	Monthly        string                `json:"monthly,omitempty"`
	Total          string                `json:"total,omitempty"`
	Computable     bool                  `json:"computable"`
	MonthlyValue   *float64              `json:"monthlyValue,omitempty"`
	TotalValue     *float64              `json:"totalValue,omitempty"`
	Values         calculator.FormValues `json:"values"`
	PreventDefault bool                  `json:"preventDefault"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var payload calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), "server.handleCalculate")
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleCalculate")
		return
	}

	event := calculator.Event{Kind: calculator.EventCalculate}
	if payload.Event != nil && payload.Event.Kind != "" {
		kind, ok := calculator.ParseEventKind(payload.Event.Kind)
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("unknown event kind %q", payload.Event.Kind), "server.handleCalculate")
			return
		}
		event = calculator.Event{Kind: kind, Field: payload.Event.Field, Key: payload.Event.Key}
	}

	form := &requestForm{values: calculator.FormValues{
		Amount:   string(payload.Amount),
		Term:     string(payload.Term),
		Rate:     string(payload.Rate),
		LoanType: string(payload.LoanType),
	}}

	preventDefault := h.newAdapter(form).HandleEvent(event)

	response := calculateResponse{
		Updated:        form.written,
		Values:         form.values,
		PreventDefault: preventDefault,
	}
	result, ok := loans.Calculate(calculator.ReadLoanInput(form.values))
	response.Computable = ok
	if form.written {
		response.Monthly = form.display.Monthly
		response.Total = form.display.Total
		if ok {
			response.MonthlyValue = roundedOrNil(result.MonthlyPayment)
			response.TotalValue = roundedOrNil(result.TotalPayment)
		}
	}

	h.writeJSON(w, http.StatusOK, response)
}

// roundedOrNil rounds to cents and drops values JSON cannot represent.
func roundedOrNil(v float64) *float64 {
	if !mathutil.IsFinite(v) {
		return nil
	}
	rounded := mathutil.Round(v)
	return &rounded
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculator request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
