package http

import (
	"encoding/json"
	"html/template"
	"net/http"
)

// HTMXResponse builds HTMX responses: HX-Trigger headers plus an HTML
// fragment body.
type HTMXResponse struct {
	triggers   map[string]any
	statusCode int
	body       []byte
	headers    map[string]string
}

// NewHTMXResponse creates a response builder with a 200 status.
func NewHTMXResponse() *HTMXResponse {
	return &HTMXResponse{
		triggers:   make(map[string]any),
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code.
func (b *HTMXResponse) Status(code int) *HTMXResponse {
	b.statusCode = code
	return b
}

// Trigger adds a named trigger with optional data to the HX-Trigger header.
func (b *HTMXResponse) Trigger(name string, data any) *HTMXResponse {
	b.triggers[name] = data
	return b
}

// TriggerExpensesChanged signals the table and overview partials to refresh.
func (b *HTMXResponse) TriggerExpensesChanged(year, month int) *HTMXResponse {
	return b.Trigger("expenses:changed", map[string]int{"year": year, "month": month})
}

// BodyHTML sets an HTML fragment body.
func (b *HTMXResponse) BodyHTML(html string) *HTMXResponse {
	b.headers["Content-Type"] = "text/html; charset=utf-8"
	b.body = []byte(html)
	return b
}

// Write sends the built response.
func (b *HTMXResponse) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if len(b.triggers) > 0 {
		if triggerJSON, err := json.Marshal(b.triggers); err == nil {
			w.Header().Set("HX-Trigger", string(triggerJSON))
		}
	}
	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// errorResponse builds an HTML-escaped error fragment.
func errorResponse(statusCode int, message string) *HTMXResponse {
	return NewHTMXResponse().
		Status(statusCode).
		BodyHTML(`<div class="error">` + template.HTMLEscapeString(message) + `</div>`)
}

func badRequest(message string) *HTMXResponse {
	return errorResponse(http.StatusBadRequest, message)
}

func unprocessable(message string) *HTMXResponse {
	return errorResponse(http.StatusUnprocessableEntity, message)
}

func notFound(message string) *HTMXResponse {
	return errorResponse(http.StatusNotFound, message)
}

func internalError(message string) *HTMXResponse {
	return errorResponse(http.StatusInternalServerError, message)
}
