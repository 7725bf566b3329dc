package inbound

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/eventex/internal/pkg/router"
	"github.com/shandysiswandi/eventex/internal/subscription/entity"
	"github.com/shandysiswandi/eventex/internal/subscription/usecase"
)

const failureMessage = "Não foi possível concluir sua inscrição. Tente novamente em instantes."

//go:embed templates/*.html
var templatesFS embed.FS

var formTemplate = template.Must(template.ParseFS(templatesFS, "templates/subscription_form.html"))

type formField struct {
	Name      string
	Label     string
	InputType string
	Value     string
	Errors    []string
}

type formPage struct {
	Action    string
	CSRFField string
	CSRFToken string
	Flash     string
	Failure   string
	Fields    []formField
}

// WebEndpoint serves the HTML subscription form.
type WebEndpoint struct {
	uc   uc
	csrf *router.CSRF
}

// Form renders an empty form and the pending flash message, if any.
func (h *WebEndpoint) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, formPage{Flash: router.PopFlash(w, r)}, nil, nil)
}

// Subscribe handles the form post: redirect on success, re-render otherwise.
func (h *WebEndpoint) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := router.ParseForm(w, r); err != nil {
		router.RecordError(w, err)
		h.render(w, r, http.StatusBadRequest, formPage{Failure: failureMessage}, nil, nil)
		return
	}

	in := make(entity.SubmissionInput, len(entity.Fields))
	for _, f := range entity.Fields {
		in[f.Name] = r.PostFormValue(f.Name)
	}

	_, err := h.uc.Submit(r.Context(), usecase.SubmitInput{Fields: in})
	if err == nil {
		router.SetFlash(w, usecase.SuccessMessage)
		http.Redirect(w, r, FormPath, http.StatusFound)
		return
	}

	var fieldErrs entity.FieldErrors
	if errors.As(err, &fieldErrs) {
		h.render(w, r, http.StatusOK, formPage{}, in, fieldErrs)
		return
	}

	router.RecordError(w, err)
	h.render(w, r, http.StatusInternalServerError, formPage{Failure: failureMessage}, in, nil)
}

func (h *WebEndpoint) render(w http.ResponseWriter, r *http.Request, status int, page formPage, values entity.SubmissionInput, errs entity.FieldErrors) {
	page.Action = FormPath
	page.CSRFField = router.CSRFFieldName
	page.CSRFToken = h.csrf.Token(w, r)

	messages := errs.FieldMessages()
	page.Fields = make([]formField, 0, len(entity.Fields))
	for _, f := range entity.Fields {
		page.Fields = append(page.Fields, formField{
			Name:      f.Name,
			Label:     f.Label,
			InputType: f.InputType,
			Value:     values.Get(f.Name),
			Errors:    messages[f.Name],
		})
	}

	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, page); err != nil {
		slog.ErrorContext(r.Context(), "failed to render subscription form", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
