package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/viral-agent/internal/models"
	"github.com/viral-agent/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// User-facing messages
const (
	MsgEnterNiche     = "Please enter a niche"
	MsgGenerateFailed = "Failed to generate video ideas. Please try again."
)

// IdeaClient requests ideas from the generation endpoint
type IdeaClient interface {
	Generate(ctx context.Context, niche, contentType string) ([]models.VideoIdea, error)
}

// State is everything the page renders from. A fresh State is built for
// every interaction.
type State struct {
	Niche       string
	ContentType string
	Loading     bool
	Ideas       []models.VideoIdea
	Error       string
}

// Submit validates the niche locally and, when it is usable, asks the
// endpoint for ideas. Any failure leaves Ideas empty and sets a generic Error.
func (s *State) Submit(ctx context.Context, client IdeaClient) error {
	if strings.TrimSpace(s.Niche) == "" {
		s.Error = MsgEnterNiche
		return nil
	}

	s.Loading = true
	s.Error = ""
	s.Ideas = nil
	defer func() { s.Loading = false }()

	ideas, err := client.Generate(ctx, s.Niche, s.ContentType)
	if err != nil {
		s.Error = MsgGenerateFailed
		return err
	}

	s.Ideas = ideas
	return nil
}

// ShowFeatures reports whether the feature cards replace the results list
func (s State) ShowFeatures() bool {
	return len(s.Ideas) == 0 && !s.Loading
}

// ContentTypes returns the selector options
func (s State) ContentTypes() []models.ContentType {
	return models.ContentTypes
}

// Page serves the single-page front end
type Page struct {
	client IdeaClient
	tmpl   *template.Template
	log    *logger.Logger
}

// NewPage parses the embedded templates
func NewPage(client IdeaClient, log *logger.Logger) (*Page, error) {
	tmpl, err := template.New("index.html").
		Funcs(template.FuncMap{
			"inc": func(i int) int { return i + 1 },
		}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	return &Page{
		client: client,
		tmpl:   tmpl,
		log:    log.WithComponent("web"),
	}, nil
}

// ServeHTTP renders the empty form on GET and runs a submission on POST
func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), p.log)
	state := &State{}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		state.Niche = r.PostFormValue("niche")
		state.ContentType = r.PostFormValue("contentType")

		if err := state.Submit(r.Context(), p.client); err != nil {
			log.Error().Err(err).Str("niche", state.Niche).Msg("Failed to generate video ideas")
		}
	}

	p.render(w, state, log)
}

func (p *Page) render(w http.ResponseWriter, state *State, log *logger.Logger) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "index.html", state); err != nil {
		log.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
