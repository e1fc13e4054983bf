package ideas

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/viral-agent/internal/models"
)

// IdeasPerRequest is how many templates are drawn for one generation
const IdeasPerRequest = 3

// ErrEmptyNiche is returned when the niche is blank after trimming
var ErrEmptyNiche = errors.New("niche must not be empty")

// Result is the outcome of one generation
type Result struct {
	Niche       string
	ContentType string
	TemplateIDs []string
	Ideas       []models.VideoIdea
}

// Generator fills randomly chosen templates with a niche.
// It is safe for concurrent use.
type Generator struct {
	templates []Template
	mu        sync.Mutex
	rng       *rand.Rand
}

// Option configures a Generator
type Option func(*Generator)

// WithSeed makes template selection reproducible
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithTemplates replaces the built-in template table
func WithTemplates(t []Template) Option {
	return func(g *Generator) {
		g.templates = t
	}
}

// NewGenerator creates a generator over the built-in templates
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		templates: Templates(),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate trims the niche, draws IdeasPerRequest distinct templates and
// renders one idea per template. contentType is recorded in the result
// but does not influence selection.
func (g *Generator) Generate(niche, contentType string) (*Result, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, ErrEmptyNiche
	}

	selected := g.pick(IdeasPerRequest)

	result := &Result{
		Niche:       niche,
		ContentType: contentType,
		TemplateIDs: make([]string, 0, len(selected)),
		Ideas:       make([]models.VideoIdea, 0, len(selected)),
	}
	for _, t := range selected {
		result.TemplateIDs = append(result.TemplateIDs, t.ID)
		result.Ideas = append(result.Ideas, t.Render(niche))
	}

	return result, nil
}

// pick shuffles the template indexes and returns the first n templates
func (g *Generator) pick(n int) []Template {
	g.mu.Lock()
	order := g.rng.Perm(len(g.templates))
	g.mu.Unlock()

	if n > len(order) {
		n = len(order)
	}

	out := make([]Template, 0, n)
	for _, i := range order[:n] {
		out = append(out, g.templates[i])
	}
	return out
}

// Render produces the idea for a niche. Slice fields are copied so the
// idea never shares storage with the template.
func (t Template) Render(niche string) models.VideoIdea {
	return models.VideoIdea{
		Title:          t.Title(niche),
		Hook:           t.Hook(niche),
		Description:    t.Description(niche),
		TargetAudience: t.Audience,
		KeyElements:    append([]string(nil), t.Elements...),
		ThumbnailIdeas: append([]string(nil), t.Thumbnails...),
		ViralPotential: t.ViralPotential,
		EstimatedViews: t.EstimatedViews,
	}
}
