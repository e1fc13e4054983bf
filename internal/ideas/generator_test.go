package ideas

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestGenerateShape(t *testing.T) {
	g := NewGenerator()

	for _, niche := range []string{"Gaming", "Cooking", "Home Espresso", "日本語"} {
		t.Run(niche, func(t *testing.T) {
			result, err := g.Generate(niche, "")
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(result.Ideas) != IdeasPerRequest {
				t.Fatalf("got %d ideas, want %d", len(result.Ideas), IdeasPerRequest)
			}

			seen := make(map[string]bool)
			for _, id := range result.TemplateIDs {
				if seen[id] {
					t.Errorf("template %s selected twice", id)
				}
				seen[id] = true
			}

			for i, idea := range result.Ideas {
				for field, value := range map[string]string{
					"title":       idea.Title,
					"hook":        idea.Hook,
					"description": idea.Description,
				} {
					if !strings.Contains(value, niche) {
						t.Errorf("idea %d %s %q does not contain niche %q", i, field, value, niche)
					}
				}
				if idea.TargetAudience == "" || idea.EstimatedViews == "" {
					t.Errorf("idea %d has empty constant fields: %+v", i, idea)
				}
				if len(idea.KeyElements) == 0 || len(idea.ThumbnailIdeas) == 0 {
					t.Errorf("idea %d has empty lists: %+v", i, idea)
				}
				if idea.ViralPotential < 7 || idea.ViralPotential > 10 {
					t.Errorf("idea %d viralPotential = %d, want 7-10", i, idea.ViralPotential)
				}
			}
		})
	}
}

func TestGenerateTrimsNiche(t *testing.T) {
	g := NewGenerator(WithSeed(1))

	result, err := g.Generate("   Fitness \t", "shorts")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Niche != "Fitness" {
		t.Errorf("Niche = %q, want %q", result.Niche, "Fitness")
	}
	if result.ContentType != "shorts" {
		t.Errorf("ContentType = %q, want shorts", result.ContentType)
	}
	for _, idea := range result.Ideas {
		if strings.Contains(idea.Title, " Fitness \t") || strings.Contains(idea.Title, "  ") {
			t.Errorf("title not built from trimmed niche: %q", idea.Title)
		}
	}
}

func TestGenerateRejectsBlankNiche(t *testing.T) {
	g := NewGenerator()

	for _, niche := range []string{"", "   ", "\n\t"} {
		if _, err := g.Generate(niche, ""); !errors.Is(err, ErrEmptyNiche) {
			t.Errorf("Generate(%q) error = %v, want ErrEmptyNiche", niche, err)
		}
	}
}

func TestGenerateContentTypeDoesNotChangeSelection(t *testing.T) {
	a, _ := NewGenerator(WithSeed(42)).Generate("Travel", "")
	b, _ := NewGenerator(WithSeed(42)).Generate("Travel", "vlog")

	if strings.Join(a.TemplateIDs, ",") != strings.Join(b.TemplateIDs, ",") {
		t.Errorf("content type changed selection: %v vs %v", a.TemplateIDs, b.TemplateIDs)
	}
}

func TestGenerateCoversAllTemplates(t *testing.T) {
	g := NewGenerator(WithSeed(7))
	seen := make(map[string]bool)

	for i := 0; i < 200 && len(seen) < len(templates); i++ {
		result, err := g.Generate("Music", "")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for _, id := range result.TemplateIDs {
			seen[id] = true
		}
	}

	if len(seen) != len(templates) {
		t.Errorf("only saw %d of %d templates across runs", len(seen), len(templates))
	}
}

func TestRenderKnownTemplate(t *testing.T) {
	var tmpl Template
	for _, candidate := range Templates() {
		if candidate.ID == "thirty-day-transformation" {
			tmpl = candidate
		}
	}
	if tmpl.ID == "" {
		t.Fatal("thirty-day-transformation template missing")
	}

	idea := tmpl.Render("Gaming")
	if idea.Title != "I Tried Gaming for 30 Days - Shocking Results!" {
		t.Errorf("Title = %q", idea.Title)
	}
	if idea.Hook != `"I thought Gaming was a waste of time until THIS happened..."` {
		t.Errorf("Hook = %q", idea.Hook)
	}

	// Mutating the idea must not leak into the template table
	idea.KeyElements[0] = "changed"
	if Templates()[0].Elements[0] == "changed" {
		t.Error("rendered idea shares storage with template")
	}
}

func TestTemplatesReturnsIndependentCopy(t *testing.T) {
	want := Templates()[0].Elements[0]

	mutated := Templates()
	mutated[0].Elements[0] = "MUTATED"
	mutated[0].Thumbnails[0] = "MUTATED"

	if got := Templates()[0].Elements[0]; got != want {
		t.Errorf("Templates()[0].Elements[0] = %q after caller mutation, want %q", got, want)
	}

	g := NewGenerator()
	for i := 0; i < 20; i++ {
		result, err := g.Generate("Chess", "")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for _, idea := range result.Ideas {
			for _, v := range append(idea.KeyElements, idea.ThumbnailIdeas...) {
				if v == "MUTATED" {
					t.Fatalf("generated idea %q carries a caller mutation", idea.Title)
				}
			}
		}
	}
}

func TestGenerateWithFewerTemplates(t *testing.T) {
	all := Templates()
	g := NewGenerator(WithSeed(3), WithTemplates(all[:2]))

	result, err := g.Generate("Origami", "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(result.Ideas) != 2 || len(result.TemplateIDs) != 2 {
		t.Fatalf("got %d ideas, want 2 when only 2 templates exist", len(result.Ideas))
	}
	if result.TemplateIDs[0] == result.TemplateIDs[1] {
		t.Errorf("template %s selected twice", result.TemplateIDs[0])
	}
}

func TestTemplateTable(t *testing.T) {
	all := Templates()
	if len(all) != 5 {
		t.Fatalf("got %d templates, want 5", len(all))
	}

	ids := make(map[string]bool)
	for _, tmpl := range all {
		if ids[tmpl.ID] {
			t.Errorf("duplicate template id %s", tmpl.ID)
		}
		ids[tmpl.ID] = true
		if tmpl.ViralPotential < 1 || tmpl.ViralPotential > 10 {
			t.Errorf("%s viral potential %d out of range", tmpl.ID, tmpl.ViralPotential)
		}
	}
}

func TestGenerateConcurrent(t *testing.T) {
	g := NewGenerator()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := g.Generate("Photography", "")
			if err != nil || len(result.Ideas) != IdeasPerRequest {
				t.Errorf("concurrent Generate() = %v, %v", result, err)
			}
		}()
	}
	wg.Wait()
}
