package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/viral-agent/internal/models"
	"github.com/viral-agent/pkg/logger"
)

type fakeClient struct {
	ideas []models.VideoIdea
	err   error

	calls       int
	gotNiche    string
	gotType     string
	state       *State
	loadingSeen bool
}

func (f *fakeClient) Generate(ctx context.Context, niche, contentType string) ([]models.VideoIdea, error) {
	f.calls++
	f.gotNiche = niche
	f.gotType = contentType
	if f.state != nil {
		f.loadingSeen = f.state.Loading && f.state.Error == "" && f.state.Ideas == nil
	}
	return f.ideas, f.err
}

func sampleIdeas() []models.VideoIdea {
	return []models.VideoIdea{
		{Title: "I Tried Cooking for 30 Days", Hook: "hook one", ViralPotential: 9, EstimatedViews: "2-5M",
			KeyElements: []string{"Transformation story"}, ThumbnailIdeas: []string{"Split screen"}},
		{Title: "Cooking Experts HATE This Simple Trick", Hook: "hook two", ViralPotential: 7, EstimatedViews: "800K-2M"},
		{Title: "$0 to $10,000 Cooking Challenge", Hook: "hook three", ViralPotential: 10, EstimatedViews: "5-10M"},
	}
}

func TestStateSubmitBlankNiche(t *testing.T) {
	for _, niche := range []string{"", "   "} {
		client := &fakeClient{}
		state := &State{Niche: niche, Ideas: sampleIdeas()}

		if err := state.Submit(context.Background(), client); err != nil {
			t.Errorf("Submit() error = %v", err)
		}
		if client.calls != 0 {
			t.Errorf("endpoint contacted for blank niche %q", niche)
		}
		if state.Error != MsgEnterNiche {
			t.Errorf("Error = %q, want %q", state.Error, MsgEnterNiche)
		}
	}
}

func TestStateSubmitSuccess(t *testing.T) {
	state := &State{Niche: "Cooking", ContentType: "review", Error: "old error"}
	client := &fakeClient{ideas: sampleIdeas(), state: state}

	if err := state.Submit(context.Background(), client); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if client.calls != 1 || client.gotNiche != "Cooking" || client.gotType != "review" {
		t.Errorf("client called %d times with %q/%q", client.calls, client.gotNiche, client.gotType)
	}
	if !client.loadingSeen {
		t.Error("state was not loading with cleared error and ideas during the request")
	}
	if state.Loading {
		t.Error("Loading not reset after request")
	}
	if state.Error != "" || len(state.Ideas) != 3 {
		t.Errorf("state after success = %+v", state)
	}
}

func TestStateSubmitFailure(t *testing.T) {
	state := &State{Niche: "Cooking", Ideas: sampleIdeas()}
	client := &fakeClient{err: errors.New("connection refused")}

	if err := state.Submit(context.Background(), client); err == nil {
		t.Error("Submit() should return the client error")
	}
	if state.Error != MsgGenerateFailed {
		t.Errorf("Error = %q, want %q", state.Error, MsgGenerateFailed)
	}
	if len(state.Ideas) != 0 {
		t.Error("ideas should be empty after a failure")
	}
	if state.Loading {
		t.Error("Loading not reset after failure")
	}
}

func newTestPage(t *testing.T, client IdeaClient) *Page {
	t.Helper()
	page, err := NewPage(client, logger.Nop())
	if err != nil {
		t.Fatalf("NewPage() error = %v", err)
	}
	return page
}

func submitForm(page *Page, niche, contentType string) *httptest.ResponseRecorder {
	form := url.Values{"niche": {niche}, "contentType": {contentType}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, req)
	return rec
}

func TestPageGetRendersEmptyForm(t *testing.T) {
	page := newTestPage(t, &fakeClient{})

	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"YouTube Viral Agent", "Content Niche *", "Long-form (10+ min)", "Perfect Hooks", "Generate Viral Video Ideas"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, `role="alert"`) {
		t.Error("empty form should not show an error")
	}
}

func TestPagePostRendersIdeas(t *testing.T) {
	client := &fakeClient{ideas: sampleIdeas()}
	page := newTestPage(t, client)

	rec := submitForm(page, "Cooking", "challenge")
	body := rec.Body.String()

	if client.calls != 1 {
		t.Fatalf("client called %d times", client.calls)
	}
	for _, want := range []string{"Your Viral Video Ideas", "#1", "#3", "Viral Potential: 10/10", "5-10M", "Transformation story", "Split screen"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !strings.Contains(body, `<option value="challenge" selected>`) {
		t.Error("selected content type not preserved")
	}
	if strings.Contains(body, "Perfect Hooks") {
		t.Error("feature cards should be hidden when ideas are shown")
	}
}

func TestPagePostBlankNiche(t *testing.T) {
	client := &fakeClient{}
	page := newTestPage(t, client)

	body := submitForm(page, "  ", "").Body.String()
	if client.calls != 0 {
		t.Error("endpoint contacted for blank niche")
	}
	if !strings.Contains(body, MsgEnterNiche) {
		t.Errorf("page missing validation error")
	}
}

func TestPagePostClientFailure(t *testing.T) {
	page := newTestPage(t, &fakeClient{err: errors.New("status 500")})

	body := submitForm(page, "Cooking", "").Body.String()
	if !strings.Contains(body, "Failed to generate video ideas. Please try again.") {
		t.Error("page missing generic error message")
	}
	if strings.Contains(body, "Your Viral Video Ideas") {
		t.Error("results should not render after a failure")
	}
}

func TestPageEscapesUserInput(t *testing.T) {
	page := newTestPage(t, &fakeClient{err: errors.New("x")})

	body := submitForm(page, `<script>alert(1)</script>`, "").Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("niche rendered without escaping")
	}
}
