package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/viral-agent/internal/client"
	"github.com/viral-agent/internal/ideas"
	"github.com/viral-agent/internal/models"
	"github.com/viral-agent/internal/storage"
	"github.com/viral-agent/pkg/logger"
)

// maxBodyBytes caps the generate request body
const maxBodyBytes = 64 << 10

// Generator produces ideas for a niche
type Generator interface {
	Generate(niche, contentType string) (*ideas.Result, error)
}

// Handler serves the generation endpoint
type Handler struct {
	generator  Generator
	repository storage.Repository // Optional, nil disables history
	log        *logger.Logger
}

// NewHandler creates a new generation handler
func NewHandler(generator Generator, log *logger.Logger) *Handler {
	return &Handler{
		generator: generator,
		log:       log.WithComponent("api"),
	}
}

// SetRepository enables history recording
func (h *Handler) SetRepository(repo storage.Repository) {
	h.repository = repo
}

// ServeHTTP handles POST /api/generate
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.log)

	req, err := decodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteError(w, log, err)
		return
	}

	result, err := h.generate(req)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	// Encode before writing so a serialization fault still yields a clean 500
	body, err := json.Marshal(models.GenerateResponse{Ideas: result.Ideas})
	if err != nil {
		WriteError(w, log, fmt.Errorf("failed to encode response: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(append(body, '\n'))

	log.Info().
		Str("niche", result.Niche).
		Str("content_type", result.ContentType).
		Strs("templates", result.TemplateIDs).
		Msg("Generated ideas")

	h.record(r.Context(), requestID(r), result, log)
}

// generate runs the generator, converting panics into errors
func (h *Handler) generate(req *models.GenerateRequest) (result *ideas.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("generator panic: %v", p)
		}
	}()

	result, err = h.generator.Generate(req.Niche, req.ContentType)
	if errors.Is(err, ideas.ErrEmptyNiche) {
		return nil, invalidInput(MsgInvalidNiche, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate ideas: %w", err)
	}
	return result, nil
}

// record saves the generation to history. Failures are logged only.
func (h *Handler) record(ctx context.Context, requestID string, result *ideas.Result, log *logger.Logger) {
	if h.repository == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	gen := &models.Generation{
		RequestID:   requestID,
		Niche:       result.Niche,
		ContentType: result.ContentType,
		TemplateIDs: models.StringSlice(result.TemplateIDs),
	}
	if err := h.repository.SaveGeneration(ctx, gen); err != nil {
		log.Warn().Err(err).Msg("Failed to save generation history")
	}
}

// requestID prefers the ID assigned by the server middleware and falls
// back to the inbound header
func requestID(r *http.Request) string {
	if id := logger.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(client.RequestIDHeader)
}

// decodeRequest parses the body. niche must be a JSON string; contentType
// is optional and ignored unless it is a string.
func decodeRequest(body io.Reader) (*models.GenerateRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, invalidInput(MsgInvalidBody, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, invalidInput(MsgInvalidBody, err)
	}
	if fields == nil {
		return nil, invalidInput(MsgInvalidBody, errors.New("body is null"))
	}

	req := &models.GenerateRequest{}

	nicheRaw, ok := fields["niche"]
	if !ok || bytes.Equal(bytes.TrimSpace(nicheRaw), []byte("null")) {
		return nil, invalidInput(MsgInvalidNiche, errors.New("niche is missing"))
	}
	if err := json.Unmarshal(nicheRaw, &req.Niche); err != nil {
		return nil, invalidInput(MsgInvalidNiche, err)
	}

	if ctRaw, ok := fields["contentType"]; ok {
		// Non-string values are tolerated and treated as unset
		_ = json.Unmarshal(ctRaw, &req.ContentType)
	}

	return req, nil
}
