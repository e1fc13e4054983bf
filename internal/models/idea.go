package models

// VideoIdea is one generated viral video concept
type VideoIdea struct {
	Title          string   `json:"title"`
	Hook           string   `json:"hook"`
	Description    string   `json:"description"`
	TargetAudience string   `json:"targetAudience"`
	KeyElements    []string `json:"keyElements"`
	ThumbnailIdeas []string `json:"thumbnailIdeas"`
	ViralPotential int      `json:"viralPotential"` // 1-10
	EstimatedViews string   `json:"estimatedViews"` // e.g. "2-5M"
}

// GenerateRequest is the body accepted by the generation endpoint
type GenerateRequest struct {
	Niche       string `json:"niche"`
	ContentType string `json:"contentType,omitempty"`
}

// GenerateResponse is the body returned on success
type GenerateResponse struct {
	Ideas []VideoIdea `json:"ideas"`
}

// ErrorResponse is the body returned on any failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// ContentType is a label offered by the front page selector.
// The generator accepts any string; these are only presentation choices.
type ContentType struct {
	Value string
	Label string
}

// ContentTypes lists the selector options in display order
var ContentTypes = []ContentType{
	{Value: "", Label: "Any Type"},
	{Value: "shorts", Label: "YouTube Shorts"},
	{Value: "long-form", Label: "Long-form (10+ min)"},
	{Value: "tutorial", Label: "Tutorial/How-to"},
	{Value: "entertainment", Label: "Entertainment"},
	{Value: "challenge", Label: "Challenge"},
	{Value: "review", Label: "Review"},
	{Value: "vlog", Label: "Vlog"},
}
