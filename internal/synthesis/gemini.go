package synthesis

import (
	"context"
	"encoding/json"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client. It
// only carries the API call itself; timeout, caching and error mapping
// live in the Orchestrator.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// GenerateJSON issues exactly one generateContent call: all attachments
// as inline data in their original order, one trailing text part, the
// system instruction, low temperature and a strict JSON response schema.
func (g *GeminiClient) GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	parts := make([]*genai.Part, 0, len(req.Attachments)+1)
	for _, att := range req.Attachments {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: att.MIMEType, Data: att.Data},
		})
	}
	parts = append(parts, &genai.Part{Text: req.Instruction})

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}},
		Temperature:       genai.Ptr(req.Temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema(),
	}

	resp, err := g.cli.Models.GenerateContent(ctx, model, []*genai.Content{{Parts: parts}}, cfg)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}
	txt := resp.Candidates[0].Content.Parts[0].Text
	if txt == "" {
		return nil, ErrEmptyResponse
	}
	return json.RawMessage(txt), nil
}

// analysisSchema declares the strict output contract: summary plus a
// timeline whose entries require date, title and category.
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "The full medical summary in Markdown format.",
			},
			"timeline": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date":        {Type: genai.TypeString, Description: "Date of event (YYYY-MM-DD or readable format)"},
						"title":       {Type: genai.TypeString, Description: "Event title"},
						"description": {Type: genai.TypeString, Description: "Short details"},
						"category": {
							Type:        genai.TypeString,
							Description: "consultation, lab, procedure, medication, or general",
							Enum:        []string{"consultation", "lab", "procedure", "medication", "general"},
						},
					},
					Required: []string{"date", "title", "category"},
				},
			},
		},
		Required: []string{"summary", "timeline"},
	}
}
