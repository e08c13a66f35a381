// Package synthesis packages the current upload collection into one
// request to the external model and maps the structured response back
// into the domain result.
package synthesis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"medisynth/internal/ingest"
	"medisynth/internal/jsonutil"
	"medisynth/internal/settings"
	"medisynth/internal/types"
)

const defaultTemperature = 0.2

// SettingsSource yields the preferences threaded into each call.
type SettingsSource interface {
	Current() settings.Settings
}

// Orchestrator is stateless between calls: no retry, no caching, no
// partial results. At-most-one call in flight is the caller's
// responsibility.
type Orchestrator struct {
	client   Client
	apiKey   string
	model    string
	timeout  time.Duration
	settings SettingsSource
}

func NewOrchestrator(client Client, apiKey, model string, timeout time.Duration, src SettingsSource) *Orchestrator {
	return &Orchestrator{
		client:   client,
		apiKey:   apiKey,
		model:    model,
		timeout:  timeout,
		settings: src,
	}
}

// Synthesize sends all files in one request and returns the parsed
// result. An empty batch is a silent no-op: no request is issued and
// both return values are nil (the HTTP layer guards before calling).
func (o *Orchestrator) Synthesize(ctx context.Context, files []types.IngestedFile) (*types.PatientAnalysisResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if o.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := o.model
	var enhanced, redact bool
	if o.settings != nil {
		cur := o.settings.Current()
		if cur.Model != "" {
			model = cur.Model
		}
		enhanced = cur.EnhancedTerminology
		redact = cur.PIIRedaction
	}

	attachments := make([]Attachment, 0, len(files))
	for _, f := range files {
		data, err := ingest.DecodePayload(f.Content)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.Name, err)
		}
		mime := f.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		attachments = append(attachments, Attachment{MIMEType: mime, Data: data})
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	req := Request{
		Model:             model,
		SystemInstruction: buildSystemInstruction(enhanced, redact),
		Attachments:       attachments,
		Instruction:       trailingInstruction,
		Temperature:       defaultTemperature,
	}

	raw, err := o.client.GenerateJSON(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, ErrTimeout
		case errors.Is(err, context.Canceled):
			return nil, err
		case errors.Is(err, ErrEmptyResponse):
			return nil, err
		default:
			return nil, &RequestError{Err: err}
		}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyResponse
	}

	var res types.PatientAnalysisResult
	if err := jsonutil.UnmarshalFlex(raw, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return &res, nil
}
