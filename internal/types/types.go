// Package types holds the shared domain model for the medisynth service.
package types

import "strings"

// IngestedFile is the in-memory form of one uploaded document.
// Content is the full file bytes as a base64 data URI
// ("data:<mime>;base64,<payload>"). PreviewContent is set only for
// image MIME types and always equals Content. Never mutated after creation.
type IngestedFile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MIMEType       string `json:"mimeType"`
	Content        string `json:"content"`
	PreviewContent string `json:"previewContent,omitempty"`
}

// IsImage reports whether the file carries an image MIME type.
func (f IngestedFile) IsImage() bool {
	return strings.HasPrefix(f.MIMEType, "image/")
}

// AnalysisStatus is the lifecycle of one synthesis run. Exactly one value
// holds at a time. Legal transitions: idle->analyzing, analyzing->complete,
// analyzing->error, complete|error->idle (explicit reset).
type AnalysisStatus string

const (
	StatusIdle      AnalysisStatus = "idle"
	StatusAnalyzing AnalysisStatus = "analyzing"
	StatusComplete  AnalysisStatus = "complete"
	StatusError     AnalysisStatus = "error"
)

// View selects the top-level screen.
type View string

const (
	ViewAnalysis View = "analysis"
	ViewHistory  View = "history"
	ViewSettings View = "settings"
)

// ValidView reports whether v belongs to the closed view enumeration.
func ValidView(v View) bool {
	switch v {
	case ViewAnalysis, ViewHistory, ViewSettings:
		return true
	}
	return false
}

// EventCategory classifies one timeline event.
type EventCategory string

const (
	CategoryConsultation EventCategory = "consultation"
	CategoryLab          EventCategory = "lab"
	CategoryProcedure    EventCategory = "procedure"
	CategoryMedication   EventCategory = "medication"
	CategoryGeneral      EventCategory = "general"
)

// TimelineEvent is one dated clinical occurrence extracted from the
// source documents. Date may be the literal token "Undated" when the
// model cannot pin an event down. Ordering is whatever the model
// returned; the service never re-sorts.
type TimelineEvent struct {
	Date        string        `json:"date"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Category    EventCategory `json:"category"`
}

// PatientAnalysisResult is the structured output of one synthesis run.
// Immutable once received; replaced wholesale by the next run.
type PatientAnalysisResult struct {
	Summary  string          `json:"summary"`
	Timeline []TimelineEvent `json:"timeline"`
}

// HistoryEntry is the lightweight persisted record of a past run. It
// carries display metadata only, never the summary itself.
type HistoryEntry struct {
	ID           int64  `json:"id"`
	PatientLabel string `json:"patient"`
	Date         string `json:"date"`
	AnalysisType string `json:"type"`
	Status       string `json:"status"`
}

// HistoryEntry status values.
const (
	HistoryStatusComplete     = "Complete"
	HistoryStatusReviewNeeded = "Review Needed"
)
