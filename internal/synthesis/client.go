package synthesis

import (
	"context"
	"encoding/json"
)

// Attachment is one inline document payload: raw bytes plus MIME type,
// base64 handling stays inside the client.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Request is one fully assembled synthesis request. Attachments keep
// their original upload order, followed by a single trailing instruction.
type Request struct {
	Model             string
	SystemInstruction string
	Attachments       []Attachment
	Instruction       string
	Temperature       float32
}

// Client is the external AI collaborator boundary. Implementations must
// return a single text payload parseable as the declared schema, or fail.
type Client interface {
	GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error)
	Name() string
	Close() error
}
