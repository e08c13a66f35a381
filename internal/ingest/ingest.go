// Package ingest converts uploaded files into their in-memory form.
package ingest

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"medisynth/internal/types"
)

// Source is one platform file handle to ingest.
type Source struct {
	Name     string
	MIMEType string
	Reader   io.Reader
}

// Result reports the outcome for one source: either File is populated or
// Err explains why that file failed. A failing file never sinks the batch.
type Result struct {
	Name string
	File types.IngestedFile
	Err  error
}

// OK reports whether this source was ingested.
func (r Result) OK() bool { return r.Err == nil }

// Batch reads every source concurrently and returns one result per source,
// in input order. The caller receives all results at once, so a UI update
// for N files happens once, not N times.
func Batch(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i] = ingestOne(ctx, src)
		}(i, src)
	}
	wg.Wait()
	return results
}

func ingestOne(ctx context.Context, src Source) Result {
	res := Result{Name: src.Name}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	data, err := io.ReadAll(src.Reader)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", src.Name, err)
		return res
	}
	id, err := newID()
	if err != nil {
		res.Err = fmt.Errorf("generate id for %s: %w", src.Name, err)
		return res
	}
	content := EncodeDataURI(src.MIMEType, data)
	file := types.IngestedFile{
		ID:       id,
		Name:     src.Name,
		MIMEType: src.MIMEType,
		Content:  content,
	}
	if file.IsImage() {
		file.PreviewContent = content
	}
	res.File = file
	return res
}

// newID returns a short random token. Effectively unique within a session;
// collisions are accepted as negligible for a single-session tool.
func newID() (string, error) {
	return gonanoid.New(9)
}

// EncodeDataURI renders bytes as a base64 data URI.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodePayload strips the data-URI prefix and returns the raw bytes.
func DecodePayload(content string) ([]byte, error) {
	payload := content
	if idx := strings.Index(content, ","); idx >= 0 {
		payload = content[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}
