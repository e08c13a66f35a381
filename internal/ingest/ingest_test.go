package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestBatchPreservesOrder(t *testing.T) {
	sources := []Source{
		{Name: "a.png", MIMEType: "image/png", Reader: strings.NewReader("aaa")},
		{Name: "b.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("bbb")},
		{Name: "c.jpg", MIMEType: "image/jpeg", Reader: strings.NewReader("ccc")},
	}

	results := Batch(context.Background(), sources)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a.png", "b.pdf", "c.jpg"} {
		if results[i].Name != want {
			t.Fatalf("result %d: got %q want %q", i, results[i].Name, want)
		}
		if !results[i].OK() {
			t.Fatalf("result %d failed: %v", i, results[i].Err)
		}
		if results[i].File.ID == "" {
			t.Fatalf("result %d: missing id", i)
		}
	}
}

func TestBatchAssignsDistinctIDs(t *testing.T) {
	sources := []Source{
		{Name: "a", MIMEType: "text/plain", Reader: strings.NewReader("x")},
		{Name: "b", MIMEType: "text/plain", Reader: strings.NewReader("x")},
	}
	results := Batch(context.Background(), sources)
	if results[0].File.ID == results[1].File.ID {
		t.Fatalf("duplicate id %q", results[0].File.ID)
	}
}

func TestPreviewOnlyForImages(t *testing.T) {
	sources := []Source{
		{Name: "scan.png", MIMEType: "image/png", Reader: strings.NewReader("img")},
		{Name: "report.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("pdf")},
	}
	results := Batch(context.Background(), sources)

	img := results[0].File
	if img.PreviewContent == "" {
		t.Fatalf("image file has no preview")
	}
	if img.PreviewContent != img.Content {
		t.Fatalf("preview differs from content")
	}
	if pdf := results[1].File; pdf.PreviewContent != "" {
		t.Fatalf("non-image got preview %q", pdf.PreviewContent)
	}
}

func TestBatchIsolatesFailures(t *testing.T) {
	sources := []Source{
		{Name: "ok.txt", MIMEType: "text/plain", Reader: strings.NewReader("fine")},
		{Name: "bad.txt", MIMEType: "text/plain", Reader: failingReader{}},
	}
	results := Batch(context.Background(), sources)

	if !results[0].OK() {
		t.Fatalf("healthy file failed: %v", results[0].Err)
	}
	if results[1].OK() {
		t.Fatalf("expected failure for bad.txt")
	}
	if !strings.Contains(results[1].Err.Error(), "bad.txt") {
		t.Fatalf("error does not name the file: %v", results[1].Err)
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	uri := EncodeDataURI("image/png", payload)
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %q", uri)
	}

	got, err := DecodePayload(uri)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("round trip mismatch: got %v want %v", got, payload)
	}
}

func TestDecodePayloadBarePayload(t *testing.T) {
	got, err := DecodePayload("aGVsbG8=")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}
}
