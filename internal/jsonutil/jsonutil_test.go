package jsonutil

import "testing"

type doc struct {
	Summary  string `json:"summary"`
	Timeline []struct {
		Title string `json:"title"`
	} `json:"timeline"`
}

func TestUnmarshalFlexDirect(t *testing.T) {
	var d doc
	if err := UnmarshalFlex([]byte(`{"summary":"ok","timeline":[{"title":"visit"}]}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Summary != "ok" || len(d.Timeline) != 1 {
		t.Fatalf("decoded %+v", d)
	}
}

func TestUnmarshalFlexQuotedDocument(t *testing.T) {
	// The whole payload is a JSON string holding the document.
	raw := []byte(`"{\"summary\":\"wrapped\",\"timeline\":[]}"`)
	var d doc
	if err := UnmarshalFlex(raw, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Summary != "wrapped" {
		t.Fatalf("summary %q", d.Summary)
	}
}

func TestUnmarshalFlexRejectsGarbage(t *testing.T) {
	var d doc
	if err := UnmarshalFlex([]byte("certainly not json"), &d); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNormalizeKeepsHTMLCharacters(t *testing.T) {
	out, err := Normalize([]byte(`{"summary":"a > b"}`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if string(out) != `{"summary":"a > b"}` {
		t.Fatalf("normalized %s", out)
	}
}
