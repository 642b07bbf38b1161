package qti

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestRender_RoundTrips(t *testing.T) {
	doc := NewTestDocument("unit1-test", "Unit 1 Test", []Section{
		NewSection(1, "fractions", []string{"q1-v1", "q1-v2"}),
		NewSection(2, "decimals", []string{"q2-v1"}),
	})

	rendered, err := doc.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(rendered, xml.Header) {
		t.Error("missing XML header")
	}

	var parsed TestDocument
	if err := xml.Unmarshal([]byte(rendered), &parsed); err != nil {
		t.Fatalf("rendered document does not parse: %v", err)
	}
	if parsed.Identifier != "unit1-test" {
		t.Errorf("identifier lost: %q", parsed.Identifier)
	}
	if len(parsed.TestPart.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(parsed.TestPart.Sections))
	}
	sec := parsed.TestPart.Sections[0]
	if sec.Identifier != "section-1" {
		t.Errorf("expected section-1, got %s", sec.Identifier)
	}
	if sec.Selection == nil || sec.Selection.Select != 1 || sec.Selection.WithReplacement {
		t.Errorf("wrong selection semantics: %+v", sec.Selection)
	}
	if sec.Ordering == nil || !sec.Ordering.Shuffle {
		t.Errorf("wrong ordering semantics: %+v", sec.Ordering)
	}
	if len(sec.ItemRefs) != 2 || sec.ItemRefs[0].Identifier != "q1-v1" {
		t.Errorf("item refs wrong: %+v", sec.ItemRefs)
	}
}

func TestRender_EmptyTestIsValid(t *testing.T) {
	doc := NewTestDocument("empty-test", "Empty", nil)

	rendered, err := doc.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parsed TestDocument
	if err := xml.Unmarshal([]byte(rendered), &parsed); err != nil {
		t.Fatalf("empty document does not parse: %v", err)
	}
	if len(parsed.TestPart.Sections) != 0 {
		t.Fatalf("expected no sections, got %d", len(parsed.TestPart.Sections))
	}
}

func TestExtractIdentifier(t *testing.T) {
	frag := `<assessmentItem identifier="q1-v2" title="x"><itemBody/></assessmentItem>`
	if got := ExtractIdentifier(frag); got != "q1-v2" {
		t.Fatalf("got %q", got)
	}
	if got := ExtractIdentifier("<nothing/>"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
