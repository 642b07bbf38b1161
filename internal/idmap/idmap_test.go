package idmap

import (
	"reflect"
	"strings"
	"testing"
)

func TestRecordResolve_PreservesOrder(t *testing.T) {
	m := New()
	for _, gid := range []string{"q1-v1", "q1-v2", "q1-v3"} {
		if err := m.Record("q1", gid); err != nil {
			t.Fatal(err)
		}
	}

	got := m.Resolve("q1")
	want := []string{"q1-v1", "q1-v2", "q1-v3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolve_UnknownIsNil(t *testing.T) {
	m := New()
	if got := m.Resolve("missing"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestRecord_AfterFreezeFails(t *testing.T) {
	m := New()
	if err := m.Record("q1", "q1-v1"); err != nil {
		t.Fatal(err)
	}
	m.Freeze()
	if err := m.Record("q2", "q2-v1"); err == nil {
		t.Fatal("expected error recording into a frozen mapper")
	}
	// The frozen state is intact.
	if m.Len() != 1 {
		t.Fatalf("frozen mapper mutated: %d canonical ids", m.Len())
	}
}

func TestRewriteReferences_ExpandsToFullList(t *testing.T) {
	m := New()
	m.Record("q1", "q1-v1")
	m.Record("q1", "q1-v2")
	m.Record("q1", "q1-v3")
	m.Freeze()

	doc := `<assessmentSection><assessmentItemRef identifier="q1" href="q1.xml"/></assessmentSection>`
	got := m.RewriteReferences(doc)

	for _, gid := range []string{"q1-v1", "q1-v2", "q1-v3"} {
		want := `<assessmentItemRef identifier="` + gid + `" href="` + gid + `.xml"/>`
		if !strings.Contains(got, want) {
			t.Errorf("missing expanded reference for %s in:\n%s", gid, got)
		}
	}
	if strings.Contains(got, `identifier="q1"`) {
		t.Errorf("canonical reference survived rewrite:\n%s", got)
	}
	// Relative order of the expansion follows the recorded order.
	if strings.Index(got, "q1-v1") > strings.Index(got, "q1-v2") {
		t.Error("expanded references out of order")
	}
}

func TestRewriteReferences_DuplicateReferenceExpandsTwice(t *testing.T) {
	m := New()
	m.Record("q1", "q1-v1")
	m.Freeze()

	doc := `<a identifier="q1" href="q1.xml"/><b identifier="q1" href="q1.xml"/>`
	got := m.RewriteReferences(doc)

	if n := strings.Count(got, `identifier="q1-v1"`); n != 2 {
		t.Fatalf("expected 2 expanded references, got %d in:\n%s", n, got)
	}
}

func TestRewriteReferences_UnmappedLeftAlone(t *testing.T) {
	m := New()
	m.Record("q1", "q1-v1")
	m.Freeze()

	doc := `<assessmentItemRef identifier="other" href="other.xml"/>`
	if got := m.RewriteReferences(doc); got != doc {
		t.Fatalf("unmapped reference changed:\n%s", got)
	}
}

func TestCanonicalIDs_FirstRecordedOrder(t *testing.T) {
	m := New()
	m.Record("b", "b-v1")
	m.Record("a", "a-v1")
	m.Record("b", "b-v2")

	got := m.CanonicalIDs()
	want := []string{"b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
