// Package qti holds the assessment test document model and its XML
// rendering.
package qti

import (
	"encoding/xml"
	"fmt"
	"regexp"
)

// TestDocument is one complete assessment test.
type TestDocument struct {
	XMLName     xml.Name           `xml:"assessmentTest"`
	Identifier  string             `xml:"identifier,attr"`
	Title       string             `xml:"title,attr"`
	OutcomeDecl OutcomeDeclaration `xml:"outcomeDeclaration"`
	TestPart    TestPart           `xml:"testPart"`
}

// OutcomeDeclaration declares the test's score variable.
type OutcomeDeclaration struct {
	Identifier  string `xml:"identifier,attr"`
	Cardinality string `xml:"cardinality,attr"`
	BaseType    string `xml:"baseType,attr"`
}

// TestPart wraps the sections with navigation and submission modes.
type TestPart struct {
	Identifier     string    `xml:"identifier,attr"`
	NavigationMode string    `xml:"navigationMode,attr"`
	SubmissionMode string    `xml:"submissionMode,attr"`
	Sections       []Section `xml:"assessmentSection"`
}

// Section is one selectable subgroup of item references. Membership is
// deterministic; the runtime draw order is not: the section declares
// "select without replacement" plus "shuffle" and the delivery engine
// draws at runtime.
type Section struct {
	Identifier string     `xml:"identifier,attr"`
	Title      string     `xml:"title,attr"`
	Visible    bool       `xml:"visible,attr"`
	Selection  *Selection `xml:"selection,omitempty"`
	Ordering   *Ordering  `xml:"ordering,omitempty"`
	ItemRefs   []ItemRef  `xml:"assessmentItemRef"`
}

// Selection declares how many members the delivery engine draws.
type Selection struct {
	Select          int  `xml:"select,attr"`
	WithReplacement bool `xml:"withReplacement,attr"`
}

// Ordering declares runtime shuffling of the drawn members.
type Ordering struct {
	Shuffle bool `xml:"shuffle,attr"`
}

// ItemRef points at one assessment item by identifier.
type ItemRef struct {
	Identifier string `xml:"identifier,attr"`
	Href       string `xml:"href,attr"`
}

// NewSection builds a section with the standard draw semantics: select
// one member without replacement, shuffled at runtime.
func NewSection(index int, title string, itemIDs []string) Section {
	refs := make([]ItemRef, len(itemIDs))
	for i, id := range itemIDs {
		refs[i] = ItemRef{Identifier: id, Href: id + ".xml"}
	}
	return Section{
		Identifier: fmt.Sprintf("section-%d", index),
		Title:      title,
		Visible:    true,
		Selection:  &Selection{Select: 1, WithReplacement: false},
		Ordering:   &Ordering{Shuffle: true},
		ItemRefs:   refs,
	}
}

// NewTestDocument wraps sections in the test envelope.
func NewTestDocument(identifier, title string, sections []Section) *TestDocument {
	return &TestDocument{
		Identifier: identifier,
		Title:      title,
		OutcomeDecl: OutcomeDeclaration{
			Identifier:  "SCORE",
			Cardinality: "single",
			BaseType:    "float",
		},
		TestPart: TestPart{
			Identifier:     identifier + "-part",
			NavigationMode: "nonlinear",
			SubmissionMode: "individual",
			Sections:       sections,
		},
	}
}

// Render serializes the document with an XML header.
func (d *TestDocument) Render() (string, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal test %s: %w", d.Identifier, err)
	}
	return xml.Header + string(body) + "\n", nil
}

var identifierAttr = regexp.MustCompile(`\bidentifier="([^"]+)"`)

// ExtractIdentifier returns the first identifier attribute in an XML
// fragment, or empty string.
func ExtractIdentifier(fragment string) string {
	m := identifierAttr.FindStringSubmatch(fragment)
	if m == nil {
		return ""
	}
	return m[1]
}
