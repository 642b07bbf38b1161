package contentsvc

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Fake is an in-memory Service for tests. It behaves like the real
// service: Update fails with ErrNotFound for unknown identifiers, Create
// registers new content, Delete removes it.
type Fake struct {
	mu    sync.Mutex
	items map[string]string

	// RejectContent causes Update/Create to fail for any content
	// containing the given substring. Empty string disables rejection.
	RejectContent string

	// FailDeletes makes every Delete return an error, for testing the
	// best-effort cleanup path.
	FailDeletes bool

	// Ops records every call as "op:identifier" in order.
	Ops []string
}

// NewFake creates an empty fake content service.
func NewFake() *Fake {
	return &Fake{items: make(map[string]string)}
}

func (f *Fake) Update(_ context.Context, identifier, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ops = append(f.Ops, "update:"+identifier)

	if _, ok := f.items[identifier]; !ok {
		return &ErrNotFound{Identifier: identifier}
	}
	if err := f.check(content); err != nil {
		return err
	}
	f.items[identifier] = content
	return nil
}

func (f *Fake) Create(_ context.Context, identifier, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ops = append(f.Ops, "create:"+identifier)

	if err := f.check(content); err != nil {
		return err
	}
	f.items[identifier] = content
	return nil
}

func (f *Fake) Delete(_ context.Context, identifier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ops = append(f.Ops, "delete:"+identifier)

	if f.FailDeletes {
		return fmt.Errorf("delete %s: simulated failure", identifier)
	}
	delete(f.items, identifier)
	return nil
}

// Stored returns the content registered under identifier, if any.
func (f *Fake) Stored(identifier string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.items[identifier]
	return content, ok
}

// Count returns how many items are currently registered.
func (f *Fake) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func (f *Fake) check(content string) error {
	if f.RejectContent != "" && strings.Contains(content, f.RejectContent) {
		return fmt.Errorf("content rejected: invalid markup near %q", f.RejectContent)
	}
	return nil
}
