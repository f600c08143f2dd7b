package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned by stores when the requested document does not
// exist. Callers treat it as "no signal" and fall back to defaults.
var ErrNotFound = errors.New("not found")

// MemoryStore persists long-term trait memory. The document is read once
// at startup and rewritten wholesale after each update pass; implementations
// must provide atomic whole-document semantics.
type MemoryStore interface {
	// Load retrieves the stored trait memory, or ErrNotFound if none exists.
	Load(ctx context.Context) (*TraitMemory, error)

	// Save replaces the stored trait memory.
	Save(ctx context.Context, mem *TraitMemory) error
}

// Enhancer enriches a deterministically analyzed email with LLM-derived
// signals. It is an external collaborator: the pipeline must produce a
// complete decision without it, and its failures never corrupt state.
type Enhancer interface {
	// EnhanceEmail analyzes an email and returns derived enrichment.
	EnhanceEmail(ctx context.Context, email *Email) (*Enhancement, error)
}
