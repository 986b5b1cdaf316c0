package reconcile

import "context"

// Record is a canonical incoming record of some entity kind. Adapters define
// the concrete type and assert it back out.
type Record any

// Adapter defines the interface for entity-specific reconciliation logic.
// Each adapter implements how to key, validate, and persist one entity kind
// (e.g., resources, crafting recipes) against the store.
type Adapter interface {
	// Kind returns the unique name of this adapter's entity kind
	// (e.g., "resource", "recipe").
	Kind() string

	// Key returns the record's unique name, used to look up an existing
	// entity. An empty key marks the record as unimportable.
	Key(rec Record) string

	// Validate checks that the record carries every field required to create
	// a new entity. It is consulted before Create and before Replace, so a
	// replace never deletes an entity it cannot recreate.
	Validate(rec Record) error

	// Find looks up an existing entity by key. It returns the entity's store
	// identifier when found.
	Find(ctx context.Context, key string) (id uint, found bool, err error)

	// Create inserts a new entity built from the record. Reference
	// resolution and the insert must happen inside one transaction.
	Create(ctx context.Context, rec Record) error

	// Update applies the fields present in the record to the existing
	// entity, in one transaction. Fields absent from the record are left
	// untouched.
	Update(ctx context.Context, id uint, rec Record) error

	// Replace removes the existing entity (with everything it owns) and
	// creates a new one from the record, in one transaction.
	Replace(ctx context.Context, id uint, rec Record) error
}
