// Package catalog implements the persisted game catalog: resources, crafting
// recipes, and the recipe-owned ingredient rows linking them.
//
// # Store
//
// The Store interface is the persistence gateway the rest of the application
// talks to. It enforces the catalog's consistency rules:
//   - Resource and recipe names are globally unique; a violation surfaces as
//     ErrDuplicateName.
//   - A recipe's ingredient rows live and die with the recipe; every mutating
//     recipe operation runs in a single transaction.
//   - Deleting a resource also removes the ingredient rows referencing it.
//   - Ingredient resource names are recomputed from the current resources on
//     every read, never stored.
//
// # Components
//
//   - Store: GORM-backed persistence gateway.
//   - Service: Read access used by the HTTP surface.
//   - Handler: Exposes browse endpoints (/resources, /recipes).
//   - Feature: Registers the feature with the application loader.
package catalog
