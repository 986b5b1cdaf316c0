// Package transfer implements catalog import and export.
//
// Exports serialize the whole catalog (or one entity kind) to JSON, Markdown
// or CSV through the codecs in feature/transfer/codec. Imports decode a
// document into canonical records and reconcile them against the catalog
// with core/reconcile, applying an update, replace or skip merge strategy
// per record. Resources are always reconciled before recipes so that
// ingredient references can resolve against resources created in the same
// run. An optional object storage client serves as an off-host backup
// destination for JSON exports.
package transfer
