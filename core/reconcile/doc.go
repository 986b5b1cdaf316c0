// Package reconcile provides a generic engine for merging externally-supplied
// records into the persisted catalog under a configurable strategy.
//
// # Architecture
//
// The reconcile system consists of two main components:
//
// 1. Engine: Core merge logic. For each incoming record it looks up an
// existing entity by unique name and then creates, updates, replaces, or
// skips it according to the strategy. Every record gets a terminal Outcome;
// a failure is confined to its record and never aborts the batch.
//
// 2. Adapter: Entity-specific implementations that define how to key and
// validate a record and how to persist each operation. Adapters are expected
// to wrap each operation in a single store transaction, so a record's scalar
// changes and its owned-collection changes commit together or not at all.
//
// # Strategies
//
//   - update: apply only the fields present in the incoming record; a
//     supplied ingredient set fully replaces the existing one.
//   - replace: delete-then-create; aborted up front if the incoming record
//     could not recreate the entity.
//   - skip: never touch an existing entity.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(logger)
//	result := engine.Run(ctx, adapter, records, reconcile.StrategyUpdate)
//	fmt.Printf("%d created, %d failed\n", result.Created, result.Failed)
package reconcile
