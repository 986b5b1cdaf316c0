package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// Engine applies a merge strategy to batches of incoming records.
//
// Records are processed strictly in batch order, one store round-trip chain
// per record. A record that fails validation or persistence is recorded as a
// failed outcome and the batch continues; only the caller-supplied context
// can stop a batch early.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Run reconciles a batch of records of one entity kind against the store.
//
// Each record walks lookup → {new | existing} → {create | update | replace |
// skip} → {committed | skipped | failed}. Later records observe the effects
// of earlier ones: a batch containing two records with the same name creates
// the entity once and then updates it.
func (e *Engine) Run(ctx context.Context, adapter Adapter, recs []Record, strategy Strategy) *Result {
	result := &Result{Kind: adapter.Kind()}

	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			result.add(Outcome{Action: ActionFailed, Reason: err.Error()})
			continue
		}
		result.add(e.reconcileOne(ctx, adapter, rec, strategy))
	}

	e.logger.Info("Batch reconciled",
		zap.String("kind", adapter.Kind()),
		zap.String("strategy", string(strategy)),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("replaced", result.Replaced),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	return result
}

func (e *Engine) reconcileOne(ctx context.Context, adapter Adapter, rec Record, strategy Strategy) Outcome {
	key := adapter.Key(rec)
	if key == "" {
		e.logger.Warn("Skipping record without a name", zap.String("kind", adapter.Kind()))
		return Outcome{Action: ActionFailed, Reason: "missing name"}
	}

	l := e.logger.With(zap.String("kind", adapter.Kind()), zap.String("name", key))

	id, found, err := adapter.Find(ctx, key)
	if err != nil {
		l.Error("Lookup failed", zap.Error(err))
		return Outcome{Key: key, Action: ActionFailed, Reason: err.Error()}
	}

	if !found {
		if err := adapter.Validate(rec); err != nil {
			l.Warn("Skipping invalid record", zap.Error(err))
			return Outcome{Key: key, Action: ActionFailed, Reason: err.Error()}
		}
		if err := adapter.Create(ctx, rec); err != nil {
			l.Error("Create failed", zap.Error(err))
			return Outcome{Key: key, Action: ActionFailed, Reason: err.Error()}
		}
		l.Info("Record created")
		return Outcome{Key: key, Action: ActionCreated}
	}

	switch strategy {
	case StrategySkip:
		l.Info("Existing record skipped")
		return Outcome{Key: key, Action: ActionSkipped, Reason: "already exists"}

	case StrategyUpdate:
		if err := adapter.Update(ctx, id, rec); err != nil {
			l.Error("Update failed", zap.Error(err))
			return Outcome{Key: key, Action: ActionFailed, Reason: err.Error()}
		}
		l.Info("Record updated")
		return Outcome{Key: key, Action: ActionUpdated}

	case StrategyReplace:
		// Validate before touching the existing entity, so a bad record
		// never leaves the store with the entity deleted and nothing in
		// its place.
		if err := adapter.Validate(rec); err != nil {
			l.Warn("Replacement aborted for invalid record", zap.Error(err))
			return Outcome{Key: key, Action: ActionFailed, Reason: err.Error()}
		}
		if err := adapter.Replace(ctx, id, rec); err != nil {
			l.Error("Replace failed", zap.Error(err))
			return Outcome{Key: key, Action: ActionFailed, Reason: err.Error()}
		}
		l.Info("Record replaced")
		return Outcome{Key: key, Action: ActionReplaced}

	default:
		return Outcome{Key: key, Action: ActionFailed, Reason: "unsupported merge strategy: " + string(strategy)}
	}
}
