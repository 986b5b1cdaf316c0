package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// testRecord is the canonical record shape used by the stub adapter.
type testRecord struct {
	name  string
	value string
	valid bool
}

// stubAdapter reconciles testRecords against an in-memory map.
type stubAdapter struct {
	entities map[string]string // name -> value
	nextID   uint
	ids      map[string]uint

	findErr    error
	createErr  error
	updateErr  error
	replaceErr error

	replaced []string
}

func newStubAdapter() *stubAdapter {
	return &stubAdapter{
		entities: make(map[string]string),
		ids:      make(map[string]uint),
	}
}

func (a *stubAdapter) Kind() string { return "stub" }

func (a *stubAdapter) Key(rec Record) string {
	return rec.(testRecord).name
}

func (a *stubAdapter) Validate(rec Record) error {
	if !rec.(testRecord).valid {
		return fmt.Errorf("missing required field")
	}
	return nil
}

func (a *stubAdapter) Find(ctx context.Context, key string) (uint, bool, error) {
	if a.findErr != nil {
		return 0, false, a.findErr
	}
	id, ok := a.ids[key]
	return id, ok, nil
}

func (a *stubAdapter) Create(ctx context.Context, rec Record) error {
	if a.createErr != nil {
		return a.createErr
	}
	r := rec.(testRecord)
	a.nextID++
	a.ids[r.name] = a.nextID
	a.entities[r.name] = r.value
	return nil
}

func (a *stubAdapter) Update(ctx context.Context, id uint, rec Record) error {
	if a.updateErr != nil {
		return a.updateErr
	}
	r := rec.(testRecord)
	a.entities[r.name] = r.value
	return nil
}

func (a *stubAdapter) Replace(ctx context.Context, id uint, rec Record) error {
	if a.replaceErr != nil {
		return a.replaceErr
	}
	r := rec.(testRecord)
	a.replaced = append(a.replaced, r.name)
	a.entities[r.name] = r.value
	return nil
}

func records(recs ...testRecord) []Record {
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out
}

func TestRun_CreateNew(t *testing.T) {
	adapter := newStubAdapter()
	engine := NewEngine(zap.NewNop())

	result := engine.Run(context.Background(), adapter,
		records(testRecord{name: "Water", value: "common", valid: true}),
		StrategyUpdate)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, "common", adapter.entities["Water"])
	assert.Equal(t, ActionCreated, result.Outcomes[0].Action)
	assert.Equal(t, "Water", result.Outcomes[0].Key)
}

func TestRun_Strategies(t *testing.T) {
	tests := []struct {
		name       string
		strategy   Strategy
		wantAction Action
		wantValue  string
	}{
		{"Skip", StrategySkip, ActionSkipped, "old"},
		{"Update", StrategyUpdate, ActionUpdated, "new"},
		{"Replace", StrategyReplace, ActionReplaced, "new"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := newStubAdapter()
			adapter.ids["Water"] = 1
			adapter.entities["Water"] = "old"

			engine := NewEngine(zap.NewNop())
			result := engine.Run(context.Background(), adapter,
				records(testRecord{name: "Water", value: "new", valid: true}),
				tt.strategy)

			assert.Equal(t, tt.wantAction, result.Outcomes[0].Action)
			assert.Equal(t, tt.wantValue, adapter.entities["Water"])
		})
	}
}

func TestRun_MissingNameFails(t *testing.T) {
	adapter := newStubAdapter()
	engine := NewEngine(zap.NewNop())

	result := engine.Run(context.Background(), adapter,
		records(testRecord{name: "", valid: true}),
		StrategyUpdate)

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "missing name", result.Outcomes[0].Reason)
}

func TestRun_InvalidRecordDoesNotAbortBatch(t *testing.T) {
	adapter := newStubAdapter()
	engine := NewEngine(zap.NewNop())

	result := engine.Run(context.Background(), adapter, records(
		testRecord{name: "Broken", valid: false},
		testRecord{name: "Water", value: "common", valid: true},
	), StrategyUpdate)

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Created)
	assert.NotContains(t, adapter.entities, "Broken")
	assert.Contains(t, adapter.entities, "Water")
}

func TestRun_ReplaceAbortedBeforeDelete(t *testing.T) {
	adapter := newStubAdapter()
	adapter.ids["Water"] = 1
	adapter.entities["Water"] = "old"

	engine := NewEngine(zap.NewNop())
	result := engine.Run(context.Background(), adapter,
		records(testRecord{name: "Water", valid: false}),
		StrategyReplace)

	// Validation failed, so Replace must never have been attempted and the
	// existing entity survives.
	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, adapter.replaced)
	assert.Equal(t, "old", adapter.entities["Water"])
}

func TestRun_StoreErrorConfinedToRecord(t *testing.T) {
	adapter := newStubAdapter()
	adapter.createErr = fmt.Errorf("duplicate name")

	engine := NewEngine(zap.NewNop())
	result := engine.Run(context.Background(), adapter, records(
		testRecord{name: "Water", valid: true},
		testRecord{name: "Spice", valid: true},
	), StrategyUpdate)

	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Outcomes, 2)
	for _, o := range result.Outcomes {
		assert.Equal(t, "duplicate name", o.Reason)
	}
}

func TestRun_DuplicateNamesSecondWins(t *testing.T) {
	adapter := newStubAdapter()
	engine := NewEngine(zap.NewNop())

	result := engine.Run(context.Background(), adapter, records(
		testRecord{name: "Water", value: "first", valid: true},
		testRecord{name: "Water", value: "second", valid: true},
	), StrategyUpdate)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, "second", adapter.entities["Water"])
	assert.Len(t, adapter.ids, 1)
}

func TestParseStrategy(t *testing.T) {
	for _, valid := range []string{"update", "replace", "skip"} {
		s, err := ParseStrategy(valid)
		assert.NoError(t, err)
		assert.Equal(t, Strategy(valid), s)
	}

	_, err := ParseStrategy("merge")
	assert.Error(t, err)
}
