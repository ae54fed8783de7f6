package domain

import "context"

// Attributes is the pending attribute set of a mutation, keyed by column name.
type Attributes map[string]any

// Clone returns a shallow copy. Hooks that rewrite attributes should clone
// first so the caller's map stays untouched on failure.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// EventHooks observes entity mutations. For every create and update the
// repository invokes exactly one pre hook and one post hook, in order:
// pre → persist → post. The pre hook may return a modified attribute set,
// which is what gets persisted. Any hook error aborts the mutation and rolls
// the enclosing transaction back.
type EventHooks interface {
	Creating(ctx context.Context, attrs Attributes) (Attributes, error)
	Created(ctx context.Context, record any) error
	Updating(ctx context.Context, record any, attrs Attributes) (Attributes, error)
	Updated(ctx context.Context, record any) error
}

// NopHooks is the default EventHooks: it passes attributes through unchanged.
type NopHooks struct{}

func (NopHooks) Creating(_ context.Context, attrs Attributes) (Attributes, error) {
	return attrs, nil
}

func (NopHooks) Created(context.Context, any) error { return nil }

func (NopHooks) Updating(_ context.Context, _ any, attrs Attributes) (Attributes, error) {
	return attrs, nil
}

func (NopHooks) Updated(context.Context, any) error { return nil }
