package data

import (
	"context"
	"errors"
	"maps"
)

// ErrStaticProviderNoRuntimeUpdates is returned by StaticProvider when a
// caller attempts to add runtime data to it.
var ErrStaticProviderNoRuntimeUpdates = errors.New(
	"StaticProvider doesn't support adding data at runtime")

// StaticProvider returns a fixed map of data, defined when the provider is
// created. Useful for configuration-style values that are identical for
// every evaluation of a script.
type StaticProvider struct {
	data map[string]any
}

// NewStaticProvider creates a new StaticProvider with the given data map.
func NewStaticProvider(data map[string]any) *StaticProvider {
	if data == nil {
		data = make(map[string]any)
	}
	return &StaticProvider{data: data}
}

// GetData returns a clone of the static data map, regardless of context.
// Cloning prevents callers from mutating the provider's copy.
func (p *StaticProvider) GetData(_ context.Context) (map[string]any, error) {
	return maps.Clone(p.data), nil
}

// AddDataToContext always fails: static data is fixed at creation time.
func (p *StaticProvider) AddDataToContext(
	ctx context.Context,
	_ ...map[string]any,
) (context.Context, error) {
	return ctx, ErrStaticProviderNoRuntimeUpdates
}
