package data

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/robbyt/go-toolscript/platform/constants"
)

// ContextProvider retrieves and stores evaluation data in the context under
// a configurable key. This is the provider to use when each Eval call needs
// different runtime data.
type ContextProvider struct {
	contextKey constants.ContextKey
}

// NewContextProvider creates a new ContextProvider with the given context key.
func NewContextProvider(contextKey constants.ContextKey) *ContextProvider {
	return &ContextProvider{
		contextKey: contextKey,
	}
}

// GetData extracts the evaluation data map from the context using the
// configured key. A context without stored data yields an empty map.
func (p *ContextProvider) GetData(ctx context.Context) (map[string]any, error) {
	if p.contextKey == "" {
		return nil, fmt.Errorf("context key is empty")
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return make(map[string]any), nil
	}

	d, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid input data type: expected map[string]any, got %T", value)
	}

	return d, nil
}

// AddDataToContext merges the provided maps into the evaluation data stored
// in the context. Nested maps are merged recursively; for duplicate keys,
// later values override earlier ones.
func (p *ContextProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, fmt.Errorf("context key is empty")
	}

	var errz []error
	toStore := make(map[string]any)

	if existing := ctx.Value(p.contextKey); existing != nil {
		if existingMap, ok := existing.(map[string]any); ok {
			maps.Copy(toStore, existingMap)
		}
	}

	for _, dataMap := range data {
		if dataMap == nil {
			continue
		}

		for key, value := range dataMap {
			if key == "" {
				errz = append(errz, fmt.Errorf("empty keys are not allowed"))
				continue
			}
			mergeIntoMap(toStore, key, value)
		}
	}

	return context.WithValue(ctx, p.contextKey, toStore), errors.Join(errz...)
}

// mergeIntoMap recursively merges a value into the target map. Map values
// merge with an existing map under the same key; anything else replaces.
func mergeIntoMap(target map[string]any, key string, value any) {
	if newMap, ok := value.(map[string]any); ok {
		if existingMap, ok := target[key].(map[string]any); ok {
			for k, v := range newMap {
				mergeIntoMap(existingMap, k, v)
			}
			return
		}
	}

	target[key] = value
}
