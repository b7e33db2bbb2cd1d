package data

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// CompositeProvider combines multiple providers, with later providers
// overriding values from earlier ones in the chain. The common arrangement
// is a StaticProvider for fixed data followed by a ContextProvider for
// per-evaluation data.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider creates a provider that queries the given providers
// in order.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{
		providers: providers,
	}
}

// GetData retrieves data from all providers and merges the maps, querying
// providers in sequence with later values overriding earlier ones. Nested
// maps are merged deeply. Returns the first provider error encountered.
func (p *CompositeProvider) GetData(ctx context.Context) (map[string]any, error) {
	result := make(map[string]any)

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}

		d, err := provider.GetData(ctx)
		if err != nil {
			return nil, fmt.Errorf("error from provider %d: %w", i, err)
		}

		result = deepMerge(result, d)
	}

	return result, nil
}

// deepMerge recursively merges map[string]any values. Values from dst
// override those from src; nested maps merge rather than replace.
func deepMerge(src, dst map[string]any) map[string]any {
	result := maps.Clone(src)

	for k, dstVal := range dst {
		srcVal, exists := result[k]
		if !exists {
			result[k] = dstVal
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			result[k] = deepMerge(srcMap, dstMap)
		} else {
			result[k] = dstVal
		}
	}

	return result
}

// AddDataToContext distributes data to every provider in the chain,
// continuing through the chain even when individual providers fail.
// StaticProvider refusals are expected and only surface as errors when the
// chain contains no provider that accepts runtime updates.
func (p *CompositeProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	finalCtx := ctx

	var errz []error
	var staticErrz []error
	updatableCount := 0
	successCount := 0

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}

		_, isStatic := provider.(*StaticProvider)
		if !isStatic {
			updatableCount++
		}

		nextCtx, err := provider.AddDataToContext(finalCtx, data...)
		if err != nil {
			if isStatic && errors.Is(err, ErrStaticProviderNoRuntimeUpdates) {
				staticErrz = append(staticErrz, fmt.Errorf("error from provider %d: %w", i, err))
				continue
			}
			errz = append(errz, fmt.Errorf("error from provider %d: %w", i, err))
			continue
		}

		finalCtx = nextCtx
		successCount++
	}

	// Only static providers in the chain: nothing can accept runtime data.
	if updatableCount == 0 && len(staticErrz) > 0 {
		return ctx, errors.Join(staticErrz...)
	}

	// Every updatable provider failed.
	if updatableCount > 0 && successCount == 0 && len(errz) > 0 {
		return ctx, errors.Join(errz...)
	}

	return finalCtx, nil
}
