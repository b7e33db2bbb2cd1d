package data

import (
	"context"
)

// Getter defines the interface for retrieving data from a context.
type Getter interface {
	GetData(ctx context.Context) (map[string]any, error)
}

// Setter prepares data for script evaluation by enriching a context.
// Separating data preparation from evaluation lets the two steps run on
// different systems, or lets one compiled script serve many requests.
type Setter interface {
	// AddDataToContext enriches a context with data for script evaluation.
	// The variadic parameter accepts maps with string keys and arbitrary
	// values; each map is merged into the stored evaluation data.
	//
	// Example:
	//  enrichedCtx, err := evaluator.AddDataToContext(ctx, map[string]any{"city": "Berlin"})
	//  if err != nil {
	//      return err
	//  }
	//  result, err := evaluator.Eval(enrichedCtx)
	AddDataToContext(ctx context.Context, data ...map[string]any) (context.Context, error)
}

// Provider defines the interface for accessing runtime data during script
// execution. The data returned by GetData is used to seed the script's
// binding table before any statement runs.
type Provider interface {
	Getter
	Setter
}
