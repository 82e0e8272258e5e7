// Package condcache provides a top-level convenience entry point for the
// caching text-encode nodes.
//
// Usage:
//
//	import "github.com/BaSui01/condcache"
//
//	node := condcache.NewFluxTextEncodeCached(condcache.WithLogger(logger))
//	conds, err := node.Encode(ctx, clip, clipL, t5xxl, guidance, cacheLimit)
//
// This is a thin wrapper around the nodes package; both produce identical
// results. Use this package when you prefer the shorter import path.
package condcache

import (
	"github.com/BaSui01/condcache/nodes"
)

// Option configures a node instance.
type Option = nodes.Option

// WithLogger sets a custom zap logger.
var WithLogger = nodes.WithLogger

// WithMetrics enables Prometheus metrics under the given namespace.
var WithMetrics = nodes.WithMetrics

// NewCLIPTextEncodeCached creates the single-text caching encode node.
func NewCLIPTextEncodeCached(opts ...Option) *nodes.CLIPTextEncodeCached {
	return nodes.NewCLIPTextEncodeCached(opts...)
}

// NewFluxTextEncodeCached creates the dual-text caching encode node.
func NewFluxTextEncodeCached(opts ...Option) *nodes.FluxTextEncodeCached {
	return nodes.NewFluxTextEncodeCached(opts...)
}

// NewFluxTextEncode creates the single-slot dual-text encode node.
func NewFluxTextEncode(opts ...Option) *nodes.FluxTextEncode {
	return nodes.NewFluxTextEncode(opts...)
}

// NewRegistry returns a registry preloaded with the built-in node variants.
func NewRegistry() (*nodes.Registry, error) {
	r := nodes.NewRegistry()
	if err := nodes.RegisterDefaults(r); err != nil {
		return nil, err
	}
	return r, nil
}
