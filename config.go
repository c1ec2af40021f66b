// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import "hash"

// Config holds the values a Registry is built from. NewRegistry starts
// from DefaultConfig, applies every RegistryOption to it, and only then
// constructs the descriptor set and self-test scheduling state, the same
// shape ctrdrbg.Config/Option gives the CTR_DRBG sibling package.
type Config struct {
	// SelfTestInterval is the number of Instantiate calls between forced
	// self-test runs for any descriptor that does not carry its own
	// override (see DescriptorSelfTestIntervals).
	SelfTestInterval int

	// Descriptors replaces the registry's descriptor set entirely when
	// non-nil. Left nil, NewRegistry populates the five built-ins.
	Descriptors []*Descriptor

	// HashPrimitives substitutes the hash.Hash factory a descriptor uses
	// to build its engine, keyed by HashID. A descriptor absent from this
	// map keeps its stdlib-backed default.
	HashPrimitives map[HashID]func() hash.Hash

	// DescriptorSelfTestIntervals overrides SelfTestInterval for one
	// specific descriptor, keyed by HashID.
	DescriptorSelfTestIntervals map[HashID]int
}

// DefaultConfig returns the configuration NewRegistry starts from before
// any RegistryOption is applied.
func DefaultConfig() Config {
	return Config{SelfTestInterval: defaultSelfTestInterval}
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Config)

// WithSelfTestInterval overrides the number of Instantiate calls between
// forced self-test runs for descriptors that do not have their own
// override set via WithDescriptorSelfTestInterval. n must be positive; a
// non-positive value is ignored and the default is kept.
func WithSelfTestInterval(n int) RegistryOption {
	return func(cfg *Config) {
		if n > 0 {
			cfg.SelfTestInterval = n
		}
	}
}

// WithDescriptorSelfTestInterval overrides the self-test interval for a
// single descriptor, independent of the registry-wide default. Useful
// for ticking one algorithm's health check more often than its peers
// without lowering SelfTestInterval for every descriptor in the
// registry. n must be positive; a non-positive value is ignored.
func WithDescriptorSelfTestInterval(id HashID, n int) RegistryOption {
	return func(cfg *Config) {
		if n <= 0 {
			return
		}
		if cfg.DescriptorSelfTestIntervals == nil {
			cfg.DescriptorSelfTestIntervals = make(map[HashID]int)
		}
		cfg.DescriptorSelfTestIntervals[id] = n
	}
}

// WithDescriptors replaces the registry's descriptor set entirely. Used
// by tests to inject descriptors carrying deliberately broken self-test
// vectors or a stub hash primitive, without perturbing DefaultRegistry.
func WithDescriptors(ds []*Descriptor) RegistryOption {
	return func(cfg *Config) {
		cfg.Descriptors = ds
	}
}

// WithHashPrimitive substitutes the hash.Hash factory a descriptor uses
// to construct its engine, mirroring the role ctrdrbg.WithKeySize and
// ctrdrbg.WithPersonalization play in overriding a single parameter of
// an otherwise-default construction. The descriptor's seedlen, outlen,
// strengths, and self-test vectors are unaffected; only the primitive
// backing hashOnce and Hash_df changes. A nil factory is ignored.
func WithHashPrimitive(id HashID, factory func() hash.Hash) RegistryOption {
	return func(cfg *Config) {
		if factory == nil {
			return
		}
		if cfg.HashPrimitives == nil {
			cfg.HashPrimitives = make(map[HashID]func() hash.Hash)
		}
		cfg.HashPrimitives[id] = factory
	}
}
