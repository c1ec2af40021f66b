// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"crypto/sha256"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_DefaultConfig checks that DefaultConfig returns a Config
// with documented default values.
func TestConfig_DefaultConfig(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	is.Equal(defaultSelfTestInterval, cfg.SelfTestInterval)
	is.Nil(cfg.Descriptors)
	is.Nil(cfg.HashPrimitives)
	is.Nil(cfg.DescriptorSelfTestIntervals)
}

// TestConfig_WithSelfTestInterval verifies the override and its
// non-positive-value guard.
func TestConfig_WithSelfTestInterval(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	WithSelfTestInterval(7)(&cfg)
	is.Equal(7, cfg.SelfTestInterval)

	WithSelfTestInterval(0)(&cfg)
	is.Equal(7, cfg.SelfTestInterval, "a non-positive interval must be ignored")
	WithSelfTestInterval(-3)(&cfg)
	is.Equal(7, cfg.SelfTestInterval, "a negative interval must be ignored")
}

// TestConfig_WithDescriptorSelfTestInterval verifies the per-descriptor
// override map is populated and guarded the same way as the
// registry-wide interval.
func TestConfig_WithDescriptorSelfTestInterval(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	WithDescriptorSelfTestInterval(SHA512, 5)(&cfg)
	is.Equal(5, cfg.DescriptorSelfTestIntervals[SHA512])

	WithDescriptorSelfTestInterval(SHA256, 0)(&cfg)
	_, ok := cfg.DescriptorSelfTestIntervals[SHA256]
	is.False(ok, "a non-positive interval must not be recorded")
}

// TestConfig_WithDescriptors verifies WithDescriptors replaces the
// configured descriptor slice wholesale.
func TestConfig_WithDescriptors(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	custom := []*Descriptor{newDescriptor(SHA256, 55, 32, []int{112}, true, sha256.New, [4]SelfTestVector{})}
	WithDescriptors(custom)(&cfg)
	is.Equal(custom, cfg.Descriptors)
}

// TestConfig_WithHashPrimitive verifies the substituted factory is
// recorded against the right HashID and that a nil factory is ignored.
func TestConfig_WithHashPrimitive(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	WithHashPrimitive(SHA256, sha256.New)(&cfg)
	is.NotNil(cfg.HashPrimitives[SHA256])

	WithHashPrimitive(SHA512, nil)(&cfg)
	_, ok := cfg.HashPrimitives[SHA512]
	is.False(ok, "a nil factory must be ignored")
}

// TestNewRegistry_WithHashPrimitiveOverridesEngine checks that
// NewRegistry actually wires a substituted factory into the resulting
// descriptor's engine rather than merely recording it in Config.
func TestNewRegistry_WithHashPrimitiveOverridesEngine(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	req := require.New(t)

	var calls int
	factory := func() hash.Hash {
		calls++
		return sha256.New()
	}

	r := NewRegistry(WithHashPrimitive(SHA256, factory))
	d, err := r.Lookup(SHA256)
	req.NoError(err)

	inst := NewInstance(d)
	st := inst.Instantiate(112, []byte("entropy-entropy-entropy"), []byte("nonce12345"), nil)
	req.Equal(StateReady, st)
	is.Greater(calls, 0, "the substituted factory should have been invoked to build the engine")
}

// TestNewRegistry_WithDescriptorSelfTestIntervalOverridesTick checks
// that a per-descriptor interval ticks independently of the
// registry-wide default, on the same pattern as
// TestRegistry_TickRunsScheduledSelfTest but for one descriptor only.
func TestNewRegistry_WithDescriptorSelfTestIntervalOverridesTick(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	req := require.New(t)

	r := NewRegistry(WithSelfTestInterval(100), WithDescriptorSelfTestInterval(SHA256, 2))
	d, err := r.Lookup(SHA256)
	req.NoError(err)

	corrupted := append([]byte(nil), d.Vectors[0].ExpectedOutput...)
	corrupted[0] ^= 0xFF
	d.Vectors[0].ExpectedOutput = corrupted
	d.markSelfTestResult(true)

	for i := 0; i < 2; i++ {
		r.Instantiate(SHA256, 112, []byte("e"), []byte("n"), nil)
	}
	is.False(d.Approved(), "the descriptor-level interval of 2 should have triggered the scheduled self-test, not the registry default of 100")
}
