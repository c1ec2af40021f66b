// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunSelfTest_SHA256_112_Passes checks the one fully specified
// vector embedded in vectors.go passes its own known-answer test.
func TestRunSelfTest_SHA256_112_Passes(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	d := testSHA256Descriptor()
	err := runSelfTest(d, 112, d.Vectors[0])
	is.NoError(err)
}

func TestRunSelfTest_EmptyVectorSkipped(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	d := testSHA256Descriptor()
	err := runSelfTest(d, 128, d.Vectors[1])
	is.NoError(err, "an empty sentinel vector must be skipped, not fail")
}

func TestRunSelfTest_MismatchDemotesDescriptor(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	req := require.New(t)

	d := testSHA256Descriptor()
	d.Vectors[0].ExpectedOutput = append([]byte(nil), d.Vectors[0].ExpectedOutput...)
	d.Vectors[0].ExpectedOutput[0] ^= 0xFF // corrupt the expected output

	is.True(d.Approved())
	err := runDescriptorSelfTests(d)
	req.Error(err)
	is.ErrorIs(err, ErrSelfTestFailed)
	is.False(d.Approved(), "a failing self-test must demote the descriptor")
}

func TestRunSelfTest_SHA1NeverApproved(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	d := builtinDescriptors()[0] // SHA-1
	err := runDescriptorSelfTests(d)
	is.NoError(err, "no populated vectors for SHA-1 means nothing to fail")
	is.False(d.Approved(), "SHA-1 is never FIPS-approved regardless of KAT outcome")
}

func TestRegistry_RunSelfTests_AggregatesAcrossDescriptors(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := NewRegistry()
	err := r.RunSelfTests()
	is.NoError(err, "builtin descriptors ship only verified or empty vectors")

	for _, d := range r.Descriptors() {
		if d.FIPSCapable {
			is.True(d.Approved(), "%s should be approved after a clean self-test run", d.Name)
		}
	}
}

func TestRegistry_InstantiateFIPS_RejectsDemotedDescriptor(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	broken := newDescriptor(SHA256, 55, 32, []int{112, 128, 192, 256}, true, sha256.New, [4]SelfTestVector{
		{
			EntropyIn:      []byte("x"),
			Nonce:          []byte("y"),
			GenAdditional:  nil,
			ExpectedOutput: []byte{0x00}, // guaranteed not to match real output
		},
	})
	r := NewRegistry(WithDescriptors([]*Descriptor{broken}))

	is.False(broken.Approved())

	_, _, err := r.InstantiateFIPS(SHA256, 112, []byte("e"), []byte("n"), nil)
	is.ErrorIs(err, ErrNotFIPSApproved)
}

func TestRegistry_LookupUnknownDescriptor(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := NewRegistry(WithDescriptors(nil))
	_, err := r.Lookup(SHA256)
	is.ErrorIs(err, ErrUnknownDescriptor)
}

func TestRegistry_Instantiate_UnsupportedStrengthIsInputError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := NewRegistry()
	_, st := r.Instantiate(SHA1, 256, []byte("e"), []byte("n"), nil)
	is.Equal(StateInputError, st)
}

// TestRegistry_TickRunsScheduledSelfTest checks that the health-check
// counter triggers a self-test run once it reaches the configured
// interval, counted in Instantiate calls.
func TestRegistry_TickRunsScheduledSelfTest(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := NewRegistry(WithSelfTestInterval(3))
	d, err := r.Lookup(SHA256)
	is.NoError(err)

	// Corrupt a private copy of the vector's expected output (never the
	// shared package-level byte array) after the power-up self-test
	// already ran once, so we can observe the scheduled re-run demote it.
	corrupted := append([]byte(nil), d.Vectors[0].ExpectedOutput...)
	corrupted[0] ^= 0xFF
	d.Vectors[0].ExpectedOutput = corrupted
	d.markSelfTestResult(true) // simulate "still looked fine" before the tick

	for i := 0; i < 3; i++ {
		r.Instantiate(SHA256, 112, []byte("e"), []byte("n"), nil)
	}
	is.False(d.Approved(), "the third Instantiate should have triggered a scheduled self-test that demotes the descriptor")
}
