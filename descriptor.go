// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"crypto/sha1"  //nolint:gosec // SHA-1 is an explicitly supported, non-FIPS Hash_DRBG variant.
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sync/atomic"
)

// HashID identifies one of the five approved hash functions a Hash_DRBG
// descriptor may be built on.
type HashID int

const (
	SHA1 HashID = iota
	SHA224
	SHA256
	SHA384
	SHA512
)

// String returns the descriptor's conventional NIST name.
func (h HashID) String() string {
	switch h {
	case SHA1:
		return "SHA-1"
	case SHA224:
		return "SHA-224"
	case SHA256:
		return "SHA-256"
	case SHA384:
		return "SHA-384"
	case SHA512:
		return "SHA-512"
	default:
		return "unknown"
	}
}

// hashEngine is the primitive hash collaborator the core treats as
// externally provided, modeled the idiomatic Go way as the stdlib
// hash.Hash interface behind a factory. Reset lets Hash_df and Generate
// reuse one engine across many finalizations instead of allocating a new
// hash.Hash per block.
//
// A real stdlib hash.Hash cannot fail; the failure path this interface
// allows (see stubFailEngine in the test suite) exists so the ERROR
// transition is independently testable without depending on a primitive
// that can actually break.
type hashEngine interface {
	hash.Hash
	// Failed reports whether the underlying primitive is in a broken
	// state and must not be trusted. The stdlib-backed engine always
	// returns false; only test doubles return true.
	Failed() bool
}

type stdHashEngine struct {
	hash.Hash
}

func (stdHashEngine) Failed() bool { return false }

func newStdEngine(factory func() hash.Hash) func() hashEngine {
	return func() hashEngine {
		return stdHashEngine{Hash: factory()}
	}
}

// SelfTestVector is one known-answer test for a single (descriptor,
// strength) pair. A zero-length ExpectedOutput marks an empty/skipped
// slot.
type SelfTestVector struct {
	EntropyIn       []byte
	Nonce           []byte
	Personalization []byte
	ReseedEntropy   []byte
	ReseedAdditional []byte
	GenAdditional   []byte
	ExpectedOutput  []byte
}

// empty reports whether this is the sentinel zero-length slot.
func (v SelfTestVector) empty() bool { return len(v.ExpectedOutput) == 0 }

// Descriptor is the immutable, process-wide, per-hash parameter set.
// Every field is read-only after registration except the self-test
// result, which is demoted monotonically under an atomic flag.
type Descriptor struct {
	ID      HashID
	Name    string
	SeedLen int // bytes
	OutLen  int // bytes

	// Strengths are the security strengths this descriptor admits,
	// indexed in the fixed order {112, 128, 192, 256}; a strength not in
	// this set is rejected with ErrUnsupportedStrength.
	Strengths []int

	MaxEntropyInput      int
	MaxNonce             int
	MaxPersonalization   int
	MaxAdditionalInput   int
	MaxBytesPerRequest int
	MaxGenerateCalls   uint32

	// SelfTestIntervalCalls overrides the registry-wide self-test tick
	// interval for this descriptor alone. Zero means "inherit the
	// registry's interval"; set via WithDescriptorSelfTestInterval. Every
	// built-in descriptor starts at zero.
	SelfTestIntervalCalls int

	// FIPSCapable marks descriptors that may be FIPS-approved once their
	// self-test passes. SHA-1 is never FIPS-capable.
	FIPSCapable bool

	// Vectors holds one self-test vector per entry in strengthOrder,
	// aligned by index; a vector in a slot whose strength isn't in
	// Strengths is simply never exercised.
	Vectors [4]SelfTestVector

	newEngine func() hashEngine

	// selfTestPassed starts true for FIPSCapable descriptors (power-up
	// self-test runs before first use demotes it if it fails) and false
	// for SHA-1, which is never FIPS-approved regardless of KAT result.
	selfTestPassed atomic.Bool
}

// strengthOrder is the fixed index order self-test vector slots and
// descriptor.Strengths entries are aligned to.
var strengthOrder = [4]int{112, 128, 192, 256}

// Approved reports whether this descriptor is currently usable by a
// FIPS-gated caller: it must be FIPS-capable and its most recent
// self-test run must have passed.
func (d *Descriptor) Approved() bool {
	return d.FIPSCapable && d.selfTestPassed.Load()
}

// supportsStrength reports whether s is in d.Strengths.
func (d *Descriptor) supportsStrength(s int) bool {
	for _, v := range d.Strengths {
		if v == s {
			return true
		}
	}
	return false
}

// vectorForStrength returns the self-test vector slot for s, and whether
// s has a defined slot at all (it always does for s in strengthOrder;
// false only for a caller-supplied strength outside {112,128,192,256}).
func (d *Descriptor) vectorForStrength(s int) (SelfTestVector, bool) {
	for i, v := range strengthOrder {
		if v == s {
			return d.Vectors[i], true
		}
	}
	return SelfTestVector{}, false
}

// demote permanently marks the descriptor's self-test as failed. It is
// idempotent and monotonic: once false, Approved never becomes true
// again for the life of the descriptor; a later RunSelfTests call that
// passes does not restore it.
func (d *Descriptor) demote() {
	d.selfTestPassed.Store(false)
}

func (d *Descriptor) markSelfTestResult(passed bool) {
	d.selfTestPassed.Store(passed)
}

// boundary limits shared across every descriptor.
const (
	maxInputLength     = 1 << 27 // entropy_in, nonce, personalization, additional_input
	maxBytesPerRequest = 1 << 11
	maxGenerateCalls   = 0x00FFFFFF
)

// newDescriptor builds a descriptor with the shared boundary limits and
// the given per-hash parameters, then wires its self-test vectors.
func newDescriptor(id HashID, seedLen, outLen int, strengths []int, fips bool, engine func() hash.Hash, vectors [4]SelfTestVector) *Descriptor {
	d := &Descriptor{
		ID:                    id,
		Name:                  id.String(),
		SeedLen:               seedLen,
		OutLen:                outLen,
		Strengths:             strengths,
		MaxEntropyInput:       maxInputLength,
		MaxNonce:              maxInputLength,
		MaxPersonalization:    maxInputLength,
		MaxAdditionalInput:    maxInputLength,
		MaxBytesPerRequest: maxBytesPerRequest,
		MaxGenerateCalls:   maxGenerateCalls,
		FIPSCapable:        fips,
		Vectors:            vectors,
		newEngine:          newStdEngine(engine),
	}
	d.selfTestPassed.Store(fips)
	return d
}

// builtinDescriptors returns the five built-in hash descriptors, freshly
// constructed (each Registry owns its own copies so tests can demote one
// without affecting another test's Registry).
func builtinDescriptors() []*Descriptor {
	return []*Descriptor{
		newDescriptor(SHA1, 55, 20, []int{112, 128}, false, sha1.New, vectorsSHA1),
		newDescriptor(SHA224, 55, 28, []int{112, 128, 192, 256}, true, sha256.New224, vectorsSHA224),
		newDescriptor(SHA256, 55, 32, []int{112, 128, 192, 256}, true, sha256.New, vectorsSHA256),
		newDescriptor(SHA384, 111, 48, []int{112, 128, 192, 256}, true, sha512.New384, vectorsSHA384),
		newDescriptor(SHA512, 111, 64, []int{112, 128, 192, 256}, true, sha512.New, vectorsSHA512),
	}
}
