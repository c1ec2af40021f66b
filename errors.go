// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import "errors"

// Sentinel errors recorded on Instance.Err() by the lifecycle
// operations, which themselves return a State rather than an error.
// Compare with errors.Is; a precondition violation always leaves the
// instance unchanged, while a primitive-hash failure poisons it.
var (
	// ErrUnsupportedStrength is recorded when the requested security
	// strength is not in the descriptor's supported set.
	ErrUnsupportedStrength = errors.New("hashdrbg: unsupported security strength")

	// ErrInputTooLong is recorded when entropy_in, nonce,
	// personalization, or additional_input exceeds the descriptor's
	// boundary limit.
	ErrInputTooLong = errors.New("hashdrbg: input exceeds descriptor maximum length")

	// ErrRequestTooLarge is recorded when Generate is asked for more than
	// descriptor.MaxBytesPerRequest bytes.
	ErrRequestTooLarge = errors.New("hashdrbg: requested output exceeds max bytes per request")

	// ErrWrongState is recorded when an operation is invoked against an
	// instance in a lifecycle state that does not permit it, and the
	// instance is neither terminated nor poisoned (see
	// ErrInstanceTerminated and ErrInstancePoisoned for those).
	ErrWrongState = errors.New("hashdrbg: operation invalid in current lifecycle state")

	// ErrReseedRequired is recorded by Generate when reseed_counter has
	// exceeded the descriptor's MaxGenerateCalls. The instance remains
	// READY; a successful Reseed clears the condition.
	ErrReseedRequired = errors.New("hashdrbg: reseed required before further generate calls")

	// ErrPrimitiveFailure is recorded when the underlying hash primitive
	// (a Write error or a Failed() engine) reports a non-success. The instance
	// transitions to ERROR and is poisoned until Uninstantiate.
	ErrPrimitiveFailure = errors.New("hashdrbg: hash primitive failure")

	// ErrInstanceTerminated is recorded by any operation other than
	// Uninstantiate once the instance has been uninstantiated.
	ErrInstanceTerminated = errors.New("hashdrbg: instance already uninstantiated")

	// ErrInstancePoisoned is recorded by any operation other than
	// Uninstantiate once the instance has entered ERROR.
	ErrInstancePoisoned = errors.New("hashdrbg: instance is in error state")

	// ErrUnknownDescriptor is returned by Lookup when no descriptor is
	// registered for the requested hash identifier.
	ErrUnknownDescriptor = errors.New("hashdrbg: unknown hash algorithm")

	// ErrSelfTestFailed is returned when a descriptor's known-answer self
	// test does not byte-compare equal to its expected output. The
	// descriptor is demoted: Approved() becomes false and FIPS-gated
	// callers must refuse to instantiate against it.
	ErrSelfTestFailed = errors.New("hashdrbg: self-test failed, descriptor demoted")

	// ErrNotFIPSApproved is returned by InstantiateFIPS when the chosen
	// descriptor is not FIPS-approved, or its last self-test did not pass.
	ErrNotFIPSApproved = errors.New("hashdrbg: descriptor is not FIPS-approved")
)
