// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package hashdrbg implements the NIST SP 800-90A Hash_DRBG construction:
// a deterministic random bit generator built on an approved cryptographic
// hash function (SHA-1, SHA-224, SHA-256, SHA-384, or SHA-512).
//
// It provides the four lifecycle operations (Instantiate, Reseed,
// Generate, and Uninstantiate), the Hash_df derivation function
// (SP 800-90A §10.3.1), the seedlen-wide modular state arithmetic, and a
// known-answer self-test harness that gates FIPS-approved operation.
//
// The package does not source entropy itself: callers supply entropy_in
// and nonce at Instantiate and fresh entropy_in at Reseed. It does not
// persist state across process restarts, does not implement block-cipher
// or HMAC-based DRBG constructions, and does not perform internally
// driven prediction resistance; a caller wanting prediction resistance
// calls Reseed before Generate.
package hashdrbg
