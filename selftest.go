// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"bytes"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

// defaultSelfTestInterval is the number of Instantiate calls between
// forced self-test runs when a Registry is not given an explicit
// interval.
const defaultSelfTestInterval = 100

// runSelfTest exercises one (descriptor, strength) vector slot:
// Instantiate, optionally Reseed, Generate exactly
// len(vector.ExpectedOutput) bytes, byte-compare, then Uninstantiate the
// scratch instance regardless of outcome so no residue survives in any
// caller-visible instance.
func runSelfTest(d *Descriptor, strength int, vector SelfTestVector) error {
	if vector.empty() {
		return nil
	}

	scratch := NewInstance(d)
	defer scratch.Uninstantiate()

	if st := scratch.Instantiate(strength, vector.EntropyIn, vector.Nonce, vector.Personalization); st != StateReady {
		return &SelfTestError{Descriptor: d.Name, Strength: strength, Stage: "instantiate", Err: scratch.Err()}
	}

	if len(vector.ReseedEntropy) > 0 {
		if st := scratch.Reseed(vector.ReseedEntropy, vector.ReseedAdditional); st != StateReady {
			return &SelfTestError{Descriptor: d.Name, Strength: strength, Stage: "reseed", Err: scratch.Err()}
		}
	}

	actual := make([]byte, len(vector.ExpectedOutput))
	if st := scratch.Generate(actual, vector.GenAdditional); st != StateReady {
		return &SelfTestError{Descriptor: d.Name, Strength: strength, Stage: "generate", Err: scratch.Err()}
	}

	if !bytes.Equal(actual, vector.ExpectedOutput) {
		return &SelfTestError{Descriptor: d.Name, Strength: strength, Stage: "compare", Err: ErrSelfTestFailed}
	}
	return nil
}

// SelfTestError identifies exactly which (descriptor, strength, stage)
// a known-answer test failed at, so a multi-descriptor failure report
// (aggregated via go-multierror in RunSelfTests) stays actionable.
type SelfTestError struct {
	Descriptor string
	Strength   int
	Stage      string
	Err        error
}

func (e *SelfTestError) Error() string {
	return "hashdrbg: self-test failed for " + e.Descriptor + " at strength " + strconv.Itoa(e.Strength) + " (" + e.Stage + "): " + e.Err.Error()
}

func (e *SelfTestError) Unwrap() error { return e.Err }

// runDescriptorSelfTests runs every non-empty vector slot for d against
// its own strengths, demoting d on any failure: a single failed strength
// slot permanently fails the whole descriptor. Returns the aggregated
// errors (nil if every populated slot passed).
func runDescriptorSelfTests(d *Descriptor) error {
	var result *multierror.Error
	passed := true

	for i, strength := range strengthOrder {
		if !d.supportsStrength(strength) {
			continue
		}
		vector := d.Vectors[i]
		if vector.empty() {
			continue
		}
		if err := runSelfTest(d, strength, vector); err != nil {
			passed = false
			result = multierror.Append(result, err)
		}
	}

	// A passing run leaves the flag as it is: it never re-approves a
	// descriptor an earlier run demoted, and SHA-1 stays permanently
	// non-FIPS regardless of KAT outcome.
	if !passed {
		d.demote()
	}

	if result == nil {
		return nil
	}
	return result
}
