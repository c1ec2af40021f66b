// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Registry is the process-wide, read-only-after-init descriptor table,
// plus the outer dispatch that validates caller input against
// descriptor boundaries before entering Instantiate, Reseed, or
// Generate, and that schedules the self-test harness.
//
// A Registry's descriptor set and self-test interval are fixed at
// construction. The only mutable state it owns directly is one
// health-check counter per descriptor; each Descriptor's approval flag
// is demoted under its own atomic, independent of the Registry.
type Registry struct {
	descriptors map[HashID]*Descriptor

	mu               sync.Mutex
	healthCounters   map[HashID]int
	selfTestInterval int
}

// DefaultRegistry is a package-level, ready-to-use Registry populated
// with the five built-in descriptors.
var DefaultRegistry = NewRegistry()

// NewRegistry builds a Config from DefaultConfig and the given options,
// then constructs a Registry over either the five builtin descriptors or
// a replacement set supplied via WithDescriptors (tests use this to
// inject descriptors with deliberately failing vectors or a stub hash
// primitive).
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ds := cfg.Descriptors
	if ds == nil {
		ds = builtinDescriptors()
	}
	descriptors := descriptorsByID(ds)

	for id, factory := range cfg.HashPrimitives {
		if d, ok := descriptors[id]; ok {
			d.newEngine = newStdEngine(factory)
		}
	}
	for id, n := range cfg.DescriptorSelfTestIntervals {
		if d, ok := descriptors[id]; ok {
			d.SelfTestIntervalCalls = n
		}
	}

	r := &Registry{
		descriptors:      descriptors,
		healthCounters:   make(map[HashID]int, len(descriptors)),
		selfTestInterval: cfg.SelfTestInterval,
	}

	// Power-up self-test, run once up front so Approved() reflects
	// reality before any caller ever instantiates against this registry.
	// Its result is intentionally discarded here: a failing descriptor is
	// simply demoted, not fatal to constructing the registry itself.
	_ = r.RunSelfTests()

	return r
}

func descriptorsByID(ds []*Descriptor) map[HashID]*Descriptor {
	m := make(map[HashID]*Descriptor, len(ds))
	for _, d := range ds {
		m[d.ID] = d
	}
	return m
}

// Lookup returns the descriptor registered for id.
func (r *Registry) Lookup(id HashID) (*Descriptor, error) {
	d, ok := r.descriptors[id]
	if !ok {
		return nil, ErrUnknownDescriptor
	}
	return d, nil
}

// Descriptors returns every descriptor currently registered, in a
// deterministic order (SHA-1, SHA-224, SHA-256, SHA-384, SHA-512), for
// iteration by callers such as the self-test CLI.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.descriptors))
	for _, id := range []HashID{SHA1, SHA224, SHA256, SHA384, SHA512} {
		if d, ok := r.descriptors[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

// RunSelfTests runs the known-answer self-test for every registered
// descriptor and strength, demoting any descriptor whose test fails. It
// returns the aggregated failures, or nil if every populated vector slot
// passed.
func (r *Registry) RunSelfTests() error {
	var result *multierror.Error
	for _, d := range r.Descriptors() {
		if err := runDescriptorSelfTests(d); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	return result
}

// tick advances d's own health-check counter and, once it reaches d's
// configured interval, runs the full self-test suite before returning.
// A descriptor with SelfTestIntervalCalls set to a positive value ticks
// on its own schedule; one left at zero inherits the registry-wide
// interval. The self-test's own result is intentionally not returned
// from tick: a scheduled health check demotes failing descriptors, but
// does not itself block an Instantiate request against a descriptor
// that still passed.
func (r *Registry) tick(d *Descriptor) {
	interval := r.selfTestInterval
	if d.SelfTestIntervalCalls > 0 {
		interval = d.SelfTestIntervalCalls
	}

	r.mu.Lock()
	r.healthCounters[d.ID]++
	due := r.healthCounters[d.ID] >= interval
	if due {
		r.healthCounters[d.ID] = 0
	}
	r.mu.Unlock()

	if due {
		_ = r.RunSelfTests()
	}
}

// Instantiate validates (id, strength) and every input length against
// the descriptor's boundaries before constructing and instantiating a
// fresh Instance. On a precondition violation it returns a nil Instance
// and StateInputError without allocating or mutating anything.
func (r *Registry) Instantiate(id HashID, strength int, entropyIn, nonce, personalization []byte) (*Instance, State) {
	d, err := r.Lookup(id)
	if err != nil {
		return nil, StateInputError
	}
	if !d.supportsStrength(strength) || len(entropyIn) > d.MaxEntropyInput || len(nonce) > d.MaxNonce || len(personalization) > d.MaxPersonalization {
		return nil, StateInputError
	}
	r.tick(d)

	inst := NewInstance(d)
	st := inst.Instantiate(strength, entropyIn, nonce, personalization)
	return inst, st
}

// InstantiateFIPS behaves like Instantiate, but additionally requires
// the descriptor to be FIPS-approved: FIPS-capable AND its last
// self-test passed. It returns ErrNotFIPSApproved without constructing
// an Instance if that gate is not met.
func (r *Registry) InstantiateFIPS(id HashID, strength int, entropyIn, nonce, personalization []byte) (*Instance, State, error) {
	d, err := r.Lookup(id)
	if err != nil {
		return nil, StateInputError, err
	}
	if !d.Approved() {
		return nil, StateInputError, ErrNotFIPSApproved
	}
	if !d.supportsStrength(strength) || len(entropyIn) > d.MaxEntropyInput || len(nonce) > d.MaxNonce || len(personalization) > d.MaxPersonalization {
		return nil, StateInputError, nil
	}
	r.tick(d)

	inst := NewInstance(d)
	st := inst.Instantiate(strength, entropyIn, nonce, personalization)
	return inst, st, nil
}
