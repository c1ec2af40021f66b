// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import "github.com/hashicorp/go-multierror"

// State is the outcome of a lifecycle operation. It is returned by value
// from every operation instead of being signaled via panic or a Go
// error alone; a poisoned instance is a first-class, observable
// condition, not an exceptional one.
type State int

const (
	// StateReady means the instance is instantiated and may Generate or
	// Reseed.
	StateReady State = iota
	// StateError means a hash-primitive failure poisoned the instance;
	// only Uninstantiate is accepted from here.
	StateError
	// StateTerminated means Uninstantiate has run; V, C, and T are
	// zeroized and no further operation but a repeated Uninstantiate is
	// accepted.
	StateTerminated
	// StateInputError means a precondition was violated: an unsupported
	// strength, an oversized input, or a call made from the wrong
	// lifecycle state. The instance is left completely unchanged.
	StateInputError
	// StateReseedRequired means Generate's reseed_counter exceeded
	// descriptor.MaxGenerateCalls. The instance remains READY; no output
	// was written.
	StateReseedRequired
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateError:
		return "ERROR"
	case StateTerminated:
		return "TERMINATED"
	case StateInputError:
		return "INPUT_ERROR"
	case StateReseedRequired:
		return "RESEED_REQUIRED"
	default:
		return "UNKNOWN"
	}
}

// lifecycleState is the instance's own persisted state, distinct from
// the transient State a single operation call returns: an INPUT_ERROR
// or RESEED_REQUIRED result never changes lifecycleState.
type lifecycleState int

const (
	lcUninitialized lifecycleState = iota
	lcReady
	lcError
	lcTerminated
)

// Instance is a single Hash_DRBG instance. It is a single-writer
// resource: the core does not synchronize access across goroutines, and
// a caller sharing one Instance across threads must serialize
// Instantiate, Reseed, Generate, and Uninstantiate calls externally.
type Instance struct {
	descriptor *Descriptor
	strength   int

	v []byte // seedlen bytes, primary internal state (V)
	c []byte // seedlen bytes, constant added into V on every Generate
	t []byte // seedlen bytes, transient working buffer

	reseedCounter uint32
	lifecycle     lifecycleState
	errReason     error

	engine hashEngine
}

// NewInstance allocates an uninitialized instance shell bound to d. It
// must be instantiated with Instantiate before Reseed or Generate will
// succeed.
func NewInstance(d *Descriptor) *Instance {
	return &Instance{descriptor: d, lifecycle: lcUninitialized}
}

// State reports the instance's current persisted lifecycle state, mapped
// onto the same State enum a single operation call returns.
func (inst *Instance) State() State {
	switch inst.lifecycle {
	case lcReady:
		return StateReady
	case lcError:
		return StateError
	case lcTerminated:
		return StateTerminated
	default:
		return StateInputError
	}
}

// Err returns the diagnostic recorded for the most recently failed
// operation (an ERROR transition, a rejected precondition, or a reseed
// requirement), or nil if none has failed yet.
func (inst *Instance) Err() error { return inst.errReason }

// Strength returns the security strength this instance was instantiated
// at, or 0 before Instantiate succeeds.
func (inst *Instance) Strength() int { return inst.strength }

// Descriptor returns the algorithm descriptor this instance is bound to.
func (inst *Instance) Descriptor() *Descriptor { return inst.descriptor }

// ReseedCounter returns the number of Generate calls since the last
// (re)seed, for introspection and tests.
func (inst *Instance) ReseedCounter() uint32 { return inst.reseedCounter }

// Instantiate seeds a fresh instance from entropy_in, nonce, and an
// optional personalization string.
func (inst *Instance) Instantiate(strength int, entropyIn, nonce, personalization []byte) State {
	if inst.lifecycle != lcUninitialized {
		return inst.rejectWrongState()
	}
	d := inst.descriptor

	var violations *multierror.Error
	if !d.supportsStrength(strength) {
		violations = multierror.Append(violations, ErrUnsupportedStrength)
	}
	if len(entropyIn) > d.MaxEntropyInput || len(nonce) > d.MaxNonce || len(personalization) > d.MaxPersonalization {
		violations = multierror.Append(violations, ErrInputTooLong)
	}
	if violations != nil {
		return inst.rejectInput(violations)
	}

	if inst.engine == nil {
		inst.engine = d.newEngine()
	}

	seedLen := d.SeedLen
	inst.v = make([]byte, seedLen)
	inst.c = make([]byte, seedLen)
	inst.t = make([]byte, seedLen)

	seedMaterial := newAccumulator(3)
	seedMaterial.append(entropyIn)
	seedMaterial.append(nonce)
	seedMaterial.append(personalization)

	v, err := hashDF(inst.engine, d.OutLen, seedMaterial, seedLen)
	if err != nil {
		return inst.fail(err)
	}
	copy(inst.v, v)
	wipe(v)

	prefixed := newAccumulator(2)
	zeroByte := []byte{0x00}
	prefixed.append(zeroByte)
	prefixed.append(inst.v)

	c, err := hashDF(inst.engine, d.OutLen, prefixed, seedLen)
	if err != nil {
		return inst.fail(err)
	}
	copy(inst.c, c)
	wipe(c)

	inst.strength = strength
	inst.reseedCounter = 1
	inst.lifecycle = lcReady
	return StateReady
}

// Reseed mixes fresh entropy_in (and optional additional_input) into an
// already-instantiated instance.
func (inst *Instance) Reseed(entropyIn, additionalInput []byte) State {
	if inst.lifecycle != lcReady {
		return inst.rejectWrongState()
	}
	d := inst.descriptor
	if len(entropyIn) > d.MaxEntropyInput || len(additionalInput) > d.MaxAdditionalInput {
		return inst.rejectInput(multierror.Append(nil, ErrInputTooLong))
	}

	seedMaterial := newAccumulator(4)
	oneByte := []byte{0x01}
	seedMaterial.append(oneByte)
	seedMaterial.append(inst.v)
	seedMaterial.append(entropyIn)
	seedMaterial.append(additionalInput)

	newV, err := hashDF(inst.engine, d.OutLen, seedMaterial, d.SeedLen)
	if err != nil {
		return inst.fail(err)
	}
	copy(inst.c, newV)
	wipe(newV)
	copy(inst.v, inst.c)

	prefixed := newAccumulator(2)
	zeroByte := []byte{0x00}
	prefixed.append(zeroByte)
	prefixed.append(inst.v)

	newC, err := hashDF(inst.engine, d.OutLen, prefixed, d.SeedLen)
	if err != nil {
		return inst.fail(err)
	}
	copy(inst.c, newC)
	wipe(newC)

	inst.reseedCounter = 1
	return StateReady
}

// Generate fills out with len(out) pseudo-random bytes. additionalInput
// may be nil.
func (inst *Instance) Generate(out []byte, additionalInput []byte) State {
	if inst.lifecycle != lcReady {
		return inst.rejectWrongState()
	}
	d := inst.descriptor

	var violations *multierror.Error
	if len(out) > d.MaxBytesPerRequest {
		violations = multierror.Append(violations, ErrRequestTooLarge)
	}
	if len(additionalInput) > d.MaxAdditionalInput {
		violations = multierror.Append(violations, ErrInputTooLong)
	}
	if violations != nil {
		return inst.rejectInput(violations)
	}

	if inst.reseedCounter > d.MaxGenerateCalls {
		inst.errReason = ErrReseedRequired
		return StateReseedRequired
	}

	if len(additionalInput) > 0 {
		w, err := inst.hashOnce([]byte{0x02}, inst.v, additionalInput)
		if err != nil {
			return inst.fail(err)
		}
		wideAdd(inst.v, inst.v, w)
		wipe(w)
	}

	copy(inst.t, inst.v)

	remaining := len(out)
	offset := 0
	one := []byte{1}
	for remaining > 0 {
		h, err := inst.hashOnce(inst.t)
		if err != nil {
			return inst.fail(err)
		}
		n := d.OutLen
		if remaining < n {
			n = remaining
		}
		copy(out[offset:offset+n], h[:n])
		wipe(h)
		offset += n
		remaining -= n

		wideAdd(inst.t, inst.t, one)
	}

	h3, err := inst.hashOnce([]byte{0x03}, inst.v)
	if err != nil {
		return inst.fail(err)
	}
	wideAdd(inst.v, inst.v, h3)
	wipe(h3)

	wideAdd(inst.v, inst.v, inst.c)

	var counterBytes [4]byte
	putUint32BE(counterBytes[:], inst.reseedCounter)
	wideAdd(inst.v, inst.v, counterBytes[:])

	inst.reseedCounter++
	wipe(inst.t)

	return StateReady
}

// Uninstantiate releases the hash context and zeroizes V, C, and T. It
// is idempotent on an already-TERMINATED instance.
func (inst *Instance) Uninstantiate() State {
	if inst.lifecycle == lcTerminated {
		return StateTerminated
	}
	wipe(inst.v)
	wipe(inst.c)
	wipe(inst.t)
	inst.engine = nil
	inst.lifecycle = lcTerminated
	return StateTerminated
}

// hashOnce computes Hash(parts...) directly (no Hash_df framing) into an
// OutLen-byte slice, used by Generate's steps 1, 3, and 4.
func (inst *Instance) hashOnce(parts ...[]byte) ([]byte, error) {
	inst.engine.Reset()
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		if _, err := inst.engine.Write(p); err != nil {
			return nil, ErrPrimitiveFailure
		}
	}
	if inst.engine.Failed() {
		return nil, ErrPrimitiveFailure
	}
	out := inst.engine.Sum(make([]byte, 0, inst.descriptor.OutLen))
	if inst.engine.Failed() {
		return nil, ErrPrimitiveFailure
	}
	return out, nil
}

// rejectWrongState returns StateInputError for a call made when the
// instance isn't in the lifecycle state that operation requires,
// recording which sentinel best explains why: a terminated instance, a
// poisoned one, or simply the wrong step in the sequence.
func (inst *Instance) rejectWrongState() State {
	switch inst.lifecycle {
	case lcTerminated:
		inst.errReason = ErrInstanceTerminated
	case lcError:
		inst.errReason = ErrInstancePoisoned
	default:
		inst.errReason = ErrWrongState
	}
	return StateInputError
}

// rejectInput returns StateInputError for one or more simultaneously
// violated input preconditions, recording every violation so a caller
// inspecting Err() can see all of them via errors.Is, not just the
// first one checked.
func (inst *Instance) rejectInput(violations *multierror.Error) State {
	inst.errReason = violations.ErrorOrNil()
	return StateInputError
}

// fail transitions the instance to ERROR, records reason, and releases
// the hash context. The failed operation may already have updated V or
// C before the failing hash call; neither is trusted by any subsequent
// call other than Uninstantiate, which zeroizes them.
func (inst *Instance) fail(reason error) State {
	inst.lifecycle = lcError
	inst.errReason = reason
	inst.engine = nil
	return StateError
}

func putUint32BE(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}
