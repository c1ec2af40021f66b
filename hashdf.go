// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import "encoding/binary"

// hashDF implements the SP 800-90A hash derivation function: it derives
// outl bytes from the concatenation of records currently queued in in,
// using engine.
//
// The accumulator is mutated in place (the 4-byte bit-length prefix and
// the 1-byte counter are prepended to it) and left that way on return;
// callers treat in as consumed.
//
// outl == 0 is a valid request: it produces no output and performs the
// prepend but no hashing rounds.
func hashDF(engine hashEngine, outLen int, in *accumulator, outl int) ([]byte, error) {
	var lengthPrefix [4]byte
	binary.BigEndian.PutUint32(lengthPrefix[:], uint32(outl)*8)
	in.insert(lengthPrefix[:])

	counter := []byte{1}
	in.insert(counter)

	out := make([]byte, 0, outl)
	block := make([]byte, 0, outLen)
	defer wipe(block[:cap(block)])

	remaining := outl
	for remaining > 0 {
		engine.Reset()

		var failed bool
		in.feed(func(b []byte) {
			if failed {
				return
			}
			if _, err := engine.Write(b); err != nil {
				failed = true
			}
		})
		if failed || engine.Failed() {
			return nil, ErrPrimitiveFailure
		}

		block = block[:0]
		block = engine.Sum(block)
		if engine.Failed() {
			return nil, ErrPrimitiveFailure
		}

		n := outLen
		if remaining < n {
			n = remaining
		}
		out = append(out, block[:n]...)
		remaining -= n

		counter[0]++
	}

	return out, nil
}

// wipe zeroizes b in place. Used at every state-transition boundary and
// scratch-buffer release so key material never lingers in a stale buffer.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
