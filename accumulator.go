// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

// accumulator is an append-and-enumerate queue of labeled byte ranges.
// Hash_df (and Instantiate/Reseed's own seed material) build up a
// concatenation out of several distinct buffers (entropy input, nonce,
// personalization, a one-byte label, a four-byte length prefix) without
// ever copying them into one contiguous slice. Records alias the caller's
// memory; the caller must keep every pushed slice alive until the
// accumulator has been fully enumerated.
//
// Records are enumerated head-first, in insertion order, where insert
// pushes at the head and append pushes at the tail. Hash_df relies on
// this ordering to prepend the counter byte and the length prefix in
// O(1) without disturbing the caller's original concatenation.
type accumulator struct {
	records []accumRecord
	cursor  int
}

type accumRecord struct {
	data []byte
}

// newAccumulator returns an empty accumulator with room for the given
// number of records, to avoid reallocation for the common cases (a
// handful of labeled ranges per Hash_df call).
func newAccumulator(capacityHint int) *accumulator {
	return &accumulator{records: make([]accumRecord, 0, capacityHint)}
}

// append pushes a record at the tail of the queue.
func (a *accumulator) append(b []byte) {
	a.records = append(a.records, accumRecord{data: b})
}

// insert pushes a record at the head of the queue, used by Hash_df to
// prepend the counter byte and the bit-length prefix without copying the
// input records that follow them.
func (a *accumulator) insert(b []byte) {
	a.records = append(a.records, accumRecord{})
	copy(a.records[1:], a.records[:len(a.records)-1])
	a.records[0] = accumRecord{data: b}
}

// reset rewinds the enumeration cursor to the head without discarding
// the queued records, so a second pass (e.g. re-deriving a later hash
// block) can re-enumerate the same concatenation.
func (a *accumulator) reset() {
	a.cursor = 0
}

// next returns the next pending record in head-to-tail order and
// advances the cursor. ok is false once every record has been consumed.
func (a *accumulator) next() (b []byte, ok bool) {
	if a.cursor >= len(a.records) {
		return nil, false
	}
	b = a.records[a.cursor].data
	a.cursor++
	return b, true
}

// total returns the number of bytes across every record currently
// queued, irrespective of the enumeration cursor.
func (a *accumulator) total() int {
	n := 0
	for _, r := range a.records {
		n += len(r.data)
	}
	return n
}

// feed enumerates every queued record, head to tail, passing each to
// write. It resets the cursor first so it always drains the full queue
// regardless of prior partial enumeration.
func (a *accumulator) feed(write func([]byte)) {
	a.reset()
	for {
		b, ok := a.next()
		if !ok {
			return
		}
		if len(b) > 0 {
			write(b)
		}
	}
}
