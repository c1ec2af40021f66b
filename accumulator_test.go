// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator_AppendOrder(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := newAccumulator(3)
	a.append([]byte("one"))
	a.append([]byte("two"))
	a.append([]byte("three"))

	var got []string
	a.feed(func(b []byte) { got = append(got, string(b)) })

	is.Equal([]string{"one", "two", "three"}, got)
}

func TestAccumulator_InsertPushesAtHead(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := newAccumulator(3)
	a.append([]byte("body"))
	a.insert([]byte("length"))
	a.insert([]byte("counter"))

	var got []string
	a.feed(func(b []byte) { got = append(got, string(b)) })

	// Each insert pushes at the head, so the most recently inserted
	// record (counter) ends up in front of the one before it (length):
	// Hash_df relies on this to prepend length then counter, in that
	// call order, and have counter still be first on the wire.
	is.Equal([]string{"counter", "length", "body"}, got)
}

func TestAccumulator_Total(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := newAccumulator(2)
	a.append([]byte("abcd"))
	a.append([]byte("xy"))
	is.Equal(6, a.total())
}

func TestAccumulator_ResetReenumerates(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := newAccumulator(1)
	a.append([]byte("x"))

	_, ok := a.next()
	is.True(ok)
	_, ok = a.next()
	is.False(ok)

	a.reset()
	_, ok = a.next()
	is.True(ok, "reset should rewind the cursor for a second enumeration pass")
}

func TestAccumulator_FeedSkipsEmptyRecords(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := newAccumulator(3)
	a.append(nil)
	a.append([]byte("x"))
	a.append([]byte{})

	var got []string
	a.feed(func(b []byte) { got = append(got, string(b)) })
	is.Equal([]string{"x"}, got)
}
