// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package heap

import (
	"math/rand"
	"testing"

	"golang.org/x/exp/slices"
)

func TestHeap(t *testing.T) {
	h := New(1000, func(x, y int) bool {
		return x < y
	})
	for i := 0; i < 1000; i++ {
		h.Push(rand.Int())
	}
	sorted := make([]int, 0, h.Len())
	for h.Len() > 0 {
		sorted = append(sorted, h.Pop())
	}
	if len(sorted) != 1000 {
		t.Fatalf("popped %d items", len(sorted))
	}
	if !slices.IsSorted(sorted) {
		t.Fatal("not sorted")
	}
}

func TestHeapInterleaved(t *testing.T) {
	// pushes interleaved with pops should still
	// always yield the current minimum
	type pair struct {
		weight, seq int
	}
	less := func(x, y pair) bool {
		if x.weight != y.weight {
			return x.weight < y.weight
		}
		return x.seq < y.seq
	}
	h := New(8, less)
	seq := 0
	push := func(w int) {
		h.Push(pair{weight: w, seq: seq})
		seq++
	}
	push(5)
	push(1)
	push(5)
	push(3)
	if got := h.Pop(); got.weight != 1 {
		t.Fatalf("got weight %d, want 1", got.weight)
	}
	push(2)
	if got := h.Pop(); got.weight != 2 {
		t.Fatalf("got weight %d, want 2", got.weight)
	}
	// equal weights pop in insertion order
	// because the comparator falls back to seq
	if got := h.Pop(); got.weight != 3 {
		t.Fatalf("got weight %d, want 3", got.weight)
	}
	first := h.Pop()
	second := h.Pop()
	if first.weight != 5 || second.weight != 5 {
		t.Fatalf("got weights %d, %d, want 5, 5", first.weight, second.weight)
	}
	if first.seq > second.seq {
		t.Fatalf("equal weights popped out of order: seq %d before %d", first.seq, second.seq)
	}
	if h.Len() != 0 {
		t.Fatalf("%d items left over", h.Len())
	}
}
