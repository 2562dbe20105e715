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

// Package heap implements a generic min-heap.
package heap

// A Heap is a min-heap ordered by a caller-provided
// comparison function. Items are owned by the heap
// once pushed and are moved out again by Pop.
type Heap[T any] struct {
	items []T
	less  func(x, y T) bool
}

// New constructs an empty heap with room for capacity
// items before reallocation. The comparison function
// must describe a total order; ties left unresolved by
// less produce an unspecified pop order.
func New[T any](capacity int, less func(x, y T) bool) *Heap[T] {
	return &Heap[T]{
		items: make([]T, 0, capacity),
		less:  less,
	}
}

// Len returns the number of items currently in the heap.
func (h *Heap[T]) Len() int { return len(h.items) }

// Push adds item to the heap.
func (h *Heap[T]) Push(item T) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the minimum item.
// Pop panics if the heap is empty.
func (h *Heap[T]) Pop() T {
	ret := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	var zero T
	h.items[last] = zero
	h.items = h.items[:last]
	if last > 0 {
		h.siftDown(0)
	}
	return ret
}

func (h *Heap[T]) siftUp(index int) {
	for index > 0 {
		p := (index - 1) / 2
		if !h.less(h.items[index], h.items[p]) {
			break
		}
		h.items[p], h.items[index] = h.items[index], h.items[p]
		index = p
	}
}

func (h *Heap[T]) siftDown(index int) {
	for {
		left := (index * 2) + 1
		right := left + 1
		if left >= len(h.items) {
			break
		}
		c := left
		if right < len(h.items) && h.less(h.items[right], h.items[left]) {
			c = right
		}
		if !h.less(h.items[c], h.items[index]) {
			break
		}
		h.items[c], h.items[index] = h.items[index], h.items[c]
		index = c
	}
}
