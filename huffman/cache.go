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

package huffman

import (
	"encoding/binary"
	"sync"

	"github.com/dchest/siphash"
)

// A TreeCache memoizes Build results keyed by the
// frequency table contents. Since tree construction is
// a pure function of the table, a decoder handling many
// containers produced from the same symbol distribution
// can reuse one tree instead of rebuilding it each time.
//
// A TreeCache is safe for concurrent use.
// The zero value is an empty cache ready for use.
type TreeCache struct {
	lock  sync.Mutex
	trees map[treeKey]*cacheEntry
}

type treeKey struct {
	lo, hi uint64
}

type cacheEntry struct {
	// canonical serialized table; compared on
	// lookup so a fingerprint collision can
	// never hand back the wrong tree
	table []byte
	root  *Node
}

// canonical appends (symbol, count) pairs in ascending
// symbol order; the result is identical for any two
// tables with equal contents
func (t FreqTable) canonical(dst []byte) []byte {
	var tmp [8]byte
	for _, sym := range t.Symbols() {
		dst = append(dst, sym)
		binary.LittleEndian.PutUint64(tmp[:], t[sym])
		dst = append(dst, tmp[:]...)
	}
	return dst
}

// Build returns the Huffman tree for t, reusing a
// previously built tree when t matches a table the
// cache has already seen. Callers must not modify the
// returned tree.
func (c *TreeCache) Build(t FreqTable) (*Node, error) {
	buf := t.canonical(make([]byte, 0, 9*len(t)))
	lo, hi := siphash.Hash128(0, 0, buf)
	key := treeKey{lo: lo, hi: hi}
	c.lock.Lock()
	ent := c.trees[key]
	c.lock.Unlock()
	if ent != nil && string(ent.table) == string(buf) {
		return ent.root, nil
	}
	root, err := Build(t)
	if err != nil {
		return nil, err
	}
	c.lock.Lock()
	if c.trees == nil {
		c.trees = make(map[treeKey]*cacheEntry)
	}
	c.trees[key] = &cacheEntry{table: buf, root: root}
	c.lock.Unlock()
	return root, nil
}
