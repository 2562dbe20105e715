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
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestCount(t *testing.T) {
	tab := Count([]byte("abracadabra"))
	want := FreqTable{'a': 5, 'b': 2, 'c': 1, 'd': 1, 'r': 2}
	if len(tab) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(tab), len(want))
	}
	for sym, n := range want {
		if tab[sym] != n {
			t.Errorf("count[%q] = %d, want %d", sym, tab[sym], n)
		}
	}
	total, ok := tab.Total()
	if !ok || total != 11 {
		t.Errorf("Total = %d, %v, want 11, true", total, ok)
	}
	if syms := tab.Symbols(); string(syms) != "abcdr" {
		t.Errorf("Symbols = %q, want abcdr", syms)
	}
	if len(Count(nil)) != 0 {
		t.Error("Count(nil) is not empty")
	}
}

func TestBuildInsufficient(t *testing.T) {
	for _, src := range []string{"", "a", "aaaaaaaa"} {
		_, err := Build(Count([]byte(src)))
		if !errors.Is(err, ErrInsufficientSymbols) {
			t.Errorf("Build(Count(%q)) = %v, want ErrInsufficientSymbols", src, err)
		}
	}
}

// the abracadabra table exercises every tie-break rule:
// c and d tie on weight 1 (leaf/leaf, symbol order),
// then b, r, and the {c,d} parent all tie on weight 2
// (leaf/leaf by symbol, leaf/internal by creation order)
func TestAbracadabraCodes(t *testing.T) {
	root, err := Build(Count([]byte("abracadabra")))
	if err != nil {
		t.Fatal(err)
	}
	if root.Weight != 11 {
		t.Fatalf("root weight %d, want 11", root.Weight)
	}
	codes := Codes(root)
	want := map[byte]string{
		'a': "0",
		'c': "100",
		'd': "101",
		'b': "110",
		'r': "111",
	}
	for sym, bits := range want {
		if got := codes[sym].String(); got != bits {
			t.Errorf("code[%q] = %s, want %s", sym, got, bits)
		}
	}
	for sym := 0; sym < 256; sym++ {
		if _, ok := want[byte(sym)]; !ok && codes[sym].Len != 0 {
			t.Errorf("unexpected code for %#x", sym)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5ee))
	for trial := 0; trial < 20; trial++ {
		src := make([]byte, rng.Intn(4096)+2)
		for i := range src {
			// narrow alphabet so weight ties are common
			src[i] = byte(rng.Intn(8))
		}
		src[0], src[1] = 0, 1 // at least 2 distinct
		first, err := Build(Count(src))
		if err != nil {
			t.Fatal(err)
		}
		second, err := Build(Count(src))
		if err != nil {
			t.Fatal(err)
		}
		a, b := Codes(first), Codes(second)
		for sym := range a {
			if a[sym].String() != b[sym].String() {
				t.Fatalf("trial %d: code for %#x differs: %s vs %s",
					trial, sym, a[sym], b[sym])
			}
		}
	}
}

func TestCodesPrefixFree(t *testing.T) {
	inputs := []string{
		"abracadabra",
		"ab",
		"aaaaaaaab",
		"the quick brown fox jumps over the lazy dog",
		strings.Repeat("ab", 100) + strings.Repeat("c", 500) + "defg",
	}
	for _, src := range inputs {
		root, err := Build(Count([]byte(src)))
		if err != nil {
			t.Fatal(err)
		}
		codes := Codes(root)
		var assigned []string
		for sym := range codes {
			if codes[sym].Len > 0 {
				assigned = append(assigned, codes[sym].String())
			}
		}
		for i := range assigned {
			for j := range assigned {
				if i != j && strings.HasPrefix(assigned[j], assigned[i]) {
					t.Errorf("%q: code %s is a prefix of %s", src, assigned[i], assigned[j])
				}
			}
		}
	}
}

func TestCodesWeights(t *testing.T) {
	// more frequent symbols never get longer codes
	src := []byte(strings.Repeat("a", 100) + strings.Repeat("b", 10) + "c")
	root, err := Build(Count(src))
	if err != nil {
		t.Fatal(err)
	}
	codes := Codes(root)
	if codes['a'].Len > codes['b'].Len || codes['b'].Len > codes['c'].Len {
		t.Errorf("code lengths a=%d b=%d c=%d not ordered by frequency",
			codes['a'].Len, codes['b'].Len, codes['c'].Len)
	}
}

func TestDeepTree(t *testing.T) {
	// fibonacci-like weights force one leaf per level,
	// the worst case for code length
	tab := make(FreqTable)
	a, b := uint64(1), uint64(1)
	for sym := 0; sym < 40; sym++ {
		tab[byte(sym)] = a
		a, b = b, a+b
	}
	root, err := Build(tab)
	if err != nil {
		t.Fatal(err)
	}
	codes := Codes(root)
	maxlen := 0
	for sym := range codes {
		if codes[sym].Len > maxlen {
			maxlen = codes[sym].Len
		}
	}
	if maxlen != 39 {
		t.Errorf("deepest code is %d bits, want 39", maxlen)
	}
}

func TestTreeCache(t *testing.T) {
	var cache TreeCache
	tab := Count([]byte("abracadabra"))
	first, err := cache.Build(tab)
	if err != nil {
		t.Fatal(err)
	}
	// an equal table built separately must hit
	same, err := cache.Build(Count([]byte("aaaaabbrrcd")))
	if err != nil {
		t.Fatal(err)
	}
	if same != first {
		t.Error("equal table did not reuse the cached tree")
	}
	// a different table must not
	other, err := cache.Build(FreqTable{'a': 5, 'b': 2, 'c': 1, 'd': 2, 'r': 2})
	if err != nil {
		t.Fatal(err)
	}
	if other == first {
		t.Error("distinct tables share a tree")
	}
	if _, err := cache.Build(FreqTable{'a': 1}); !errors.Is(err, ErrInsufficientSymbols) {
		t.Errorf("got %v, want ErrInsufficientSymbols", err)
	}
}

func BenchmarkBuild(b *testing.B) {
	rng := rand.New(rand.NewSource(7))
	src := make([]byte, 1<<16)
	rng.Read(src)
	tab := Count(src)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(tab); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCount(b *testing.B) {
	rng := rand.New(rand.NewSource(7))
	src := make([]byte, 1<<20)
	rng.Read(src)
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Count(src)
	}
}
