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

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutNames(t *testing.T) {
	cases := []struct {
		algo, want string
	}{
		{"huffman", ".huf"},
		{"zstd", ".zst"},
		{"zstd-better", ".zst"},
		{"s2", ".s2"},
	}
	for _, tc := range cases {
		if got := outsuffix(tc.algo); got != tc.want {
			t.Errorf("outsuffix(%q) = %q, want %q", tc.algo, got, tc.want)
		}
	}
	strip := []struct {
		in, want string
	}{
		{"log.txt.huf", "log.txt"},
		{"data.zst", "data"},
		{"frames.s2", "frames"},
		{"noext", "noext.out"},
		{".huf", ".huf.out"},
	}
	for _, tc := range strip {
		if got := stripped(tc.in); got != tc.want {
			t.Errorf("stripped(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeProfile(t *testing.T) {
	p, err := decodeProfile([]byte(`{"algo": "zstd", "verbose": true}`), ".json")
	if err != nil {
		t.Fatal(err)
	}
	if p.Algo != "zstd" || !p.Verbose {
		t.Errorf("json profile decoded as %+v", p)
	}
	p, err = decodeProfile([]byte("algo: s2\n"), ".yaml")
	if err != nil {
		t.Fatal(err)
	}
	if p.Algo != "s2" || p.Verbose {
		t.Errorf("yaml profile decoded as %+v", p)
	}
	if _, err := decodeProfile([]byte("algo: [not, a, string]"), ".yaml"); err == nil {
		t.Error("bad profile decoded without error")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	if err := writeFile(path, []byte("first")); err != nil {
		t.Fatal(err)
	}
	// overwriting must replace the old contents whole
	if err := writeFile(path, []byte("second")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("read back %q", got)
	}
	// no temporary files may survive
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		for _, e := range entries {
			t.Logf("leftover: %s", e.Name())
		}
		t.Fatalf("%d entries in output dir, want 1", len(entries))
	}
}
