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
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/SnellerInc/huff"
	"github.com/SnellerInc/huff/compr"
)

var (
	dashv       bool
	dashh       bool
	dasho       string
	dashalgo    string
	dashprofile string
)

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose")
	flag.BoolVar(&dashh, "h", false, "show usage help")
	flag.StringVar(&dasho, "o", "", "output file (single input only; default derives from the input name)")
	flag.StringVar(&dashalgo, "algo", "huffman", "compression algorithm (huffman, zstd, zstd-better, s2)")
	flag.StringVar(&dashprofile, "profile", "", "profile file (.json or .yaml) supplying flag defaults")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func usagef(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(2)
}

func logf(f string, args ...interface{}) {
	if dashv {
		fmt.Fprintf(os.Stderr, f, args...)
	}
}

// outsuffix maps a compression algorithm to the
// extension appended to compressed output files
func outsuffix(algo string) string {
	switch algo {
	case "huffman":
		return ".huf"
	case "zstd", "zstd-better":
		return ".zst"
	case "s2":
		return ".s2"
	default:
		return "." + algo
	}
}

// outpath picks the output file for one input;
// -o wins when set, which main restricts to
// single-input runs
func outpath(in, suffix string) string {
	if dasho != "" {
		return dasho
	}
	return in + suffix
}

// entry point for 'huff c ...'
func compress(paths []string) {
	comp := compr.Compression(dashalgo)
	if comp == nil {
		usagef("unknown algorithm %q\n", dashalgo)
	}
	suffix := outsuffix(comp.Name())
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			exitf("%s\n", err)
		}
		packed, err := comp.Compress(data, nil)
		if err != nil {
			exitf("compressing %s: %s\n", path, err)
		}
		out := outpath(path, suffix)
		if err := writeFile(out, packed); err != nil {
			exitf("writing %s: %s\n", out, err)
		}
		logf("%s: %d -> %d bytes (%s)\n", out, len(data), len(packed), comp.Name())
	}
}

// decoded output strips the algorithm suffix when the
// input carries one, and appends .out otherwise
func stripped(in string) string {
	for _, suffix := range []string{".huf", ".zst", ".s2"} {
		if strings.HasSuffix(in, suffix) && len(in) > len(suffix) {
			return strings.TrimSuffix(in, suffix)
		}
	}
	return in + ".out"
}

// entry point for 'huff d ...'
func decompress(paths []string) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			exitf("%s\n", err)
		}
		algo := compr.Detect(data)
		if algo == "" {
			exitf("%s: unrecognized format\n", path)
		}
		plain, err := compr.Decompression(algo).Decompress(data, nil)
		if err != nil {
			exitf("decompressing %s: %s\n", path, err)
		}
		out := dasho
		if out == "" {
			out = stripped(path)
		}
		if err := writeFile(out, plain); err != nil {
			exitf("writing %s: %s\n", out, err)
		}
		logf("%s: %d -> %d bytes (%s)\n", out, len(data), len(plain), algo)
	}
}

// entry point for 'huff describe ...'
func describe(paths []string) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			exitf("%s\n", err)
		}
		info, err := huff.Describe(data)
		if err != nil {
			exitf("%s: %s\n", path, err)
		}
		fmt.Printf("%s: version %d, %d symbols, %d bytes decoded, %d packed bits, %d header bytes\n",
			path, info.Version, len(info.Symbols), info.OriginalLength, info.PackedBits, info.HeaderBytes)
		if dashv {
			for i := range info.Symbols {
				s := &info.Symbols[i]
				fmt.Printf("  %-6q %10d  %s\n", s.Symbol, s.Count, s.Code)
			}
		}
	}
}

// entry point for 'huff verify ...'
func verify(paths []string) {
	dec := compr.Decompression("huffman")
	failed := false
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			exitf("%s\n", err)
		}
		if _, err := dec.Decompress(data, nil); err != nil {
			fmt.Printf("%s: %s\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed {
		os.Exit(1)
	}
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 || dashh {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s [-o <output>] [-algo <algo>] [-profile <file>] c <file>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        compress files\n")
		fmt.Fprintf(os.Stderr, "    %s [-o <output>] d <file>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        decompress files\n")
		fmt.Fprintf(os.Stderr, "    %s describe <file.huf>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        show container metadata (-v adds per-symbol codes)\n")
		fmt.Fprintf(os.Stderr, "    %s verify <file.huf>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        fully decode containers and report ok/corrupt\n")
		fmt.Fprintf(os.Stderr, "flag usage:\n")
		flag.Usage()
		os.Exit(2)
	}
	applyProfile()
	if dasho != "" && len(args) != 2 {
		usagef("-o requires exactly one input file\n")
	}
	switch args[0] {
	case "c":
		compress(args[1:])
	case "d":
		decompress(args[1:])
	case "describe":
		describe(args[1:])
	case "verify":
		verify(args[1:])
	default:
		usagef("commands: c, d, describe, verify\n")
	}
}
