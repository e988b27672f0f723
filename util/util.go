// Package util collects small generic helpers shared by the cache and CLI
// layers: directory bookkeeping, gob persistence, and ordered-type helpers
// that don't belong to any one domain package.
package util

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/spotify/basic-pitch-go/constants"
)

// RecreateOutputDir wipes and recreates the configured output directory.
func RecreateOutputDir() {
	dir := constants.OutDir()
	if err := os.RemoveAll(dir); err != nil {
		panic("could not clear output dir: " + err.Error())
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		panic("could not create output dir: " + err.Error())
	}
}

// GatherAllAudioPaths walks path collecting files with a raw-PCM extension,
// capped at maxNum (0 means unlimited).
func GatherAllAudioPaths(path string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("error walking: " + err.Error())
		}
		if !d.IsDir() && (strings.HasSuffix(s, ".f32") || strings.HasSuffix(s, ".raw")) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		panic("error walking: " + err.Error())
	}
	return res
}

// GetKeys returns a map's keys in no particular order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// CreateBinary gob-encodes data and writes it to filename.
func CreateBinary(filename string, data any) error {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(data); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer f.Close()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// OpenFileOrPanic opens path, panicking with a descriptive message on failure.
// Reserved for CLI entry points where there is no caller left to hand an error to.
func OpenFileOrPanic(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		panic("couldn't read file: " + err.Error())
	}
	return f
}

// ReadBinary decodes a gob-encoded value of type A from path.
func ReadBinary[A any](path string) (A, error) {
	var data A
	f, err := os.Open(path)
	if err != nil {
		return data, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&data); err != nil && err != io.EOF {
		return data, fmt.Errorf("decoding %s: %w", path, err)
	}
	return data, nil
}

// Min returns the smaller of two ordered integers.
func Min[A constraints.Integer](a, b A) A {
	if a < b {
		return a
	}
	return b
}

// Sum adds up a slice of integers into a uint64 accumulator.
func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

// FilterZeros drops zero-valued entries, preserving order.
func FilterZeros[A constraints.Integer](nums []A) []A {
	var res []A
	for _, v := range nums {
		if v != 0 {
			res = append(res, v)
		}
	}
	return res
}
