// Package bucket is the append-only first stage of the disk-backed result
// cache: every transcription result lands in a bucket file named by the
// first three hex characters of its key, before chunk later consolidates
// buckets into compact, indexed shard files. Grounded on the teacher's
// bucket.go, which append-wrote chord records into %03d.dat files keyed by
// lowest note instead of keying by content hash.
package bucket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/model"
)

var bucketFilenameRE = regexp.MustCompile(`^[0-9a-f]{3}\.dat$`)

func bucketPath(key string) string {
	prefix := key
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	for len(prefix) < 3 {
		prefix += "0"
	}
	return filepath.Join(constants.OutDir(), prefix+".dat")
}

// Append writes one cache entry to its bucket file, newline-delimited JSON.
func Append(entry model.CacheEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("bucket: marshaling entry %s: %w", entry.Key, err)
	}

	path := bucketPath(entry.Key)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return fmt.Errorf("bucket: opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("bucket: writing to %s: %w", path, err)
	}
	return nil
}

// ReadEntries reads every entry out of one bucket file.
func ReadEntries(path string) ([]model.CacheEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bucket: opening %s: %w", path, err)
	}
	defer f.Close()

	var res []model.CacheEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var e model.CacheEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("bucket: decoding entry from %s: %w", path, err)
		}
		res = append(res, e)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("bucket: scanning %s: %w", path, err)
	}
	return res, nil
}

// Paths returns every bucket file path in the output directory, in
// directory-listing order (lexicographic, so consolidation visits them in
// the same order Filenames were assigned).
func Paths() ([]string, error) {
	files, err := ioutil.ReadDir(constants.OutDir())
	if err != nil {
		return nil, fmt.Errorf("bucket: reading output dir: %w", err)
	}

	var res []string
	for _, file := range files {
		if bucketFilenameRE.MatchString(file.Name()) {
			res = append(res, filepath.Join(constants.OutDir(), file.Name()))
		}
	}
	return res, nil
}

// DeleteAll removes every bucket file, once chunk has consolidated them
// into shards.
func DeleteAll() error {
	paths, err := Paths()
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("bucket: removing %s: %w", p, err)
		}
	}
	return nil
}
