// Package chunk consolidates bucket files into compact shard files: each
// shard packs a gob-encoded ShardIndex (cache key -> byte range) at the
// front, followed by the JSON-encoded cache entries themselves back to
// back. Grounded on the teacher's chunk.go, fixing its reference to an
// undefined model.Pair type by using model.ByteRange/model.ShardIndex
// throughout, and keying shards by content-hash ranges instead of chord
// key ranges.
package chunk

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/spotify/basic-pitch-go/bucket"
	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/model"
)

// preferredShardSize caps how many data bytes accumulate before a shard is
// flushed to disk.
const preferredShardSize = 1 << 20

func getKeysSorted(m map[string]model.CacheEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func getEncodedIndexSize(idx model.ShardIndex) (uint32, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(idx); err != nil {
		return 0, fmt.Errorf("chunk: encoding index for size check: %w", err)
	}
	return uint32(buf.Len()), nil
}

func makeShard(entries map[string]model.CacheEntry, sortedKeys []string) (model.ShardOverview, error) {
	overview := model.ShardOverview{
		Filename: uuid.New().String() + ".dat",
		Start:    sortedKeys[0],
		End:      sortedKeys[len(sortedKeys)-1],
	}

	index := make(model.ShardIndex)
	dataBuf := new(bytes.Buffer)
	var offset uint32

	for _, key := range sortedKeys {
		line, err := json.Marshal(entries[key])
		if err != nil {
			return overview, fmt.Errorf("chunk: marshaling entry %s: %w", key, err)
		}
		start := offset
		if _, err := dataBuf.Write(line); err != nil {
			return overview, fmt.Errorf("chunk: buffering entry %s: %w", key, err)
		}
		offset += uint32(len(line))
		index[key] = model.ByteRange{Start: start, End: offset}
	}

	indexBuf := new(bytes.Buffer)
	if err := gob.NewEncoder(indexBuf).Encode(index); err != nil {
		return overview, fmt.Errorf("chunk: encoding shard index: %w", err)
	}

	indexSize, err := getEncodedIndexSize(index)
	if err != nil {
		return overview, err
	}

	sizeBuf := new(bytes.Buffer)
	if err := binary.Write(sizeBuf, binary.LittleEndian, indexSize); err != nil {
		return overview, fmt.Errorf("chunk: writing index size header: %w", err)
	}

	var final []byte
	final = append(final, sizeBuf.Bytes()...)
	final = append(final, indexBuf.Bytes()...)
	final = append(final, dataBuf.Bytes()...)

	path := constants.OutDir() + "/" + overview.Filename
	if err := ioutil.WriteFile(path, final, 0666); err != nil {
		return overview, fmt.Errorf("chunk: writing shard %s: %w", path, err)
	}
	return overview, nil
}

func maybeMakeShards(entries map[string]model.CacheEntry, force bool) ([]model.ShardOverview, error) {
	var size int
	var currKeys []string
	var created []model.ShardOverview

	sortedKeys := getKeysSorted(entries)
	for i, key := range sortedKeys {
		currKeys = append(currKeys, key)

		line, err := json.Marshal(entries[key])
		if err != nil {
			return nil, fmt.Errorf("chunk: sizing entry %s: %w", key, err)
		}
		size += len(line) + len(key) + 8

		isLast := i == len(sortedKeys)-1
		if size > preferredShardSize || (isLast && force && len(currKeys) > 0) {
			shard, err := makeShard(entries, currKeys)
			if err != nil {
				return nil, err
			}
			created = append(created, shard)
			size = 0
			currKeys = currKeys[:0]
		}
	}

	return created, nil
}

// CreateAll reads every bucket file, groups their entries by key, and
// flushes them into shard files, returning the resulting shard manifest.
func CreateAll() ([]model.ShardOverview, error) {
	entries := make(map[string]model.CacheEntry)
	var result []model.ShardOverview

	paths, err := bucket.Paths()
	if err != nil {
		return nil, err
	}

	for i, path := range paths {
		fmt.Printf("Processing %v of %v buckets\n", i+1, len(paths))
		bucketEntries, err := bucket.ReadEntries(path)
		if err != nil {
			return nil, err
		}
		for _, e := range bucketEntries {
			entries[e.Key] = e
		}

		isLastBucket := i == len(paths)-1
		shards, err := maybeMakeShards(entries, isLastBucket)
		if err != nil {
			return nil, err
		}
		result = append(result, shards...)
	}

	return result, nil
}

// ReadIndex reads the ShardIndex header off a shard file, returning it
// along with the header's own encoded length in bytes.
func ReadIndex(f *os.File) (model.ShardIndex, int, error) {
	var sizeBuf [4]byte
	if _, err := f.Read(sizeBuf[:]); err != nil {
		return nil, 0, fmt.Errorf("chunk: reading index size header: %w", err)
	}
	indexLength := binary.LittleEndian.Uint32(sizeBuf[:])

	buf := make([]byte, indexLength)
	if _, err := f.Read(buf); err != nil {
		return nil, 0, fmt.Errorf("chunk: reading index body: %w", err)
	}

	var index model.ShardIndex
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&index); err != nil {
		return nil, 0, fmt.Errorf("chunk: decoding index: %w", err)
	}
	return index, int(indexLength), nil
}
