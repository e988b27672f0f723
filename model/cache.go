// Shard types for the disk-backed result cache (see package bucket and
// package chunk), mirroring the teacher's chunk-overview/chunk-index split:
// one small in-memory overview per shard file, and a per-shard byte-range
// index gob-encoded at the front of the file itself.
package model

// ByteRange is a half-open [Start, End) span within a shard's data section.
type ByteRange struct {
	Start uint32
	End   uint32
}

// ShardIndex maps a cache key to its byte range within one shard file.
type ShardIndex = map[string]ByteRange

// ShardOverview is the in-memory manifest entry for one shard file: the
// lexicographic range of cache keys it can possibly contain, and its name.
type ShardOverview struct {
	Start    string
	End      string
	Filename string
}

// CacheEntry is one cached decode result, keyed by a content hash of the
// input samples plus the decode options that produced it.
type CacheEntry struct {
	Key   string
	Notes []NoteEventTime
}

// JobNumToAudioPath maps a batch job number to the input audio path it was
// assigned at CLI startup.
type JobNumToAudioPath = map[uint32]string
