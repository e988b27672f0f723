// Package file assigns stable small-integer job numbers to a batch of
// input audio paths, the same role the teacher's file.go plays for MIDI
// paths in the indexer.
package file

import (
	"github.com/spotify/basic-pitch-go/model"
)

// CreateJobNumMap assigns each path a 0-based job number in path order.
func CreateJobNumMap(paths []string) model.JobNumToAudioPath {
	res := make(model.JobNumToAudioPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}
