package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/spotify/basic-pitch-go/chunk"
	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/util"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reports disk usage of the bucket/shard result cache",
	Long:  `Reports disk usage of the bucket/shard result cache`,
	Run: func(cmd *cobra.Command, args []string) {
		report()
	},
}

type bucketsReport struct {
	numFiles int64
	numBytes int64
}

type shardsReport struct {
	avgIndexPercent float32
	indexPercents   []float32
	entriesInShards []int64
	numFiles        int64
	totalBytes      int64
	dataBytes       int64
}

var bucketFileRE = regexp.MustCompile(`^[0-9a-f]{3}\.dat$`)
var shardFileRE = regexp.MustCompile(`^[0-9a-fA-F]{8}-([0-9a-fA-F]{4}-){3}[0-9a-fA-F]{12}\.dat$`)

func analyzeBuckets() bucketsReport {
	var report bucketsReport

	files, err := ioutil.ReadDir(constants.OutDir())
	if err != nil {
		panic("could not read output dir: " + err.Error())
	}

	for _, f := range files {
		if !bucketFileRE.MatchString(f.Name()) {
			continue
		}
		report.numFiles++
		info, err := os.Stat(filepath.Join(constants.OutDir(), f.Name()))
		if err != nil {
			panic("could not stat bucket file: " + err.Error())
		}
		report.numBytes += info.Size()
	}

	return report
}

func analyzeShards() shardsReport {
	var report shardsReport

	files, err := ioutil.ReadDir(constants.OutDir())
	if err != nil {
		panic("could not read output dir: " + err.Error())
	}

	for _, f := range files {
		if !shardFileRE.MatchString(f.Name()) {
			continue
		}
		report.numFiles++

		file := util.OpenFileOrPanic(filepath.Join(constants.OutDir(), f.Name()))
		index, indexLength, err := chunk.ReadIndex(file)
		if err != nil {
			panic("could not read shard index: " + err.Error())
		}

		entries := int64(len(index))
		report.entriesInShards = append(report.entriesInShards, entries)

		stats, err := file.Stat()
		if err != nil {
			panic("could not stat shard file: " + err.Error())
		}
		indexPercent := float32(indexLength+4) / float32(stats.Size())
		report.totalBytes += stats.Size()
		report.indexPercents = append(report.indexPercents, indexPercent)

		dataBytes := stats.Size() - int64(indexLength+4)
		report.dataBytes += dataBytes
		file.Close()
	}

	if report.totalBytes > 0 {
		report.avgIndexPercent = float32(report.totalBytes-report.dataBytes) / float32(report.totalBytes)
	}
	return report
}

func report() {
	bucketsReport := analyzeBuckets()
	shardsReport := analyzeShards()

	fmt.Printf("bucketsReport.numFiles: %v\n", bucketsReport.numFiles)
	fmt.Printf("shardsReport.numFiles: %v\n", shardsReport.numFiles)
	fmt.Printf("shardsReport.avgIndexPercent: %v\n", shardsReport.avgIndexPercent)
	fmt.Printf("shardsReport.entriesInShards: %v\n", shardsReport.entriesInShards)
	fmt.Printf("bucketsReport.numBytes: %v\n", bucketsReport.numBytes)
	fmt.Printf("shardsReport.totalBytes: %v\n", shardsReport.totalBytes)

	entries := util.Sum(shardsReport.entriesInShards)
	fmt.Printf("numEntries from shards: %v\n", entries)
}
