// Package db is the DynamoDB-backed layer of the result cache: given a set
// of content-hash keys, fetch any already-decoded note lists in one batch
// call, and write new results back the same way. Grounded on the teacher's
// GetMidiMetadatas, which does the same BatchGetItem-against-localhost
// dance for MIDI file metadata instead of transcription results.
package db

import (
	"encoding/json"
	"fmt"

	"github.com/spotify/basic-pitch-go/constants"
	"github.com/spotify/basic-pitch-go/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

const tableName = "basic-pitch-cache"

// maxBatchKeys is DynamoDB's BatchGetItem/BatchWriteItem per-call limit.
const maxBatchKeys = 25

func newClient() (*dynamodb.DynamoDB, error) {
	cfg := &aws.Config{Region: aws.String(constants.DynamoRegion())}
	if endpoint := constants.DynamoEndpoint(); endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("db: creating dynamodb session: %w", err)
	}
	return dynamodb.New(sess), nil
}

// GetCached fetches any cached entries for the given keys, at most
// maxBatchKeys at a time per the DynamoDB API's own limit. Keys with no
// cached entry are simply absent from the result map.
func GetCached(keys []string) (map[string]model.CacheEntry, error) {
	res := make(map[string]model.CacheEntry)
	if len(keys) == 0 {
		return res, nil
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}

	for start := 0; start < len(keys); start += maxBatchKeys {
		end := start + maxBatchKeys
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		var dbKeys []map[string]*dynamodb.AttributeValue
		for _, k := range batch {
			dbKeys = append(dbKeys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(k)},
			})
		}

		out, err := client.BatchGetItem(&dynamodb.BatchGetItemInput{
			RequestItems: map[string]*dynamodb.KeysAndAttributes{
				tableName: {Keys: dbKeys},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("db: BatchGetItem: %w", err)
		}

		for _, item := range out.Responses[tableName] {
			entry, err := itemToEntry(item)
			if err != nil {
				return nil, err
			}
			res[entry.Key] = entry
		}
	}

	return res, nil
}

// PutCached writes entries to the cache table, at most maxBatchKeys per
// call. Results are "put" on every call; DynamoDB's BatchWriteItem has no
// conditional-write support at this granularity and none is needed here,
// since re-decoding the same key always produces the same notes.
func PutCached(entries []model.CacheEntry) error {
	if len(entries) == 0 {
		return nil
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	for start := 0; start < len(entries); start += maxBatchKeys {
		end := start + maxBatchKeys
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[start:end]

		var writes []*dynamodb.WriteRequest
		for _, e := range batch {
			item, err := entryToItem(e)
			if err != nil {
				return err
			}
			writes = append(writes, &dynamodb.WriteRequest{
				PutRequest: &dynamodb.PutRequest{Item: item},
			})
		}

		_, err := client.BatchWriteItem(&dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]*dynamodb.WriteRequest{
				tableName: writes,
			},
		})
		if err != nil {
			return fmt.Errorf("db: BatchWriteItem: %w", err)
		}
	}

	return nil
}

func entryToItem(e model.CacheEntry) (map[string]*dynamodb.AttributeValue, error) {
	notesJSON, err := json.Marshal(e.Notes)
	if err != nil {
		return nil, fmt.Errorf("db: marshaling notes for key %s: %w", e.Key, err)
	}
	return map[string]*dynamodb.AttributeValue{
		"PK":    {S: aws.String(e.Key)},
		"Notes": {S: aws.String(string(notesJSON))},
	}, nil
}

func itemToEntry(item map[string]*dynamodb.AttributeValue) (model.CacheEntry, error) {
	var entry model.CacheEntry
	if item["PK"] == nil || item["PK"].S == nil {
		return entry, fmt.Errorf("db: cache item missing PK")
	}
	entry.Key = *item["PK"].S

	if item["Notes"] != nil && item["Notes"].S != nil {
		if err := json.Unmarshal([]byte(*item["Notes"].S), &entry.Notes); err != nil {
			return entry, fmt.Errorf("db: unmarshaling notes for key %s: %w", entry.Key, err)
		}
	}
	return entry, nil
}
