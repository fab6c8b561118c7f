// Package json persists intelligence records as JSON files under the
// results directory. Each save writes a new timestamped file, so the
// collection history for a domain is append-only.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/khanhnv2901/scope-intel/internal/intel"
	"github.com/khanhnv2901/scope-intel/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/scope-intel/internal/shared/errors"
)

const recordTimestampLayout = "20060102-150405"

// RecordRepository stores and loads collected intelligence records.
type RecordRepository struct {
	dir string
	mu  sync.Mutex
}

// NewRecordRepository creates the results directory if needed.
func NewRecordRepository(dir string) (*RecordRepository, error) {
	if err := os.MkdirAll(dir, constants.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("%w: create results directory: %v", sharedErrors.ErrRepositoryOperation, err)
	}
	return &RecordRepository{dir: dir}, nil
}

// Save writes the record to a new timestamped file and returns its path.
func (r *RecordRepository) Save(rec *intel.Record) (string, error) {
	if rec == nil || rec.Domain == "" {
		return "", sharedErrors.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := fmt.Sprintf("%s-%s.json", sanitizeDomain(rec.Domain),
		rec.CollectionTimestamp.UTC().Format(recordTimestampLayout))
	path := filepath.Join(r.dir, name)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", sharedErrors.ErrSerializationFailed, err)
	}

	if err := os.WriteFile(path, data, constants.DefaultFilePerm); err != nil {
		return "", fmt.Errorf("%w: write record: %v", sharedErrors.ErrRepositoryOperation, err)
	}
	return path, nil
}

// Load reads a record back from a file previously produced by Save.
func (r *RecordRepository) Load(path string) (*intel.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sharedErrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: read record: %v", sharedErrors.ErrRepositoryOperation, err)
	}

	var rec intel.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrDeserializationFailed, err)
	}
	return &rec, nil
}

// LoadLatest returns the most recent record saved for a domain.
func (r *RecordRepository) LoadLatest(domain string) (*intel.Record, error) {
	prefix := sanitizeDomain(intel.NormalizeDomain(domain)) + "-"

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list results directory: %v", sharedErrors.ErrRepositoryOperation, err)
	}

	matches := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".json") {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return nil, sharedErrors.ErrRecordNotFound
	}

	// Timestamped names sort chronologically.
	sort.Strings(matches)
	return r.Load(filepath.Join(r.dir, matches[len(matches)-1]))
}

func sanitizeDomain(domain string) string {
	return strings.ReplaceAll(domain, string(filepath.Separator), "_")
}
