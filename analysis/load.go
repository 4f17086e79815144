// Package analysis turns emitted chunk records into the final analysis
// table: it reloads the records, joins justice gender and ideology
// alignment, normalises interruption rates by tokens and keeps the justices
// with enough chunks.
package analysis

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/maastricht-university/oralargs/chunking"
	"github.com/maastricht-university/oralargs/transcript"
)

// SelectOptions restrict which records enter the table.
type SelectOptions struct {
	// StartYear drops records of earlier terms.
	StartYear int
	// ExcludeAdvFirstUtt drops chunks opening on a section's first or
	// second utterance, i.e. the advocate's prepared opening.
	ExcludeAdvFirstUtt bool
}

// SelectStats counts what Select dropped.
type SelectStats struct {
	BeforeStart   int
	AdvFirstUtt   int
	RecordsKept   int
	FilesReadFrom int
}

// LoadChunks reads every *.jsonl chunk file in dir and applies Select.
func LoadChunks(dir string, opts SelectOptions) ([]chunking.Record, SelectStats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		return nil, SelectStats{}, err
	}
	sort.Strings(files)

	var all []chunking.Record
	for _, f := range files {
		recs, err := readChunkFile(f)
		if err != nil {
			return nil, SelectStats{}, err
		}
		all = append(all, recs...)
	}
	out, st, err := Select(all, opts)
	st.FilesReadFrom = len(files)
	return out, st, err
}

func readChunkFile(path string) ([]chunking.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []chunking.Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var r chunking.Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		out = append(out, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Select applies opts to records, keeping their order. Two identical
// records mean the same chunk was emitted twice and fail with
// transcript.ErrDataIntegrity.
func Select(records []chunking.Record, opts SelectOptions) ([]chunking.Record, SelectStats, error) {
	var st SelectStats
	seen := make(map[chunking.Record]bool, len(records))
	out := make([]chunking.Record, 0, len(records))
	for _, r := range records {
		if r.CaseYear < opts.StartYear {
			st.BeforeStart++
			continue
		}
		if opts.ExcludeAdvFirstUtt && opensOnAdvocateFirstUtt(r.UttIDFirst) {
			st.AdvFirstUtt++
			continue
		}
		if seen[r] {
			return nil, st, fmt.Errorf("%w: chunk %s of case %s appears twice", transcript.ErrDataIntegrity, r.UttIDFirst, r.CaseID)
		}
		seen[r] = true
		out = append(out, r)
	}
	st.RecordsKept = len(out)
	return out, st, nil
}

func opensOnAdvocateFirstUtt(uttID string) bool {
	id, err := transcript.ParseID(uttID)
	if err != nil {
		return false
	}
	return id.SeqLabel == "000" || id.SeqLabel == "001"
}
