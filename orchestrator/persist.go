package orchestrator

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/maastricht-university/oralargs/chunking"
)

func mkRunDir(outputsRoot string, now time.Time) (string, error) {
	dir := filepath.Join(outputsRoot, "run_"+now.Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeChunks writes one JSON record per line to <dir>/<case>.jsonl. A case
// without surviving chunks still gets its (empty) file.
func writeChunks(dir, caseID string, records []chunking.Record) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, caseID+".jsonl"))
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeBoundaries(dir, caseID string, ids []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	return writeJSON(filepath.Join(dir, caseID+".json"), ids)
}

func persistManifest(outputsRoot string, m Manifest) (string, error) {
	dir, err := mkRunDir(outputsRoot, m.StartedAt)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "run.json")
	return path, writeJSON(path, m)
}
