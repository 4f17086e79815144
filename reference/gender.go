package reference

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Gender is an advocate or justice gender as used in chunk records.
type Gender string

const (
	Male          Gender = "M"
	Female        Gender = "F"
	UnknownGender Gender = "unknown"
)

// Known reports whether g is M or F.
func (g Gender) Known() bool { return g == Male || g == Female }

// nameGenderLocale is the country code kept from the world gender-name
// dictionary.
const nameGenderLocale = "US"

// NameGender maps a lowercase first name to the gender the world
// gender-name dictionary assigns it. Values other than M and F (ambiguous
// names) are kept and treated as unknown on lookup.
type NameGender map[string]string

// Lookup resolves the gender of a full name by its first token.
func (n NameGender) Lookup(fullName string) Gender {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return UnknownGender
	}
	switch g := Gender(n[strings.ToLower(fields[0])]); g {
	case Male, Female:
		return g
	default:
		return UnknownGender
	}
}

// LoadNameGender reads the dictionary either from a JSON cache
// (name -> gender) or from the world gender-name CSV (columns name, code,
// gender), keeping only US entries.
func LoadNameGender(path string) (NameGender, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("name gender: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		out := NameGender{}
		if err := json.NewDecoder(f).Decode(&out); err != nil {
			return nil, fmt.Errorf("name gender decode: %w", err)
		}
		return out, nil
	}
	return readNameGenderCSV(f)
}

func readNameGenderCSV(r io.Reader) (NameGender, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("name gender header: %w", err)
	}
	cols := columnIndex(header)
	nameCol, okName := cols["name"]
	codeCol, okCode := cols["code"]
	genderCol, okGender := cols["gender"]
	if !okName || !okCode || !okGender {
		return nil, fmt.Errorf("name gender: missing name/code/gender columns in %v", header)
	}

	out := NameGender{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("name gender row: %w", err)
		}
		if field(rec, codeCol) != nameGenderLocale {
			continue
		}
		out[strings.ToLower(field(rec, nameCol))] = field(rec, genderCol)
	}
	return out, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return cols
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
