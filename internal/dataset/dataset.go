// Package dataset reads the static deck the store is seeded from.
//
// Supported inputs, chosen by file extension:
//
//	.yaml / .yml  list of {id, question, answer}
//	.json         array of {id, question, answer}
//	.csv          header row id,question,answer
//	.xlsx         first sheet, same header as CSV
//
// An empty path loads the deck embedded in the binary.
package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/qotd/internal/model"
)

// ErrInvalid is returned when a deck has missing fields or duplicate ids.
var ErrInvalid = errors.New("invalid dataset")

//go:embed default.yaml
var defaultDeck []byte

var validate = validator.New()

// Default returns the embedded deck.
func Default() ([]model.Question, error) {
	qs, err := parseYAML(defaultDeck)
	if err != nil {
		return nil, fmt.Errorf("embedded deck: %w", err)
	}
	return qs, Validate(qs)
}

// Load reads and validates the deck at path, or the embedded one when path
// is empty.
func Load(path string) ([]model.Question, error) {
	if path == "" {
		return Default()
	}

	var (
		qs  []model.Question
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("read dataset: %w", rerr)
		}
		if ext == ".json" {
			qs, err = parseJSON(data)
		} else {
			qs, err = parseYAML(data)
		}
	case ".csv":
		qs, err = loadCSV(path)
	case ".xlsx":
		qs, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := Validate(qs); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return qs, nil
}

// Validate checks required fields and id uniqueness. Completion flags in
// the input are cleared because seeding always starts fresh.
func Validate(qs []model.Question) error {
	seen := make(map[int]int, len(qs))
	for i := range qs {
		qs[i].Completed = false
		if err := validate.Struct(qs[i]); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrInvalid, i+1, err)
		}
		if prev, dup := seen[qs[i].ID]; dup {
			return fmt.Errorf("%w: id %d used by records %d and %d", ErrInvalid, qs[i].ID, prev, i+1)
		}
		seen[qs[i].ID] = i + 1
	}
	return nil
}

func parseYAML(data []byte) ([]model.Question, error) {
	var qs []model.Question
	if err := yaml.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return qs, nil
}

func parseJSON(data []byte) ([]model.Question, error) {
	var qs []model.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return qs, nil
}
