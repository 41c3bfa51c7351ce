package pkgtree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const metadataFile = "package.json"

// Metadata holds the package.json fields the tree reader needs.
type Metadata struct {
	Name    string
	Version string
	// Dependencies lists dependencies and then optionalDependencies, in the
	// order package.json declares them, without repeats.
	Dependencies []string
}

type rawMetadata struct {
	Name                 string          `json:"name"`
	Version              json.RawMessage `json:"version"`
	Dependencies         json.RawMessage `json:"dependencies"`
	OptionalDependencies json.RawMessage `json:"optionalDependencies"`
}

// ParseMetadata reads and validates the package.json at path.
func ParseMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return parseMetadata(data, path)
}

// parseOptionalMetadata is ParseMetadata for a package.json that may be
// absent, as at the root of a book. A missing file yields empty metadata.
func parseOptionalMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Metadata{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return parseMetadata(data, path)
}

func parseMetadata(data []byte, path string) (*Metadata, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid %s: %s", path, result)
	}

	var raw rawMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	m := &Metadata{Name: raw.Name}
	// Some old packages publish a non-string version; treat it as unknown.
	_ = json.Unmarshal(raw.Version, &m.Version)

	seen := make(map[string]bool)
	for _, block := range []json.RawMessage{raw.Dependencies, raw.OptionalDependencies} {
		keys, err := orderedKeys(block)
		if err != nil {
			return nil, fmt.Errorf("parsing dependencies in %s: %w", path, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				m.Dependencies = append(m.Dependencies, k)
			}
		}
	}

	return m, nil
}

// orderedKeys returns the keys of a JSON object in document order.
// encoding/json maps lose that order, and dependency order decides which
// duplicate a listing keeps. Legacy array-form blocks declare nothing.
func orderedKeys(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '[' || string(raw) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
