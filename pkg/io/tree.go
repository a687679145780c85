package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/genotype"
	"github.com/matzehuels/potplant/pkg/plant"
)

// Tree document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath infers the tree format from a file extension. Unknown
// extensions read as JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// WriteTree encodes d to w in the given format.
func WriteTree(w io.Writer, d plant.Data, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	}
	return errs.New(errs.ErrCodeInvalidFormat, "unsupported tree format %q", format)
}

// ReadTree decodes and validates a parameter tree. Schema errors carry
// the same paths as genotype errors.
func ReadTree(r io.Reader, format string) (plant.Data, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return plant.Data{}, fmt.Errorf("read: %w", err)
	}

	var tree any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(raw, &tree); err != nil {
			return plant.Data{}, errs.Wrap(errs.ErrCodeInvalidSyntax, err, "malformed tree")
		}
	case FormatYAML:
		var node any
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return plant.Data{}, errs.Wrap(errs.ErrCodeInvalidSyntax, err, "malformed tree")
		}
		if tree, err = widen(node); err != nil {
			return plant.Data{}, errs.Wrap(errs.ErrCodeInvalidSyntax, err, "malformed tree")
		}
	default:
		return plant.Data{}, errs.New(errs.ErrCodeInvalidFormat, "unsupported tree format %q", format)
	}
	return genotype.FromTree(tree)
}

// widen converts a yaml.v3 tree into the shape encoding/json produces.
func widen(node any) (any, error) {
	switch v := node.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			w, err := widen(child)
			if err != nil {
				return nil, err
			}
			out[k] = w
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", k)
			}
			w, err := widen(child)
			if err != nil {
				return nil, err
			}
			out[key] = w
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			w, err := widen(child)
			if err != nil {
				return nil, err
			}
			out[i] = w
		}
		return out, nil
	}
	return node, nil
}

// ExportTree writes d to path, choosing the format by extension.
func ExportTree(d plant.Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteTree(f, d, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportTree reads the tree at path, choosing the format by extension.
func ImportTree(path string) (plant.Data, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return plant.Data{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "tree file %s", path)
	}
	if err != nil {
		return plant.Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f, FormatFromPath(path))
}
