package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/plant"
	"github.com/matzehuels/potplant/pkg/sample"
)

func TestTreeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"plant.json", "plant.yaml", "plant.yml"} {
		t.Run(name, func(t *testing.T) {
			r := sample.New(5)
			for i := 0; i < 20; i++ {
				want := plant.New(r).Data()
				path := filepath.Join(dir, name)
				if err := ExportTree(want, path); err != nil {
					t.Fatalf("ExportTree: %v", err)
				}
				got, err := ImportTree(path)
				if err != nil {
					t.Fatalf("ImportTree: %v", err)
				}
				if !reflect.DeepEqual(got, want) {
					t.Fatalf("round trip through %s changed the tree", name)
				}
			}
		})
	}
}

func TestWriteTreeJSONShape(t *testing.T) {
	var buf bytes.Buffer
	d := plant.New(sample.New(1)).Data()
	if err := WriteTree(&buf, d, FormatJSON); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "{\n  \"stalkCount\": ") {
		t.Errorf("unexpected JSON head: %.40q", out)
	}
	if !strings.Contains(out, `"leafData": [`) {
		t.Error("leafData missing from JSON")
	}
}

func TestWriteTreeYAMLKeys(t *testing.T) {
	var buf bytes.Buffer
	d := plant.New(sample.New(1)).Data()
	if err := WriteTree(&buf, d, FormatYAML); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"stalkCount:", "leafTextureData:", "meshParams:", "bottomRadius:"} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("YAML output lacks %s", key)
		}
	}
}

func TestReadTreeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		want   errs.Code
	}{
		{"bad json", "{", FormatJSON, errs.ErrCodeInvalidSyntax},
		{"bad yaml", "a: [", FormatYAML, errs.ErrCodeInvalidSyntax},
		{"json schema", `{"stalkCount": 2}`, FormatJSON, errs.ErrCodeSchemaViolation},
		{"yaml fraction", "stalkCount: 1.5\n", FormatYAML, errs.ErrCodeSchemaViolation},
		{"yaml list", "- 1\n- 2\n", FormatYAML, errs.ErrCodeSchemaViolation},
		{"unknown format", "{}", "toml", errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTree(strings.NewReader(tt.input), tt.format)
			if !errs.Is(err, tt.want) {
				t.Errorf("ReadTree() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestReadTreeNamesPath(t *testing.T) {
	_, err := ReadTree(strings.NewReader("stalkCount: 1.5\n"), FormatYAML)
	if err == nil || !strings.Contains(err.Error(), "stalkCount: want whole number") {
		t.Errorf("err = %v", err)
	}
}

func TestImportTreeMissing(t *testing.T) {
	_, err := ImportTree(filepath.Join(t.TempDir(), "nope.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
}

func TestWriteTreeUnknownFormat(t *testing.T) {
	err := WriteTree(&bytes.Buffer{}, plant.Data{}, "xml")
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestExportTreeBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "plant.json")
	if err := ExportTree(plant.Data{}, path); err == nil {
		t.Error("ExportTree into a missing directory should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file was created")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.json": FormatJSON,
		"a.YAML": FormatYAML,
		"a.yml":  FormatYAML,
		"a":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
