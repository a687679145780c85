package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/observability"
)

func TestMain(m *testing.M) {
	statusOut = io.Discard

	home, err := os.MkdirTemp("", "potplant-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))

	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

// execute runs the root command with args and stdin and returns what was
// written to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.stdin = strings.NewReader(stdin)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := execute(t, stdin, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestRandomIsReproducible(t *testing.T) {
	a := mustExecute(t, "", "random", "--seed", "42")
	b := mustExecute(t, "", "random", "--seed", "42")
	if a != b {
		t.Errorf("same seed grew different plants:\n%s\n%s", a, b)
	}
	if strings.Count(a, "\n") != 1 {
		t.Errorf("random printed %q, want one genotype line", a)
	}
}

func TestRandomBatch(t *testing.T) {
	out := mustExecute(t, "", "random", "-n", "3", "--seed", "7")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d genotypes, want 3", len(lines))
	}
	for i, seed := range []string{"7", "8", "9"} {
		single := strings.TrimSpace(mustExecute(t, "", "random", "--seed", seed))
		if lines[i] != single {
			t.Errorf("plant %d differs from seed %s", i, seed)
		}
	}
}

func TestRandomYAMLBatch(t *testing.T) {
	out := mustExecute(t, "", "random", "-n", "2", "--seed", "1", "--format", "yaml")
	if strings.Count(out, "---\n") != 1 {
		t.Errorf("want one document separator, got:\n%s", out)
	}
	if strings.Count(out, "stalkCount:") != 2 {
		t.Errorf("want two trees, got:\n%s", out)
	}
}

func TestRandomRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"format", []string{"random", "--format", "xml"}, errs.ErrCodeInvalidFormat},
		{"count", []string{"random", "--count=-1"}, errs.ErrCodeInvalidInput},
		{"too many", []string{"random", "-n", "1001"}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRandomOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.txt")
	if out := mustExecute(t, "", "random", "--seed", "3", "-o", path); out != "" {
		t.Errorf("stdout = %q, want nothing", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := mustExecute(t, "", "random", "--seed", "3"); string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestDecodeFromStdin(t *testing.T) {
	code := mustExecute(t, "", "random", "--seed", "5")
	out := mustExecute(t, code, "decode")

	var tree map[string]any
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("decode printed invalid JSON: %v", err)
	}
	if _, ok := tree["stalkData"]; !ok {
		t.Errorf("tree has no stalkData: %v", tree)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	code := strings.TrimSpace(mustExecute(t, "", "random", "--seed", "11"))
	for _, name := range []string{"plant.json", "plant.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			mustExecute(t, "", "decode", code, "-o", path)
			got := strings.TrimSpace(mustExecute(t, "", "encode", path))
			if got != code {
				t.Errorf("encode(decode(code)) =\n%s\nwant\n%s", got, code)
			}
		})
	}
}

func TestEncodeFromStdin(t *testing.T) {
	code := strings.TrimSpace(mustExecute(t, "", "random", "--seed", "12"))
	tree := mustExecute(t, "", "decode", code, "--format", "yaml")
	if got := strings.TrimSpace(mustExecute(t, tree, "encode", "-")); got != code {
		t.Errorf("encode - = %s, want %s", got, code)
	}
}

func TestEncodeMissingFile(t *testing.T) {
	_, err := execute(t, "", "encode", filepath.Join(t.TempDir(), "missing.yaml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestValidate(t *testing.T) {
	code := mustExecute(t, "", "random", "--seed", "9")
	if _, err := execute(t, code, "validate"); err != nil {
		t.Errorf("validate rejected a grown plant: %v", err)
	}

	_, err := execute(t, "", "validate", ">3Sd")
	if !errs.IsRejected(err) {
		t.Errorf("validate >3Sd: err = %v, want rejection", err)
	}
	if _, err := execute(t, "", "validate", ""); !errs.Is(err, errs.ErrCodeInvalidSyntax) {
		t.Errorf("validate empty: err = %v, want INVALID_SYNTAX", err)
	}
}

func TestValidateExpand(t *testing.T) {
	code := strings.TrimSpace(mustExecute(t, "", "random", "--seed", "9"))
	out := mustExecute(t, "", "validate", "--expand", code)
	if !json.Valid([]byte(out)) {
		t.Errorf("expanded genotype is not JSON: %s", out)
	}
}

func TestInspect(t *testing.T) {
	code := strings.TrimSpace(mustExecute(t, "", "random", "--seed", "21"))
	out := mustExecute(t, "", "inspect", code)
	for _, want := range []string{"ENTITY", "pot", "stalk", "leaf", "bottomRadius="} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q", want)
		}
	}
}

func TestGeometry(t *testing.T) {
	code := strings.TrimSpace(mustExecute(t, "", "random", "--seed", "2"))
	compact := mustExecute(t, "", "geometry", code, "--cache", "null")
	indented := mustExecute(t, "", "geometry", code, "--cache", "null", "--indent")

	var a, b map[string]any
	if err := json.Unmarshal([]byte(compact), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(indented), &b); err != nil {
		t.Fatal(err)
	}
	if _, ok := a["pot"]; !ok {
		t.Error("geometry has no pot")
	}
	if !strings.Contains(indented, "\n  \"") {
		t.Error("--indent output is not indented")
	}
	if len(indented) <= len(compact) {
		t.Error("--indent output is not larger than compact output")
	}
}

func TestGeometryFileCache(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	code := strings.TrimSpace(mustExecute(t, "", "random", "--seed", "2"))
	first := mustExecute(t, "", "geometry", code)
	second := mustExecute(t, "", "geometry", code)
	if first != second {
		t.Error("cached geometry differs from the first render")
	}
	entries, _ := os.ReadDir(filepath.Join(cacheHome, appName))
	if len(entries) == 0 {
		t.Fatal("geometry did not populate the file cache")
	}

	mustExecute(t, "", "cache", "clear")
	entries, _ = os.ReadDir(filepath.Join(cacheHome, appName))
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestDiagramDOT(t *testing.T) {
	code := strings.TrimSpace(mustExecute(t, "", "random", "--seed", "2"))
	out := mustExecute(t, "", "diagram", code, "--format", "dot", "--cache", "null", "--detailed")
	if !strings.HasPrefix(out, "digraph G {") {
		t.Errorf("diagram is not DOT:\n%s", out)
	}
	if !strings.Contains(out, `"pot" -> "stalk0"`) {
		t.Error("diagram has no pot to stalk edge")
	}
}

func TestDocumentRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"diagram format", []string{"diagram", "x", "--format", "png"}, errs.ErrCodeInvalidFormat},
		{"cache kind", []string{"geometry", "x", "--cache", "redis"}, errs.ErrCodeInvalidFormat},
		{"bad code", []string{"geometry", ">3Sd", "--cache", "null"}, errs.ErrCodeInvalidSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCachePath(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	out := mustExecute(t, "", "cache", "path")
	if want := filepath.Join(cacheHome, appName) + "\n"; out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("seed = 42\nformat = \"yaml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fromConfig := mustExecute(t, "", "--config", path, "random")
	fromFlags := mustExecute(t, "", "random", "--seed", "42", "--format", "yaml")
	if fromConfig != fromFlags {
		t.Error("config defaults were not applied")
	}

	overridden := mustExecute(t, "", "--config", path, "random", "--format", "code")
	if strings.Contains(overridden, "stalkCount:") {
		t.Error("--format did not override the config")
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out := mustExecute(t, "", "completion", shell)
			if !strings.Contains(out, "potplant") {
				t.Errorf("%s completion does not mention potplant", shell)
			}
		})
	}
	if _, err := execute(t, "", "completion", "tcsh"); err == nil {
		t.Error("expected error for an unknown shell")
	}
}

func TestFlagValueCompletion(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"random", "--format", ""}, []string{"code", "json", "yaml"}},
		{[]string{"diagram", "--format", ""}, []string{"svg", "dot"}},
		{[]string{"geometry", "--cache", ""}, []string{"file", "memory", "null"}},
		{[]string{"serve", "--cache", ""}, []string{"null", "memory", "file", "redis"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[:2], " "), func(t *testing.T) {
			out := mustExecute(t, "", append([]string{cobra.ShellCompRequestCmd}, tt.args...)...)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			if len(lines) < 1 || !slices.Equal(lines[:len(lines)-1], tt.want) {
				t.Errorf("completions = %q, want %q", lines, tt.want)
			}
		})
	}
}

func TestReadCode(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"argument", []string{">1Sd"}, "ignored", ">1Sd"},
		{"dash", []string{"-"}, "  >1Sd\n", ">1Sd"},
		{"no args", nil, ">2Sd\n", ">2Sd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.stdin = strings.NewReader(tt.stdin)
			got, err := c.readCode(tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("readCode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("batch: %w", context.Canceled), 130},
		{"rejected", errs.Violation("stalkCount", "missing key"), 2},
		{"bad flag value", errs.New(errs.ErrCodeInvalidFormat, "xml"), 2},
		{"missing file", errs.New(errs.ErrCodeFileNotFound, "plant.json"), 2},
		{"internal", errs.New(errs.ErrCodeInternal, "disk full"), 1},
		{"plain", io.ErrUnexpectedEOF, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVerboseFlag(t *testing.T) {
	t.Cleanup(observability.Reset)

	c := New(io.Discard, LogInfo)
	c.stdin = strings.NewReader("")
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"-v", "random", "--seed", "3"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
