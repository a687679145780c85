package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	tests := []struct {
		name string
		env  string
		fn   func() (string, error)
	}{
		{"cache", "XDG_CACHE_HOME", cacheDir},
		{"config", "XDG_CONFIG_HOME", configDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			t.Setenv(tt.env, base)

			dir, err := tt.fn()
			if err != nil {
				t.Fatal(err)
			}
			if want := filepath.Join(base, appName); dir != want {
				t.Errorf("dir = %q, want %q", dir, want)
			}
		})
	}
}

func TestXDGDirsFallBackToHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	for fallback, fn := range map[string]func() (string, error){
		".cache":  cacheDir,
		".config": configDir,
	} {
		dir, err := fn()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, fallback, appName); dir != want {
			t.Errorf("dir = %q, want %q", dir, want)
		}
		if !strings.HasPrefix(dir, home) {
			t.Errorf("dir %q is not under home %q", dir, home)
		}
	}
}
