//go:build integration

package integration_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds the sandbox one test runs in.
type testEnv struct {
	BookDir     string // book the plugins are installed into
	DefaultsDir string // bundled plugins shipped with the host
	NPM         string // fake npm executable
	RegistryURL string // httptest npm registry
}

// fakeNPMScript installs name@version by writing its package.json under the
// prefix, the way npm lays out node_modules.
const fakeNPMScript = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "10.0.0"
  exit 0
fi
if [ "$1" = "install" ]; then
  pkg="${2%@*}"
  ver="${2##*@}"
  mkdir -p "$4/node_modules/$pkg"
  printf '{"name":"%s","version":"%s","dependencies":{"gitbook-plugin-fontsettings":"*"}}' "$pkg" "$ver" > "$4/node_modules/$pkg/package.json"
  mkdir -p "$4/node_modules/gitbook-plugin-fontsettings"
  printf '{"name":"gitbook-plugin-fontsettings","version":"2.0.0"}' > "$4/node_modules/gitbook-plugin-fontsettings/package.json"
  exit 0
fi
exit 1
`

// setupTestEnv creates an isolated book, a defaults directory, a fake npm,
// and a registry serving the given packuments keyed by package name.
func setupTestEnv(t *testing.T, packuments map[string]string) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake npm is a shell script")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, ok := packuments[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	}))
	t.Cleanup(srv.Close)

	binDir := t.TempDir()
	npm := filepath.Join(binDir, "npm")
	writeFile(t, npm, fakeNPMScript)
	if err := os.Chmod(npm, 0755); err != nil {
		t.Fatal(err)
	}

	return &testEnv{
		BookDir:     t.TempDir(),
		DefaultsDir: t.TempDir(),
		NPM:         npm,
		RegistryURL: srv.URL,
	}
}

// writeFile creates a file with the given content, creating parent directories as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// writePackage writes a package.json for name@version in dir.
func writePackage(t *testing.T, dir, name, version string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "`+name+`", "version": "`+version+`"}`)
}

// assertFileExists fails the test if the path does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}
