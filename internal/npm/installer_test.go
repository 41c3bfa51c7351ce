package npm

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bookpm/bookpm/internal/registry"
)

func writeScript(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakeNPM writes an npm stand-in that appends its arguments to a log file
// and exits with the given code after installs.
func fakeNPM(t *testing.T, exitCode string) (bin, argsLog string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake npm is a shell script")
	}
	dir := t.TempDir()
	argsLog = filepath.Join(dir, "args.log")
	t.Setenv("FAKE_NPM_LOG", argsLog)
	bin = writeScript(t, filepath.Join(dir, "npm"), `#!/bin/sh
echo "$@" >> "$FAKE_NPM_LOG"
if [ "$1" = "--version" ]; then
  echo "10.2.0"
  exit 0
fi
echo "npm notice fetching"
echo "npm ERR! something broke" >&2
exit `+exitCode+`
`)
	return bin, argsLog
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestInstallPackageQuiet(t *testing.T) {
	bin, argsLog := fakeNPM(t, "0")
	book := t.TempDir()
	var out bytes.Buffer
	inst := &Installer{NPMPath: bin, Stdout: &out, Stderr: &out}

	err := inst.InstallPackage(context.Background(), "gitbook-plugin-x", "1.2.0", book, registry.InstallOptions{
		Quiet:   true,
		Prefix:  book,
		Preload: true,
	})
	if err != nil {
		t.Fatalf("InstallPackage: %v", err)
	}

	lines := readLines(t, argsLog)
	if len(lines) != 2 {
		t.Fatalf("npm ran %d times, want 2 (preload + install): %v", len(lines), lines)
	}
	if lines[0] != "--version" {
		t.Errorf("first npm call = %q, want --version", lines[0])
	}
	for _, want := range []string{"install", "gitbook-plugin-x@1.2.0", "--prefix " + book, "--no-save", "--silent", "--loglevel=silent"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("install args %q missing %q", lines[1], want)
		}
	}
	if out.Len() != 0 {
		t.Errorf("quiet install wrote output: %q", out.String())
	}
}

func TestInstallPackageWithoutPreload(t *testing.T) {
	bin, argsLog := fakeNPM(t, "0")
	book := t.TempDir()
	var out bytes.Buffer
	inst := &Installer{NPMPath: bin, Stdout: &out, Stderr: &out}

	if err := inst.InstallPackage(context.Background(), "gitbook-plugin-x", "1.2.0", book, registry.InstallOptions{}); err != nil {
		t.Fatalf("InstallPackage: %v", err)
	}

	lines := readLines(t, argsLog)
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "install ") {
		t.Fatalf("npm calls = %v, want a single install", lines)
	}
	if !strings.Contains(lines[0], "--prefix "+book) {
		t.Errorf("empty Prefix should default to the target dir: %q", lines[0])
	}
	if strings.Contains(lines[0], "--silent") {
		t.Errorf("non-quiet install passed --silent: %q", lines[0])
	}
	if !strings.Contains(out.String(), "npm notice fetching") {
		t.Errorf("non-quiet install should stream npm output, got %q", out.String())
	}
}

func TestInstallPackageFailure(t *testing.T) {
	bin, _ := fakeNPM(t, "3")
	inst := &Installer{NPMPath: bin}

	err := inst.InstallPackage(context.Background(), "gitbook-plugin-x", "9.9.9", t.TempDir(), registry.InstallOptions{Quiet: true})
	var installErr *InstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("err = %v, want *InstallError", err)
	}
	if installErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", installErr.ExitCode)
	}
	if !strings.Contains(installErr.Stderr, "something broke") {
		t.Errorf("Stderr = %q, want npm's error output", installErr.Stderr)
	}
}

func TestInstallPackageMissingNPM(t *testing.T) {
	inst := &Installer{NPMPath: filepath.Join(t.TempDir(), "npm")}
	err := inst.InstallPackage(context.Background(), "gitbook-plugin-x", "1.0.0", t.TempDir(), registry.InstallOptions{Preload: true})
	if err == nil || !strings.Contains(err.Error(), "requires npm") {
		t.Fatalf("err = %v, want missing npm error", err)
	}
}

func TestTail(t *testing.T) {
	if got := tail("  short \n", 10); got != "short" {
		t.Errorf("tail = %q, want %q", got, "short")
	}
	if got := tail("abcdefghij", 4); got != "ghij" {
		t.Errorf("tail = %q, want %q", got, "ghij")
	}
}
