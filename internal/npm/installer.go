package npm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/bookpm/bookpm/internal/registry"
)

// stderrTail bounds how much npm stderr an InstallError keeps.
const stderrTail = 2048

// InstallError reports an npm install that exited non-zero.
type InstallError struct {
	Package  string
	Version  string
	ExitCode int
	Stderr   string
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("npm install %s@%s exited with code %d", e.Package, e.Version, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

var _ registry.PackageInstaller = (*Installer)(nil)

// Installer installs packages by running the npm executable.
type Installer struct {
	// NPMPath is the npm executable. Empty means look it up on PATH.
	NPMPath string
	// Stdout and Stderr receive npm's output when not quiet; default to
	// os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// InstallPackage runs `npm install name@version` for the prefix in opts,
// from targetDir. With opts.Preload, npm is run once first to prove it
// works before anything is installed.
func (i *Installer) InstallPackage(ctx context.Context, name, version, targetDir string, opts registry.InstallOptions) error {
	bin, err := lookNPM(i.NPMPath)
	if err != nil {
		return err
	}
	log := i.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if opts.Preload {
		out, err := exec.CommandContext(ctx, bin, "--version").Output()
		if err != nil {
			return fmt.Errorf("loading npm: %w", err)
		}
		log.Debug("npm loaded", zap.String("version", strings.TrimSpace(string(out))))
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = targetDir
	}

	args := []string{"install", name + "@" + version, "--prefix", prefix, "--no-save", "--no-audit", "--no-fund"}
	if opts.Quiet {
		args = append(args, "--silent", "--loglevel=silent")
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = targetDir

	var stderrBuf bytes.Buffer
	if opts.Quiet {
		cmd.Stdout = io.Discard
		cmd.Stderr = &stderrBuf
	} else {
		stdout := i.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		stderr := i.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		cmd.Stdout = stdout
		cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)
	}

	log.Debug("running npm", zap.String("bin", bin), zap.Strings("args", args), zap.String("dir", targetDir))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &InstallError{
				Package:  name,
				Version:  version,
				ExitCode: exitErr.ExitCode(),
				Stderr:   tail(stderrBuf.String(), stderrTail),
			}
		}
		return fmt.Errorf("running npm install for %s@%s: %w", name, version, err)
	}

	return nil
}

func lookNPM(path string) (string, error) {
	if path == "" {
		path = "npm"
	}
	bin, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("installing plugins requires npm: %w", err)
	}
	return bin, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
