package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bookpm/bookpm/internal/pkgtree"
)

type fakeQuerier struct {
	versions map[string]Declaration
	err      error

	mu      sync.Mutex
	queried []string
}

func (f *fakeQuerier) QueryVersions(_ context.Context, packageName string) (map[string]Declaration, error) {
	f.mu.Lock()
	f.queried = append(f.queried, packageName)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.versions, nil
}

func (f *fakeQuerier) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queried)
}

type installCall struct {
	name, version, targetDir string
	opts                     InstallOptions
}

type fakeInstaller struct {
	err   error
	calls []installCall
}

func (f *fakeInstaller) InstallPackage(_ context.Context, name, version, targetDir string, opts InstallOptions) error {
	f.calls = append(f.calls, installCall{name: name, version: version, targetDir: targetDir, opts: opts})
	return f.err
}

type fakeInspector struct {
	trees map[string]*pkgtree.Tree
	errs  map[string]error
}

func (f *fakeInspector) Inspect(dir string) (*pkgtree.Tree, error) {
	if err := f.errs[dir]; err != nil {
		return nil, err
	}
	tree, ok := f.trees[dir]
	if !ok {
		return nil, fmt.Errorf("no tree for %s", dir)
	}
	return tree, nil
}

type fakeLoader struct {
	err   error
	count atomic.Int32
	// started and release, when set, let a test hold the load in flight.
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (f *fakeLoader) Load(context.Context) error {
	f.count.Add(1)
	if f.started != nil {
		f.once.Do(func() { close(f.started) })
		<-f.release
	}
	return f.err
}

type logLine struct {
	level string
	msg   string
}

type recordingLog struct {
	lines []logLine
}

func (l *recordingLog) Info(format string, args ...any) {
	l.lines = append(l.lines, logLine{"info", fmt.Sprintf(format, args...)})
}

func (l *recordingLog) OK(format string, args ...any) {
	l.lines = append(l.lines, logLine{"ok", fmt.Sprintf(format, args...)})
}

func (l *recordingLog) count(level string) int {
	n := 0
	for _, line := range l.lines {
		if line.level == level {
			n++
		}
	}
	return n
}

type fakeProject struct {
	root string
	log  *recordingLog
}

func newFakeProject(root string) *fakeProject {
	return &fakeProject{root: root, log: &recordingLog{}}
}

func (p *fakeProject) Root() string { return p.root }
func (p *fakeProject) Log() Logger  { return p.log }

// satisfiesAny accepts exactly the listed ranges.
func satisfiesAny(ranges ...string) CompatibilityFunc {
	ok := make(map[string]bool, len(ranges))
	for _, r := range ranges {
		ok[r] = true
	}
	return func(rng string) bool { return ok[rng] }
}
