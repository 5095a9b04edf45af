package locator

import (
	"os"
	"path/filepath"

	"github.com/seekjob/desktophost/errors"
)

// Command is the resolved backend invocation. Immutable once resolved.
type Command struct {
	// Program is the executable path.
	Program string
	// Args are the command-line arguments, in order.
	Args []string
}

// maxSearchDepth bounds the recursive fallback search under the resource
// directory.
const maxSearchDepth = 6

// Config configures a Locator.
type Config struct {
	// BinaryName is the expected file name of the bundled executable.
	BinaryName string
	// BinOverride, if set and existing, is used as-is.
	BinOverride string
	// DevInterpreter and DevScript are honored together in dev mode only.
	DevInterpreter string
	DevScript      string
	// DevMode enables the interpreter+script strategy.
	DevMode bool
	// ResourceDir resolves the host's bundled-resource directory. Consulted
	// lazily: override and dev strategies never touch it.
	ResourceDir func() (string, error)
}

// Locator resolves the backend command through an ordered strategy chain.
type Locator struct {
	cfg Config
}

// strategy attempts one resolution approach. It returns the resolved command
// and true on a match, or false to fall through to the next strategy.
type strategy func() (Command, bool, error)

// New creates a Locator.
func New(cfg Config) *Locator {
	return &Locator{cfg: cfg}
}

// Resolve tries each strategy in fixed priority order and returns the first
// match. When nothing matches it fails with a BackendNotFound error naming
// the resource directory and the expected file name.
func (l *Locator) Resolve() (Command, error) {
	strategies := []strategy{
		l.fromOverride,
		l.fromDevPair,
		l.fromFixedCandidates,
		l.fromRecursiveSearch,
	}

	for _, s := range strategies {
		cmd, ok, err := s()
		if err != nil {
			return Command{}, err
		}
		if ok {
			return cmd, nil
		}
	}

	resourceDir := "(unresolved)"
	if dir, err := l.cfg.ResourceDir(); err == nil {
		resourceDir = dir
	}
	return Command{}, errors.BackendNotFound(resourceDir, l.cfg.BinaryName)
}

// fromOverride uses the explicit binary override if the path exists.
func (l *Locator) fromOverride() (Command, bool, error) {
	if l.cfg.BinOverride == "" {
		return Command{}, false, nil
	}
	if !fileExists(l.cfg.BinOverride) {
		return Command{}, false, nil
	}
	return Command{Program: l.cfg.BinOverride}, true, nil
}

// fromDevPair uses the interpreter+script pair, development mode only.
// Both paths must exist; the script is the sole argument.
func (l *Locator) fromDevPair() (Command, bool, error) {
	if !l.cfg.DevMode || l.cfg.DevInterpreter == "" || l.cfg.DevScript == "" {
		return Command{}, false, nil
	}
	if !fileExists(l.cfg.DevInterpreter) || !fileExists(l.cfg.DevScript) {
		return Command{}, false, nil
	}
	return Command{
		Program: l.cfg.DevInterpreter,
		Args:    []string{l.cfg.DevScript},
	}, true, nil
}

// fromFixedCandidates probes the packaging layouts we know about, in
// priority order. The _up_ entries cover bundlers that nest resources one or
// two levels below the real payload.
func (l *Locator) fromFixedCandidates() (Command, bool, error) {
	resourceDir, err := l.cfg.ResourceDir()
	if err != nil {
		return Command{}, false, errors.IO("resolve", "resource dir", err)
	}

	candidates := []string{
		filepath.Join(resourceDir, l.cfg.BinaryName),
		filepath.Join(resourceDir, "backend", "dist", l.cfg.BinaryName),
		filepath.Join(resourceDir, "backend", l.cfg.BinaryName),
		filepath.Join(resourceDir, "_up_", "backend", "dist", l.cfg.BinaryName),
		filepath.Join(resourceDir, "_up_", "_up_", "backend", "dist", l.cfg.BinaryName),
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return Command{Program: candidate}, true, nil
		}
	}
	return Command{}, false, nil
}

// fromRecursiveSearch walks the resource directory up to maxSearchDepth
// levels, checking files at each level before descending. os.ReadDir returns
// entries sorted by name, so traversal order is stable across filesystems.
func (l *Locator) fromRecursiveSearch() (Command, bool, error) {
	resourceDir, err := l.cfg.ResourceDir()
	if err != nil {
		return Command{}, false, errors.IO("resolve", "resource dir", err)
	}

	if found, ok := l.walk(resourceDir, 0); ok {
		return Command{Program: found}, true, nil
	}
	return Command{}, false, nil
}

func (l *Locator) walk(dir string, depth int) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable subtrees are skipped, not fatal.
		return "", false
	}

	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == l.cfg.BinaryName {
			return filepath.Join(dir, entry.Name()), true
		}
	}

	if depth >= maxSearchDepth {
		return "", false
	}

	for _, entry := range entries {
		if entry.IsDir() {
			if found, ok := l.walk(filepath.Join(dir, entry.Name()), depth+1); ok {
				return found, true
			}
		}
	}

	return "", false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
