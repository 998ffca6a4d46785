// Package pathguard restricts file access to a single allowed directory
// subtree.
//
// The containment check is advisory: it resolves paths and compares them
// against the allowed root, which defends against straightforward traversal
// but is not a substitute for OS-level sandboxing. Known limitations are
// documented on Guard.SafeRead.
package pathguard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

var (
	// ErrPathRejected indicates the requested path failed resolution,
	// containment, or the read itself. Callers must treat it as "the
	// operation did not happen" and inspect logs for the reason.
	ErrPathRejected = errors.New("path rejected")

	// ErrUnsupportedOperation indicates an operation that is declared but
	// not implemented (currently OpWrite).
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Op selects the file operation performed by SafeOp.
type Op int

const (
	// OpRead reads the file as UTF-8 text.
	OpRead Op = iota

	// OpWrite is declared but not implemented. SafeOp returns
	// ErrUnsupportedOperation rather than silently doing nothing.
	OpWrite
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Guard performs guarded file operations under a fixed allowed root.
// A Guard is safe for sequential reuse; it holds no per-call state.
type Guard struct {
	fs   afero.Fs
	root string
	log  hclog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithFs sets the filesystem the Guard operates on. Defaults to the OS
// filesystem; tests typically pass afero.NewMemMapFs().
func WithFs(fs afero.Fs) Option {
	return func(g *Guard) { g.fs = fs }
}

// WithLogger sets the diagnostic logger. A nil logger disables diagnostics.
func WithLogger(log hclog.Logger) Option {
	return func(g *Guard) { g.log = log }
}

// New creates a Guard restricting access to the subtree rooted at root.
// The root is resolved to an absolute canonical path at construction time.
func New(root string, opts ...Option) (*Guard, error) {
	if root == "" {
		return nil, fmt.Errorf("pathguard: allowed root is required")
	}

	g := &Guard{
		fs:  afero.NewOsFs(),
		log: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = hclog.NewNullLogger()
	}

	resolved, err := g.resolve(root)
	if err != nil {
		return nil, fmt.Errorf("pathguard: resolving allowed root %q: %w", root, err)
	}
	g.root = resolved

	return g, nil
}

// Root returns the resolved allowed root.
func (g *Guard) Root() string {
	return g.root
}

// SafeRead resolves path, verifies containment under the allowed root, and
// returns the file contents as UTF-8 text. Any rejection or read failure
// returns an error wrapping ErrPathRejected; the distinction between
// "rejected for safety" and "file not found" is only visible in logs.
//
// Containment is a prefix comparison on resolved absolute paths. The
// comparison is separator-aware, so a sibling such as root+"-evil" does not
// pass, but the check remains advisory (see package comment).
func (g *Guard) SafeRead(path string) (string, error) {
	return g.SafeOp(path, OpRead)
}

// SafeOp performs op on path under the same containment rules as SafeRead.
// OpWrite is not yet supported and returns ErrUnsupportedOperation after the
// containment checks pass.
func (g *Guard) SafeOp(path string, op Op) (string, error) {
	resolved, err := g.resolve(path)
	if err != nil {
		g.log.Error("path resolution failed", "path", path, "error", err)
		return "", fmt.Errorf("%w: cannot resolve %q", ErrPathRejected, path)
	}

	// Post-resolution textual traversal check. Resolution already collapses
	// ".." segments; this rejects anything that survived it.
	if strings.Contains(resolved, "..") {
		g.log.Error("directory traversal attempt detected", "path", path, "resolved", resolved)
		return "", fmt.Errorf("%w: traversal in %q", ErrPathRejected, path)
	}

	if !g.contained(resolved) {
		g.log.Error("file access outside allowed directory", "path", path, "resolved", resolved, "root", g.root)
		return "", fmt.Errorf("%w: %q is outside the allowed directory", ErrPathRejected, path)
	}

	switch op {
	case OpRead:
		return g.read(resolved)
	case OpWrite:
		g.log.Warn("write operation requested but not supported", "path", path)
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
	}
}

// resolve returns the absolute canonical form of path. Symlinks are resolved
// only on the OS filesystem; afero's in-memory filesystems have none.
func (g *Guard) resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.Clean(abs)

	if _, ok := g.fs.(*afero.OsFs); ok {
		if real, err := filepath.EvalSymlinks(abs); err == nil {
			abs = real
		}
		// A non-existent path cannot be EvalSymlinks'd; keep the cleaned
		// absolute form and let the containment check and read decide.
	}

	return abs, nil
}

// contained reports whether resolved lies at or under the allowed root.
func (g *Guard) contained(resolved string) bool {
	if resolved == g.root {
		return true
	}
	root := g.root
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(resolved, root)
}

func (g *Guard) read(resolved string) (string, error) {
	data, err := afero.ReadFile(g.fs, resolved)
	if err != nil {
		g.log.Error("file operation failed", "path", resolved, "error", err)
		return "", fmt.Errorf("%w: reading %q: %v", ErrPathRejected, resolved, err)
	}
	if !utf8.Valid(data) {
		g.log.Error("file is not valid UTF-8 text", "path", resolved)
		return "", fmt.Errorf("%w: %q is not UTF-8 text", ErrPathRejected, resolved)
	}
	return string(data), nil
}
