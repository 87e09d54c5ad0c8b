package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrLinkConflict is returned when a link path is occupied by something other
// than the expected symlink.
var ErrLinkConflict = errors.New("link conflict")

// State describes what currently occupies a link path.
type State string

const (
	StateMissing     State = "missing"      // nothing at the path
	StateOK          State = "ok"           // symlink with the expected target, resolving to a directory
	StateDangling    State = "dangling"     // expected target, but it does not resolve to a directory
	StateWrongTarget State = "wrong-target" // symlink pointing elsewhere
	StateNotALink    State = "not-a-link"   // regular file or directory
)

// Outcome reports what EnsureSymlink did.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeExisting Outcome = "ok"
	OutcomeReplaced Outcome = "replaced"
)

// EnsureOptions tunes EnsureSymlink.
type EnsureOptions struct {
	// Force replaces a symlink that points at a different target.
	// Regular files and directories are never replaced.
	Force bool
	// Strict fails whenever anything exists at the link path, even a
	// correct link.
	Strict bool
}

// CreateSymlink creates a symbolic link at link pointing to target.
// target is written verbatim, so relative targets resolve against the
// directory containing link.
func CreateSymlink(target, link string) error {
	return os.Symlink(target, link)
}

// ReadSymlinkTarget returns the raw target of a symlink.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// RemoveSymlink removes a symlink. It refuses to remove anything else.
func RemoveSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return fmt.Errorf("%s is not a symlink: %w", path, ErrLinkConflict)
	}
	return os.Remove(path)
}

// Inspect classifies the link path against the expected target.
func Inspect(target, link string) (State, error) {
	info, err := os.Lstat(link)
	if errors.Is(err, fs.ErrNotExist) {
		return StateMissing, nil
	}
	if err != nil {
		return "", err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return StateNotALink, nil
	}

	current, err := ReadSymlinkTarget(link)
	if err != nil {
		return "", err
	}
	if !sameTarget(current, target) {
		return StateWrongTarget, nil
	}

	resolved, err := os.Stat(link)
	if err != nil || !resolved.IsDir() {
		return StateDangling, nil
	}
	return StateOK, nil
}

// EnsureSymlink makes link a symlink to target. An existing link with the
// same target is success; a link with another target is a conflict unless
// opts.Force is set; any other file at the path is always a conflict.
// Missing parent directories and permission errors come back from the OS
// unchanged apart from wrapping.
func EnsureSymlink(target, link string, opts EnsureOptions) (Outcome, error) {
	state, err := Inspect(target, link)
	if err != nil {
		return "", fmt.Errorf("inspecting %s: %w", link, err)
	}

	if opts.Strict && state != StateMissing {
		return "", fmt.Errorf("creating link %s: %w", link, &os.LinkError{
			Op: "symlink", Old: target, New: link, Err: fs.ErrExist,
		})
	}

	switch state {
	case StateMissing:
		if err := CreateSymlink(target, link); err != nil {
			return "", fmt.Errorf("creating link %s: %w", link, err)
		}
		return OutcomeCreated, nil

	case StateOK, StateDangling:
		return OutcomeExisting, nil

	case StateWrongTarget:
		if !opts.Force {
			current, _ := ReadSymlinkTarget(link)
			return "", fmt.Errorf("%s points to %q, want %q: %w", link, current, target, ErrLinkConflict)
		}
		if err := RemoveSymlink(link); err != nil {
			return "", fmt.Errorf("removing stale link %s: %w", link, err)
		}
		if err := CreateSymlink(target, link); err != nil {
			return "", fmt.Errorf("recreating link %s: %w", link, err)
		}
		return OutcomeReplaced, nil

	default:
		return "", fmt.Errorf("%s exists and is not a symlink: %w", link, ErrLinkConflict)
	}
}

func sameTarget(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
