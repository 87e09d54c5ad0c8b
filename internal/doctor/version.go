package doctor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`v?\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?`)

// ExtractVersion finds the first version-looking token in tool output,
// e.g. "minify v2.12.8" or "≈ tailwindcss v4.1.12".
func ExtractVersion(output string) (*semver.Version, error) {
	token := versionPattern.FindString(output)
	if token == "" {
		return nil, fmt.Errorf("no version found in %q", firstLine(output))
	}
	return parseSemver(token)
}

// CompareVersions compares two version strings using semver.
// Returns -1 if current < other, 0 if equal, 1 if current > other.
func CompareVersions(current, other string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", current, err)
	}
	ov, err := parseSemver(other)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", other, err)
	}
	return cv.Compare(ov), nil
}

// SatisfiesMinimum reports whether version is at least min. An empty min
// is always satisfied.
func SatisfiesMinimum(version *semver.Version, min string) (bool, error) {
	if min == "" {
		return true, nil
	}
	mv, err := parseSemver(min)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", min, err)
	}
	return !version.LessThan(mv), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
