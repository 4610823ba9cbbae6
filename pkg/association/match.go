package association

import (
	"path/filepath"
	"slices"
	"strings"
)

// Match returns the subset of paths this association applies to in the
// given mode, in their original order. An empty result means the
// association does not apply.
//
// The mode gate runs first: in [ModeDefault] only associations without
// modes are eligible; in any other mode the association's modes must be
// empty or contain the requested mode. Each path is then matched by
// extension, and the [Policy] decides whether the number of matched paths is
// sufficient.
func (a Association) Match(mode string, paths []string) []string {
	if !a.MatchesMode(mode) {
		return nil
	}

	var matched []string
	for _, path := range paths {
		if a.MatchesPath(path) {
			matched = append(matched, path)
		}
	}

	if !a.Policy.Accepts(len(matched), len(paths)) {
		return nil
	}

	return matched
}

// MatchesMode reports whether the association is eligible in mode.
func (a Association) MatchesMode(mode string) bool {
	if mode == ModeDefault {
		return len(a.Mode) == 0
	}

	return len(a.Mode) == 0 || slices.Contains(a.Mode, mode)
}

// MatchesPath reports whether the extension of path is accepted. A path
// without an extension never matches, even when the association accepts
// every extension.
func (a Association) MatchesPath(path string) bool {
	ext, ok := Extension(path)
	if !ok {
		return false
	}

	return len(a.Ext) == 0 || slices.Contains(a.Ext, strings.ToLower(ext))
}

// Accepts reports whether matched out of total paths satisfies the policy.
func (p Policy) Accepts(matched, total int) bool {
	switch p {
	case PolicyOne:
		return true
	case PolicyAll:
		return matched == total
	case PolicyMajority:
		return matched >= total/2
	case PolicyMinority:
		return matched >= total/4
	}

	return false
}

// Extension returns the text after the last dot of the final element of
// path, without the dot.
//
// The final element has no extension when it contains no dot, when its only
// dot is the leading one (".bashrc"), or when it is "." or "..". A trailing
// dot ("notes.") yields an empty extension and ok == true.
func Extension(path string) (string, bool) {
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", false
	}

	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}

	return name[i+1:], true
}
