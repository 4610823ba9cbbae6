package association

import (
	"errors"
	"slices"
)

// ErrNoAssociations is returned when there is nothing to resolve against.
var ErrNoAssociations = errors.New("no associations")

// Match is the outcome of [Resolve].
type Match struct {
	// Association is the selected association.
	Association Association
	// Paths are the paths the association applies to.
	Paths []string
	// Fallback is true when no association matched and the first configured
	// association was selected with every requested path.
	Fallback bool
}

// Resolve selects the association for paths in mode.
//
// Associations are tried from the last configured one towards the second.
// The first one producing a non-empty match wins. When none do, the first
// configured association is returned together with all of paths, without
// being matched itself.
func Resolve(as []Association, mode string, paths []string) (Match, error) {
	if len(as) == 0 {
		return Match{}, ErrNoAssociations
	}

	for i := len(as) - 1; i > 0; i-- {
		matched := as[i].Match(mode, paths)
		if len(matched) > 0 {
			return Match{
				Association: as[i],
				Paths:       matched,
			}, nil
		}
	}

	return Match{
		Association: as[0],
		Paths:       slices.Clone(paths),
		Fallback:    true,
	}, nil
}
