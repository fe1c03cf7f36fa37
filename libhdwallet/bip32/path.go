package bip32

import (
	"strconv"
	"strings"

	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
)

// PathStep is one derivation step: an index below HardenedKeyStart and
// whether the hardened child at that index is wanted.
type PathStep struct {
	Index    uint32
	Hardened bool
}

// ChildIndex returns the raw child index the step derives.
func (step PathStep) ChildIndex() uint32 {
	if step.Hardened {
		return step.Index | HardenedKeyStart
	}
	return step.Index
}

func (step PathStep) String() string {
	index := strconv.FormatUint(uint64(step.Index&^HardenedKeyStart), 10)
	if step.Hardened || isHardened(step.Index) {
		return index + "'"
	}
	return index
}

// Path is an ordered sequence of derivation steps starting at the master key.
type Path []PathStep

// String renders the path in the m/0'/1 notation.
func (path Path) String() string {
	var builder strings.Builder
	builder.WriteString("m")
	for _, step := range path {
		builder.WriteString("/")
		builder.WriteString(step.String())
	}
	return builder.String()
}

// ParsePath parses a path such as "m/0'/1/2h". The leading "m" may be
// omitted as long as the path starts with "/", and "m" or "" alone denote
// the master key.
func ParsePath(pathString string) (Path, error) {
	trimmed := strings.TrimSpace(pathString)
	switch {
	case trimmed == "" || trimmed == "m":
		return Path{}, nil
	case strings.HasPrefix(trimmed, "m/"):
		trimmed = trimmed[len("m/"):]
	case strings.HasPrefix(trimmed, "/"):
		trimmed = trimmed[len("/"):]
	default:
		return nil, hderrors.Errorf(hderrors.ErrMalformedInput, "path %q must start with m/", pathString)
	}

	fragments := strings.Split(trimmed, "/")
	path := make(Path, len(fragments))
	for i, fragment := range fragments {
		step, err := parsePathStep(fragment)
		if err != nil {
			return nil, hderrors.Errorf(hderrors.ErrMalformedInput, "path %q, step %d: %s", pathString, i, err)
		}
		path[i] = step
	}

	return path, nil
}

func parsePathStep(fragment string) (PathStep, error) {
	hardened := false
	if strings.HasSuffix(fragment, "'") || strings.HasSuffix(fragment, "h") || strings.HasSuffix(fragment, "H") {
		hardened = true
		fragment = fragment[:len(fragment)-1]
	}

	if fragment == "" || strings.HasPrefix(fragment, "+") || strings.HasPrefix(fragment, "-") {
		return PathStep{}, hderrors.Errorf(hderrors.ErrMalformedInput, "invalid index %q", fragment)
	}
	index, err := strconv.ParseUint(fragment, 10, 32)
	if err != nil {
		return PathStep{}, hderrors.Wrap(hderrors.ErrMalformedInput, err)
	}
	if isHardened(uint32(index)) {
		return PathStep{}, hderrors.Errorf(hderrors.ErrMalformedInput,
			"index %d must be below %d", index, uint32(HardenedKeyStart))
	}

	return PathStep{Index: uint32(index), Hardened: hardened}, nil
}

// DeriveFromPath applies the steps of path one after the other. Each
// derived key records the fingerprint of its immediate parent.
func (extKey *ExtendedKey) DeriveFromPath(path Path) (*ExtendedKey, error) {
	descendantExtKey := extKey
	for _, step := range path {
		child, err := descendantExtKey.Child(step.ChildIndex())
		// Intermediate keys never leave this function.
		if descendantExtKey != extKey {
			descendantExtKey.Zero()
		}
		if err != nil {
			return nil, err
		}
		descendantExtKey = child
	}

	return descendantExtKey, nil
}

// Path parses pathString and derives the key it leads to.
func (extKey *ExtendedKey) Path(pathString string) (*ExtendedKey, error) {
	path, err := ParsePath(pathString)
	if err != nil {
		return nil, err
	}

	return extKey.DeriveFromPath(path)
}
