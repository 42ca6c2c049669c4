package store

import (
	"strings"

	"github.com/altidx/altidx/internal/altidxerr"
)

// separator cannot legally appear in any official_path component, since
// every component is sanitized by canon.NormalizeComponent before it is
// stored.
const separator = " ⚡ "

const (
	dPrefix = "d/"
	cPrefix = "c/"
	uPrefix = "u/"
)

func dKey(path string) []byte {
	return []byte(dPrefix + path)
}

func cKey(suffix, path string) []byte {
	return []byte(cPrefix + suffix + separator + path)
}

func uKey(suffix, path string) []byte {
	return []byte(uPrefix + suffix + separator + path)
}

// suffixes returns every non-empty "::"-joined suffix of parts, longest
// first (the full path itself is included, per spec).
func suffixes(parts []string) []string {
	out := make([]string, 0, len(parts))
	for i := 0; i < len(parts); i++ {
		out = append(out, strings.Join(parts[i:], "::"))
	}
	return out
}

// splitIndexKey validates that key has the shape "<prefix><wantLeft><separator><path>"
// with exactly one occurrence of the separator and a left side exactly
// equal to wantLeft. Malformed keys return an error the caller logs and
// skips, rather than treating as fatal.
func splitIndexKey(key, wantLeft string) (path string, err error) {
	if strings.Count(key, separator) != 1 {
		return "", altidxerr.NewMalformedKeyError(key)
	}
	parts := strings.SplitN(key, separator, 2)
	if parts[0] != wantLeft {
		return "", altidxerr.NewMalformedKeyError(key)
	}
	return parts[1], nil
}

// SplitIndexKey is splitIndexKey exported for the query engine, so the
// c/ and u/ key validation rule lives in exactly one place.
func SplitIndexKey(key, wantLeft string) (path string, err error) {
	return splitIndexKey(key, wantLeft)
}
