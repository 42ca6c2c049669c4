// Package canon converts filesystem paths into the double-colon path
// prefixes that every symbol's official path is built from.
//
// Architecture pattern:
// The index never stores a filesystem path directly. Every official path
// begins with the canonicalized form of the file it came from, so a file
// and its symbols can always be found again by re-deriving the same
// prefix from the same path.
package canon

import (
	"strings"
)

// FilePrefix maps a filesystem path to the ordered path-component prefix
// that leads every official path discovered in that file.
//
//   - separators are normalized to "/"
//   - a single trailing extension is stripped
//   - any rune that is not alphanumeric or "_" becomes "_"
//   - the result is split on "/", dropping empty segments
func FilePrefix(path string) []string {
	p := strings.ReplaceAll(path, "\\", "/")
	p = stripExtension(p)
	p = sanitize(p)

	parts := strings.Split(p, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// FilePrefixString is FilePrefix joined with "::", the form used as a
// d/ key prefix when listing or removing a file's symbols.
func FilePrefixString(path string) string {
	return strings.Join(FilePrefix(path), "::")
}

// NormalizeComponent replaces every non-identifier rune in a single path
// component with "_", so parser output such as "operator()" or "Foo<T>"
// becomes a legal official_path fragment.
func NormalizeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isIdentRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func stripExtension(p string) string {
	slash := strings.LastIndexByte(p, '/')
	dot := strings.LastIndexByte(p, '.')
	if dot <= slash {
		return p
	}
	return p[:dot]
}

// sanitize normalizes every rune outside a path component (i.e. every
// rune including the "/" separators we want to keep) in one pass,
// preserving "/" so the subsequent Split still finds segment boundaries.
func sanitize(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	for _, r := range p {
		if r == '/' || isIdentRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	default:
		return false
	}
}
