package store

import (
	"strings"

	"github.com/altidx/altidx/internal/symbol"
)

// definitionKeys computes every key (besides the d/ record itself) that
// doc_add inserts, and doc_remove must later delete, for one definition.
// Deriving these from the stored Definition means the store never needs
// a second index from path to auxiliary keys: the d/ record is
// self-describing.
func definitionKeys(def symbol.Definition) (cKeys, uKeys [][]byte) {
	path := def.Path()
	for _, suffix := range suffixes(def.OfficialPath) {
		cKeys = append(cKeys, cKey(suffix, path))
	}
	for _, usage := range def.Usages {
		for _, target := range usageTargetSuffixes(usage) {
			uKeys = append(uKeys, uKey(target, path))
		}
	}
	return cKeys, uKeys
}

// usageTargetSuffixes expands one usage's targets_for_guesswork into the
// suffix set the u/ family indexes under. Every target is indexed (the
// resolved form of the Open Question in spec.md §9), each with its own
// leading "?" sentinel stripped.
func usageTargetSuffixes(u symbol.Usage) []string {
	var out []string
	for _, target := range u.TargetsForGuesswork {
		parts := strings.Split(target, "::")
		if len(parts) == 0 {
			continue
		}
		if parts[0] == "?" {
			parts = parts[1:]
		}
		if len(parts) == 0 {
			continue
		}
		out = append(out, suffixes(parts)...)
	}
	return out
}
