package formats

import (
	"sort"

	"github.com/samber/lo"
)

// Select returns the members of items whose format tag appears in prio,
// ordered by the tag's position in prio. The sort is stable: items with
// equal-priority tags keep the relative order the catalog supplied them in.
//
// An empty result means nothing parseable is available; callers decide how to
// degrade (the dataset loader substitutes a listing of what does exist).
//
// Select is generic over the item type so the same algorithm serves every
// keying of a distribution list. The format selector extracts the tag from an
// item; items themselves are never mutated and the input slice is left intact.
func Select[T any](items []T, prio Priority, format func(T) Format) []T {
	kept := lo.Filter(items, func(it T, _ int) bool {
		return prio.Contains(format(it))
	})
	sort.SliceStable(kept, func(i, j int) bool {
		return prio.Index(format(kept[i])) < prio.Index(format(kept[j]))
	})
	return kept
}

// Keys runs Select and extracts one key per selected item, preserving the
// selection order. Instantiating Keys with different key selectors over the
// same input always yields key lists of identical length and positional
// correspondence, since the underlying selection is computed identically.
func Keys[T any](items []T, prio Priority, format func(T) Format, key func(T) string) []string {
	return lo.Map(Select(items, prio, format), func(it T, _ int) string {
		return key(it)
	})
}
