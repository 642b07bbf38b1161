// Package selection implements the deterministic bucketing algorithm used
// to build balanced test sections from a pool of items. Determinism comes
// from sorting: group keys lexicographically, members by item identifier,
// so the same item set yields the same buckets regardless of the order
// upstream concurrency delivered them in.
package selection

import "sort"

// Item is one selectable entry: a generated item identifier plus the
// grouping key it buckets under.
type Item struct {
	ID  string
	Key string
}

// Bucket is an ordered group of item IDs sharing a key. Each bucket
// becomes one test section.
type Bucket struct {
	Key     string
	ItemIDs []string
}

// CompositeKey joins key parts into a single grouping key. Parts are
// separated by '|', which must not occur in identifiers.
func CompositeKey(parts ...string) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += "|"
		}
		key += p
	}
	return key
}

// Buckets partitions items into groups and selects members per group.
//
// With target <= 0, every group keeps all of its items and becomes one
// bucket (exercise tests select the full problem-type pool).
//
// With target > 0, selection is a round-robin draw: iterate the sorted
// groups repeatedly, taking one item per group per pass, until the target
// is reached or all groups are exhausted. This spreads the selection
// across categories instead of exhausting the first group.
func Buckets(items []Item, target int) []Bucket {
	if len(items) == 0 {
		return nil
	}

	groups := make(map[string][]string)
	for _, it := range items {
		groups[it.Key] = append(groups[it.Key], it.ID)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
		sort.Strings(groups[k])
	}
	sort.Strings(keys)

	if target <= 0 {
		out := make([]Bucket, 0, len(keys))
		for _, k := range keys {
			out = append(out, Bucket{Key: k, ItemIDs: groups[k]})
		}
		return out
	}

	// Round-robin draw into per-group selections.
	selected := make(map[string][]string, len(groups))
	taken := 0
	for pass := 0; taken < target; pass++ {
		drewAny := false
		for _, k := range keys {
			pool := groups[k]
			if pass >= len(pool) {
				continue
			}
			selected[k] = append(selected[k], pool[pass])
			drewAny = true
			taken++
			if taken == target {
				break
			}
		}
		if !drewAny {
			break
		}
	}

	out := make([]Bucket, 0, len(selected))
	for _, k := range keys {
		if ids := selected[k]; len(ids) > 0 {
			out = append(out, Bucket{Key: k, ItemIDs: ids})
		}
	}
	return out
}
