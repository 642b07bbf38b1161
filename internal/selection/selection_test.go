package selection

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func TestBuckets_NoTargetKeepsFullGroups(t *testing.T) {
	items := []Item{
		{ID: "b2", Key: "fractions"},
		{ID: "a1", Key: "addition"},
		{ID: "b1", Key: "fractions"},
		{ID: "a2", Key: "addition"},
	}

	got := Buckets(items, 0)

	want := []Bucket{
		{Key: "addition", ItemIDs: []string{"a1", "a2"}},
		{Key: "fractions", ItemIDs: []string{"b1", "b2"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestBuckets_DeterministicUnderPermutation(t *testing.T) {
	var items []Item
	for g := 0; g < 5; g++ {
		for i := 0; i < 7; i++ {
			items = append(items, Item{
				ID:  fmt.Sprintf("g%d-item%d", g, i),
				Key: fmt.Sprintf("group-%d", g),
			})
		}
	}

	reference := Buckets(items, 12)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]Item, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		if got := Buckets(shuffled, 12); !reflect.DeepEqual(got, reference) {
			t.Fatalf("trial %d: bucketing differed under permutation:\n%+v\nvs\n%+v",
				trial, got, reference)
		}
	}
}

func TestBuckets_RoundRobinEqualGroups(t *testing.T) {
	var items []Item
	for _, g := range []string{"a", "b", "c", "d"} {
		for i := 0; i < 5; i++ {
			items = append(items, Item{ID: fmt.Sprintf("%s%d", g, i), Key: g})
		}
	}

	got := Buckets(items, 12)

	if len(got) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(got))
	}
	for _, b := range got {
		if len(b.ItemIDs) != 3 {
			t.Errorf("bucket %s: expected exactly 3 items, got %d", b.Key, len(b.ItemIDs))
		}
	}
}

func TestBuckets_RoundRobinUnevenGroups(t *testing.T) {
	// Pools {10,1,1,1,1}: the single-item groups contribute one each,
	// the big group absorbs the remainder.
	var items []Item
	for i := 0; i < 10; i++ {
		items = append(items, Item{ID: fmt.Sprintf("big%02d", i), Key: "a-big"})
	}
	for _, g := range []string{"b", "c", "d", "e"} {
		items = append(items, Item{ID: g + "0", Key: g + "-one"})
	}

	got := Buckets(items, 12)

	total := 0
	sizes := make(map[string]int)
	for _, b := range got {
		sizes[b.Key] = len(b.ItemIDs)
		total += len(b.ItemIDs)
	}
	if total != 12 {
		t.Fatalf("expected 12 items selected, got %d", total)
	}
	if sizes["a-big"] != 8 {
		t.Errorf("expected 8 from the large group, got %d", sizes["a-big"])
	}
	for _, k := range []string{"b-one", "c-one", "d-one", "e-one"} {
		if sizes[k] != 1 {
			t.Errorf("expected 1 from %s, got %d", k, sizes[k])
		}
	}
	// Buckets come back in lexicographic key order.
	if got[0].Key != "a-big" || got[1].Key != "b-one" {
		t.Errorf("buckets out of order: %+v", got)
	}
}

func TestBuckets_NoGroupStarvedBelowFloor(t *testing.T) {
	var items []Item
	pools := map[string]int{"w": 9, "x": 4, "y": 6, "z": 2}
	for g, n := range pools {
		for i := 0; i < n; i++ {
			items = append(items, Item{ID: fmt.Sprintf("%s%d", g, i), Key: g})
		}
	}

	target := 12
	floor := target / len(pools) // 3
	got := Buckets(items, target)

	for _, b := range got {
		min := floor
		if pools[b.Key] < floor {
			min = pools[b.Key] // exhausted groups contribute what they have
		}
		if len(b.ItemIDs) < min {
			t.Errorf("group %s starved: got %d, floor %d", b.Key, len(b.ItemIDs), min)
		}
	}
}

func TestBuckets_TargetExceedsPool(t *testing.T) {
	items := []Item{
		{ID: "a1", Key: "a"},
		{ID: "b1", Key: "b"},
	}
	got := Buckets(items, 30)

	total := 0
	for _, b := range got {
		total += len(b.ItemIDs)
	}
	if total != 2 {
		t.Fatalf("expected all 2 items when target exceeds pool, got %d", total)
	}
}

func TestBuckets_EmptyInput(t *testing.T) {
	if got := Buckets(nil, 12); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
}

func TestCompositeKey(t *testing.T) {
	if got := CompositeKey("unit1", "fractions"); got != "unit1|fractions" {
		t.Fatalf("got %q", got)
	}
	if got := CompositeKey("solo"); got != "solo" {
		t.Fatalf("got %q", got)
	}
}
