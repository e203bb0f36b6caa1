package selection

import (
	"reflect"
	"testing"
	"time"
)

func entryAt(id, wallet string, weight int, verified bool, minute int) Entry {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return Entry{
		ID:            id,
		WalletAddress: wallet,
		Weight:        weight,
		Verified:      verified,
		CreatedAt:     base.Add(time.Duration(minute) * time.Minute),
	}
}

func TestBuildPoolCanonicalOrder(t *testing.T) {
	// Same records in two different retrieval orders must expand to
	// byte-identical slot sequences.
	ordered := []Entry{
		entryAt("e1", "0xaaa", 1, true, 0),
		entryAt("e2", "0xbbb", 2, true, 1),
		entryAt("e3", "0xccc", 1, true, 2),
	}
	shuffled := []Entry{ordered[2], ordered[0], ordered[1]}

	want := BuildPool(ordered).Expand()
	got := BuildPool(shuffled).Expand()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expansion differs by retrieval order:\n got %v\nwant %v", got, want)
	}

	wantSeq := []Candidate{
		{EntryID: "e1", WalletAddress: "0xaaa"},
		{EntryID: "e2", WalletAddress: "0xbbb"},
		{EntryID: "e2", WalletAddress: "0xbbb"},
		{EntryID: "e3", WalletAddress: "0xccc"},
	}
	if !reflect.DeepEqual(want, wantSeq) {
		t.Errorf("unexpected slot sequence: %v", want)
	}
}

func TestBuildPoolCreatedAtTieBreak(t *testing.T) {
	// Identical timestamps fall back to entry ID order.
	a := entryAt("b-entry", "0x2", 1, true, 5)
	b := entryAt("a-entry", "0x1", 1, true, 5)

	got := BuildPool([]Entry{a, b}).Expand()
	if got[0].EntryID != "a-entry" || got[1].EntryID != "b-entry" {
		t.Errorf("tie-break order wrong: %v", got)
	}
}

func TestBuildPoolExcludesUnverified(t *testing.T) {
	withUnverified := []Entry{
		entryAt("e1", "0xaaa", 1, true, 0),
		entryAt("e2", "0xbbb", 5, false, 1), // pending verification
		entryAt("e3", "0xccc", 2, true, 2),
	}
	without := []Entry{withUnverified[0], withUnverified[2]}

	a := BuildPool(withUnverified)
	b := BuildPool(without)
	if a.Len() != b.Len() {
		t.Fatalf("unverified entry changed pool length: %d vs %d", a.Len(), b.Len())
	}
	if !reflect.DeepEqual(a.Expand(), b.Expand()) {
		t.Errorf("unverified entry shifted slots:\n got %v\nwant %v", a.Expand(), b.Expand())
	}
}

func TestBuildPoolClampsWeight(t *testing.T) {
	cases := []struct {
		name   string
		weight int
		want   int
	}{
		{name: "Zero", weight: 0, want: 1},
		{name: "Negative", weight: -3, want: 1},
		{name: "Positive", weight: 4, want: 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := BuildPool([]Entry{entryAt("e1", "0xaaa", tc.weight, true, 0)})
			if p.Len() != tc.want {
				t.Errorf("weight %d: got %d slots, want %d", tc.weight, p.Len(), tc.want)
			}
		})
	}
}

func TestBuildPoolEmpty(t *testing.T) {
	if n := BuildPool(nil).Len(); n != 0 {
		t.Errorf("empty input: got %d slots", n)
	}
	onlyUnverified := []Entry{entryAt("e1", "0xaaa", 3, false, 0)}
	if n := BuildPool(onlyUnverified).Len(); n != 0 {
		t.Errorf("only unverified: got %d slots", n)
	}
}

func TestSlotMatchesExpand(t *testing.T) {
	p := BuildPool([]Entry{
		entryAt("e1", "0xaaa", 3, true, 0),
		entryAt("e2", "0xbbb", 1, true, 1),
		entryAt("e3", "0xccc", 7, true, 2),
	})
	flat := p.Expand()
	if len(flat) != p.Len() {
		t.Fatalf("expand length %d != pool length %d", len(flat), p.Len())
	}
	for i := 0; i < p.Len(); i++ {
		if p.Slot(i) != flat[i] {
			t.Errorf("slot %d: cumulative form %v != duplication form %v", i, p.Slot(i), flat[i])
		}
	}
}
