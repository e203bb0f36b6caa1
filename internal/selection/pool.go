// Package selection implements the deterministic, auditable winner draw:
// a weighted candidate pool built from verified campaign entries, an index
// derived from an external blockchain hash, and a one-shot commit of the
// result. Anyone holding the seed, the campaign ID and the entry list can
// recompute the winner independently.
package selection

import (
	"sort"
	"time"
)

// Entry is one campaign submission as seen by the draw.
type Entry struct {
	ID            string
	WalletAddress string
	Weight        int
	Verified      bool
	CreatedAt     time.Time
}

// Candidate is one eligible (entry, wallet) pair in the pool.
type Candidate struct {
	EntryID       string
	WalletAddress string
}

type poolSlot struct {
	Candidate
	weight int
	cumSum int
}

// Pool is the ordered, weight-expanded candidate sequence for one draw.
// Slots are stored as cumulative weights; Slot resolves a global slot index
// to its candidate without materializing the expansion.
type Pool struct {
	slots []poolSlot
	total int
}

// BuildPool assembles the pool from a campaign's entries. Unverified entries
// are dropped entirely so they cannot shift anyone's slots. The canonical
// order is ascending creation time, ties broken by entry ID, making the slot
// sequence independent of storage retrieval order. Weights are clamped to 1.
func BuildPool(entries []Entry) *Pool {
	eligible := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Verified {
			eligible = append(eligible, e)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		if !eligible[i].CreatedAt.Equal(eligible[j].CreatedAt) {
			return eligible[i].CreatedAt.Before(eligible[j].CreatedAt)
		}
		return eligible[i].ID < eligible[j].ID
	})

	p := &Pool{slots: make([]poolSlot, 0, len(eligible))}
	for _, e := range eligible {
		w := e.Weight
		if w < 1 {
			w = 1
		}
		p.total += w
		p.slots = append(p.slots, poolSlot{
			Candidate: Candidate{EntryID: e.ID, WalletAddress: e.WalletAddress},
			weight:    w,
			cumSum:    p.total,
		})
	}
	return p
}

// Len is the total number of slots (sum of weights).
func (p *Pool) Len() int { return p.total }

// Slot maps a global slot index in [0, Len()) to its candidate.
func (p *Pool) Slot(i int) Candidate {
	idx := sort.Search(len(p.slots), func(k int) bool { return i < p.slots[k].cumSum })
	return p.slots[idx].Candidate
}

// Expand materializes the duplication form of the pool: each candidate
// repeated weight times. Expand()[i] equals Slot(i) for every index.
func (p *Pool) Expand() []Candidate {
	out := make([]Candidate, 0, p.total)
	for _, s := range p.slots {
		for i := 0; i < s.weight; i++ {
			out = append(out, s.Candidate)
		}
	}
	return out
}
