package selection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeStore is an in-memory Store with the same conditional-commit semantics
// the gorm implementation has.
type fakeStore struct {
	mu sync.Mutex

	exists         bool
	winnerSelected bool
	entries        []Entry

	committedEntry string
	committedProof string

	stateCalls   int
	entriesCalls int

	commitErr    error
	beforeCommit func() // runs before the commit decision, for interleaving
}

func (f *fakeStore) GetCampaignState(ctx context.Context, campaignID string) (CampaignState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stateCalls++
	return CampaignState{Exists: f.exists, WinnerSelected: f.winnerSelected}, nil
}

func (f *fakeStore) GetVerifiedEntries(ctx context.Context, campaignID string) ([]Entry, error) {
	f.mu.Lock()
	f.entriesCalls++
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	f.mu.Unlock()
	return out, nil
}

func (f *fakeStore) CommitWinner(ctx context.Context, campaignID, entryID, proof string) error {
	if f.beforeCommit != nil {
		f.beforeCommit()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commitErr != nil {
		return f.commitErr
	}
	if !f.exists {
		return ErrCampaignNotFound
	}
	if f.winnerSelected {
		return ErrAlreadyDecided
	}
	f.winnerSelected = true
	f.committedEntry = entryID
	f.committedProof = proof
	return nil
}

func newTestService(store Store) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	return svc
}

func verifiedEntries() []Entry {
	return []Entry{
		entryAt("e1", "0xaaa", 1, true, 0),
		entryAt("e2", "0xbbb", 2, true, 1),
		entryAt("e3", "0xccc", 1, true, 2),
	}
}

func TestSelectWinnerSuccess(t *testing.T) {
	store := &fakeStore{exists: true, entries: verifiedEntries()}
	svc := newTestService(store)

	res, err := svc.SelectWinner(context.Background(), "c1", "deadbeef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Index 2 of [e1 e2 e2 e3] (see selector fixture).
	if res.WinnerEntryID != "e2" || res.WinnerAddress != "0xbbb" {
		t.Errorf("winner: got %+v", res)
	}
	wantProof := ProofHash("deadbeef", "c1", "e2", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	if res.Proof != wantProof {
		t.Errorf("proof: got %s, want %s", res.Proof, wantProof)
	}
	if store.committedEntry != "e2" || store.committedProof != wantProof {
		t.Errorf("commit mismatch: entry %s proof %s", store.committedEntry, store.committedProof)
	}
	if !store.winnerSelected {
		t.Error("campaign not marked decided")
	}
}

func TestSelectWinnerErrors(t *testing.T) {
	cases := []struct {
		name  string
		store *fakeStore
		seed  string
		want  error
	}{
		{
			name:  "CampaignNotFound",
			store: &fakeStore{exists: false},
			seed:  "deadbeef",
			want:  ErrCampaignNotFound,
		},
		{
			name:  "AlreadyDecided",
			store: &fakeStore{exists: true, winnerSelected: true, entries: verifiedEntries()},
			seed:  "deadbeef",
			want:  ErrAlreadyDecided,
		},
		{
			name:  "NoEntriesAtAll",
			store: &fakeStore{exists: true},
			seed:  "deadbeef",
			want:  ErrNoEligibleEntries,
		},
		{
			name: "OnlyUnverifiedEntries",
			store: &fakeStore{exists: true, entries: []Entry{
				entryAt("e1", "0xaaa", 3, false, 0),
			}},
			seed: "deadbeef",
			want: ErrNoEligibleEntries,
		},
		{
			name:  "InvalidSeed",
			store: &fakeStore{exists: true, entries: verifiedEntries()},
			seed:  "not-a-hash",
			want:  ErrInvalidSeed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(tc.store)
			_, err := svc.SelectWinner(context.Background(), "c1", tc.seed)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if tc.store.committedEntry != "" {
				t.Errorf("commit happened on error path: %s", tc.store.committedEntry)
			}
			if tc.want == ErrInvalidSeed && tc.store.stateCalls+tc.store.entriesCalls > 0 {
				t.Error("invalid seed touched the store")
			}
		})
	}
}

func TestSelectWinnerRacingCommit(t *testing.T) {
	// A racer commits between this call's state check and its commit; the
	// conditional write must reject the loser.
	store := &fakeStore{exists: true, entries: verifiedEntries()}
	store.beforeCommit = func() {
		store.beforeCommit = nil // the racer itself commits cleanly
		racer := newTestService(store)
		if _, err := racer.SelectWinner(context.Background(), "c1", "deadbeef"); err != nil {
			t.Errorf("racer failed: %v", err)
		}
	}

	svc := newTestService(store)
	_, err := svc.SelectWinner(context.Background(), "c1", "deadbeef")
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("loser got %v, want ErrAlreadyDecided", err)
	}
	if store.committedEntry != "e2" {
		t.Errorf("committed winner clobbered: %s", store.committedEntry)
	}
}

func TestSelectWinnerConcurrent(t *testing.T) {
	store := &fakeStore{exists: true, entries: verifiedEntries()}
	svc := newTestService(store)

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SelectWinner(context.Background(), "c1", "deadbeef")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyDecided):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("got %d successes, want exactly 1 (%d conflicts)", successes, conflicts)
	}
}

func TestNoPartialStateOnCommitFailure(t *testing.T) {
	storageDown := errors.New("storage down")
	store := &fakeStore{exists: true, entries: verifiedEntries(), commitErr: storageDown}
	svc := newTestService(store)

	_, err := svc.SelectWinner(context.Background(), "c1", "deadbeef")
	if !errors.Is(err, storageDown) {
		t.Fatalf("got %v, want storage fault", err)
	}
	if store.winnerSelected || store.committedEntry != "" || store.committedProof != "" {
		t.Errorf("partial state after failed commit: %+v", store)
	}

	// The campaign is still open; a retry succeeds.
	store.commitErr = nil
	if _, err := svc.SelectWinner(context.Background(), "c1", "deadbeef"); err != nil {
		t.Fatalf("retry after fault failed: %v", err)
	}
}

func TestReselectionRejected(t *testing.T) {
	store := &fakeStore{exists: true, entries: verifiedEntries()}
	svc := newTestService(store)

	first, err := svc.SelectWinner(context.Background(), "c1", "deadbeef")
	if err != nil {
		t.Fatalf("first selection failed: %v", err)
	}

	for _, seed := range []string{"deadbeef", "0xfeedface"} {
		if _, err := svc.SelectWinner(context.Background(), "c1", seed); !errors.Is(err, ErrAlreadyDecided) {
			t.Errorf("seed %s: got %v, want ErrAlreadyDecided", seed, err)
		}
	}
	if store.committedEntry != first.WinnerEntryID || store.committedProof != first.Proof {
		t.Error("original winner or proof changed by reselection attempt")
	}
}
