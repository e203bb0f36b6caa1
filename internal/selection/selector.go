package selection

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// The digest recipe below is a compatibility contract with external auditors:
// SHA-256 over campaignID + "-" + seed, hex-encoded, first 8 hex characters
// parsed as an unsigned 32-bit integer, modulo the total slot count. Changing
// the separator, digest, encoding or prefix width changes every historical
// winner recomputation and must be treated as a breaking change.

// ValidateSeed checks that the external seed is a non-empty hex string. A
// leading "0x" is accepted since block hashes arrive in both forms. The seed
// is only ever validated, never rewritten: the digest always consumes the
// string exactly as supplied.
func ValidateSeed(seed string) error {
	s := strings.TrimPrefix(strings.ToLower(seed), "0x")
	if s == "" {
		return ErrInvalidSeed
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return ErrInvalidSeed
		}
	}
	return nil
}

// SelectionIndex derives the winning slot index for a pool of totalSlots.
func SelectionIndex(campaignID, seed string, totalSlots int) (int, error) {
	if err := ValidateSeed(seed); err != nil {
		return 0, err
	}
	if totalSlots <= 0 {
		return 0, ErrNoEligibleEntries
	}
	sum := sha256.Sum256([]byte(campaignID + "-" + seed))
	digest := hex.EncodeToString(sum[:])
	v, err := strconv.ParseUint(digest[:8], 16, 32)
	if err != nil {
		return 0, err
	}
	return int(v % uint64(totalSlots)), nil
}

// Select picks the winning candidate from the pool.
func Select(campaignID, seed string, pool *Pool) (Candidate, error) {
	idx, err := SelectionIndex(campaignID, seed, pool.Len())
	if err != nil {
		return Candidate{}, err
	}
	return pool.Slot(idx), nil
}
