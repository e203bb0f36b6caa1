package selection

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// ProofHash binds (seed, campaign, winner, commit time) into the audit record
// stored alongside the campaign. The timestamp makes it a non-repudiation
// record of when the commit happened; it is never an input to the index, so
// the winner stays recomputable from public information alone.
func ProofHash(seed, campaignID, winnerEntryID string, at time.Time) string {
	material := seed + "-" + campaignID + "-" + winnerEntryID + "-" +
		strconv.FormatInt(at.UnixMilli(), 10)
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}

// VerificationHash is the integrity hash issued to an entry at submission
// time, checked again during the admin verification step.
func VerificationHash(walletAddress, email, campaignID string, at time.Time) string {
	material := walletAddress + "-" + email + "-" + campaignID + "-" +
		strconv.FormatInt(at.UnixMilli(), 10)
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}

// VerifyEntryHash recomputes an entry's verification hash and compares.
func VerifyEntryHash(walletAddress, email, campaignID string, at time.Time, hash string) bool {
	return VerificationHash(walletAddress, email, campaignID, at) == hash
}
