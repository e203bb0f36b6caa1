package selection

import "errors"

var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrAlreadyDecided    = errors.New("winner already selected for this campaign")
	ErrNoEligibleEntries = errors.New("no eligible participants for this campaign")
	ErrInvalidSeed       = errors.New("selection seed must be a non-empty hex string")
)

// Code returns the machine-checkable kind for a selection error, or "" for
// anything else (storage faults and the like).
func Code(err error) string {
	switch {
	case errors.Is(err, ErrCampaignNotFound):
		return "CAMPAIGN_NOT_FOUND"
	case errors.Is(err, ErrAlreadyDecided):
		return "ALREADY_DECIDED"
	case errors.Is(err, ErrNoEligibleEntries):
		return "NO_ELIGIBLE_ENTRIES"
	case errors.Is(err, ErrInvalidSeed):
		return "INVALID_SEED"
	}
	return ""
}
