package animal

import (
	"fmt"
	"strings"
)

// Profile names one of the rescue training filters offered by the dashboard.
type Profile string

const (
	// ProfileWater selects candidates for water rescue training.
	ProfileWater Profile = "water"
	// ProfileMountain selects candidates for mountain or wilderness rescue.
	ProfileMountain Profile = "mountain"
	// ProfileDisaster selects candidates for disaster rescue or individual tracking.
	ProfileDisaster Profile = "disaster"
	// ProfileReset returns the unfiltered dataset.
	ProfileReset Profile = "reset"
)

// ParseProfile normalizes user input into a known profile.
// An empty value means reset.
func ParseProfile(value string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(value))) {
	case ProfileWater:
		return ProfileWater, nil
	case ProfileMountain:
		return ProfileMountain, nil
	case ProfileDisaster:
		return ProfileDisaster, nil
	case ProfileReset, "":
		return ProfileReset, nil
	}
	return "", fmt.Errorf("unknown rescue profile %q", value)
}

// Criteria describes one rescue profile as data: the accepted breeds, the
// required sex upon outcome, and the trainable age window in weeks. All
// profiles apply to dogs only.
type Criteria struct {
	Breeds      []string
	Sex         string
	AgeMinWeeks float64
	AgeMaxWeeks float64
}

// Breed lists are fixed by the rescue training requirements; age windows are
// inclusive on both ends.
var profileCriteria = map[Profile]Criteria{
	ProfileWater: {
		Breeds:      []string{"Chesapeake Bay Retriever", "Labrador Retriever Mix", "Newfoundland"},
		Sex:         "Intact Female",
		AgeMinWeeks: 26,
		AgeMaxWeeks: 156,
	},
	ProfileMountain: {
		Breeds:      []string{"Alaskan Malamute", "German Shepherd", "Old English Sheepdog", "Rottweiler", "Siberian Husky"},
		Sex:         "Intact Male",
		AgeMinWeeks: 26,
		AgeMaxWeeks: 156,
	},
	ProfileDisaster: {
		Breeds:      []string{"Bloodhound", "Doberman Pinscher", "German Shepherd", "Golden Retriever", "Rottweiler"},
		Sex:         "Intact Male",
		AgeMinWeeks: 20,
		AgeMaxWeeks: 300,
	},
}

// Criteria returns the filter criteria for the profile. The second return is
// false for reset (and unknown) profiles, which match everything.
func (p Profile) Criteria() (Criteria, bool) {
	c, ok := profileCriteria[p]
	return c, ok
}

// Matches reports whether the record satisfies the criteria.
func (c Criteria) Matches(r Record) bool {
	if r.AnimalType != "Dog" {
		return false
	}
	if r.SexUponOutcome != c.Sex {
		return false
	}
	if r.AgeUponOutcomeInWeeks < c.AgeMinWeeks || r.AgeUponOutcomeInWeeks > c.AgeMaxWeeks {
		return false
	}
	for _, breed := range c.Breeds {
		if r.Breed == breed {
			return true
		}
	}
	return false
}

// Filter applies the profile to already-loaded records. Reset returns the
// input slice unchanged; other profiles return a fresh slice.
func Filter(records []Record, p Profile) []Record {
	criteria, ok := p.Criteria()
	if !ok {
		return records
	}
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if criteria.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
