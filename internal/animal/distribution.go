package animal

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// BreedCount is one slice of the breed distribution chart.
type BreedCount struct {
	Breed string `json:"breed"`
	Count int    `json:"count"`
}

// BreedDistribution aggregates records by breed for the dashboard pie chart.
// Results are ordered by descending count; ties break on collated breed name
// so chart legends stay stable between refreshes.
func BreedDistribution(records []Record) []BreedCount {
	counts := make(map[string]int)
	for _, r := range records {
		breed := r.Breed
		if breed == "" {
			breed = "Unknown"
		}
		counts[breed]++
	}

	distribution := make([]BreedCount, 0, len(counts))
	for breed, count := range counts {
		distribution = append(distribution, BreedCount{Breed: breed, Count: count})
	}

	collator := collate.New(language.English, collate.IgnoreCase)
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Count != distribution[j].Count {
			return distribution[i].Count > distribution[j].Count
		}
		return collator.CompareString(distribution[i].Breed, distribution[j].Breed) < 0
	})
	return distribution
}
