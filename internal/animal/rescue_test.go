package animal

import "testing"

func waterCandidate() Record {
	return Record{
		AnimalType:            "Dog",
		Breed:                 "Labrador Retriever Mix",
		SexUponOutcome:        "Intact Female",
		AgeUponOutcomeInWeeks: 52,
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		input   string
		want    Profile
		wantErr bool
	}{
		{input: "water", want: ProfileWater},
		{input: " Mountain ", want: ProfileMountain},
		{input: "DISASTER", want: ProfileDisaster},
		{input: "reset", want: ProfileReset},
		{input: "", want: ProfileReset},
		{input: "underwater", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseProfile(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseProfile(%q) expected error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProfile(%q) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("ParseProfile(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCriteriaMatches(t *testing.T) {
	criteria, ok := ProfileWater.Criteria()
	if !ok {
		t.Fatal("water profile should have criteria")
	}

	tests := []struct {
		name   string
		mutate func(*Record)
		want   bool
	}{
		{name: "candidate", mutate: func(*Record) {}, want: true},
		{name: "wrong animal type", mutate: func(r *Record) { r.AnimalType = "Cat" }, want: false},
		{name: "wrong sex", mutate: func(r *Record) { r.SexUponOutcome = "Intact Male" }, want: false},
		{name: "breed not listed", mutate: func(r *Record) { r.Breed = "Beagle" }, want: false},
		{name: "below age window", mutate: func(r *Record) { r.AgeUponOutcomeInWeeks = 25.9 }, want: false},
		{name: "age window lower bound", mutate: func(r *Record) { r.AgeUponOutcomeInWeeks = 26 }, want: true},
		{name: "age window upper bound", mutate: func(r *Record) { r.AgeUponOutcomeInWeeks = 156 }, want: true},
		{name: "above age window", mutate: func(r *Record) { r.AgeUponOutcomeInWeeks = 156.1 }, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			record := waterCandidate()
			tc.mutate(&record)
			if got := criteria.Matches(record); got != tc.want {
				t.Fatalf("Matches() = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestDisasterWindowIsWider(t *testing.T) {
	criteria, ok := ProfileDisaster.Criteria()
	if !ok {
		t.Fatal("disaster profile should have criteria")
	}
	record := Record{
		AnimalType:            "Dog",
		Breed:                 "Bloodhound",
		SexUponOutcome:        "Intact Male",
		AgeUponOutcomeInWeeks: 20,
	}
	if !criteria.Matches(record) {
		t.Fatal("20 weeks should match the disaster window")
	}
	record.AgeUponOutcomeInWeeks = 300
	if !criteria.Matches(record) {
		t.Fatal("300 weeks should match the disaster window")
	}
}

func TestFilter(t *testing.T) {
	records := []Record{
		waterCandidate(),
		{AnimalType: "Dog", Breed: "Beagle", SexUponOutcome: "Intact Female", AgeUponOutcomeInWeeks: 52},
		{AnimalType: "Cat", Breed: "Domestic Shorthair", SexUponOutcome: "Intact Female", AgeUponOutcomeInWeeks: 52},
	}

	filtered := Filter(records, ProfileWater)
	if len(filtered) != 1 {
		t.Fatalf("Filter() returned %d records, want 1", len(filtered))
	}
	if filtered[0].Breed != "Labrador Retriever Mix" {
		t.Fatalf("Filter() kept %q", filtered[0].Breed)
	}

	if got := Filter(records, ProfileReset); len(got) != len(records) {
		t.Fatalf("reset filter returned %d records, want %d", len(got), len(records))
	}
}

func TestResetHasNoCriteria(t *testing.T) {
	if _, ok := ProfileReset.Criteria(); ok {
		t.Fatal("reset profile should not carry criteria")
	}
}
