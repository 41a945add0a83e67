// Package animal defines the shelter outcome domain model shared by the
// registry storage layer and the dashboard service.
package animal

import (
	"strconv"
	"strings"
)

// Record is one Austin Animal Center outcome record.
//
// Field names follow the AAC outcomes export so documents round-trip through
// the animals collection without a mapping layer. The Mongo _id never appears
// here; the storage layer strips it before records leave the store.
type Record struct {
	AnimalID              string  `bson:"animal_id,omitempty" json:"animal_id,omitempty"`
	Name                  string  `bson:"name,omitempty" json:"name,omitempty"`
	AnimalType            string  `bson:"animal_type,omitempty" json:"animal_type,omitempty"`
	Breed                 string  `bson:"breed,omitempty" json:"breed,omitempty"`
	Color                 string  `bson:"color,omitempty" json:"color,omitempty"`
	SexUponOutcome        string  `bson:"sex_upon_outcome,omitempty" json:"sex_upon_outcome,omitempty"`
	AgeUponOutcome        string  `bson:"age_upon_outcome,omitempty" json:"age_upon_outcome,omitempty"`
	AgeUponOutcomeInWeeks float64 `bson:"age_upon_outcome_in_weeks,omitempty" json:"age_upon_outcome_in_weeks,omitempty"`
	DateOfBirth           string  `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	OutcomeDatetime       string  `bson:"datetime,omitempty" json:"datetime,omitempty"`
	OutcomeType           string  `bson:"outcome_type,omitempty" json:"outcome_type,omitempty"`
	OutcomeSubtype        string  `bson:"outcome_subtype,omitempty" json:"outcome_subtype,omitempty"`
	LocationLat           float64 `bson:"location_lat,omitempty" json:"location_lat,omitempty"`
	LocationLong          float64 `bson:"location_long,omitempty" json:"location_long,omitempty"`
	RecNum                int     `bson:"rec_num,omitempty" json:"rec_num,omitempty"`
}

// IsZero reports whether the record carries no data at all.
func (r Record) IsZero() bool {
	return r == Record{}
}

// Normalized returns a copy with surrounding whitespace stripped from the
// display fields. Shelter exports carry stray whitespace in name and breed
// columns; normalizing here keeps filters and grouping stable.
func (r Record) Normalized() Record {
	r.AnimalID = strings.TrimSpace(r.AnimalID)
	r.Name = strings.TrimSpace(r.Name)
	r.AnimalType = strings.TrimSpace(r.AnimalType)
	r.Breed = strings.TrimSpace(r.Breed)
	r.Color = strings.TrimSpace(r.Color)
	r.SexUponOutcome = strings.TrimSpace(r.SexUponOutcome)
	r.AgeUponOutcome = strings.TrimSpace(r.AgeUponOutcome)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.OutcomeDatetime = strings.TrimSpace(r.OutcomeDatetime)
	r.OutcomeType = strings.TrimSpace(r.OutcomeType)
	r.OutcomeSubtype = strings.TrimSpace(r.OutcomeSubtype)
	return r
}

// FromDocument builds a Record from a raw document, coercing loosely typed
// values. Collections seeded by hand sometimes store numerics as strings or
// 32-bit integers; unparseable values are left at their zero value.
func FromDocument(doc map[string]any) Record {
	r := Record{
		AnimalID:              docString(doc, "animal_id"),
		Name:                  docString(doc, "name"),
		AnimalType:            docString(doc, "animal_type"),
		Breed:                 docString(doc, "breed"),
		Color:                 docString(doc, "color"),
		SexUponOutcome:        docString(doc, "sex_upon_outcome"),
		AgeUponOutcome:        docString(doc, "age_upon_outcome"),
		AgeUponOutcomeInWeeks: docFloat(doc, "age_upon_outcome_in_weeks"),
		DateOfBirth:           docString(doc, "date_of_birth"),
		OutcomeDatetime:       docString(doc, "datetime"),
		OutcomeType:           docString(doc, "outcome_type"),
		OutcomeSubtype:        docString(doc, "outcome_subtype"),
		LocationLat:           docFloat(doc, "location_lat"),
		LocationLong:          docFloat(doc, "location_long"),
		RecNum:                int(docFloat(doc, "rec_num")),
	}
	return r.Normalized()
}

func docString(doc map[string]any, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func docFloat(doc map[string]any, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
