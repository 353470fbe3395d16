package member

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

type fixedClassifier float64

func (f fixedClassifier) Classify(Gender, float64) (float64, error) {
	return float64(f), nil
}

func TestDecode_Coach(t *testing.T) {
	t.Parallel()

	m, err := Decode("Coach", []string{"Smith", "Anna", "Female", "Central High", "7", "Support"})
	if err != nil {
		t.Fatalf("decode coach: %v", err)
	}
	if m.Kind() != KindCoach {
		t.Fatalf("unexpected kind: %q", m.Kind())
	}
	want := Base{FirstName: "Anna", LastName: "Smith", Gender: GenderFemale, School: "Central High", YearsOfExperience: 7}
	if m.Base != want {
		t.Fatalf("unexpected base: %+v", m.Base)
	}
	if m.Coach.Type != CoachSupport {
		t.Fatalf("unexpected coach type: %s", m.Coach.Type)
	}
}

func TestDecode_Wrestler(t *testing.T) {
	t.Parallel()

	fields := []string{"Doe", "John", "Male", "North", "2", "03/14/2007", "64.5", "999", "12", "4", "88", "5", "Injured", "true"}
	m, err := Decode("Wrestler", fields)
	if err != nil {
		t.Fatalf("decode wrestler: %v", err)
	}
	if m.Kind() != KindWrestler {
		t.Fatalf("unexpected kind: %q", m.Kind())
	}

	want := Wrestler{
		Birthdate:        time.Date(2007, time.March, 14, 0, 0, 0, 0, time.UTC),
		Weight:           64.5,
		Wins:             12,
		Losses:           4,
		TotalPoints:      88,
		WinsByPin:        5,
		Status:           StatusInjured,
		UniformSignedOut: true,
	}
	if !reflect.DeepEqual(*m.Wrestler, want) {
		t.Fatalf("unexpected wrestler: %+v", *m.Wrestler)
	}
}

func TestDecode_Failures(t *testing.T) {
	t.Parallel()

	wrestler := func(mutate func([]string) []string) []string {
		fields := []string{"Doe", "John", "Male", "North", "2", "03/14/2007", "64.5", "65", "12", "4", "88", "5", "Active", "false"}
		return mutate(fields)
	}

	tests := []struct {
		name      string
		tag       string
		fields    []string
		field     string
		targetErr error
	}{
		{
			name:      "coach missing coach type",
			tag:       "Coach",
			fields:    []string{"Smith", "Anna", "Female", "Central", "7"},
			field:     AttrCoachType,
			targetErr: ErrMissingFields,
		},
		{
			name:      "coach bad coach type",
			tag:       "Coach",
			fields:    []string{"Smith", "Anna", "Female", "Central", "7", "Hands on"},
			field:     AttrCoachType,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "too few base fields",
			tag:       "Coach",
			fields:    []string{"Smith", "Anna", "Female"},
			field:     AttrSchool,
			targetErr: ErrMissingFields,
		},
		{
			name:      "empty last name",
			tag:       "Coach",
			fields:    []string{"", "Anna", "Female", "Central", "7", "Support"},
			field:     AttrLastName,
			targetErr: ErrEmptyField,
		},
		{
			name:      "bad gender",
			tag:       "Coach",
			fields:    []string{"Smith", "Anna", "F", "Central", "7", "Support"},
			field:     AttrGender,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "negative experience",
			tag:       "Coach",
			fields:    []string{"Smith", "Anna", "Female", "Central", "-1", "Support"},
			field:     AttrYearsOfExperience,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler missing fields",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { return f[:10] }),
			field:     AttrTotalPoints,
			targetErr: ErrMissingFields,
		},
		{
			name:      "wrestler bad birthdate",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[5] = "2007-03-14"; return f }),
			field:     AttrBirthdate,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler bad weight",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[6] = "heavy"; return f }),
			field:     AttrWeight,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler weight NaN",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[6] = "NaN"; return f }),
			field:     AttrWeight,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler weight Inf",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[6] = "Inf"; return f }),
			field:     AttrWeight,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler weight +Inf",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[6] = "+Inf"; return f }),
			field:     AttrWeight,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler weight -Inf",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[6] = "-Inf"; return f }),
			field:     AttrWeight,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler weight nan",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[6] = "nan"; return f }),
			field:     AttrWeight,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler pins exceed wins",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[11] = "13"; return f }),
			field:     AttrWinsByPin,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler bad status",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[12] = "Retired"; return f }),
			field:     AttrStatus,
			targetErr: ErrInvalidValue,
		},
		{
			name:      "wrestler bad uniform flag",
			tag:       "Wrestler",
			fields:    wrestler(func(f []string) []string { f[13] = "maybe"; return f }),
			field:     AttrUniformSignedOut,
			targetErr: ErrInvalidValue,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, err := Decode(tc.tag, tc.fields)
			if m != nil {
				t.Fatalf("expected no member on failure, got %+v", m)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Field != tc.field {
				t.Fatalf("unexpected failing field: got=%s want=%s", parseErr.Field, tc.field)
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestDecode_UnknownTag(t *testing.T) {
	t.Parallel()

	_, err := Decode("Referee", []string{"a", "b", "Male", "c", "1"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestEncode_DecodeRoundTrip(t *testing.T) {
	t.Parallel()

	members := []*Member{
		NewCoach(Base{FirstName: "Anna", LastName: "Smith", Gender: GenderFemale, School: "Central", YearsOfExperience: 7}, Coach{Type: CoachHandsOn}),
		NewWrestler(Base{FirstName: "John", LastName: "Doe", Gender: GenderMale, School: "North", YearsOfExperience: 2}, Wrestler{
			Birthdate:   time.Date(2008, time.November, 2, 0, 0, 0, 0, time.UTC),
			Weight:      61.25,
			Wins:        3,
			Losses:      1,
			WinsByPin:   2,
			TotalPoints: 21,
			Status:      StatusQuit,
		}),
	}

	for _, original := range members {
		fields, err := Encode(original, fixedClassifier(65))
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if len(fields) != FieldCount(original.Kind()) {
			t.Fatalf("unexpected field count: got=%d want=%d", len(fields), FieldCount(original.Kind()))
		}

		decoded, err := Decode(string(original.Kind()), fields)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !reflect.DeepEqual(decoded, original) {
			t.Fatalf("round trip mismatch:\n got=%+v\nwant=%+v", decoded, original)
		}
	}
}

func TestEncode_WrestlerFieldFormats(t *testing.T) {
	t.Parallel()

	m := NewWrestler(Base{FirstName: "John", LastName: "Doe", Gender: GenderMale, School: "North"}, Wrestler{
		Birthdate:        time.Date(2007, time.March, 4, 0, 0, 0, 0, time.UTC),
		Weight:           64,
		UniformSignedOut: true,
	})

	fields, err := Encode(m, fixedClassifier(65))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []string{"Doe", "John", "Male", "North", "0", "03/04/2007", "64", "65", "0", "0", "0", "0", "Active", "true"}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("unexpected fields:\n got=%v\nwant=%v", fields, want)
	}
}

func TestWrestlerDerivedValues(t *testing.T) {
	t.Parallel()

	w := Wrestler{Wins: 3, Losses: 1, TotalPoints: 10}
	if w.TotalMatches() != 4 {
		t.Fatalf("unexpected total matches: %d", w.TotalMatches())
	}
	if w.WinPercentage() != 75 {
		t.Fatalf("unexpected win percentage: %v", w.WinPercentage())
	}
	if w.LossPercentage() != 25 {
		t.Fatalf("unexpected loss percentage: %v", w.LossPercentage())
	}
	if w.AverageMatchPoints() != 2.5 {
		t.Fatalf("unexpected average points: %v", w.AverageMatchPoints())
	}

	var idle Wrestler
	if !math.IsNaN(idle.WinPercentage()) || !math.IsNaN(idle.AverageMatchPoints()) {
		t.Fatalf("expected NaN ratios without matches")
	}
}

func TestNewDefault(t *testing.T) {
	t.Parallel()

	base := Base{ID: "m1", FirstName: "A", LastName: "B", School: "S"}
	coach, err := NewDefault(KindCoach, base)
	if err != nil {
		t.Fatalf("default coach: %v", err)
	}
	if coach.Coach.Type != CoachHandsOn || coach.Wrestler != nil {
		t.Fatalf("unexpected default coach: %+v", coach)
	}

	wrestler, err := NewDefault(KindWrestler, base)
	if err != nil {
		t.Fatalf("default wrestler: %v", err)
	}
	if wrestler.Wrestler.Status != StatusActive || wrestler.Wrestler.Wins != 0 || wrestler.Coach != nil {
		t.Fatalf("unexpected default wrestler: %+v", wrestler.Wrestler)
	}
	if wrestler.ID != "m1" {
		t.Fatalf("base fields not kept")
	}

	if _, err := NewDefault("Referee", base); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	original := NewWrestler(Base{FirstName: "A", LastName: "B", School: "S"}, Wrestler{Wins: 2})
	clone := original.Clone()
	clone.Wrestler.Wins = 9
	clone.FirstName = "Z"

	if original.Wrestler.Wins != 2 || original.FirstName != "A" {
		t.Fatalf("clone mutated original: %+v", original)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := NewWrestler(Base{FirstName: "A", LastName: "B", School: "S"}, Wrestler{Wins: 2, WinsByPin: 1})
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid member: %v", err)
	}

	invalid := NewWrestler(Base{FirstName: "A", LastName: "B", School: "S"}, Wrestler{Wins: 1, WinsByPin: 2})
	if err := invalid.Validate(); !errors.Is(err, ErrInvalidMember) {
		t.Fatalf("expected ErrInvalidMember, got %v", err)
	}

	both := &Member{Base: valid.Base, Coach: &Coach{}, Wrestler: &Wrestler{}}
	if err := both.Validate(); !errors.Is(err, ErrInvalidMember) {
		t.Fatalf("expected ErrInvalidMember for dual payload, got %v", err)
	}
}
