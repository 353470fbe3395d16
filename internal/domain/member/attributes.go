package member

import (
	"strings"
	"unicode"
)

// Attribute names one displayable, serialized field of a member. Order is the
// column position shared by roster files and any tabular view.
type Attribute struct {
	Name  string
	Order int
}

func (a Attribute) Header() string {
	return DisplayName(a.Name)
}

const (
	AttrLastName          = "LastName"
	AttrFirstName         = "FirstName"
	AttrGender            = "Gender"
	AttrSchool            = "School"
	AttrYearsOfExperience = "YearsOfExperience"

	AttrCoachType = "CoachType"

	AttrBirthdate        = "Birthdate"
	AttrWeight           = "Weight"
	AttrWeightCategory   = "WeightCategory"
	AttrWins             = "Wins"
	AttrLosses           = "Losses"
	AttrTotalPoints      = "TotalPoints"
	AttrWinsByPin        = "WinsByPin"
	AttrStatus           = "Status"
	AttrUniformSignedOut = "UniformSignedOut"
)

var baseAttributes = []Attribute{
	{Name: AttrLastName, Order: 1},
	{Name: AttrFirstName, Order: 2},
	{Name: AttrGender, Order: 3},
	{Name: AttrSchool, Order: 4},
	{Name: AttrYearsOfExperience, Order: 5},
}

var coachAttributes = []Attribute{
	{Name: AttrCoachType, Order: 6},
}

var wrestlerAttributes = []Attribute{
	{Name: AttrBirthdate, Order: 6},
	{Name: AttrWeight, Order: 7},
	{Name: AttrWeightCategory, Order: 8},
	{Name: AttrWins, Order: 9},
	{Name: AttrLosses, Order: 10},
	{Name: AttrTotalPoints, Order: 11},
	{Name: AttrWinsByPin, Order: 12},
	{Name: AttrStatus, Order: 13},
	{Name: AttrUniformSignedOut, Order: 14},
}

// BaseFieldCount is the number of leading fields shared by every kind.
var BaseFieldCount = len(baseAttributes)

// Attributes returns the ordered attribute list for kind, base fields first.
// Unknown kinds get the base list only.
func Attributes(kind Kind) []Attribute {
	out := make([]Attribute, 0, len(baseAttributes)+len(wrestlerAttributes))
	out = append(out, baseAttributes...)
	switch kind {
	case KindCoach:
		out = append(out, coachAttributes...)
	case KindWrestler:
		out = append(out, wrestlerAttributes...)
	}
	return out
}

// FieldCount is the number of fields a roster line of kind carries after its tag.
func FieldCount(kind Kind) int {
	switch kind {
	case KindCoach:
		return len(baseAttributes) + len(coachAttributes)
	case KindWrestler:
		return len(baseAttributes) + len(wrestlerAttributes)
	default:
		return len(baseAttributes)
	}
}

// DisplayName turns a joined identifier such as YearsOfExperience into the
// label "Years Of Experience".
func DisplayName(identifier string) string {
	var b strings.Builder
	b.Grow(len(identifier) + 4)
	for i, r := range identifier {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
