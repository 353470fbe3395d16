package member

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the MM/dd/yyyy birthdate format used in roster files.
const DateLayout = "01/02/2006"

var dateLayouts = []string{DateLayout, "1/2/2006"}

// Encode renders m as scalar text values in Attributes(m.Kind()) order. The
// classifier supplies the informational weight-category column for wrestlers.
func Encode(m *Member, classifier WeightClassifier) ([]string, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: member is nil", ErrInvalidMember)
	}

	out := make([]string, 0, FieldCount(m.Kind()))
	out = append(out,
		m.LastName,
		m.FirstName,
		m.Gender.String(),
		m.School,
		strconv.Itoa(m.YearsOfExperience),
	)

	switch m.Kind() {
	case KindCoach:
		out = append(out, m.Coach.Type.String())
	case KindWrestler:
		category, err := m.WeightCategory(classifier)
		if err != nil {
			return nil, fmt.Errorf("encode wrestler %s: %w", m.FullName(), err)
		}
		w := m.Wrestler
		out = append(out,
			w.Birthdate.Format(DateLayout),
			formatFloat(w.Weight),
			formatFloat(category),
			strconv.Itoa(w.Wins),
			strconv.Itoa(w.Losses),
			strconv.Itoa(w.TotalPoints),
			strconv.Itoa(w.WinsByPin),
			w.Status.String(),
			strconv.FormatBool(w.UniformSignedOut),
		)
	default:
		return nil, fmt.Errorf("%w: member has no kind", ErrUnknownKind)
	}

	return out, nil
}

// Decode builds a member of the kind named by tag from the fields that follow
// the tag on a roster line. It returns a *ParseError naming the first field
// that failed and never a partially populated member.
func Decode(tag string, fields []string) (*Member, error) {
	kind, err := ParseKind(tag)
	if err != nil {
		return nil, err
	}

	base, err := decodeBase(kind, fields)
	if err != nil {
		return nil, err
	}

	rest := fields[BaseFieldCount:]
	switch kind {
	case KindCoach:
		coach, err := decodeCoach(rest)
		if err != nil {
			return nil, err
		}
		return NewCoach(base, coach), nil
	default:
		wrestler, err := decodeWrestler(rest)
		if err != nil {
			return nil, err
		}
		return NewWrestler(base, wrestler), nil
	}
}

func decodeBase(kind Kind, fields []string) (Base, error) {
	if len(fields) < BaseFieldCount {
		return Base{}, &ParseError{
			Kind:  kind,
			Field: baseAttributes[len(fields)].Name,
			Err:   fmt.Errorf("%w: need %d base fields, got %d", ErrMissingFields, BaseFieldCount, len(fields)),
		}
	}

	var base Base
	var err error
	if base.LastName, err = requireText(kind, AttrLastName, fields[0]); err != nil {
		return Base{}, err
	}
	if base.FirstName, err = requireText(kind, AttrFirstName, fields[1]); err != nil {
		return Base{}, err
	}
	if base.Gender, err = ParseGender(fields[2]); err != nil {
		return Base{}, fieldError(kind, AttrGender, fields[2], err)
	}
	if base.School, err = requireText(kind, AttrSchool, fields[3]); err != nil {
		return Base{}, err
	}
	if base.YearsOfExperience, err = parseCount(kind, AttrYearsOfExperience, fields[4]); err != nil {
		return Base{}, err
	}

	return base, nil
}

func decodeCoach(fields []string) (Coach, error) {
	if len(fields) < len(coachAttributes) {
		return Coach{}, &ParseError{
			Kind:  KindCoach,
			Field: AttrCoachType,
			Err:   fmt.Errorf("%w: need %d coach fields, got %d", ErrMissingFields, len(coachAttributes), len(fields)),
		}
	}

	coachType, err := ParseCoachType(fields[0])
	if err != nil {
		return Coach{}, fieldError(KindCoach, AttrCoachType, fields[0], err)
	}

	return Coach{Type: coachType}, nil
}

func decodeWrestler(fields []string) (Wrestler, error) {
	if len(fields) < len(wrestlerAttributes) {
		return Wrestler{}, &ParseError{
			Kind:  KindWrestler,
			Field: wrestlerAttributes[len(fields)].Name,
			Err:   fmt.Errorf("%w: need %d wrestler fields, got %d", ErrMissingFields, len(wrestlerAttributes), len(fields)),
		}
	}

	var w Wrestler
	var err error
	if w.Birthdate, err = ParseDate(fields[0]); err != nil {
		return Wrestler{}, fieldError(KindWrestler, AttrBirthdate, fields[0], err)
	}
	if w.Weight, err = parseWeight(fields[1]); err != nil {
		return Wrestler{}, fieldError(KindWrestler, AttrWeight, fields[1], err)
	}
	// fields[2] is the stored weight category; it is derived from weight and gender, so it is ignored.
	if w.Wins, err = parseCount(KindWrestler, AttrWins, fields[3]); err != nil {
		return Wrestler{}, err
	}
	if w.Losses, err = parseCount(KindWrestler, AttrLosses, fields[4]); err != nil {
		return Wrestler{}, err
	}
	if w.TotalPoints, err = parseCount(KindWrestler, AttrTotalPoints, fields[5]); err != nil {
		return Wrestler{}, err
	}
	if w.WinsByPin, err = parseCount(KindWrestler, AttrWinsByPin, fields[6]); err != nil {
		return Wrestler{}, err
	}
	if w.WinsByPin > w.Wins {
		return Wrestler{}, fieldError(KindWrestler, AttrWinsByPin, fields[6],
			fmt.Errorf("%w: wins by pin exceeds wins (%d)", ErrInvalidValue, w.Wins))
	}
	if w.Status, err = ParseWrestlerStatus(fields[7]); err != nil {
		return Wrestler{}, fieldError(KindWrestler, AttrStatus, fields[7], err)
	}
	if w.UniformSignedOut, err = strconv.ParseBool(strings.TrimSpace(fields[8])); err != nil {
		return Wrestler{}, fieldError(KindWrestler, AttrUniformSignedOut, fields[8], fmt.Errorf("%w: %v", ErrInvalidValue, err))
	}

	return w, nil
}

func requireText(kind Kind, field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", &ParseError{Kind: kind, Field: field, Err: ErrEmptyField}
	}
	return value, nil
}

func parseCount(kind Kind, field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fieldError(kind, field, value, fmt.Errorf("%w: not an integer", ErrInvalidValue))
	}
	if n < 0 {
		return 0, fieldError(kind, field, value, fmt.Errorf("%w: must be >= 0", ErrInvalidValue))
	}
	return n, nil
}

func parseWeight(value string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: not a number", ErrInvalidValue)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("%w: must be a finite number", ErrInvalidValue)
	}
	if w < 0 {
		return 0, fmt.Errorf("%w: must be >= 0", ErrInvalidValue)
	}
	return w, nil
}

// ParseDate accepts MM/dd/yyyy with or without zero padding.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: expected MM/dd/yyyy", ErrInvalidValue)
}

func fieldError(kind Kind, field, value string, err error) *ParseError {
	return &ParseError{Kind: kind, Field: field, Value: value, Err: err}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
