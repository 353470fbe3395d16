package member

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind identifies the concrete variant of a Member. The value doubles as the
// type tag written at the start of every roster line.
type Kind string

const (
	KindCoach    Kind = "Coach"
	KindWrestler Kind = "Wrestler"
)

// AllKinds lists the variants in their canonical order.
var AllKinds = []Kind{KindCoach, KindWrestler}

func ParseKind(v string) (Kind, error) {
	switch Kind(strings.TrimSpace(v)) {
	case KindCoach:
		return KindCoach, nil
	case KindWrestler:
		return KindWrestler, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, v)
	}
}

type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
)

var AllGenders = []Gender{GenderMale, GenderFemale}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return fmt.Sprintf("Gender(%d)", int(g))
	}
}

func ParseGender(v string) (Gender, error) {
	switch strings.TrimSpace(v) {
	case "Male":
		return GenderMale, nil
	case "Female":
		return GenderFemale, nil
	default:
		return 0, fmt.Errorf("%w: gender %q", ErrInvalidValue, v)
	}
}

type CoachType int

const (
	CoachHandsOn CoachType = iota
	CoachSupport
)

func (c CoachType) String() string {
	switch c {
	case CoachHandsOn:
		return "Hands-on"
	case CoachSupport:
		return "Support"
	default:
		return fmt.Sprintf("CoachType(%d)", int(c))
	}
}

func ParseCoachType(v string) (CoachType, error) {
	switch strings.TrimSpace(v) {
	case "Hands-on":
		return CoachHandsOn, nil
	case "Support":
		return CoachSupport, nil
	default:
		return 0, fmt.Errorf("%w: coach type %q", ErrInvalidValue, v)
	}
}

type WrestlerStatus int

const (
	StatusActive WrestlerStatus = iota
	StatusInjured
	StatusQuit
)

func (s WrestlerStatus) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInjured:
		return "Injured"
	case StatusQuit:
		return "Quit"
	default:
		return fmt.Sprintf("WrestlerStatus(%d)", int(s))
	}
}

func ParseWrestlerStatus(v string) (WrestlerStatus, error) {
	switch strings.TrimSpace(v) {
	case "Active":
		return StatusActive, nil
	case "Injured":
		return StatusInjured, nil
	case "Quit":
		return StatusQuit, nil
	default:
		return 0, fmt.Errorf("%w: wrestler status %q", ErrInvalidValue, v)
	}
}

// Base holds the attributes every roster entry shares.
type Base struct {
	// ID is an in-process identity; it is never written to roster files.
	ID                string
	FirstName         string
	LastName          string
	Gender            Gender
	School            string
	YearsOfExperience int
}

func (b Base) Validate() error {
	if strings.TrimSpace(b.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidMember)
	}
	if strings.TrimSpace(b.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidMember)
	}
	if b.Gender != GenderMale && b.Gender != GenderFemale {
		return fmt.Errorf("%w: unknown gender %d", ErrInvalidMember, int(b.Gender))
	}
	if strings.TrimSpace(b.School) == "" {
		return fmt.Errorf("%w: school is required", ErrInvalidMember)
	}
	if b.YearsOfExperience < 0 {
		return fmt.Errorf("%w: years of experience must be >= 0", ErrInvalidMember)
	}
	return nil
}

func (b Base) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

type Coach struct {
	Type CoachType
}

type Wrestler struct {
	Birthdate        time.Time
	Weight           float64
	Wins             int
	Losses           int
	WinsByPin        int
	TotalPoints      int
	Status           WrestlerStatus
	UniformSignedOut bool
}

func (w *Wrestler) Validate() error {
	switch {
	case w.Weight < 0 || math.IsNaN(w.Weight) || math.IsInf(w.Weight, 0):
		return fmt.Errorf("%w: weight must be a non-negative number", ErrInvalidMember)
	case w.Wins < 0:
		return fmt.Errorf("%w: wins must be >= 0", ErrInvalidMember)
	case w.Losses < 0:
		return fmt.Errorf("%w: losses must be >= 0", ErrInvalidMember)
	case w.TotalPoints < 0:
		return fmt.Errorf("%w: total points must be >= 0", ErrInvalidMember)
	case w.WinsByPin < 0 || w.WinsByPin > w.Wins:
		return fmt.Errorf("%w: wins by pin must be between 0 and wins", ErrInvalidMember)
	}
	switch w.Status {
	case StatusActive, StatusInjured, StatusQuit:
	default:
		return fmt.Errorf("%w: unknown wrestler status %d", ErrInvalidMember, int(w.Status))
	}
	return nil
}

func (w *Wrestler) TotalMatches() int {
	return w.Wins + w.Losses
}

// WinPercentage is NaN for a wrestler without matches.
func (w *Wrestler) WinPercentage() float64 {
	return ratio(w.Wins, w.TotalMatches()) * 100
}

// LossPercentage is NaN for a wrestler without matches.
func (w *Wrestler) LossPercentage() float64 {
	return ratio(w.Losses, w.TotalMatches()) * 100
}

// AverageMatchPoints is NaN for a wrestler without matches.
func (w *Wrestler) AverageMatchPoints() float64 {
	return ratio(w.TotalPoints, w.TotalMatches())
}

// WeightClassifier maps a gender and raw weight to a weight category.
type WeightClassifier interface {
	Classify(gender Gender, weight float64) (float64, error)
}

// Member is a roster entry: shared base fields plus exactly one variant payload.
type Member struct {
	Base
	Coach    *Coach
	Wrestler *Wrestler
}

func NewCoach(base Base, coach Coach) *Member {
	return &Member{Base: base, Coach: &coach}
}

func NewWrestler(base Base, wrestler Wrestler) *Member {
	return &Member{Base: base, Wrestler: &wrestler}
}

// NewDefault builds a member of the given kind with the kind specific fields at
// their defaults.
func NewDefault(kind Kind, base Base) (*Member, error) {
	switch kind {
	case KindCoach:
		return NewCoach(base, Coach{Type: CoachHandsOn}), nil
	case KindWrestler:
		return NewWrestler(base, Wrestler{Status: StatusActive}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Kind reports the variant carried by m, or "" when no payload is set.
func (m *Member) Kind() Kind {
	switch {
	case m == nil:
		return ""
	case m.Wrestler != nil:
		return KindWrestler
	case m.Coach != nil:
		return KindCoach
	default:
		return ""
	}
}

func (m *Member) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: member is nil", ErrInvalidMember)
	}
	if m.Coach != nil && m.Wrestler != nil {
		return fmt.Errorf("%w: member carries both coach and wrestler fields", ErrInvalidMember)
	}
	if err := m.Base.Validate(); err != nil {
		return err
	}
	switch m.Kind() {
	case KindCoach:
		if m.Coach.Type != CoachHandsOn && m.Coach.Type != CoachSupport {
			return fmt.Errorf("%w: unknown coach type %d", ErrInvalidMember, int(m.Coach.Type))
		}
		return nil
	case KindWrestler:
		return m.Wrestler.Validate()
	default:
		return fmt.Errorf("%w: member has no kind", ErrInvalidMember)
	}
}

// WeightCategory derives the wrestler's weight class from its current weight.
func (m *Member) WeightCategory(classifier WeightClassifier) (float64, error) {
	if m.Kind() != KindWrestler {
		return 0, fmt.Errorf("%w: weight category needs a wrestler, got %q", ErrKindMismatch, m.Kind())
	}
	if classifier == nil {
		return 0, errors.New("weight classifier is required")
	}
	return classifier.Classify(m.Gender, m.Wrestler.Weight)
}

func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	out := &Member{Base: m.Base}
	if m.Coach != nil {
		c := *m.Coach
		out.Coach = &c
	}
	if m.Wrestler != nil {
		w := *m.Wrestler
		out.Wrestler = &w
	}
	return out
}

func ratio(n, d int) float64 {
	if d == 0 {
		return math.NaN()
	}
	return float64(n) / float64(d)
}
