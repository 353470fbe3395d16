package httpapi

import (
	"fmt"
	"math"
	"strings"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
	"github.com/riskibarqy/wrestling-roster/internal/usecase"
)

type createTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

type openTeamRequest struct {
	Path string `json:"path" validate:"required"`
}

type saveTeamRequest struct {
	Path string `json:"path"`
}

type changeKindRequest struct {
	Kind string `json:"kind" validate:"required,oneof=Coach Wrestler"`
}

type memberRequest struct {
	Kind              string  `json:"kind" validate:"required,oneof=Coach Wrestler"`
	FirstName         string  `json:"firstName" validate:"required"`
	LastName          string  `json:"lastName" validate:"required"`
	Gender            string  `json:"gender" validate:"required,oneof=Male Female"`
	School            string  `json:"school" validate:"required"`
	YearsOfExperience int     `json:"yearsOfExperience" validate:"gte=0"`
	CoachType         string  `json:"coachType" validate:"omitempty,oneof=Hands-on Support"`
	Birthdate         string  `json:"birthdate"`
	Weight            float64 `json:"weight" validate:"gte=0"`
	Wins              int     `json:"wins" validate:"gte=0"`
	Losses            int     `json:"losses" validate:"gte=0"`
	TotalPoints       int     `json:"totalPoints" validate:"gte=0"`
	WinsByPin         int     `json:"winsByPin" validate:"gte=0,ltefield=Wins"`
	Status            string  `json:"status" validate:"omitempty,oneof=Active Injured Quit"`
	UniformSignedOut  bool    `json:"uniformSignedOut"`
}

func (req memberRequest) toMember() (*member.Member, error) {
	gender, err := member.ParseGender(req.Gender)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	base := member.Base{
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Gender:            gender,
		School:            strings.TrimSpace(req.School),
		YearsOfExperience: req.YearsOfExperience,
	}

	switch member.Kind(req.Kind) {
	case member.KindCoach:
		coach := member.Coach{Type: member.CoachHandsOn}
		if req.CoachType != "" {
			if coach.Type, err = member.ParseCoachType(req.CoachType); err != nil {
				return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
			}
		}
		return member.NewCoach(base, coach), nil
	case member.KindWrestler:
		wrestler := member.Wrestler{
			Weight:           req.Weight,
			Wins:             req.Wins,
			Losses:           req.Losses,
			TotalPoints:      req.TotalPoints,
			WinsByPin:        req.WinsByPin,
			Status:           member.StatusActive,
			UniformSignedOut: req.UniformSignedOut,
		}
		if req.Birthdate != "" {
			if wrestler.Birthdate, err = member.ParseDate(req.Birthdate); err != nil {
				return nil, fmt.Errorf("%w: birthdate: %v", usecase.ErrInvalidInput, err)
			}
		}
		if req.Status != "" {
			if wrestler.Status, err = member.ParseWrestlerStatus(req.Status); err != nil {
				return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
			}
		}
		return member.NewWrestler(base, wrestler), nil
	default:
		return nil, fmt.Errorf("%w: unknown member kind %q", usecase.ErrInvalidInput, req.Kind)
	}
}

type teamSummaryDTO struct {
	Name     string `json:"name"`
	FilePath string `json:"filePath,omitempty"`
	Members  int    `json:"members"`
}

type teamDTO struct {
	Name     string      `json:"name"`
	FilePath string      `json:"filePath,omitempty"`
	Kinds    []string    `json:"kinds"`
	Members  []memberDTO `json:"members"`
}

type memberDTO struct {
	ID                string       `json:"id"`
	Kind              string       `json:"kind"`
	FirstName         string       `json:"firstName"`
	LastName          string       `json:"lastName"`
	Gender            string       `json:"gender"`
	School            string       `json:"school"`
	YearsOfExperience int          `json:"yearsOfExperience"`
	Coach             *coachDTO    `json:"coach,omitempty"`
	Wrestler          *wrestlerDTO `json:"wrestler,omitempty"`
}

type coachDTO struct {
	Type string `json:"type"`
}

type wrestlerDTO struct {
	Birthdate          string   `json:"birthdate,omitempty"`
	Weight             float64  `json:"weight"`
	WeightCategory     *float64 `json:"weightCategory,omitempty"`
	Wins               int      `json:"wins"`
	Losses             int      `json:"losses"`
	TotalPoints        int      `json:"totalPoints"`
	WinsByPin          int      `json:"winsByPin"`
	Status             string   `json:"status"`
	UniformSignedOut   bool     `json:"uniformSignedOut"`
	WinPercentage      *float64 `json:"winPercentage"`
	LossPercentage     *float64 `json:"lossPercentage"`
	AverageMatchPoints *float64 `json:"averageMatchPoints"`
}

type loadResultDTO struct {
	Path   string         `json:"path,omitempty"`
	Team   teamSummaryDTO `json:"team"`
	Report loadReportDTO  `json:"report"`
}

type loadReportDTO struct {
	Lines  int            `json:"lines"`
	Loaded int            `json:"loaded"`
	Errors int            `json:"errors"`
	Issues []loadIssueDTO `json:"issues,omitempty"`
}

type loadIssueDTO struct {
	Line    int    `json:"line"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type saveResultDTO struct {
	Team  string `json:"team"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

type statisticsDTO struct {
	TotalMembers          int      `json:"totalMembers"`
	WrestlerCount         int      `json:"wrestlerCount"`
	MaleWrestlerCount     int      `json:"maleWrestlerCount"`
	FemaleWrestlerCount   int      `json:"femaleWrestlerCount"`
	CoachCount            int      `json:"coachCount"`
	MaleCoachCount        int      `json:"maleCoachCount"`
	FemaleCoachCount      int      `json:"femaleCoachCount"`
	HandsOnCoachCount     int      `json:"handsOnCoachCount"`
	SupportCoachCount     int      `json:"supportCoachCount"`
	TotalMatches          int      `json:"totalMatches"`
	TotalWins             int      `json:"totalWins"`
	TotalLosses           int      `json:"totalLosses"`
	WinPercentage         *float64 `json:"winPercentage"`
	LossPercentage        *float64 `json:"lossPercentage"`
	TotalPoints           int      `json:"totalPoints"`
	TotalPinCount         int      `json:"totalPinCount"`
	AveragePointsPerMatch *float64 `json:"averagePointsPerMatch"`
}

type breakdownEntryDTO struct {
	WeightCategory float64 `json:"weightCategory"`
	All            int     `json:"all"`
	Male           int     `json:"male"`
	Female         int     `json:"female"`
}

type attributeDTO struct {
	Name   string `json:"name"`
	Order  int    `json:"order"`
	Header string `json:"header"`
}

// finite maps NaN and infinities to nil so they encode as JSON null.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func memberToDTO(details usecase.MemberDetails) memberDTO {
	m := details.Member
	out := memberDTO{
		ID:                m.ID,
		Kind:              string(m.Kind()),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Gender:            m.Gender.String(),
		School:            m.School,
		YearsOfExperience: m.YearsOfExperience,
	}
	if m.Coach != nil {
		out.Coach = &coachDTO{Type: m.Coach.Type.String()}
	}
	if w := m.Wrestler; w != nil {
		dto := &wrestlerDTO{
			Weight:             w.Weight,
			WeightCategory:     details.WeightCategory,
			Wins:               w.Wins,
			Losses:             w.Losses,
			TotalPoints:        w.TotalPoints,
			WinsByPin:          w.WinsByPin,
			Status:             w.Status.String(),
			UniformSignedOut:   w.UniformSignedOut,
			WinPercentage:      finite(w.WinPercentage()),
			LossPercentage:     finite(w.LossPercentage()),
			AverageMatchPoints: finite(w.AverageMatchPoints()),
		}
		if !w.Birthdate.IsZero() {
			dto.Birthdate = w.Birthdate.Format(member.DateLayout)
		}
		out.Wrestler = dto
	}
	return out
}

func membersToDTO(items []usecase.MemberDetails) []memberDTO {
	out := make([]memberDTO, 0, len(items))
	for _, item := range items {
		out = append(out, memberToDTO(item))
	}
	return out
}

func loadResultToDTO(result usecase.LoadResult) loadResultDTO {
	out := loadResultDTO{
		Path: result.Path,
		Team: teamSummaryDTO{
			Name:     result.Team.Name,
			FilePath: result.Team.FilePath,
			Members:  result.Team.TotalMembers(),
		},
		Report: loadReportDTO{
			Lines:  result.Report.Lines,
			Loaded: result.Report.Loaded,
			Errors: result.Report.Errors,
		},
	}
	for _, issue := range result.Report.Issues {
		out.Report.Issues = append(out.Report.Issues, loadIssueDTO{
			Line:    issue.Line,
			Tag:     issue.Tag,
			Message: issue.Err.Error(),
		})
	}
	return out
}

func statisticsToDTO(stats team.Statistics) statisticsDTO {
	return statisticsDTO{
		TotalMembers:          stats.TotalMembers,
		WrestlerCount:         stats.WrestlerCount,
		MaleWrestlerCount:     stats.MaleWrestlerCount,
		FemaleWrestlerCount:   stats.FemaleWrestlerCount,
		CoachCount:            stats.CoachCount,
		MaleCoachCount:        stats.MaleCoachCount,
		FemaleCoachCount:      stats.FemaleCoachCount,
		HandsOnCoachCount:     stats.HandsOnCoachCount,
		SupportCoachCount:     stats.SupportCoachCount,
		TotalMatches:          stats.TotalMatches,
		TotalWins:             stats.TotalWins,
		TotalLosses:           stats.TotalLosses,
		WinPercentage:         finite(stats.WinPercentage),
		LossPercentage:        finite(stats.LossPercentage),
		TotalPoints:           stats.TotalPoints,
		TotalPinCount:         stats.TotalPinCount,
		AveragePointsPerMatch: finite(stats.AveragePointsPerMatch),
	}
}
