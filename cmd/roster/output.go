package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
	"github.com/riskibarqy/wrestling-roster/internal/usecase"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// ratio renders n/a for the NaN ratios of a team without matches.
func ratio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func printReport(w io.Writer, result usecase.LoadResult) {
	report := result.Report
	fmt.Fprintf(w, "%s: %d line(s), %d loaded, %d error(s)\n", result.Path, report.Lines, report.Loaded, report.Errors)
	for _, issue := range report.Issues {
		fmt.Fprintf(w, "  line %d [%s]: %v\n", issue.Line, issue.Tag, issue.Err)
	}
}

func printStatistics(w io.Writer, stats team.Statistics) error {
	tw := newTable(w)
	rows := [][2]string{
		{"Total members", strconv.Itoa(stats.TotalMembers)},
		{"Wrestlers", strconv.Itoa(stats.WrestlerCount)},
		{"Male wrestlers", strconv.Itoa(stats.MaleWrestlerCount)},
		{"Female wrestlers", strconv.Itoa(stats.FemaleWrestlerCount)},
		{"Coaches", strconv.Itoa(stats.CoachCount)},
		{"Male coaches", strconv.Itoa(stats.MaleCoachCount)},
		{"Female coaches", strconv.Itoa(stats.FemaleCoachCount)},
		{"Hands-on coaches", strconv.Itoa(stats.HandsOnCoachCount)},
		{"Support coaches", strconv.Itoa(stats.SupportCoachCount)},
		{"Total matches", strconv.Itoa(stats.TotalMatches)},
		{"Total wins", strconv.Itoa(stats.TotalWins)},
		{"Total losses", strconv.Itoa(stats.TotalLosses)},
		{"Win percentage", ratio(stats.WinPercentage)},
		{"Loss percentage", ratio(stats.LossPercentage)},
		{"Total points", strconv.Itoa(stats.TotalPoints)},
		{"Total pin count", strconv.Itoa(stats.TotalPinCount)},
		{"Average points per match", ratio(stats.AveragePointsPerMatch)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

func printBreakdown(w io.Writer, entries []team.BreakdownEntry) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Weight Category\tAll\tMale\tFemale")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", strconv.FormatFloat(e.WeightCategory, 'f', -1, 64), e.All, e.Male, e.Female)
	}
	return tw.Flush()
}

func printMembers(w io.Writer, members []usecase.MemberDetails) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Kind\tLast Name\tFirst Name\tGender\tSchool\tYears\tWeight Category")
	for _, details := range members {
		m := details.Member
		category := "-"
		if details.WeightCategory != nil {
			category = strconv.FormatFloat(*details.WeightCategory, 'f', -1, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			m.Kind(), m.LastName, m.FirstName, m.Gender, m.School, m.YearsOfExperience, category)
	}
	return tw.Flush()
}

func printAttributes(w io.Writer, attrs []member.Attribute) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Order\tName\tHeader")
	for _, a := range attrs {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", a.Order, a.Name, a.Header())
	}
	return tw.Flush()
}
