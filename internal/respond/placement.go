package respond

import (
	"fmt"
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// PlacementSummary renders the headline statistics. When the user asked
// for one specific number (stat_type entity) only that line is returned;
// an unrecognized stat type falls back to the full card.
func PlacementSummary(s *storage.PlacementSummary, statType string) string {
	if s == nil {
		return "I'm sorry, I couldn't retrieve the overall placement summary."
	}

	switch statType {
	case "highest_ctc":
		if s.HighestCTC > 0 {
			return fmt.Sprintf("The %s was %s.", bold("Highest Salary"), bold(trimFloat(s.HighestCTC)+" LPA"))
		}
	case "average_ctc":
		if s.AverageCTC > 0 {
			return fmt.Sprintf("The %s was %s.", bold("Average Salary"), bold(trimFloat(s.AverageCTC)+" LPA"))
		}
	case "median_ctc":
		if s.MedianCTC > 0 {
			return fmt.Sprintf("The %s was %s.", bold("Median Salary"), bold(trimFloat(s.MedianCTC)+" LPA"))
		}
	case "lowest_ctc":
		if s.LowestCTC > 0 {
			return fmt.Sprintf("The %s was %s.", bold("Lowest Salary (Mass)"), bold(trimFloat(s.LowestCTC)+" LPA"))
		}
	case "total_selects":
		if s.TotalSelects > 0 {
			return fmt.Sprintf("There were %s.", bold(fmt.Sprintf("%d Total Selections", s.TotalSelects)))
		}
	case "total_companies":
		if s.TotalCompanies > 0 {
			return fmt.Sprintf("A total of %s visited for placements.", bold(fmt.Sprintf("%d Companies", s.TotalCompanies)))
		}
	}

	lines := []string{"Here are the key placement statistics:\n"}
	if s.HighestCTC > 0 {
		lines = append(lines, "• "+bold("Highest Salary:")+" "+trimFloat(s.HighestCTC)+" LPA")
	}
	if s.AverageCTC > 0 {
		lines = append(lines, "• "+bold("Average Salary:")+" "+trimFloat(s.AverageCTC)+" LPA")
	}
	if s.MedianCTC > 0 {
		lines = append(lines, "• "+bold("Median Salary:")+" "+trimFloat(s.MedianCTC)+" LPA")
	}
	if s.LowestCTC > 0 {
		lines = append(lines, "• "+bold("Lowest Salary (Mass):")+" "+trimFloat(s.LowestCTC)+" LPA")
	}
	if s.TotalSelects > 0 {
		lines = append(lines, "• "+bold("Total Selections:")+" "+fmt.Sprintf("%d", s.TotalSelects))
	}
	if s.TotalCompanies > 0 {
		lines = append(lines, "• "+bold("Total Companies Visited:")+" "+fmt.Sprintf("%d", s.TotalCompanies))
	}
	if len(lines) == 1 {
		return "I'm sorry, I couldn't retrieve the overall placement summary."
	}
	return strings.Join(lines, "\n")
}

// CompanyStats renders one company's record, or a short list when the
// search term matched several companies.
func CompanyStats(companies []storage.PlacementCompany, searchTerm string) string {
	if len(companies) == 0 {
		return fmt.Sprintf("I'm sorry, I couldn't find any placement data for a company matching '%s'.", searchTerm)
	}

	if len(companies) == 1 {
		c := companies[0]
		lines := []string{fmt.Sprintf("Here are the stats for %s:", bold(c.CompanyName))}
		if c.CTC > 0 {
			line := "• " + bold("Offered CTC:") + " " + trimFloat(c.CTC) + " LPA"
			if c.CTCType != "" {
				line += " (" + c.CTCType + ")"
			}
			lines = append(lines, line)
		}
		lines = append(lines, "• "+bold("Number of Selections:")+" "+fmt.Sprintf("%d", c.NumSelects))
		return strings.Join(lines, "\n")
	}

	lines := []string{fmt.Sprintf("I found %d matches for '%s':\n", len(companies), searchTerm)}
	for _, c := range companies {
		lines = append(lines, fmt.Sprintf("• %s: %d selections at %s LPA",
			bold(c.CompanyName), c.NumSelects, trimFloat(c.CTC)))
	}
	return strings.Join(lines, "\n")
}

// PlacementCountByType reports how many companies offered a package type.
func PlacementCountByType(counts []storage.CTCTypeCount, ctcType string) string {
	total := 0
	for _, c := range counts {
		total += c.CompanyCount
	}
	if total == 0 {
		return fmt.Sprintf("I couldn't find any companies matching the type '%s'.", ctcType)
	}

	typeName := capitalize(ctcType)
	if total == 1 {
		return fmt.Sprintf("I found %s company that offered a '%s' package.", bold("1"), typeName)
	}
	return fmt.Sprintf("I found a total of %s companies that offered '%s' packages.",
		bold(fmt.Sprintf("%d", total)), typeName)
}

func ctcOperatorText(op storage.CTCOperator) string {
	if op == storage.CTCAbove {
		return "more than"
	}
	return "less than"
}

// PlacementCountByCTC reports students and companies above or below a
// CTC threshold.
func PlacementCountByCTC(agg *storage.CTCAggregate, op storage.CTCOperator, amount float64) string {
	if agg == nil {
		return "I'm sorry, I couldn't calculate the placement data for that CTC range."
	}
	opText := ctcOperatorText(op)
	if agg.TotalCompanies == 0 {
		return fmt.Sprintf("I couldn't find any companies that offered packages %s %s LPA.", opText, trimFloat(amount))
	}

	return fmt.Sprintf("I found that %s were placed by %s with a CTC *%s* %s.",
		bold(fmt.Sprintf("%d %s", agg.TotalStudents, plural(agg.TotalStudents, "student", "students"))),
		bold(fmt.Sprintf("%d %s", agg.TotalCompanies, plural(agg.TotalCompanies, "company", "companies"))),
		opText,
		bold(trimFloat(amount)+" LPA"))
}

// PlacementCompaniesByCTC lists companies above or below a CTC threshold.
func PlacementCompaniesByCTC(companies []storage.PlacementCompany, op storage.CTCOperator, amount float64) string {
	opText := ctcOperatorText(op)
	if len(companies) == 0 {
		return fmt.Sprintf("I'm sorry, I couldn't find any companies that offered packages %s %s LPA.", opText, trimFloat(amount))
	}

	lines := []string{fmt.Sprintf("Here are the companies with a CTC %s:\n", bold(opText+" "+trimFloat(amount)+" LPA"))}
	for _, c := range companies {
		lines = append(lines, fmt.Sprintf("• %s: %s LPA (%d selections)",
			bold(c.CompanyName), trimFloat(c.CTC), c.NumSelects))
	}
	return strings.Join(lines, "\n")
}
