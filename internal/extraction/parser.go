// Package extraction turns the extraction service's labeled-line reply into
// a RawAttributeRecord and builds the prompts that request it.
package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// Labels of the reply format, one "Label: value" per line.
const (
	LabelPosition   = "Position"
	LabelExperience = "Experience"
	LabelSalary     = "Salary"
	LabelLocation   = "Location"
	LabelCompany    = "Company"
	LabelStack      = "Stack"
	LabelCategory   = "Category"
	LabelLanguage   = "Programming language"
)

var labelRes = map[string]*regexp.Regexp{}

func init() {
	for _, l := range []string{
		LabelPosition, LabelExperience, LabelSalary, LabelLocation,
		LabelCompany, LabelStack, LabelCategory, LabelLanguage,
	} {
		labelRes[l] = regexp.MustCompile(`(?m)^[ \t*\-]*` + regexp.QuoteMeta(l) + `:[ \t]*(.*?)[ \t\r]*$`)
	}
}

var numberRe = regexp.MustCompile(`\d+`)

// Parse reads a labeled-line block. Missing labels and blank values become
// domain.Empty; closed-set fields outside their set become domain.Empty.
// Only the attribute fields of the record are filled.
func Parse(block string) domain.RawAttributeRecord {
	return domain.RawAttributeRecord{
		Position:            field(block, LabelPosition),
		Experience:          domain.InSetOrEmpty(field(block, LabelExperience), domain.Experiences),
		Salary:              RepairSalary(field(block, LabelSalary)),
		Location:            domain.InSetOrEmpty(field(block, LabelLocation), domain.Locations),
		Company:             field(block, LabelCompany),
		Stack:               SplitList(field(block, LabelStack)),
		Category:            domain.InSetOrEmpty(field(block, LabelCategory), domain.Categories),
		ProgrammingLanguage: SplitList(field(block, LabelLanguage)),
	}
}

func field(block, label string) string {
	m := labelRes[label].FindStringSubmatch(block)
	if m == nil || m[1] == "" {
		return domain.Empty
	}
	return m[1]
}

// RepairSalary fills a missing bound: "from empty to 800 USD" becomes
// "from 800 to 800 USD". When no non-zero number is present the whole
// salary is unknown.
func RepairSalary(salary string) string {
	if !strings.Contains(salary, " "+domain.Empty+" ") {
		return salary
	}
	num := numberRe.FindString(salary)
	if n, err := strconv.ParseInt(num, 10, 64); err != nil || n == 0 {
		return domain.Empty
	}
	return strings.ReplaceAll(salary, domain.Empty, num)
}

// SplitList splits a comma-separated value into trimmed, non-blank items.
func SplitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{domain.Empty}
	}
	return out
}

// ParseClassification reads the classifier reply: "1" for an IT vacancy.
func ParseClassification(reply string) bool {
	return strings.HasPrefix(strings.TrimSpace(reply), "1")
}
