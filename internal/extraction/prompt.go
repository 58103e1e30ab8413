package extraction

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// ClassifyPrompt asks whether text is an IT vacancy. The reply is "1" or "0".
func ClassifyPrompt(text string) string {
	return fmt.Sprintf(`You classify chat messages. You will see resumes, vacancies, ads and other messages.

Reply with exactly one character:
1 - the message is a vacancy for an IT role
0 - the message is a vacancy outside IT, or not a vacancy at all

A vacancy describes a company or team that is looking for someone and lists
requirements for the candidate.

IT roles include programmers of any language, DevOps, project and product
managers, UI/UX, motion, 3D and graphic designers, SMM specialists,
mobilographers, videographers and video editors.

Not IT: sales, brand and call-center managers, teachers and mentors (even of
programming), call operators, administrators, HR, assistants, brand faces.

Message:
%s`, text)
}

// ExtractPrompt asks for the labeled-line record of a vacancy.
func ExtractPrompt(text string) string {
	return fmt.Sprintf(`Extract the vacancy attributes from the message below.

Reply with exactly these eight lines and nothing else:
Position: <job title in English>
Experience: <one of: %s>
Salary: from <min> to <max> <ISO 4217 code>
Location: <one of: %s>
Company: <company name>
Stack: <comma-separated technologies>
Category: <one of: %s>
Programming language: <comma-separated languages>

Write "empty" for any attribute the message does not state. For a salary with
only one bound write "empty" for the other bound. Salaries are monthly; use
UZS for sums.

Message:
%s`,
		strings.Join(domain.Experiences, ", "),
		strings.Join(domain.Locations, ", "),
		strings.Join(domain.Categories, ", "),
		text,
	)
}
