package diagnosis

import (
	"strings"
)

// FormatLong renders the title, the explanation and the remediation steps as
// a bulleted list.
func FormatLong(d Diagnosis) string {
	var builder strings.Builder

	builder.WriteString(d.Title)
	builder.WriteString("\n\n")
	builder.WriteString(d.Explanation)

	if len(d.RemediationSteps) > 0 {
		builder.WriteString("\n\nWhat you can do:")
		for _, step := range d.RemediationSteps {
			builder.WriteString("\n  - ")
			builder.WriteString(step)
		}
	}

	return builder.String()
}

// FormatShort renders the message followed by the first remediation step.
func FormatShort(d Diagnosis) string {
	if len(d.RemediationSteps) == 0 {
		return d.Message
	}
	return d.Message + " " + d.RemediationSteps[0]
}
