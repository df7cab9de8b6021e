// Package redact provides utilities for redacting sensitive information
// from strings before they are logged or returned in error responses. For a
// local-first application the main hazards are database file paths, raw SQL
// fragments, and driver error text that names files or hosts.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder    = "[REDACTED]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
	RedactedSQLPlaceholder  = "[REDACTED_SQL]"
)

// Precompiled regex patterns
var (
	// File paths (the SQLite database location in particular)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)

	// SQL queries and fragments surfacing from driver errors
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX|VIEW)(?:[\s\w,*()='"]+)?`,
	)

	// Stack trace fragments
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// Driver diagnostics that leak file or position detail
	lineNumberRegex = regexp.MustCompile(`(?:at )?line ?\d+`)
	fileErrorRegex  = regexp.MustCompile(
		`(?i)(?:no such file|file not found|unable to open database file|cannot open)`,
	)

	// Host names with optional ports
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	patterns = []*regexp.Regexp{
		unixPathRegex, winPathRegex, sqlRegex, stackTraceRegex,
		lineNumberRegex, fileErrorRegex, hostPortRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		unixPathRegex:   RedactedPathPlaceholder,
		winPathRegex:    RedactedPathPlaceholder,
		sqlRegex:        RedactedSQLPlaceholder,
		stackTraceRegex: "[STACK_TRACE_REDACTED]",
		lineNumberRegex: "[REDACTED_LINE_NUMBER]",
		fileErrorRegex:  "[REDACTED_FILE_ERROR]",
		hostPortRegex:   "[REDACTED_HOST]",
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
