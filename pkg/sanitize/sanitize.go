// Package sanitize screens free-form input for substrings commonly seen in
// injection attempts.
//
// The denylist check is advisory: it is a best-effort filter, trivially
// bypassable by encodings or patterns outside the list, and must not be
// relied on as a security boundary. Callers that need real guarantees should
// layer proper output encoding or a parser on top.
package sanitize

import (
	"strings"

	"github.com/hashicorp/go-hclog"
)

// denylist contains the substrings treated as signals of unsafe input.
// Matching is case-insensitive.
var denylist = []string{
	"<script>",
	"javascript:",
	"data:text/html",
	"vbscript:",
	"onload=",
	"onerror=",
}

// Result is the outcome of a single Check call.
type Result struct {
	// OK is true when no denylisted pattern was found in the input.
	OK bool

	// Pattern is the denylist entry that matched, empty when OK.
	Pattern string
}

// Checker screens input strings against the denylist.
type Checker struct {
	log hclog.Logger
}

// NewChecker creates a Checker. A nil logger disables diagnostics.
func NewChecker(log hclog.Logger) *Checker {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Checker{log: log}
}

// Check scans input for denylisted substrings. Empty input is rejected.
// The scan is case-insensitive and stops at the first match. Check never
// fails and has no side effects beyond a warning log on rejection.
func (c *Checker) Check(input string) Result {
	if input == "" {
		return Result{}
	}

	lower := strings.ToLower(input)
	for _, pattern := range denylist {
		if strings.Contains(lower, pattern) {
			c.log.Warn("potentially dangerous input detected", "pattern", pattern)
			return Result{Pattern: pattern}
		}
	}

	return Result{OK: true}
}

// Check screens input using a Checker without diagnostics. It is a
// convenience for callers that only need the boolean outcome.
func Check(input string) Result {
	return NewChecker(nil).Check(input)
}

// Patterns returns a copy of the denylist, for display purposes.
func Patterns() []string {
	out := make([]string, len(denylist))
	copy(out, denylist)
	return out
}
