package awards

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// OscarWeight is added once per Oscar won.
	OscarWeight = 0.1
	// WinWeight is added once per non-Oscar win.
	WinWeight = 0.01
	// NominationWeight is added once per nomination.
	NominationWeight = 0.01
)

// NotApplicable is the marker metadata sources use for an empty field.
const NotApplicable = "N/A"

var (
	oscarPattern      = regexp.MustCompile(`(?i)\bwon\s+(\d+)\s+oscars?\b`)
	winPattern        = regexp.MustCompile(`(?i)\b(\d+)\s+wins?\b`)
	nominationPattern = regexp.MustCompile(`(?i)\b(\d+)\s+nominations?\b`)
)

// Counts holds the raw numbers extracted from an awards summary.
type Counts struct {
	Oscars      int `json:"oscars"`
	Wins        int `json:"wins"`
	Nominations int `json:"nominations"`
}

// Bonus converts counts into the uncapped additive bonus.
func (c Counts) Bonus() float64 {
	return float64(c.Oscars)*OscarWeight +
		float64(c.Wins)*WinWeight +
		float64(c.Nominations)*NominationWeight
}

// Empty reports whether nothing was extracted.
func (c Counts) Empty() bool {
	return c.Oscars == 0 && c.Wins == 0 && c.Nominations == 0
}

// Parse extracts counts from text. Only the first "Won N Oscar(s)" clause
// counts; every "N win(s)" and "N nomination(s)" clause is summed. Empty or
// not-applicable text yields zero counts.
func Parse(text string) Counts {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, NotApplicable) {
		return Counts{}
	}
	var counts Counts
	if match := oscarPattern.FindStringSubmatch(trimmed); match != nil {
		counts.Oscars = atoi(match[1])
	}
	counts.Wins = sumMatches(winPattern, trimmed)
	counts.Nominations = sumMatches(nominationPattern, trimmed)
	return counts
}

// ParseBonus returns the additive bonus for text. It never fails; text that
// matches no pattern contributes exactly 0.0.
func ParseBonus(text string) float64 {
	counts := Parse(text)
	if counts.Empty() {
		return 0
	}
	return counts.Bonus()
}

// sumMatches adds every captured count, saturating at math.MaxInt.
func sumMatches(pattern *regexp.Regexp, text string) int {
	total := 0
	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		n := atoi(match[1])
		if total > math.MaxInt-n {
			return math.MaxInt
		}
		total += n
	}
	return total
}

// atoi parses a digit run. Runs too large for int saturate at math.MaxInt
// so an absurd count still earns the largest bonus rather than none.
func atoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}
