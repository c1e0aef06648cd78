package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"shodan/internal/ark"
	"shodan/internal/weighting"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 10
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", message)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resultLines renders the tier outcome for a scored title.
func resultLines(result weighting.Result, colorize bool) []string {
	switch result.Tier {
	case weighting.TierShadow:
		return []string{renderStatusLine("Tier", statusWarn, fmt.Sprintf("%s (%s)", result.Tier, result.Label), colorize)}
	case weighting.TierOverride:
		return []string{
			renderStatusLine("Tier", statusInfo, string(result.Tier), colorize),
			renderStatusLine("Weight", statusOK, formatWeight(result.Score)+" / 10.0", colorize),
		}
	default:
		return []string{
			renderStatusLine("Tier", statusInfo, string(result.Tier), colorize),
			renderStatusLine("Weight", weightKind(result.Score), formatWeight(result.Score)+" / 10.0", colorize),
		}
	}
}

func weightKind(weight float64) statusKind {
	switch {
	case weight > ark.HighValueThreshold:
		return statusOK
	case weight < ark.SlopThreshold:
		return statusError
	default:
		return statusInfo
	}
}

// verdictLines renders the acquisition judgement and its peers.
func verdictLines(verdict ark.Verdict, colorize bool) []string {
	var lines []string
	switch verdict.Kind {
	case ark.VerdictSecured:
		ids := make([]string, 0, len(verdict.Secured))
		for _, rec := range verdict.Secured {
			ids = append(ids, rec.ID)
		}
		lines = append(lines, renderStatusLine("Verdict", statusOK, "already secured in the ark ("+strings.Join(ids, ", ")+")", colorize))
		return lines
	case ark.VerdictHighValue:
		lines = append(lines, renderStatusLine("Verdict", statusOK, "high value target, consider acquisition", colorize))
	case ark.VerdictSlop:
		lines = append(lines, renderStatusLine("Verdict", statusError, "slop, ignore", colorize))
	default:
		lines = append(lines, renderStatusLine("Verdict", statusInfo, "no action", colorize))
	}
	if len(verdict.Peers) > 0 {
		names := make([]string, 0, len(verdict.Peers))
		for _, peer := range verdict.Peers {
			names = append(names, fmt.Sprintf("%s (%s)", peer.Title, formatWeight(peer.Weight)))
		}
		lines = append(lines, renderStatusLine("Peers", statusInfo, strings.Join(names, ", "), colorize))
	}
	return lines
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
