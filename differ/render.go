package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Style selects one of the CLI's four rendering styles (spec §4.7
// "Formatting" / §6 CLI surface `-f` flag).
type Style string

const (
	StyleOneline  Style = "oneline"
	StyleVerbose  Style = "verbose"
	StyleMarkdown Style = "markdown"
	StyleGitHub   Style = "github"
)

// Render writes breakages to w in the requested style. Color is applied via
// fatih/color, which already honors NO_COLOR/FORCE_COLOR through its
// package-level NoColor detection (spec §6 "Environment variables
// consulted: FORCE_COLOR").
func Render(w io.Writer, breakages []Breakage, style Style) error {
	switch style {
	case StyleMarkdown:
		return renderMarkdown(w, breakages)
	case StyleGitHub:
		return renderGitHub(w, breakages)
	case StyleVerbose:
		return renderVerbose(w, breakages)
	default:
		return renderOneline(w, breakages)
	}
}

func renderOneline(w io.Writer, breakages []Breakage) error {
	kindColor := color.New(color.FgRed, color.Bold)
	for _, b := range breakages {
		if _, err := fmt.Fprintf(w, "%s: %s: %s\n", b.OldPath, kindColor.Sprint(b.Kind), b.Explanation); err != nil {
			return err
		}
	}
	return nil
}

func renderVerbose(w io.Writer, breakages []Breakage) error {
	kindColor := color.New(color.FgRed, color.Bold)
	pathColor := color.New(color.FgCyan)
	for _, b := range breakages {
		if _, err := fmt.Fprintf(w, "%s\n  old: %s\n  new: %s\n  at:  %s:%d\n  %s\n\n",
			kindColor.Sprint(b.Kind), pathColor.Sprint(b.OldPath), pathColor.Sprint(b.NewPath), b.File, b.Line, b.Explanation); err != nil {
			return err
		}
	}
	return nil
}

func renderMarkdown(w io.Writer, breakages []Breakage) error {
	if _, err := fmt.Fprintln(w, "| Kind | Old | New | Location | Explanation |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "|---|---|---|---|---|"); err != nil {
		return err
	}
	for _, b := range breakages {
		loc := fmt.Sprintf("%s:%d", b.File, b.Line)
		row := []string{string(b.Kind), b.OldPath, b.NewPath, loc, escapeMarkdown(b.Explanation)}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// renderGitHub emits GitHub Actions workflow-command annotations
// (`::error file=...,line=...::message`), consumed directly by a check run
// without any further parsing on GitHub's side.
func renderGitHub(w io.Writer, breakages []Breakage) error {
	for _, b := range breakages {
		msg := strings.ReplaceAll(fmt.Sprintf("%s: %s", b.Kind, b.Explanation), "\n", "%0A")
		if b.File != "" {
			if _, err := fmt.Fprintf(w, "::error file=%s,line=%d::%s\n", b.File, b.Line, msg); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "::error::%s\n", msg); err != nil {
			return err
		}
	}
	return nil
}
