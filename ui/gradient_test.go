package ui

import (
	"regexp"
	"strings"
	"testing"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestGradientText_EmptyString(t *testing.T) {
	if got := GradientText("", "#34D399", "#047857"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestGradientText_KeepsText(t *testing.T) {
	result := GradientText("GrowLens", "#FF0000", "#0000FF")
	if stripAnsi(result) != "GrowLens" {
		t.Errorf("expected plain text to survive, got %q", stripAnsi(result))
	}
	if !strings.HasSuffix(result, "\033[0m") {
		t.Errorf("expected ANSI reset at end")
	}
}

func TestGradientText_Endpoints(t *testing.T) {
	result := GradientText("AB", "#FF0000", "#0000FF")
	if !strings.HasPrefix(result, "\033[38;2;255;0;0mA") {
		t.Errorf("first rune should use the start colour, got %q", result)
	}
	if !strings.Contains(result, "\033[38;2;0;0;255mB") {
		t.Errorf("last rune should use the end colour, got %q", result)
	}
}

func TestGradientText_PreservesNewlines(t *testing.T) {
	result := GradientText("AB\nCD", "#FF0000", "#0000FF")
	if stripAnsi(result) != "AB\nCD" {
		t.Errorf("expected newline preserved, got %q", stripAnsi(result))
	}
}

func TestParseHex(t *testing.T) {
	if c := parseHex("#34D399"); c != (rgb{0x34, 0xD3, 0x99}) {
		t.Errorf("expected (52, 211, 153), got %v", c)
	}
	if c := parseHex("nope"); c != (rgb{}) {
		t.Errorf("expected black for malformed input, got %v", c)
	}
}
