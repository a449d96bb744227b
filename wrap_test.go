package gui_test

import (
	"strings"
	"testing"

	"github.com/aethyra/gui"
)

func TestWrapLetters(t *testing.T) {
	f := &monoFont{}
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     string
		wantUsed int
	}{
		{"space break", "the quick brown fox", 100, "the quick\nbrown fox", 90},
		{"fits", "short", 100, "short", 50},
		{"forced hyphen", "abcdefghijklmno", 50, "abcd-\nefgh-\nijkl-\nmno", 50},
		{"after punctuation", "hello,world", 80, "hello,\nworld", 60},
		{"not after apostrophe", "don'tstop", 50, "don'-\ntstop", 50},
		{"cjk", "你好世界", 20, "你好\n世界", 20},
		{"continuation whitespace dropped", "aaaa    bbbb", 50, "aaaa\nbbbb", 40},
		{"leading whitespace kept", "  ab", 100, "  ab", 40},
		{"newlines kept", "ab\ncd", 100, "ab\ncd", 20},
		{"no limit", "the quick brown fox", 0, "the quick brown fox", 190},
		{"no room for hyphen", "abc", 15, "a\nb\nc", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, used := gui.WrapLetters(f, tt.text, tt.maxWidth)
			if got != tt.want {
				t.Errorf("WrapLetters = %q, want %q", got, tt.want)
			}
			if used != tt.wantUsed {
				t.Errorf("used width = %d, want %d", used, tt.wantUsed)
			}
		})
	}
}

func TestWrapLettersNeverExceedsWidth(t *testing.T) {
	f := &monoFont{}
	text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod " +
		"tempor incididunt ut labore et dolore magna aliqua. Supercalifragilisticexpialidocious!"
	for _, maxWidth := range []int{20, 35, 60, 110, 250} {
		got, used := gui.WrapLetters(f, text, maxWidth)
		if used > maxWidth {
			t.Errorf("maxWidth %d: used width %d", maxWidth, used)
		}
		for _, line := range strings.Split(got, "\n") {
			if w := f.Width(line); w > maxWidth {
				t.Errorf("maxWidth %d: line %q is %d wide", maxWidth, line, w)
			}
		}
	}
}

func TestTruncateText(t *testing.T) {
	f := &monoFont{}
	if got := gui.TruncateText(f, "abcdefghij", 60); got != "abcd.." {
		t.Errorf("TruncateText = %q", got)
	}
	if got := gui.TruncateText(f, "abc", 60); got != "abc" {
		t.Errorf("short text changed to %q", got)
	}
	if got := gui.TruncateTextWithSuffix(f, "abcdefghij", 10, "..."); got != "..." {
		t.Errorf("too narrow = %q", got)
	}
}
