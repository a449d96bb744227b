package gui

import (
	"strings"
	"unicode"
)

// wrapHyphen marks a word broken across lines by WrapLetters.
const wrapHyphen = "-"

// WrapLetters wraps text so that no line is wider than maxWidth. Lines break
// at whitespace or after punctuation when possible; otherwise the word is
// split and a hyphen appended. Existing newlines are kept, and whitespace at
// the start of a wrapped continuation line is dropped.
//
// It returns the wrapped text and the width of its widest line, which may
// be smaller than maxWidth and is meant for sizing the container.
func WrapLetters(f Font, text string, maxWidth int) (string, int) {
	paragraphs := strings.Split(text, "\n")
	var out strings.Builder
	used := 0
	for pi, para := range paragraphs {
		if pi > 0 {
			out.WriteByte('\n')
		}
		var lines []string
		if maxWidth <= 0 {
			lines = []string{para}
		} else {
			lines = wrapParagraph(f, []rune(para), maxWidth)
		}
		for li, line := range lines {
			if li > 0 {
				out.WriteByte('\n')
			}
			out.WriteString(line)
			used = max(used, f.Width(line))
		}
	}
	return out.String(), used
}

// wrapParagraph wraps a paragraph without newlines.
func wrapParagraph(f Font, rs []rune, maxWidth int) []string {
	hyphenWidth := f.Width(wrapHyphen)
	var lines []string
	start := 0
	for start < len(rs) {
		// Longest prefix that fits without a hyphen.
		end := start
		for end < len(rs) && f.Width(string(rs[start:end+1])) <= maxWidth {
			end++
		}
		if end == len(rs) {
			lines = append(lines, string(rs[start:]))
			break
		}

		if p := naturalBreak(rs, start, end); p > start {
			lines = append(lines, strings.TrimRightFunc(string(rs[start:p]), unicode.IsSpace))
			start = p
		} else {
			// Force a mid-word break; the hyphen needs room too.
			for end > start+1 && f.Width(string(rs[start:end]))+hyphenWidth > maxWidth {
				end--
			}
			if end == start {
				end = start + 1 // always make progress
			}
			line := string(rs[start:end])
			if end > start+1 || f.Width(line)+hyphenWidth <= maxWidth {
				line += wrapHyphen
			}
			lines = append(lines, line)
			start = end
		}

		for start < len(rs) && unicode.IsSpace(rs[start]) {
			start++
		}
	}
	return lines
}

// naturalBreak returns the last position p in (start, end] where the line
// can end without a hyphen, or start if there is none.
func naturalBreak(rs []rune, start, end int) int {
	for p := end; p > start; p-- {
		if isBreakBefore(rs[p]) || isBreakAfter(rs[p-1]) {
			return p
		}
	}
	return start
}

func isBreakBefore(r rune) bool {
	return unicode.IsSpace(r) || isCJKRune(r)
}

func isBreakAfter(r rune) bool {
	return unicode.IsSpace(r) || isCJKRune(r) || (unicode.IsPunct(r) && r != '\'')
}

// isCJKRune returns true if the rune is a CJK character. CJK text may break
// between any two characters.
func isCJKRune(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.In(r, unicode.Bopomofo) ||
		unicode.In(r, unicode.Yi)
}

// TruncateText truncates text to fit within maxWidth, adding ".." if needed.
func TruncateText(f Font, text string, maxWidth int) string {
	return TruncateTextWithSuffix(f, text, maxWidth, "..")
}

// TruncateTextWithSuffix truncates text and adds a custom suffix.
func TruncateTextWithSuffix(f Font, text string, maxWidth int, suffix string) string {
	if f.Width(text) <= maxWidth {
		return text
	}

	runes := []rune(text)
	targetWidth := maxWidth - f.Width(suffix)

	for len(runes) > 0 {
		if f.Width(string(runes)) <= targetWidth {
			return string(runes) + suffix
		}
		runes = runes[:len(runes)-1]
	}

	return suffix
}
