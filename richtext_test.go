package gui_test

import (
	"image/color"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/aethyra/gui"
)

func newRichText(width int, opts ...gui.RichTextOption) (*gui.RichText, *monoFont) {
	f := &monoFont{}
	rt := gui.NewRichText(f, opts...)
	rt.SetWidth(width)
	return rt, f
}

func TestRichTextColorCodes(t *testing.T) {
	rt, _ := newRichText(400)
	rt.AddRow("##1Red##0Black")

	pal := gui.DefaultPalette()
	want := []gui.LinePart{
		{X: 0, Y: 0, Color: pal.Color('1'), Text: "Red"},
		{X: 30, Y: 0, Color: pal.Color('0'), Text: "Black"},
	}
	if diff := cmp.Diff(want, rt.Parts()); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
}

func TestRichTextMalformedMarkupIsLiteral(t *testing.T) {
	tests := []struct {
		name, row string
	}{
		{"unknown code", "##zfoo"},
		{"trailing marker", "abc##"},
		{"unterminated link", "see @@http://x|here"},
		{"link without caption separator", "@@nothing@@"},
		{"link with empty caption", "see @@http://x|@@ ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, _ := newRichText(400)
			rt.AddRow(tt.row)
			parts := rt.Parts()
			if len(parts) != 1 || parts[0].Text != tt.row {
				t.Errorf("parts = %+v, want the row verbatim", parts)
			}
			if len(rt.Links()) != 0 {
				t.Errorf("malformed markup produced links: %+v", rt.Links())
			}
		})
	}
}

func TestRichTextLinks(t *testing.T) {
	rt, _ := newRichText(400)
	rt.AddRow("first row")
	rt.AddRow("see @@http://x|here@@ now")

	if got := rt.Rows()[1]; got != "see ##<here##> now" {
		t.Errorf("stored row = %q", got)
	}
	links := rt.Links()
	if len(links) != 1 {
		t.Fatalf("links = %+v", links)
	}
	l := links[0]
	if l.Target != "http://x" || l.Caption != "here" {
		t.Errorf("link = %q %q", l.Target, l.Caption)
	}
	if l.X1 != 40 || l.X2 != 80 || l.Y1 != 16 || l.Y2 != 32 {
		t.Errorf("link box = (%d,%d)-(%d,%d), want (40,16)-(80,32)", l.X1, l.Y1, l.X2, l.Y2)
	}

	pal := gui.DefaultPalette()
	parts := rt.Parts()
	if parts[2].Text != "here" || parts[2].Color != pal.Color(gui.CodeHyperlink) {
		t.Errorf("caption part = %+v", parts[2])
	}
	if parts[3].Text != " now" || parts[3].Color != pal.Color(gui.CodeDefault) {
		t.Errorf("link end should restore the previous color: %+v", parts[3])
	}

	if got, ok := rt.LinkAt(50, 20); !ok || got.Target != "http://x" {
		t.Errorf("LinkAt inside = %+v, %v", got, ok)
	}
	if _, ok := rt.LinkAt(85, 20); ok {
		t.Error("LinkAt outside the caption should miss")
	}
	if _, ok := rt.LinkAt(50, 5); ok {
		t.Error("LinkAt on another row should miss")
	}
}

func TestRichTextLinkRestoresColor(t *testing.T) {
	rt, _ := newRichText(400)
	rt.AddRow("##2go @@a|b@@ on")
	parts := rt.Parts()
	green := gui.DefaultPalette().Color('2')
	if last := parts[len(parts)-1]; last.Text != " on" || last.Color != green {
		t.Errorf("text after link = %+v, want green", last)
	}
}

func TestRichTextColorResetsPerRow(t *testing.T) {
	rt, _ := newRichText(400)
	rt.AddRow("##1red")
	rt.AddRow("plain")
	parts := rt.Parts()
	if parts[1].Color != gui.DefaultPalette().Color(gui.CodeDefault) || parts[1].Y != 16 {
		t.Errorf("second row = %+v", parts[1])
	}
}

func TestRichTextRule(t *testing.T) {
	rt, _ := newRichText(400)
	rt.AddRow("above")
	rt.AddRow("---")
	rt.AddRow("below")

	parts := rt.Parts()
	if len(parts) != 3 || !parts[1].Rule || parts[1].Y != 16 {
		t.Fatalf("parts = %+v", parts)
	}
	if parts[2].Y != 32 || rt.Height() != 48 {
		t.Errorf("rule should take one line: below at %d, height %d", parts[2].Y, rt.Height())
	}
}

func TestRichTextWrapsAtSpace(t *testing.T) {
	rt, _ := newRichText(100)
	rt.AddRow("aaaa bbbb cccc")

	want := []gui.LinePart{
		{X: 0, Y: 0, Color: gui.ColorBlack, Text: "aaaa bbbb"},
		{X: 15, Y: 16, Color: gui.ColorBlack, Text: "cccc"},
	}
	if diff := cmp.Diff(want, rt.Parts()); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
	if rt.Height() != 32 {
		t.Errorf("Height = %d", rt.Height())
	}
}

func TestRichTextForcedBreakKeepsUTF8(t *testing.T) {
	const row = "ééééééééé"
	rt, f := newRichText(60)
	rt.AddRow(row)

	var rebuilt strings.Builder
	markers := 0
	for _, p := range rt.Parts() {
		if !utf8.ValidString(p.Text) {
			t.Errorf("part %q is not valid UTF-8", p.Text)
		}
		if p.X+f.Width(p.Text) > 60 {
			t.Errorf("part %q at %d overflows the box", p.Text, p.X)
		}
		if p.Text == "~" {
			markers++
			if p.X != 50 {
				t.Errorf("wrap marker at %d, want right edge 50", p.X)
			}
			continue
		}
		rebuilt.WriteString(p.Text)
	}
	if rebuilt.String() != row {
		t.Errorf("wrapped text reassembles to %q", rebuilt.String())
	}
	if markers != 2 {
		t.Errorf("markers = %d, want 2", markers)
	}
	if rt.Height() != 48 {
		t.Errorf("Height = %d, want three lines", rt.Height())
	}
}

func TestRichTextNarrowBoxMakesProgress(t *testing.T) {
	rt, _ := newRichText(5)
	rt.AddRow("abc def")
	if n := len(rt.Parts()); n == 0 || n > 20 {
		t.Errorf("parts = %d", n)
	}
}

func TestRichTextMaxRows(t *testing.T) {
	rt, _ := newRichText(400, gui.WithMaxRows(2))
	rt.AddRow("@@old|gone@@")
	rt.AddRow("@@kept|still here@@")
	rt.AddRow("newest")

	if diff := cmp.Diff([]string{"##<still here##>", "newest"}, rt.Rows()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	links := rt.Links()
	if len(links) != 1 || links[0].Target != "kept" {
		t.Fatalf("links = %+v", links)
	}
	if links[0].Y1 != 0 {
		t.Errorf("surviving link moved to y %d, want 0", links[0].Y1)
	}
}

func TestRichTextAutoSize(t *testing.T) {
	rt, _ := newRichText(0, gui.WithRichTextMode(gui.AutoSize))
	rt.AddRow("abc")
	rt.AddRow("##3abcdef")
	rt.AddRow(strings.Repeat("x", 50))

	if rt.Width() != 500 {
		t.Errorf("Width = %d, want widest row", rt.Width())
	}
	if len(rt.Parts()) != 3 {
		t.Errorf("auto-size text should not wrap: %d parts", len(rt.Parts()))
	}
}

func TestRichTextWithoutMarkup(t *testing.T) {
	rt, _ := newRichText(400, gui.WithMarkup(false))
	rt.AddRow("##1 @@a|b@@")
	if parts := rt.Parts(); len(parts) != 1 || parts[0].Text != "##1 @@a|b@@" {
		t.Errorf("parts = %+v", parts)
	}
}

func TestRichTextCustomPalette(t *testing.T) {
	p := gui.DefaultPalette()
	p.Set('1', gui.ColorBlue)
	rt, _ := newRichText(400, gui.WithPalette(p))
	rt.AddRow("##1x")
	if got := rt.Parts()[0].Color; got != gui.ColorBlue {
		t.Errorf("color = %+v", got)
	}
}

func TestRichTextClearAndRelayout(t *testing.T) {
	rt, _ := newRichText(400)
	rt.AddRow("aaaa bbbb")
	if len(rt.Parts()) != 1 {
		t.Fatal("expected a single part")
	}
	rt.SetWidth(70)
	if len(rt.Parts()) != 2 {
		t.Errorf("narrowing should rewrap, parts = %+v", rt.Parts())
	}
	rt.Clear()
	if len(rt.Parts()) != 0 || rt.Height() != 0 || len(rt.Rows()) != 0 {
		t.Error("Clear should empty the box")
	}
}

func TestRichTextDrawCullsHiddenLines(t *testing.T) {
	rt, f := newRichText(200)
	for i := 0; i < 100; i++ {
		rt.AddRow("line")
	}
	g, _ := newSoftware(200, 48)
	if err := rt.Draw(g); err != nil {
		t.Fatal(err)
	}
	// 48 pixels show three lines; partial lines at the edges add two.
	if len(f.drawn) != 5 {
		t.Errorf("drew %d lines, want 5", len(f.drawn))
	}
}

func TestRichTextDrawHoveredLink(t *testing.T) {
	rt, f := newRichText(200)
	rt.AddRow("go @@x|link@@")
	rt.SetHover(35, 5)

	g, target := newSoftware(200, 40)
	if err := rt.Draw(g); err != nil {
		t.Fatal(err)
	}

	if len(f.drawn) != 2 || f.drawn[1].text != "link" || f.drawn[1].x != 30 {
		t.Fatalf("drawn = %+v", f.drawn)
	}
	if got := target.RGBAAt(35, 3); got != (color.RGBA{R: 0xeb, G: 0xc8, B: 0x73, A: 255}) {
		t.Errorf("hover background = %v", got)
	}
	if got := target.RGBAAt(35, 15); got != (color.RGBA{R: 0xe5, G: 0x0d, B: 0x0d, A: 255}) {
		t.Errorf("hover underline = %v", got)
	}

	rt.SetHover(150, 30)
	g, target = newSoftware(200, 40)
	if err := rt.Draw(g); err != nil {
		t.Fatal(err)
	}
	if got := target.RGBAAt(35, 3); got != (color.RGBA{}) {
		t.Errorf("no link hovered but background drawn: %v", got)
	}
}
