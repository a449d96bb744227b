package gui_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aethyra/gui"
)

func TestVerboseLogging(t *testing.T) {
	var buf bytes.Buffer
	gui.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() {
		gui.SetVerbose(false)
		gui.SetLogger(nil)
	})

	evict := func() {
		c, _, _ := newCache(t, 1)
		for _, s := range []string{"a", "b"} {
			if _, err := c.Get(s, gui.ColorWhite); err != nil {
				t.Fatal(err)
			}
		}
	}

	evict()
	if strings.Contains(buf.String(), "glyph cache eviction") {
		t.Error("eviction logged without verbose mode")
	}
	gui.SetVerbose(true)
	evict()
	if !strings.Contains(buf.String(), "glyph cache eviction") {
		t.Errorf("verbose eviction not logged:\n%s", buf.String())
	}
}
