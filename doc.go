/*
Package gui is the rendering and resource core of the game client's user
interface. It loads and shares images, caches rendered text, batches draw
calls for the GPU and lays out colored, wrapped chat text.

# Overview

Widgets draw through the Graphics interface. Two implementations exist:
BatchGraphics collects textured quads into a DrawList and hands it to a
Renderer (see backend/opengl), and SoftwareGraphics blends straight into an
*image.RGBA on the CPU.

	loader := gui.NewLoader(opengl.NewBackend())
	renderer, _ := opengl.NewRenderer(800, 600)
	g := gui.NewBatchGraphics(renderer)

	for !window.ShouldClose() {
	    w, h := window.BeginFrame(gui.ColorBlack)
	    g.Begin(w, h)
	    frame.Draw(g, box)
	    chat.Draw(g)
	    if err := g.End(); err != nil {
	        return err
	    }
	    window.EndFrame()
	}

# Images

A Loader decodes PNG, JPEG, GIF and BMP data into an Image whose pixels
live in a Storage owned by a Backend. Images are reference counted with
IncRef and DecRef. SubImage returns a view that shares its parent's storage
and keeps it alive; the storage is released when the last image or view
referencing it is dropped. LoadDyed recolors pixels while loading.

SkinManager shares images loaded from an fs.FS between widgets and applies
the GUI opacity to all of them. ImageRect slices a skin image into a
nine-slice border.

# Text

A Font measures and draws strings. TrueTypeFont rasterizes whole strings
with a font.Face and keeps the results in a GlyphCache, a bounded LRU keyed
by text and color.

RichText holds rows of chat text with inline markup:

	##1       switch to palette color 1
	##<  ##>  begin and end a hyperlink caption
	@@target|caption@@
	          a hyperlink; stored as ##<caption##>
	---       a horizontal rule on its own row

Rows are wrapped to the box width at spaces, or at any character with a
"~" marker when a word does not fit. WrapLetters and TruncateText handle
plain labels.

# Configuration

Config is read from a TOML file with LoadConfig. Settings carries the live
values and notifies listeners when the opacity changes.

# Logging

The package logs through log/slog. SetVerbose enables debug messages for
texture uploads, cache evictions and batch flushes; SetLogger replaces the
handler.
*/
package gui
