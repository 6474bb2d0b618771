package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/kcards/pkg/model"
	"github.com/vanderheijden86/kcards/pkg/ui"
)

// SnapshotOptions controls card snapshot export.
type SnapshotOptions struct {
	Path      string // Output path; format inferred from extension when Format empty
	Format    string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Width     int    // Terminal columns to render at; defaults to 80
	ExpandAll bool   // Render overflowing code blocks in full
}

const (
	snapMargin     = 24
	snapCellW      = 7
	snapLineH      = 16
	snapHeaderH    = 40
	snapDefaultCol = 80
)

var (
	colorBackdrop = color.RGBA{0x28, 0x2a, 0x36, 0xff}
	colorHeaderBG = color.RGBA{0x44, 0x47, 0x5a, 0xff}
	colorText     = color.RGBA{0xf8, 0xf8, 0xf2, 0xff}
	colorSubtle   = color.RGBA{0xbd, 0x93, 0xf9, 0xff}
)

// snapshotLayout is the plain-text rendering of a card plus canvas size.
type snapshotLayout struct {
	Caption string
	Lines   []string
	Width   int
	Height  int
}

func layoutCard(card *model.QuestionCard, opts SnapshotOptions) snapshotLayout {
	cols := opts.Width
	if cols <= 0 {
		cols = snapDefaultCol
	}
	text := ui.RenderQuestionCard(card, ui.NoColorTheme(), cols, opts.ExpandAll)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	maxCells := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > maxCells {
			maxCells = w
		}
	}
	return snapshotLayout{
		Caption: fmt.Sprintf("%s · %s", card.ID(), card.Title()),
		Lines:   lines,
		Width:   maxCells*snapCellW + 2*snapMargin,
		Height:  snapHeaderH + len(lines)*snapLineH + 2*snapMargin,
	}
}

// SaveCardSnapshot renders a card as it appears in the terminal to an SVG or
// PNG image.
func SaveCardSnapshot(card *model.QuestionCard, opts SnapshotOptions) error {
	if card == nil {
		return fmt.Errorf("no card to snapshot")
	}
	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".png":
			format = "png"
		default:
			format = "svg"
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		opts.Path = card.ID() + "." + format
	}
	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	layout := layoutCard(card, opts)
	if format == "png" {
		return renderPNG(opts.Path, layout)
	}
	f, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	if err := renderSVG(f, layout); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderPNG(path string, layout snapshotLayout) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(snapMargin/2, snapMargin/2, float64(layout.Width-snapMargin), snapHeaderH-8, 8)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(layout.Caption, snapMargin, snapMargin/2+(snapHeaderH-8)/2, 0, 0.5)

	dc.SetColor(colorText)
	for i, line := range layout.Lines {
		y := float64(snapHeaderH + snapMargin + i*snapLineH)
		dc.DrawStringAnchored(line, snapMargin, y, 0, 0.5)
	}
	return dc.SavePNG(path)
}

func renderSVG(w io.Writer, layout snapshotLayout) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(snapMargin/2, snapMargin/2, layout.Width-snapMargin, snapHeaderH-8, 8, 8, fmt.Sprintf("fill:%s", css(colorHeaderBG)))
	canvas.Text(snapMargin, snapMargin/2+(snapHeaderH-8)/2+5, layout.Caption,
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;font-weight:bold", css(colorSubtle)))

	for i, line := range layout.Lines {
		y := snapHeaderH + snapMargin + i*snapLineH
		canvas.Text(snapMargin, y, line,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;white-space:pre", css(colorText)),
			`xml:space="preserve"`)
	}

	canvas.End()
	return nil
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
