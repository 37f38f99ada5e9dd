package ansii

import (
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

type ANSI string

const (
	reset       ANSI = "\033[0m"
	plain       ANSI = ""
	bold        ANSI = "\033[1m"
	underline   ANSI = "\033[4m"
	black       ANSI = "\033[30m"
	red         ANSI = "\033[31m"
	green       ANSI = "\033[32m"
	yellow      ANSI = "\033[33m"
	blue        ANSI = "\033[34m"
	purple      ANSI = "\033[35m"
	cyan        ANSI = "\033[36m"
	white       ANSI = "\033[37m"
	clearScreen ANSI = "\033[2J"
	hideCursor  ANSI = "\033[?25l"
	showCursor  ANSI = "\033[?25h"
)

// Offset is a normalized screen position: both axes run 0..1 and are
// scaled to the terminal size when drawn.
type Offset struct {
	X float64
	Y float64
}

type style struct {
	Reset     ANSI
	Plain     ANSI
	Bold      ANSI
	Underline ANSI
}

type color struct {
	Black  ANSI
	Red    ANSI
	Green  ANSI
	Yellow ANSI
	Blue   ANSI
	Purple ANSI
	Cyan   ANSI
	White  ANSI
}

type screen struct {
	ClearScreen ANSI
	HideCursor  ANSI
	ShowCursor  ANSI
}

type ascii struct {
	Block string
}

var (
	Styles = style{Bold: bold, Underline: underline, Reset: reset, Plain: plain}
	Colors = color{Black: black, Red: red, Green: green, Yellow: yellow, Blue: blue, Purple: purple, Cyan: cyan, White: white}
	Screen = screen{ClearScreen: clearScreen, HideCursor: hideCursor, ShowCursor: showCursor}
	Blocks = ascii{Block: "█"}
)

// GetTermSize reports the terminal dimensions, falling back to a classic
// 80x24 when stdout is not a terminal so rendering still does something.
func GetTermSize() (width int, height int) {
	fd := int(os.Stdout.Fd())
	width, height, err := term.GetSize(fd)
	if err != nil {
		return 80, 24
	}
	return width, height
}

func MakeTermRaw() (*term.State, error) {
	fd := int(os.Stdout.Fd())
	return term.MakeRaw(fd)
}

func RestoreTerm(prev *term.State) error {
	fd := int(os.Stdout.Fd())
	return term.Restore(fd, prev)
}

func (s screen) PlaceCursor(x, y int) ANSI {
	return ANSI(fmt.Sprintf("\033[%d;%dH", y, x))
}

// Frame accumulates one frame of drawing commands against a terminal size
// sampled once, then flushes to stdout in a single write.
type Frame struct {
	Width  int
	Height int

	builder strings.Builder
}

func NewFrame() *Frame {
	w, h := GetTermSize()
	return &Frame{Width: w, Height: h}
}

func (f *Frame) Clear() {
	f.builder.WriteString(string(Screen.ClearScreen))
}

// DrawBox draws the outline of a box whose top-left corner is at offset.
// Height and width are in terminal cells; a width of 1 gives a vertical
// bar. Cells that land off screen are clipped by the terminal.
func (f *Frame) DrawBox(offset Offset, height int, width int, style ANSI) {
	f.builder.WriteString(string(style))
	for hIdx := 0; hIdx < height; hIdx++ {
		if hIdx == 0 || hIdx == height-1 {
			for wIdx := 0; wIdx < width; wIdx++ {
				f.drawCell(offset, wIdx, hIdx)
			}
		} else {
			f.drawCell(offset, 0, hIdx)
			f.drawCell(offset, width-1, hIdx)
		}
	}
	f.builder.WriteString(string(Styles.Reset))
}

// DrawPixel draws a single block at offset.
func (f *Frame) DrawPixel(offset Offset, style ANSI) {
	f.builder.WriteString(string(style))
	f.drawCell(offset, 0, 0)
	f.builder.WriteString(string(Styles.Reset))
}

// DrawText writes a string starting at offset.
func (f *Frame) DrawText(offset Offset, text string, style ANSI) {
	x, y := f.scale(offset)
	f.builder.WriteString(string(style))
	f.builder.WriteString(string(Screen.PlaceCursor(x, y)))
	f.builder.WriteString(text)
	f.builder.WriteString(string(Styles.Reset))
}

func (f *Frame) Flush() {
	os.Stdout.WriteString(f.builder.String())
}

// drawCell places one block glyph at offset shifted by whole cells.
func (f *Frame) drawCell(offset Offset, dx, dy int) {
	x, y := f.scale(offset)
	f.builder.WriteString(string(Screen.PlaceCursor(x+dx, y+dy)))
	f.builder.WriteString(Blocks.Block)
}

// scale maps a normalized offset onto 1-based terminal cells.
func (f *Frame) scale(offset Offset) (x, y int) {
	x = int(math.Floor(offset.X*float64(f.Width))) + 1
	y = int(math.Floor(offset.Y*float64(f.Height))) + 1
	return x, y
}
