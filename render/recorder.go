package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Op identifies a recorded drawing operation.
type Op uint8

const (
	OpFillRect Op = iota
	OpFillGradient
	OpStrokeRect
	OpLine
	OpPolygon
	OpText
	OpFocusRect
)

var opNames = [...]string{
	OpFillRect:     "fill",
	OpFillGradient: "gradient",
	OpStrokeRect:   "stroke",
	OpLine:         "line",
	OpPolygon:      "polygon",
	OpText:         "text",
	OpFocusRect:    "focus",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Command is one recorded drawing operation, resolved into device space.
type Command struct {
	Op      Op
	Rect    image.Rectangle // Bounding box in device space
	Clip    image.Rectangle // Clip in effect when the command was issued
	Color   color.NRGBA     // Primary color, opacity already applied
	Color2  color.NRGBA     // Gradient end color
	Text    string
	Opacity float64
}

// Visible reports whether any part of the command falls inside its clip.
func (c Command) Visible() bool {
	return !c.Rect.Intersect(c.Clip).Empty()
}

func (c Command) String() string {
	if c.Op == OpText {
		return fmt.Sprintf("%s %q at %v", c.Op, c.Text, c.Rect.Min)
	}
	return fmt.Sprintf("%s %v", c.Op, c.Rect)
}

// Recorder is a Graphics that records every operation instead of drawing.
// Used by tests to assert paint order and by tooling that needs a display
// list rather than pixels.
type Recorder struct {
	bounds   image.Rectangle
	stack    stack
	commands []Command
}

// NewRecorder creates a recorder whose initial clip is bounds.
func NewRecorder(bounds image.Rectangle) *Recorder {
	return &Recorder{bounds: bounds, stack: newStack(bounds)}
}

// Commands returns the recorded operations in issue order.
func (r *Recorder) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Reset discards recorded commands and restores the initial state.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.stack = newStack(r.bounds)
}

func (r *Recorder) record(op Op, rect image.Rectangle, c color.Color) *Command {
	r.commands = append(r.commands, Command{
		Op:      op,
		Rect:    r.stack.toDevice(rect),
		Clip:    r.stack.cur.clip,
		Color:   applyOpacity(c, r.stack.cur.opacity),
		Opacity: r.stack.cur.opacity,
	})
	return &r.commands[len(r.commands)-1]
}

func (r *Recorder) FillRect(rect image.Rectangle, c color.Color) {
	r.record(OpFillRect, rect, c)
}

func (r *Recorder) FillGradient(rect image.Rectangle, from, to color.Color, vertical bool) {
	cmd := r.record(OpFillGradient, rect, from)
	cmd.Color2 = applyOpacity(to, r.stack.cur.opacity)
}

func (r *Recorder) StrokeRect(rect image.Rectangle, c color.Color, thickness int) {
	r.record(OpStrokeRect, rect, c)
}

func (r *Recorder) DrawLine(p0, p1 image.Point, c color.Color, thickness int) {
	r.record(OpLine, image.Rectangle{Min: p0, Max: p1}.Canon(), c)
}

func (r *Recorder) FillPolygon(pts []image.Point, c color.Color) {
	if len(pts) == 0 {
		return
	}
	bounds := image.Rectangle{Min: pts[0], Max: pts[0].Add(image.Pt(1, 1))}
	for _, p := range pts[1:] {
		bounds = bounds.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	r.record(OpPolygon, bounds, c)
}

func (r *Recorder) DrawText(face font.Face, s string, dot image.Point, c color.Color) {
	width := font.MeasureString(face, s).Ceil()
	m := face.Metrics()
	rect := image.Rect(dot.X, dot.Y-m.Ascent.Ceil(), dot.X+width, dot.Y+m.Descent.Ceil())
	cmd := r.record(OpText, rect, c)
	cmd.Text = s
}

func (r *Recorder) DrawFocusRect(rect image.Rectangle, c color.Color) {
	r.record(OpFocusRect, rect, c)
}

func (r *Recorder) Translate(dx, dy int)          { r.stack.translate(dx, dy) }
func (r *Recorder) ClipRect(rect image.Rectangle) { r.stack.clipRect(rect) }
func (r *Recorder) SetOpacity(alpha float64)      { r.stack.setOpacity(alpha) }
func (r *Recorder) Push()                         { r.stack.push() }
func (r *Recorder) Pop()                          { r.stack.pop() }
