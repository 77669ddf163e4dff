package retained

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/agiangrant/skins/render"
)

// boxSkin is a minimal skin: a fixed preferred size, children stacked
// vertically, a fill for Paint and a stroke for PaintOverlay.
type boxSkin struct {
	SkinBase
	size      Size
	fill      color.NRGBA
	layouts   int
	uninstall int
}

func (s *boxSkin) Uninstall() {
	s.uninstall++
	s.SkinBase.Uninstall()
}

func (s *boxSkin) PreferredWidth(Constraint) int  { return s.size.Width }
func (s *boxSkin) PreferredHeight(Constraint) int { return s.size.Height }
func (s *boxSkin) PreferredSize() Size            { return s.size }

func (s *boxSkin) Baseline(width, height int) Baseline { return BaselineAt(height / 2) }

func (s *boxSkin) Layout() {
	s.layouts++
	y := 0
	for _, c := range s.Component().Children() {
		p := c.PreferredSize()
		c.SetBounds(image.Rect(0, y, p.Width, y+p.Height))
		y += p.Height
	}
}

func (s *boxSkin) Paint(g render.Graphics) {
	g.FillRect(image.Rect(0, 0, s.Width(), s.Height()), s.fill)
}

func (s *boxSkin) PaintOverlay(g render.Graphics) {
	g.StrokeRect(image.Rect(0, 0, s.Width(), s.Height()), s.fill, 1)
}

func skinned(t *testing.T, size Size, fill color.NRGBA) (*Widget, *boxSkin) {
	t.Helper()
	w := NewWidget(KindBox)
	s := &boxSkin{size: size, fill: fill}
	if err := w.SetSkin(s); err != nil {
		t.Fatal(err)
	}
	return w, s
}

func TestWidgetHierarchy(t *testing.T) {
	parent, child := NewWidget(KindBox), NewWidget(KindLabel)
	if err := parent.Add(child); err != nil {
		t.Fatal(err)
	}
	if child.Parent() != parent || parent.IndexOf(child) != 0 {
		t.Fatalf("child not attached")
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil child", parent.Add(nil), ErrInvalidArgument},
		{"second parent", NewWidget(KindBox).Add(child), ErrIllegalState},
		{"cycle", child.Add(parent), ErrInvalidArgument},
		{"self", parent.Insert(0, parent), ErrInvalidArgument},
		{"index", parent.Insert(5, NewWidget(KindLabel)), ErrIndexOutOfBounds},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, tt.err, tt.want)
		}
	}

	if _, err := parent.ChildAt(1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("ChildAt(1) error = %v, want ErrIndexOutOfBounds", err)
	}
	if !parent.Remove(child) || child.Parent() != nil || parent.Remove(child) {
		t.Errorf("Remove() did not detach exactly once")
	}
}

func TestWidgetShowingAndBlocked(t *testing.T) {
	tree := NewTree(NewManualScheduler(epoch), 100, 100)
	box, label := NewWidget(KindBox), NewWidget(KindLabel)
	if err := box.Add(label); err != nil {
		t.Fatal(err)
	}
	if label.IsShowing() || label.Tree() != nil {
		t.Errorf("detached widget reports showing")
	}
	if err := tree.Display().Add(box); err != nil {
		t.Fatal(err)
	}
	if !label.IsShowing() || label.Tree() != tree {
		t.Errorf("attached widget not showing")
	}
	box.SetVisible(false)
	if label.IsShowing() {
		t.Errorf("child of hidden widget reports showing")
	}
	box.SetVisible(true)

	box.SetEnabled(false)
	if !label.IsBlocked() || !label.IsEnabled() {
		t.Errorf("IsBlocked() = %v, IsEnabled() = %v; want blocked and enabled", label.IsBlocked(), label.IsEnabled())
	}
	if tree.Focus(label) {
		t.Errorf("blocked widget took focus")
	}
	box.SetEnabled(true)
	if !tree.Focus(label) || !label.IsFocused() {
		t.Errorf("Focus() on a showing widget failed")
	}
	if tree.Focus(NewWidget(KindLabel)) {
		t.Errorf("widget of another tree took focus")
	}
	tree.Focus(nil)
	if label.IsFocused() {
		t.Errorf("focus not cleared")
	}
}

func TestWidgetGeometry(t *testing.T) {
	tree := NewTree(NewManualScheduler(epoch), 100, 100)
	w, _ := skinned(t, Size{Width: 40, Height: 20}, color.NRGBA{A: 0xff})
	if err := tree.Display().Add(w); err != nil {
		t.Fatal(err)
	}
	var sizes []Size
	remove := w.AddSizeListener(func(w *Widget, previous Size) { sizes = append(sizes, previous) })

	w.SetBounds(image.Rect(10, 20, 50, 40))
	w.SetSize(-5, 30)
	remove()
	w.SetSize(1, 1)
	if len(sizes) != 2 || sizes[0] != (Size{}) || sizes[1] != (Size{Width: 40, Height: 20}) {
		t.Errorf("size listener saw %v", sizes)
	}
	if w.Size() != (Size{Width: 1, Height: 1}) {
		t.Errorf("Size() = %v", w.Size())
	}
	if got := w.ToDisplay(image.Pt(1, 2)); got != image.Pt(11, 22) {
		t.Errorf("ToDisplay() = %v, want (11,22)", got)
	}

	w.SetPreferredSize(60, -1)
	if got := w.PreferredSize(); got != (Size{Width: 60, Height: 20}) {
		t.Errorf("PreferredSize() with fixed width = %v, want 60x20", got)
	}
	w.SetPreferredSize(-1, -1)
	if got := w.PreferredSize(); got != (Size{Width: 40, Height: 20}) {
		t.Errorf("PreferredSize() = %v, want 40x20", got)
	}

	bare := NewWidget(KindLabel)
	if bare.PreferredSize() != (Size{}) || bare.Baseline().IsPresent() {
		t.Errorf("unskinned widget has a size or baseline")
	}
	if y, ok := w.BaselineFor(10, 30).Get(); !ok || y != 15 {
		t.Errorf("BaselineFor(10, 30) = %d, %v", y, ok)
	}
}

func TestWidgetSkinLifecycle(t *testing.T) {
	w, s := skinned(t, Size{Width: 10, Height: 10}, color.NRGBA{A: 0xff})
	if err := s.Install(w); !errors.Is(err, ErrIllegalState) {
		t.Errorf("second Install() error = %v, want ErrIllegalState", err)
	}
	if err := w.SetSkin(&boxSkin{}); err != nil {
		t.Fatal(err)
	}
	if s.uninstall != 1 || s.Component() != nil {
		t.Errorf("replaced skin was not uninstalled")
	}
	if s.Width() != 0 || s.Scheduler() != nil || s.IsShowing() {
		t.Errorf("uninstalled SkinBase reports widget state")
	}

	w.Dispose()
	if w.Skin() != nil {
		t.Errorf("Dispose() kept the skin")
	}
}

func TestWidgetValidate(t *testing.T) {
	parent, ps := skinned(t, Size{Width: 50, Height: 50}, color.NRGBA{A: 0xff})
	child, cs := skinned(t, Size{Width: 20, Height: 10}, color.NRGBA{A: 0xff})
	if err := parent.Add(child); err != nil {
		t.Fatal(err)
	}
	parent.Validate()
	parent.Validate()
	if ps.layouts != 1 || cs.layouts != 1 {
		t.Errorf("layouts = %d, %d; want 1, 1", ps.layouts, cs.layouts)
	}
	if child.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Errorf("child bounds = %v", child.Bounds())
	}
	child.Invalidate()
	if parent.IsValid() {
		t.Errorf("Invalidate() did not reach the parent")
	}
	parent.Validate()
	if ps.layouts != 2 || cs.layouts != 2 {
		t.Errorf("layouts after invalidate = %d, %d; want 2, 2", ps.layouts, cs.layouts)
	}
}

func TestWidgetPaintOrder(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}
	parent, _ := skinned(t, Size{Width: 50, Height: 50}, red)
	child, _ := skinned(t, Size{Width: 20, Height: 10}, blue)
	hidden, _ := skinned(t, Size{Width: 5, Height: 5}, blue)
	for _, c := range []*Widget{child, hidden} {
		if err := parent.Add(c); err != nil {
			t.Fatal(err)
		}
	}
	hidden.SetVisible(false)
	parent.SetBounds(image.Rect(0, 0, 50, 50))
	parent.Validate()
	child.SetLocation(5, 6)

	fade := NewFadeDecorator(0.5)
	if err := child.AddDecorator(fade); err != nil {
		t.Fatal(err)
	}
	if err := child.AddDecorator(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddDecorator(nil) error = %v", err)
	}

	rec := render.NewRecorder(image.Rect(0, 0, 100, 100))
	parent.Paint(rec)
	cmds := rec.Commands()

	want := []struct {
		op    render.Op
		rect  image.Rectangle
		alpha uint8
	}{
		{render.OpFillRect, image.Rect(0, 0, 50, 50), 0xff},
		{render.OpFillRect, image.Rect(5, 6, 25, 16), 0x80},
		{render.OpStrokeRect, image.Rect(5, 6, 25, 16), 0x80},
		{render.OpStrokeRect, image.Rect(0, 0, 50, 50), 0xff},
	}
	if len(cmds) != len(want) {
		t.Fatalf("recorded %v, want %d commands", cmds, len(want))
	}
	for i, w := range want {
		if cmds[i].Op != w.op || cmds[i].Rect != w.rect || cmds[i].Color.A != w.alpha {
			t.Errorf("command %d = %v alpha %d, want %v %v alpha %d", i, cmds[i], cmds[i].Color.A, w.op, w.rect, w.alpha)
		}
	}

	if !child.RemoveDecorator(fade) || child.RemoveDecorator(fade) {
		t.Errorf("RemoveDecorator() did not detach exactly once")
	}
}

func TestDecorators(t *testing.T) {
	w := NewWidget(KindBox)
	w.SetSize(40, 30)

	rec := render.NewRecorder(image.Rect(0, 0, 100, 100))
	rec.Push()
	NewTranslationDecorator(0, -10, true).Prepare(w, rec)
	rec.FillRect(image.Rect(0, 0, 40, 30), color.NRGBA{A: 0xff})
	rec.Pop()

	clip := NewClipDecorator(image.Rect(0, 0, 40, 12))
	clip.Prepare(w, rec)
	rec.FillRect(image.Rect(0, 0, 40, 30), color.NRGBA{A: 0xff})

	cmds := rec.Commands()
	if cmds[0].Rect != image.Rect(0, -10, 40, 20) || cmds[0].Clip != image.Rect(0, 0, 40, 30) {
		t.Errorf("translated fill = %v clip %v", cmds[0].Rect, cmds[0].Clip)
	}
	if cmds[1].Clip != image.Rect(0, 0, 40, 12) {
		t.Errorf("clipped fill clip = %v", cmds[1].Clip)
	}

	fade := NewFadeDecorator(2)
	if fade.Opacity() != 1 {
		t.Errorf("NewFadeDecorator(2).Opacity() = %v, want 1", fade.Opacity())
	}
	fade.SetOpacity(-1)
	if fade.Opacity() != 0 {
		t.Errorf("SetOpacity(-1) = %v, want 0", fade.Opacity())
	}
}

func TestTreeRepaint(t *testing.T) {
	tree := NewTree(NewManualScheduler(epoch), 100, 100)
	requests := 0
	tree.OnRepaint(func() { requests++ })
	w := NewWidget(KindLabel)
	w.Repaint()
	if requests != 0 {
		t.Errorf("detached widget reached the tree")
	}
	if err := tree.Display().Add(w); err != nil {
		t.Fatal(err)
	}
	if !tree.RepaintPending() || requests == 0 {
		t.Errorf("adding a widget did not request a repaint")
	}
	tree.Paint(render.NewRecorder(image.Rect(0, 0, 100, 100)))
	if tree.RepaintPending() {
		t.Errorf("Paint() left a repaint pending")
	}
	if tree.Scheduler().Now() != epoch {
		t.Errorf("tree scheduler clock = %v", tree.Scheduler().Now())
	}
}

func TestGeometryHelpers(t *testing.T) {
	if Limit(-3) != Unconstrained || Limit(4).Value(9) != 4 || Unconstrained.Value(9) != 9 {
		t.Errorf("Limit/Value mismatch")
	}
	if Limit(4).Shrink(10) != 0 || Unconstrained.Shrink(10) != Unconstrained {
		t.Errorf("Shrink mismatch")
	}
	if err := (Insets{Top: -1}).Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative insets error = %v", err)
	}
	in := Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}
	if got := in.Inset(image.Rect(0, 0, 10, 10)); got != image.Rect(2, 1, 6, 7) {
		t.Errorf("Inset() = %v", got)
	}
	if got := in.Inset(image.Rect(0, 0, 3, 3)); got.Min != image.Pt(2, 1) || got.Dx() != 0 || got.Dy() != 0 {
		t.Errorf("Inset() of a small rect = %v, want empty at (2,1)", got)
	}
	if got := in.Inset(image.Rect(10, 10, 14, 12)); !got.Empty() || got.Min != image.Pt(12, 11) {
		t.Errorf("Inset() with padding wider than the rect = %v, want empty at (12,11)", got)
	}
	if y, ok := OffsetBaseline(BaselineAt(3), 2).Get(); !ok || y != 5 {
		t.Errorf("OffsetBaseline() = %d, %v", y, ok)
	}
	if OffsetBaseline(NoBaseline(), 2).IsPresent() {
		t.Errorf("OffsetBaseline() made an absent baseline present")
	}
	if Clamp(5, 0, 3) != 3 || Clamp(-1.5, 0.0, 1.0) != 0 {
		t.Errorf("Clamp mismatch")
	}
}
