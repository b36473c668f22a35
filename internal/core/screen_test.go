package core

import "testing"

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, '●')
	if got := s.Get(3, 2); got != '●' {
		t.Errorf("Get(3, 2) = %q, expected '●'", got)
	}

	// Out of bounds writes are ignored, reads return space
	s.Set(-1, 0, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, 5, 'x')
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("out-of-bounds Get = %q, expected space", got)
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(1, 1, '█', ColorRed)
	cell := s.GetCell(1, 1)
	if cell.Rune != '█' || cell.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red '█'", cell)
	}

	// Plain Set uses the default color
	s.Set(1, 1, '#')
	if cell := s.GetCell(1, 1); cell.Color != ColorDefault {
		t.Errorf("Set should reset color to default, got %v", cell.Color)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.SetColored(0, 0, 'x', ColorCyan)
	s.Clear()

	if got := s.Get(0, 0); got != ' ' {
		t.Errorf("after Clear, Get(0, 0) = %q, expected space", got)
	}
	if cell := s.GetCell(0, 0); cell.Color != ColorDefault {
		t.Errorf("after Clear, color = %v, expected default", cell.Color)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(2, 1, "hello")

	if got := s.Row(1); got != "  hello   " {
		t.Errorf("Row(1) = %q", got)
	}

	// Clipped at the right edge
	s.DrawText(8, 0, "abc")
	if got := s.Get(9, 0); got != 'b' {
		t.Errorf("clipped text: Get(9, 0) = %q, expected 'b'", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(6, 4)
	s.Set(1, 1, '*')

	s.Resize(8, 6)
	if s.Width() != 8 || s.Height() != 6 {
		t.Errorf("size after Resize = %dx%d, expected 8x6", s.Width(), s.Height())
	}
	if got := s.Get(1, 1); got != '*' {
		t.Errorf("content not preserved after grow: Get(1, 1) = %q", got)
	}

	s.Resize(2, 2)
	if got := s.Get(1, 1); got != '*' {
		t.Errorf("content not preserved after shrink: Get(1, 1) = %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	expected := "a  \n  b"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}
