package pipes

import (
	"testing"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		glyph  rune
		want   Cell
		wantOK bool
	}{
		{'|', Vertical, true},
		{'-', Horizontal, true},
		{'L', BottomLeft, true},
		{'J', BottomRight, true},
		{'F', TopLeft, true},
		{'7', TopRight, true},
		{'.', Ground, true},
		{'S', Start, true},
		{'I', Ground, false},
		{'O', Ground, false},
		{' ', Ground, false},
		{'s', Ground, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.glyph), func(t *testing.T) {
			got, ok := ParseCell(tt.glyph)
			if ok != tt.wantOK {
				t.Fatalf("ParseCell(%q) ok = %v, want %v", tt.glyph, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseCell(%q) = %v, want %v", tt.glyph, got, tt.want)
			}
			if ok && got.Glyph() != tt.glyph {
				t.Errorf("%v.Glyph() = %q, want %q", got, got.Glyph(), tt.glyph)
			}
		})
	}
}

func TestCell_Ports(t *testing.T) {
	for c := Vertical; c <= TopRight; c++ {
		if n := c.Ports().Count(); n != 2 {
			t.Errorf("%v has %d ports, want 2", c, n)
		}
		back, ok := CellWithPorts(c.Ports())
		if !ok || back != c {
			t.Errorf("CellWithPorts(%v.Ports()) = %v, %v; want %v, true", c, back, ok, c)
		}
	}
	if n := Ground.Ports().Count(); n != 0 {
		t.Errorf("Ground has %d ports, want 0", n)
	}
	if n := Start.Ports().Count(); n != 4 {
		t.Errorf("Start has %d ports, want 4", n)
	}
	if _, ok := CellWithPorts(Up.Port() | Down.Port() | Left.Port()); ok {
		t.Errorf("CellWithPorts accepted a three port junction")
	}
}

func TestCell_AngleSign(t *testing.T) {
	tests := []struct {
		cell   Cell
		angled bool
		sign   int
	}{
		{Vertical, false, 0},
		{Horizontal, false, 0},
		{BottomLeft, true, -1},
		{BottomRight, true, -1},
		{TopLeft, true, 1},
		{TopRight, true, 1},
		{Ground, false, 0},
		{Start, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.cell.String(), func(t *testing.T) {
			if got := tt.cell.IsAngled(); got != tt.angled {
				t.Errorf("IsAngled() = %v, want %v", got, tt.angled)
			}
			if got := tt.cell.AngleSign(); got != tt.sign {
				t.Errorf("AngleSign() = %d, want %d", got, tt.sign)
			}
		})
	}
}

// matchConnect is the compatibility table written out case by case, the way it reads
// in the puzzle statement.
func matchConnect(from, to Cell, d Direction) bool {
	if to == Ground || from == Ground {
		return false
	}
	switch d {
	case Up:
		switch {
		case to == Horizontal, from == Horizontal:
			return false
		case to == BottomLeft, to == BottomRight:
			return false
		case from == TopLeft, from == TopRight:
			return false
		}
		return true
	case Right:
		switch {
		case to == Vertical, from == Vertical:
			return false
		case to == TopLeft, to == BottomLeft:
			return false
		case from == TopRight, from == BottomRight:
			return false
		}
		return true
	case Down:
		switch {
		case to == Horizontal, from == Horizontal:
			return false
		case to == TopLeft, to == TopRight:
			return false
		case from == BottomLeft, from == BottomRight:
			return false
		}
		return true
	case Left:
		switch {
		case to == Vertical, from == Vertical:
			return false
		case to == TopRight, to == BottomRight:
			return false
		case from == TopLeft, from == BottomLeft:
			return false
		}
		return true
	}
	return false
}

func TestCanConnect_MatchesTable(t *testing.T) {
	for from := Ground; from <= Start; from++ {
		for to := Ground; to <= Start; to++ {
			for _, d := range Directions {
				want := matchConnect(from, to, d)
				if got := CanConnect(from, to, d); got != want {
					t.Errorf("CanConnect(%v, %v, %v) = %v, want %v", from, to, d, got, want)
				}
			}
		}
	}
}

func TestCanConnect_Symmetric(t *testing.T) {
	for from := Vertical; from <= Start; from++ {
		for to := Vertical; to <= Start; to++ {
			for _, d := range Directions {
				if CanConnect(from, to, d) != CanConnect(to, from, d.Opposite()) {
					t.Errorf("CanConnect(%v, %v, %v) is not mirrored by the reverse step", from, to, d)
				}
			}
		}
	}
}

func TestCanConnect_Examples(t *testing.T) {
	tests := []struct {
		name string
		from Cell
		to   Cell
		d    Direction
		want bool
	}{
		{"vertical stack", Vertical, Vertical, Up, true},
		{"horizontal cannot go up", Horizontal, Vertical, Up, false},
		{"into ground", Start, Ground, Right, false},
		{"start accepts F from below", TopLeft, Start, Up, true},
		{"start reaches J on the right", Start, BottomRight, Right, true},
		{"start cannot reach L on the right", Start, BottomLeft, Right, false},
		{"F then 7", TopLeft, TopRight, Right, true},
		{"7 then F", TopRight, TopLeft, Right, false},
		{"none is never a step", Vertical, Vertical, NoDirection, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanConnect(tt.from, tt.to, tt.d); got != tt.want {
				t.Errorf("CanConnect(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.d, got, tt.want)
			}
		})
	}
}

func TestDirection_Opposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite() == d {
			t.Errorf("%v.Opposite() is itself", d)
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("%v.Opposite().Opposite() = %v", d, d.Opposite().Opposite())
		}
		dr, dc := d.Delta()
		or, oc := d.Opposite().Delta()
		if dr+or != 0 || dc+oc != 0 {
			t.Errorf("%v and its opposite do not cancel: (%d,%d) + (%d,%d)", d, dr, dc, or, oc)
		}
	}
	if NoDirection.Opposite() != NoDirection {
		t.Errorf("NoDirection.Opposite() = %v", NoDirection.Opposite())
	}
}

func TestPosition_Step(t *testing.T) {
	p := Position{Row: 3, Col: 5}
	tests := []struct {
		d    Direction
		want Position
	}{
		{Up, Position{2, 5}},
		{Right, Position{3, 6}},
		{Down, Position{4, 5}},
		{Left, Position{3, 4}},
		{NoDirection, Position{3, 5}},
	}
	for _, tt := range tests {
		if got := p.Step(tt.d); got != tt.want {
			t.Errorf("%v.Step(%v) = %v, want %v", p, tt.d, got, tt.want)
		}
	}
}
