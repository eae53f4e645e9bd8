package core

import (
	"testing"
)

func TestColorDefault(t *testing.T) {
	c := ColorDefault
	if !c.IsDefault() {
		t.Error("ColorDefault should be default")
	}
	if c.String() != "default" {
		t.Errorf("String() = %q, want default", c.String())
	}
}

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false}, // Short form
		{"#000", 0, 0, 0, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
	}

	for _, tt := range tests {
		c, err := ColorFromHex(tt.hex)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ColorFromHex(%q) expected error, got nil", tt.hex)
			}
			continue
		}
		if err != nil {
			t.Errorf("ColorFromHex(%q) unexpected error: %v", tt.hex, err)
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("ColorFromHex(%q) = (%d,%d,%d), want (%d,%d,%d)",
				tt.hex, c.R, c.G, c.B, tt.r, tt.g, tt.b)
		}
	}
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	if got := black.Blend(white, 0); got != black {
		t.Errorf("Blend(0) = %v, want %v", got, black)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Blend(1) = %v, want %v", got, white)
	}
	mid := black.Blend(white, 0.5)
	if mid.R == 0 || mid.R == 255 {
		t.Errorf("Blend(0.5) = %v, want a mid tone", mid)
	}
	if got := ColorDefault.Blend(white, 0.2); !got.IsDefault() {
		t.Errorf("default Blend(0.2) = %v, want default", got)
	}
}

func TestStyleBuilders(t *testing.T) {
	s := NewStyle(ColorFromRGB(1, 2, 3)).Bold().Reverse()
	if !s.Attributes.Has(AttrBold) || !s.Attributes.Has(AttrReverse) || s.Attributes.Has(AttrDim) {
		t.Errorf("attributes = %b", s.Attributes)
	}
	if !s.Background.IsDefault() {
		t.Error("background should stay default")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'\t', 0},
		{'世', 2},
		{0x7F, 0},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestCellsRoundTrip(t *testing.T) {
	s := "1> 世界"
	cells := CellsFromString(s, DefaultStyle())
	if len(cells) != 7 {
		t.Fatalf("len(cells) = %d, want 7", len(cells))
	}
	if !cells[4].IsContinuation() {
		t.Error("wide rune should be followed by a continuation cell")
	}
	if got := StringFromCells(cells); got != s {
		t.Errorf("StringFromCells() = %q, want %q", got, s)
	}
}
