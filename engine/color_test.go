package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend(t *testing.T) {
	cases := []struct {
		name     string
		dst, src uint8
		a1, a2   uint8
		want     uint8
	}{
		{"half red over empty", 0, 255, 0, 127, 126},
		{"opaque over empty", 0, 255, 0, 255, 253},
		{"transparent source keeps scaled dst", 255, 0, 255, 0, 253},
		{"opaque source hides dst", 200, 0, 255, 255, 0},
		{"all zero", 0, 0, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Blend(c.dst, c.src, c.a1, c.a2))
		})
	}
}

func TestBlendMatchesFormulaForAllAlphas(t *testing.T) {
	for a1 := 0; a1 <= 255; a1 += 17 {
		for a2 := 0; a2 <= 255; a2 += 15 {
			for _, v := range [][2]int{{0, 0}, {255, 255}, {12, 240}, {199, 3}} {
				want := (v[0]*a1*(255-a2) + v[1]*a2*255) >> 16
				got := Blend(uint8(v[0]), uint8(v[1]), uint8(a1), uint8(a2))
				assert.Equal(t, uint8(want), got, "dst=%d src=%d a1=%d a2=%d", v[0], v[1], a1, a2)
			}
		}
	}
}
