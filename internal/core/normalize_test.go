package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Café Résumé", "CAFE RESUME"},
		{"", ""},
		{"  netflix   premium ", "NETFLIX PREMIUM"},
		{"Dr. O'Neil, Jr.", "DR ONEIL JR"},
		{"Pingüino ÀÈÌÒÙ", "PINGUINO AEIOU"},
		{"Año nuevo", "AÑO NUEVO"},
		{"Luz & gas #2", "LUZ GAS 2"},
		{"Cafe\u0301", "CAFE"},
		{"x²", "X²"},
		{"Plan ½ mes", "PLAN ½ MES"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), "input %q", tc.in)
	}
}
