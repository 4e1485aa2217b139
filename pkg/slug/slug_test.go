package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Kanchipuram Silk Saree", "kanchipuram-silk-saree"},
		{"Anarkali Kurta – Émeraude", "anarkali-kurta-emeraude"},
		{"  Lehenga / Choli set  ", "lehenga-choli-set"},
		{"100% Cotton!!", "100-cotton"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.in), "Make(%q)", tc.in)
	}
}
