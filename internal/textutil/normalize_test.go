package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "TRANSPORT", want: "transport"},
		{name: "strips accents", input: "Éco-taxe", want: "eco-taxe"},
		{name: "collapses whitespace", input: "  frais   de  port ", want: "frais de port"},
		{name: "mixed accents", input: "Bitume Modifié", want: "bitume modifie"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.input))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "uppercase and separators", input: "Sopralene Flam 180-25", want: "SOPRALENE FLAM 180 25"},
		{name: "collapses symbol runs", input: "ELASTOPHENE  -- FLAM / 25", want: "ELASTOPHENE FLAM 25"},
		{name: "accents removed", input: "membrane étanchéité", want: "MEMBRANE ETANCHEITE"},
		{name: "trims edges", input: "  SOPRA  ", want: "SOPRA"},
		{name: "only symbols", input: "***", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("SOPRALENE FLAM 180 25 SP")
	assert.Equal(t, []string{"SOPRALENE", "FLAM", "180"}, got)
}
