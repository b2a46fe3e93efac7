package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Paris", "paris"},
		{"  PARIS  ", "paris"},
		{"Ménage", "menage"},
		{"Léonard   de\tVinci", "leonard de vinci"},
		{"São Paulo", "sao paulo"},
		{"Müller", "muller"},
		{"Ça va", "ca va"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Answer(tt.in))
		})
	}
}

func TestAnswerIdempotent(t *testing.T) {
	inputs := []string{
		"Ménage à trois",
		"İstanbul",
		"ÑANDÚ",
		"Ångström",
		"  Crème   Brûlée ",
		"paris, france",
	}

	for _, in := range inputs {
		once := Answer(in)
		assert.Equal(t, once, Answer(once), "input %q", in)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Ménage", "menage"))
	assert.True(t, Equal("Léonard de Vinci", "leonard de vinci"))
	assert.False(t, Equal("Paris", "paris, france"))
}
