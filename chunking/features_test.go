package chunking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyInterruption(t *testing.T) {
	assert.True(t, ClassifyInterruption("It was --"))
	assert.True(t, ClassifyInterruption("It was...  "))
	assert.False(t, ClassifyInterruption("It was fine."))
	assert.False(t, ClassifyInterruption("the pre--war period was long."))
	assert.False(t, ClassifyInterruption(""))
}

func TestCountDisfluencies(t *testing.T) {
	toks := []string{"it", "--", "it", "seems", "like", "--", "like"}
	assert.Equal(t, 2, CountDisfluencies(toks, true))
	assert.Equal(t, 2, CountDisfluencies(toks, false))

	// the final token is an interruption, not a disfluency
	assert.Equal(t, 0, CountDisfluencies([]string{"It", "was", "--"}, true))

	cutoff := []string{"Rush", "pu-", "Prudential", "HMO", "...", "Inc"}
	assert.Equal(t, 2, CountDisfluencies(cutoff, true))
	assert.Equal(t, 1, CountDisfluencies(cutoff, false))

	assert.Equal(t, 0, CountDisfluencies(nil, true))
}

func TestBackchannelMatch(t *testing.T) {
	cues := []string{"right", "that's right", "yes"}

	tests := []struct {
		text string
		want bool
	}{
		{"Right.", true},
		{"That's right.", true},
		{"Yes!!", true},
		{"  yes ", true},
		{"Right you are I say.", false},
		{"You don't know if that's right", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BackchannelMatch(tt.text, cues), tt.text)
	}

	assert.True(t, BackchannelMatch("Right.", []string{"right"}))
	assert.False(t, BackchannelMatch("You don't know if that's right", []string{"right"}))
}

func TestProseTokenizer_Dashes(t *testing.T) {
	toks := NewProseTokenizer().Tokenize("it -- it seems like -- like")
	assert.Equal(t, 2, CountDisfluencies(toks, false))
	assert.Equal(t, "like", toks[len(toks)-1])

	toks = NewProseTokenizer().Tokenize("It was --")
	assert.Equal(t, "--", toks[len(toks)-1])
}

func TestProseTokenizer_Honorifics(t *testing.T) {
	toks := NewProseTokenizer().Tokenize("Mr. Chief Justice, and may it please the Court.")
	assert.Contains(t, toks, "Mr.")
	assert.NotContains(t, toks, "Mr")
	assert.Equal(t, "Mr.", toks[0])

	toks = NewProseTokenizer().Tokenize("Thank you, Ms. Smith. Mr. Jones?")
	assert.Contains(t, toks, "Ms.")
	assert.Contains(t, toks, "Mr.")
	assert.NotContains(t, toks, "Ms")
	assert.Equal(t, "?", toks[len(toks)-1])
}

func TestJoinHonorifics(t *testing.T) {
	assert.Equal(t, []string{"Mr.", "Chief", "Justice"}, joinHonorifics([]string{"Mr", ".", "Chief", "Justice"}))
	assert.Equal(t, []string{"Ms.", "Smith", "."}, joinHonorifics([]string{"Ms", ".", "Smith", "."}))
	assert.Equal(t, []string{"The", "Mr"}, joinHonorifics([]string{"The", "Mr"}))
	assert.Equal(t, []string{"Dr", "."}, joinHonorifics([]string{"Dr", "."}))
}
