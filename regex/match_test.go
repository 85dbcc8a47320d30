package regex

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/mibparse/text"
)

type matchCase struct {
	Pattern    string `yaml:"pattern"`
	Input      string `yaml:"input"`
	Length     int    `yaml:"length"`
	IgnoreCase bool   `yaml:"ignorecase"`
}

type matchCorpus struct {
	Cases []matchCase `yaml:"cases"`
}

func loadMatchCorpus(t *testing.T) []matchCase {
	t.Helper()
	data, err := os.ReadFile("testdata/matches.yaml")
	require.NoError(t, err)
	var corpus matchCorpus
	require.NoError(t, yaml.Unmarshal(data, &corpus))
	require.NotEmpty(t, corpus.Cases)
	return corpus.Cases
}

func TestMatchCorpus(t *testing.T) {
	for _, tc := range loadMatchCorpus(t) {
		var p *Pattern
		var err error
		if tc.IgnoreCase {
			p, err = CompileIgnoreCase(tc.Pattern)
		} else {
			p, err = Compile(tc.Pattern)
		}
		require.NoError(t, err, "pattern %q", tc.Pattern)

		m := p.Matcher(text.NewStringBuffer(tc.Input))
		if tc.Length < 0 {
			assert.False(t, m.MatchFromBeginning(),
				"pattern %q input %q", tc.Pattern, tc.Input)
			assert.Equal(t, -1, m.Length())
		} else {
			assert.True(t, m.MatchFromBeginning(),
				"pattern %q input %q", tc.Pattern, tc.Input)
			assert.Equal(t, tc.Length, m.Length(),
				"pattern %q input %q", tc.Pattern, tc.Input)
		}
	}
}

func TestMatchFromOffset(t *testing.T) {
	p, err := Compile("[0-9]+")
	require.NoError(t, err)

	m := p.Matcher(text.NewStringBuffer("ab1234"))
	assert.False(t, m.MatchFromBeginning())
	assert.True(t, m.MatchFrom(2))
	assert.Equal(t, 4, m.Length())
	assert.Equal(t, 2, m.Start())
}

func TestMatcherReadEof(t *testing.T) {
	p, err := Compile("abc")
	require.NoError(t, err)

	m := p.Matcher(text.NewStringBuffer("ab"))
	assert.False(t, m.MatchFromBeginning())
	assert.True(t, m.HasReadEof())

	m.Reset(text.NewStringBuffer("abx"))
	assert.False(t, m.MatchFromBeginning())
	assert.False(t, m.HasReadEof())
}

// Successive skip values yield strictly shorter matches until the
// alternatives are exhausted.
func TestSkipAlternativesMonotonic(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		input   string
	}{
		{"a*", "aaaa"},
		{"(ab|a)+", "ababa"},
		{"abc|ab|a", "abcd"},
		{"a{0,3}", "aaaa"},
	} {
		p, err := Compile(tc.pattern)
		require.NoError(t, err)
		buf := text.NewStringBuffer(tc.input)
		m := p.Matcher(buf)

		prev := -2
		for skip := 0; ; skip++ {
			length := p.root.matchLen(m, buf, 0, skip)
			if length < 0 {
				break
			}
			if prev != -2 {
				assert.Less(t, length, prev,
					"pattern %q skip %d", tc.pattern, skip)
			}
			prev = length
			require.Less(t, skip, 32, "runaway alternatives for %q", tc.pattern)
		}
	}
}

func TestPossessiveOffersNoAlternatives(t *testing.T) {
	p, err := Compile("a++")
	require.NoError(t, err)
	buf := text.NewStringBuffer("aaa")
	m := p.Matcher(buf)

	assert.Equal(t, 3, p.root.matchLen(m, buf, 0, 0))
	assert.Equal(t, -1, p.root.matchLen(m, buf, 0, 1))

	// Possessive repetition never backs off, so a trailing 'a' in the
	// pattern cannot be satisfied.
	p2, err := Compile("a++a")
	require.NoError(t, err)
	m2 := p2.Matcher(buf)
	assert.False(t, m2.MatchFromBeginning())
}
