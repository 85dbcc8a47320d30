package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		pattern string
		code    ErrorCode
	}{
		{"", CodeUnterminated},
		{"(ab", CodeUnterminated},
		{"[ab", CodeUnterminated},
		{`ab\`, CodeUnterminated},
		{"*a", CodeUnexpectedChar},
		{"a|*", CodeUnexpectedChar},
		{"()", CodeUnexpectedChar},
		{"a{}", CodeInvalidRepeatCount},
		{"a{3,1}", CodeInvalidRepeatCount},
		{"a{2", CodeInvalidRepeatCount},
		{`\q`, CodeUnsupportedEscape},
		{`\1`, CodeUnsupportedEscape},
		{`\x2z`, CodeUnsupportedEscape},
		{`\0`, CodeUnsupportedEscape},
		{"^abc", CodeUnsupportedSpecial},
		{"abc$", CodeUnsupportedSpecial},
	}
	for _, tc := range cases {
		_, err := Compile(tc.pattern)
		require.Error(t, err, "pattern %q", tc.pattern)
		var serr *SyntaxError
		require.ErrorAs(t, err, &serr, "pattern %q", tc.pattern)
		assert.Equal(t, tc.code, serr.Code, "pattern %q", tc.pattern)
	}
}

func TestCompileAccepts(t *testing.T) {
	patterns := []string{
		"a",
		"abc",
		"a|b|c",
		"(ab)*c",
		"[a-z_][a-zA-Z0-9_]*",
		"[^\"\n]+",
		`\d{1,3}(\.\d{1,3}){3}`,
		"a*?b",
		"a++",
		`\0101\x41A`,
		`\t\n\r\f\a\e`,
		`--[^\n]*`,
	}
	for _, p := range patterns {
		_, err := Compile(p)
		assert.NoError(t, err, "pattern %q", p)
	}
}

func TestPatternString(t *testing.T) {
	p, err := Compile("a(bc|b)c")
	require.NoError(t, err)
	assert.Equal(t, "a(bc|b)c", p.String())

	p, err = Compile("x{2,5}?")
	require.NoError(t, err)
	assert.Equal(t, "x{2,5}?", p.String())
}

func TestIgnoreCaseFoldsAtCompileTime(t *testing.T) {
	p, err := CompileIgnoreCase("[A-Z]+")
	require.NoError(t, err)
	assert.True(t, p.IgnoreCase())
	// Range endpoints are lowered when compiled case-insensitively.
	assert.Equal(t, "[a-z]+", p.String())
}
