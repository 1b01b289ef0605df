package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"line comment", "a -- note\nb", "a        \nb"},
		{"dashes without space are kept", "5--3", "5--3"},
		{"block comment keeps newlines", "a /* x\ny */ b", "a     \n     b"},
		{"hash before content", "# note\nb", "      \nb"},
		{"hash after content", "a # b\nc", "a    \nc"},
		{"bare dashes before newline", "a --\nb", "a   \nb"},
		{"comment markers inside literal", "'-- /* x */'", "'-- /* x */'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripComments(tt.in))
			assert.Len(t, stripComments(tt.in), len(tt.in))
		})
	}
}

func TestSplitTopLevel(t *testing.T) {
	parts, ok := splitTopLevel(`1, 'a,b', f(2, 3), "c\",d", ''`)
	assert.True(t, ok)
	assert.Equal(t, []string{"1", " 'a,b'", " f(2, 3)", ` "c\",d"`, " ''"}, parts)

	_, ok = splitTopLevel("1, 'open")
	assert.False(t, ok)
}

func TestUnescapeLiteral(t *testing.T) {
	tests := []struct {
		body  string
		quote byte
		want  string
	}{
		{`plain`, '\'', "plain"},
		{`it\'s`, '\'', "it's"},
		{`it''s`, '\'', "it's"},
		{`a\\b`, '\'', `a\b`},
		{`tab\there`, '\'', "tab\there"},
		{`nul\0`, '\'', "nul\x00"},
		{`100\%`, '\'', `100\%`},
		{`say ""x""`, '"', `say "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeLiteral(tt.body, tt.quote))
		})
	}
}

func TestUnquoteIdentifier(t *testing.T) {
	assert.Equal(t, "users", unquoteIdentifier("`users`"))
	assert.Equal(t, "we`ird", unquoteIdentifier("`we``ird`"))
	assert.Equal(t, "col", unquoteIdentifier(`"col"`))
	assert.Equal(t, "bare", unquoteIdentifier("bare"))
}
