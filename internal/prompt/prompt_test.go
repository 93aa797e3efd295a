// Package prompt provides tests for interactive prompting.
package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputReturnsTypedValue(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("alice\n"), &out)

	got, err := p.Input("Username", "bob")
	require.NoError(t, err)

	assert.Equal(t, "alice", got)
	assert.Contains(t, out.String(), "Username [bob]: ")
}

func TestInputEmptyReplyUsesDefault(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("\n"), &out)

	got, err := p.Input("Username", "bob")
	require.NoError(t, err)

	assert.Equal(t, "bob", got)
}

func TestInputWithoutDefaultOmitsBrackets(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("x\n"), &out)

	_, err := p.Input("Username", "")
	require.NoError(t, err)

	assert.Equal(t, "Username: ", out.String())
}

func TestPasswordFallsBackToLineReadOffTerminal(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("s3cret\n"), &out)

	got, err := p.Password("Password")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", got)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := New(strings.NewReader(tt.reply), &out)

		got, err := p.Confirm("Do you really want to delete this user?")
		require.NoError(t, err)

		assert.Equal(t, tt.want, got, "reply %q", tt.reply)
		assert.Contains(t, out.String(), "[y/N]")
	}
}

func TestReadLineHandlesEOFWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("alice"), &out)

	got, err := p.Input("Username", "")
	require.NoError(t, err)

	assert.Equal(t, "alice", got)
}
