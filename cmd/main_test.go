package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	opts, err := parseArgs([]string{"1234567890"})
	require.NoError(t, err)

	assert.Equal(t, []string{"1234567890"}, opts.References)
	assert.Equal(t, []string{"html"}, opts.Outputs)
	assert.True(t, opts.Clipboard)
	assert.True(t, opts.Archive)
	assert.False(t, opts.ShowThread)
	assert.False(t, opts.Pretty)
	assert.Empty(t, opts.SaveDir)
}

func TestParseArgsRepeatableOutputs(t *testing.T) {
	opts, err := parseArgs([]string{"-o", "html", "-o", "img", "-output", "json", "123"})
	require.NoError(t, err)

	assert.Equal(t, []string{"html", "img", "json"}, opts.Outputs)
	assert.True(t, opts.WantsOutput("img"))
	assert.False(t, opts.WantsOutput("pdf"))
}

func TestParseArgsFlags(t *testing.T) {
	opts, err := parseArgs([]string{
		"-thread", "-css", "-pretty", "-schema",
		"-save", "out", "-archive=false",
		"https://twitter.com/a/status/1", "https://mastodon.social/@b/2",
	})
	require.NoError(t, err)

	assert.True(t, opts.ShowThread)
	assert.True(t, opts.ShowCSS)
	assert.True(t, opts.Pretty)
	assert.True(t, opts.SchemaOrg)
	assert.Equal(t, "out", opts.SaveDir)
	assert.False(t, opts.Archive)
	assert.Len(t, opts.References, 2)
}

func TestParseArgsNoReferences(t *testing.T) {
	_, err := parseArgs([]string{"-thread"})
	assert.Error(t, err)
}

func TestParseArgsUnknownOutput(t *testing.T) {
	_, err := parseArgs([]string{"-o", "pdf", "123"})
	assert.Error(t, err)
}

func TestParseArgsNeedsADestination(t *testing.T) {
	_, err := parseArgs([]string{"-clipboard=false", "123"})
	assert.Error(t, err)

	// JSON alone can go to stdout.
	opts, err := parseArgs([]string{"-clipboard=false", "-o", "json", "123"})
	require.NoError(t, err)
	assert.Equal(t, []string{"json"}, opts.Outputs)

	// Saving satisfies the requirement for HTML too.
	_, err = parseArgs([]string{"-clipboard=false", "-save", "out", "123"})
	assert.NoError(t, err)
}
