package options

import (
	"testing"

	"github.com/docopt/docopt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, tty bool, argv ...string) {
	t.Helper()

	p := &docopt.Parser{HelpHandler: docopt.NoHelpHandler}

	// A nil argv means the test binary's own arguments.
	opts, err := p.ParseArgs(usage, append([]string{}, argv...), Version)
	require.NoError(t, err)

	set(opts, tty)
}

func TestInteractive(t *testing.T) {
	parse(t, true)

	assert.True(t, Interactive())
	assert.False(t, Live())
	assert.Empty(t, Script())
	assert.Empty(t, Expression())
	assert.Empty(t, Includes())

	parse(t, false)
	assert.False(t, Interactive())
}

func TestScript(t *testing.T) {
	parse(t, true, "-n", "-c", "tern.yaml", "-i", "a.tern", "-i", "b.tern", "main.tern")

	assert.False(t, Interactive())
	assert.True(t, NoStdlib())
	assert.Equal(t, "tern.yaml", Config())
	assert.Equal(t, []string{"a.tern", "b.tern"}, Includes())
	assert.Equal(t, "main.tern", Script())
	assert.NoError(t, Validate())
}

func TestRepeatedIncludes(t *testing.T) {
	parse(t, false, "-i", "a.tern", "-i", "b.tern", "-x", "1")
	assert.Equal(t, []string{"a.tern", "b.tern"}, Includes())

	parse(t, false, "-i", "a.tern", "-i", "a.tern")
	assert.Equal(t, []string{"a.tern"}, Includes())
}

func TestEditorWithoutLive(t *testing.T) {
	parse(t, false, "-e", "main.tern")
	assert.ErrorIs(t, Validate(), ErrEditorWithoutLive)

	parse(t, false, "-l", "main.tern")
	assert.NoError(t, Validate())
}

func TestExpression(t *testing.T) {
	parse(t, true, "-x", "1 + 2")

	assert.False(t, Interactive())
	assert.Equal(t, "1 + 2", Expression())
	assert.Empty(t, Script())
}

func TestLive(t *testing.T) {
	parse(t, false, "-l", "-e", "main.tern")

	assert.True(t, Live())
	assert.True(t, Editor())
	assert.Equal(t, "main.tern", Script())
	assert.NoError(t, Validate())
}

func TestInvalid(t *testing.T) {
	p := &docopt.Parser{HelpHandler: docopt.NoHelpHandler}

	for _, argv := range [][]string{
		{"-l", "-x", "1"},
		{"-x"},
	} {
		_, err := p.ParseArgs(usage, argv, Version)
		assert.Error(t, err, argv)
	}
}
