package cmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/zigcc/zbuild/internal/cmd"
)

func TestRootCommandDefaults(t *testing.T) {
	root, err := NewRootCommand()
	require.NoError(t, err)

	require.NoError(t, root.PreRun(nil, nil))

	assert.Equal(t, ".", root.Opts.Project)
	assert.Equal(t, "zig", root.Opts.Zig)
	assert.Equal(t, "cp312", root.Opts.PythonTag)
}

func TestRootCommandEnvBinding(t *testing.T) {
	t.Setenv("ZBUILD_PROJECT", "/tmp/demo-project")
	t.Setenv("ZBUILD_PYTHON_TAG", "cp313")

	root, err := NewRootCommand()
	require.NoError(t, err)

	require.NoError(t, root.PreRun(nil, nil))

	assert.Equal(t, "/tmp/demo-project", root.Opts.Project)
	assert.Equal(t, "cp313", root.Opts.PythonTag)
}

func TestRootCommandFlagPrecedence(t *testing.T) {
	t.Setenv("ZBUILD_ZIG", "/usr/bin/zig")

	root, err := NewRootCommand()
	require.NoError(t, err)
	require.NoError(t, root.PersistentFlags().Set("zig", "/opt/zig/zig"))

	require.NoError(t, root.PreRun(nil, nil))

	assert.Equal(t, "/opt/zig/zig", root.Opts.Zig)
}

func TestRootCommandSubcommands(t *testing.T) {
	root, err := NewRootCommand()
	require.NoError(t, err)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"wheel", "sdist", "metadata", "publish", "serve"})
}
