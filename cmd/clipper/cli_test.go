package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/clipper"
	main "github.com/fwojciec/clipper/cmd/clipper"
	"github.com/fwojciec/clipper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	// Parse --help (Kong writes help to stdout)
	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()

	expectedCommands := []string{"search", "list", "show", "tag", "delete", "reassess", "config"}
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	expectedCommands := []string{"search", "list", "show", "tag", "delete", "reassess", "config"}
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}

	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_ListEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "test.db")
	m.ConfigPath = filepath.Join(dir, "config.yaml")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"list"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No articles found")
}

func TestMain_Run_FlagBeforeSubcommand(t *testing.T) {
	t.Parallel()

	// Top-level flags may precede the subcommand, so command dispatch
	// must follow kong's resolved command rather than the raw args.
	dir := t.TempDir()
	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "test.db")
	m.ConfigPath = filepath.Join(dir, "config.yaml")
	m.SearchService = &mock.SearchService{
		SearchFn: func(_ context.Context, query string) ([]clipper.SearchResult, error) {
			assert.Equal(t, "go testing", query)
			return nil, nil
		},
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"-v", "search", "go testing"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Saved 0 articles")
}

func TestMain_Run_ConfigShowSeedsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "test.db")
	m.ConfigPath = filepath.Join(dir, "config.yaml")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"config", "show"}, stdout, stderr)
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "quality (")
	assert.Contains(t, output, "excluded-urls (")
}
