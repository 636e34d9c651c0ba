package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/ronlog/internal/config"
	"github.com/ariel-frischer/ronlog/internal/errors"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"config", "harvest", "init", "release", "show"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestHarvestCommand_Alias(t *testing.T) {
	assert.Contains(t, harvestCmd.Aliases, "comment-changes")
}

func TestHarvestCommand_Flags(t *testing.T) {
	for _, name := range []string{
		"delimiter", "body", "depth", "stop-at", "format", "heading",
		"category", "fallback-category", "keep-a-changelog",
		"link", "links", "output", "repository",
	} {
		assert.NotNil(t, harvestCmd.Flags().Lookup(name), "missing flag %q", name)
	}
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"success":          {nil, ExitSuccess},
		"explicit code":    {NewExitError(ExitUsage), ExitUsage},
		"repository error": {&errors.RepositoryAccessError{Reason: "gone"}, ExitRepositoryUnavailable},
		"version error":    {&errors.MalformedVersionError{Input: "x", Reason: "bad"}, ExitDataError},
		"encoding error":   {&errors.EncodingError{Reason: "bad"}, ExitDataError},
		"argument error":   {errors.NewArgumentError("no delimiter"), ExitInvalidArguments},
		"config error":     {errors.NewConfigError("bad yaml"), ExitFailure},
		"plain error":      {assert.AnError, ExitFailure},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestConfigInit_WritesTemplate(t *testing.T) {
	t.Cleanup(func() { configInitPath = ""; configInitForce = false })

	configInitPath = filepath.Join(t.TempDir(), ".ronlog.yml")
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	require.NoError(t, runConfigInit(cmd))

	cfg, err := config.Load(configInitPath)
	require.NoError(t, err, "the written template must load cleanly")
	assert.Equal(t, "rst", cfg.Format)
}

func TestConfigInit_RefusesOverwriteWithoutForce(t *testing.T) {
	t.Cleanup(func() { configInitPath = ""; configInitForce = false })

	configInitPath = filepath.Join(t.TempDir(), ".ronlog.yml")
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	require.NoError(t, runConfigInit(cmd))

	err := runConfigInit(cmd)
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))

	configInitForce = true
	assert.NoError(t, runConfigInit(cmd))
}

func TestCollectLinks(t *testing.T) {
	t.Cleanup(func() { harvestLinks = nil; harvestLinksFile = "" })

	harvestLinks = []string{"docs=https://example.com/docs", "api=https://example.com/api"}
	harvestLinksFile = ""

	links, err := collectLinks()
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "docs", links[0].Name)
	assert.Equal(t, "https://example.com/docs", links[0].Target)
}

func TestCollectLinks_MalformedPair(t *testing.T) {
	t.Cleanup(func() { harvestLinks = nil })

	harvestLinks = []string{"nodelimiter"}
	_, err := collectLinks()
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}
