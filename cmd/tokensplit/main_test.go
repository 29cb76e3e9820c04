package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tokensplit/internal/config"
	"github.com/dshills/tokensplit/pkg/types"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(types.ErrInvalidBudget))
	assert.Equal(t, 3, exitCode(fmt.Errorf("wrap: %w", types.ErrInputNotFound)))
	assert.Equal(t, 4, exitCode(types.ErrMissingHeader))
	assert.Equal(t, 5, exitCode(types.ErrUnsupportedMultiline))
	assert.Equal(t, 6, exitCode(types.ErrTokenization))
	assert.Equal(t, 1, exitCode(fmt.Errorf("anything else")))
}

func TestPickString(t *testing.T) {
	assert.Equal(t, "a", pickString("a", "b"))
	assert.Equal(t, "b", pickString("", "b"))
	assert.Equal(t, "", pickString("", ""))
}

func TestCSVCommand_ForcesTabularPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TOKENSPLIT_DB_PATH", dir)

	// The extension alone would send the file down the text path; the
	// csv command must pack it as rows with a replicated header.
	src := filepath.Join(dir, "export.dat")
	require.NoError(t, os.WriteFile(src, []byte("a,b\n1,2\n3,4\n"), 0644))

	root := newRootCmd()
	root.SetArgs([]string{
		"csv", src,
		"--config", filepath.Join(dir, "config.yaml"),
		"--budget", "100",
		"--approx",
		"--out", filepath.Join(dir, "out"),
	})
	require.NoError(t, root.Execute())

	body, err := os.ReadFile(filepath.Join(dir, "out", "export_part001.dat"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,4\n", string(body))
}

func TestSplitOptions_ModelHintEnvFallback(t *testing.T) {
	t.Setenv("TOKENSPLIT_MODEL", "gpt-4o")

	// Env fills in when the flag is unset, and beats the config file.
	cfg := config.DefaultConfig()
	cfg.Model = "gpt-3.5-turbo"
	opts := splitOptions(&splitFlags{}, cfg, "in.txt")
	assert.Equal(t, "gpt-4o", opts.Token.ModelHint)

	// An explicit flag still wins.
	opts = splitOptions(&splitFlags{model: "gpt-4"}, cfg, "in.txt")
	assert.Equal(t, "gpt-4", opts.Token.ModelHint)
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"text", "csv", "count", "runs", "serve"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
