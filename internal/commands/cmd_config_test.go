package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/veil/internal/core/config"
	"github.com/hay-kot/veil/internal/printer"
)

func runConfigCmd(t *testing.T, configPath string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	flags := &Flags{ConfigPath: configPath}

	app := &cli.Command{
		Name:           "veil",
		Writer:         &out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	app = NewConfigCmd(flags).Register(app)

	ctx := printer.NewContext(context.Background(), printer.New(&errOut))
	err = app.Run(ctx, append([]string{"veil", "config"}, args...))
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigValidate_Text(t *testing.T) {
	_, stderr, err := runConfigCmd(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Configuration is valid")

	path := writeFile(t, "animation:\n  fps: 1000\n")
	_, stderr, err = runConfigCmd(t, path, "validate")
	require.Error(t, err)
	assert.Contains(t, stderr, "animation.fps")
	assert.Contains(t, stderr, "1 error(s)")
}

func TestConfigValidate_JSON(t *testing.T) {
	path := writeFile(t, "frame:\n  default_variant: sidebar\n  max_width: 3\n")

	stdout, _, err := runConfigCmd(t, path, "validate", "--format", "json")
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	var out struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.False(t, out.Valid)
	require.Len(t, out.Errors, 2)
	assert.Equal(t, "frame.default_variant", out.Errors[0].Field)
	assert.Equal(t, "frame.max_width", out.Errors[1].Field)
}

func TestConfigDefaults(t *testing.T) {
	stdout, _, err := runConfigCmd(t, "", "defaults")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestExtractFieldErrors(t *testing.T) {
	assert.Nil(t, extractFieldErrors(nil))

	plain := errors.New("parse config file: bad")
	got := extractFieldErrors(plain)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Field)

	wrapped := criterio.NewFieldErrors("keys.close", errors.New("empty"))
	got = extractFieldErrors(wrapped)
	require.Len(t, got, 1)
	assert.Equal(t, "keys.close", got[0].Field)
}
