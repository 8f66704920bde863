package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/denysvitali/dirscope-runtime/pkg/dirlist"
	"github.com/denysvitali/dirscope-runtime/pkg/fserr"
)

var sample = dirlist.Listing{
	{Name: "A", IsDir: true},
	{Name: "a.txt", IsDir: false},
	{Name: "b.txt", IsDir: false},
}

func TestRenderListing_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderListing(&buf, "/x", sample, outputJSON))

	var got dirlist.Listing
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)
}

func TestRenderListing_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderListing(&buf, "/x", sample, outputYAML))

	var got dirlist.Listing
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)
	assert.Contains(t, buf.String(), "is_dir: true")
}

func TestRenderListing_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderListing(&buf, "/x", sample, outputTable))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "/x")
	assert.Contains(t, lines[1], "A/")
	assert.Contains(t, lines[1], "dir")
	assert.Contains(t, lines[2], "a.txt")
	assert.Contains(t, lines[3], "b.txt")
}

func TestRenderListing_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderListing(&buf, "/x", dirlist.Listing{}, outputTable))
	assert.Contains(t, buf.String(), "(empty)")
}

func TestRenderListing_UnknownFormat(t *testing.T) {
	err := renderListing(&bytes.Buffer{}, "/x", sample, "xml")
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "Documents"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".profile"), []byte("x"), 0644))
	t.Setenv("HOME", home)

	t.Run("home", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"home"})
		_, err := rootCmd.ExecuteC()
		require.NoError(t, err)
		assert.Equal(t, home+"\n", out.String())
	})

	t.Run("ls defaults to home", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"ls", "--output", "json"})
		_, err := rootCmd.ExecuteC()
		require.NoError(t, err)

		var got dirlist.Listing
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, dirlist.Listing{
			{Name: ".profile", IsDir: false},
			{Name: "Documents", IsDir: true},
		}, got)
	})

	t.Run("ls missing directory", func(t *testing.T) {
		var out, errOut bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&errOut)
		rootCmd.SetArgs([]string{"ls", "--output", "json", filepath.Join(home, "missing")})
		_, err := rootCmd.ExecuteC()
		require.Error(t, err)
		assert.Equal(t, 1, strings.Count(errOut.String(), "missing"))
		assert.NotContains(t, errOut.String(), "Error:")
		assert.Equal(t, fserr.DirectoryOpenFailed, fserr.KindOf(err))

		var printed *reportedError
		assert.True(t, errors.As(err, &printed))
		assert.Empty(t, out.String())
	})

	t.Run("argument errors are not marked as shown", func(t *testing.T) {
		var errOut bytes.Buffer
		rootCmd.SetErr(&errOut)
		rootCmd.SetArgs([]string{"home", "extra"})
		_, err := rootCmd.ExecuteC()
		require.Error(t, err)

		var printed *reportedError
		assert.False(t, errors.As(err, &printed))
		assert.Empty(t, errOut.String())
	})
}
