package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/contactbook/internal/domain"
)

// run executes the command tree against dataFile with a private HOME.
func run(t *testing.T, dataFile, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root, _ := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--data-file", dataFile}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands_Lifecycle(t *testing.T) {
	data := filepath.Join(t.TempDir(), "data.txt")

	_, err := run(t, data, "", "list")
	require.ErrorIs(t, err, domain.ErrDataFileMissing)

	_, err = run(t, data, "", "init")
	require.NoError(t, err)
	raw, err := os.ReadFile(data)
	require.NoError(t, err)
	assert.Equal(t, "#0\n", string(raw))

	_, err = run(t, data, "", "init")
	assert.Error(t, err, "init refuses to overwrite without --force")

	_, err = run(t, data, "", "add", "--name", "zoe", "--phone", "3333333333", "--email", "zoeee@x.com")
	require.NoError(t, err)
	_, err = run(t, data, "", "add", "--name", "Amy", "--phone", "2222222222", "--email", "amyyy@x.com")
	require.NoError(t, err)

	_, err = run(t, data, "", "add", "--name", "Amos", "--phone", "2222222222", "--email", "amoss@x.com")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Mobile number already exists.")

	raw, err = os.ReadFile(data)
	require.NoError(t, err)
	assert.Equal(t, "#2\nAmy,2222222222,amyyy@x.com\nzoe,3333333333,zoeee@x.com\n", string(raw))

	out, err := run(t, data, "", "search", "--name", "AMY")
	require.NoError(t, err)
	assert.Contains(t, out, "amyyy@x.com")

	_, err = run(t, data, "", "search", "--phone", "0000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = run(t, data, "", "delete", "--email", "zoeee@x.com")
	assert.ErrorIs(t, err, errNotConfirmed)

	out, err = run(t, data, "", "delete", "--email", "zoeee@x.com", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "CONTACT DELETED SUCCESSFULLY")

	out, err = run(t, data, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Amy")
	assert.NotContains(t, out, "zoe")
}

func TestCommands_DeleteAmbiguousName(t *testing.T) {
	data := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(data, []byte(
		"#2\nbob,1111111111,bobby@x.com\nBob,3333333333,bobb2@x.com\n"), 0o644))

	out, err := run(t, data, "", "delete", "--name", "bob", "--yes")
	require.ErrorIs(t, err, domain.ErrInvalidSelection)
	assert.Contains(t, out, "bobb2@x.com")

	_, err = run(t, data, "", "delete", "--name", "bob", "--pick", "2", "--yes")
	require.NoError(t, err)

	raw, err := os.ReadFile(data)
	require.NoError(t, err)
	assert.Equal(t, "#1\nbob,1111111111,bobby@x.com\n", string(raw))
}

func TestCommands_QueryNeedsOneField(t *testing.T) {
	data := filepath.Join(t.TempDir(), "data.txt")
	_, err := run(t, data, "", "search", "--name", "a", "--phone", "1")
	assert.Error(t, err)
	_, err = run(t, data, "", "search")
	assert.Error(t, err)
}

func TestCommands_InteractiveSaveAndExit(t *testing.T) {
	data := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(data, []byte("#1\nbob,1111111111,bobby@x.com\n"), 0o644))

	out, err := run(t, data, "5\n6\n")
	require.NoError(t, err)
	assert.Contains(t, out, "bobby@x.com")
	assert.Contains(t, out, "Saving contacts and exiting...")
}
