package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig writes a config into a temp dir and returns options pointing
// at it. Storage and logs stay inside the same dir.
func testConfig(t *testing.T, provider, baseURL string) *RootOptions {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`provider: %s
model: test-model
base_url: %q
storage:
  backend: file
  path: %s
export_dir: %s
log_file: %s
`, provider, baseURL, filepath.Join(dir, "data"), filepath.Join(dir, "exports"), filepath.Join(dir, "promptmaster.log"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0600))
	return &RootOptions{ConfigPath: path}
}

// execute runs a root command with args against the given config.
func execute(t *testing.T, opts *RootOptions, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand("test")
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--config", opts.ConfigPath}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand("1.2.3")
	require.NotNil(t, cmd)
	assert.Equal(t, "promptmaster", cmd.Use)
	assert.Contains(t, cmd.Long, "Tier-1 prompt")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand("test")
	commands := [][]string{
		{"generate"},
		{"library"},
		{"library", "list"},
		{"library", "show"},
		{"library", "use"},
		{"library", "delete"},
		{"library", "export"},
		{"library", "import"},
		{"config", "show"},
		{"config", "path"},
		{"version"},
	}

	for _, path := range commands {
		t.Run(fmt.Sprint(path), func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand("test")

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestGenerateCommandFlags(t *testing.T) {
	cmd := NewRootCommand("test")
	genCmd, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	for _, name := range []string{"category", "tone", "format", "constraints", "depth", "save", "tier1-only", "copy"} {
		assert.NotNil(t, genCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "s", genCmd.Flags().Lookup("save").Shorthand)
}

func TestVersionCommand(t *testing.T) {
	opts := testConfig(t, "ollama", "")
	out, _, err := execute(t, opts, "version")
	require.NoError(t, err)
	assert.Equal(t, "promptmaster test\n", out)
}

func TestConfigPath(t *testing.T) {
	opts := testConfig(t, "ollama", "")
	out, _, err := execute(t, opts, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, opts.ConfigPath+"\n", out)
}

func TestConfigShowMasksKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: openai\napi_key: sk-abcdefghijklmnop\nmodel: gpt-4o-mini\nlog_file: "+filepath.Join(dir, "log")+"\n"), 0600))

	out, _, err := execute(t, &RootOptions{ConfigPath: path}, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "provider: openai")
	assert.Contains(t, out, "sk-a****mnop")
	assert.NotContains(t, out, "sk-abcdefghijklmnop")
}

func TestConfigShowDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	out, _, err := execute(t, &RootOptions{ConfigPath: path}, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "does not exist yet")
	assert.Contains(t, out, "provider: gemini")
}

func TestEphemeralLeavesStorageUntouched(t *testing.T) {
	opts := testConfig(t, "ollama", "")
	importBackup(t, opts)

	out, _, err := execute(t, opts, "--ephemeral", "library", "list")
	require.NoError(t, err)
	assert.Equal(t, "No saved prompts yet.\n", out)

	out, _, err = execute(t, opts, "library", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Draft a cover letter")
}
