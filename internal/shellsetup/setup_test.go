package shellsetup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectShellInternal(t *testing.T) {
	tests := []struct {
		name          string
		goos          string
		envShell      string
		envComspec    string
		parent        func() string
		expectedShell string
	}{
		{
			name:          "uses SHELL when set",
			goos:          "linux",
			envShell:      "/bin/zsh",
			expectedShell: "zsh",
		},
		{
			name:          "falls back to parent shell",
			goos:          "linux",
			parent:        func() string { return "/usr/bin/bash" },
			expectedShell: "bash",
		},
		{
			name:          "parent powershell is pwsh",
			goos:          "windows",
			parent:        func() string { return `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe` },
			expectedShell: "pwsh",
		},
		{
			name:          "windows prefers COMSPEC",
			goos:          "windows",
			envComspec:    `C:\Windows\System32\cmd.exe`,
			expectedShell: "cmd",
		},
		{
			name:          "windows fallback",
			goos:          "windows",
			expectedShell: "pwsh",
		},
		{
			name:          "unix fallback",
			goos:          "darwin",
			parent:        func() string { return "" },
			expectedShell: "bash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := func(key string) string {
				switch key {
				case "SHELL":
					return tt.envShell
				case "COMSPEC":
					return tt.envComspec
				default:
					return ""
				}
			}
			got := detectShellInternal(tt.goos, env, tt.parent)
			if got != tt.expectedShell {
				t.Fatalf("detectShellInternal() = %q, want %q", got, tt.expectedShell)
			}
		})
	}
}

func TestNormalizeShellName(t *testing.T) {
	cases := map[string]string{
		"/usr/bin/zsh -l":              "zsh",
		`"C:\Program Files\pwsh.exe"`:  "pwsh",
		"'/opt/fish/bin/fish' --login": "fish",
		"  ":                           "",
		"TCSH":                         "tcsh",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeShellName(in), "input %q", in)
	}
}

func TestPrintSetupUsesOverride(t *testing.T) {
	var buf bytes.Buffer
	err := PrintSetup(&buf, "fish", Config{
		Executable:   "/usr/local/bin/mdir",
		DetectParent: func() string { t.Fatal("parent detection should be skipped"); return "" },
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "function mdir")
	assert.Contains(t, out, `command "/usr/local/bin/mdir" &`)
	assert.Contains(t, out, "mdir_result_$mdir_pid.txt")
}

func TestScriptVariants(t *testing.T) {
	exe := "/bin/mdir"
	assert.Contains(t, Script("zsh", exe), "mdir() {")
	assert.Contains(t, Script("unknown", exe), "mdir() {")
	assert.Contains(t, Script("powershell", exe), "function mdir {")
	assert.Contains(t, Script("tcsh", exe), "alias mdir 'cd `/bin/mdir --print-dir`'")

	cmd := Script("cmd", exe)
	assert.Contains(t, cmd, `"/bin/mdir" --print-dir`)
	assert.Contains(t, cmd, `"%~1"==""`)
	assert.Contains(t, cmd, "%%d")
}

func TestWriteResult(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)

	require.NoError(t, WriteResult("/srv/data"))

	path := ResultPath(os.Getpid())
	assert.Equal(t, filepath.Join(dir, filepath.Base(path)), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", string(data))
}
