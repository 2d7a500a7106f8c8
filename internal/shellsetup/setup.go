// Package shellsetup prints the shell function that lets mdir change the
// caller's working directory on exit, and writes the file that function reads.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides the path of the running binary.
	Executable string
}

// ResultPath is the file a finished mdir process leaves its directory in.
// The shell function derives the same name from the child's pid.
func ResultPath(pid int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("mdir_result_%d.txt", pid))
}

// WriteResult records dir for the shell function of the current process.
func WriteResult(dir string) error {
	// Owner-only: the shell function refuses files it does not own.
	return os.WriteFile(ResultPath(os.Getpid()), []byte(dir), 0o600)
}

// PrintSetup writes the integration snippet for shellOverride, or for the
// detected shell when shellOverride is empty.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := canonicalShellName(normalizeShellName(shellOverride))
	if shell == "" {
		shell = detectShell(parent)
	}

	exe := cfg.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			exe = "mdir"
		}
	}

	_, err := io.WriteString(w, Script(shell, exe))
	return err
}

// Script returns the snippet for shell. Unknown shells get the POSIX version.
func Script(shell, exe string) string {
	quoted := strconv.Quote(exe)
	switch canonicalShellName(shell) {
	case "fish":
		return fmt.Sprintf(fishScript, quoted, quoted)
	case "pwsh":
		return fmt.Sprintf(pwshScript, quoted, quoted)
	case "tcsh", "csh":
		return fmt.Sprintf(cshScript, exe)
	case "cmd":
		return fmt.Sprintf(cmdScript, quoted, quoted)
	default:
		return fmt.Sprintf(posixScript, quoted, quoted)
	}
}

const posixScript = `mdir() {
    if [ "$#" -gt 0 ]; then
        command %s "$@"
        return $?
    fi

    command %s &
    mdir_pid=$!
    wait $mdir_pid

    result_file="${TMPDIR:-/tmp}/mdir_result_$mdir_pid.txt"
    if [ -f "$result_file" ] && [ ! -L "$result_file" ] && [ -O "$result_file" ]; then
        dest=$(cat "$result_file" 2>/dev/null)
        rm -f "$result_file"
        if [ -d "$dest" ] 2>/dev/null; then
            cd "$dest"
        fi
    else
        rm -f "$result_file" 2>/dev/null
    fi
}
`

const fishScript = `function mdir
    if test (count $argv) -gt 0
        command %s $argv
        return $status
    end

    command %s &
    set mdir_pid $last_pid
    wait $mdir_pid

    set tmp $TMPDIR
    test -n "$tmp"; or set tmp /tmp
    set result_file "$tmp/mdir_result_$mdir_pid.txt"
    if test -f "$result_file" -a ! -L "$result_file" -a -O "$result_file"
        set dest (cat "$result_file" 2>/dev/null)
        if test -d "$dest" 2>/dev/null
            builtin cd "$dest"
        end
    end
    rm -f "$result_file" 2>/dev/null
end
`

const pwshScript = `function mdir {
    param([Parameter(ValueFromRemainingArguments=$true)][string[]]$Args)
    if ($Args.Count -gt 0) {
        & %s @Args
        return
    }

    $process = Start-Process -FilePath %s -NoNewWindow -PassThru
    $process.WaitForExit()

    $resultFile = Join-Path $env:TEMP "mdir_result_$($process.Id).txt"
    try {
        if (Test-Path $resultFile -PathType Leaf) {
            $dest = Get-Content $resultFile -Raw -ErrorAction SilentlyContinue | ForEach-Object { $_.Trim() }
            if ((Test-Path $dest -PathType Container) -and -not [string]::IsNullOrEmpty($dest)) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $resultFile -ErrorAction SilentlyContinue
    }
}
`

// csh has no functions; --print-dir writes the final directory to stdout.
const cshScript = "alias mdir 'cd `%s --print-dir`'\n"

const cmdScript = `:: Save as mdir.cmd and run "call mdir.cmd" from cmd.exe sessions.
@echo off
if "%%~1"=="" (
    for /f "delims=" %%%%d in ('%s --print-dir') do (
        if not "%%%%d"=="" cd /d "%%%%d"
    )
    exit /b 0
) else (
    %s %%*
    exit /b %%errorlevel%%
)
`

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell != "" {
			switch shell {
			case "pwsh", "cmd":
				return shell
			}
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

// normalizeShellName reduces "/usr/bin/zsh -l" or `"C:\...\pwsh.exe"` to its
// lowercase base name without extension.
func normalizeShellName(value string) string {
	value = extractExecutable(strings.TrimSpace(value))
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := strings.ToLower(path.Base(value))
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	if value == "" {
		return ""
	}

	for _, q := range []string{`"`, "'"} {
		if rest, ok := strings.CutPrefix(value, q); ok {
			if idx := strings.Index(rest, q); idx >= 0 {
				return rest[:idx]
			}
			return rest
		}
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}
