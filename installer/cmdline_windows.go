//go:build windows

package installer

import (
	"os/exec"
	"syscall"
)

// setArguments hands the vendor argument string to CreateProcess verbatim.
// Installers parse their own command lines, and re-quoting them through
// os/exec's per-argument escaping would change what they see.
func setArguments(cmd *exec.Cmd, executable, arguments string) {
	line := syscall.EscapeArg(executable)
	if arguments != "" {
		line += " " + arguments
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: line}
}
