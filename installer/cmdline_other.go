//go:build !windows

package installer

import "os/exec"

func setArguments(cmd *exec.Cmd, executable, arguments string) {
	cmd.Args = append([]string{executable}, SplitArguments(arguments)...)
}
