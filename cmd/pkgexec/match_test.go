package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeMatch(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	cmd := newMatchCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		output   string
		exitCode int
	}{
		{"satisfied", []string{"1.0^2.0", "1.5"}, "Satisfied", 0},
		{"not satisfied", []string{"ff^", "100"}, "NotSatisfied", matchExitNotSatisfied},
		{"unparseable", []string{"1.2.x", "1.2.3"}, "Unparseable", matchExitUnparseable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeMatch(t, tt.args...)
			assert.Equal(t, tt.output+"\n", out)

			if tt.exitCode == 0 {
				require.NoError(t, err)
				return
			}
			var exitErr *exitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.exitCode, exitErr.code)
		})
	}
}

func TestMatchCmd_RequiresTwoArgs(t *testing.T) {
	_, err := executeMatch(t, "1.0")
	require.Error(t, err)

	var exitErr *exitError
	assert.NotErrorAs(t, err, &exitErr)
}

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "pkgexec dev\n", out.String())
}

func TestMonitorConfig_FromViper(t *testing.T) {
	t.Setenv("PKGEXEC_MONITOR_WARMUP", "5s")
	cfg := monitorConfig()
	assert.Equal(t, "5s", cfg.WarmUp.String())
	assert.Positive(t, cfg.Interval)
}
