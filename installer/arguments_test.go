package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitArguments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t ", nil},
		{"plain", "/s /norestart", []string{"/s", "/norestart"}},
		{"double quotes", `/log "C:\Temp\setup log.txt"`, []string{"/log", `C:Tempsetup log.txt`}},
		{"single quotes keep backslashes", `/log 'C:\Temp\a b.txt'`, []string{"/log", `C:\Temp\a b.txt`}},
		{"quote inside token", `/v"/qn REBOOT=0"`, []string{"/v/qn REBOOT=0"}},
		{"escaped space", `a\ b c`, []string{"a b", "c"}},
		{"empty quoted argument", `a "" b`, []string{"a", "", "b"}},
		{"trailing backslash", `dir\`, []string{`dir\`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitArguments(tt.input))
		})
	}
}
