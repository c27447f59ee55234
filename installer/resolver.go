package installer

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/crafted-tech/pkgexec/platform"
)

// Well-known command line placeholders. Names are matched case-insensitively.
const (
	VarPackageRoot = "PackageRoot"
	VarSystemDir   = "SystemDir"
	VarWinDir      = "WinDir"
	VarTemp        = "Temp"
)

// Resolver expands placeholders in a vendor command line and splits it into
// an executable path and an argument string. An empty executable means the
// command does not resolve to an existing file.
type Resolver interface {
	Resolve(workingDir, commandLine string) (executable, arguments string)
}

var placeholder = regexp.MustCompile(`%([A-Za-z0-9_]+)%`)

// VariableResolver is the default Resolver. %PackageRoot% expands to the
// working directory unless overridden in Vars.
type VariableResolver struct {
	// Vars holds additional or overriding placeholder values.
	Vars map[string]string

	// LookPath searches PATH for bare executable names. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// NewVariableResolver creates a VariableResolver with the given extra variables.
func NewVariableResolver(vars map[string]string) *VariableResolver {
	return &VariableResolver{Vars: vars, LookPath: exec.LookPath}
}

// Expand replaces every known %NAME% placeholder in s. Unknown placeholders
// are left untouched.
func (r *VariableResolver) Expand(workingDir, s string) string {
	values := map[string]string{
		strings.ToLower(VarPackageRoot): workingDir,
		strings.ToLower(VarSystemDir):   platform.SystemDir(),
		strings.ToLower(VarWinDir):      platform.WindowsDir(),
		strings.ToLower(VarTemp):        strings.TrimRight(os.TempDir(), `\/`),
	}
	for k, v := range r.Vars {
		values[strings.ToLower(k)] = v
	}

	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := strings.ToLower(m[1 : len(m)-1])
		if v, ok := values[name]; ok {
			return v
		}
		return m
	})
}

// Resolve implements Resolver. A leading quoted path is taken verbatim. For
// an unquoted command line, each whitespace boundary is tried from left to
// right so unquoted paths with spaces ("C:\Program Files\x\setup.exe /s")
// still resolve; when nothing matches, the first token is the executable.
func (r *VariableResolver) Resolve(workingDir, commandLine string) (string, string) {
	line := strings.TrimSpace(r.Expand(workingDir, commandLine))
	if line == "" {
		return "", ""
	}

	if strings.HasPrefix(line, `"`) {
		exe, rest, _ := strings.Cut(line[1:], `"`)
		return r.locate(workingDir, exe), strings.TrimSpace(rest)
	}

	for i, ch := range line {
		if !unicode.IsSpace(ch) {
			continue
		}
		if exe := r.locate(workingDir, line[:i]); exe != "" {
			return exe, strings.TrimSpace(line[i:])
		}
	}
	if exe := r.locate(workingDir, line); exe != "" {
		return exe, ""
	}

	first, rest, _ := strings.Cut(line, " ")
	return r.locate(workingDir, first), strings.TrimSpace(rest)
}

// locate returns the absolute path of an existing file, or "".
func (r *VariableResolver) locate(workingDir, exe string) string {
	if exe == "" {
		return ""
	}
	if filepath.IsAbs(exe) {
		if isFile(exe) {
			return exe
		}
		return ""
	}

	if workingDir != "" {
		if candidate := filepath.Join(workingDir, exe); isFile(candidate) {
			return candidate
		}
	}

	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if found, err := lookPath(exe); err == nil {
		if abs, err := filepath.Abs(found); err == nil {
			return abs
		}
		return found
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// escapeStripper removes the cmd.exe escape character and folds the control
// characters that manifests carry over from multi-line XML values.
var escapeStripper = strings.NewReplacer("^", "", "\r", " ", "\n", " ", "\t", " ")

// StripEscapes removes escape characters from an argument string.
func StripEscapes(arguments string) string {
	return strings.TrimSpace(escapeStripper.Replace(arguments))
}
