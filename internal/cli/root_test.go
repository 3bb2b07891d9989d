package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/errors"
)

// sandbox moves the test into an empty directory with no config files on
// the search path and returns that directory.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv(config.EnvConfigPath, "")
	return dir
}

// execute runs the CLI with args and returns what the commands wrote to
// their output writer.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// mustExecute is execute for invocations that must succeed.
func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("forcegraph %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRootCommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"run", "watch", "serve", "config", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing command %q in %v", want, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing persistent --config flag")
	}
}

func TestVersion(t *testing.T) {
	old := buildinfo.Version
	buildinfo.Version = "v9.9.9"
	t.Cleanup(func() { buildinfo.Version = old })

	out := mustExecute(t, "--version")
	if !strings.Contains(out, "forcegraph version v9.9.9") {
		t.Errorf("--version = %q", out)
	}
}

func TestRunWritesDOT(t *testing.T) {
	dir := sandbox(t)
	mustExecute(t, "run", "-t", "star:4", "-f", "dot", "-o", "star.dot", "--iterations", "10")

	dot := readFile(t, filepath.Join(dir, "star.dot"))
	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("output is not a DOT graph:\n%s", dot)
	}
	for _, edge := range []string{`"0" -- "1"`, `"0" -- "2"`, `"0" -- "3"`} {
		if !strings.Contains(dot, edge) {
			t.Errorf("missing edge %s", edge)
		}
	}
}

func TestRunDefaultOutputName(t *testing.T) {
	dir := sandbox(t)
	mustExecute(t, "run", "-f", "txt", "--iterations", "5")
	if !exists(filepath.Join(dir, "forcegraph.txt")) {
		t.Error("forcegraph.txt not written")
	}
}

func TestRunStdout(t *testing.T) {
	sandbox(t)
	out := mustExecute(t, "run", "-t", "chain:3", "-f", "txt", "-o", "-", "--iterations", "5", "--width", "40", "--height", "12")

	if !strings.Contains(out, "o") {
		t.Errorf("no nodes drawn:\n%s", out)
	}
	if got := strings.Count(out, "\n"); got != 12 {
		t.Errorf("lines = %d, want one per canvas row (12)", got)
	}
}

func TestRunMultipleFormats(t *testing.T) {
	dir := sandbox(t)
	mustExecute(t, "run", "-t", "ring:5", "-f", "dot,txt", "-o", "ring.svg", "--iterations", "3")

	for name, want := range map[string]bool{"ring.dot": true, "ring.txt": true, "ring.svg": false} {
		if got := exists(filepath.Join(dir, name)); got != want {
			t.Errorf("%s exists = %v, want %v", name, got, want)
		}
	}
	if dot := readFile(t, filepath.Join(dir, "ring.dot")); !strings.Contains(dot, `"4" -- "0"`) {
		t.Errorf("ring.dot missing closing edge:\n%s", dot)
	}
}

func TestRunPinnedNode(t *testing.T) {
	dir := sandbox(t)
	mustExecute(t, "run", "-t", "star:3", "-f", "dot", "-o", "pinned.dot", "--pin", "0", "--iterations", "2")
	if dot := readFile(t, filepath.Join(dir, "pinned.dot")); !strings.Contains(dot, "#e4572e") {
		t.Errorf("pinned node not colored:\n%s", dot)
	}
}

func TestRunRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad topology", []string{"-t", "blob:3"}, errors.ErrCodeInvalidTopology},
		{"bad update mode", []string{"--update", "sideways"}, errors.ErrCodeInvalidConfig},
		{"bad placement", []string{"--placement", "spiral"}, errors.ErrCodeInvalidInput},
		{"bad format", []string{"-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"stdout needs one format", []string{"-f", "dot,txt", "-o", "-"}, errors.ErrCodeInvalidInput},
		{"unknown pin", []string{"--pin", "99"}, errors.ErrCodeUnknownNode},
		{"negative width", []string{"--width", "-1"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sandbox(t)
			args := append([]string{"run", "--iterations", "1", "-o", "-"}, tt.args...)
			if !slices.Contains(tt.args, "-f") {
				args = append(args, "-f", "txt")
			}
			_, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestRunUsesConfigFile(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, "forcegraph.toml", `
topology = "ring:4"

[layout]
iterations = 3

[render]
format = "dot"
`)

	mustExecute(t, "run", "-o", "from-config.dot")
	if dot := readFile(t, filepath.Join(dir, "from-config.dot")); !strings.Contains(dot, `"3" -- "0"`) {
		t.Errorf("config topology not used:\n%s", dot)
	}

	// Flags win over the file.
	mustExecute(t, "run", "-t", "chain:2", "-o", "from-flags.dot")
	dot := readFile(t, filepath.Join(dir, "from-flags.dot"))
	if !strings.Contains(dot, `"0" -- "1"`) || strings.Contains(dot, `"2"`) {
		t.Errorf("flag topology not used:\n%s", dot)
	}
}

func TestExplicitConfigFlag(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "topology: star:3\nrender:\n  format: dot\n")

	mustExecute(t, "--config", path, "run", "-o", "custom.dot", "--iterations", "1")
	if dot := readFile(t, filepath.Join(dir, "custom.dot")); !strings.Contains(dot, `"0" -- "2"`) {
		t.Errorf("--config file not used:\n%s", dot)
	}

	if _, err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "run"); err == nil {
		t.Error("missing --config file accepted")
	}
}

func TestMissingConfigEnvFails(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, "forcegraph.toml", "topology = \"ring:4\"\n")
	t.Setenv(config.EnvConfigPath, filepath.Join(dir, "gone.toml"))

	if _, err := execute(t, "run", "-f", "txt", "-o", "-", "--iterations", "1"); err == nil {
		t.Error("run fell back to ./forcegraph.toml when $" + config.EnvConfigPath + " is missing")
	}
}

func TestConfigDefault(t *testing.T) {
	sandbox(t)
	out := mustExecute(t, "config")

	cfg, err := config.Parse([]byte(out), ".toml")
	if err != nil {
		t.Fatalf("Parse(config output) error = %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestConfigShow(t *testing.T) {
	sandbox(t)
	writeFile(t, "forcegraph.toml", "seed = 7\n")

	out := mustExecute(t, "config", "show", "--yaml")
	cfg, err := config.Parse([]byte(out), ".yaml")
	if err != nil {
		t.Fatalf("Parse(config show) error = %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "conf", "forcegraph.yaml")

	mustExecute(t, "config", "init", path)
	if !exists(path) {
		t.Fatal("config init wrote nothing")
	}

	if _, err := execute(t, "config", "init", path); err == nil {
		t.Error("init overwrote a file without --force")
	}
	mustExecute(t, "config", "init", "--force", path)
	mustExecute(t, "config", "validate", path)

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "[layout]\nspeed = -1.0\n")
	if _, err := execute(t, "config", "validate", bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("validate bad file error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}

	if _, err := execute(t, "config", "validate"); err == nil {
		t.Error("validate succeeded with no file on the search path")
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			if out := mustExecute(t, "completion", shell); !strings.Contains(out, "forcegraph") {
				t.Errorf("%s completion does not mention forcegraph", shell)
			}
		})
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell accepted")
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); got != nil {
		t.Errorf("parseFormats(\"\") = %v, want nil", got)
	}
	if got := parseFormats("SVG, png"); !slices.Equal(got, []string{"svg", "png"}) {
		t.Errorf("parseFormats(\"SVG, png\") = %v", got)
	}
	if got := parseFormats("dot,,"); !slices.Equal(got, []string{"dot"}) {
		t.Errorf("parseFormats(\"dot,,\") = %v", got)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, format string
		multiple       bool
		want           string
	}{
		{"", "svg", false, "forcegraph.svg"},
		{"", "png", true, "forcegraph.png"},
		{"graph.svg", "svg", false, "graph.svg"},
		{"graph.out", "svg", false, "graph.out"},
		{"graph.svg", "png", true, "graph.png"},
		{"out/graph", "dot", true, "out/graph.dot"},
		{"graph.v2", "txt", true, "graph.v2.txt"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.format, tt.multiple); got != tt.want {
			t.Errorf("outputPath(%q, %q, %v) = %q, want %q", tt.output, tt.format, tt.multiple, got, tt.want)
		}
	}
}
