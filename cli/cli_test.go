package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "liquid-cli-test-*")
	if err != nil {
		panic(err)
	}

	// Keep the configuration and cache directories out of the real home.
	os.Setenv("HOME", dir)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	exit := func(code int) {
		if code != 0 {
			t.Errorf("exit(%d)", code)
		}
	}

	err := run(context.Background(), exit, []kong.Option{kong.Writers(&out, &out)}, args...)

	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRun_RenderDefault(t *testing.T) {
	data := writeTemp(t, "data.yaml", "user:\n  name: ada\n")
	tmpl := writeTemp(t, "page.liquid", "hello {{ user.name | capitalize }}")

	for _, args := range [][]string{
		{"--data", data, tmpl},
		{"-d", data, "render", tmpl},
	} {
		out, err := runCLI(t, args...)
		if err != nil {
			t.Fatalf("run %v error = %v", args, err)
		}

		if out != "hello Ada" {
			t.Errorf("run %v output = %q, want %q", args, out, "hello Ada")
		}
	}
}

func TestRun_FilterFiles(t *testing.T) {
	filters := writeTemp(t, "filters.yaml", "filters:\n  twice: 'input + input'\n")
	tmpl := writeTemp(t, "page.liquid", "{{ 'ab' | twice }}")

	out, err := runCLI(t, "-F", filters, tmpl)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	if out != "abab" {
		t.Errorf("output = %q, want %q", out, "abab")
	}

	out, err = runCLI(t, "-F", filters, "filters")
	if err != nil {
		t.Fatalf("filters error = %v", err)
	}

	if !strings.Contains(out, "twice\t"+filters) || !strings.Contains(out, "upcase") {
		t.Errorf("filters output = %q", out)
	}
}

func TestRun_RenderError(t *testing.T) {
	tmpl := writeTemp(t, "page.liquid", "{{ missing }}")

	if _, err := runCLI(t, tmpl); err == nil {
		t.Error("expected error rendering an unknown variable")
	}
}

func TestRun_Init(t *testing.T) {
	path := configPath(baseConfig + ".yaml")
	t.Cleanup(func() { os.Remove(path) })

	if _, err := runCLI(t, "--log-level", "error", "init", "--force"); err != nil {
		t.Fatalf("init error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if !strings.Contains(string(b), "log-level: error") {
		t.Errorf("config = %q, want log-level: error", b)
	}

	// The written configuration is read back on the next run.
	tmpl := writeTemp(t, "page.liquid", "ok")

	if out, err := runCLI(t, tmpl); err != nil || out != "ok" {
		t.Errorf("run with config = (%q, %v)", out, err)
	}
}
