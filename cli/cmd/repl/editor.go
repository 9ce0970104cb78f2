package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/liquid/log"
	"github.com/ardnew/liquid/pkg"
)

const defaultEditor = "vi"

// editDataCommand implements [tea.ExecCommand] for the edit-decode-retry
// loop over the template variables. It writes the current variables to a
// temp file as YAML, opens the user's editor, and decodes the result. On a
// decode error the user is prompted to re-edit; declining exits the program.
type editDataCommand struct {
	globals map[string]any
	ctxFunc func() context.Context
	edited  map[string]any
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editDataCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editDataCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editDataCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. An emptied file cancels the edit, leaving
// edited nil. If the user declines to re-edit, it returns [ErrEditDeclined].
func (c *editDataCommand) Run() error {
	ctx := c.ctxFunc()

	content, err := yaml.MarshalWithOptions(c.globals, yaml.Indent(2))
	if err != nil {
		return pkg.ErrYAMLMarshal.Wrap(err)
	}

	f, err := os.CreateTemp(os.TempDir(), "liquid-repl-*.yaml")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
			return err
		}

		data, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		if strings.TrimSpace(string(data)) == "" {
			return nil
		}

		edited, decodeErr := decodeData(ctx, data)
		c.logger.TraceContext(
			ctx,
			"editor decode attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", decodeErr == nil),
		)

		if decodeErr == nil {
			c.edited = edited

			return nil
		}

		fmt.Fprintf(c.stderr, "\nDecode error: %s\n", decodeErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		// Keep the failed content for the next editor iteration.
		content = data
	}
}

// decodeData decodes a YAML mapping of variable names to values.
func decodeData(ctx context.Context, data []byte) (map[string]any, error) {
	vars := make(map[string]any)

	err := yaml.UnmarshalContext(ctx, data, &vars)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, pkg.ErrInvalidFormat.Wrap(err)
	}

	return vars, nil
}

// runEditor launches the user's editor on the given file path and returns
// the edited file content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) ([]byte, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}
