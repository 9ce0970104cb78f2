package cmd

import (
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands print results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

type (
	dataFilesKey   struct{}
	filterFilesKey struct{}

	namedReader struct {
		name string
		io.Reader
	}

	sourceFiles struct {
		read     []namedReader
		multi    io.Reader
		hasStdin bool
	}

	// SourceFiles is an ordered, deduplicated set of input files.
	SourceFiles interface {
		IsZero() bool
		Stdin() io.Reader
		All() iter.Seq2[string, io.Reader]
		io.Reader
		io.WriterTo
		io.Closer
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.read) == 0 && !s.hasStdin }

// Stdin returns os.Stdin if stdin was included as a source, or nil otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return os.Stdin
	}

	return nil
}

// All yields the name and reader of each source in order, stdin last.
func (s *sourceFiles) All() iter.Seq2[string, io.Reader] {
	return func(yield func(string, io.Reader) bool) {
		for _, r := range s.read {
			if !yield(r.name, r.Reader) {
				return
			}
		}

		if s.hasStdin {
			yield(stdinSource, os.Stdin)
		}
	}
}

func (s *sourceFiles) readers() []io.Reader {
	readers := make([]io.Reader, 0, len(s.read)+1)
	for _, r := range s.All() {
		readers = append(readers, r)
	}

	return readers
}

// Read implements io.Reader by reading from all source files in order,
// including stdin if present.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	if s.multi == nil {
		s.multi = io.MultiReader(s.readers()...)
	}

	return s.multi.Read(p)
}

// WriteTo implements io.WriterTo by writing all source files to w in order,
// including stdin if present.
func (s *sourceFiles) WriteTo(w io.Writer) (n int64, err error) {
	if s.multi == nil {
		s.multi = io.MultiReader(s.readers()...)
	}

	return io.Copy(w, s.multi)
}

// Close closes every opened file. Stdin is left open.
func (s *sourceFiles) Close() error {
	var errs []error

	for _, r := range s.read {
		if c, ok := r.Reader.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithDataFiles returns a new context.Context holding the files that define
// template variables.
func WithDataFiles(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, dataFilesKey{}, buildSourceFiles(paths))
}

// WithFilterFiles returns a new context.Context holding the files that define
// expression filters.
func WithFilterFiles(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, filterFilesKey{}, buildSourceFiles(paths))
}

// templateFiles returns the template sources named by paths, or stdin when
// paths is empty.
func templateFiles(paths []string) SourceFiles {
	if len(paths) == 0 {
		return &sourceFiles{hasStdin: true}
	}

	if s := buildSourceFiles(paths); s != nil {
		return s
	}

	return &sourceFiles{}
}

// buildSourceFiles constructs a SourceFiles from the given source paths.
// It deduplicates readers by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader placed
// last so it reads after all regular files.
func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.read = make([]namedReader, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		reader, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		srcs.read = append(srcs.read, namedReader{name: src, Reader: reader})
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	_, srcs.hasStdin = seen[stdinKey]
	delete(seen, stdinKey)

	if len(srcs.read) == 0 && !srcs.hasStdin {
		return nil
	}

	return &srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// Returns the opened file and true if successful, or nil and false if the file
// is a duplicate or cannot be opened.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

func dataFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(dataFilesKey{}).(SourceFiles)

	return r
}

func filterFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(filterFilesKey{}).(SourceFiles)

	return r
}
