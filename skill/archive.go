package skill

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// Extension is appended to the declared name to form the archive file name.
const Extension = ".skill"

type options struct {
	progress io.Writer
	excludes []string
	logger   *log.Logger
}

// Option configures Package and PackageDir.
type Option func(*options)

// WithProgress writes one "  Added: <entry>" line per archived file to w.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithExcludes skips files whose slash-separated path relative to the skill
// directory matches any of the doublestar patterns.
func WithExcludes(patterns ...string) Option {
	return func(o *options) {
		o.excludes = append(o.excludes, patterns...)
	}
}

// WithLogger sets the logger used for debug tracing of the walk.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// checkName rejects names that would produce a hidden ".skill" file.
func checkName(s *Skill) error {
	if strings.TrimSpace(s.Name()) == "" {
		return errors.Wrapf(ErrEmptyName, "in %s", filepath.Join(s.Dir, FileName))
	}
	return nil
}

func newOptions(opts []Option) (*options, error) {
	o := &options{progress: io.Discard}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	for _, p := range o.excludes {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Wrapf(doublestar.ErrBadPattern, "exclude pattern %q", p)
		}
	}
	return o, nil
}

// Entry is a file selected for packaging.
type Entry struct {
	Name string // path inside the archive
	Path string // path on disk
}

// OutputPath returns where Package writes the archive for s.
func OutputPath(s *Skill, outputDir string) string {
	return filepath.Join(outputDir, s.Name()+Extension)
}

// PackageDir loads the metadata in dir and packages it into outputDir.
func PackageDir(dir, outputDir string, opts ...Option) (string, error) {
	s, err := Load(dir)
	if err != nil {
		return "", err
	}
	return Package(s, outputDir, opts...)
}

// Package writes every regular file under s.Dir into <outputDir>/<name>.skill
// and returns the archive path. A failed write leaves the partial file behind.
func Package(s *Skill, outputDir string, opts ...Option) (string, error) {
	if err := checkName(s); err != nil {
		return "", err
	}
	o, err := newOptions(opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create output directory")
	}

	dest := OutputPath(s, outputDir)
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve output path")
	}

	entries, err := collect(s.Dir, absDest, o)
	if err != nil {
		return "", err
	}

	if err := writeArchive(dest, entries, o); err != nil {
		return "", err
	}
	return dest, nil
}

// Files lists the entries Package would write for s without creating anything.
func Files(s *Skill, outputDir string, opts ...Option) ([]Entry, error) {
	if err := checkName(s); err != nil {
		return nil, err
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	absDest, err := filepath.Abs(OutputPath(s, outputDir))
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve output path")
	}
	return collect(s.Dir, absDest, o)
}

// collect walks dir in lexical order and returns every regular file, or
// symlink to one, rooted at dir's basename.
func collect(dir, skip string, o *options) ([]Entry, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve skill directory")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrExpectedDirectory
	}
	base := filepath.Base(root)

	var entries []Entry
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !isFile(p, d) {
			o.logger.Debug("skipping non-regular file", "path", p, "type", d.Type())
			return nil
		}
		if p == skip {
			o.logger.Debug("skipping output archive", "path", p)
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range o.excludes {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				o.logger.Debug("excluded", "path", rel, "pattern", pattern)
				return nil
			}
		}

		entries = append(entries, Entry{Name: path.Join(base, rel), Path: p})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk skill directory")
	}
	return entries, nil
}

// isFile reports whether p is a regular file, following symlinks.
func isFile(p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func writeArchive(dest string, entries []Entry, o *options) (err error) {
	file, err := os.Create(dest)
	if err != nil {
		return errors.Wrap(err, "failed to create archive")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close archive")
		}
	}()

	w := zip.NewWriter(file)
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to finalize archive")
		}
	}()

	for _, e := range entries {
		if err := addFile(w, e); err != nil {
			return err
		}
		fmt.Fprintf(o.progress, "  Added: %s\n", e.Name)
	}
	return nil
}

func addFile(w *zip.Writer, e Entry) error {
	f, err := os.Open(e.Path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", e.Name)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", e.Name)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrapf(err, "failed to build header for %s", e.Name)
	}
	header.Name = e.Name
	header.Method = zip.Deflate

	writer, err := w.CreateHeader(header)
	if err != nil {
		return errors.Wrapf(err, "failed to add %s", e.Name)
	}
	if _, err := io.Copy(writer, f); err != nil {
		return errors.Wrapf(err, "failed to write %s", e.Name)
	}
	return nil
}
