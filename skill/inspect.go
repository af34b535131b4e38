package skill

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// maxSkillFileSize bounds how much of an archived SKILL.md is read back.
const maxSkillFileSize = 1 << 20

// ArchiveEntry describes one file stored in a .skill archive.
type ArchiveEntry struct {
	Name             string
	CompressedSize   uint64
	UncompressedSize uint64
	Method           uint16
}

// Report is the result of inspecting a .skill archive.
type Report struct {
	Path     string
	Root     string
	Entries  []ArchiveEntry
	Metadata Metadata
	Problems []string
}

// Valid reports whether the archive had no problems.
func (r *Report) Valid() bool {
	return len(r.Problems) == 0
}

// Inspect opens the archive at path and checks that it holds a single top
// level directory with a valid SKILL.md. Structural problems are collected in
// the report; only failures to read the archive are returned as errors.
func Inspect(path string) (*Report, error) {
	if filepath.Ext(path) != Extension {
		return nil, ErrNotSkillExtension
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open archive")
	}
	defer r.Close()

	report := &Report{Path: path}
	roots := make(map[string]bool)
	var rootOrder []string

	for _, f := range r.File {
		report.Entries = append(report.Entries, ArchiveEntry{
			Name:             f.Name,
			CompressedSize:   f.CompressedSize64,
			UncompressedSize: f.UncompressedSize64,
			Method:           f.Method,
		})

		top, _, _ := strings.Cut(f.Name, "/")
		if !roots[top] {
			roots[top] = true
			rootOrder = append(rootOrder, top)
		}
		if f.Method != zip.Deflate {
			report.Problems = append(report.Problems, fmt.Sprintf("Entry %s is not deflate compressed", f.Name))
		}
	}

	if len(rootOrder) == 0 {
		report.Problems = append(report.Problems, "Archive is empty")
		return report, nil
	}
	if len(rootOrder) > 1 {
		report.Problems = append(report.Problems,
			fmt.Sprintf("Archive has %d top-level entries, expected 1: %s", len(rootOrder), strings.Join(rootOrder, ", ")))
		return report, nil
	}
	report.Root = rootOrder[0]

	skillFile := report.Root + "/" + FileName
	f := findFile(&r.Reader, skillFile)
	if f == nil {
		report.Problems = append(report.Problems, fmt.Sprintf("Missing %s", skillFile))
		return report, nil
	}

	content, err := readZipFile(f)
	if err != nil {
		return nil, err
	}
	meta, _, err := ParseFrontmatter(string(content))
	if err != nil {
		report.Problems = append(report.Problems, Diagnostic(err))
		return report, nil
	}
	report.Metadata = meta

	if want := meta.Name() + Extension; filepath.Base(path) != want {
		report.Problems = append(report.Problems,
			fmt.Sprintf("Archive name %s does not match declared name (expected %s)", filepath.Base(path), want))
	}
	return report, nil
}

func findFile(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", f.Name)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxSkillFileSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", f.Name)
	}
	if len(data) > maxSkillFileSize {
		return nil, errors.Errorf("%s exceeds %d bytes", f.Name, maxSkillFileSize)
	}
	return data, nil
}
