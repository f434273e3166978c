package dist

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/zigcc/zbuild/internal/project"
)

// skippedDirs are directory names excluded from source distributions.
var skippedDirs = map[string]bool{
	".git":        true,
	"dist":        true,
	"__pycache__": true,
}

// Sdist assembles a source distribution for a project.
type Sdist struct {
	// Doc is the project document the sdist is built from.
	Doc project.Document

	// Root is the project root whose tree is archived.
	Root string
}

// Filename returns the sdist filename, `<name>-<version>.tar.gz`.
func (s Sdist) Filename() string {
	return fmt.Sprintf("%s-%s.tar.gz", s.Doc.Project.Name, s.Doc.Project.Version)
}

// Write writes the sdist tarball to out: the project tree under a `<name>-<version>/` prefix
// plus a generated PKG-INFO.
func (s Sdist) Write(out io.Writer) error {
	gz := gzip.NewWriter(out)
	archive := tar.NewWriter(gz)

	prefix := fmt.Sprintf("%s-%s", s.Doc.Project.Name, s.Doc.Project.Version)

	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = prefix + "/" + filepath.ToSlash(rel)

		if err := archive.WriteHeader(header); err != nil {
			return err
		}

		fh, err := os.Open(path)
		if err != nil {
			return err
		}
		defer fh.Close()

		_, err = io.Copy(archive, fh)

		return err
	})
	if err != nil {
		return errors.Wrap(err, "archive project tree")
	}

	metadata, err := s.Doc.RenderMetadata(s.Root)
	if err != nil {
		return err
	}

	header := &tar.Header{
		Name: prefix + "/PKG-INFO",
		Mode: 0o644,
		Size: int64(len(metadata)),
	}
	if err := archive.WriteHeader(header); err != nil {
		return err
	}
	if _, err := archive.Write([]byte(metadata)); err != nil {
		return err
	}

	if err := archive.Close(); err != nil {
		return err
	}

	return gz.Close()
}
