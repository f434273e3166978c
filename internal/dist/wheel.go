package dist

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/zigcc/zbuild/internal/build"
	"github.com/zigcc/zbuild/internal/project"
)

// Wheel assembles a binary wheel for a project.
type Wheel struct {
	// Doc is the project document the wheel is built from.
	Doc project.Document

	// Root is the project root, used to resolve readme and license references.
	Root string

	// Tag is the compatibility tag triple for the wheel.
	Tag Tag

	// ExtensionPath is the compiled extension artifact to include at the wheel root. Empty
	// means the wheel carries no extension module.
	ExtensionPath string
}

// Filename returns the wheel filename, `<name>-<version>-<tag>.whl`.
func (w Wheel) Filename() string {
	return fmt.Sprintf("%s-%s-%s.whl", w.Doc.NormalizedName(), w.Doc.Project.Version, w.Tag)
}

// distInfo returns the wheel's dist-info directory name.
func (w Wheel) distInfo() string {
	return fmt.Sprintf("%s-%s.dist-info", w.Doc.NormalizedName(), w.Doc.Project.Version)
}

// Write writes the wheel zip to out: the compiled extension (if any) at the archive root,
// then METADATA, WHEEL and RECORD under dist-info.
func (w Wheel) Write(out io.Writer) error {
	archive := zip.NewWriter(out)

	var record Record

	writeEntry := func(name string, data []byte) error {
		entry, err := archive.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return err
		}

		if _, err := entry.Write(data); err != nil {
			return err
		}

		record.Add(name, data)

		return nil
	}

	if w.ExtensionPath != "" {
		data, err := os.ReadFile(w.ExtensionPath)
		if err != nil {
			return errors.Wrap(err, "read extension artifact")
		}

		if err := writeEntry(filepath.Base(w.ExtensionPath), data); err != nil {
			return err
		}
	}

	metadata, err := w.Doc.RenderMetadata(w.Root)
	if err != nil {
		return err
	}

	distInfo := w.distInfo()

	if err := writeEntry(distInfo+"/METADATA", []byte(metadata)); err != nil {
		return err
	}

	if err := writeEntry(distInfo+"/WHEEL", []byte(w.renderWheelFile())); err != nil {
		return err
	}

	recordPath := distInfo + "/RECORD"
	entry, err := archive.CreateHeader(&zip.FileHeader{Name: recordPath, Method: zip.Deflate})
	if err != nil {
		return err
	}
	if _, err := entry.Write([]byte(record.Render(recordPath))); err != nil {
		return err
	}

	return archive.Close()
}

func (w Wheel) renderWheelFile() string {
	return fmt.Sprintf(
		"Wheel-Version: 1.0\nGenerator: zbuild %s\nRoot-Is-Purelib: false\nTag: %s\n",
		build.GetVersion(),
		w.Tag,
	)
}
