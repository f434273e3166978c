/*
Package builder orchestrates distribution builds: loading the project document, running the
configurer hook, compiling the extension module and packaging the result.
*/
package builder

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/zigcc/zbuild/internal/dist"
	"github.com/zigcc/zbuild/internal/metrics"
	"github.com/zigcc/zbuild/internal/project"
	"github.com/zigcc/zbuild/internal/zigcc"
)

// Builder builds wheel and sdist distributions for the project at Root.
type Builder struct {
	Log      log.Logger
	Compiler zigcc.Compiler

	// Root is the project root containing the project document.
	Root string

	// DistDir is where finished distributions are written. Defaults to `<Root>/dist`.
	DistDir string

	// PythonTag overrides the python implementation tag stamped into wheel names.
	PythonTag string
}

// Document loads the project document from Root.
func (b Builder) Document() (project.Document, error) {
	return project.FromFile(filepath.Join(b.Root, project.DefaultFile))
}

// BuildWheel builds a binary wheel and returns the path of the written file.
func (b Builder) BuildWheel(ctx context.Context) (path string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveBuild("wheel", err, time.Since(start)) }()

	doc, err := b.Document()
	if err != nil {
		return "", err
	}

	cfg, err := zigcc.RunConfigurer(ctx, b.Log, b.Root, doc.BuildConfig())
	if err != nil {
		return "", err
	}

	buildID := uuid.New().String()
	logger := b.Log.With("build_id", buildID, "project", doc.Project.Name)

	wheel := dist.Wheel{
		Doc:  doc,
		Root: b.Root,
		Tag:  dist.NewTag(b.PythonTag),
	}

	if len(cfg.Sources) > 0 {
		staging, err := os.MkdirTemp("", "zbuild-"+buildID)
		if err != nil {
			return "", err
		}
		defer os.RemoveAll(staging)

		artifact := filepath.Join(staging, cfg.ModuleName+zigcc.Suffix())

		if err := b.Compiler.Compile(ctx, b.Root, cfg, artifact); err != nil {
			return "", err
		}

		wheel.ExtensionPath = artifact
	}

	path, err = b.write(wheel.Filename(), wheel.Write)
	if err != nil {
		return "", err
	}

	logger.With("wheel", path).Info("built wheel")

	return path, nil
}

// BuildSdist builds a source distribution and returns the path of the written file.
func (b Builder) BuildSdist(ctx context.Context) (path string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveBuild("sdist", err, time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := b.Document()
	if err != nil {
		return "", err
	}

	sdist := dist.Sdist{Doc: doc, Root: b.Root}

	path, err = b.write(sdist.Filename(), sdist.Write)
	if err != nil {
		return "", err
	}

	b.Log.With("project", doc.Project.Name, "sdist", path).Info("built sdist")

	return path, nil
}

func (b Builder) distDir() string {
	if b.DistDir != "" {
		return b.DistDir
	}
	return filepath.Join(b.Root, "dist")
}

// write creates filename in the dist directory and streams the distribution into it.
func (b Builder) write(filename string, writeTo func(w io.Writer) error) (string, error) {
	dir := b.distDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename)

	fh, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := writeTo(fh); err != nil {
		fh.Close()
		os.Remove(path)
		return "", errors.Wrapf(err, "write %v", filename)
	}

	if err := fh.Close(); err != nil {
		return "", err
	}

	return path, nil
}
