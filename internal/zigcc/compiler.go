/*
Package zigcc drives `zig cc` to compile native extension modules into shared libraries.
*/
package zigcc

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/zigcc/zbuild/internal/project"
)

// DefaultExecutable is the zig executable resolved from PATH when no explicit path is
// configured.
const DefaultExecutable = "zig"

// Compiler compiles extension module sources with `zig cc`.
type Compiler struct {
	log log.Logger
	zig string
}

// New creates a Compiler using the zig executable at path. An empty path falls back to
// DefaultExecutable.
func New(logger log.Logger, path string) Compiler {
	if path == "" {
		path = DefaultExecutable
	}

	return Compiler{
		log: logger,
		zig: path,
	}
}

// Suffix returns the shared library suffix for the target platform.
func Suffix() string {
	if runtime.GOOS == "windows" {
		return ".pyd"
	}
	return ".so"
}

// Args constructs the `zig cc` argument list for compiling cfg into the shared library at
// output. Flag ordering matches the conventional cc invocation: includes, library dirs and
// defines before sources, libraries after.
func Args(cfg project.BuildConfig, output string) []string {
	args := []string{"cc", "-shared", "-o", output}

	for _, include := range cfg.IncludeDirs {
		args = append(args, "-I", include)
	}

	for _, dir := range cfg.LibraryDirs {
		args = append(args, "-L"+dir)
	}

	for _, define := range cfg.Defines {
		args = append(args, "-D"+define)
	}

	args = append(args, cfg.Sources...)

	for _, lib := range cfg.Libraries {
		args = append(args, "-l"+lib)
	}

	return args
}

// Compile compiles cfg.Sources into the shared library at output. Paths in cfg are resolved
// relative to root. It is an error to call Compile with no sources configured.
func (c Compiler) Compile(ctx context.Context, root string, cfg project.BuildConfig, output string) error {
	if len(cfg.Sources) == 0 {
		return errors.New("no sources configured")
	}

	args := Args(cfg, output)

	c.log.With("zig", c.zig, "args", strings.Join(args, " ")).Info("compiling extension module")

	cmd := exec.CommandContext(ctx, c.zig, args...)
	cmd.Dir = root

	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "zig cc: %s", strings.TrimSpace(string(out)))
	}

	return nil
}

// IsHealthy reports whether the zig executable is invokable. It satisfies healthcheck.Client.
func (c Compiler) IsHealthy(ctx context.Context) bool {
	return exec.CommandContext(ctx, c.zig, "version").Run() == nil
}
