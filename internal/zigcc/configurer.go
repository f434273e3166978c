package zigcc

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/zigcc/zbuild/internal/project"
)

// RunConfigurer runs the project's configurer hook, if any, and returns the resulting build
// configuration. The hook is an executable resolved relative to root; it receives the build
// configuration as JSON on stdin and must print the full, possibly mutated, configuration as
// JSON on stdout. Projects use it to inject configuration that can't be expressed statically,
// such as dynamically computed defines.
func RunConfigurer(ctx context.Context, logger log.Logger, root string, cfg project.BuildConfig) (project.BuildConfig, error) {
	if cfg.ConfigurerScript == "" {
		return cfg, nil
	}

	script := cfg.ConfigurerScript
	if !filepath.IsAbs(script) {
		script = filepath.Join(root, script)
	}

	logger.With("script", script).Info("running configurer script")

	input, err := json.Marshal(cfg)
	if err != nil {
		return project.BuildConfig{}, err
	}

	cmd := exec.CommandContext(ctx, script)
	cmd.Dir = root
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return project.BuildConfig{}, errors.Wrapf(err, "configurer script: %s", strings.TrimSpace(stderr.String()))
	}

	var configured project.BuildConfig
	if err := json.Unmarshal(stdout.Bytes(), &configured); err != nil {
		return project.BuildConfig{}, errors.Wrap(err, "decode configurer output")
	}

	return configured, nil
}
