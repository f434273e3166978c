package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zigcc/zbuild/internal/builder"
	"github.com/zigcc/zbuild/internal/dist"
	"github.com/zigcc/zbuild/internal/project"
	"github.com/zigcc/zbuild/internal/zigcc"
)

const longHelp = `
Build, inspect, publish and serve Python extension module distributions compiled with zig cc.

Each CLI argument has a corresponding environment variable in the form of the CLI argument prefixed with ZBUILD. If
both the flag and environment variable form are specified, the flag form takes precedence.

Examples
  --project                 ZBUILD_PROJECT
  --python-tag              ZBUILD_PYTHON_TAG
  --http-custom-endpoints   ZBUILD_HTTP_CUSTOM_ENDPOINTS
`

// EnvNamePrefix defines the environment variable prefix required for all environment configuration.
const EnvNamePrefix = "ZBUILD"

// RootCommandOptions encompasses the configurability shared by all subcommands.
type RootCommandOptions struct {
	Project   string `mapstructure:"project"`
	DistDir   string `mapstructure:"dist-dir"`
	Zig       string `mapstructure:"zig"`
	PythonTag string `mapstructure:"python-tag"`
}

// RootCommand is the root command that represents the entrypoint to zbuild.
type RootCommand struct {
	*cobra.Command
	vpr  *viper.Viper
	Opts RootCommandOptions
}

// NewRootCommand creates a new RootCommand instance.
func NewRootCommand() (*RootCommand, error) {
	rootCmd := &RootCommand{
		Command: &cobra.Command{
			Use:          filepath.Base(os.Args[0]),
			Long:         longHelp,
			SilenceUsage: true,
		},
	}

	rootCmd.PersistentPreRunE = rootCmd.PreRun
	rootCmd.Flags().SortFlags = false // Print flag help in the order they're specified.

	// Ensure keys with `-` use `_` for env keys else Viper won't match them.
	rootCmd.vpr = newViper()

	if err := rootCmd.configureFlags(); err != nil {
		return nil, err
	}

	rootCmd.AddCommand(
		newWheelCommand(rootCmd),
		newSdistCommand(rootCmd),
		newMetadataCommand(rootCmd),
		newPublishCommand(rootCmd),
		newServeCommand(rootCmd),
	)

	return rootCmd, nil
}

// PreRun satisfies cobra.Command.PersistentPreRunE. It is responsible for populating c.Opts.
func (c *RootCommand) PreRun(*cobra.Command, []string) error {
	if err := c.vpr.Unmarshal(&c.Opts); err != nil {
		return err
	}

	return c.validateOpts()
}

func (c *RootCommand) configureFlags() error {
	c.PersistentFlags().String("project", ".", "Path to the project root containing "+project.DefaultFile)
	c.PersistentFlags().String("dist-dir", "", "Directory distributions are written to (defaults to <project>/dist)")
	c.PersistentFlags().String("zig", zigcc.DefaultExecutable, "Path to the zig executable")
	c.PersistentFlags().String("python-tag", dist.DefaultPythonTag, "Python implementation tag stamped into wheel names")

	return bindFlags(c.vpr, c.PersistentFlags())
}

func (c *RootCommand) validateOpts() error {
	if c.Opts.Project == "" {
		return errors.New("--project must not be empty")
	}

	return nil
}

// Document loads the project document from the configured project root.
func (c *RootCommand) Document() (project.Document, error) {
	return project.FromFile(filepath.Join(c.Opts.Project, project.DefaultFile))
}

// Builder constructs a distribution builder from the root options.
func (c *RootCommand) Builder(logger log.Logger) builder.Builder {
	return builder.Builder{
		Log:       logger,
		Compiler:  zigcc.New(logger, c.Opts.Zig),
		Root:      c.Opts.Project,
		DistDir:   c.Opts.DistDir,
		PythonTag: c.Opts.PythonTag,
	}
}

// Logger initializes the process logger.
func (c *RootCommand) Logger() (log.Logger, error) {
	logger, err := log.Init("github.com/zigcc/zbuild")
	if err != nil {
		return log.Logger{}, errors.Errorf("initialize logger: %v", err)
	}

	return logger, nil
}

func newViper() *viper.Viper {
	vpr := viper.NewWithOptions(viper.EnvKeyReplacer(strings.NewReplacer("-", "_")))
	vpr.SetEnvPrefix(EnvNamePrefix)

	return vpr
}

func bindFlags(vpr *viper.Viper, flags *pflag.FlagSet) error {
	if err := vpr.BindPFlags(flags); err != nil {
		return err
	}

	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = vpr.BindEnv(f.Name)
	})

	return err
}
