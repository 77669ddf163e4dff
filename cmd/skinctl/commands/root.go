// Package commands implements the skinctl command tree.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agiangrant/skins/internal/log"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/skins"
	"github.com/agiangrant/skins/theme"
)

// Configuration keys, shared by flags, skinctl.toml and SKINCTL_* variables.
const (
	keyTheme    = "theme"
	keyLogLevel = "log.level"
	keyLogJSON  = "log.json"
	keyLogFile  = "log.file"
	keyWidth    = "display.width"
	keyHeight   = "display.height"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// app is the state shared by every subcommand.
type app struct {
	fs     afero.Fs
	config *viper.Viper
	out    io.Writer
	log    logrus.FieldLogger
}

// NewRootCommand builds the skinctl command tree. Files are read from and
// written to fs.
func NewRootCommand(fs afero.Fs, version string) *cobra.Command {
	a := &app{fs: fs, config: viper.New(), log: log.Discard()}

	root := &cobra.Command{
		Use:           "skinctl",
		Short:         "Render, animate and inspect widget skins",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			return a.setup(lo.Must(cmd.Flags().GetString("config")))
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default ./skinctl.toml)")
	flags.StringP("theme", "t", "", "Theme file to load instead of the built-in theme")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Log as JSON")
	flags.String("log-file", "", "Append logs to this file instead of stderr")
	flags.Int("width", 320, "Display width in pixels")
	flags.Int("height", 240, "Display height in pixels")

	lo.Must0(a.config.BindPFlag(keyTheme, flags.Lookup("theme")))
	lo.Must0(a.config.BindPFlag(keyLogLevel, flags.Lookup("log-level")))
	lo.Must0(a.config.BindPFlag(keyLogJSON, flags.Lookup("log-json")))
	lo.Must0(a.config.BindPFlag(keyLogFile, flags.Lookup("log-file")))
	lo.Must0(a.config.BindPFlag(keyWidth, flags.Lookup("width")))
	lo.Must0(a.config.BindPFlag(keyHeight, flags.Lookup("height")))

	root.AddCommand(
		a.newRenderCommand(),
		a.newAnimateCommand(),
		a.newInspectCommand(),
		a.newKindsCommand(),
		a.newThemeCommand(),
	)
	return root
}

// setup reads skinctl.toml and the environment, then builds the logger.
func (a *app) setup(configPath string) error {
	v := a.config
	v.SetFs(a.fs)
	v.SetConfigType("toml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("skinctl")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("skinctl")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	opts := log.Options{
		Level: v.GetString(keyLogLevel),
		JSON:  v.GetBool(keyLogJSON),
	}
	if path := v.GetString(keyLogFile); path != "" {
		f, err := log.OpenFile(a.fs, path)
		if err != nil {
			return err
		}
		opts.Output = f
	}
	a.log = log.New(opts)
	return nil
}

// theme loads the configured theme, or the built-in one.
func (a *app) theme() (*theme.Theme, error) {
	path := a.config.GetString(keyTheme)
	if path == "" {
		return theme.Default(), nil
	}
	t, err := theme.Load(a.fs, path)
	if err != nil {
		return nil, err
	}
	a.log.WithField("path", path).Debug("loaded theme")
	return t, nil
}

// registry returns the built-in skins bound to the configured theme.
func (a *app) registry() (*skins.Registry, error) {
	t, err := a.theme()
	if err != nil {
		return nil, err
	}
	return skins.NewRegistry(skins.NewEnv(t, a.log)), nil
}

// scene builds a sample of the kind named by arg on a configured display.
func (a *app) scene(arg string) (*scene, error) {
	reg, err := a.registry()
	if err != nil {
		return nil, err
	}
	kind := retained.WidgetKind(arg)
	s, err := newScene(reg, kind, a.config.GetInt(keyWidth), a.config.GetInt(keyHeight))
	if err != nil {
		return nil, err
	}
	a.log.WithField("kind", kind).Debug("built scene")
	return s, nil
}

// completeKinds offers widget kinds for shell completion.
func completeKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	reg := skins.NewRegistry(skins.Env{})
	return lo.Map(reg.Kinds(), func(k retained.WidgetKind, _ int) string {
		return string(k)
	}), cobra.ShellCompDirectiveNoFileComp
}
