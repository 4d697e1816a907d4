package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"lesstheme/config"
	"lesstheme/less"
	"lesstheme/state"
	"lesstheme/theme"
)

// Variables is "variables" command action, it writes default theme object
// built from stylesheet variables.
func Variables(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("variables")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	format, err := config.ParseThemeFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("unknown theme format: %w", err)
	}
	if err := prepareEnv(env, log); err != nil {
		return err
	}

	source, err := readSource(src, env.CodePage)
	if err != nil {
		return err
	}
	vars, err := theme.ExtractVariables(ctx, source, log)
	if err != nil {
		return fmt.Errorf("unable to extract variables (%s): %w", filepath.Base(src), err)
	}

	log.Info("Writing theme defaults", zap.String("source", src), zap.Stringer("format", format), zap.Int("variables", len(vars)))
	return writeDefaults(cmd.Root().Writer, vars, format)
}

func writeDefaults(w io.Writer, vars less.Variables, format config.ThemeFormat) error {
	defaults, err := theme.NewDefaults(vars)
	if err != nil {
		return err
	}
	switch format {
	case config.ThemeFormatYaml:
		return defaults.WriteYAML(w)
	case config.ThemeFormatJson:
		return defaults.WriteJSON(w)
	case config.ThemeFormatJs:
		return defaults.WriteJS(w)
	default:
		return fmt.Errorf("unsupported theme format %s", format)
	}
}
