package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"lesstheme/state"
	"lesstheme/theme"
)

// Run is "convert" command action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	if err := prepareEnv(env, log); err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, cmd.Root().Writer, log)
}

// prepareEnv resolves configured source code page and custom module template.
func prepareEnv(env *state.LocalEnv, log *zap.Logger) (err error) {
	env.CodePage = nil
	if cp := env.Cfg.Source.Encoding; len(cp) > 0 {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			env.CodePage = enc
			n, _ := ianaindex.IANA.Name(enc)
			log.Debug("Sources without BOM will be decoded", zap.String("charset", n))
		}
	}

	if env.Template, err = env.Cfg.Module.ReadTemplate(); err != nil {
		return fmt.Errorf("unable to read module template: %w", err)
	}
	if env.Template != nil {
		log.Debug("Using custom module template", zap.String("path", env.Cfg.Module.TemplatePath))
	}
	return nil
}

// process determines input type (single file, directory or glob pattern) and
// converts accordingly. Single file without destination is written to out.
func process(ctx context.Context, src, dst string, out io.Writer, log *zap.Logger) (err error) {
	fi, serr := os.Stat(src)
	if serr == nil && fi.Mode().IsRegular() {
		if len(dst) == 0 {
			return processToWriter(ctx, src, out, log)
		}
		return processFile(ctx, src, filepath.Base(src), dst, log)
	}

	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}

	switch {
	case serr == nil && fi.IsDir():
		return processDir(ctx, src, dst, log)
	case serr == nil:
		return fmt.Errorf("unexpected path mode for (%s)", src)
	case errors.Is(serr, fs.ErrNotExist) && isGlob(src):
		return processGlob(ctx, src, dst, log)
	default:
		return fmt.Errorf("input source was not found (%s): %w", src, serr)
	}
}

func isGlob(path string) bool {
	return strings.ContainsAny(filepath.ToSlash(path), "*?[{")
}

// processDir walks directory tree converting every file with configured
// source extension. Failures are logged and combined, processing continues.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	var paths []string
	werr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !hasSourceExtension(path, env.Cfg.Source.Extensions) {
			log.Debug("Skipping file, not recognized as stylesheet", zap.String("file", path))
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if werr != nil {
		return werr
	}

	if len(paths) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}

	for _, path := range paths {
		if cerr := ctx.Err(); cerr != nil {
			return multierr.Append(err, cerr)
		}
		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if er := processFile(ctx, path, src, dst, log); er != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(er))
			err = multierr.Append(err, er)
		}
	}
	return err
}

// processGlob converts every file matching doublestar pattern. Output keeps
// directory structure relative to the static part of the pattern.
func processGlob(ctx context.Context, pattern, dst string, log *zap.Logger) (err error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)

	matches, err := doublestar.Glob(os.DirFS(base), rest, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("bad source pattern (%s): %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("input source was not found (%s)", pattern)
	}
	sort.Sort(natural.StringSlice(matches))

	log.Debug("Source pattern expanded", zap.String("base", base), zap.String("pattern", rest), zap.Int("files", len(matches)))

	for _, match := range matches {
		if cerr := ctx.Err(); cerr != nil {
			return multierr.Append(err, cerr)
		}
		src := filepath.FromSlash(match)
		path := filepath.Join(base, src)
		if er := processFile(ctx, path, src, dst, log); er != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(er))
			err = multierr.Append(err, er)
		}
	}
	return err
}

func processToWriter(ctx context.Context, path string, out io.Writer, log *zap.Logger) error {
	res, err := convertFile(ctx, path, filepath.Base(path), log)
	if err != nil {
		return err
	}
	if _, err := out.Write(res.Module); err != nil {
		return fmt.Errorf("unable to write module: %w", err)
	}
	return nil
}

// processFile converts single stylesheet. "src" is path of the stylesheet
// relative to the original source, "dst" is the destination directory.
func processFile(ctx context.Context, path, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	outputName := buildOutputPath(src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	}

	res, err := convertFile(ctx, path, src, log)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(outputName, res.Module, 0644); err != nil {
		return fmt.Errorf("unable to write module: %w", err)
	}
	log.Debug("Module written", zap.String("file", outputName))
	return nil
}

func convertFile(ctx context.Context, path, src string, log *zap.Logger) (res *theme.Result, err error) {
	env := state.EnvFromContext(ctx)

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		if err == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)),
				zap.Int("variables", res.Placeholders.Len()), zap.Int("rules", res.Rules))
		}
	}(time.Now())

	source, err := readSource(path, env.CodePage)
	if err != nil {
		return nil, err
	}

	name := filepath.ToSlash(src)
	env.Rpt.StoreData("source/"+name, []byte(source))

	opts := theme.Options{
		Runtime:    env.Cfg.Module.Runtime,
		ThemeParam: env.Cfg.Module.ThemeParam,
		Template:   env.Template,
		SourceName: name,
	}
	res, err = theme.Convert(ctx, source, opts, log)
	if err != nil {
		return nil, fmt.Errorf("unable to convert stylesheet (%s): %w", src, err)
	}

	env.Rpt.StoreData("flat/"+name+".css", []byte(res.FlatCSS))
	env.Rpt.StoreData("tree/"+name+".txt", []byte(res.Tree.Dump()))
	env.Rpt.StoreData("module/"+name+env.Cfg.Module.Extension, res.Module)
	return res, nil
}
