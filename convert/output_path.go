package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"lesstheme/config"
	"lesstheme/state"
)

// buildOutputPath returns constructed output file path/name. It takes into
// account whether to preserve source directory structure on the output. It
// cleans up path and if requested transliterates it.
func buildOutputPath(src, dst string, env *state.LocalEnv) string {
	return filepath.Join(determineOutputDir(src, dst, env), buildDefaultFileName(src, env))
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	parts := []string{dst}
	for _, segment := range splitPath(filepath.Dir(src)) {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	return filepath.Join(parts...)
}

func buildDefaultFileName(src string, env *state.LocalEnv) string {
	baseName := trimSourceExtension(filepath.Base(src), env.Cfg.Source.Extensions)
	return cleanPathSegment(baseName, env) + env.Cfg.Module.Extension
}

// trimSourceExtension removes longest matching configured extension, or the
// last one when nothing matches.
func trimSourceExtension(name string, exts []string) string {
	lower, longest := strings.ToLower(name), ""
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) && len(ext) > len(longest) && len(ext) < len(name) {
			longest = ext
		}
	}
	if longest == "" {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name[:len(name)-len(longest)]
}

func hasSourceExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if s != "" && s != "." {
			segments = append(segments, s)
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Module.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
