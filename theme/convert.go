package theme

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"lesstheme/less"
)

// Result is outcome of a single conversion.
type Result struct {
	Module       []byte
	Variables    less.Variables
	Placeholders Placeholders
	// FlatCSS is compiled stylesheet with sentinels in place of variables.
	FlatCSS string
	Rules   int
	Tree    *LocalTree
	Globals *GlobalRules
}

// ExtractVariables compiles source and returns its top level variables with
// evaluated values. Compilation errors are returned as is.
func ExtractVariables(ctx context.Context, source string, log *zap.Logger) (less.Variables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := less.Parse(source, less.WithLogger(log))
	if err != nil {
		return nil, err
	}
	out, err := less.Transform(tree)
	if err != nil {
		return nil, err
	}
	return out.Variables(), nil
}

// CompileWithPlaceholders compiles source forcing every variable to its
// sentinel and returns flattened CSS.
func CompileWithPlaceholders(ctx context.Context, source string, placeholders Placeholders, log *zap.Logger) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tree, err := less.Parse(source, less.WithModifyVars(placeholders.ModifyVars()), less.WithLogger(log))
	if err != nil {
		return "", err
	}
	out, err := less.Transform(tree)
	if err != nil {
		return "", err
	}
	return out.ToCSS(), nil
}

// Convert turns LESS source into theming module.
func Convert(ctx context.Context, source string, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.withDefaults()

	vars, err := ExtractVariables(ctx, source, log)
	if err != nil {
		return nil, err
	}
	placeholders, err := NewPlaceholders(vars)
	if err != nil {
		return nil, err
	}
	flat, err := CompileWithPlaceholders(ctx, source, placeholders, log)
	if err != nil {
		return nil, err
	}

	units, err := SplitRules(flat)
	if err != nil {
		return nil, err
	}

	tree, globals := NewLocalTree(), NewGlobalRules()
	for _, unit := range units {
		rule, err := ParseRule(unit)
		if err != nil {
			return nil, err
		}
		decls := make([]string, 0, len(rule.Declarations))
		for _, d := range rule.Declarations {
			decls = append(decls, placeholders.Restore(d, opts.ThemeParam))
		}
		if rule.Local {
			if err := tree.Add(rule.Selector, decls); err != nil {
				return nil, err
			}
			continue
		}
		if !globals.Add(placeholders.Restore(rule.Selector, opts.ThemeParam), decls) {
			log.Debug("Duplicate global rule skipped", zap.String("selector", rule.Selector))
		}
	}

	var buf bytes.Buffer
	if err := Emit(&buf, tree, globals, opts); err != nil {
		return nil, err
	}

	log.Debug("Theme module generated",
		zap.Int("variables", placeholders.Len()),
		zap.Int("rules", len(units)),
		zap.Int("local", tree.Len()),
		zap.Int("global", globals.Len()))

	return &Result{
		Module:       buf.Bytes(),
		Variables:    vars,
		Placeholders: placeholders,
		FlatCSS:      flat,
		Rules:        len(units),
		Tree:         tree,
		Globals:      globals,
	}, nil
}
