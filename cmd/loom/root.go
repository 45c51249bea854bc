package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cpcf/loom/config"
	"github.com/cpcf/loom/debug"
	"github.com/cpcf/loom/engine"
	"github.com/cpcf/loom/expr"
	"github.com/cpcf/loom/modules"
	"github.com/cpcf/loom/postprocess"
	"github.com/cpcf/loom/processors"
	"github.com/cpcf/loom/render"
	"github.com/cpcf/loom/tree"
	"github.com/cpcf/loom/vars"
)

var version = "1.0.0"

type options struct {
	output       string
	folder       bool
	templatePath []string
	includePath  []string
	moduleNames  []string
	expressions  []string
	trimMode     int
	debugCount   int
	configPath   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "loom [flags] template...",
		Short: "Render templates from the command line",
		Long: `loom renders text templates against a context assembled from built-in
metadata, -e expressions and -m modules. By default each template argument
is rendered to stdout; with --folder, each argument is a source directory
rendered recursively into the output directory, honoring .j2n naming
directives for destination file and directory names.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "",
		"output location (default stdout for files, working directory for folders)")
	flags.BoolVarP(&opts.folder, "folder", "F", false,
		"process folder of templates recursively")
	flags.StringArrayVarP(&opts.templatePath, "template-path", "P", nil,
		"extra directory searched for included templates (repeatable)")
	flags.StringArrayVarP(&opts.includePath, "include", "I", nil,
		"directory searched for module files (repeatable)")
	flags.StringArrayVarP(&opts.moduleNames, "module", "m", nil,
		"module loaded into the render context (repeatable)")
	flags.StringArrayVarP(&opts.expressions, "expr", "e", nil,
		"name=value binding evaluated before module loading (repeatable)")
	flags.IntVarP(&opts.trimMode, "trim-mode", "t", 1,
		"trim newlines after block actions (1 on, 0 off)")
	flags.CountVarP(&opts.debugCount, "debug", "d",
		"increase diagnostic verbosity (repeatable)")
	flags.StringVar(&opts.configPath, "config", "",
		"configuration file (default "+config.DefaultFile+" if present)")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	logger := debug.NewLogger(cmd.ErrOrStderr(), debug.FromCount(opts.debugCount))

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// Explicit flags extend (lists) or override (scalars) the config file.
	templatePath := append(cfg.TemplatePath, opts.templatePath...)
	includePath := append(cfg.ModulePath, opts.includePath...)
	moduleNames := append(cfg.Modules, opts.moduleNames...)
	expressions := append(cfg.Expressions, opts.expressions...)

	trim := cfg.Trim()
	if cmd.Flags().Changed("trim-mode") {
		trim = opts.trimMode == 1
	}
	lineSep := cfg.LineSep()

	exprBindings, err := expr.ParseAll(expressions)
	if err != nil {
		return err
	}

	loader := modules.NewFileLoader(includePath, modules.WithLogger(logger))
	moduleBindings, err := modules.LoadAll(loader, moduleNames)
	if err != nil {
		return err
	}

	meta := vars.NewMetadata(version, moduleNames, expressions, lineSep)
	context := vars.NewBuilder(meta).
		WithExpressions(exprBindings).
		WithModules(moduleBindings).
		Build()

	eng := engine.New(
		engine.WithLogger(logger),
		engine.WithFuncs(render.DefaultFuncMap()),
		engine.WithTrimBlocks(trim),
		engine.WithSearchPath(templatePath),
	)

	var post *postprocess.Chain
	if cfg.Goimports {
		post = postprocess.NewChain()
		post.Add(processors.NewGoImports())
	}

	if opts.folder {
		return runFolder(logger, eng, context, templatePath, lineSep, post, opts, args)
	}
	return runFiles(cmd, eng, context, templatePath, lineSep, post, opts, args)
}

func runFolder(logger *slog.Logger, eng *engine.Engine, context *vars.Context,
	searchPath []string, lineSep string, post *postprocess.Chain, opts *options, args []string,
) error {
	dest := opts.output
	if dest == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dest = wd
	}

	walker := tree.NewWalker(eng, context,
		tree.WithLogger(logger),
		tree.WithSearchPath(searchPath),
		tree.WithLineSeparator(lineSep),
		tree.WithPostProcessors(post),
	)

	for _, src := range args {
		if err := walker.RenderTree(src, dest); err != nil {
			return err
		}
	}
	return nil
}

func runFiles(cmd *cobra.Command, eng *engine.Engine, context *vars.Context,
	searchPath []string, lineSep string, post *postprocess.Chain, opts *options, args []string,
) error {
	var out io.Writer = cmd.OutOrStdout()
	outName := "stdout"

	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("cannot open output file %s: %w", opts.output, err)
		}
		defer f.Close()
		out = f
		outName = opts.output
	}

	newline := processors.NewNewline(lineSep)
	for _, templatePath := range args {
		ctx := context.ForTemplate(templatePath, searchPath)
		text, err := eng.Render(templatePath, ctx.Vars())
		if err != nil {
			return err
		}

		content, err := newline.ProcessContent(outName, []byte(text))
		if err != nil {
			return err
		}
		if post != nil {
			if content, err = post.Process(outName, content); err != nil {
				return err
			}
		}
		if _, err := out.Write(content); err != nil {
			return fmt.Errorf("writing to %s: %w", outName, err)
		}
	}
	return nil
}
