// Package optimize shrinks saved files with external optimizer binaries.
//
// The default chain mirrors the common image optimizer setup: jpegoptim for
// JPEG, pngquant followed by optipng for PNG, gifsicle for GIF and cwebp for
// WebP. Binaries that are not installed are skipped. Supplying options
// replaces the chain with just the named tools, run with the given
// arguments.
package optimize

import (
	"context"
	"os"
	"os/exec"

	"code.cloudfoundry.org/bytefmt"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/zoolt/imagemanip/internal/imaging"
	"github.com/zoolt/imagemanip/internal/manip"
)

// Optimizer rewrites an encoded file in place.
type Optimizer interface {
	Optimize(ctx context.Context, path string, format imaging.Format, options manip.OptimizeOptions) error
}

// Tool describes one optimizer binary.
type Tool struct {
	// Name is the binary looked up on PATH and the key used in options.
	Name string
	// Formats lists the formats the tool understands.
	Formats []imaging.Format
	// Args are the default arguments.
	Args []string
	// Argv places the arguments and the file path on the command line. Nil
	// appends the path after the arguments.
	Argv func(args []string, path string) []string
}

func (t Tool) handles(format imaging.Format) bool {
	for _, f := range t.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func (t Tool) argv(args []string, path string) []string {
	if t.Argv != nil {
		return t.Argv(args, path)
	}
	return append(append([]string{}, args...), path)
}

// DefaultTools is the chain used when no options are given, in run order.
var DefaultTools = []Tool{
	{
		Name:    "jpegoptim",
		Formats: []imaging.Format{imaging.JPEG},
		Args:    []string{"-m85", "--strip-all", "--all-progressive"},
	},
	{
		Name:    "pngquant",
		Formats: []imaging.Format{imaging.PNG},
		Args:    []string{"--force"},
		Argv: func(args []string, path string) []string {
			return append(append([]string{}, args...), "--output", path, path)
		},
	},
	{
		Name:    "optipng",
		Formats: []imaging.Format{imaging.PNG},
		Args:    []string{"-i0", "-o2", "-quiet"},
	},
	{
		Name:    "gifsicle",
		Formats: []imaging.Format{imaging.GIF},
		Args:    []string{"-b", "-O3"},
	},
	{
		Name:    "cwebp",
		Formats: []imaging.Format{imaging.WebP},
		Args:    []string{"-m", "6", "-pass", "10", "-mt", "-q", "80"},
		Argv: func(args []string, path string) []string {
			return append(append([]string{}, args...), path, "-o", path)
		},
	},
}

// ExecOptimizer runs Tools as child processes.
type ExecOptimizer struct {
	logger   *zap.Logger
	tools    []Tool
	lookPath func(string) (string, error)
}

// Option configures an ExecOptimizer.
type Option func(*ExecOptimizer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *ExecOptimizer) {
		o.logger = logger
	}
}

// WithTools replaces DefaultTools.
func WithTools(tools ...Tool) Option {
	return func(o *ExecOptimizer) {
		o.tools = tools
	}
}

// NewExecOptimizer returns an optimizer over DefaultTools.
func NewExecOptimizer(opts ...Option) *ExecOptimizer {
	o := &ExecOptimizer{
		logger:   zap.NewNop(),
		tools:    DefaultTools,
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize runs every applicable tool over path in order. Missing binaries
// are skipped; a failing tool does not stop the ones after it. The returned
// error combines all tool failures.
func (o *ExecOptimizer) Optimize(ctx context.Context, path string, format imaging.Format, options manip.OptimizeOptions) error {
	before, err := fileSize(path)
	if err != nil {
		return err
	}

	var errs error
	for _, step := range o.chain(options) {
		if !step.tool.handles(format) {
			continue
		}
		bin, err := o.lookPath(step.tool.Name)
		if err != nil {
			o.logger.Debug("optimizer not installed", zap.String("tool", step.tool.Name))
			continue
		}

		argv := step.tool.argv(step.args, path)
		out, err := exec.CommandContext(ctx, bin, argv...).CombinedOutput()
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "%s: %s", step.tool.Name, out))
			continue
		}
		o.logger.Debug("optimizer ran", zap.String("tool", step.tool.Name), zap.Strings("args", argv))
	}

	after, err := fileSize(path)
	if err != nil {
		return multierr.Append(errs, err)
	}
	o.logger.Info("optimized",
		zap.String("path", path),
		zap.String("before", bytefmt.ByteSize(uint64(before))),
		zap.String("after", bytefmt.ByteSize(uint64(after))),
	)
	return errs
}

type step struct {
	tool Tool
	args []string
}

// chain returns the configured tools with their arguments. With options,
// only the named tools run, in the order they appear in the tool list;
// names that match no tool are logged and ignored.
func (o *ExecOptimizer) chain(options manip.OptimizeOptions) []step {
	steps := make([]step, 0, len(o.tools))
	if len(options) == 0 {
		for _, t := range o.tools {
			steps = append(steps, step{tool: t, args: t.Args})
		}
		return steps
	}

	known := make(map[string]bool, len(o.tools))
	for _, t := range o.tools {
		known[t.Name] = true
		if args, ok := options[t.Name]; ok {
			steps = append(steps, step{tool: t, args: args})
		}
	}
	for name := range options {
		if !known[name] {
			o.logger.Warn("unknown optimizer ignored", zap.String("tool", name))
		}
	}
	return steps
}

func fileSize(path string) (int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, errors.Wrap(err, "stat optimized file")
	}
	return stat.Size(), nil
}
