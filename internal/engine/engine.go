// Package engine executes a manip.Plan against a source image.
//
// A run moves through a fixed sequence of states:
//
//	Decoded -> ScaledFirst? -> Oriented? -> Applying(i) -> Finalized -> Saved -> Optimized?
//
// ScaledFirst happens when the plan starts with a Scale, so every later
// operation works on the smaller raster. Oriented applies the EXIF
// orientation of JPEG sources unless the plan rotates explicitly. Quality
// and Optimize are markers: they are captured while applying and only take
// effect when saving.
//
// Each run owns its rasters through an imaging.Arena; runs share nothing
// and may execute concurrently.
package engine

import (
	"bytes"
	"context"
	"image"
	"os"

	"go.uber.org/zap"

	"github.com/zoolt/imagemanip/internal/imaging"
	"github.com/zoolt/imagemanip/internal/manip"
	"github.com/zoolt/imagemanip/internal/optimize"
	"github.com/zoolt/imagemanip/internal/orient"
)

// Engine runs plans. The zero value is not usable; call New.
type Engine struct {
	logger    *zap.Logger
	optimizer optimize.Optimizer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithOptimizer replaces the optimizer used for plans carrying an Optimize
// marker.
func WithOptimizer(o optimize.Optimizer) Option {
	return func(e *Engine) {
		e.optimizer = o
	}
}

// New returns an engine using an ExecOptimizer over the default tools.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.optimizer == nil {
		e.optimizer = optimize.NewExecOptimizer(optimize.WithLogger(e.logger))
	}
	return e
}

// Source is the input of a run: a file path, or encoded bytes when Data is
// non-nil.
type Source struct {
	Path string
	Data []byte
}

func (s Source) label() string {
	if s.Data != nil {
		return "<bytes>"
	}
	return s.Path
}

// Execute processes src with plan and saves the result to dest.
func (e *Engine) Execute(ctx context.Context, src Source, plan manip.Plan, dest string) error {
	run, err := e.Process(ctx, src, plan)
	if err != nil {
		return err
	}
	return run.Save(ctx, dest)
}

// Process decodes src and applies every pixel operation of plan. The
// returned Run holds the final raster until Save or Close.
func (e *Engine) Process(ctx context.Context, src Source, plan manip.Plan) (*Run, error) {
	log := e.logger.With(zap.String("source", src.label()))

	img, format, err := decode(src)
	if err != nil {
		return nil, err
	}
	arena := imaging.NewArena()
	r := &Run{
		engine:  e,
		log:     log,
		source:  src,
		format:  format,
		plan:    plan,
		arena:   arena,
		handle:  arena.Adopt(img),
		quality: imaging.DefaultQuality,
	}
	w, h := r.handle.Size()
	log.Debug("decoded", zap.String("format", string(format)), zap.Int("width", w), zap.Int("height", h))

	ops := plan.Chain
	if len(ops) > 0 {
		if scale, ok := ops[0].(manip.Scale); ok {
			if err := r.apply(ctx, scale); err != nil {
				r.Close()
				return nil, err
			}
			ops = ops[1:]
			log.Debug("scaled first")
		}
	}

	if err := r.autoOrient(ctx); err != nil {
		r.Close()
		return nil, err
	}

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			r.Close()
			return nil, err
		}
		if err := r.apply(ctx, op); err != nil {
			r.Close()
			return nil, err
		}
		log.Debug("applied", zap.Int("step", i), zap.String("op", op.Name()))
	}

	return r, nil
}

func decode(src Source) (image.Image, imaging.Format, error) {
	if src.Data != nil {
		return imaging.DecodeBytes(src.Data)
	}
	return imaging.Decode(src.Path)
}

// exifOrientation reads the orientation tag of a JPEG source.
func exifOrientation(src Source) (code int, present bool) {
	if src.Data != nil {
		return orient.ReadTag(bytes.NewReader(src.Data))
	}
	f, err := os.Open(src.Path)
	if err != nil {
		return 0, false
	}
	defer f.Close()
	return orient.ReadTag(f)
}
