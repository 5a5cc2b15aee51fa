package engine

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zoolt/imagemanip/internal/geometry"
	"github.com/zoolt/imagemanip/internal/imaging"
	"github.com/zoolt/imagemanip/internal/manip"
	"github.com/zoolt/imagemanip/internal/orient"
)

// Run is a processed raster waiting to be saved.
type Run struct {
	engine *Engine
	log    *zap.Logger
	source Source
	format imaging.Format
	plan   manip.Plan

	arena  *imaging.Arena
	handle *imaging.Handle
	closed bool

	quality         int
	optimize        bool
	optimizeOptions manip.OptimizeOptions
}

// SourceFormat is the format the source was decoded as.
func (r *Run) SourceFormat() imaging.Format {
	return r.format
}

// Size returns the current raster dimensions.
func (r *Run) Size() (width, height int) {
	return r.handle.Size()
}

// Image returns the current raster.
func (r *Run) Image() (image.Image, error) {
	return r.handle.Image()
}

// Live returns the number of rasters the run still holds: 1 until the run is
// saved or closed, 0 after.
func (r *Run) Live() int {
	return r.arena.Live()
}

// Close releases the raster without saving. It is safe to call more than
// once.
func (r *Run) Close() {
	if r.closed {
		return
	}
	r.closed = true
	_ = r.handle.Release()
}

// Save encodes the raster to dest and runs the optimizer when requested. An
// empty dest overwrites the source file. The output format is the plan's
// format, or the one implied by the extension of dest. Optimizer failures are
// logged, not returned. The run is closed afterwards.
func (r *Run) Save(ctx context.Context, dest string) error {
	defer r.Close()

	if dest == "" {
		if r.source.Data != nil {
			return manip.InvalidParameter("destination", dest, "file path")
		}
		dest = r.source.Path
	}

	format, err := imaging.OutputFormat(r.plan.Format, dest)
	if err != nil {
		return err
	}
	img, err := r.handle.Image()
	if err != nil {
		return manip.ConversionFailed("save", err)
	}
	if err := imaging.EncodeFile(dest, img, format, r.quality); err != nil {
		if errors.Is(err, manip.ErrFileNotFound) {
			return err
		}
		return manip.ConversionFailed("save", err)
	}
	r.log.Debug("saved", zap.String("path", dest), zap.String("format", string(format)), zap.Int("quality", r.quality))

	if !r.optimize {
		return nil
	}
	if err := r.engine.optimizer.Optimize(ctx, dest, format, r.optimizeOptions); err != nil {
		r.log.Warn("optimize failed", zap.String("path", dest), zap.Error(err))
		return nil
	}
	r.log.Debug("optimized", zap.String("path", dest))
	return nil
}

// autoOrient rotates JPEG sources upright according to their EXIF tag. An
// explicit Orientation anywhere in the chain disables it.
func (r *Run) autoOrient(ctx context.Context) error {
	if r.format != imaging.JPEG || r.plan.Chain.Has(manip.Orientation{}.Name()) {
		return nil
	}
	code, present := exifOrientation(r.source)
	if !present {
		return nil
	}
	rotation, ok, err := orient.Resolve(code)
	if err != nil || !ok {
		return err
	}
	if err := r.apply(ctx, rotation); err != nil {
		return err
	}
	r.log.Debug("auto-oriented", zap.Int("exif", code), zap.Int("degrees", rotation.Degrees))
	return nil
}

// apply performs one operation, replacing the current raster when the
// operation produces a new one.
func (r *Run) apply(ctx context.Context, op manip.Op) error {
	img, err := r.handle.Image()
	if err != nil {
		return manip.ConversionFailed(op.Name(), err)
	}

	var out image.Image
	switch op := op.(type) {
	case manip.Scale:
		b := img.Bounds()
		layout := geometry.Resolve(b.Dx(), b.Dy(), op.Width, op.Height, op.Mode)
		out = imaging.Resample(img, layout, r.plan.Background)
	case manip.Crop:
		out, err = imaging.CropCenter(img, op.Width, op.Height)
	case manip.Blur:
		for _, sub := range manip.PlanBlur(op.Intensity, img.Bounds().Dx()) {
			if err := r.apply(ctx, sub); err != nil {
				return err
			}
		}
		return nil
	case manip.Filter:
		out, err = imaging.ApplyFilter(img, string(op.Method), op.Args, op.Iterations)
	case manip.Gamma:
		out = imaging.Gamma(img, op.Value)
	case manip.Orientation:
		out, err = imaging.Rotate(img, op.Degrees)
	case manip.Flip:
		horizontal := op.Axis == manip.FlipHorizontal || op.Axis == manip.FlipBoth
		vertical := op.Axis == manip.FlipVertical || op.Axis == manip.FlipBoth
		out = imaging.Mirror(img, horizontal, vertical)
	case manip.Quality:
		r.quality = op.Value
		return nil
	case manip.Optimize:
		r.optimize = true
		r.optimizeOptions = op.Options
		return nil
	default:
		return manip.ConversionFailed(op.Name(), errors.New("unsupported operation"))
	}
	if err != nil {
		return manip.ConversionFailed(op.Name(), err)
	}

	r.handle, err = r.handle.Replace(out)
	if err != nil {
		return manip.ConversionFailed(op.Name(), err)
	}
	return nil
}
