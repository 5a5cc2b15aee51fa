package recipe

import (
	"context"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/zoolt/imagemanip"
	"github.com/zoolt/imagemanip/internal/manip"
)

type stepFunc func(img *imagemanip.Image, arg interface{}) error

var steps = map[string]stepFunc{
	"blur":       intStep("blur", (*imagemanip.Image).Blur),
	"pixelate":   intStep("pixelate", (*imagemanip.Image).Pixelate),
	"brightness": intStep("brightness", (*imagemanip.Image).Brightness),
	"contrast":   intStep("contrast", (*imagemanip.Image).Contrast),
	"width":      intStep("width", (*imagemanip.Image).Width),
	"height":     intStep("height", (*imagemanip.Image).Height),
	"quality":    intStep("quality", (*imagemanip.Image).Quality),
	"greyscale": func(img *imagemanip.Image, _ interface{}) error {
		img.Greyscale()
		return nil
	},
	"grayscale": func(img *imagemanip.Image, _ interface{}) error {
		img.Greyscale()
		return nil
	},
	"sepia": func(img *imagemanip.Image, _ interface{}) error {
		img.Sepia()
		return nil
	},
	"gamma": func(img *imagemanip.Image, arg interface{}) error {
		var v float64
		if err := mapstructure.WeakDecode(arg, &v); err != nil {
			return manip.InvalidParameter("gamma", arg, "number")
		}
		img.Gamma(v)
		return nil
	},
	"orientation": func(img *imagemanip.Image, arg interface{}) error {
		degrees, err := manip.ParseOrientation(fmt.Sprint(arg))
		if err != nil {
			return err
		}
		img.Orientation(degrees)
		return nil
	},
	"flip": func(img *imagemanip.Image, arg interface{}) error {
		axis, err := manip.ParseFlipAxis(fmt.Sprint(arg))
		if err != nil {
			return err
		}
		img.Flip(axis)
		return nil
	},
	"crop": func(img *imagemanip.Image, arg interface{}) error {
		var c struct {
			Width  int `mapstructure:"width"`
			Height int `mapstructure:"height"`
		}
		if err := mapstructure.WeakDecode(arg, &c); err != nil {
			return manip.InvalidParameter("crop", arg, "{width, height}")
		}
		img.Crop(c.Width, c.Height)
		return nil
	},
	"format": func(img *imagemanip.Image, arg interface{}) error {
		img.Format(fmt.Sprint(arg))
		return nil
	},
	"background": func(img *imagemanip.Image, arg interface{}) error {
		img.Background(fmt.Sprint(arg))
		return nil
	},
}

func intStep(name string, fn func(*imagemanip.Image, int) *imagemanip.Image) stepFunc {
	return func(img *imagemanip.Image, arg interface{}) error {
		var v int
		if err := mapstructure.WeakDecode(arg, &v); err != nil {
			return manip.InvalidParameter(name, arg, "integer")
		}
		fn(img, v)
		return nil
	}
}

// StepNames lists the operation names a recipe step may use.
func StepNames() []string {
	names := make([]string, 0, len(steps))
	for name := range steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Image loads the recipe's source and applies every configured operation.
// It returns the first error, whether it comes from an unreadable step or
// from the image's own validation.
func (r *Recipe) Image(opts ...imagemanip.Option) (*imagemanip.Image, error) {
	img := imagemanip.Load(r.Source, opts...)

	if r.Background != "" {
		img.Background(r.Background)
	}
	if r.Format != "" {
		img.Format(r.Format)
	}
	if r.Fit != nil {
		mode := imagemanip.FitMode(r.Fit.Mode)
		if mode == "" {
			mode = imagemanip.FitContain
		}
		img.Fit(mode, r.Fit.Width, r.Fit.Height)
	}
	if r.Width != nil {
		img.Width(*r.Width)
	}
	if r.Height != nil {
		img.Height(*r.Height)
	}
	if err := img.Err(); err != nil {
		return nil, err
	}

	for i, raw := range r.Steps {
		name, arg, err := splitStep(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		fn, ok := steps[name]
		if !ok {
			valid := make([]interface{}, 0, len(steps))
			for _, n := range StepNames() {
				valid = append(valid, n)
			}
			return nil, errors.Wrapf(manip.InvalidParameter("step", name, valid...), "step %d", i)
		}
		if err := fn(img, arg); err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		if err := img.Err(); err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
	}

	if r.Quality != nil {
		img.Quality(*r.Quality)
	}
	options, enabled, err := r.optimizeOptions()
	if err != nil {
		return nil, err
	}
	if enabled {
		img.Optimize(options)
	}
	if err := img.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

// Run applies the recipe and saves the result to its destination. An empty
// destination overwrites the source.
func (r *Recipe) Run(ctx context.Context, opts ...imagemanip.Option) error {
	img, err := r.Image(opts...)
	if err != nil {
		return err
	}
	return img.SaveContext(ctx, r.Destination)
}

func (r *Recipe) optimizeOptions() (imagemanip.OptimizeOptions, bool, error) {
	switch v := r.Optimize.(type) {
	case nil:
		return nil, false, nil
	case bool:
		return nil, v, nil
	}
	var options imagemanip.OptimizeOptions
	if err := mapstructure.WeakDecode(r.Optimize, &options); err != nil {
		return nil, false, manip.InvalidParameter("optimize", r.Optimize, "true", "{tool: [args]}")
	}
	return options, true, nil
}

// splitStep returns the operation name and argument of one step entry.
func splitStep(raw interface{}) (string, interface{}, error) {
	switch step := raw.(type) {
	case string:
		return step, nil, nil
	case map[string]interface{}:
		if len(step) != 1 {
			return "", nil, errors.Errorf("a step must have exactly one key, got %d", len(step))
		}
		for name, arg := range step {
			return name, arg, nil
		}
	case map[interface{}]interface{}:
		if len(step) != 1 {
			return "", nil, errors.Errorf("a step must have exactly one key, got %d", len(step))
		}
		for name, arg := range step {
			return fmt.Sprint(name), arg, nil
		}
	}
	return "", nil, errors.Errorf("unsupported step %v", raw)
}
