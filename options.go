package imagemanip

import (
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/zoolt/imagemanip/internal/engine"
	"github.com/zoolt/imagemanip/internal/imaging"
	"github.com/zoolt/imagemanip/internal/manip"
	"github.com/zoolt/imagemanip/internal/optimize"
)

// FitMode selects how Fit reconciles the source and target ratios.
type FitMode = manip.FitMode

const (
	FitContain = manip.FitContain
	FitMax     = manip.FitMax
	FitFill    = manip.FitFill
	FitStretch = manip.FitStretch
	FitCrop    = manip.FitCrop
)

// FlipAxis selects the mirror direction of Flip.
type FlipAxis = manip.FlipAxis

const (
	FlipHorizontal = manip.FlipHorizontal
	FlipVertical   = manip.FlipVertical
	FlipBoth       = manip.FlipBoth
)

// OptimizeOptions maps optimizer tool names to their arguments. Nil or empty
// runs the default tool chain.
type OptimizeOptions = manip.OptimizeOptions

// Format is an encoded image format such as "jpeg" or "webp".
type Format = imaging.Format

// Optimizer rewrites a saved file in place. Implementations replace the
// external tool chain through WithOptimizer.
type Optimizer = optimize.Optimizer

// InfoCacheEnv names the environment variable holding the number of source
// headers cached by Dimensions.
const InfoCacheEnv = "IMAGEMANIP_INFO_CACHE"

var (
	infoOnce  sync.Once
	infoCache *imaging.InfoCache
)

func sharedInfoCache() *imaging.InfoCache {
	infoOnce.Do(func() {
		size, _ := strconv.Atoi(os.Getenv(InfoCacheEnv))
		infoCache = imaging.NewInfoCache(size)
	})
	return infoCache
}

type config struct {
	logger    *zap.Logger
	optimizer Optimizer
}

// Option configures an Image.
type Option func(*config)

// WithLogger routes pipeline logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithOptimizer replaces the external optimizer tool chain.
func WithOptimizer(o Optimizer) Option {
	return func(c *config) {
		c.optimizer = o
	}
}

func newEngine(opts []Option) *engine.Engine {
	c := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	engineOpts := []engine.Option{engine.WithLogger(c.logger)}
	if c.optimizer != nil {
		engineOpts = append(engineOpts, engine.WithOptimizer(c.optimizer))
	}
	return engine.New(engineOpts...)
}
