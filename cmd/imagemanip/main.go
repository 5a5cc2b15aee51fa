package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zoolt/imagemanip"
	"github.com/zoolt/imagemanip/internal/recipe"
	"github.com/zoolt/imagemanip/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const logLevelEnv = "IMAGEMANIP_LOG_LEVEL"

func main() {
	args := os.Args[1:]
	command := "serve"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "--version", "-v", "version":
		fmt.Printf("imagemanip %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		usage()
		return
	}

	// Logs go to stderr; stdout is for the MCP protocol.
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	imageOpts := []imagemanip.Option{imagemanip.WithLogger(logger)}

	switch command {
	case "serve":
		logger.Debug("starting server",
			zap.String("version", Version),
			zap.String("build_time", BuildTime),
			zap.String("commit", GitCommit))

		opts := []server.Option{
			server.WithLogger(logger),
			server.WithImageOptions(imageOpts...),
		}
		if size, err := strconv.Atoi(os.Getenv(imagemanip.InfoCacheEnv)); err == nil {
			opts = append(opts, server.WithInfoCacheSize(size))
		}
		server.Version = Version

		// The server stops when stdin is closed; signals keep their default
		// behavior and terminate the process.
		if err := server.New(opts...).Run(context.Background()); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case "--recipe", "-r", "recipe":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: imagemanip --recipe <file>")
			os.Exit(2)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		for _, path := range args[1:] {
			if err := runRecipe(ctx, path, imageOpts); err != nil {
				logger.Error("recipe failed", zap.String("recipe", path), zap.Error(err))
				os.Exit(1)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		usage()
		os.Exit(2)
	}
}

func runRecipe(ctx context.Context, path string, opts []imagemanip.Option) error {
	r, err := recipe.Load(path)
	if err != nil {
		return err
	}
	return r.Run(ctx, opts...)
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if os.Getenv(logLevelEnv) == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func usage() {
	fmt.Println("imagemanip - image manipulation as an MCP server or from recipe files")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  imagemanip [serve]              Serve MCP over stdin/stdout (default)")
	fmt.Println("  imagemanip --recipe <file>...   Apply YAML or TOML recipes")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Enable debug logging\n", logLevelEnv)
	fmt.Printf("  %s=<n>     Number of cached image headers\n", imagemanip.InfoCacheEnv)
	fmt.Println("  PATH                          Searched for jpegoptim, pngquant, optipng, gifsicle and cwebp")
}
