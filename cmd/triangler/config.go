package main

import (
	"os"
	"strings"

	"github.com/esimov/triangler"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// expand resolves a leading ~ in path.
func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "expand %s", path)
	}
	return p, nil
}

// buildConfig starts from the defaults, or from the --config file, and
// applies the flags and environment variables. When a file is given only the
// explicitly set flags and variables override it.
func buildConfig(cmd *cobra.Command) (triangler.Config, error) {
	cfg := triangler.DefaultConfig()

	path, err := expand(viper.GetString("config"))
	if err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(triangler.ErrInvalidInput, "read config %s: %v", path, err)
		}
		if cfg, err = triangler.ParseConfig(data); err != nil {
			return cfg, err
		}
	}

	set := func(name string) bool {
		if path == "" || cmd.Flags().Changed(name) {
			return true
		}
		env := "TRIANGLER_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		_, ok := os.LookupEnv(env)
		return ok
	}

	if set("points") {
		cfg.Points = viper.GetInt("points")
	}
	if set("edge-detector") {
		cfg.EdgeDetector = triangler.EdgeDetector(viper.GetString("edge-detector"))
	}
	if set("sampler") {
		cfg.Sampler = triangler.Sampler(viper.GetString("sampler"))
	}
	if set("renderer") {
		cfg.Renderer = triangler.Renderer(viper.GetString("renderer"))
	}
	if set("blur") {
		cfg.BlurRadius = viper.GetInt("blur")
	}
	if set("reduce") {
		cfg.Reduce = viper.GetBool("reduce")
	}
	if set("corners") {
		switch c := viper.GetString("corners"); c {
		case "none":
			cfg.AddCorners = false
		default:
			cfg.AddCorners = true
			cfg.Corners = triangler.CornerSet(c)
		}
	}
	if set("seed") {
		cfg.Seed = viper.GetInt64("seed")
	}
	if set("wireframe") {
		cfg.Wireframe = triangler.Wireframe(viper.GetString("wireframe"))
	}
	if set("stroke") {
		cfg.StrokeWidth = viper.GetFloat64("stroke")
	}
	if set("solid") {
		cfg.Solid = viper.GetBool("solid")
	}
	if set("gray") {
		cfg.Grayscale = viper.GetBool("gray")
	}
	if set("noise") {
		cfg.Noise = viper.GetInt("noise")
	}

	return cfg, cfg.Validate()
}

// newProcessor returns a processor for cfg whose render pool is sized by the
// render-workers flag. The workers flag only bounds the images of a batch.
func newProcessor(cfg triangler.Config, logger *zap.Logger) *triangler.Processor {
	proc := triangler.NewProcessor(cfg, logger)
	proc.Workers = viper.GetInt("render-workers")
	return proc
}

// newLogger returns a console logger reporting warnings, or everything in debug mode.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
