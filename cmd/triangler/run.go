package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/esimov/triangler"
	"github.com/esimov/triangler/utils"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Supported image files in batch mode.
var extensions = []string{".jpg", ".jpeg", ".png"}

// job is a single conversion of the batch.
type job struct {
	in, out, mesh string
}

func run(cmd *cobra.Command, args []string) error {
	source, err := expand(viper.GetString("in"))
	if err != nil {
		return err
	}
	if source == "" {
		return errors.New("missing source, usage: triangler -i input.jpg -o output.png")
	}
	destination, err := expand(viper.GetString("out"))
	if err != nil {
		return err
	}
	meshPath, err := expand(viper.GetString("mesh"))
	if err != nil {
		return err
	}
	reportPath, err := expand(viper.GetString("report"))
	if err != nil {
		return err
	}

	switch viper.GetString("profile") {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return errors.Errorf("unsupported profile %q, expected cpu or mem", viper.GetString("profile"))
	}

	logger, err := newLogger(viper.GetBool("debug"))
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	proc := newProcessor(cfg, logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if utils.IsURL(source) {
		tmp, err := utils.DownloadImage(ctx, source)
		if err != nil {
			return err
		}
		defer os.Remove(tmp)

		if destination == "" {
			destination = outputName(".", source)
		}
		return single(ctx, proc, job{in: tmp, out: destination, mesh: meshPath}, reportPath)
	}

	fs, err := os.Stat(source)
	if err != nil {
		return errors.Wrap(err, "unable to open source")
	}
	if fs.Mode().IsRegular() {
		if destination == "" {
			destination = outputName(filepath.Dir(source), source)
		}
		return single(ctx, proc, job{in: source, out: destination, mesh: meshPath}, reportPath)
	}

	if destination == "" {
		destination = source
	}
	if dst, err := os.Stat(destination); err != nil || !dst.IsDir() {
		return errors.Errorf("destination %s must be an existing directory in batch mode", destination)
	}
	if meshPath != "" {
		if err := os.MkdirAll(meshPath, 0o755); err != nil {
			return errors.Wrap(err, "create mesh directory")
		}
	}
	jobs, err := collect(source, destination, meshPath)
	if err != nil {
		return err
	}
	return batch(ctx, proc, jobs, viper.GetInt("workers"), reportPath, logger)
}

// outputName places the triangulated version of src into dir.
func outputName(dir, src string) string {
	name := filepath.Base(src)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if filepath.Ext(name) == "" {
		name += ".png"
	}
	return filepath.Join(dir, "triangler-"+name)
}

// collect lists the supported images of the source directory.
func collect(source, destination, meshDir string) ([]job, error) {
	files, err := os.ReadDir(source)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read dir")
	}
	var jobs []job
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		for _, iex := range extensions {
			if ext != iex {
				continue
			}
			name := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
			j := job{
				in:  filepath.Join(source, f.Name()),
				out: filepath.Join(destination, "triangler-"+name+".png"),
			}
			if meshDir != "" {
				j.mesh = filepath.Join(meshDir, name+".geojson")
			}
			jobs = append(jobs, j)
		}
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].in < jobs[k].in })
	return jobs, nil
}

// convert runs one job and fills its report entry.
func convert(ctx context.Context, proc *triangler.Processor, j job) entry {
	start := time.Now()
	e := entry{Input: j.in, Output: j.out}

	res, err := proc.ConvertFile(ctx, j.in, j.out)
	if err == nil && j.mesh != "" {
		err = writeMesh(j.mesh, res)
	}
	e.fill(res, err, time.Since(start))
	return e
}

func single(ctx context.Context, proc *triangler.Processor, j job, reportPath string) error {
	s := utils.NewSpinner()
	s.Start("Generating triangulated image...")
	e := convert(ctx, proc, j)
	s.Stop()

	if reportPath != "" {
		if err := writeReport(reportPath, []entry{e}); err != nil {
			return err
		}
	}
	if e.err != nil {
		return errors.Wrapf(e.err, "error converting image %s", j.in)
	}
	fmt.Printf("Generated in: %s\n", utils.Decorate(utils.FormatTime(e.elapsed), utils.SuccessColor))
	fmt.Printf("Total number of %s triangles generated out of %s points\n",
		utils.Decorate(fmt.Sprint(e.Triangles), utils.SuccessColor),
		utils.Decorate(fmt.Sprint(e.Points), utils.SuccessColor),
	)
	for _, w := range e.Warnings {
		fmt.Printf("Warning: %s\n", utils.Decorate(w, utils.StatusColor))
	}
	fmt.Printf("Saved as: %s %s\n", filepath.Base(j.out), utils.Decorate("✓", utils.SuccessColor))
	return nil
}

// batch converts the jobs concurrently. A failing image does not stop the
// others; the command fails once all of them are done.
func batch(ctx context.Context, proc *triangler.Processor, jobs []job, workers int, reportPath string, logger *zap.Logger) error {
	var (
		mu      sync.Mutex
		entries = make([]entry, len(jobs))
		failed  int
		start   = time.Now()
	)
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		i, j := i, j // per-iteration copies (go.mod targets go 1.21)
		g.Go(func() error {
			e := convert(ctx, proc, j)
			entries[i] = e

			mu.Lock()
			defer mu.Unlock()
			if e.err != nil {
				failed++
				logger.Error("conversion failed", zap.String("input", j.in), zap.Error(e.err))
				fmt.Printf("%s %s: %s\n", utils.Decorate("✗", utils.ErrorColor), filepath.Base(j.in), e.err)
				return nil
			}
			fmt.Printf("%s %s -> %s (%s)\n", utils.Decorate("✓", utils.SuccessColor),
				filepath.Base(j.in), filepath.Base(j.out), utils.FormatTime(e.elapsed))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if reportPath != "" {
		if err := writeReport(reportPath, entries); err != nil {
			return err
		}
	}
	fmt.Printf("Converted %s of %d images in %s\n",
		utils.Decorate(fmt.Sprint(len(jobs)-failed), utils.SuccessColor), len(jobs),
		utils.FormatTime(time.Since(start)))
	if failed > 0 {
		return errors.Errorf("%d of %d images failed", failed, len(jobs))
	}
	return nil
}
