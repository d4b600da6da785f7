package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/esimov/triangler"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is set at build time through -ldflags "-X main.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "triangler -i input.jpg -o output.png",
	Short: "Convert images to low-poly art using Delaunay triangulation",
	Long: `Convert images to low-poly art using Delaunay triangulation.

The source can be an image file, a directory of .jpg/.png images or an
http(s) URL. Every flag can also be set through a TRIANGLER_<FLAG>
environment variable, e.g. TRIANGLER_EDGE_DETECTOR=entropy.`,
	SilenceUsage: true,
	RunE:         run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("triangler %s\n", Version)
	},
}

func init() {
	f := rootCmd.Flags()
	addFlags(f)

	viper.SetEnvPrefix("triangler")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(f); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(versionCmd)
}

// addFlags declares the command line options, defaulting to DefaultConfig.
func addFlags(f *pflag.FlagSet) {
	def := triangler.DefaultConfig()

	f.StringP("in", "i", "", "Source image, directory or URL")
	f.StringP("out", "o", "", "Destination image, or directory in batch mode")
	f.StringP("config", "c", "", "YAML file with the conversion options")
	f.IntP("points", "p", def.Points, "Number of sample points to use")
	f.StringP("edge-detector", "e", string(def.EdgeDetector), "Edge detection algorithm: sobel, canny or entropy")
	f.StringP("sampler", "s", string(def.Sampler), "Point sampling algorithm: poisson_disk or threshold")
	f.StringP("renderer", "r", string(def.Renderer), "Color polygon rendering algorithm: centroid or mean")
	f.IntP("blur", "b", def.BlurRadius, "Blur radius of the canny edge detector")
	f.BoolP("reduce", "l", def.Reduce, "Reduce the result image size to match the input image")
	f.String("corners", string(def.Corners), "Anchor points: seven, four or none")
	f.Int64("seed", def.Seed, "Random seed, 0 picks one from the clock")
	f.String("wireframe", string(def.Wireframe), "Wireframe mode: none, with or only")
	f.Float64("stroke", def.StrokeWidth, "Wireframe stroke width")
	f.Bool("solid", def.Solid, "Solid black wireframe lines")
	f.Bool("gray", def.Grayscale, "Convert to grayscale")
	f.Int("noise", def.Noise, "Noise factor")
	f.String("mesh", "", "GeoJSON file (directory in batch mode) receiving the triangulation")
	f.String("report", "", "JSON file receiving the conversion report")
	f.IntP("workers", "w", runtime.NumCPU(), "Images converted concurrently in batch mode")
	f.Int("render-workers", 0, "Goroutines filling the triangles of one image, 0 uses GOMAXPROCS")
	f.String("profile", "", "Write a cpu or mem profile to the working directory")
	f.BoolP("debug", "d", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
