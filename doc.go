/*
Package triangler is an image processing library which converts images to low-poly art using delaunay triangulation.

The conversion runs in four stages: an edge detector (Sobel, a Canny-style
Laplacian or an entropy and color edge blend) weights every pixel, a sampler
(weighted Poisson-disk or threshold) picks points concentrated on the edges,
the points plus the image anchors are triangulated, and every triangle is
filled with the color at its centroid or with the mean color it covers.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ triangler --help

Example to convert an image with the default options:

	package main

	import (
		"context"
		"log"

		"github.com/esimov/triangler"
	)

	func main() {
		cfg := triangler.DefaultConfig()
		cfg.Points = 2000
		cfg.Reduce = true

		p := triangler.NewProcessor(cfg, nil)
		if _, err := p.ConvertFile(context.Background(), "input.jpg", "output.png"); err != nil {
			log.Fatalf("Error on triangulation process: %s", err.Error())
		}
	}

The rendered image is twice the size of the source unless Reduce is set, in
which case it is scaled back down with one pyramid reduction step.
*/
package triangler
