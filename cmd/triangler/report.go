package main

import (
	"os"
	"time"

	"github.com/esimov/triangler"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// entry is the report of one converted image.
type entry struct {
	Input     string   `json:"input"`
	Output    string   `json:"output"`
	Seed      int64    `json:"seed,omitempty"`
	Sampled   int      `json:"sampled"`
	Points    int      `json:"points"`
	Triangles int      `json:"triangles"`
	Elapsed   string   `json:"elapsed"`
	Warnings  []string `json:"warnings,omitempty"`
	Error     string   `json:"error,omitempty"`

	err     error
	elapsed time.Duration
}

func (e *entry) fill(res *triangler.Result, err error, elapsed time.Duration) {
	e.elapsed = elapsed
	e.Elapsed = elapsed.String()
	if err != nil {
		e.err = err
		e.Error = err.Error()
		return
	}
	e.Seed = res.Seed
	e.Sampled = res.Sampled
	e.Points = len(res.Points)
	e.Triangles = len(res.Triangles)
	for _, w := range res.Warnings {
		e.Warnings = append(e.Warnings, w.Error())
	}
}

func writeReport(path string, entries []entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write report")
}

func writeMesh(path string, res *triangler.Result) error {
	fc := triangler.MeshFeatureCollection(res.Points, res.Triangles, res.Source)
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "marshal mesh")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write mesh")
}
