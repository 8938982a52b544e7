// Command pathfill renders a YAML scene to a PNG file.
//
// Usage:
//
//	pathfill -scene scene.yaml -out out.png [-backend software|wgpu] [-v]
//
// The wgpu backend runs on the headless HAL noop device: it exercises the
// full GPU submission path, but the device keeps no pixels.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/gogpu/pathfill"
	"github.com/gogpu/pathfill/backend/wgpu"
	"github.com/gogpu/pathfill/internal/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "pathfill:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pathfill", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		scenePath = fs.String("scene", "", "scene file (YAML)")
		out       = fs.String("out", "out.png", "output PNG file")
		name      = fs.String("backend", "", "graphics backend (default: best available)")
		verbose   = fs.Bool("v", false, "log batch activity")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenePath == "" {
		fs.Usage()
		return errors.New("missing -scene")
	}

	if *verbose {
		l := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		pathfill.SetLogger(l)
		wgpu.SetLogger(l)
		defer pathfill.SetLogger(nil)
		defer wgpu.SetLogger(nil)
	}

	backends := newBackends()
	if *name == "" {
		*name = backends.BestName()
	}
	if !backends.Has(*name) {
		names := backends.Available()
		slices.Sort(names)
		return fmt.Errorf("unknown backend %q (have %s)", *name, strings.Join(names, ", "))
	}

	s, err := scene.Load(*scenePath)
	if err != nil {
		return err
	}
	c, err := backends.Get(*name)(s.Width, s.Height)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", *name, err)
	}
	defer c.Close()

	stats, err := scene.Draw(s, c)
	if err != nil {
		return err
	}
	img, err := c.Snapshot()
	if err != nil {
		return fmt.Errorf("read pixels: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: %dx%d, %d fills, %d draws, %d blocks (%d reused), %s backend\n",
		*out, s.Width, s.Height, stats.Fills, stats.Draws, stats.Blocks, stats.ReusedBlocks, *name)
	return nil
}
