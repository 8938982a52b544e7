package main

import (
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/noop" // headless HAL device

	"github.com/gogpu/pathfill/backend/software"
	"github.com/gogpu/pathfill/backend/wgpu"
	"github.com/gogpu/pathfill/internal/scene"
)

// canvas is a scene target whose pixels can be read back.
type canvas interface {
	scene.Target
	Snapshot() (*image.RGBA, error)
	Close()
}

// opener creates a width x height canvas.
type opener func(width, height int) (canvas, error)

// newBackends returns the backend table. The first priority entry is
// the default.
func newBackends() *gpucontext.Registry[opener] {
	r := gpucontext.NewRegistry[opener](gpucontext.WithPriority("software", "wgpu"))
	r.Register("software", func() opener { return openSoftware })
	r.Register("wgpu", func() opener { return openWGPU })
	return r
}

type softwareCanvas struct{ *software.Context }

func openSoftware(width, height int) (canvas, error) {
	return softwareCanvas{software.NewContext(width, height)}, nil
}

func (c softwareCanvas) Snapshot() (*image.RGBA, error) { return c.Image(), nil }
func (c softwareCanvas) Close()                         {}

type wgpuCanvas struct{ *wgpu.Context }

func openWGPU(width, height int) (canvas, error) {
	c, err := wgpu.Open(gputypes.BackendEmpty, width, height)
	if err != nil {
		return nil, err
	}
	return wgpuCanvas{c}, nil
}

func (c wgpuCanvas) Snapshot() (*image.RGBA, error) { return c.ReadPixels() }
func (c wgpuCanvas) Close()                         { c.Destroy() }
