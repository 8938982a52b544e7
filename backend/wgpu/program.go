//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pathfill/render"
)

// Bind group layout of the path-fill program.
const (
	bindingMask     = 0
	bindingInstance = 1
	bindingImage    = 2
	bindingSampler  = 3
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// CompileShader translates WGSL to SPIR-V words.
func CompileShader(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("wgpu: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	if len(code) == 0 || code[0] != spirvMagic {
		return nil, fmt.Errorf("wgpu: compile shader: missing SPIR-V header")
	}
	return code, nil
}

// program owns the shader module and layouts of one ProgramDescriptor.
// Render pipelines depend on the blend state, so they are created lazily
// and cached per state.
type program struct {
	owner          *Context
	label          string
	layout         []gputypes.VertexBufferLayout
	module         hal.ShaderModule
	bindLayout     hal.BindGroupLayout
	pipelineLayout hal.PipelineLayout
	pipelines      map[gputypes.BlendState]hal.RenderPipeline
}

func (c *Context) newProgram(desc render.ProgramDescriptor) (*program, error) {
	source := hal.ShaderSource{WGSL: desc.Source}
	if code, err := CompileShader(desc.Source); err == nil {
		source = hal.ShaderSource{SPIRV: code}
	} else {
		c.log().Warn("wgpu: using WGSL source", "program", desc.Label, "err", err)
	}

	p := &program{
		owner:     c,
		label:     desc.Label,
		layout:    desc.VertexLayout,
		pipelines: make(map[gputypes.BlendState]hal.RenderPipeline),
	}

	var err error
	p.module, err = c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module: %w", err)
	}

	p.bindLayout, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: desc.Label + "_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    bindingMask,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    bindingInstance,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    bindingImage,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    bindingSampler,
				Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{
					Type: gputypes.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("wgpu: create bind group layout: %w", err)
	}

	p.pipelineLayout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	return p, nil
}

// pipeline returns the render pipeline for blend, creating it on first use.
func (p *program) pipeline(blend gputypes.BlendState) (hal.RenderPipeline, error) {
	if rp, ok := p.pipelines[blend]; ok {
		return rp, nil
	}
	c := p.owner
	rp, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  p.label + "_pipeline",
		Layout: p.pipelineLayout,
		Vertex: hal.VertexState{
			Module:     p.module,
			EntryPoint: "vs_main",
			Buffers:    p.layout,
		},
		Fragment: &hal.FragmentState{
			Module:     p.module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    targetFormat,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create render pipeline: %w", err)
	}
	p.pipelines[blend] = rp
	c.log().Debug("wgpu: pipeline created", "program", p.label, "pipelines", len(p.pipelines))
	return rp, nil
}

// Label returns the descriptor label.
func (p *program) Label() string { return p.label }

// Destroy releases the pipelines, layouts and shader module.
func (p *program) Destroy() {
	d := p.owner.device
	for blend, rp := range p.pipelines {
		d.DestroyRenderPipeline(rp)
		delete(p.pipelines, blend)
	}
	if p.pipelineLayout != nil {
		d.DestroyPipelineLayout(p.pipelineLayout)
		p.pipelineLayout = nil
	}
	if p.bindLayout != nil {
		d.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		d.DestroyShaderModule(p.module)
		p.module = nil
	}
}
