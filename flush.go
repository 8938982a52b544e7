package pathfill

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pathfill/render"
)

// acquire takes the staging buffers and textures of the next batch from
// the batch buffer. It does nothing while a batch is open.
func (r *Renderer) acquire() error {
	if r.acquired {
		return nil
	}
	var err error
	if r.maskTexture, err = r.batch.TextureR8(); err != nil {
		return fmt.Errorf("pathfill: acquire mask texture: %w", err)
	}
	if r.maskTransfer, err = r.batch.TransferR8(r.id); err != nil {
		return fmt.Errorf("pathfill: acquire mask transfer: %w", err)
	}
	if r.instTexture, err = r.batch.TextureRGBA32F(); err != nil {
		return fmt.Errorf("pathfill: acquire instance texture: %w", err)
	}
	if r.instTransfer, err = r.batch.TransferRGBA32F(r.id); err != nil {
		return fmt.Errorf("pathfill: acquire instance transfer: %w", err)
	}
	r.acquired = true
	Logger().Debug("pathfill: batch buffers acquired", "id", r.id)
	return nil
}

// Flush submits the queued blocks in one draw call and starts a new
// batch. It does nothing when no vertices are queued. A failed submission
// drops the queued blocks; the renderer is ready for the next batch
// either way.
func (r *Renderer) Flush() error {
	if len(r.vertices) == 0 {
		return nil
	}

	usedRows := r.atlas.UsedRows(r.nextBlock)
	gpuIndex, err := r.submit(usedRows)
	if err == nil {
		Logger().Debug("pathfill: flush",
			"vertices", len(r.vertices),
			"blocks", r.nextBlock,
			"maskRows", usedRows,
			"stops", r.stops,
			"vertexBuffer", gpuIndex)
		r.stats.Draws++
		r.stats.Vertices += len(r.vertices)
	} else {
		Logger().Warn("pathfill: flush failed", "vertices", len(r.vertices), "err", err)
	}
	r.batch.SetTransferR8Used(r.id, usedRows)
	r.release()
	return err
}

// submit uploads the staging buffers and draws the batch.
func (r *Renderer) submit(usedRows int) (int, error) {
	r.maskTransfer.Unlock()
	r.instTransfer.Unlock()

	vb, gpuIndex, err := r.batch.VertexBuffer()
	if err != nil {
		return 0, fmt.Errorf("pathfill: flush: %w", err)
	}
	if err := vb.Upload(r.vertices); err != nil {
		return gpuIndex, fmt.Errorf("pathfill: upload vertices: %w", err)
	}
	if err := r.maskTransfer.Upload(r.maskTexture, r.atlas.TextureSize(), usedRows); err != nil {
		return gpuIndex, fmt.Errorf("pathfill: upload mask: %w", err)
	}
	if err := r.instTransfer.Upload(r.instTexture, 2*r.stops, 1); err != nil {
		return gpuIndex, fmt.Errorf("pathfill: upload gradient stops: %w", err)
	}
	return gpuIndex, r.draw(vb)
}

// draw binds the path-fill state, draws every queued vertex from vb and
// unbinds the state in reverse order.
func (r *Renderer) draw(vb render.VertexBuffer) error {
	gc := r.gc
	gc.SetBlendState(gputypes.BlendStatePremultiplied())
	gc.SetProgram(r.program)
	defer func() {
		if r.image != nil {
			gc.ResetTexture(render.SlotImage)
		}
		gc.ResetTexture(render.SlotInstance)
		gc.ResetTexture(render.SlotMask)
		gc.ResetProgram()
		gc.ResetBlendState()
	}()

	if err := gc.SetTexture(render.SlotMask, r.maskTexture); err != nil {
		return fmt.Errorf("pathfill: bind mask: %w", err)
	}
	if err := gc.SetTexture(render.SlotInstance, r.instTexture); err != nil {
		return fmt.Errorf("pathfill: bind instance: %w", err)
	}
	if r.image != nil {
		if err := gc.SetTexture(render.SlotImage, r.image); err != nil {
			return fmt.Errorf("pathfill: bind image: %w", err)
		}
	}
	if err := gc.DrawPrimitives(gputypes.PrimitiveTopologyTriangleList, len(r.vertices), vb); err != nil {
		return fmt.Errorf("pathfill: draw: %w", err)
	}
	return nil
}

// release zeroes the batch counters and hands the buffers back.
func (r *Renderer) release() {
	r.vertices = r.vertices[:0]
	r.upload = r.upload[:0]
	r.nextBlock = 0
	r.stops = 0
	r.image = nil
	r.dedup.Reset()

	r.maskTransfer = nil
	r.maskTexture = nil
	r.instTransfer = nil
	r.instTexture = nil
	r.acquired = false
}
