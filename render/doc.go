// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the graphics-context contract the path-fill
// renderer draws through, together with the CPU staging and batch
// resources it fills.
//
// # Key Principle
//
// The renderer RECEIVES a GraphicContext from the host, it does NOT create
// a device. Texture allocation, program binding, blend state and draw
// submission all go through the interface, so the same batches run on a
// HAL device (backend/wgpu) or on the CPU (backend/software).
//
// # Core Types
//
//   - GraphicContext: texture, vertex buffer and program creation, state
//     binding and draw submission
//   - Texture: GPU texture that accepts region uploads
//   - TransferTexture: CPU staging pixels locked for writing between flushes
//   - BatchBuffer: rotating vertex buffers plus the mask and instance
//     textures, handed out per flush cycle
//   - Vertex: the GPU vertex record, six per coverage block
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. A BatchBuffer and
// the GraphicContext it allocates from belong to one rendering goroutine.
package render
