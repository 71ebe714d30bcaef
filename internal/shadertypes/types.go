package shadertypes

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPU sizes in bytes. Tests assert that unsafe.Sizeof of each struct equals
// its constant, so any field edit that shifts the layout fails immediately.
const (
	FrustumSize              = 96
	PassConstantsSize        = 368
	InstanceConstantsSize    = 112
	PBRMaterialConstantsSize = 48
	PBRLightSize             = 80
)

// PackedVec3 is a vec3 padded to the 16-byte GPU alignment.
type PackedVec3 struct {
	V    mgl32.Vec3 // offset 0
	_pad float32    // offset 12
}

// PackVec3 wraps v with its padding.
func PackVec3(v mgl32.Vec3) PackedVec3 {
	return PackedVec3{V: v}
}

// PackedMat3 is a 3x3 matrix stored as three 16-byte columns, the GPU layout
// of a mat3x3<f32>.
type PackedMat3 struct {
	Cols [3]PackedVec3 // offset 0
}

// PackMat3 converts a column-major mat3 to its padded GPU form.
func PackMat3(m mgl32.Mat3) PackedMat3 {
	return PackedMat3{Cols: [3]PackedVec3{
		{V: mgl32.Vec3{m[0], m[1], m[2]}},
		{V: mgl32.Vec3{m[3], m[4], m[5]}},
		{V: mgl32.Vec3{m[6], m[7], m[8]}},
	}}
}

// Frustum is six clip planes as (normal, distance) vec4s.
type Frustum struct {
	Planes [6]mgl32.Vec4 // offset 0
}

// PassConstants is the per-frame, per-pass uniform block: one entry per view
// for the matrices and camera positions, plus lighting globals.
type PassConstants struct {
	ViewMatrices           [MaxViewCount]mgl32.Mat4 // offset 0
	ProjectionMatrices     [MaxViewCount]mgl32.Mat4 // offset 128
	CameraPositions        [MaxViewCount]PackedVec3 // offset 256
	EnvironmentLightMatrix mgl32.Mat4               // offset 288
	ActiveLightCount       uint32                   // offset 352
	_pad                   [3]uint32                // offset 356
}

// InstanceConstants is the per-draw uniform block.
type InstanceConstants struct {
	ModelMatrix  mgl32.Mat4 // offset 0
	NormalMatrix PackedMat3 // offset 64
}

// PBRMaterialConstants mirrors the glTF metallic-roughness material factors.
type PBRMaterialConstants struct {
	BaseColorFactor  mgl32.Vec4 // offset 0
	EmissiveColor    mgl32.Vec3 // offset 16
	_pad             float32    // offset 28
	NormalScale      float32    // offset 32
	MetallicFactor   float32    // offset 36
	RoughnessFactor  float32    // offset 40
	EmissiveStrength float32    // offset 44
}

// PBRLight is one light in the light buffer. Which fields are meaningful
// depends on Type: directional lights use Direction only, point lights use
// Position and Range, spot lights use all of them.
type PBRLight struct {
	Direction    mgl32.Vec3 // offset 0
	_pad0        float32    // offset 12
	Position     mgl32.Vec3 // offset 16
	_pad1        float32    // offset 28
	Color        mgl32.Vec3 // offset 32
	_pad2        float32    // offset 44
	Range        float32    // offset 48
	Intensity    float32    // offset 52
	InnerConeCos float32    // offset 56
	OuterConeCos float32    // offset 60
	Type         uint32     // offset 64
	_pad3        [3]uint32  // offset 68
}

// Size returns the GPU byte size of the struct.
func (f *Frustum) Size() int { return int(unsafe.Sizeof(*f)) }

// Size returns the GPU byte size of the struct.
func (p *PassConstants) Size() int { return int(unsafe.Sizeof(*p)) }

// Size returns the GPU byte size of the struct.
func (c *InstanceConstants) Size() int { return int(unsafe.Sizeof(*c)) }

// Size returns the GPU byte size of the struct.
func (m *PBRMaterialConstants) Size() int { return int(unsafe.Sizeof(*m)) }

// Size returns the GPU byte size of the struct.
func (l *PBRLight) Size() int { return int(unsafe.Sizeof(*l)) }

// Marshal serializes the struct to its little-endian GPU bytes.
func (f *Frustum) Marshal() []byte {
	w := newByteWriter(FrustumSize)
	for i := range f.Planes {
		w.vec4(f.Planes[i])
	}
	return w.buf
}

// Marshal serializes the struct to its little-endian GPU bytes.
func (p *PassConstants) Marshal() []byte {
	w := newByteWriter(PassConstantsSize)
	for i := range p.ViewMatrices {
		w.mat4(p.ViewMatrices[i])
	}
	for i := range p.ProjectionMatrices {
		w.mat4(p.ProjectionMatrices[i])
	}
	for i := range p.CameraPositions {
		w.vec3(p.CameraPositions[i].V)
		w.skip(4)
	}
	w.mat4(p.EnvironmentLightMatrix)
	w.u32(p.ActiveLightCount)
	w.skip(12)
	return w.buf
}

// Marshal serializes the struct to its little-endian GPU bytes.
func (c *InstanceConstants) Marshal() []byte {
	w := newByteWriter(InstanceConstantsSize)
	w.mat4(c.ModelMatrix)
	for i := range c.NormalMatrix.Cols {
		w.vec3(c.NormalMatrix.Cols[i].V)
		w.skip(4)
	}
	return w.buf
}

// Marshal serializes the struct to its little-endian GPU bytes.
func (m *PBRMaterialConstants) Marshal() []byte {
	w := newByteWriter(PBRMaterialConstantsSize)
	w.vec4(m.BaseColorFactor)
	w.vec3(m.EmissiveColor)
	w.skip(4)
	w.f32(m.NormalScale)
	w.f32(m.MetallicFactor)
	w.f32(m.RoughnessFactor)
	w.f32(m.EmissiveStrength)
	return w.buf
}

// Marshal serializes the struct to its little-endian GPU bytes.
func (l *PBRLight) Marshal() []byte {
	w := newByteWriter(PBRLightSize)
	w.vec3(l.Direction)
	w.skip(4)
	w.vec3(l.Position)
	w.skip(4)
	w.vec3(l.Color)
	w.skip(4)
	w.f32(l.Range)
	w.f32(l.Intensity)
	w.f32(l.InnerConeCos)
	w.f32(l.OuterConeCos)
	w.u32(l.Type)
	w.skip(12)
	return w.buf
}

// EncodeLights serializes up to MaxLightCount lights, appending to dst.
// Lights past the cap are dropped.
func EncodeLights(dst []byte, lights []PBRLight) []byte {
	n := len(lights)
	if n > MaxLightCount {
		n = MaxLightCount
	}
	for i := 0; i < n; i++ {
		dst = append(dst, lights[i].Marshal()...)
	}
	return dst
}
