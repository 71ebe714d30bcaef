package shadertypes

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// byteWriter lays fields down at increasing offsets in little-endian order.
// Skipped ranges stay zero.
type byteWriter struct {
	buf []byte
	off int
}

func newByteWriter(size int) *byteWriter {
	return &byteWriter{buf: make([]byte, size)}
}

func (w *byteWriter) f32(v float32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], math.Float32bits(v))
	w.off += 4
}

func (w *byteWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *byteWriter) skip(n int) {
	w.off += n
}

func (w *byteWriter) vec3(v mgl32.Vec3) {
	w.f32(v[0])
	w.f32(v[1])
	w.f32(v[2])
}

func (w *byteWriter) vec4(v mgl32.Vec4) {
	w.f32(v[0])
	w.f32(v[1])
	w.f32(v[2])
	w.f32(v[3])
}

func (w *byteWriter) mat4(m mgl32.Mat4) {
	for i := 0; i < 16; i++ {
		w.f32(m[i])
	}
}
