// Package shadertypes is the CPU half of the render contract: binding slot
// indices, light type tags, and the POD constant structs the shaders read.
// Everything here MUST match shaders/pbr.wgsl field for field and byte for
// byte; neither side may be changed alone. See layout.go for the manifest
// that pins the layout in tests.
package shadertypes

// Light type tags stored in PBRLight.Type.
const (
	LightDirectional = 0
	LightPoint       = 1
	LightSpot        = 2
)

// Vertex-stage buffer slots. Slots 0 through 3 are reserved for vertex
// attribute buffers.
const (
	VertexBufferPassConstants      = 4
	VertexBufferInstanceConstants  = 5
	VertexBufferJointTransforms    = 6
	VertexBufferSkinnedVerticesOut = 16
)

// Fragment-stage buffer slots.
const (
	FragmentBufferPassConstants     = 0
	FragmentBufferMaterialConstants = 1
	FragmentBufferLights            = 2
)

// Fragment-stage texture slots.
const (
	FragmentTextureBaseColor        = 0
	FragmentTextureNormal           = 1
	FragmentTextureMetalness        = 2
	FragmentTextureRoughness        = 3
	FragmentTextureEmissive         = 4
	FragmentTextureEnvironmentLight = 30
)

// MaxViewCount is the number of simultaneous views (2 for stereo rendering);
// per-view arrays in PassConstants are sized by it.
const MaxViewCount = 2

// MaxLightCount is the size of the light buffer the renderer allocates.
// PassConstants.ActiveLightCount says how many entries are live.
const MaxLightCount = 8
