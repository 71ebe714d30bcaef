package shadertypes

import _ "embed"

// WGSLSource is the canonical WGSL definition of the render contract.
// It declares the same structs, binding slots, and limits as this package;
// the layout fingerprint printed by the layout command covers both sides.
//
//go:embed shaders/pbr.wgsl
var WGSLSource string
