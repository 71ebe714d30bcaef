package shadertypes

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Field is one entry of the layout manifest.
type Field struct {
	Struct string
	Name   string
	Offset uintptr
	Size   uintptr
}

// Layout returns the ordered field manifest of every GPU struct, offsets and
// sizes taken from the live Go definitions.
func Layout() []Field {
	var (
		fr Frustum
		pc PassConstants
		ic InstanceConstants
		mc PBRMaterialConstants
		li PBRLight
	)
	return []Field{
		{"Frustum", "Planes", unsafe.Offsetof(fr.Planes), unsafe.Sizeof(fr.Planes)},

		{"PassConstants", "ViewMatrices", unsafe.Offsetof(pc.ViewMatrices), unsafe.Sizeof(pc.ViewMatrices)},
		{"PassConstants", "ProjectionMatrices", unsafe.Offsetof(pc.ProjectionMatrices), unsafe.Sizeof(pc.ProjectionMatrices)},
		{"PassConstants", "CameraPositions", unsafe.Offsetof(pc.CameraPositions), unsafe.Sizeof(pc.CameraPositions)},
		{"PassConstants", "EnvironmentLightMatrix", unsafe.Offsetof(pc.EnvironmentLightMatrix), unsafe.Sizeof(pc.EnvironmentLightMatrix)},
		{"PassConstants", "ActiveLightCount", unsafe.Offsetof(pc.ActiveLightCount), unsafe.Sizeof(pc.ActiveLightCount)},

		{"InstanceConstants", "ModelMatrix", unsafe.Offsetof(ic.ModelMatrix), unsafe.Sizeof(ic.ModelMatrix)},
		{"InstanceConstants", "NormalMatrix", unsafe.Offsetof(ic.NormalMatrix), unsafe.Sizeof(ic.NormalMatrix)},

		{"PBRMaterialConstants", "BaseColorFactor", unsafe.Offsetof(mc.BaseColorFactor), unsafe.Sizeof(mc.BaseColorFactor)},
		{"PBRMaterialConstants", "EmissiveColor", unsafe.Offsetof(mc.EmissiveColor), unsafe.Sizeof(mc.EmissiveColor)},
		{"PBRMaterialConstants", "NormalScale", unsafe.Offsetof(mc.NormalScale), unsafe.Sizeof(mc.NormalScale)},
		{"PBRMaterialConstants", "MetallicFactor", unsafe.Offsetof(mc.MetallicFactor), unsafe.Sizeof(mc.MetallicFactor)},
		{"PBRMaterialConstants", "RoughnessFactor", unsafe.Offsetof(mc.RoughnessFactor), unsafe.Sizeof(mc.RoughnessFactor)},
		{"PBRMaterialConstants", "EmissiveStrength", unsafe.Offsetof(mc.EmissiveStrength), unsafe.Sizeof(mc.EmissiveStrength)},

		{"PBRLight", "Direction", unsafe.Offsetof(li.Direction), unsafe.Sizeof(li.Direction)},
		{"PBRLight", "Position", unsafe.Offsetof(li.Position), unsafe.Sizeof(li.Position)},
		{"PBRLight", "Color", unsafe.Offsetof(li.Color), unsafe.Sizeof(li.Color)},
		{"PBRLight", "Range", unsafe.Offsetof(li.Range), unsafe.Sizeof(li.Range)},
		{"PBRLight", "Intensity", unsafe.Offsetof(li.Intensity), unsafe.Sizeof(li.Intensity)},
		{"PBRLight", "InnerConeCos", unsafe.Offsetof(li.InnerConeCos), unsafe.Sizeof(li.InnerConeCos)},
		{"PBRLight", "OuterConeCos", unsafe.Offsetof(li.OuterConeCos), unsafe.Sizeof(li.OuterConeCos)},
		{"PBRLight", "Type", unsafe.Offsetof(li.Type), unsafe.Sizeof(li.Type)},
	}
}

// Manifest renders the canonical contract text: struct sizes, field offsets,
// and the binding slot constants. Two builds agree on the GPU contract if and
// only if their manifests are identical.
func Manifest() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sizes Frustum=%d PassConstants=%d InstanceConstants=%d PBRMaterialConstants=%d PBRLight=%d\n",
		FrustumSize, PassConstantsSize, InstanceConstantsSize, PBRMaterialConstantsSize, PBRLightSize)
	for _, f := range Layout() {
		fmt.Fprintf(&b, "%s.%s@%d+%d\n", f.Struct, f.Name, f.Offset, f.Size)
	}
	fmt.Fprintf(&b, "slots vb=%d,%d,%d,%d fb=%d,%d,%d ft=%d,%d,%d,%d,%d,%d\n",
		VertexBufferPassConstants, VertexBufferInstanceConstants,
		VertexBufferJointTransforms, VertexBufferSkinnedVerticesOut,
		FragmentBufferPassConstants, FragmentBufferMaterialConstants, FragmentBufferLights,
		FragmentTextureBaseColor, FragmentTextureNormal, FragmentTextureMetalness,
		FragmentTextureRoughness, FragmentTextureEmissive, FragmentTextureEnvironmentLight)
	fmt.Fprintf(&b, "limits views=%d lights=%d\n", MaxViewCount, MaxLightCount)
	return b.String()
}

// Fingerprint hashes the manifest. Log it, ship it in save files, or compare
// it between processes to detect a CPU/GPU layout mismatch early.
func Fingerprint() uint64 {
	return xxhash.Sum64String(Manifest())
}
