package shadertypes

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassDataLayoutEntries(t *testing.T) {
	entries := PassDataLayoutEntries()
	require.Len(t, entries, 3)

	pass := entries[0]
	assert.Equal(t, uint32(FragmentBufferPassConstants), pass.Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, pass.Visibility,
		"pass constants feed both stages")
	assert.Equal(t, wgpu.BufferBindingTypeUniform, pass.Buffer.Type)
	assert.Equal(t, uint64(PassConstantsSize), pass.Buffer.MinBindingSize)

	material := entries[1]
	assert.Equal(t, uint32(FragmentBufferMaterialConstants), material.Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, material.Visibility)
	assert.Equal(t, uint64(PBRMaterialConstantsSize), material.Buffer.MinBindingSize)

	lights := entries[2]
	assert.Equal(t, uint32(FragmentBufferLights), lights.Binding)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, lights.Buffer.Type,
		"light list binds as a read-only storage buffer")
	assert.Equal(t, uint64(PBRLightSize), lights.Buffer.MinBindingSize)
}

func TestInstanceDataLayoutEntries(t *testing.T) {
	entries := InstanceDataLayoutEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, wgpu.ShaderStageVertex, entries[0].Visibility)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entries[0].Buffer.Type)
	assert.Equal(t, uint64(InstanceConstantsSize), entries[0].Buffer.MinBindingSize)
}

func TestMaterialTextureLayoutEntries(t *testing.T) {
	entries := MaterialTextureLayoutEntries()
	require.Len(t, entries, 7, "five material textures, the environment map, one sampler")

	bindings := make(map[uint32]wgpu.BindGroupLayoutEntry, len(entries))
	for _, e := range entries {
		bindings[e.Binding] = e
	}
	for _, slot := range []uint32{
		FragmentTextureBaseColor,
		FragmentTextureNormal,
		FragmentTextureMetalness,
		FragmentTextureRoughness,
		FragmentTextureEmissive,
		FragmentTextureEnvironmentLight,
	} {
		e, ok := bindings[slot]
		require.True(t, ok, "texture slot %d missing", slot)
		assert.Equal(t, wgpu.TextureSampleTypeFloat, e.Texture.SampleType)
		assert.Equal(t, wgpu.TextureViewDimension2D, e.Texture.ViewDimension)
	}

	sampler, ok := bindings[FragmentSamplerMaterial]
	require.True(t, ok)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, sampler.Sampler.Type)
}

func TestPBRBindGroupLayoutsOrdered(t *testing.T) {
	layouts := PBRBindGroupLayouts()
	require.Len(t, layouts, 3)
	assert.Len(t, layouts[PassDataGroup].Entries, 3)
	assert.Len(t, layouts[InstanceDataGroup].Entries, 1)
	assert.Len(t, layouts[MaterialTextureGroup].Entries, 7)
}

func TestWGSLSourceMirrorsContract(t *testing.T) {
	for _, want := range []string{
		"const MAX_VIEW_COUNT: u32 = 2u",
		"const MAX_LIGHT_COUNT: u32 = 8u",
		"const LIGHT_DIRECTIONAL: u32 = 0u",
		"const LIGHT_POINT: u32 = 1u",
		"const LIGHT_SPOT: u32 = 2u",
		"struct PassConstants",
		"struct InstanceConstants",
		"struct PBRMaterialConstants",
		"struct PBRLight",
		"@group(0) @binding(0) var<uniform> pass_constants",
		"@group(0) @binding(1) var<uniform> material",
		"@group(0) @binding(2) var<storage, read> lights",
		"@group(2) @binding(30) var environment_light_tex",
		"@group(2) @binding(31) var material_sampler",
	} {
		assert.True(t, strings.Contains(WGSLSource, want), "WGSL missing %q", want)
	}
}
