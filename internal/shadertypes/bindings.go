package shadertypes

import "github.com/cogentcore/webgpu/wgpu"

// Bind group indices for the PBR pipeline. Within PassDataGroup the binding
// numbers are the fragment-stage buffer slot constants; the vertex-stage slot
// constants index the CPU upload table instead.
const (
	PassDataGroup        = 0
	InstanceDataGroup    = 1
	MaterialTextureGroup = 2
)

// FragmentSamplerMaterial is the binding of the shared material sampler inside
// MaterialTextureGroup. WGSL samples through an explicit sampler binding, so
// this slot exists only on the wgpu side of the contract.
const FragmentSamplerMaterial = 31

// PassDataLayoutEntries describes group 0: pass constants visible to both
// stages, material constants and the light list visible to the fragment stage.
// Pure descriptor data, no device required.
func PassDataLayoutEntries() []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    FragmentBufferPassConstants,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: PassConstantsSize,
			},
		},
		{
			Binding:    FragmentBufferMaterialConstants,
			Visibility: wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: PBRMaterialConstantsSize,
			},
		},
		{
			Binding:    FragmentBufferLights,
			Visibility: wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeReadOnlyStorage,
				MinBindingSize: PBRLightSize,
			},
		},
	}
}

// InstanceDataLayoutEntries describes group 1: per-draw instance constants.
func InstanceDataLayoutEntries() []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: InstanceConstantsSize,
			},
		},
	}
}

// MaterialTextureLayoutEntries describes group 2: the PBR textures at the
// fragment texture slots plus the shared sampler.
func MaterialTextureLayoutEntries() []wgpu.BindGroupLayoutEntry {
	textureSlots := []uint32{
		FragmentTextureBaseColor,
		FragmentTextureNormal,
		FragmentTextureMetalness,
		FragmentTextureRoughness,
		FragmentTextureEmissive,
		FragmentTextureEnvironmentLight,
	}
	entries := make([]wgpu.BindGroupLayoutEntry, 0, len(textureSlots)+1)
	for _, slot := range textureSlots {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    slot,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		})
	}
	entries = append(entries, wgpu.BindGroupLayoutEntry{
		Binding:    FragmentSamplerMaterial,
		Visibility: wgpu.ShaderStageFragment,
		Sampler: wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		},
	})
	return entries
}

// PBRBindGroupLayouts returns the layout descriptors for all three groups in
// group-index order.
func PBRBindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return []wgpu.BindGroupLayoutDescriptor{
		{Label: "pbr pass data", Entries: PassDataLayoutEntries()},
		{Label: "pbr instance data", Entries: InstanceDataLayoutEntries()},
		{Label: "pbr material textures", Entries: MaterialTextureLayoutEntries()},
	}
}
