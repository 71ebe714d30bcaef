// Package primitives renders physics shapes with cached meshes and a small
// lit shader. Meshes are created lazily so GPU resources are allocated after
// the window exists.
package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/caldera3d/caldera/internal/physics"
)

// cached holds mesh and material for one shape kind.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps shape kinds to mesh+material. Spheres and boxes draw as lit
// unit meshes scaled to size; convex hulls and concave meshes draw as
// translucent bounds boxes.
type Registry struct {
	cache    map[physics.ShapeKind]cached
	viewPos  [3]float32
	lightDir [3]float32
}

// NewRegistry returns an empty registry. Meshes are created on first Draw.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[physics.ShapeKind]cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets camera position and direction-to-light for this frame. Call
// once per frame before drawing so lit meshes get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// defaultSphereRings and defaultSphereSlices control sphere mesh resolution.
const defaultSphereRings = 16
const defaultSphereSlices = 16

// boundsAlpha is the tint alpha for hull and mesh bounds boxes.
const boundsAlpha = 140

// Draw renders one shape at the given placement. Must be called between
// BeginMode3D and EndMode3D; SetView must have been called this frame.
func (r *Registry) Draw(shape *physics.Shape, position mgl32.Vec3, orientation mgl32.Quat, tint rl.Color) {
	if shape == nil {
		return
	}
	center, half := shape.Bounds()
	switch shape.Kind() {
	case physics.ShapeSphere:
		d := half.X() * 2
		r.drawCached(physics.ShapeSphere, position, orientation, center, mgl32.Vec3{d, d, d}, tint)
	case physics.ShapeBox:
		r.drawCached(physics.ShapeBox, position, orientation, center, half.Mul(2), tint)
	default:
		tint.A = boundsAlpha
		r.drawCached(physics.ShapeBox, position, orientation, center, half.Mul(2), tint)
	}
}

// ensure creates the mesh and material for a kind if not yet cached.
func (r *Registry) ensure(kind physics.ShapeKind) {
	if _, ok := r.cache[kind]; ok {
		return
	}
	var mesh rl.Mesh
	switch kind {
	case physics.ShapeSphere:
		// Radius 0.5 so the unit mesh has diameter 1, matching the cube side.
		mesh = rl.GenMeshSphere(0.5, defaultSphereRings, defaultSphereSlices)
	default:
		mesh = rl.GenMeshCube(1, 1, 1)
	}
	mtl := rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	r.cache[kind] = cached{mesh: mesh, mtl: mtl}
}

// drawCached draws the cached mesh for kind with a full scale-rotate-translate
// transform. centerOffset shifts the mesh in rotated local space so shapes
// whose bounds are off-center (hulls) sit where the body is.
func (r *Registry) drawCached(kind physics.ShapeKind, position mgl32.Vec3, orientation mgl32.Quat, centerOffset, size mgl32.Vec3, tint rl.Color) {
	r.ensure(kind)
	c, ok := r.cache[kind]
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.mtl.Shader)

	sx, sy, sz := size.X(), size.Y(), size.Z()
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	scaleM := rl.MatrixScale(sx, sy, sz)
	centerM := rl.MatrixTranslate(centerOffset.X(), centerOffset.Y(), centerOffset.Z())
	rotM := rl.QuaternionToMatrix(rl.NewQuaternion(
		orientation.V[0], orientation.V[1], orientation.V[2], orientation.W))
	transM := rl.MatrixTranslate(position.X(), position.Y(), position.Z())

	// Order: scale the unit mesh, shift to the bounds center, rotate with the
	// body, translate to the body position.
	transform := rl.MatrixMultiply(rl.MatrixMultiply(rl.MatrixMultiply(scaleM, centerM), rotM), transM)
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// loadLitShader returns a shader doing directional light + ambient + specular.
// Same vertex attributes as raylib meshes.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// defaultAmbient keeps shadowed faces from going pure black.
var defaultAmbient = [4]float32{0.2, 0.22, 0.26, 1.0}

// defaultLightColor is a soft warm white.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

const defaultLightIntensity = float32(0.75)
const defaultSpecularPower = float32(48.0)
const defaultSpecularStrength = float32(0.35)

// setLitShaderUniforms sets view, light, and specular uniforms on the shader.
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}
