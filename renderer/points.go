package renderer

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/pipeline"
)

// quadCorners are the two triangles of a point sprite.
var quadCorners = [6][2]float32{
	{-1, -1}, {1, -1}, {1, 1},
	{-1, -1}, {1, 1}, {-1, 1},
}

var pointUniforms = []string{
	"resolution", "planeScale", "focus", "aperture", "pointSize",
	"time", "opacity", "revealFactor", "revealProgress", "transition",
}

// Points draws one soft sprite per particle into the scene target. Sprite
// positions come from the simulation texture; the mesh only carries each
// particle's seed UV and sprite corner.
type Points struct {
	prog     *program
	mesh     rl.Mesh
	material rl.Material
	scene    rl.RenderTexture2D
	camera   rl.Camera3D

	near, far  float64
	background rl.Color
}

// NewPoints builds the particle mesh for sim's texture and a scene target of
// the configured screen size.
func NewPoints(sim *Simulation, cfg *config.Config) (*Points, error) {
	prog, err := loadProgram("points.vs", "points.fs", pointUniforms...)
	if err != nil {
		return nil, err
	}

	scene, err := loadSceneTarget(cfg.Screen.Width, cfg.Screen.Height)
	if err != nil {
		prog.unload()
		return nil, err
	}

	mesh := particleMesh(sim.Size())
	rl.UploadMesh(&mesh, false)

	material := rl.LoadMaterialDefault()
	material.Shader = prog.shader
	rl.SetMaterialTexture(&material, rl.MapDiffuse, sim.Texture())

	prog.setVec2("resolution", cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)

	cam := cfg.Camera
	bg := cfg.Derived.Background
	return &Points{
		prog:     prog,
		mesh:     mesh,
		material: material,
		scene:    scene,
		camera: rl.Camera3D{
			Position:   vec3(cam.Position),
			Target:     vec3(cam.Target),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       float32(cam.FOV),
			Projection: rl.CameraPerspective,
		},
		near:       cam.Near,
		far:        cam.Far,
		background: rl.NewColor(bg.R, bg.G, bg.B, bg.A),
	}, nil
}

// particleMesh lays out size² quads. Vertex data lives in raylib-allocated
// memory so UnloadMesh can free it.
func particleMesh(size int) rl.Mesh {
	count := size * size * len(quadCorners)

	vertPtr := rl.MemAlloc(uint32(count * 3 * 4))
	uvPtr := rl.MemAlloc(uint32(count * 2 * 4))
	verts := unsafe.Slice((*float32)(vertPtr), count*3)
	uvs := unsafe.Slice((*float32)(uvPtr), count*2)

	i := 0
	for row := 0; row < size; row++ {
		v := (float32(row) + 0.5) / float32(size)
		for col := 0; col < size; col++ {
			u := (float32(col) + 0.5) / float32(size)
			for _, c := range quadCorners {
				verts[i*3] = c[0]
				verts[i*3+1] = c[1]
				verts[i*3+2] = 0
				uvs[i*2] = u
				uvs[i*2+1] = v
				i++
			}
		}
	}

	return rl.Mesh{
		VertexCount:   int32(count),
		TriangleCount: int32(count / 3),
		Vertices:      (*float32)(vertPtr),
		Texcoords:     (*float32)(uvPtr),
	}
}

func vec3(v [3]float64) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

// Name implements pipeline.Stage.
func (pt *Points) Name() string { return "points" }

// Run draws every particle with additive blending and no depth writes, so
// draw order does not matter.
func (pt *Points) Run(p pipeline.Params) {
	pt.prog.setFloat("planeScale", p.PlaneScale)
	pt.prog.setFloat("focus", p.Focus)
	pt.prog.setFloat("aperture", p.Aperture)
	pt.prog.setFloat("pointSize", p.PointSize)
	pt.prog.setFloat("time", p.Time)
	pt.prog.setFloat("opacity", p.Opacity)
	pt.prog.setFloat("revealFactor", p.RevealFactor)
	pt.prog.setFloat("revealProgress", p.RevealProgress)
	pt.prog.setFloat("transition", p.Transition)

	rl.BeginTextureMode(pt.scene)
	rl.ClearBackground(pt.background)

	rl.SetClipPlanes(pt.near, pt.far)
	rl.BeginMode3D(pt.camera)
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DisableDepthMask()

	rl.DrawMesh(pt.mesh, pt.material, rl.MatrixIdentity())

	rl.EnableDepthMask()
	rl.EndBlendMode()
	rl.EndMode3D()

	rl.EndTextureMode()
}

// Scene returns the rendered particle texture.
func (pt *Points) Scene() rl.Texture2D {
	return pt.scene.Texture
}

// Close releases the mesh, material, shader and scene target. The simulation
// texture belongs to the simulation stage and is detached first.
func (pt *Points) Close() error {
	rl.SetMaterialTexture(&pt.material, rl.MapDiffuse, rl.Texture2D{})
	// UnloadMaterial also unloads the material's shader
	rl.UnloadMaterial(pt.material)
	rl.UnloadMesh(&pt.mesh)
	rl.UnloadRenderTexture(pt.scene)
	return nil
}
