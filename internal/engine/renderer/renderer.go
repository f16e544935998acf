// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	gomath "math"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terraform/internal/engine/scene"
	"github.com/Faultbox/midgard-terraform/internal/engine/terrain"
	"github.com/Faultbox/midgard-terraform/internal/logger"
)

const discSegments = 48

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// gpuMesh mirrors one terrain mesh on the GPU.
type gpuMesh struct {
	vao, vbo, ebo uint32
	vertices      int
	indices       int32
	revision      uint64
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program    uint32
	uViewProj  int32
	uModel     int32
	uTint      int32
	uPointSize int32

	meshes map[terrain.Handle]*gpuMesh

	pointVAO, pointVBO uint32
	discVAO, discVBO   uint32
	lineVAO, lineVBO   uint32
	lineCap            int // floats the line VBO can hold
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[terrain.Handle]*gpuMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = createShaderProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.uViewProj = uniform(r.program, "uViewProj")
	r.uModel = uniform(r.program, "uModel")
	r.uTint = uniform(r.program, "uTint")
	r.uPointSize = uniform(r.program, "uPointSize")

	r.pointVAO, r.pointVBO = uploadStatic([]float32{0, 0, 0, 1, 1, 1, 1})
	r.discVAO, r.discVBO = uploadStatic(discVertices(discSegments))
	r.lineVAO, r.lineVBO = uploadStatic(make([]float32, 24*terrain.Stride))
	r.lineCap = 24 * terrain.Stride

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for h := range r.meshes {
		r.ReleaseMesh(h)
	}
	for _, vao := range []*uint32{&r.pointVAO, &r.discVAO, &r.lineVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&r.pointVBO, &r.discVBO, &r.lineVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize. width and height are drawable pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin(viewProj mgl32.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &viewProj[0])
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawTerrain draws a terrain mesh with a wireframe overlay. The GPU copy is
// refreshed only when the mesh revision changed since the last upload.
func (r *Renderer) DrawTerrain(h terrain.Handle, m *terrain.Mesh, model mgl32.Mat4) {
	g := r.sync(h, m)
	if g == nil {
		return
	}

	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.BindVertexArray(g.vao)

	if g.indices == 0 {
		gl.Uniform4f(r.uTint, 1, 1, 1, 1)
		gl.Uniform1f(r.uPointSize, 3)
		gl.DrawArrays(gl.POINTS, 0, int32(g.vertices))
		return
	}

	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(1, 1)
	gl.Uniform4f(r.uTint, 0.45, 0.55, 0.4, 1)
	gl.DrawElements(gl.TRIANGLES, g.indices, gl.UNSIGNED_INT, nil)
	gl.Disable(gl.POLYGON_OFFSET_FILL)

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	gl.Uniform4f(r.uTint, 0.2, 0.25, 0.2, 1)
	gl.DrawElements(gl.TRIANGLES, g.indices, gl.UNSIGNED_INT, nil)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// DrawScene draws spawned shapes: spheres as screen-space points, discs as
// flat translucent fans on their local XZ plane.
func (r *Renderer) DrawScene(items []scene.Drawable) {
	// Opaque first, translucent after with depth writes off.
	for pass := 0; pass < 2; pass++ {
		translucent := pass == 1
		if translucent {
			gl.Enable(gl.BLEND)
			gl.DepthMask(false)
		}
		for _, d := range items {
			if (d.Color[3] < 1) != translucent {
				continue
			}
			r.drawShape(d)
		}
		if translucent {
			gl.DepthMask(true)
			gl.Disable(gl.BLEND)
		}
	}
}

// DrawLines draws a world-space line list in the interleaved position +
// color layout.
func (r *Renderer) DrawLines(vertices []float32) {
	if len(vertices) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(vertices) > r.lineCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
		r.lineCap = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, unsafe.Pointer(&vertices[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	ident := mgl32.Ident4()
	gl.UniformMatrix4fv(r.uModel, 1, false, &ident[0])
	gl.Uniform4f(r.uTint, 1, 1, 1, 1)
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/terrain.Stride))
}

// ReadPixels returns the RGBA contents of the back buffer, bottom row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}

func (r *Renderer) drawShape(d scene.Drawable) {
	gl.Uniform4f(r.uTint, d.Color[0], d.Color[1], d.Color[2], d.Color[3])

	switch d.Shape.Kind {
	case scene.ShapeSphere:
		gl.UniformMatrix4fv(r.uModel, 1, false, &d.Matrix[0])
		gl.Uniform1f(r.uPointSize, max(d.Shape.Radius*80, 4))
		gl.BindVertexArray(r.pointVAO)
		gl.DrawArrays(gl.POINTS, 0, 1)
	case scene.ShapeDisc:
		model := d.Matrix.Mul4(mgl32.Scale3D(d.Shape.Radius, 1, d.Shape.Radius))
		gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
		gl.BindVertexArray(r.discVAO)
		gl.DrawArrays(gl.TRIANGLE_FAN, 0, discSegments+2)
	}
}

// sync uploads the mesh when the GPU copy is missing or stale.
func (r *Renderer) sync(h terrain.Handle, m *terrain.Mesh) *gpuMesh {
	if m.VertexCount() == 0 {
		return nil
	}

	g, ok := r.meshes[h]
	if ok && g.revision == m.Revision() && g.vertices == m.VertexCount() {
		return g
	}

	data := m.Interleaved()
	if ok && g.vertices == m.VertexCount() {
		gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		g.revision = m.Revision()
		return g
	}

	if ok {
		r.ReleaseMesh(h)
	}
	g = &gpuMesh{vertices: m.VertexCount(), revision: m.Revision()}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
	setAttribs()

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
		g.indices = int32(len(m.Indices))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.meshes[h] = g
	logger.Debug("terrain mesh uploaded",
		zap.Uint32("handle", uint32(h)),
		zap.Int("vertices", g.vertices),
		zap.Int32("indices", g.indices),
	)
	return g
}

// ReleaseMesh frees the GPU copy of a mesh.
func (r *Renderer) ReleaseMesh(h terrain.Handle) {
	g, ok := r.meshes[h]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	delete(r.meshes, h)
}

// setAttribs describes the interleaved position + color layout of the bound VBO.
func setAttribs() {
	stride := int32(terrain.Stride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
}

func uploadStatic(data []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	setAttribs()
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// discVertices builds a unit-radius triangle fan in the XZ plane.
func discVertices(segments int) []float32 {
	out := make([]float32, 0, (segments+2)*terrain.Stride)
	out = append(out, 0, 0, 0, 1, 1, 1, 1)
	for i := 0; i <= segments; i++ {
		a := 2 * gomath.Pi * float64(i) / float64(segments)
		out = append(out, float32(gomath.Cos(a)), 0, float32(gomath.Sin(a)), 1, 1, 1, 1)
	}
	return out
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func createShaderProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec4 aColor;

		uniform mat4 uViewProj;
		uniform mat4 uModel;
		uniform float uPointSize;

		out vec4 vertexColor;

		void main() {
			gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
			gl_PointSize = uPointSize;
			vertexColor = aColor;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec4 vertexColor;
		uniform vec4 uTint;
		out vec4 FragColor;

		void main() {
			FragColor = vertexColor * uTint;
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link failed: %s", log)
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}
