package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/san-kum/sortviz/internal/step"
)

const glMaxElements = 4096

const barVertexShader = `#version 430 core
layout (location = 0) in vec2 inPos;
layout (location = 1) in vec4 inColor;
out vec4 vColor;
void main() {
    vColor = inColor;
    gl_Position = vec4(inPos, 0.0, 1.0);
}
`

// uTime drives a purely cosmetic shimmer; it never affects geometry.
const barFragmentShader = `#version 430 core
in vec4 vColor;
out vec4 fragColor;
uniform float uTime;
void main() {
    float shimmer = 0.94 + 0.06 * sin(uTime * 2.0 + gl_FragCoord.x * 0.02);
    fragColor = vec4(vColor.rgb * shimmer, vColor.a);
}
`

// GLBackend draws bars as two triangles each from a pair of device
// buffers (vertex position, vertex color) sized 6 vertices per element.
// updateBuffers is the only place buffers are allocated or resized.
type GLBackend struct {
	program     uint32
	vao         uint32
	vboPos      uint32
	vboCol      uint32
	uniformTime int32

	state     *State
	positions []float32
	colors    []float32
	capacity  int

	width, height int
	started       time.Time

	fps           fpsTracker
	rendered      int
	renderDur     time.Duration
	bufferUpdates uint64
	ready         bool
}

func NewGLBackend(width, height int) *GLBackend {
	return &GLBackend{
		state:  NewState(),
		width:  width,
		height: height,
	}
}

func (b *GLBackend) Name() string { return "gl" }

// Available probes for a usable GL context without allocating anything.
func (b *GLBackend) Available() bool {
	return gl.Init() == nil
}

// Init compiles the program and creates buffer objects. On any failure
// every partially created resource is released before returning, so a
// fallback never inherits leaked handles.
func (b *GLBackend) Init() (err error) {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl init: %w", err)
	}
	defer func() {
		if err != nil {
			b.Dispose()
		}
	}()

	b.program, err = buildProgram(barVertexShader, barFragmentShader)
	if err != nil {
		return err
	}
	b.uniformTime = gl.GetUniformLocation(b.program, gl.Str("uTime\x00"))

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vboPos)
	gl.GenBuffers(1, &b.vboCol)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vboPos)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vboCol)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	gl.Viewport(0, 0, int32(b.width), int32(b.height))
	b.started = time.Now()
	b.ready = true
	return nil
}

func (b *GLBackend) SetData(values []float64, opts Options) {
	values = truncate(values, glMaxElements, b.Name())
	b.state.SetData(values, opts)
}

func (b *GLBackend) Apply(s step.Step, m step.Metrics) {
	b.state.Apply(s, time.Now())
}

func (b *GLBackend) Resize(width, height int) {
	b.width, b.height = width, height
	if b.ready {
		gl.Viewport(0, 0, int32(width), int32(height))
	}
}

func (b *GLBackend) Dispose() {
	if b.vboPos != 0 {
		gl.DeleteBuffers(1, &b.vboPos)
		b.vboPos = 0
	}
	if b.vboCol != 0 {
		gl.DeleteBuffers(1, &b.vboCol)
		b.vboCol = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
	b.capacity = 0
	b.ready = false
}

func (b *GLBackend) FrameMetrics() FrameMetrics {
	return FrameMetrics{
		FPS:              b.fps.fps,
		RenderTime:       b.renderDur,
		ElementsRendered: b.rendered,
		BufferUpdates:    b.bufferUpdates,
	}
}

func (b *GLBackend) State() *State { return b.state }

func (b *GLBackend) Render(now time.Time) error {
	if !b.ready {
		return fmt.Errorf("gl backend not initialized")
	}
	start := time.Now()
	b.state.Advance(now)

	n := len(b.state.Elements)
	b.rendered = n
	b.fillVertices()
	b.updateBuffers(n)

	gl.UseProgram(b.program)
	gl.Uniform1f(b.uniformTime, float32(now.Sub(b.started).Seconds()))
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(n*6))
	gl.BindVertexArray(0)

	b.renderDur = time.Since(start)
	b.fps.tick(now)
	return nil
}

// fillVertices rebuilds the CPU-side vertex arrays in clip space. Two
// triangles per bar, bar x from the animated slot position.
func (b *GLBackend) fillVertices() {
	n := len(b.state.Elements)
	if cap(b.positions) < n*12 {
		b.positions = make([]float32, 0, n*12)
		b.colors = make([]float32, 0, n*24)
	}
	b.positions = b.positions[:0]
	b.colors = b.colors[:0]

	slot := 2.0 / float64(max(n, 1))
	for i := range b.state.Elements {
		e := &b.state.Elements[i]
		x0 := float32(-1 + e.Current*slot)
		x1 := float32(-1 + (e.Current+0.92)*slot)
		y0 := float32(-1)
		y1 := float32(-1 + 2*b.state.Height01(i))

		b.positions = append(b.positions,
			x0, y0, x1, y0, x1, y1,
			x0, y0, x1, y1, x0, y1,
		)
		c := b.state.ColorOf(i)
		r, g, bl, a := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
		for v := 0; v < 6; v++ {
			b.colors = append(b.colors, r, g, bl, a)
		}
	}
}

// updateBuffers is the single re-upload path. Buffers are reallocated
// only when the element count outgrows the current capacity.
func (b *GLBackend) updateBuffers(n int) {
	if n == 0 {
		return
	}
	if n > b.capacity {
		b.capacity = n
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vboPos)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*12*4, nil, gl.DYNAMIC_DRAW)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vboCol)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*24*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vboPos)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.positions)*4, gl.Ptr(b.positions))
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vboCol)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.colors)*4, gl.Ptr(b.colors))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	b.bufferUpdates++
}

func buildProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("program link failed: %v", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
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
		return 0, fmt.Errorf("shader compile failed: %v", log)
	}
	return shader, nil
}
