package scene

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/lenticular/common"
	"github.com/Carmen-Shannon/lenticular/engine/camera"
	"github.com/Carmen-Shannon/lenticular/engine/game_object"
	"github.com/Carmen-Shannon/lenticular/engine/model"
	"github.com/Carmen-Shannon/lenticular/engine/renderer"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/material"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

type textureUpload struct {
	label   string
	binding int
	width   uint32
}

// fakeRenderer records calls instead of touching a GPU.
type fakeRenderer struct {
	pipelines  map[string]pipeline.Pipeline
	meshIndex  int
	textures   []textureUpload
	samplers   int
	bindGroups map[string]int
	writes     [][]bind_group_provider.BufferWrite
	frames     []string
	drawGroups []uint32
	drawErr    error
	released   bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{pipelines: map[string]pipeline.Pipeline{}, bindGroups: map[string]int{}}
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return f.pipelines[key] }

func (f *fakeRenderer) RegisterPipelines(ps ...pipeline.Pipeline) error {
	for _, p := range ps {
		f.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(p bind_group_provider.BindGroupProvider, v, i []byte, count int) error {
	f.meshIndex = count
	p.SetIndexCount(count)
	return nil
}

func (f *fakeRenderer) InitBindGroup(p bind_group_provider.BindGroupProvider, d wgpu.BindGroupLayoutDescriptor) error {
	f.bindGroups[p.Label()]++
	return nil
}

func (f *fakeRenderer) InitTextureView(p bind_group_provider.BindGroupProvider, binding int, data common.TextureStagingData) error {
	f.textures = append(f.textures, textureUpload{p.Label(), binding, data.Width})
	return nil
}

func (f *fakeRenderer) InitSampler(p bind_group_provider.BindGroupProvider, binding int, s renderer.SamplerStagingData) error {
	f.samplers++
	return nil
}

func (f *fakeRenderer) WriteBuffers(w []bind_group_provider.BufferWrite) { f.writes = append(f.writes, w) }

func (f *fakeRenderer) BeginFrame() error {
	f.frames = append(f.frames, "begin")
	return nil
}

func (f *fakeRenderer) DrawCall(key string, mesh bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider) error {
	f.frames = append(f.frames, "draw")
	f.drawGroups = f.drawGroups[:0]
	for _, g := range groups {
		f.drawGroups = append(f.drawGroups, g.Group())
	}
	return f.drawErr
}

func (f *fakeRenderer) EndFrame() error {
	f.frames = append(f.frames, "end")
	return nil
}

func (f *fakeRenderer) Present() { f.frames = append(f.frames, "present") }

func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) error { return nil }

func (f *fakeRenderer) Release() { f.released = true }

var _ renderer.Renderer = &fakeRenderer{}

func newTestScene(t *testing.T, r *fakeRenderer, opts ...material.MaterialBuilderOption) (Scene, game_object.GameObject, material.Material) {
	t.Helper()
	cam := camera.NewCamera(camera.WithAspect(800.0 / 600.0))
	obj := game_object.NewGameObject(game_object.WithModel(model.NewPlane(10, 10, model.WithSegments(10, 10))))
	mat := material.NewMaterial(opts...)
	s, err := NewScene("test", cam, r, obj, mat)
	if err != nil {
		t.Fatalf("NewScene() error = %v", err)
	}
	return s, obj, mat
}

func TestNewSceneSetup(t *testing.T) {
	r := newFakeRenderer()
	newTestScene(t, r)

	if r.pipelines["lenticular"] == nil {
		t.Fatal("card pipeline not registered")
	}
	if r.meshIndex != 600 {
		t.Errorf("mesh index count = %d, want 600", r.meshIndex)
	}
	if len(r.textures) != 2 {
		t.Fatalf("uploaded %d textures, want 2 placeholders", len(r.textures))
	}
	for _, tex := range r.textures {
		if tex.width != 1 || !strings.HasSuffix(tex.label, "Group 2") {
			t.Errorf("placeholder upload = %+v", tex)
		}
	}
	if r.samplers != 1 {
		t.Errorf("created %d samplers, want 1", r.samplers)
	}
	if len(r.bindGroups) != 3 {
		t.Errorf("bind groups = %v, want 3", r.bindGroups)
	}
}

func TestNewSceneRequiresArguments(t *testing.T) {
	cam := camera.NewCamera()
	obj := game_object.NewGameObject(game_object.WithModel(model.NewPlane(1, 1)))
	mat := material.NewMaterial()
	r := newFakeRenderer()

	tests := []struct {
		name string
		cam  camera.Camera
		r    renderer.Renderer
		obj  game_object.GameObject
		mat  material.Material
	}{
		{"no camera", nil, r, obj, mat},
		{"no renderer", cam, nil, obj, mat},
		{"no object", cam, r, nil, mat},
		{"no model", cam, r, game_object.NewGameObject(), mat},
		{"no material", cam, r, obj, nil},
		{"bad program", cam, r, obj, material.NewMaterial(material.WithProgramSource("@vertex fn vs() {}"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s, err := NewScene("x", tt.cam, tt.r, tt.obj, tt.mat); err == nil || s != nil {
				t.Errorf("NewScene() = %v, %v, want error", s, err)
			}
		})
	}
}

func TestRenderFrame(t *testing.T) {
	r := newFakeRenderer()
	s, obj, mat := newTestScene(t, r)

	mat.SetBlendRatio(0.75)
	obj.SetRotation(0.1, -0.2, 0)
	if err := s.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := strings.Join(r.frames, ","); got != "begin,draw,end,present" {
		t.Errorf("frame sequence = %s", got)
	}
	if len(r.drawGroups) != 3 || r.drawGroups[0] != 0 || r.drawGroups[2] != 2 {
		t.Errorf("draw groups = %v, want [0 1 2]", r.drawGroups)
	}

	writes := r.writes[len(r.writes)-1]
	if len(writes) != 3 {
		t.Fatalf("got %d writes, want camera, model and params", len(writes))
	}
	if len(writes[0].Data) != 80 || len(writes[1].Data) != 64 || len(writes[2].Data) != 16 {
		t.Errorf("write sizes = %d, %d, %d", len(writes[0].Data), len(writes[1].Data), len(writes[2].Data))
	}
	if ratio := math.Float32frombits(binary.LittleEndian.Uint32(writes[2].Data)); ratio != 0.75 {
		t.Errorf("ratio written = %v, want 0.75", ratio)
	}
	m := obj.ModelMatrix()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(writes[1].Data[4*5:])); got != m[5] {
		t.Errorf("model matrix [5] = %v, want %v", got, m[5])
	}
}

func TestRenderUploadsStagedTextures(t *testing.T) {
	r := newFakeRenderer()
	s, _, mat := newTestScene(t, r)
	before := r.bindGroups["test Group 2"]

	img := common.TextureStagingData{Pixels: make([]byte, 4*4*4), Width: 4, Height: 4}
	if err := mat.SetTexture(material.SlotB, img); err != nil {
		t.Fatal(err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	last := r.textures[len(r.textures)-1]
	if last.width != 4 || last.binding != 2 {
		t.Errorf("last upload = %+v, want 4px wide at binding 2", last)
	}
	if got := r.bindGroups["test Group 2"]; got != before+1 {
		t.Errorf("material group rebuilt %d times, want once", got-before)
	}

	// nothing pending on the next frame
	n := len(r.textures)
	if err := s.Render(); err != nil {
		t.Fatal(err)
	}
	if len(r.textures) != n {
		t.Error("texture uploaded again without a new image")
	}
}

func TestRenderSkipsDisabledObject(t *testing.T) {
	r := newFakeRenderer()
	s, obj, _ := newTestScene(t, r)
	obj.SetEnabled(false)
	if err := s.Render(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(r.frames, ","); got != "begin,end,present" {
		t.Errorf("frame sequence = %s", got)
	}
}

func TestRenderDrawFailureClosesFrame(t *testing.T) {
	r := newFakeRenderer()
	s, _, _ := newTestScene(t, r)
	r.drawErr = errors.New("boom")
	if err := s.Render(); err == nil {
		t.Fatal("Render() error = nil")
	}
	if got := strings.Join(r.frames, ","); got != "begin,draw,end,present" {
		t.Errorf("frame sequence = %s", got)
	}
}

func TestRelease(t *testing.T) {
	r := newFakeRenderer()
	s, _, mat := newTestScene(t, r)
	s.Release()
	s.Release()

	if !r.released || !mat.Released() {
		t.Error("Release did not release the renderer and material")
	}
	if err := s.Render(); !errors.Is(err, ErrReleased) {
		t.Errorf("Render() after Release = %v, want ErrReleased", err)
	}
}

func TestPlanBindings(t *testing.T) {
	vs, err := shader.NewShader("vs", shader.ShaderTypeVertex, material.LenticularProgramSource)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, material.LenticularProgramSource)
	if err != nil {
		t.Fatal(err)
	}
	p := pipeline.NewPipeline("card", pipeline.WithVertexShader(vs), pipeline.WithFragmentShader(fs))

	plan, err := planBindings(vs, fs, p.BindGroupLayoutDescriptors())
	if err != nil {
		t.Fatalf("planBindings() error = %v", err)
	}
	if plan.camera != (slotRef{0, 0}) || plan.object != (slotRef{1, 0}) || plan.params != (slotRef{2, 0}) {
		t.Errorf("uniforms = %+v %+v %+v", plan.camera, plan.object, plan.params)
	}
	if plan.textures[material.SlotA] != (slotRef{2, 1}) || plan.textures[material.SlotB] != (slotRef{2, 2}) {
		t.Errorf("textures = %+v", plan.textures)
	}
	if len(plan.samplers) != 1 || plan.samplers[0] != (slotRef{2, 3}) {
		t.Errorf("samplers = %+v", plan.samplers)
	}
}

func TestPlanBindingsRejectsIncompletePrograms(t *testing.T) {
	noParams := strings.Replace(material.LenticularProgramSource,
		"//@lens:group 2 0 uniform params blend_params",
		"@group(2) @binding(0) var<uniform> params: BlendParams;", 1)
	renamed := strings.ReplaceAll(material.LenticularProgramSource, "textureB", "textureC")

	for name, src := range map[string]string{"undeclared params": noParams, "unknown texture": renamed} {
		t.Run(name, func(t *testing.T) {
			vs, err := shader.NewShader("vs", shader.ShaderTypeVertex, src)
			if err != nil {
				t.Fatal(err)
			}
			fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, src)
			if err != nil {
				t.Fatal(err)
			}
			p := pipeline.NewPipeline("card", pipeline.WithVertexShader(vs), pipeline.WithFragmentShader(fs))
			if _, err := planBindings(vs, fs, p.BindGroupLayoutDescriptors()); err == nil {
				t.Error("planBindings() error = nil")
			}
		})
	}
}
