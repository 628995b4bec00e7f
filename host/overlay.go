package host

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/ecs/debugui"
	"github.com/plus3/prepositions/sketch"
)

// Overlay adds the ImGui debug windows to every session it is passed to.
// Visibility survives switching sketches.
type Overlay struct {
	visible bool
	title   string
	state   *ecs.Singleton[debugui.ImguiInputState]
	windows *debugui.WindowsSystem
}

const navigationHelp = "[ ] preposition   , . variant   Tab hide"

func NewOverlay(visible bool) *Overlay {
	return &Overlay{visible: visible}
}

func (o *Overlay) RegisterComponents(registry *ecs.ComponentRegistry) {
	debugui.RegisterDebugUIComponents(registry)
}

func (o *Overlay) Setup(storage *ecs.Storage) {
	debugui.SpawnDebugUI(storage)
	storage.Spawn(debugui.ImguiItem{Render: func() { o.renderPanel(storage) }})
	o.state = ecs.NewSingleton[debugui.ImguiInputState](storage)
	o.state.Get().Visible = o.visible
}

func (o *Overlay) Systems() []ecs.System {
	o.windows = &debugui.WindowsSystem{}
	return []ecs.System{&debugui.ImguiSystem{}, o.windows, &captureSystem{}}
}

// Attach points the performance window at the session's update scheduler
func (o *Overlay) Attach(session *sketch.Session) {
	o.title = Title(session.Definition())
	if o.windows != nil {
		o.windows.Scheduler = session.Scheduler()
	}
}

func (o *Overlay) Visible() bool {
	return o.visible
}

func (o *Overlay) Toggle() {
	o.visible = !o.visible
	if o.state != nil {
		o.state.Get().Visible = o.visible
	}
}

// renderPanel shows the running sketch, its status and the navigation keys.
func (o *Overlay) renderPanel(storage *ecs.Storage) {
	var status *sketch.Status
	if !storage.ReadSingleton(&status) {
		return
	}
	if !imgui.BeginV("Sketch", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	imgui.Text(o.title)
	imgui.Separator()
	imgui.Text(status.Text)
	for _, line := range status.Info {
		imgui.BulletText(line)
	}
	imgui.Separator()
	imgui.Text(navigationHelp)
	imgui.End()
}

// captureSystem hands ImGui's input capture to the sketch input system, so
// clicks on an overlay window do not reach the sketch.
type captureSystem struct {
	ImGui   ecs.Singleton[debugui.ImguiInputState]
	Capture ecs.Singleton[sketch.PointerCapture]
}

func (c *captureSystem) Execute(frame *ecs.UpdateFrame) {
	state := c.ImGui.Get()
	capture := c.Capture.Get()
	capture.Mouse = state.Visible && state.WantCaptureMouse
	capture.Keyboard = state.Visible && state.WantCaptureKeyboard
}
