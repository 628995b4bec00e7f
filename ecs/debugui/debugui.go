// Package debugui draws Dear ImGui debug windows over an ECS world.
// Windows are components; their render calls are deferred through the frame's
// commands, so they run while the backend's ImGui frame is open.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/prepositions/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is a singleton mirroring what ImGui wants to capture.
// A hidden overlay captures nothing and renders nothing.
type ImguiInputState struct {
	Visible             bool
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every ImguiItem render.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	if !state.Visible {
		state.WantCaptureMouse = false
		state.WantCaptureKeyboard = false
		return
	}

	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
