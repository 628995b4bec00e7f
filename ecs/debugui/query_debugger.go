package debugui

import (
	"fmt"
	"maps"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/prepositions/ecs"
)

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
	}
}

// Render lets the user tick component types and shows which entities a view
// requiring all of them would match.
func (qd *QueryDebuggerComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selectedComponentTypes)
	}

	for _, name := range sortedNames(ComponentTypesInUse(storage)) {
		selected := qd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &selected) {
			if selected {
				qd.selectedComponentTypes[name] = true
			} else {
				delete(qd.selectedComponentTypes, name)
			}
		}
	}

	imgui.Separator()

	if len(qd.selectedComponentTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := MatchingEntities(storage, slices.Sorted(maps.Keys(qd.selectedComponentTypes)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entities") {
		for _, id := range matching {
			imgui.BulletText(EntityInfo{ID: id}.Label())
		}
		imgui.TreePop()
	}

	imgui.End()
}
