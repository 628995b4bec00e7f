package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/prepositions/ecs"
)

func NewComponentViewerComponent() ComponentViewerComponent {
	return ComponentViewerComponent{
		sortColumn:    1,
		sortAscending: false,
	}
}

// Render lists component types with their live counts. It returns the type
// the user clicked this frame, or "".
func (cv *ComponentViewerComponent) Render(storage *ecs.Storage) string {
	if !imgui.BeginV("Component Types", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}

	stats := storage.CollectStats()
	rows := slices.Clone(stats.ComponentBreakdown)
	maxCount := 0
	for _, row := range rows {
		maxCount = max(maxCount, row.Count)
	}

	var clicked string
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cv.sortColumn = int(spec.ColumnIndex())
			cv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		sortComponentStats(rows, cv.sortColumn, cv.sortAscending)

		for _, row := range rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.Type, cv.selectedType == row.Type, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				cv.selectedType = row.Type
				clicked = row.Type
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Count))
			if maxCount > 0 {
				barWidth := float32(row.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func sortComponentStats(rows []ecs.ComponentStats, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b ecs.ComponentStats) int {
		c := strings.Compare(a.Type, b.Type)
		if column == 1 {
			c = cmp.Compare(a.Count, b.Count)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}
