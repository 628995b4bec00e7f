package debugui

import "github.com/plus3/prepositions/ecs"

// SpawnDebugUI spawns one of each debug window
func SpawnDebugUI(storage *ecs.Storage) {
	storage.Spawn(NewEntityBrowserComponent(100))
	storage.Spawn(NewComponentInspectorComponent())
	storage.Spawn(NewComponentViewerComponent())
	storage.Spawn(NewPerformanceStatsComponent(120))
	storage.Spawn(NewQueryDebuggerComponent())
	ecs.NewSingleton[FrameTimer](storage, NewFrameTimer())
	ecs.NewSingleton[ImguiInputState](storage)
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[ComponentViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
}

// WindowsSystem renders the windows spawned by SpawnDebugUI. Selecting an
// entity in the browser feeds the inspector, and clicking a type in the
// component viewer filters the browser.
type WindowsSystem struct {
	// Scheduler, when set, is shown in the performance window.
	Scheduler *ecs.Scheduler

	Browsers   ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors ecs.Query[struct{ *ComponentInspectorComponent }]
	Viewers    ecs.Query[struct{ *ComponentViewerComponent }]
	Perf       ecs.Query[struct{ *PerformanceStatsComponent }]
	Debuggers  ecs.Query[struct{ *QueryDebuggerComponent }]
	InputState ecs.Singleton[ImguiInputState]
	Timer      ecs.Singleton[FrameTimer]
}

func (w *WindowsSystem) Execute(frame *ecs.UpdateFrame) {
	if !w.InputState.Get().Visible {
		return
	}
	storage := frame.Storage
	delta := w.Timer.Get().GetDeltaTime()

	var browsers []*EntityBrowserComponent
	for v := range w.Browsers.Values() {
		browsers = append(browsers, v.EntityBrowserComponent)
	}
	var selected ecs.EntityId
	if len(browsers) > 0 {
		selected = browsers[0].GetSelectedEntity()
	}

	var renders []func()
	for v := range w.Viewers.Values() {
		viewer := v.ComponentViewerComponent
		renders = append(renders, func() {
			if typeName := viewer.Render(storage); typeName != "" {
				for _, b := range browsers {
					b.FilterByType(typeName)
				}
			}
		})
	}
	for _, b := range browsers {
		renders = append(renders, func() { b.Render(storage) })
	}
	for v := range w.Inspectors.Values() {
		inspector := v.ComponentInspectorComponent
		renders = append(renders, func() { inspector.Render(storage, selected) })
	}
	for v := range w.Perf.Values() {
		perf := v.PerformanceStatsComponent
		renders = append(renders, func() { perf.Render(storage, w.Scheduler, delta) })
	}
	for v := range w.Debuggers.Values() {
		debugger := v.QueryDebuggerComponent
		renders = append(renders, func() { debugger.Render(storage) })
	}

	frame.Commands.Defer(func() {
		for _, render := range renders {
			render()
		}
	})
}
