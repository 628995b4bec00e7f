package debugui

import (
	"github.com/plus3/prepositions/ecs"
)

type EntityBrowserComponent struct {
	selectedEntityId   ecs.EntityId
	filterText         string
	filterType         string
	maxEntitiesPerPage int
	currentPage        int
	sortColumn         int
	sortAscending      bool
}

type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

type ComponentViewerComponent struct {
	selectedType  string
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[string]bool
}
