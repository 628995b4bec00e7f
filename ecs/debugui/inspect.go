package debugui

import (
	"cmp"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/plus3/prepositions/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	ComponentTypes []string
}

// Label formats the id as slot:generation
func (e EntityInfo) Label() string {
	return fmt.Sprintf("%d:%d", e.ID.Slot(), e.ID.Generation())
}

// CollectEntities lists every live entity with its component type names
func CollectEntities(storage *ecs.Storage) []EntityInfo {
	entities := make([]EntityInfo, 0, storage.Count())
	for id := range storage.Entities() {
		types := storage.ComponentTypes(id)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		entities = append(entities, EntityInfo{ID: id, ComponentTypes: names})
	}
	return entities
}

// FilterEntities keeps the entities carrying typeName (when set) whose label
// or component names contain text, case-insensitively.
func FilterEntities(entities []EntityInfo, text, typeName string) []EntityInfo {
	if text == "" && typeName == "" {
		return entities
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityInfo, 0, len(entities))
	for _, entity := range entities {
		if typeName != "" && !slices.Contains(entity.ComponentTypes, typeName) {
			continue
		}
		if needle != "" &&
			!strings.Contains(entity.Label(), needle) &&
			!strings.Contains(strings.ToLower(strings.Join(entity.ComponentTypes, " ")), needle) {
			continue
		}
		filtered = append(filtered, entity)
	}
	return filtered
}

// SortEntities orders rows by id (column 0), component names (1) or
// component count (2).
func SortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 2:
			c = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

// ComponentTypesInUse maps the names of the component types held by live
// entities to their types.
func ComponentTypesInUse(storage *ecs.Storage) map[string]reflect.Type {
	types := make(map[string]reflect.Type)
	for id := range storage.Entities() {
		for _, t := range storage.ComponentTypes(id) {
			types[t.String()] = t
		}
	}
	return types
}

// MatchingEntities returns the live entities that carry every named component
// type. Names not in use match nothing.
func MatchingEntities(storage *ecs.Storage, typeNames []string) []ecs.EntityId {
	if len(typeNames) == 0 {
		return nil
	}
	inUse := ComponentTypesInUse(storage)
	required := make([]reflect.Type, 0, len(typeNames))
	for _, name := range typeNames {
		t, ok := inUse[name]
		if !ok {
			return nil
		}
		required = append(required, t)
	}

	var matching []ecs.EntityId
	for id := range storage.Entities() {
		if !slices.ContainsFunc(required, func(t reflect.Type) bool { return !storage.HasComponent(id, t) }) {
			matching = append(matching, id)
		}
	}
	return matching
}

func sortedNames(types map[string]reflect.Type) []string {
	return slices.Sorted(maps.Keys(types))
}
