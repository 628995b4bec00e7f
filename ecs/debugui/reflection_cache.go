package debugui

import (
	"reflect"
	"sync"
)

type fieldInfo struct {
	name    string
	index   int
	pointer bool
}

// fieldCache maps a struct type to its exported fields, so the inspector does
// not walk component types with reflection every frame.
var fieldCache sync.Map

func exportedFields(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if f.IsExported() {
				fields = append(fields, fieldInfo{name: f.Name, index: i, pointer: f.Type.Kind() == reflect.Pointer})
			}
		}
	}
	fieldCache.Store(t, fields)
	return fields
}
