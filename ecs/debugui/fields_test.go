package debugui

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name   string
	hidden int
	Parent *sample
	Score  float64
}

func TestExportedFields(t *testing.T) {
	fields := exportedFields(reflect.TypeFor[sample]())
	assert.Equal(t, []fieldInfo{
		{name: "Name", index: 0},
		{name: "Parent", index: 2, pointer: true},
		{name: "Score", index: 3},
	}, fields)

	assert.Empty(t, exportedFields(reflect.TypeFor[int]()))
}
