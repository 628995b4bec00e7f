package ecs_test

import "github.com/plus3/prepositions/ecs"

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Radius float64

type Label string

type Layer int

type Trail struct {
	Points []Position
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Radius](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Layer](registry)
	ecs.RegisterComponent[Trail](registry)
	return registry
}
