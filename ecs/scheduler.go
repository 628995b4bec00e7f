package ecs

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type storageBinder interface {
	Init(storage *Storage)
}

type queryExecutor interface {
	Execute()
}

type scheduledSystem struct {
	system  System
	queries []queryExecutor
	stats   SystemStats
}

// Scheduler runs registered systems in registration order.
type Scheduler struct {
	storage  *Storage
	systems  []*scheduledSystem
	commands *Commands
	ticks    uint64
}

// NewScheduler creates a scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Storage returns the storage the scheduler drives
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends a system and binds its Query, Singleton and View fields.
func (s *Scheduler) Register(system System) {
	entry := &scheduledSystem{
		system: system,
		stats: SystemStats{
			Name:        systemName(system),
			MinDuration: time.Duration(1<<63 - 1),
		},
	}
	entry.queries = s.bindFields(system)
	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(system System) []queryExecutor {
	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	return s.bindStruct(value, nil)
}

// bindStruct initializes Query, Singleton and View fields of a struct value.
// Embedded structs are searched too, so systems can share a bundle of accessors.
func (s *Scheduler) bindStruct(value reflect.Value, queries []queryExecutor) []queryExecutor {
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") && !strings.HasPrefix(typeName, "View[") {
			if value.Type().Field(i).Anonymous {
				queries = s.bindStruct(field, queries)
			}
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			panic(fmt.Sprintf("Init method not found on field %s", value.Type().Field(i).Name))
		}
		binder.Init(s.storage)

		if isQuery {
			queries = append(queries, field.Addr().Interface().(queryExecutor))
		}
	}
	return queries
}

// Once runs every system once, then flushes queued commands.
// Each system's queries are refreshed right before it runs, so a system sees
// the direct storage changes made by the systems before it.
func (s *Scheduler) Once(dt float64) {
	s.ticks++
	frame := &UpdateFrame{
		DeltaTime: dt,
		Tick:      s.ticks,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for _, entry := range s.systems {
		start := time.Now()
		for _, q := range entry.queries {
			q.Execute()
		}
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

func (e *scheduledSystem) record(d time.Duration) {
	st := &e.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	if d < st.MinDuration {
		st.MinDuration = d
	}
	if d > st.MaxDuration {
		st.MaxDuration = d
	}
}

// Run calls Once every interval until ctx is done or, when ticks is non-zero,
// until that many frames have run. The delta time passed to systems is the
// nominal interval, keeping frame-counted animations deterministic.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, ticks uint64) error {
	if interval <= 0 {
		return fmt.Errorf("invalid scheduler interval: %v", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var ran uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Once(interval.Seconds())
			ran++
			if ticks > 0 && ran >= ticks {
				return nil
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		st := entry.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
