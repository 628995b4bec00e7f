package ecs

import (
	"slices"
	"strings"
)

// StorageStats summarises what a Storage currently holds.
type StorageStats struct {
	TotalEntityCount   int
	ComponentTypeCount int
	SingletonCount     int
	ComponentBreakdown []ComponentStats
	SingletonTypes     []string
}

// ComponentStats counts the live components of one type.
type ComponentStats struct {
	Type  string
	Count int
}

// CollectStats gathers entity, component and singleton counts.
// Breakdown entries are sorted by type name.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		TotalEntityCount: s.alive,
		SingletonCount:   len(s.singletons),
	}

	for t, p := range s.pools {
		if p.len() == 0 {
			continue
		}
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentStats{
			Type:  t.String(),
			Count: p.len(),
		})
	}
	slices.SortFunc(stats.ComponentBreakdown, func(a, b ComponentStats) int {
		return strings.Compare(a.Type, b.Type)
	})
	stats.ComponentTypeCount = len(stats.ComponentBreakdown)

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)

	return stats
}
