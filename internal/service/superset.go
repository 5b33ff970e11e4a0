package service

import (
	"github.com/google/uuid"
)

// ExerciseAssignment is one exercise submitted for a training: the exercise
// to schedule, its set descriptors and the ids of the exercises it is
// performed back-to-back with (superset/tri-set declaration).
type ExerciseAssignment struct {
	ExerciseID uuid.UUID
	Sets       []int
	Supersets  []uuid.UUID
}

// AssignSupersetGroups resolves a group id for every exercise of one
// training that appears in a superset declaration. Partner links are
// unioned transitively, so all mutually reachable exercises share one group
// regardless of declaration order. Exercises with no links are absent from
// the result.
//
// The mapping is a fresh value per call; groups are minted as new UUIDs so
// they never collide across trainings or plans.
func AssignSupersetGroups(assignments []ExerciseAssignment) map[uuid.UUID]uuid.UUID {
	parent := make(map[uuid.UUID]uuid.UUID)

	var find func(id uuid.UUID) uuid.UUID
	find = func(id uuid.UUID) uuid.UUID {
		p, ok := parent[id]
		if !ok {
			parent[id] = id
			return id
		}
		if p == id {
			return id
		}
		root := find(p)
		parent[id] = root // path compression
		return root
	}

	union := func(a, b uuid.UUID) {
		rootA, rootB := find(a), find(b)
		if rootA != rootB {
			parent[rootB] = rootA
		}
	}

	linked := make([]uuid.UUID, 0, len(assignments))
	seen := make(map[uuid.UUID]bool)
	note := func(id uuid.UUID) {
		if !seen[id] {
			seen[id] = true
			linked = append(linked, id)
		}
	}

	for _, item := range assignments {
		if len(item.Supersets) == 0 {
			continue
		}
		note(item.ExerciseID)
		for _, partner := range item.Supersets {
			note(partner)
			union(item.ExerciseID, partner)
		}
	}

	groups := make(map[uuid.UUID]uuid.UUID)
	result := make(map[uuid.UUID]uuid.UUID, len(linked))
	for _, id := range linked {
		root := find(id)
		group, ok := groups[root]
		if !ok {
			group = uuid.New()
			groups[root] = group
		}
		result[id] = group
	}
	return result
}
