package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignSupersetGroups_PairSharesGroup(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assignments := []ExerciseAssignment{
		{ExerciseID: a, Supersets: []uuid.UUID{b}},
		{ExerciseID: b, Supersets: []uuid.UUID{a}},
	}

	groups := AssignSupersetGroups(assignments)

	require.Contains(t, groups, a)
	require.Contains(t, groups, b)
	assert.Equal(t, groups[a], groups[b])
	assert.NotEqual(t, uuid.Nil, groups[a])
}

func TestAssignSupersetGroups_UnlinkedExerciseAbsent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	assignments := []ExerciseAssignment{
		{ExerciseID: a, Supersets: []uuid.UUID{b}},
		{ExerciseID: b, Supersets: []uuid.UUID{a}},
		{ExerciseID: c}, // standalone
	}

	groups := AssignSupersetGroups(assignments)

	assert.NotContains(t, groups, c)
	assert.Len(t, groups, 2)
}

func TestAssignSupersetGroups_TransitiveLinksMergeIntoOneGroup(t *testing.T) {
	// A declares B, A declares C, but B and C never reference each other.
	// All three still end up in the same group.
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	assignments := []ExerciseAssignment{
		{ExerciseID: a, Supersets: []uuid.UUID{b, c}},
		{ExerciseID: b},
		{ExerciseID: c},
	}

	groups := AssignSupersetGroups(assignments)

	require.Len(t, groups, 3)
	assert.Equal(t, groups[a], groups[b])
	assert.Equal(t, groups[a], groups[c])
}

func TestAssignSupersetGroups_DeclarationOrderIrrelevant(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	// The chain is declared backwards: C links B, B links A.
	assignments := []ExerciseAssignment{
		{ExerciseID: c, Supersets: []uuid.UUID{b}},
		{ExerciseID: b, Supersets: []uuid.UUID{a}},
		{ExerciseID: a},
	}

	groups := AssignSupersetGroups(assignments)

	require.Len(t, groups, 3)
	assert.Equal(t, groups[a], groups[b])
	assert.Equal(t, groups[b], groups[c])
}

func TestAssignSupersetGroups_SeparatePairsGetDistinctGroups(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	assignments := []ExerciseAssignment{
		{ExerciseID: a, Supersets: []uuid.UUID{b}},
		{ExerciseID: b},
		{ExerciseID: c, Supersets: []uuid.UUID{d}},
		{ExerciseID: d},
	}

	groups := AssignSupersetGroups(assignments)

	require.Len(t, groups, 4)
	assert.Equal(t, groups[a], groups[b])
	assert.Equal(t, groups[c], groups[d])
	assert.NotEqual(t, groups[a], groups[c])
}

func TestAssignSupersetGroups_FreshGroupsPerCall(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assignments := []ExerciseAssignment{
		{ExerciseID: a, Supersets: []uuid.UUID{b}},
	}

	first := AssignSupersetGroups(assignments)
	second := AssignSupersetGroups(assignments)

	assert.NotEqual(t, first[a], second[a])
}

func TestAssignSupersetGroups_NoLinksNoGroups(t *testing.T) {
	assignments := []ExerciseAssignment{
		{ExerciseID: uuid.New()},
		{ExerciseID: uuid.New()},
	}

	groups := AssignSupersetGroups(assignments)
	assert.Empty(t, groups)
}
