package teamalloc

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

func testTeams() []*domain.Team {
	return []*domain.Team{
		{
			Name:             "Team Alpha",
			Position:         1,
			IsActive:         true,
			EligibleServices: []domain.ServiceType{domain.ServiceDeep, domain.ServiceMoveInOut},
		},
		{
			Name:             "Team Bravo",
			Position:         2,
			IsActive:         true,
			EligibleServices: []domain.ServiceType{domain.ServiceDeep},
		},
		{
			Name:             "Team Charlie",
			Position:         3,
			IsActive:         true,
			EligibleServices: []domain.ServiceType{domain.ServiceMoveInOut},
		},
	}
}

func TestAssign_FirstFitByCreationOrder(t *testing.T) {
	a := New()

	name, err := a.Assign(testTeams(), domain.ServiceDeep, "2025-03-10", "res-1")
	require.NoError(t, err)
	assert.Equal(t, "Team Alpha", name)

	// Alpha занята — следующая подходящая по порядку
	name, err = a.Assign(testTeams(), domain.ServiceDeep, "2025-03-10", "res-2")
	require.NoError(t, err)
	assert.Equal(t, "Team Bravo", name)
}

func TestAssign_OneBookingPerTeamPerDate(t *testing.T) {
	a := New()

	_, err := a.Assign(testTeams(), domain.ServiceDeep, "2025-03-10", "res-1")
	require.NoError(t, err)
	_, err = a.Assign(testTeams(), domain.ServiceDeep, "2025-03-10", "res-2")
	require.NoError(t, err)

	// Deep умеют только Alpha и Bravo, обе заняты
	_, err = a.Assign(testTeams(), domain.ServiceDeep, "2025-03-10", "res-3")
	assert.ErrorIs(t, err, ErrNoTeamAvailable)

	// Другая дата не затронута
	name, err := a.Assign(testTeams(), domain.ServiceDeep, "2025-03-11", "res-4")
	require.NoError(t, err)
	assert.Equal(t, "Team Alpha", name)
}

func TestAssign_RespectsEligibility(t *testing.T) {
	a := New()

	name, err := a.Assign(testTeams(), domain.ServiceMoveInOut, "2025-03-10", "res-1")
	require.NoError(t, err)
	assert.Equal(t, "Team Alpha", name)

	name, err = a.Assign(testTeams(), domain.ServiceMoveInOut, "2025-03-10", "res-2")
	require.NoError(t, err)
	assert.Equal(t, "Team Charlie", name)
}

func TestAssign_SkipsInactiveTeams(t *testing.T) {
	teams := testTeams()
	teams[0].IsActive = false

	a := New()
	name, err := a.Assign(teams, domain.ServiceDeep, "2025-03-10", "res-1")
	require.NoError(t, err)
	assert.Equal(t, "Team Bravo", name)
}

func TestRelease_FreesTeamForDate(t *testing.T) {
	a := New()

	name, err := a.Assign(testTeams(), domain.ServiceDeep, "2025-03-10", "res-1")
	require.NoError(t, err)

	a.Release(name, "2025-03-10")
	a.Release(name, "2025-03-10") // идемпотентность

	again, err := a.Assign(testTeams(), domain.ServiceDeep, "2025-03-10", "res-2")
	require.NoError(t, err)
	assert.Equal(t, name, again)
}

func TestAssign_NoDoubleAssignmentUnderConcurrency(t *testing.T) {
	a := New()
	teams := testTeams()

	var wg sync.WaitGroup
	var mu sync.Mutex
	assigned := make(map[string]int)
	failures := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name, err := a.Assign(teams, domain.ServiceDeep, "2025-03-10", fmt.Sprintf("res-%d", i))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				return
			}
			assigned[name]++
		}(i)
	}
	wg.Wait()

	// Deep умеют две команды: ровно два успеха, каждая команда — один раз
	assert.Equal(t, 18, failures)
	assert.Len(t, assigned, 2)
	for name, count := range assigned {
		assert.Equal(t, 1, count, "team %s assigned more than once", name)
	}
}

func TestAvailableOn(t *testing.T) {
	a := New()

	available := a.AvailableOn(testTeams(), domain.ServiceDeep, "2025-03-10")
	assert.Equal(t, []string{"Team Alpha", "Team Bravo"}, available)

	_, err := a.Assign(testTeams(), domain.ServiceDeep, "2025-03-10", "res-1")
	require.NoError(t, err)

	available = a.AvailableOn(testTeams(), domain.ServiceDeep, "2025-03-10")
	assert.Equal(t, []string{"Team Bravo"}, available)
}

func TestRestore(t *testing.T) {
	a := New()
	a.Restore("Team Alpha", "2025-03-10", "res-1")

	id, ok := a.AssignedOn("2025-03-10", "Team Alpha")
	require.True(t, ok)
	assert.Equal(t, "res-1", id)

	name, err := a.Assign(testTeams(), domain.ServiceDeep, "2025-03-10", "res-2")
	require.NoError(t, err)
	assert.Equal(t, "Team Bravo", name)
}
