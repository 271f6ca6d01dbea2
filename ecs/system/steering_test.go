package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowSteeringFollowsField(t *testing.T) {
	field := buildField(t, 50, 50, navigation.GridPos{X: 5, Y: 5})
	w := ecs.NewWorld()
	near := addAgent(t, w, 2, 2, 2)
	atGoal := addAgent(t, w, 27, 27, 3)

	NewFlowSteeringSystem(fixedField{field}).Update(w)

	assert.Equal(t, vec(0, 2), bodyOf(t, w, near).Velocity)
	assert.Equal(t, cp.Vector{}, bodyOf(t, w, atGoal).Velocity, "source cells have no flow")
	assert.Empty(t, eventTypes(w))
}

func TestFlowSteeringLostAgents(t *testing.T) {
	field := buildField(t, 50, 50, navigation.GridPos{X: 5, Y: 5})
	w := ecs.NewWorld()
	lost := addAgent(t, w, -3, 4, 1)
	bodyOf(t, w, lost).Velocity = vec(1, 1)
	s := NewFlowSteeringSystem(fixedField{field})

	s.Update(w)
	agent, ok := ecs.Get(w, lost, component.FlowAgentComponent.Kind())
	require.True(t, ok)
	assert.True(t, agent.Lost)
	assert.Equal(t, cp.Vector{}, bodyOf(t, w, lost).Velocity)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventAgentOutOfBounds, events[0].Type)
	assert.Equal(t, lost, events[0].Data)

	// reported once while it stays out
	s.Update(w)
	assert.Empty(t, eventTypes(w))

	transformOf(t, w, lost).X = 3
	s.Update(w)
	assert.False(t, agent.Lost)
	assert.NotEqual(t, cp.Vector{}, bodyOf(t, w, lost).Velocity)
}

func TestFlowSteeringWithoutField(t *testing.T) {
	w := ecs.NewWorld()
	e := addAgent(t, w, 2, 2, 1)
	bodyOf(t, w, e).Velocity = vec(3, 0)

	NewFlowSteeringSystem(fixedField{}).Update(w)
	assert.Equal(t, vec(3, 0), bodyOf(t, w, e).Velocity)
}

func TestSteeringScriptSlowsNearGoal(t *testing.T) {
	field := buildField(t, 100, 100, navigation.GridPos{X: 10, Y: 10})
	w := ecs.NewWorld()

	near := addAgent(t, w, 62.5, 52.5, 4)
	far := addAgent(t, w, 2.5, 2.5, 4)
	for _, e := range []ecs.Entity{near, far} {
		require.NoError(t, ecs.Add(w, e, component.SteeringScriptComponent.Kind(), &component.SteeringScript{Path: "zombie_steer.tengo"}))
		bodyOf(t, w, e).Velocity = vec(4, 0)
	}

	s := NewSteeringScriptSystem(fixedField{field})
	s.Update(w)

	assert.InDelta(t, 1.0, bodyOf(t, w, near).Velocity.X, 1e-9)
	assert.InDelta(t, 0.0, bodyOf(t, w, near).Velocity.Y, 1e-9)
	assert.Equal(t, vec(4, 0), bodyOf(t, w, far).Velocity)
	assert.Len(t, s.compiled, 1)
}

func TestSteeringScriptInlineSource(t *testing.T) {
	field := buildField(t, 50, 50, navigation.GridPos{X: 0, Y: 0})
	w := ecs.NewWorld()
	e := addAgent(t, w, 20, 20, 1)
	require.NoError(t, ecs.Add(w, e, component.SteeringScriptComponent.Kind(), &component.SteeringScript{
		Source: "vx = vx * 2\nvy = speed + cost",
	}))
	bodyOf(t, w, e).Velocity = vec(1.5, 0)

	NewSteeringScriptSystem(fixedField{field}).Update(w)

	// cell (4,4) is 4 diagonal steps from the source
	cost := field.Cost(navigation.GridPos{X: 4, Y: 4})
	assert.Equal(t, 3.0, bodyOf(t, w, e).Velocity.X)
	assert.InDelta(t, 1+cost, bodyOf(t, w, e).Velocity.Y, 1e-9)
}

func TestSteeringScriptErrorsKeepVelocity(t *testing.T) {
	field := buildField(t, 50, 50, navigation.GridPos{X: 0, Y: 0})
	w := ecs.NewWorld()

	broken := addAgent(t, w, 20, 20, 1)
	require.NoError(t, ecs.Add(w, broken, component.SteeringScriptComponent.Kind(), &component.SteeringScript{Source: "vx = ("}))
	bodyOf(t, w, broken).Velocity = vec(1, 1)

	missing := addAgent(t, w, 30, 30, 1)
	require.NoError(t, ecs.Add(w, missing, component.SteeringScriptComponent.Kind(), &component.SteeringScript{Path: "missing.tengo"}))
	bodyOf(t, w, missing).Velocity = vec(2, 2)

	s := NewSteeringScriptSystem(fixedField{field})
	s.Update(w)

	assert.Equal(t, vec(1, 1), bodyOf(t, w, broken).Velocity)
	assert.Equal(t, vec(2, 2), bodyOf(t, w, missing).Velocity)
	assert.Len(t, s.broken, 2)
	assert.Empty(t, s.compiled)

	s.Invalidate("missing.tengo")
	assert.Len(t, s.broken, 1)
	s.Invalidate("")
	assert.Empty(t, s.broken)
}

func TestChaseRunsAtVisiblePlayer(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, 50, 10)
	z := addAgent(t, w, 10, 10, 1)
	require.NoError(t, ecs.Add(w, z, component.ChaseComponent.Kind(), &component.Chase{Speed: 1.5}))
	bodyOf(t, w, z).Velocity = vec(0, 1)

	NewChaseSystem().Update(w)

	chase, _ := ecs.Get(w, z, component.ChaseComponent.Kind())
	assert.True(t, chase.InSight)
	assert.InDelta(t, 1.5, bodyOf(t, w, z).Velocity.X, 1e-9)
	assert.InDelta(t, 0.0, bodyOf(t, w, z).Velocity.Y, 1e-9)
}

func TestChaseBlockedByWall(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, 50, 10)
	addWall(t, w, 30, 10, collision.Box{Width: 4, Height: 40}, 0)
	z := addAgent(t, w, 10, 10, 1)
	require.NoError(t, ecs.Add(w, z, component.ChaseComponent.Kind(), &component.Chase{Speed: 1, InSight: true}))
	bodyOf(t, w, z).Velocity = vec(0, 1)

	NewChaseSystem().Update(w)

	chase, _ := ecs.Get(w, z, component.ChaseComponent.Kind())
	assert.False(t, chase.InSight)
	assert.Equal(t, vec(0, 1), bodyOf(t, w, z).Velocity, "flow velocity stays")
}

func TestChaseSightRange(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, 50, 10)
	z := addAgent(t, w, 10, 10, 1)
	require.NoError(t, ecs.Add(w, z, component.ChaseComponent.Kind(), &component.Chase{Speed: 1, SightRange: 20}))

	NewChaseSystem().Update(w)

	chase, _ := ecs.Get(w, z, component.ChaseComponent.Kind())
	assert.False(t, chase.InSight)
	assert.Equal(t, cp.Vector{}, bodyOf(t, w, z).Velocity)
}

func TestChaseWithoutPlayer(t *testing.T) {
	w := ecs.NewWorld()
	z := addAgent(t, w, 10, 10, 1)
	require.NoError(t, ecs.Add(w, z, component.ChaseComponent.Kind(), &component.Chase{Speed: 1, InSight: true}))

	NewChaseSystem().Update(w)

	chase, _ := ecs.Get(w, z, component.ChaseComponent.Kind())
	assert.False(t, chase.InSight)
}
