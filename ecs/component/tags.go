package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type ZombieTag struct{}

var ZombieTagComponent = NewComponent[ZombieTag]()

// ObstacleTag marks static geometry that blocks navigation when its collider
// is on the navigation layer.
type ObstacleTag struct{}

var ObstacleTagComponent = NewComponent[ObstacleTag]()

// TriggerTag colliders detect overlap but are never pushed apart.
type TriggerTag struct{}

var TriggerTagComponent = NewComponent[TriggerTag]()

// NavGoalTag marks an entity whose position is a flow field source.
type NavGoalTag struct{}

var NavGoalTagComponent = NewComponent[NavGoalTag]()
