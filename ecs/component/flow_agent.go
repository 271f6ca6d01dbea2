package component

// FlowAgent follows the navigation flow field at Speed world units per tick.
type FlowAgent struct {
	Speed float64
	// Lost is set while the agent is outside the navigation grid.
	Lost bool
}

var FlowAgentComponent = NewComponent[FlowAgent]()
