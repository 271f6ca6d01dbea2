package component

// SteeringScript names a tengo script that may reshape the velocity an agent
// took from the flow field. Source overrides Path when set.
type SteeringScript struct {
	Path   string
	Source string
}

var SteeringScriptComponent = NewComponent[SteeringScript]()
