package component

// NavRebuildRequest is a marker used to ask the navigation system to rebuild
// the flow field on its next update. Systems may create a short-lived entity
// with this component; the navigation system destroys it once handled.
type NavRebuildRequest struct {
	Reason string
}

var NavRebuildRequestComponent = NewComponent[NavRebuildRequest]()
