package component

// Chase makes an entity run straight at the player whenever nothing blocks
// the line between them within SightRange. A SightRange of zero means
// unlimited.
type Chase struct {
	Speed      float64
	SightRange float64
	// InSight reports the result of the last line-of-sight check.
	InSight bool
}

var ChaseComponent = NewComponent[Chase]()
