package component

// Hazard hurts the character on contact. A Lethal hazard kills outright;
// otherwise it deals Damage and knocks the character away.
type Hazard struct {
	Lethal bool
	Damage int
}

var HazardComponent = NewComponent[Hazard]()
