package models

import "fmt"

// ComponentKind enumerates the vessel component families the engine evaluates.
type ComponentKind string

const (
	KindShell  ComponentKind = "shell"
	KindHead   ComponentKind = "head"
	KindNozzle ComponentKind = "nozzle"
)

// HeadType enumerates supported head geometries.
type HeadType string

const (
	HeadEllipsoidal   HeadType = "ellipsoidal"
	HeadTorispherical HeadType = "torispherical"
	HeadHemispherical HeadType = "hemispherical"
)

// Component identifies one evaluated component of a vessel. The vessel body
// has a closed set of components (shell plus two heads); nozzles are an open
// set keyed by nozzle id.
type Component struct {
	Kind     ComponentKind
	Name     string
	NozzleID string
}

// Canonical vessel-body components for a two-head vessel.
var (
	ComponentShell    = Component{Kind: KindShell, Name: "shell"}
	ComponentEastHead = Component{Kind: KindHead, Name: "east_head"}
	ComponentWestHead = Component{Kind: KindHead, Name: "west_head"}
)

// BodyComponents returns the canonical vessel-body component set in
// evaluation order.
func BodyComponents() []Component {
	return []Component{ComponentShell, ComponentEastHead, ComponentWestHead}
}

// NozzleComponent builds the component identity for a tracked nozzle.
func NozzleComponent(nozzleID string) Component {
	return Component{
		Kind:     KindNozzle,
		Name:     fmt.Sprintf("nozzle:%s", nozzleID),
		NozzleID: nozzleID,
	}
}

// IsHead reports whether the component uses head formulas.
func (c Component) IsHead() bool {
	return c.Kind == KindHead
}
