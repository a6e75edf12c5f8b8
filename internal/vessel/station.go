package vessel

import "github.com/LordIdra/transfer-window-sub001/internal/storage"

// DockingPortLocation names one of a station's fixed docking ports, the
// way the teacher's station.go names a fixed tracking antenna rather
// than a free-floating attachment point.
type DockingPortLocation int

const (
	DockingPortNorth DockingPortLocation = iota
	DockingPortEast
	DockingPortSouth
	DockingPortWest
)

func (l DockingPortLocation) String() string {
	switch l {
	case DockingPortNorth:
		return "North"
	case DockingPortEast:
		return "East"
	case DockingPortSouth:
		return "South"
	case DockingPortWest:
		return "West"
	default:
		return "Unknown"
	}
}

// StationClass fixes a station's mass and docking port layout, mirroring
// the teacher's closed body/class enums (compare CelestialObject's fixed
// set of named bodies) rather than letting either vary per-instance.
type StationClass int

const (
	StationHub StationClass = iota
	StationOutpost
)

// Mass returns the class's fixed dry/wet mass in kilograms -- a station
// carries no propellant, so dry and wet mass are the same value.
func (c StationClass) Mass() float64 {
	switch c {
	case StationHub:
		return 60.0e4
	case StationOutpost:
		return 12.0e4
	default:
		return 0
	}
}

// defaultPorts returns the class's fixed docking port layout: a Hub has
// one port per compass point, an Outpost only opposing North/South.
func (c StationClass) defaultPorts() map[DockingPortLocation]*storage.Entity {
	switch c {
	case StationHub:
		return map[DockingPortLocation]*storage.Entity{
			DockingPortNorth: nil,
			DockingPortEast:  nil,
			DockingPortSouth: nil,
			DockingPortWest:  nil,
		}
	case StationOutpost:
		return map[DockingPortLocation]*storage.Entity{
			DockingPortNorth: nil,
			DockingPortSouth: nil,
		}
	default:
		return map[DockingPortLocation]*storage.Entity{}
	}
}

// Station adapts the teacher's ground-tracking Station into an orbital
// docking facility: instead of a fixed ECEF position and a measurement
// noise model, it carries a class-fixed mass and a set of docking ports
// that hold the handle of whatever vessel is docked there, if any.
type Station struct {
	Class        StationClass
	Faction      Faction
	Target       *storage.Entity
	Timeline     *Timeline
	DockingPorts map[DockingPortLocation]*storage.Entity
}

// NewStation returns a station of the given class with every port free.
func NewStation(class StationClass, faction Faction) *Station {
	return &Station{
		Class:        class,
		Faction:      faction,
		Timeline:     NewTimeline(),
		DockingPorts: class.defaultPorts(),
	}
}

// Mass returns the station's fixed mass in kilograms.
func (s *Station) Mass() float64 {
	return s.Class.Mass()
}

// FreePort returns the location of the first unoccupied docking port, if
// any, iterating in a fixed compass order so results are deterministic.
func (s *Station) FreePort() (DockingPortLocation, bool) {
	for _, loc := range []DockingPortLocation{DockingPortNorth, DockingPortEast, DockingPortSouth, DockingPortWest} {
		occupant, ok := s.DockingPorts[loc]
		if ok && occupant == nil {
			return loc, true
		}
	}
	return 0, false
}

// PortOf returns the location of the port docked holds, if any.
func (s *Station) PortOf(docked storage.Entity) (DockingPortLocation, bool) {
	for loc, occupant := range s.DockingPorts {
		if occupant != nil && *occupant == docked {
			return loc, true
		}
	}
	return 0, false
}

// Dock assigns entity to location, which must currently be free.
func (s *Station) Dock(location DockingPortLocation, entity storage.Entity) {
	e := entity
	s.DockingPorts[location] = &e
}

// Undock frees location.
func (s *Station) Undock(location DockingPortLocation) {
	s.DockingPorts[location] = nil
}
