package vessel

import "github.com/LordIdra/transfer-window-sub001/internal/storage"

// Faction mirrors the teacher's habit of tagging actors with a small
// closed enum (compare CelestialObjectFromString's closed body set).
type Faction int

const (
	Player Faction = iota
	Ally
	Enemy
)

// FuelTank stores propellant for the main Engine, in litres at unit
// density (fuel density 1 kg/L per configuration), generalizing the
// teacher's spacecraft.go FuelMass field into its own component so RCS
// and main-engine tanks can be tracked independently.
type FuelTank struct {
	CapacityLitres float64
	FuelLitres     float64
}

// KgRemaining returns the remaining fuel mass in kilograms.
func (t FuelTank) KgRemaining(fuelDensityKgPerLitre float64) float64 {
	return t.FuelLitres * fuelDensityKgPerLitre
}

// RCS is the attitude-control thruster set driving Turn segments:
// angular acceleration capability and propellant flow rate.
type RCS struct {
	AngularAccelerationRadPerS2 float64
	FuelFlowKgPerSecond         float64
}

// TorpedoStorage is a magazine of ready-to-launch torpedo vessels,
// generalizing the teacher's spacecraft.go Cargo list to a homogeneous
// torpedo count (this domain's cargo is a single consumable kind).
type TorpedoStorage struct {
	Count int
}

// TorpedoLauncher fires a torpedo from storage, subject to a cooldown.
type TorpedoLauncher struct {
	CooldownSeconds         float64
	TimeSinceLastFireSeconds float64
}

// Ready reports whether the launcher's cooldown has elapsed.
func (l TorpedoLauncher) Ready() bool {
	return l.TimeSinceLastFireSeconds >= l.CooldownSeconds
}

// Tick advances the cooldown timer by dt.
func (l *TorpedoLauncher) Tick(dt float64) {
	l.TimeSinceLastFireSeconds += dt
}

// Fire resets the cooldown timer, consuming one round from storage.
func (l *TorpedoLauncher) Fire(storage *TorpedoStorage) bool {
	if !l.Ready() || storage == nil || storage.Count <= 0 {
		return false
	}
	storage.Count--
	l.TimeSinceLastFireSeconds = 0
	return true
}

// Vessel is the component attached to any entity that can be commanded:
// ships, stations-with-engines, and torpedoes alike. Optional
// sub-components are nil/zero-valued pointers when absent, mirroring
// the teacher's spacecraft.go's optional EPThrusters/ChemProp/Cargo
// fields.
type Vessel struct {
	Name            string
	DryMassKg       float64
	Engine          *Engine
	FuelTank        *FuelTank
	RCS             *RCS
	TorpedoStorage  *TorpedoStorage
	TorpedoLauncher *TorpedoLauncher
	Faction         Faction
	Target          *storage.Entity
	Timeline        *Timeline
	// Ghost marks a vessel that previews a planned-but-unfired torpedo:
	// it participates in trajectory prediction so the path is visible,
	// but simulation events ignore it until FireTorpedo executes and
	// clears the flag.
	Ghost bool
	// IsTorpedoClass gates Model.StartGuidance: only torpedoes may home.
	IsTorpedoClass bool
}

// HasEngine reports whether this vessel can perform a Burn.
func (v Vessel) HasEngine() bool {
	return v.Engine != nil && v.FuelTank != nil
}

// HasRCS reports whether this vessel can perform a Turn.
func (v Vessel) HasRCS() bool {
	return v.RCS != nil && v.FuelTank != nil
}
