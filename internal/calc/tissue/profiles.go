package tissue

import (
	"errors"
	"fmt"
	"sort"

	"scartix/internal/calc/scaffold"
)

var ErrUnknownTissue = errors.New("unknown tissue")

type Requirement struct {
	Min     float64 `json:"min"`
	Optimal float64 `json:"optimal"`
}

// Profile describes what a target tissue needs from a scaffold.
type Profile struct {
	Name                        string                            `json:"name"`
	Description                 string                            `json:"description"`
	Requirements                map[scaffold.Property]Requirement `json:"requirements"`
	MechanicalStrengthThreshold float64                           `json:"mechanical_strength_threshold"`
	CellMigrationThreshold      float64                           `json:"cell_migration_threshold"`
	CriticalFactors             []scaffold.Property               `json:"critical_factors"`
}

const (
	ArticularCartilage = "articular_cartilage"
	Meniscus           = "meniscus"
	BoneTissue         = "bone_tissue"
	Skin               = "skin"
	BloodVessel        = "blood_vessel"
)

var catalog = map[string]Profile{
	ArticularCartilage: {
		Name:        ArticularCartilage,
		Description: "Smooth load-bearing tissue covering joint surfaces; needs compressive stiffness and moderate permeability.",
		Requirements: map[scaffold.Property]Requirement{
			scaffold.Stress:      {Min: 1.5, Optimal: 2.5},
			scaffold.Strain:      {Min: 5000, Optimal: 8000},
			scaffold.FlowRate:    {Min: 0.4, Optimal: 0.5},
			scaffold.ShearStress: {Min: 150, Optimal: 200},
		},
		MechanicalStrengthThreshold: 70,
		CellMigrationThreshold:      60,
		CriticalFactors:             []scaffold.Property{scaffold.Stress, scaffold.Strain, scaffold.MechanicalStrength},
	},
	Meniscus: {
		Name:        Meniscus,
		Description: "Fibrocartilaginous knee pad; distributes load and tolerates large deformation.",
		Requirements: map[scaffold.Property]Requirement{
			scaffold.Stress:      {Min: 1.0, Optimal: 2.0},
			scaffold.Strain:      {Min: 6000, Optimal: 9000},
			scaffold.FlowRate:    {Min: 0.3, Optimal: 0.5},
			scaffold.ShearStress: {Min: 120, Optimal: 180},
		},
		MechanicalStrengthThreshold: 60,
		CellMigrationThreshold:      55,
		CriticalFactors:             []scaffold.Property{scaffold.Strain, scaffold.MechanicalStrength},
	},
	BoneTissue: {
		Name:        BoneTissue,
		Description: "Rigid mineralised tissue; requires high stress capacity and strength.",
		Requirements: map[scaffold.Property]Requirement{
			scaffold.Stress:      {Min: 2.5, Optimal: 3.5},
			scaffold.Strain:      {Min: 3000, Optimal: 5000},
			scaffold.FlowRate:    {Min: 0.4, Optimal: 0.6},
			scaffold.ShearStress: {Min: 180, Optimal: 250},
		},
		MechanicalStrengthThreshold: 80,
		CellMigrationThreshold:      50,
		CriticalFactors:             []scaffold.Property{scaffold.Stress, scaffold.MechanicalStrength},
	},
	Skin: {
		Name:        Skin,
		Description: "Compliant barrier tissue; favours elasticity and fast cell infiltration.",
		Requirements: map[scaffold.Property]Requirement{
			scaffold.Stress:      {Min: 0.5, Optimal: 1.0},
			scaffold.Strain:      {Min: 8000, Optimal: 12000},
			scaffold.FlowRate:    {Min: 0.5, Optimal: 0.7},
			scaffold.ShearStress: {Min: 100, Optimal: 150},
		},
		MechanicalStrengthThreshold: 40,
		CellMigrationThreshold:      75,
		CriticalFactors:             []scaffold.Property{scaffold.Strain, scaffold.CellMigration},
	},
	BloodVessel: {
		Name:        BloodVessel,
		Description: "Tubular vascular tissue; perfusion and endothelial shear are decisive.",
		Requirements: map[scaffold.Property]Requirement{
			scaffold.Stress:      {Min: 0.8, Optimal: 1.5},
			scaffold.Strain:      {Min: 7000, Optimal: 10000},
			scaffold.FlowRate:    {Min: 0.6, Optimal: 0.8},
			scaffold.ShearStress: {Min: 150, Optimal: 220},
		},
		MechanicalStrengthThreshold: 50,
		CellMigrationThreshold:      70,
		CriticalFactors:             []scaffold.Property{scaffold.FlowRate, scaffold.ShearStress, scaffold.CellMigration},
	},
}

// Lookup returns a deep copy of the named profile.
func Lookup(name string) (Profile, error) {
	p, ok := catalog[name]
	if !ok {
		return Profile{}, fmt.Errorf("%q: %w", name, ErrUnknownTissue)
	}
	return p.clone(), nil
}

// Names lists the catalog in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns copies of every profile ordered by name.
func Catalog() []Profile {
	out := make([]Profile, 0, len(catalog))
	for _, name := range Names() {
		out = append(out, catalog[name].clone())
	}
	return out
}

func (p Profile) clone() Profile {
	reqs := make(map[scaffold.Property]Requirement, len(p.Requirements))
	for k, v := range p.Requirements {
		reqs[k] = v
	}
	p.Requirements = reqs
	p.CriticalFactors = append([]scaffold.Property(nil), p.CriticalFactors...)
	return p
}
