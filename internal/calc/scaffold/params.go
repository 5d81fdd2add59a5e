package scaffold

type Property string

const (
	Stress             Property = "stress"
	Strain             Property = "strain"
	FlowRate           Property = "flow_rate"
	ShearStress        Property = "shear_stress"
	MechanicalStrength Property = "mechanical_strength"
	CellMigration      Property = "cell_migration"
)

// Properties lists every tabulated property in display order.
var Properties = []Property{Stress, Strain, FlowRate, ShearStress, MechanicalStrength, CellMigration}

const (
	MinPorosity = 30
	MidPorosity = 60
	MaxPorosity = 90
)

type Stat struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Params holds the statistics of every property at one porosity.
type Params map[Property]Stat

func (p Params) clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Measured reference points. Stress in MPa, strain in microstrain,
// flow rate in mL/min, shear stress in mPa, strength and migration in %.
var anchors = map[int]Params{
	MinPorosity: {
		Stress:             {Mean: 2.8120, Std: 0.2150},
		Strain:             {Mean: 6120.4530, Std: 410.2200},
		FlowRate:           {Mean: 0.3, Std: 0.03},
		ShearStress:        {Mean: 300, Std: 25},
		MechanicalStrength: {Mean: 85, Std: 4},
		CellMigration:      {Mean: 35, Std: 5},
	},
	MidPorosity: {
		Stress:             {Mean: 1.9460, Std: 0.1620},
		Strain:             {Mean: 8049.9094, Std: 520.3310},
		FlowRate:           {Mean: 0.5, Std: 0.04},
		ShearStress:        {Mean: 200, Std: 18},
		MechanicalStrength: {Mean: 70, Std: 3.5},
		CellMigration:      {Mean: 60, Std: 4.5},
	},
	MaxPorosity: {
		Stress:             {Mean: 0.9870, Std: 0.0980},
		Strain:             {Mean: 10235.6712, Std: 640.5120},
		FlowRate:           {Mean: 0.7, Std: 0.05},
		ShearStress:        {Mean: 150, Std: 12},
		MechanicalStrength: {Mean: 45, Std: 3},
		CellMigration:      {Mean: 85, Std: 4},
	},
}

// Anchor returns a copy of the reference parameters at one of the anchor porosities.
func Anchor(porosity int) (Params, bool) {
	p, ok := anchors[porosity]
	if !ok {
		return nil, false
	}
	return p.clone(), true
}

// Range is an inclusive band of acceptable values.
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// NativeCartilage holds the reference bands of healthy articular cartilage.
var NativeCartilage = struct {
	Stress      Range
	Strain      Range
	FlowRate    Range
	ShearStress Range
}{
	Stress:      Range{Lo: 1.5, Hi: 3.0},
	Strain:      Range{Lo: 5000, Hi: 10000},
	FlowRate:    Range{Lo: 0.4, Hi: 0.6},
	ShearStress: Range{Lo: 150, Hi: 250},
}
