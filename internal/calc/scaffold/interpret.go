package scaffold

const (
	LabelOptimal     = "Optimal - Within native cartilage range"
	LabelLower       = "Suboptimal - Lower than native cartilage"
	LabelHigher      = "Suboptimal - Higher than native cartilage"
	LabelFlowLower   = "Suboptimal - Lower flow may limit nutrient transport"
	LabelFlowHigher  = "Suboptimal - Higher flow may cause excessive shear stress"
	LabelShearHigher = "Suboptimal - Higher shear stress may damage cells"

	LabelStrengthExcellent = "Excellent - Suitable for high load-bearing"
	LabelStrengthGood      = "Good - Suitable for load-bearing"
	LabelStrengthFair      = "Fair - Limited load-bearing capacity"

	LabelMigrationExcellent = "Excellent - Optimal cell distribution"
	LabelMigrationGood      = "Good - Adequate cell distribution"
	LabelMigrationFair      = "Fair - Limited cell distribution"
	LabelMigrationPoor      = "Poor - Restricted cell distribution"
)

type Interpretation map[Property]string

func Interpret(b Bundle) Interpretation {
	nc := NativeCartilage
	return Interpretation{
		Stress:             classify(b.Stress, nc.Stress, LabelLower, LabelHigher),
		Strain:             classify(b.Strain, nc.Strain, LabelLower, LabelHigher),
		FlowRate:           classify(b.FlowRate, nc.FlowRate, LabelFlowLower, LabelFlowHigher),
		ShearStress:        classify(b.ShearStress, nc.ShearStress, LabelLower, LabelShearHigher),
		MechanicalStrength: strengthLabel(b.MechanicalStrength),
		CellMigration:      migrationLabel(b.CellMigration),
	}
}

func classify(v float64, r Range, lower, higher string) string {
	switch {
	case v >= r.Lo && v <= r.Hi:
		return LabelOptimal
	case v < r.Lo:
		return lower
	default:
		return higher
	}
}

func strengthLabel(v float64) string {
	switch {
	case v >= 80:
		return LabelStrengthExcellent
	case v >= 60:
		return LabelStrengthGood
	default:
		return LabelStrengthFair
	}
}

func migrationLabel(v float64) string {
	switch {
	case v >= 85:
		return LabelMigrationExcellent
	case v >= 70:
		return LabelMigrationGood
	case v >= 50:
		return LabelMigrationFair
	default:
		return LabelMigrationPoor
	}
}
