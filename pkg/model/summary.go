package model

// AnalysisSummary is the aggregated input of the recommendation engine.
// All metrics are in [0,1].
type AnalysisSummary struct {
	FrontUndersteer         float64 `json:"front_understeer" yaml:"front_understeer"`
	RearOversteer           float64 `json:"rear_oversteer" yaml:"rear_oversteer"`
	RearWheelSlip           float64 `json:"rear_wheel_slip" yaml:"rear_wheel_slip"`
	FrontLockupFrequency    float64 `json:"front_lockup_frequency" yaml:"front_lockup_frequency"`
	CornerEntryUndersteer   float64 `json:"corner_entry_understeer" yaml:"corner_entry_understeer"`
	CornerExitOversteer     float64 `json:"corner_exit_oversteer" yaml:"corner_exit_oversteer"`
	StraightLineInstability float64 `json:"straight_line_instability" yaml:"straight_line_instability"`
	TireWearImbalance       float64 `json:"tire_wear_imbalance" yaml:"tire_wear_imbalance"`
	CornerEntryInstability  float64 `json:"corner_entry_instability" yaml:"corner_entry_instability"`
	CornerExitTraction      float64 `json:"corner_exit_traction" yaml:"corner_exit_traction"`
	FrontBrakeLockup        float64 `json:"front_brake_lockup" yaml:"front_brake_lockup"`
	RearBrakeLockup         float64 `json:"rear_brake_lockup" yaml:"rear_brake_lockup"`
	OverallBalance          Balance `json:"overall_balance" yaml:"overall_balance"`
}

// NeutralSummary returns a summary without any findings: all problem metrics 0,
// full exit traction and a neutral balance.
func NeutralSummary() AnalysisSummary {
	return AnalysisSummary{CornerExitTraction: 1, OverallBalance: Neutral}
}
