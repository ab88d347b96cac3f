// Package telemetry loads drilling-rig sensor CSV exports into a typed,
// timestamp-indexed series. The schema is fixed: the rig historian emits the
// same thirteen columns on every export, so column presence is checked once
// at load time and every absent column is reported in a single error.
package telemetry

// Raw column headers as written by the rig data historian.
const (
	ColDate               = "YYYY/MM/DD"
	ColTime               = "HH:MM:SS"
	ColROP                = "Rate Of Penetration (ft_per_hr)"
	ColPLCROP             = "PLC ROP (ft_per_hr)"
	ColHookLoad           = "Hook Load (klbs)"
	ColStandpipePressure  = "Standpipe Pressure (psi)"
	ColPump1              = "Pump 1 strokes/min (SPM)"
	ColPump2              = "Pump 2 strokes/min (SPM)"
	ColVibeLateral        = "DAS Vibe Lateral Max (g_force)"
	ColVibeAxial          = "DAS Vibe Axial Max (g_force)"
	ColAutoDrillerLimit   = "AutoDriller Limiting (unitless)"
	ColWOBReduce          = "DAS Vibe WOB Reduce (percent)"
	ColRPMReduce          = "DAS Vibe RPM Reduce (percent)"
	ColROPChange          = "ROP Change (ratio)" // derived, appended during rule evaluation
	ColTimestamp          = "Timestamp"          // index column in exported CSVs
	TimestampLayout       = "01/02/2006 15:04:05"
	ExportTimestampLayout = "2006-01-02 15:04:05"
)

// RequiredColumns is the full set of headers a valid export must carry,
// in historian order.
var RequiredColumns = []string{
	ColDate, ColTime,
	ColROP, ColPLCROP,
	ColHookLoad, ColStandpipePressure,
	ColPump1, ColPump2,
	ColVibeLateral, ColVibeAxial,
	ColAutoDrillerLimit,
	ColWOBReduce, ColRPMReduce,
}

// Channel is a named numeric accessor over a Record. The ordered Channels
// list drives statistics, exports and the trends view without per-caller
// string lookups.
type Channel struct {
	Name string
	Get  func(r Record) float64
}

// Channels enumerates the eleven sensor channels in historian order.
// The derived ROP-change channel is held on the Series itself, not here.
var Channels = []Channel{
	{ColROP, func(r Record) float64 { return r.ROP }},
	{ColPLCROP, func(r Record) float64 { return r.PLCROP }},
	{ColHookLoad, func(r Record) float64 { return r.HookLoad }},
	{ColStandpipePressure, func(r Record) float64 { return r.StandpipePressure }},
	{ColPump1, func(r Record) float64 { return r.Pump1 }},
	{ColPump2, func(r Record) float64 { return r.Pump2 }},
	{ColVibeLateral, func(r Record) float64 { return r.VibeLateral }},
	{ColVibeAxial, func(r Record) float64 { return r.VibeAxial }},
	{ColAutoDrillerLimit, func(r Record) float64 { return r.AutoDrillerLimit }},
	{ColWOBReduce, func(r Record) float64 { return r.WOBReduce }},
	{ColRPMReduce, func(r Record) float64 { return r.RPMReduce }},
}
