// Package advisor supplies the fixed expert-guidance list attached to every
// evaluation run. The guidance is static operator doctrine, not derived from
// the data, and is included purely for report composition.
package advisor

// Recommendations returns the ordered expert-guidance strings.
func Recommendations() []string {
	return []string{
		"Check mud properties for signs of cuttings buildup or influx.",
		"Consider circulating bottoms-up if ROP drops are persistent.",
		"Inspect for stuck pipe conditions if hook load rises during no-ROP periods.",
		"Tune RPM and WOB if vibration levels exceed 25g.",
		"Monitor shaker screen loading if flow and ROP fluctuate rapidly.",
	}
}
