package layout

// This file keeps unit conversion helpers shared by geometry setup and the
// rendering backends. Layout math itself is done entirely in points.

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// MmToPoints converts a length in millimeters to points.
func MmToPoints(mm float64) float64 { return mm * MmToPt }

// PointsToMm converts a length in points to millimeters.
func PointsToMm(pt float64) float64 { return pt * PtToMm }
