package geometry

import (
	"fmt"
	"math"
)

// UnitsPerFoot is the fixed scale of the drafting surface: 20 linear units
// equal one real-world foot. Persisted and exported geometry is interpreted
// under this same scale.
const UnitsPerFoot = 20.0

// Measurement is a feet/inches value derived from a linear-unit length.
// It is always recomputed from geometry, never edited directly.
type Measurement struct {
	Feet        int     `json:"feet"`
	Inches      int     `json:"inches"`
	TotalInches float64 `json:"totalInches"`
	Display     string  `json:"display"`
}

// MeasurementFromFeet builds a Measurement from a feet value, rounding to the
// nearest whole inch and carrying overflow inches into feet.
func MeasurementFromFeet(feet float64) Measurement {
	totalInches := feet * 12
	whole := int(math.Round(totalInches))
	ft := whole / 12
	in := whole % 12
	display := fmt.Sprintf("%d'", ft)
	if in != 0 {
		display = fmt.Sprintf("%d' %d\"", ft, in)
	}
	return Measurement{
		Feet:        ft,
		Inches:      in,
		TotalInches: totalInches,
		Display:     display,
	}
}

// MeasurementFromUnits converts a linear-unit length at the given scale.
func MeasurementFromUnits(units, unitsPerFoot float64) Measurement {
	return MeasurementFromFeet(units / unitsPerFoot)
}

// FeetToUnits converts a feet value to linear units at the given scale.
func FeetToUnits(feet, unitsPerFoot float64) float64 {
	return feet * unitsPerFoot
}
