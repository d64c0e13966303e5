package services

import (
	"encoding/json"
	"fmt"
)

// LengthMeasurement is a linear roof feature: total length in feet plus how
// many separate pieces make it up. Report feeds sometimes send a bare number
// instead of the object form, so unmarshalling accepts both.
type LengthMeasurement struct {
	Length float64 `json:"length"`
	Count  int     `json:"count"`
}

func (l *LengthMeasurement) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		l.Length = n
		if n > 0 {
			l.Count = 1
		}
		return nil
	}

	type alias LengthMeasurement
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("length measurement: %w", err)
	}
	*l = LengthMeasurement(a)
	return nil
}

// PitchArea is one row of the report's areas-per-pitch table.
type PitchArea struct {
	Pitch      string  `json:"pitch"`
	Area       float64 `json:"area"`
	Percentage float64 `json:"percentage"`
}

// DebugInfo records how extraction went, for troubleshooting bad reports.
type DebugInfo struct {
	ExtractionMethod string   `json:"extraction_method,omitempty"`
	PageCount        int      `json:"page_count,omitempty"`
	TextLength       int      `json:"text_length,omitempty"`
	MatchedPatterns  []string `json:"matched_patterns,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// RoofMeasurements is the snapshot extracted from a measurement report.
// Missing fields stay zero; the pricing engine never fails on an absent
// measurement.
type RoofMeasurements struct {
	TotalArea             float64           `json:"total_area"`
	PredominantPitch      string            `json:"predominant_pitch"`
	Ridges                LengthMeasurement `json:"ridges"`
	Hips                  LengthMeasurement `json:"hips"`
	Valleys               LengthMeasurement `json:"valleys"`
	Rakes                 LengthMeasurement `json:"rakes"`
	Eaves                 LengthMeasurement `json:"eaves"`
	Flashing              LengthMeasurement `json:"flashing"`
	StepFlashing          LengthMeasurement `json:"step_flashing"`
	Penetrations          int               `json:"penetrations,omitempty"`
	PenetrationsArea      float64           `json:"penetrations_area,omitempty"`
	PenetrationsPerimeter float64           `json:"penetrations_perimeter,omitempty"`
	AreasPerPitch         []PitchArea       `json:"areas_per_pitch,omitempty"`
	WastePercentage       float64           `json:"waste_percentage,omitempty"`
	Longitude             float64           `json:"longitude,omitempty"`
	Latitude              float64           `json:"latitude,omitempty"`
	Debug                 *DebugInfo        `json:"debug_info,omitempty"`
}
