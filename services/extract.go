package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// EagleView-style report patterns. Each measurement carries a fallback chain;
// extraction never fails for a missing field, it just leaves zero behind.
var (
	totalAreaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Total\s+Roof\s+Area\s*=\s*([\d,]+(?:\.\d+)?)\s*sq\s*ft`),
		regexp.MustCompile(`(?i)Total\s+Area\s+\(All\s+Pitches\)\s*=\s*([\d,]+(?:\.\d+)?)\s*sq\s*ft`),
		regexp.MustCompile(`(?i)Total\s+Square\s+Footage\s*=\s*([\d,]+(?:\.\d+)?)\s*sq\s*ft`),
		regexp.MustCompile(`(?i)Total\s+SF\s*=\s*([\d,]+(?:\.\d+)?)\s*sq\s*ft`),
		regexp.MustCompile(`(?i)Area\s*=\s*([\d,]+(?:\.\d+)?)\s*sq\s*ft`),
	}

	pitchPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Predominant\s+Pitch\s*=\s*(\d+/\d+)`),
		regexp.MustCompile(`(?i)Primary\s+Pitch\s*=\s*(\d+/\d+)`),
		regexp.MustCompile(`(?i)Main\s+Pitch\s*=\s*(\d+/\d+)`),
	}

	lengthPatterns = map[string]*regexp.Regexp{
		"ridges":        regexp.MustCompile(`(?i)(?:Total\s+)?Ridges(?:/Hips)?\s*=\s*([\d.]+)\s*ft`),
		"hips":          regexp.MustCompile(`(?i)(?:Total\s+)?Hips\s*=\s*([\d.]+)\s*ft`),
		"valleys":       regexp.MustCompile(`(?i)(?:Total\s+)?Valleys\s*=\s*([\d.]+)\s*ft`),
		"rakes":         regexp.MustCompile(`(?i)(?:Total\s+)?Rakes[†]?\s*=\s*([\d.]+)\s*ft`),
		"eaves":         regexp.MustCompile(`(?i)(?:Total\s+)?Eaves(?:/Starter)?[‡†]?\s*=\s*([\d.]+)\s*ft`),
		"flashing":      regexp.MustCompile(`(?i)(?:Total\s+)?Flashing\s*=\s*([\d.]+)\s*ft`),
		"step_flashing": regexp.MustCompile(`(?i)(?:Total\s+)?Step\s+flashing\s*=\s*([\d.]+)\s*ft`),
	}

	penetrationPatterns = map[string]*regexp.Regexp{
		"count":     regexp.MustCompile(`(?i)Total\s+Penetrations\s*=\s*(\d+)`),
		"area":      regexp.MustCompile(`(?i)Total\s+Penetrations\s+Area\s*=\s*([\d.]+)\s*sq\s*ft`),
		"perimeter": regexp.MustCompile(`(?i)Total\s+Penetrations\s+Perimeter\s*=\s*([\d.]+)\s*ft`),
	}

	countPattern      = regexp.MustCompile(`\(([1-9][0-9]?)\)`)
	wastePattern      = regexp.MustCompile(`(?i)Suggested\s+Waste(?:\s*%|\s+Percentage)?\s*[:=]?\s*(\d+)\s*%`)
	bareWastePattern  = regexp.MustCompile(`(\d+)\s*%`)
	coordinatePattern = regexp.MustCompile(`(?i)(?:Long|Longitude)\s*[:=]\s*(-?\d+\.\d+).*?(?:Lat|Latitude)\s*[:=]\s*(-?\d+\.\d+)`)
	latFirstPattern   = regexp.MustCompile(`(?i)(?:Lat|Latitude)\s*[:=]\s*(-?\d+\.\d+).*?(?:Long|Longitude)\s*[:=]\s*(-?\d+\.\d+)`)
	pitchRowPattern   = regexp.MustCompile(`^\d+/\d+$`)
	percentRowPattern = regexp.MustCompile(`^([\d.]+)\s*%$`)
	summarySectionPat = regexp.MustCompile(`(?is)Report\s+Summary.*?(?:\n\s*\n|$)`)
	pitchSectionPat   = regexp.MustCompile(`(?is)Areas\s+per\s+Pitch\s*\n(.*?)(?:\n\s*\n|$)`)
)

// ExtractMeasurements parses report text into a measurement snapshot.
// Patterns are tried against the Report Summary section first and fall back
// to the full text; anything still unmatched stays zero. The returned
// DebugInfo names every pattern that matched.
func ExtractMeasurements(text string) RoofMeasurements {
	debug := &DebugInfo{
		ExtractionMethod: "regex",
		TextLength:       len(text),
	}

	summary := text
	if m := summarySectionPat.FindString(text); m != "" {
		summary = m
	}

	var matched []string
	m := RoofMeasurements{Debug: debug}

	if area, pat := firstFloat(totalAreaPatterns, summary, text); pat >= 0 {
		m.TotalArea = area
		matched = append(matched, "total_area")
	}
	if pitch := firstString(pitchPatterns, summary, text); pitch != "" {
		m.PredominantPitch = pitch
		matched = append(matched, "predominant_pitch")
	}

	for key, re := range lengthPatterns {
		length := matchFloat(re, summary, text)
		if length == 0 {
			continue
		}
		lm := LengthMeasurement{Length: length, Count: featureCount(text, key, length)}
		switch key {
		case "ridges":
			m.Ridges = lm
		case "hips":
			m.Hips = lm
		case "valleys":
			m.Valleys = lm
		case "rakes":
			m.Rakes = lm
		case "eaves":
			m.Eaves = lm
		case "flashing":
			m.Flashing = lm
		case "step_flashing":
			m.StepFlashing = lm
		}
		matched = append(matched, key)
	}

	if v := matchFloat(penetrationPatterns["count"], summary, text); v > 0 {
		m.Penetrations = int(v)
		matched = append(matched, "penetrations")
	}
	m.PenetrationsArea = matchFloat(penetrationPatterns["area"], summary, text)
	m.PenetrationsPerimeter = matchFloat(penetrationPatterns["perimeter"], summary, text)

	m.AreasPerPitch = extractAreasPerPitch(text)
	if len(m.AreasPerPitch) > 0 {
		matched = append(matched, "areas_per_pitch")
	}

	m.WastePercentage = extractWastePercentage(summary)
	m.Longitude, m.Latitude = extractCoordinates(text)

	debug.MatchedPatterns = matched
	return m
}

// firstFloat tries each pattern against the summary then the full text and
// returns the first numeric match along with its pattern index (-1 if none).
func firstFloat(patterns []*regexp.Regexp, summary, full string) (float64, int) {
	for i, re := range patterns {
		for _, text := range []string{summary, full} {
			if g := re.FindStringSubmatch(text); g != nil {
				v, err := strconv.ParseFloat(strings.ReplaceAll(g[1], ",", ""), 64)
				if err == nil {
					return v, i
				}
			}
		}
	}
	return 0, -1
}

func firstString(patterns []*regexp.Regexp, summary, full string) string {
	for _, re := range patterns {
		for _, text := range []string{summary, full} {
			if g := re.FindStringSubmatch(text); g != nil {
				return g[1]
			}
		}
	}
	return ""
}

func matchFloat(re *regexp.Regexp, summary, full string) float64 {
	for _, text := range []string{summary, full} {
		if g := re.FindStringSubmatch(text); g != nil {
			v, err := strconv.ParseFloat(strings.ReplaceAll(g[1], ",", ""), 64)
			if err == nil {
				return v
			}
		}
	}
	return 0
}

// featureCount looks for a piece count near a matched length, e.g.
// "Ridges = 100 ft (3)". Reports that list only the total get a count of 1.
func featureCount(text, key string, length float64) int {
	idx := strings.Index(strings.ToLower(text), strings.ReplaceAll(key, "_", " "))
	if idx < 0 {
		idx = strings.Index(strings.ToLower(text), key)
	}
	if idx < 0 {
		return 1
	}

	window := text[idx:]
	if nl := strings.IndexByte(window, '\n'); nl >= 0 {
		window = window[:nl]
	}
	if len(window) > 120 {
		window = window[:120]
	}
	lenStr := strconv.FormatFloat(length, 'f', -1, 64)
	if at := strings.Index(window, lenStr); at >= 0 {
		if g := countPattern.FindStringSubmatch(window[at:]); g != nil {
			n, err := strconv.Atoi(g[1])
			if err == nil {
				return n
			}
		}
	}
	return 1
}

// extractAreasPerPitch parses the report's pitch/area/percentage table. The
// table arrives as interleaved value lines; rows are accepted only when a
// complete pitch+area+percentage triple lines up and the percentages of the
// table sum close to 100.
func extractAreasPerPitch(text string) []PitchArea {
	section := pitchSectionPat.FindStringSubmatch(text)
	if section == nil {
		return nil
	}

	var pitches []string
	var areas, percentages []float64
	for _, line := range strings.Split(section[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case pitchRowPattern.MatchString(line):
			pitches = append(pitches, line)
		case percentRowPattern.MatchString(line):
			g := percentRowPattern.FindStringSubmatch(line)
			if v, err := strconv.ParseFloat(g[1], 64); err == nil {
				percentages = append(percentages, v)
			}
		default:
			if v, err := strconv.ParseFloat(strings.ReplaceAll(line, ",", ""), 64); err == nil {
				areas = append(areas, v)
			}
		}
	}

	n := min(len(pitches), min(len(areas), len(percentages)))
	if n == 0 {
		return nil
	}

	var totalPercent float64
	for _, p := range percentages[:n] {
		totalPercent += p
	}
	if math.Abs(totalPercent-100) > 1 {
		return nil
	}

	out := make([]PitchArea, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, PitchArea{
			Pitch:      pitches[i],
			Area:       areas[i],
			Percentage: percentages[i],
		})
	}
	return out
}

// extractWastePercentage prefers an explicit "Suggested Waste" figure, then
// any bare percentage in the summary, then the default.
func extractWastePercentage(summary string) float64 {
	if g := wastePattern.FindStringSubmatch(summary); g != nil {
		if v, err := strconv.ParseFloat(g[1], 64); err == nil {
			return v
		}
	}
	if g := bareWastePattern.FindStringSubmatch(summary); g != nil {
		if v, err := strconv.ParseFloat(g[1], 64); err == nil && v <= 50 {
			return v
		}
	}
	return DefaultWastePercent
}

func extractCoordinates(text string) (longitude, latitude float64) {
	if g := coordinatePattern.FindStringSubmatch(text); g != nil {
		longitude, _ = strconv.ParseFloat(g[1], 64)
		latitude, _ = strconv.ParseFloat(g[2], 64)
		return longitude, latitude
	}
	if g := latFirstPattern.FindStringSubmatch(text); g != nil {
		latitude, _ = strconv.ParseFloat(g[1], 64)
		longitude, _ = strconv.ParseFloat(g[2], 64)
	}
	return longitude, latitude
}
