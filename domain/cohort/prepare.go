package cohort

import (
	"strconv"
	"strings"

	"github.com/brendav1/simulation-final/domain/core"
)

// Column names expected in the wide input table. Score and lunch columns are
// year-suffixed (score_2018); demographics are per-student.
const (
	ColStudentID       = "student_id"
	ColGender          = "gender"
	ColParentEducation = "parent_education"
	ColLunch           = "free_reduced_lunch"
	ScorePrefix        = "score_"
)

// PrepareConfig controls reshaping and outcome cleaning.
type PrepareConfig struct {
	Years    []string // year allow-list; rows for other years are discarded
	ScoreMin float64  // scores outside [ScoreMin, ScoreMax] become missing
	ScoreMax float64
}

// DefaultPrepareConfig returns the reference configuration.
func DefaultPrepareConfig() PrepareConfig {
	return PrepareConfig{
		Years:    []string{"2017", "2018", "2019"},
		ScoreMin: 100,
		ScoreMax: 3000,
	}
}

// CoerceIndicator maps boolean-like encodings to an indicator value.
// Anything outside {1,"1",true,0,"0",false} is the missing sentinel (ok=false).
func CoerceIndicator(raw string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	default:
		return false, false
	}
}

// CoerceGender normalizes a raw gender value. Unrecognized values are missing.
func CoerceGender(raw string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m":
		return GenderMale, true
	case "female", "f":
		return GenderFemale, true
	default:
		return "", false
	}
}

// CoerceEducation matches a raw value against the canonical six levels,
// ignoring case and surrounding whitespace.
func CoerceEducation(raw string) (ParentEducation, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	for _, level := range EducationLevels() {
		if norm == strings.ToLower(string(level)) {
			return level, true
		}
	}
	return "", false
}

// CoerceScore parses an assessment score and applies the plausibility range.
// Unparseable or out-of-range values map to the missing sentinel; this is a
// recovered data-quality condition, never an error.
func CoerceScore(raw string, min, max float64) Score {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return MissingScore()
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return MissingScore()
	}
	if v < min || v > max {
		return MissingScore()
	}
	return SomeScore(v)
}

// Prepare reshapes a wide student table into long-form observations: one
// record per student-year for the allow-listed years. Rows with missing
// gender, parent education, or lunch eligibility are dropped from the
// modeling cohort entirely; missing outcomes are kept (they feed the
// missingness analysis and are imputed later).
func Prepare(tbl *RawTable, cfg PrepareConfig) ([]Observation, error) {
	if tbl == nil || len(tbl.Rows) == 0 {
		return nil, core.ErrEmptyCohort
	}
	for _, col := range []string{ColGender, ColParentEducation, ColLunch} {
		if !tbl.HasColumn(col) {
			return nil, core.NewColumnError(col)
		}
	}

	scoreYears := make([]string, 0, len(cfg.Years))
	for _, year := range cfg.Years {
		if tbl.HasColumn(ScorePrefix + year) {
			scoreYears = append(scoreYears, year)
		}
	}
	if len(scoreYears) == 0 {
		return nil, core.NewColumnError(ScorePrefix + strings.Join(cfg.Years, "|"))
	}

	var obs []Observation
	for _, row := range tbl.Rows {
		gender, ok := CoerceGender(row[ColGender])
		if !ok {
			continue
		}
		education, ok := CoerceEducation(row[ColParentEducation])
		if !ok {
			continue
		}

		for _, year := range scoreYears {
			lunchRaw := row[ColLunch]
			// Per-year eligibility overrides the base column when present.
			if yearly, exists := row[ColLunch+"_"+year]; exists && strings.TrimSpace(yearly) != "" {
				lunchRaw = yearly
			}
			lunch, ok := CoerceIndicator(lunchRaw)
			if !ok {
				continue
			}

			obs = append(obs, Observation{
				StudentID:       strings.TrimSpace(row[ColStudentID]),
				Year:            year,
				Gender:          gender,
				ParentEducation: education,
				LunchEligible:   lunch,
				Score:           CoerceScore(row[ScorePrefix+year], cfg.ScoreMin, cfg.ScoreMax),
			})
		}
	}

	if len(obs) == 0 {
		return nil, core.ErrEmptyCohort
	}
	return obs, nil
}
