package cohort

// GroupKey identifies a demographic subgroup for missingness and bias tables.
type GroupKey struct {
	LunchEligible   bool
	ParentEducation ParentEducation
	Gender          Gender
}

// MissingnessGroup summarizes outcome missingness for one subgroup.
type MissingnessGroup struct {
	Key      GroupKey
	N        int
	NMissing int
	Rate     float64
}

// Census tabulates outcome missingness per subgroup over the prepared
// cohort. Output order is deterministic: education canonical order, then
// lunch eligibility, then gender.
func Census(obs []Observation) []MissingnessGroup {
	counts := map[GroupKey]*MissingnessGroup{}
	for _, o := range obs {
		key := GroupKey{
			LunchEligible:   o.LunchEligible,
			ParentEducation: o.ParentEducation,
			Gender:          o.Gender,
		}
		g, ok := counts[key]
		if !ok {
			g = &MissingnessGroup{Key: key}
			counts[key] = g
		}
		g.N++
		if !o.Score.Valid {
			g.NMissing++
		}
	}

	groups := make([]MissingnessGroup, 0, len(counts))
	for _, key := range OrderedGroupKeys() {
		g, ok := counts[key]
		if !ok {
			continue
		}
		g.Rate = float64(g.NMissing) / float64(g.N)
		groups = append(groups, *g)
	}
	return groups
}

// OrderedGroupKeys enumerates every subgroup combination in report order.
func OrderedGroupKeys() []GroupKey {
	var keys []GroupKey
	for _, edu := range EducationLevels() {
		for _, lunch := range []bool{false, true} {
			for _, gender := range []Gender{GenderFemale, GenderMale} {
				keys = append(keys, GroupKey{
					LunchEligible:   lunch,
					ParentEducation: edu,
					Gender:          gender,
				})
			}
		}
	}
	return keys
}
