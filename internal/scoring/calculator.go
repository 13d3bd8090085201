package scoring

import (
	"time"

	"github.com/hireloop/hireloop/internal/models"
)

// ComputeVersion tags every score row with the formula revision that
// produced it, so cached values can be told apart after a formula change.
const ComputeVersion = "v1"

// Composite weights for the absolute candidate score.
const (
	weightSkill      = 0.40
	weightAcademic   = 0.25
	weightExperience = 0.25
	weightPreference = 0.10
)

// Composite weights for the pairwise match score.
const (
	weightSkillMatch      = 0.4
	weightAcademicFit     = 0.2
	weightExperienceMatch = 0.3
	weightPreferenceFit   = 0.1
)

// baselinePreferenceFit stands in for real preference-to-posting alignment
// (location, industry, work mode), which is not modeled yet. Changing it
// reshuffles every ranking, so it stays a single named constant.
const baselinePreferenceFit = 0.7

// daysPerMonth converts elapsed days to fractional months (mean Gregorian
// month, 365.25/12).
const daysPerMonth = 30.4375

// ComputeCandidateMetrics computes the absolute, posting-independent quality
// score for a candidate. It is pure and total: sparse input yields low
// scores, never an error. now anchors open-ended experience records; passing
// it in keeps the function deterministic for a fixed input.
func ComputeCandidateMetrics(s models.CandidateSnapshot, now time.Time) models.CandidateMetrics {
	skill := clamp100(skillScore(s.Skills))
	academic := clamp100(academicScore(s.GPA, s.CompletedCourses))
	experience := clamp100(experienceScore(s.Experiences, s.ProjectCount, now))
	preference := clamp100(preferenceScore(s.Preferences))

	hireability := clamp100(skill*weightSkill +
		academic*weightAcademic +
		experience*weightExperience +
		preference*weightPreference)

	return models.CandidateMetrics{
		CandidateID:      s.CandidateID,
		SkillScore:       skill,
		AcademicScore:    academic,
		ExperienceScore:  experience,
		PreferenceScore:  preference,
		HireabilityScore: hireability,
		ComputeVersion:   ComputeVersion,
		LastComputed:     now,
	}
}

// ComputeMatchScore computes the pairwise fit between one candidate and one
// posting. All factors and the total are expressed on the 0-100 scale.
func ComputeMatchScore(c models.CandidateSnapshot, p models.PostingSnapshot) models.MatchScore {
	skill := skillMatch(c.Skills, p.Skills)
	academic := academicFit(c.GPA, p.GPAThreshold)
	experience := experienceMatch(len(c.Experiences), c.ProjectCount)
	preference := baselinePreferenceFit

	total := skill*weightSkillMatch +
		academic*weightAcademicFit +
		experience*weightExperienceMatch +
		preference*weightPreferenceFit

	return models.MatchScore{
		CandidateID:     c.CandidateID,
		PostingID:       p.PostingID,
		SkillMatch:      clamp100(skill * 100),
		AcademicFit:     clamp100(academic * 100),
		ExperienceMatch: clamp100(experience * 100),
		PreferenceFit:   clamp100(preference * 100),
		TotalScore:      clamp100(total * 100),
		ComputeVersion:  ComputeVersion,
	}
}

// skillScore: each skill contributes proficiency/5 plus up to half a point
// for years of practice, normalized so a full-marks skill list scores 100.
func skillScore(skills []models.SkillSnapshot) float64 {
	if len(skills) == 0 {
		return 0
	}
	var sum float64
	for _, sk := range skills {
		years := sk.YearsOfExperience / 5
		if years > 1 {
			years = 1
		}
		sum += float64(sk.Proficiency)/5 + years*0.5
	}
	return 100 * sum / (float64(len(skills)) * 1.5)
}

// academicScore: up to 60 points from GPA, up to 40 from course volume.
func academicScore(gpa *float64, completedCourses int) float64 {
	var score float64
	if gpa != nil {
		score += (*gpa / 4.0) * 60
	}
	courses := float64(completedCourses) / 20
	if courses > 1 {
		courses = 1
	}
	return score + courses*40
}

// experienceScore: up to 70 points from total months across records (two
// years saturates), up to 30 from project volume.
func experienceScore(periods []models.ExperiencePeriod, projectCount int, now time.Time) float64 {
	var months float64
	for _, p := range periods {
		end := now
		if p.EndDate != nil {
			end = *p.EndDate
		}
		if end.After(p.StartDate) {
			months += end.Sub(p.StartDate).Hours() / 24 / daysPerMonth
		}
	}
	tenure := months / 24
	if tenure > 1 {
		tenure = 1
	}
	projects := float64(projectCount) / 5
	if projects > 1 {
		projects = 1
	}
	return tenure*70 + projects*30
}

// preferenceScore: average declared priority, normalized to 100.
func preferenceScore(prefs []models.PreferenceSnapshot) float64 {
	if len(prefs) == 0 {
		return 0
	}
	var sum float64
	for _, p := range prefs {
		sum += float64(p.Priority) / 5
	}
	return 100 * sum / float64(len(prefs))
}

// skillMatch: importance-weighted average of how well the candidate covers
// each skill the posting declares. A posting with no declared skills cannot
// discriminate, so it gets the neutral 0.5.
func skillMatch(candidate []models.SkillSnapshot, wanted []models.PostingSkillSnapshot) float64 {
	if len(wanted) == 0 {
		return 0.5
	}

	held := make(map[string]int, len(candidate))
	for _, sk := range candidate {
		held[sk.SkillID] = sk.Proficiency
	}

	var weighted, totalWeight float64
	for _, w := range wanted {
		totalWeight += float64(w.ImportanceWeight)
		if prof, ok := held[w.SkillID]; ok {
			weighted += float64(w.ImportanceWeight) * float64(prof) / 5
		}
	}
	if totalWeight == 0 {
		return 0.5
	}
	return weighted / totalWeight
}

// academicFit: hard gate against the posting threshold when one is set,
// otherwise a soft GPA gradient. Missing GPA is neutral.
func academicFit(gpa, threshold *float64) float64 {
	if gpa == nil {
		return 0.5
	}
	if threshold != nil {
		if *gpa >= *threshold {
			return 1.0
		}
		return 0.3
	}
	fit := *gpa / 4.0
	if fit > 1 {
		fit = 1
	}
	return fit
}

// experienceMatch: step function over record count with projects counted
// at half weight.
func experienceMatch(recordCount, projectCount int) float64 {
	volume := float64(recordCount) + float64(projectCount)*0.5
	switch {
	case volume >= 3:
		return 1.0
	case volume >= 2:
		return 0.8
	case volume >= 1:
		return 0.6
	default:
		return 0.3
	}
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
