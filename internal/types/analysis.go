package types

// CareerLevel classifies total professional experience into a coarse band.
type CareerLevel string

// Career level constants, ordered by seniority
const (
	CareerEntry     CareerLevel = "entry"
	CareerMid       CareerLevel = "mid"
	CareerSenior    CareerLevel = "senior"
	CareerLead      CareerLevel = "lead"
	CareerExecutive CareerLevel = "executive"
)

// ProfileAnalysis is the structured output of the profile analysis stage.
// It is pipeline-scoped and never persisted on its own.
type ProfileAnalysis struct {
	KeyStrengths      []string    `json:"key_strengths"`
	TechnicalSkills   []string    `json:"technical_skills"`
	SoftSkills        []string    `json:"soft_skills"`
	YearsOfExperience float64     `json:"years_of_experience"`
	CareerLevel       CareerLevel `json:"career_level"`
	Domains           []string    `json:"domains"`
}

// JobAnalysis is the structured output of the job analysis stage.
type JobAnalysis struct {
	RequiredSkills      []string `json:"required_skills"`
	PreferredSkills     []string `json:"preferred_skills"`
	KeyResponsibilities []string `json:"key_responsibilities,omitempty"`
	Qualifications      []string `json:"qualifications,omitempty"`
	ATSKeywords         []string `json:"ats_keywords"`
	SeniorityLevel      string   `json:"seniority_level"`
}

// AllSkills returns required and preferred skills as one list, required first.
func (a *JobAnalysis) AllSkills() []string {
	out := make([]string, 0, len(a.RequiredSkills)+len(a.PreferredSkills))
	out = append(out, a.RequiredSkills...)
	out = append(out, a.PreferredSkills...)
	return out
}

// ExperienceMatch scores one profile experience against the job.
type ExperienceMatch struct {
	ExperienceIndex int      `json:"experience_index"`
	RelevanceScore  float64  `json:"relevance_score"` // 0-100
	MatchingSkills  []string `json:"matching_skills,omitempty"`
}

// MatchAnalysis is the structured output of the matchmaking stage.
// Index fields refer to positions in the source Profile's slices.
type MatchAnalysis struct {
	OverallMatchScore   float64           `json:"overall_match_score"` // 0-100
	ExperienceMatches   []ExperienceMatch `json:"experience_matches"`
	SelectedExperiences []int             `json:"selected_experiences"`
	SelectedSkills      []string          `json:"selected_skills"`
	SelectedEducation   []int             `json:"selected_education"`
	MissingSkills       []string          `json:"missing_skills,omitempty"`
}
