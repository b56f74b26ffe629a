package templates

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-forge/internal/types"
)

// Affinity scoring constants. Every category starts from a neutral
// base; keyword hits in the job title weigh more than hits in the
// description body.
const (
	baseAffinity     = 50.0
	titleHitBonus    = 15.0
	bodyHitBonus     = 5.0
	formalityBonus   = 10.0
	maxAffinityScore = 100.0
)

// categoryKeywords drive the affinity score between a job posting and
// a template category. Style categories (modern, classic) carry no
// keywords and keep the neutral base.
var categoryKeywords = map[Category][]string{
	CategorySales: {
		"sales", "account executive", "business development", "revenue",
		"quota", "crm", "pipeline", "prospecting",
	},
	CategoryAccounting: {
		"accounting", "accountant", "audit", "tax", "cpa", "bookkeeping",
		"financial reporting", "reconciliation", "payroll",
	},
	CategoryTechnical: {
		"engineer", "developer", "software", "technical", "devops",
		"data", "programmer", "architect", "backend", "frontend",
	},
	CategoryLegal: {
		"legal", "attorney", "lawyer", "counsel", "paralegal",
		"litigation", "compliance", "contracts",
	},
	CategoryManagement: {
		"manager", "director", "head of", "vp", "vice president",
		"chief", "leadership", "management",
	},
}

// formalCategories get a bonus for postings with a formal register.
var formalCategories = map[Category]bool{
	CategoryLegal:      true,
	CategoryAccounting: true,
	CategoryClassic:    true,
}

var formalSignals = []string{"counsel", "partner", "firm", "regulatory", "fiduciary"}

// ScoreForJob computes the 0-100 affinity between a template category
// and a job posting.
func ScoreForJob(category Category, job *types.JobPosting) float64 {
	title := strings.ToLower(job.Title)
	body := strings.ToLower(job.Description)

	score := baseAffinity
	for _, keyword := range categoryKeywords[category] {
		if strings.Contains(title, keyword) {
			score += titleHitBonus
		} else if strings.Contains(body, keyword) {
			score += bodyHitBonus
		}
	}

	if formalCategories[category] {
		for _, signal := range formalSignals {
			if strings.Contains(title, signal) || strings.Contains(body, signal) {
				score += formalityBonus
				break
			}
		}
	}

	if score > maxAffinityScore {
		score = maxAffinityScore
	}
	return score
}

// ScoredTemplate pairs a template with its affinity for one job.
type ScoredTemplate struct {
	*Template
	Score float64 `json:"score"`
}

// RankForJob returns all templates ordered by descending affinity,
// ties broken by ID for stable output.
func (r *Registry) RankForJob(job *types.JobPosting) []ScoredTemplate {
	ranked := make([]ScoredTemplate, 0, len(r.templates))
	for _, template := range r.List() {
		ranked = append(ranked, ScoredTemplate{
			Template: template,
			Score:    ScoreForJob(template.Category, job),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// BestForJob picks the highest-affinity template for a job. Returns
// nil only when the registry is empty.
func (r *Registry) BestForJob(job *types.JobPosting) *Template {
	ranked := r.RankForJob(job)
	if len(ranked) == 0 {
		return nil
	}
	return ranked[0].Template
}
