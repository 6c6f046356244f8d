package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"career-autopilot/internal/model"
	"career-autopilot/internal/service"
	"career-autopilot/internal/sla"
	"career-autopilot/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// skillVocabulary is the controlled extraction vocabulary: canonical skill ->
// surface forms matched in job-description text. Matching is case-insensitive
// on word boundaries so "sql" does not fire inside "mysql".
var skillVocabulary = map[string][]string{
	"a/b testing":          {"a/b testing", "ab testing", "a/b tests", "experimentation"},
	"sql":                  {"sql"},
	"sql window functions": {"sql window functions", "window functions"},
	"product analytics":    {"product analytics", "amplitude", "ga4", "google analytics"},
	"roadmapping":          {"roadmap", "roadmapping", "roadmaps"},
	"stakeholder management": {"stakeholder management", "stakeholders"},
	"agile":                {"agile", "scrum", "kanban"},
	"user research":        {"user research", "customer interviews", "user interviews"},
	"okrs":                 {"okr", "okrs"},
	"api design":           {"api design", "rest apis", "restful apis", "apis"},
	"data pipelines":       {"data pipelines", "etl"},
	"machine learning":     {"machine learning", "ml models", "llm", "llms"},
	"cloud platforms":      {"aws", "azure", "gcp", "cloud platforms"},
	"go-to-market":         {"go-to-market", "gtm", "product launch"},
	"pricing":              {"pricing", "monetization"},
	"marketplace metrics":  {"marketplace metrics", "liquidity", "take rate"},
	"program management":   {"program management", "cross-functional programs"},
	"risk management":      {"risk management", "risk register"},
}

type skillMatcher struct {
	canonical string
	patterns  []*regexp.Regexp
}

var skillMatchers []skillMatcher

func init() {
	canonicals := make([]string, 0, len(skillVocabulary))
	for canonical := range skillVocabulary {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)
	for _, canonical := range canonicals {
		m := skillMatcher{canonical: canonical}
		for _, alias := range skillVocabulary[canonical] {
			m.patterns = append(m.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(alias)+`\b`))
		}
		skillMatchers = append(skillMatchers, m)
	}
}

// ExtractSkills returns the vocabulary skills present in the text, sorted.
func ExtractSkills(text string) []string {
	var found []string
	for _, m := range skillMatchers {
		for _, p := range m.patterns {
			if p.MatchString(text) {
				found = append(found, m.canonical)
				break
			}
		}
	}
	return found
}

type BulletRewrite struct {
	Original  string `json:"original"`
	Rewritten string `json:"rewritten"`
	Rationale string `json:"rationale"`
}

type ApplyPackResult struct {
	JobID            string          `json:"job_id"`
	MatchScore       float64         `json:"match_score"`
	MissingSkills    []string        `json:"missing_skills"`
	RewrittenBullets []BulletRewrite `json:"rewritten_bullets"`
	CoverLetter      string          `json:"cover_letter"`
	Risks            []string        `json:"risks"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

type ApplyPackUsecase struct {
	jobs     JobStore
	packs    ApplyPackStore
	profiles ProfileStore
	activity ActivityStore
	drafter  service.DrafterInterface
	logger   *zap.Logger
	now      func() time.Time
}

func NewApplyPackUsecase(jobs JobStore, packs ApplyPackStore, profiles ProfileStore, activity ActivityStore, drafter service.DrafterInterface, logger *zap.Logger) *ApplyPackUsecase {
	return &ApplyPackUsecase{
		jobs:     jobs,
		packs:    packs,
		profiles: profiles,
		activity: activity,
		drafter:  drafter,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate builds the full match package for a job against a job-description
// text. The result is assembled completely before anything is persisted, so a
// failed drafting step leaves no partial pack behind.
func (uc *ApplyPackUsecase) Generate(ctx context.Context, jobID, jdText string) (*ApplyPackResult, error) {
	if strings.TrimSpace(jdText) == "" {
		return nil, util.NewValidationError("invalid apply-pack request", map[string]string{
			"jd_text": "jd_text is required",
		})
	}

	job, err := uc.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError(fmt.Sprintf("job %s not found", jobID))
		}
		return nil, err
	}

	profile, err := uc.profiles.FindByTrack(job.Track)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewValidationError("invalid apply-pack request", map[string]string{
				"track": fmt.Sprintf("no profile stored for track %s", job.Track),
			})
		}
		return nil, err
	}

	var profileSkills []string
	if err := json.Unmarshal([]byte(profile.Skills), &profileSkills); err != nil {
		return nil, fmt.Errorf("corrupt skills for track %s: %w", job.Track, err)
	}
	var bulletBank []string
	if err := json.Unmarshal([]byte(profile.Bullets), &bulletBank); err != nil {
		return nil, fmt.Errorf("corrupt bullet bank for track %s: %w", job.Track, err)
	}

	extracted := ExtractSkills(jdText)
	matched, missing := splitSkills(extracted, profileSkills)
	score := matchScore(len(matched), len(extracted))

	bullets := rewriteBullets(bulletBank, matched, extracted)

	leadBullet := ""
	if len(bullets) > 0 {
		leadBullet = bullets[0].Rewritten
	}
	coverLetter, err := uc.drafter.DraftCoverLetter(ctx, service.DraftRequest{
		Company:       job.Company,
		Role:          job.Role,
		Track:         job.Track,
		LeadBullet:    leadBullet,
		MatchedSkills: matched,
	})
	if err != nil {
		return nil, util.NewGenerationError("cover letter drafting failed", err)
	}

	risks := deriveRisks(score, missing, sla.Classify(job.ApplyBy, uc.now().UTC()))

	result := &ApplyPackResult{
		JobID:            job.JobID,
		MatchScore:       score,
		MissingSkills:    missing,
		RewrittenBullets: bullets,
		CoverLetter:      coverLetter,
		Risks:            risks,
		GeneratedAt:      uc.now().UTC(),
	}

	if err := uc.persist(result); err != nil {
		return nil, err
	}

	detail, _ := json.Marshal(map[string]any{"match_score": score, "missing_skills": missing})
	uc.recordActivity(job.JobID,
		fmt.Sprintf("Apply pack for %s at %s scored %.2f", job.Role, job.Company, score),
		string(detail))
	uc.logger.Info("apply pack generated",
		zap.String("job_id", job.JobID),
		zap.Float64("match_score", score),
		zap.Int("missing_skills", len(missing)))

	return result, nil
}

// GetPack returns the stored pack for a job.
func (uc *ApplyPackUsecase) GetPack(jobID string) (*ApplyPackResult, error) {
	pack, err := uc.packs.FindByJobID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError(fmt.Sprintf("no apply pack for job %s", jobID))
		}
		return nil, err
	}
	return unmarshalPack(pack)
}

// splitSkills partitions the extracted skills into matched and missing
// against the profile. Both outputs stay sorted for determinism.
func splitSkills(extracted, profileSkills []string) (matched, missing []string) {
	have := make(map[string]bool, len(profileSkills))
	for _, s := range profileSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}
	for _, s := range extracted {
		if have[s] {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

// matchScore is |matched| / |extracted|: monotonic in both directions and
// saturates at 1.0 only on full coverage. An empty extraction means the JD
// demanded nothing from the vocabulary, which counts as full coverage.
func matchScore(matched, extracted int) float64 {
	if extracted == 0 {
		return 1.0
	}
	return float64(matched) / float64(extracted)
}

func rewriteBullets(bank, matched, extracted []string) []BulletRewrite {
	// Emphasize matched skills; fall back to what the JD asks for when
	// nothing matched, so the rationale still names a motivating skill.
	emphasis := matched
	if len(emphasis) == 0 {
		emphasis = extracted
	}
	if len(emphasis) > 2 {
		emphasis = emphasis[:2]
	}

	bullets := make([]BulletRewrite, 0, len(bank))
	for _, original := range bank {
		if len(emphasis) == 0 {
			bullets = append(bullets, BulletRewrite{
				Original:  original,
				Rewritten: original,
				Rationale: "No vocabulary skills detected in the job description; kept as-is.",
			})
			continue
		}
		skillList := strings.Join(emphasis, " and ")
		bullets = append(bullets, BulletRewrite{
			Original:  original,
			Rewritten: fmt.Sprintf("%s, directly applying %s.", strings.TrimRight(original, "."), skillList),
			Rationale: fmt.Sprintf("Emphasizes %s, which the job description calls for.", skillList),
		})
	}
	return bullets
}

func deriveRisks(score float64, missing []string, classification sla.Classification) []string {
	var risks []string
	if score < 0.6 {
		risks = append(risks, fmt.Sprintf("Match score %.2f is below 0.60; tailor the resume before applying.", score))
	}
	if len(missing) > 0 {
		risks = append(risks, fmt.Sprintf("JD asks for skills not on the profile: %s.", strings.Join(missing, ", ")))
	}
	switch classification {
	case sla.Overdue:
		risks = append(risks, "Application deadline has passed; apply immediately or drop.")
	case sla.DueToday:
		risks = append(risks, "Application deadline is within 24 hours.")
	}
	return risks
}

func (uc *ApplyPackUsecase) persist(result *ApplyPackResult) error {
	missingJSON, _ := json.Marshal(result.MissingSkills)
	bulletsJSON, _ := json.Marshal(result.RewrittenBullets)
	risksJSON, _ := json.Marshal(result.Risks)

	pack := &model.ApplyPack{
		ID:               uuid.New(),
		JobID:            result.JobID,
		MatchScore:       result.MatchScore,
		MissingSkills:    string(missingJSON),
		RewrittenBullets: string(bulletsJSON),
		CoverLetter:      result.CoverLetter,
		Risks:            string(risksJSON),
		CreatedAt:        result.GeneratedAt,
		UpdatedAt:        result.GeneratedAt,
	}
	return uc.packs.Upsert(pack)
}

func unmarshalPack(pack *model.ApplyPack) (*ApplyPackResult, error) {
	result := &ApplyPackResult{
		JobID:       pack.JobID,
		MatchScore:  pack.MatchScore,
		CoverLetter: pack.CoverLetter,
		GeneratedAt: pack.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(pack.MissingSkills), &result.MissingSkills); err != nil {
		return nil, fmt.Errorf("corrupt apply pack %s: %w", pack.JobID, err)
	}
	if err := json.Unmarshal([]byte(pack.RewrittenBullets), &result.RewrittenBullets); err != nil {
		return nil, fmt.Errorf("corrupt apply pack %s: %w", pack.JobID, err)
	}
	if err := json.Unmarshal([]byte(pack.Risks), &result.Risks); err != nil {
		return nil, fmt.Errorf("corrupt apply pack %s: %w", pack.JobID, err)
	}
	return result, nil
}

func (uc *ApplyPackUsecase) recordActivity(jobID, description, detail string) {
	event := &model.ActivityEvent{
		ID:          uuid.New(),
		Type:        model.EventApplyPackGenerated,
		JobID:       jobID,
		Description: description,
		Detail:      detail,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.activity.Append(event); err != nil {
		uc.logger.Error("failed to append activity event", zap.Error(err))
	}
}
