package jobmatcher

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

const (
	matchCandidatePath = "/match/candidate/%d"
	matchJobPath       = "/match/job/%d"

	// DefaultTopK is applied when the caller does not ask for a specific
	// number of matches.
	DefaultTopK = 10
)

// MatchParams tune a similarity request. MinSimilarity is the 0-1 fraction
// the backend expects, not the 0-100 percentage shown to users.
type MatchParams struct {
	TopK          int
	MinSimilarity float64
}

// Match is one scored pairing returned by the backend. The populated target
// fields depend on the request direction: job fields when matching a
// candidate to jobs, candidate fields the other way around.
type Match struct {
	CandidateID     int     `json:"candidate_id"`
	JobID           int     `json:"job_id"`
	CandidateName   string  `json:"candidate_name"`
	JobTitle        string  `json:"job_title"`
	Company         string  `json:"company"`
	Location        string  `json:"location"`
	JobType         string  `json:"job_type"`
	Email           string  `json:"email"`
	ExperienceYears float64 `json:"experience_years"`
	SimilarityScore float64 `json:"similarity_score"`
	// SkillOverlap is optional per match; nil means the backend supplied no
	// overlap breakdown and consumers must handle the absence.
	SkillOverlap *SkillOverlap `json:"skill_overlap"`
}

type SkillOverlap struct {
	OverlappingSkills []string `json:"overlapping_skills"`
	MissingSkills     []string `json:"missing_skills"`
	OverlapCount      int      `json:"overlap_count"`
	OverlapPercentage float64  `json:"overlap_percentage"`
}

// ScoreLabel renders the similarity score to one decimal, the precision the
// result listing displays.
func (m *Match) ScoreLabel() string {
	return fmt.Sprintf("%.1f%%", m.SimilarityScore)
}

// Label summarizes the overlap breakdown for display.
func (o *SkillOverlap) Label() string {
	return fmt.Sprintf("%.0f%% (%d skills)", o.OverlapPercentage, o.OverlapCount)
}

// MatchResult is the full response for one matching request. Matches keep
// the backend's ranking order.
type MatchResult struct {
	CandidateID  int
	JobID        int
	TotalMatches int
	Matches      []*Match
	Message      string
}

func (r *MatchResult) Len() int {
	return len(r.Matches)
}

func (c *Client) MatchCandidateToJobs(candidateID int, params MatchParams) (*MatchResult, error) {
	return c.match(fmt.Sprintf(matchCandidatePath, candidateID), params)
}

func (c *Client) MatchJobToCandidates(jobID int, params MatchParams) (*MatchResult, error) {
	return c.match(fmt.Sprintf(matchJobPath, jobID), params)
}

func (c *Client) match(path string, params MatchParams) (*MatchResult, error) {
	if params.TopK <= 0 {
		params.TopK = DefaultTopK
	}

	q := url.Values{}
	q.Set("top_k", strconv.Itoa(params.TopK))
	q.Set("min_similarity", strconv.FormatFloat(params.MinSimilarity, 'f', -1, 64))

	var envelope struct {
		CandidateID  int              `json:"candidate_id"`
		JobID        int              `json:"job_id"`
		TotalMatches int              `json:"total_matches"`
		Matches      []map[string]any `json:"matches"`
		Message      string           `json:"message"`
	}

	if err := c.getJSON(path, q, &envelope, ""); err != nil {
		return nil, err
	}

	// Match items are loosely shaped: the field set depends on the request
	// direction, so they arrive as generic maps and get decoded here.
	var matches []*Match
	cfg := &mapstructure.DecoderConfig{
		Result:           &matches,
		TagName:          "json",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(envelope.Matches); err != nil {
		return nil, fmt.Errorf("decoding matches: %w", err)
	}

	return &MatchResult{
		CandidateID:  envelope.CandidateID,
		JobID:        envelope.JobID,
		TotalMatches: envelope.TotalMatches,
		Matches:      matches,
		Message:      envelope.Message,
	}, nil
}
