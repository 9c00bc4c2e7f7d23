package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
	"github.com/jobmatcher/matchctl/internal/workflow"
)

const (
	PromptFindMatches  = "Find matches"
	PromptSelectTarget = "Select another target"
	PromptSwitchMode   = "Switch mode"
	PromptSetParams    = "Adjust parameters"
	PromptQuit         = "Quit"

	promptModeCandidate = "Find jobs for a candidate"
	promptModeJob       = "Find candidates for a job"
)

var errExit = errors.New("exit requested")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run AI similarity matching between candidates and jobs",
	Long: "Run AI similarity matching between candidates and jobs.\n" +
		"With --id the command fires a single request; without it an interactive session starts.",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("mode", "m", string(workflow.ModeCandidate), "matching direction: candidate or job")
	matchCmd.Flags().Int("id", 0, "target candidate or job id")
	matchCmd.Flags().IntP("top-k", "k", 0, "number of matches to request (1-50)")
	matchCmd.Flags().IntP("min-similarity", "s", -1, "minimum similarity threshold in percent (0-100)")
}

func match(cmd *cobra.Command) {
	a := newApp()
	a.requireSession()

	ctrl := workflow.NewMatchesController(a.client, a.client, a.logger)
	applyMatchDefaults(a.cfg, ctrl)

	mode := workflow.MatchMode(strings.ToLower(cmd.Flag("mode").Value.String()))
	if mode != workflow.ModeCandidate && mode != workflow.ModeJob {
		a.logger.Fatal("invalid mode", zap.String("mode", string(mode)), zap.String("hint", "use candidate or job"))
	}
	ctrl.SetMode(mode)

	if k, err := cmd.Flags().GetInt("top-k"); err == nil && k > 0 {
		ctrl.SetTopK(k)
	}
	if pct, err := cmd.Flags().GetInt("min-similarity"); err == nil && pct >= 0 {
		ctrl.SetMinSimilarity(pct)
	}

	if id, err := cmd.Flags().GetInt("id"); err == nil && id > 0 {
		matchOnce(a, ctrl, id)
		return
	}

	if err := matchInteractive(a, ctrl); err != nil && !errors.Is(err, errExit) {
		a.logger.Fatal("exiting", zap.Error(err))
	}
}

func applyMatchDefaults(cfg *Config, ctrl *workflow.MatchesController) {
	if cfg.Match == nil {
		return
	}

	if cfg.Match.TopK > 0 {
		ctrl.SetTopK(cfg.Match.TopK)
	}
	if cfg.Match.MinSimilarity > 0 {
		ctrl.SetMinSimilarity(cfg.Match.MinSimilarity)
	}
}

func matchOnce(a *appContext, ctrl *workflow.MatchesController, id int) {
	if err := ctrl.Select(id); err != nil {
		a.logger.Fatal("selecting target", zap.Error(err))
	}

	if err := ctrl.FindMatches(); err != nil {
		a.logger.Fatal("finding matches", zap.String("reason", ctrl.Message()), zap.Error(err))
	}

	renderMatches(ctrl)
}

// matchInteractive is the prompt-driven session: pick a target, request
// matches, adjust and repeat. Mirrors the one-shot path but keeps the
// controller state alive between actions.
func matchInteractive(a *appContext, ctrl *workflow.MatchesController) error {
	a.logger.Info("loading candidates and jobs for selection")

	if err := ctrl.LoadOptions(); err != nil {
		return err
	}

	if err := selectTarget(a, ctrl); err != nil {
		return err
	}

	actions := promptui.Select{
		Label: "Proceed?",
		Items: []string{PromptFindMatches, PromptSelectTarget, PromptSwitchMode, PromptSetParams, PromptQuit},
	}

	for {
		_, action, err := actions.Run()
		if err != nil {
			return err
		}

		if err := handleMatchAction(a, ctrl, action); err != nil {
			return err
		}
	}
}

func handleMatchAction(a *appContext, ctrl *workflow.MatchesController, action string) error {
	switch action {
	case PromptFindMatches:
		if err := ctrl.FindMatches(); err != nil {
			if errors.Is(err, workflow.ErrNoSelection) {
				a.logger.Warn("select a target first")
				return nil
			}
			a.logger.Warn("finding matches failed", zap.String("reason", ctrl.Message()))
			return nil
		}
		renderMatches(ctrl)
		return nil
	case PromptSelectTarget:
		return selectTarget(a, ctrl)
	case PromptSwitchMode:
		if ctrl.Mode() == workflow.ModeCandidate {
			ctrl.SetMode(workflow.ModeJob)
		} else {
			ctrl.SetMode(workflow.ModeCandidate)
		}
		return selectTarget(a, ctrl)
	case PromptSetParams:
		return adjustParams(a, ctrl)
	case PromptQuit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func selectTarget(a *appContext, ctrl *workflow.MatchesController) error {
	candidates, jobs := ctrl.Options()

	var (
		label string
		items []string
	)

	if ctrl.Mode() == workflow.ModeCandidate {
		label = promptModeCandidate
		if candidates != nil {
			items = candidates.Labels()
		}
	} else {
		label = promptModeJob
		if jobs != nil {
			items = jobs.Labels()
		}
	}

	if len(items) == 0 {
		a.logger.Warn("nothing to select in this mode", zap.String("mode", string(ctrl.Mode())))
		return nil
	}

	prompt := promptui.Select{
		Label: label,
		Items: items,
	}

	_, chosen, err := prompt.Run()
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(strings.Split(chosen, " ")[0])
	if err != nil {
		return fmt.Errorf("parsing selected id from %q: %w", chosen, err)
	}

	return ctrl.Select(id)
}

func adjustParams(a *appContext, ctrl *workflow.MatchesController) error {
	topKPrompt := promptui.Prompt{
		Label:    fmt.Sprintf("Number of matches (current %d)", ctrl.TopK()),
		Validate: validateInt(1, 50),
		Default:  strconv.Itoa(ctrl.TopK()),
	}

	value, err := topKPrompt.Run()
	if err != nil {
		return err
	}
	if k, convErr := strconv.Atoi(value); convErr == nil {
		ctrl.SetTopK(k)
	}

	simPrompt := promptui.Prompt{
		Label:    fmt.Sprintf("Minimum similarity %% (current %d)", ctrl.MinSimilarity()),
		Validate: validateInt(0, 100),
		Default:  strconv.Itoa(ctrl.MinSimilarity()),
	}

	value, err = simPrompt.Run()
	if err != nil {
		return err
	}
	if pct, convErr := strconv.Atoi(value); convErr == nil {
		ctrl.SetMinSimilarity(pct)
	}

	a.logger.Info("parameters updated",
		zap.Int("top_k", ctrl.TopK()),
		zap.Int("min_similarity_pct", ctrl.MinSimilarity()),
	)

	return nil
}

func validateInt(min, max int) func(string) error {
	return func(input string) error {
		v, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if v < min || v > max {
			return fmt.Errorf("enter a number between %d and %d", min, max)
		}
		return nil
	}
}

func renderMatches(ctrl *workflow.MatchesController) {
	switch ctrl.Phase() {
	case workflow.MatchesNoMatches:
		fmt.Println("No matches found. Try lowering the minimum similarity threshold.")
		return
	case workflow.MatchesLoaded:
	default:
		return
	}

	matches := ctrl.Matches()
	fmt.Printf("Top %d matches:\n\n", len(matches))

	for i, m := range matches {
		fmt.Printf("%2d. %s  %s\n", i+1, matchHeadline(ctrl.Mode(), m), m.ScoreLabel())
		if m.SkillOverlap != nil {
			renderOverlap(m.SkillOverlap)
		}
		fmt.Println()
	}
}

// matchHeadline names the match target; which fields are populated depends
// on the request direction.
func matchHeadline(mode workflow.MatchMode, m *jobmatcher.Match) string {
	if mode == workflow.ModeCandidate {
		return fmt.Sprintf("%s at %s (%s)", m.JobTitle, m.Company, m.Location)
	}

	return fmt.Sprintf("%s (%s, %.0f years exp)", m.CandidateName, m.Email, m.ExperienceYears)
}

func renderOverlap(o *jobmatcher.SkillOverlap) {
	fmt.Printf("    skill overlap: %s\n", o.Label())
	if len(o.OverlappingSkills) > 0 {
		fmt.Printf("    matching: %s\n", strings.Join(o.OverlappingSkills, ", "))
	}
	if len(o.MissingSkills) > 0 {
		fmt.Printf("    missing:  %s\n", strings.Join(o.MissingSkills, ", "))
	}
}
