package caserecord

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateCaseContext provides context for case creation guards.
type CreateCaseContext struct {
	Title        string
	DocketNumber string
}

// CreateChildContext provides context for creating a strategy or scenario under a case.
type CreateChildContext struct {
	CaseID     string
	CaseExists bool
	Title      string
}

// DeleteCaseContext provides context for case deletion guards.
type DeleteCaseContext struct {
	CaseID        string
	StrategyCount int
	ScenarioCount int
	Force         bool
}

// MoveStrategyContext provides context for moving a strategy between cases.
type MoveStrategyContext struct {
	StrategyID    string
	CurrentCaseID string
	TargetCaseID  string
	TargetExists  bool
}

// CanCreateCase evaluates whether a case can be created.
// Rules:
// - Title is required
// - Docket number may be empty (the case is then left out of duplicate detection)
func CanCreateCase(ctx CreateCaseContext) GuardResult {
	if ctx.Title == "" {
		return GuardResult{Allowed: false, Reason: "case title is required"}
	}
	return GuardResult{Allowed: true}
}

// CanCreateChild evaluates whether a strategy or scenario can be attached to a case.
// Rules:
// - Case must exist
// - Title is required
func CanCreateChild(ctx CreateChildContext) GuardResult {
	if !ctx.CaseExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("case %s not found", ctx.CaseID),
		}
	}
	if ctx.Title == "" {
		return GuardResult{Allowed: false, Reason: "title is required"}
	}
	return GuardResult{Allowed: true}
}

// CanDeleteCase evaluates whether a case can be deleted.
// Rules:
// - A case that still owns strategies or scenarios needs --force
func CanDeleteCase(ctx DeleteCaseContext) GuardResult {
	if ctx.Force {
		return GuardResult{Allowed: true}
	}
	if ctx.StrategyCount > 0 || ctx.ScenarioCount > 0 {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("case %s has %d strategies and %d scenarios. Use --force to delete them too",
				ctx.CaseID, ctx.StrategyCount, ctx.ScenarioCount),
		}
	}
	return GuardResult{Allowed: true}
}

// CanMoveStrategy evaluates whether a strategy can be moved to another case.
// Rules:
// - Target case must exist
// - Target must differ from the current case
func CanMoveStrategy(ctx MoveStrategyContext) GuardResult {
	if !ctx.TargetExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("case %s not found", ctx.TargetCaseID),
		}
	}
	if ctx.TargetCaseID == ctx.CurrentCaseID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("strategy %s already belongs to %s", ctx.StrategyID, ctx.TargetCaseID),
		}
	}
	return GuardResult{Allowed: true}
}
