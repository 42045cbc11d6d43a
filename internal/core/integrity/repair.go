package integrity

import (
	"cmp"
	"slices"
)

// Case is the slice of a case record the integrity rules look at.
type Case struct {
	ID           string
	DocketNumber string
	UpdatedAt    int64 // unix millis, larger is more recent
}

// Strategy is the slice of a strategy record the integrity rules look at.
type Strategy struct {
	ID     string
	CaseID string
}

// DuplicateGroup is a set of cases whose dockets normalize to the same key.
type DuplicateGroup struct {
	Key        string
	Canonical  Case
	Duplicates []Case // ranked, best first; all of these get removed
}

// RepairResult is the snapshot produced by RepairCasesAndStrategies.
type RepairResult struct {
	Cases           []Case            // input order, duplicates removed
	Strategies      []Strategy        // every strategy, post-reassignment
	RemovedCaseIDs  []string          // group order, then rank order
	MovedStrategies map[string]string // strategy ID -> new case ID
	MergedInto      map[string]string // removed case ID -> canonical case ID
}

// Changed reports whether the repair found anything to fix.
func (r RepairResult) Changed() bool {
	return len(r.RemovedCaseIDs) > 0
}

// FindDuplicateGroups partitions cases by normalized docket and returns every
// group with two or more members, canonical case first.
//
// Ranking inside a group: most linked strategies, then most recent UpdatedAt,
// then input order. Strategy counts come from the snapshot as given, once,
// so one group's outcome never depends on another's.
//
// Groups come back in order of first appearance of their key. Cases with an
// empty key are never grouped. A case ID repeated within a group counts once.
func FindDuplicateGroups(cases []Case, strategies []Strategy) []DuplicateGroup {
	counts := strategyCounts(strategies)

	var keys []string
	members := make(map[string][]Case)
	seen := make(map[string]map[string]bool)
	for _, c := range cases {
		key := NormalizeDocket(c.DocketNumber)
		if key == "" {
			continue
		}
		if _, ok := members[key]; !ok {
			keys = append(keys, key)
			seen[key] = make(map[string]bool)
		}
		if seen[key][c.ID] {
			continue
		}
		seen[key][c.ID] = true
		members[key] = append(members[key], c)
	}

	var groups []DuplicateGroup
	for _, key := range keys {
		group := members[key]
		if len(group) < 2 {
			continue
		}

		ranked := slices.Clone(group)
		slices.SortStableFunc(ranked, func(a, b Case) int {
			if c := cmp.Compare(counts[b.ID], counts[a.ID]); c != 0 {
				return c
			}
			return cmp.Compare(b.UpdatedAt, a.UpdatedAt)
		})

		groups = append(groups, DuplicateGroup{
			Key:        key,
			Canonical:  ranked[0],
			Duplicates: ranked[1:],
		})
	}

	return groups
}

// RepairCasesAndStrategies merges duplicate cases into their canonical case.
//
// All strategies owned by a removed case are re-pointed to the canonical case
// before any case is dropped, so the only orphans in the result are the ones
// that were already orphaned in the input. Inputs are not modified.
func RepairCasesAndStrategies(cases []Case, strategies []Strategy) RepairResult {
	groups := FindDuplicateGroups(cases, strategies)

	result := RepairResult{
		RemovedCaseIDs:  []string{},
		MovedStrategies: make(map[string]string),
		MergedInto:      make(map[string]string),
	}

	for _, g := range groups {
		for _, dup := range g.Duplicates {
			result.RemovedCaseIDs = append(result.RemovedCaseIDs, dup.ID)
			result.MergedInto[dup.ID] = g.Canonical.ID
		}
	}

	result.Strategies = make([]Strategy, len(strategies))
	for i, s := range strategies {
		if target, ok := result.MergedInto[s.CaseID]; ok {
			s.CaseID = target
			result.MovedStrategies[s.ID] = target
		}
		result.Strategies[i] = s
	}

	result.Cases = make([]Case, 0, len(cases))
	for _, c := range cases {
		if _, removed := result.MergedInto[c.ID]; removed {
			continue
		}
		result.Cases = append(result.Cases, c)
	}

	return result
}

// DetectOrphanStrategies returns the strategies whose CaseID matches no case,
// in input order. Read-only diagnostic; repair never touches orphans.
func DetectOrphanStrategies(cases []Case, strategies []Strategy) []Strategy {
	ids := make(map[string]bool, len(cases))
	for _, c := range cases {
		ids[c.ID] = true
	}

	orphans := []Strategy{}
	for _, s := range strategies {
		if !ids[s.CaseID] {
			orphans = append(orphans, s)
		}
	}
	return orphans
}

func strategyCounts(strategies []Strategy) map[string]int {
	counts := make(map[string]int)
	for _, s := range strategies {
		counts[s.CaseID]++
	}
	return counts
}
