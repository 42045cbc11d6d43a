// Package caserecord contains the pure business logic for case, strategy and scenario records.
// This is part of the Functional Core - no I/O, only pure functions.
package caserecord

import "fmt"

// ID prefixes for ledger records.
const (
	CasePrefix     = "CASE"
	StrategyPrefix = "STRAT"
	ScenarioPrefix = "SCEN"
)

// GenerateID generates a record ID from the current max number.
// The format is PREFIX-XXX where XXX is a zero-padded 3-digit number.
func GenerateID(prefix string, currentMax int) string {
	return fmt.Sprintf("%s-%03d", prefix, currentMax+1)
}

// ParseIDNumber extracts the numeric portion from a record ID.
// Returns -1 if the ID does not carry the given prefix.
func ParseIDNumber(prefix, id string) int {
	var num int
	_, err := fmt.Sscanf(id, prefix+"-%d", &num)
	if err != nil {
		return -1
	}
	return num
}
