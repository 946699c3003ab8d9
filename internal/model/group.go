package model

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// StatusGroup is the set of alpha-2 codes sharing one assignment status.
type StatusGroup struct {
	// Identifier is the programmatic name derived from Label.
	Identifier string `json:"identifier"`

	// ClassName is the status class name shared by every code in the group.
	ClassName string `json:"class_name"`

	// Label is the legend label the identifier was derived from.
	Label string `json:"label"`

	// Codes lists the alpha-2 codes in source table order.
	// Empty (not nil) when no code carries the group's class name.
	Codes []string `json:"codes"`
}

// Len returns the number of codes in the group.
func (g StatusGroup) Len() int {
	return len(g.Codes)
}

// Fingerprint returns a hex encoded SHA3-256 digest of the groups.
// The digest covers identifiers and codes in order, so it changes whenever
// the registry content that reaches the generated file changes, and stays
// stable across runs against an unchanged registry.
func Fingerprint(groups []StatusGroup) string {
	h := sha3.New256()
	for _, g := range groups {
		h.Write([]byte(g.Identifier))
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(g.Codes, ",")))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// TotalCodes returns the number of codes across all groups.
func TotalCodes(groups []StatusGroup) int {
	total := 0
	for _, g := range groups {
		total += len(g.Codes)
	}
	return total
}
