package models

import "strings"

// PolicyEntry is one row of a restaurant's order policy: the default
// lead minutes for a mode, applied when no shift carries an override.
type PolicyEntry struct {
	Name        string
	LeadMinutes int
}

// RawPolicyEntry is a policy row as the backend sends it.
type RawPolicyEntry struct {
	PolicyName FlexString `json:"policy_name"`
	PolicyTime FlexInt    `json:"policy_time"`
}

// ParsePolicies converts backend policy rows, keeping whatever names the
// backend uses ("Collection", "Delivery").
func ParsePolicies(raw []RawPolicyEntry) []PolicyEntry {
	out := make([]PolicyEntry, 0, len(raw))
	for _, rp := range raw {
		out = append(out, PolicyEntry{
			Name:        string(rp.PolicyName),
			LeadMinutes: int(rp.PolicyTime),
		})
	}
	return out
}

// PolicyLead returns the restaurant's default lead for a mode, zero when
// the policy has no matching entry.
func PolicyLead(policies []PolicyEntry, mode OrderMode) int {
	for _, p := range policies {
		if strings.EqualFold(p.Name, string(mode)) {
			return p.LeadMinutes
		}
	}
	return 0
}
