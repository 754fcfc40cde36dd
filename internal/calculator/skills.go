package calculator

import "strings"

// The only built-in skill alias: the Fortress program was renamed PM Connect
// but vendor exports still carry the old name.
const (
	skillAliasFrom = "fortress"
	skillAliasTo   = "PM Connect"
)

// NormalizeSkill trims a skill value and applies the built-in alias.
// Runs before any grouping, matching or display.
func NormalizeSkill(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, skillAliasFrom) {
		return skillAliasTo
	}
	return s
}

// NormalizeSkills normalizes a user-supplied skills-of-interest list:
// trim, alias, drop blanks, dedupe by exact equality keeping first occurrence.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = NormalizeSkill(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
