package services

import (
	"strings"

	"github.com/yukikurage/workmatch-api/internal/constants"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
)

// skillKey is the comparison form of a skill tag
func skillKey(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// NormalizeSkills trims tags, drops empty ones and removes case-insensitive duplicates.
// The first spelling of each tag wins.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, raw := range skills {
		skill := strings.TrimSpace(raw)
		key := strings.ToLower(skill)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	return out
}

func normalizeSkillInput(field string, skills []string) ([]string, error) {
	normalized := NormalizeSkills(skills)
	if len(normalized) > constants.MaxSkillsPerEntity {
		return nil, apierrors.Validation("too many skills", field)
	}
	return normalized, nil
}

// SkillsOverlap reports whether the two tag sets share at least one tag
func SkillsOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		if k := skillKey(s); k != "" {
			set[k] = struct{}{}
		}
	}
	for _, s := range b {
		if _, ok := set[skillKey(s)]; ok {
			return true
		}
	}
	return false
}
