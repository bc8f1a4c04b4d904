package model

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descPolicyOnce sync.Once
	descPolicy     *bluemonday.Policy
)

// SanitizeDescription strips markup from a free-text model description so it
// is safe to embed in a generated source comment. Newlines collapse to
// spaces; comment terminators are neutralised.
func SanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	cleaned := descriptionSanitizer().Sanitize(trimmed)
	cleaned = strings.ReplaceAll(cleaned, "*/", "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return strings.TrimSpace(cleaned)
}

func descriptionSanitizer() *bluemonday.Policy {
	descPolicyOnce.Do(func() {
		descPolicy = bluemonday.StrictPolicy()
	})
	return descPolicy
}
