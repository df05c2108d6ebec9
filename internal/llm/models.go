package llm

import "strings"

// DefaultUpstreamModel backs any session model with no explicit mapping.
const DefaultUpstreamModel = "gpt-4o-mini"

// modelMap translates the model names sessions are created with into the
// models the upstream provider actually serves.
var modelMap = map[string]string{
	"gemini-2.5-flash": "gpt-4o-mini",
	"gemini-2.5-pro":   "gpt-4o",
	"gemini-2.0-flash": "gpt-4o-mini",
}

// ResolveModel maps a session-facing model name onto an upstream model.
// Unknown or empty names resolve to DefaultUpstreamModel.
func ResolveModel(name string) string {
	if m, ok := modelMap[strings.TrimSpace(name)]; ok {
		return m
	}
	return DefaultUpstreamModel
}
