package conversation

import "strings"

// Assemble builds the ordered turn sequence the model oracle consumes.
// The oracle contract has no distinct system-role channel, so the
// system prompt is injected as a leading user turn. Prior turns keep
// their exact order; roles other than "user" map to the model role.
// History is passed through unbounded; windowing is the caller's
// responsibility.
func Assemble(systemPrompt string, history []Turn, message string) []Turn {
	turns := make([]Turn, 0, len(history)+2)
	turns = append(turns, Turn{Role: RoleUser, Text: systemPrompt})
	for _, t := range history {
		role := RoleModel
		if t.Role == RoleUser {
			role = RoleUser
		}
		turns = append(turns, Turn{Role: role, Text: t.Text})
	}
	turns = append(turns, Turn{Role: RoleUser, Text: strings.TrimSpace(message)})
	return turns
}
