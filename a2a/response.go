package a2a

import "strings"

// Sentinel values returned by ExtractResponseText when the reply carries no
// usable agent text. The three cases are deliberately distinct strings so a
// caller (or a human reading the output) can tell which shape the reply had.
const (
	// NoResponseText is returned when the reply history is empty.
	NoResponseText = "(no response)"
	// NoAgentResponseText is returned when no history entry is agent-authored.
	NoAgentResponseText = "(no agent response)"
	// NoTextResponseText is returned when the latest agent entry has no text parts.
	NoTextResponseText = "(no text response)"
)

// ExtractResponseText reduces a send reply to the agent's latest text.
// It scans the history from the most recent entry backward, selects the
// first agent-authored message, and joins its text parts with newlines.
func ExtractResponseText(resp *SendResponse) string {
	history := resp.Result.History
	if len(history) == 0 {
		return NoResponseText
	}

	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != MessageRoleAgent {
			continue
		}
		var texts []string
		for _, part := range history[i].Parts {
			if tp, ok := part.(TextPart); ok {
				texts = append(texts, tp.Text)
			}
		}
		if len(texts) == 0 {
			return NoTextResponseText
		}
		return strings.Join(texts, "\n")
	}

	return NoAgentResponseText
}
