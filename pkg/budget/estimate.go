package budget

// MessageSize returns the approximate character cost of a single
// message: len(role) + len(content), counted in runes. This is a cheap
// heuristic for whatever accounting the provider really does (JSON
// framing, token boundaries); the safety ratio in Config exists to
// absorb the difference.
func MessageSize(m Message) int {
	return runeLen(m.Role) + runeLen(m.Content)
}

// MessagesSize returns the summed MessageSize of a transcript.
func MessagesSize(msgs []Message) int {
	total := 0
	for _, m := range msgs {
		total += MessageSize(m)
	}
	return total
}
