package budget

// DefaultMarker is appended to truncated text when there is room for it.
const DefaultMarker = "…"

// TruncateText shortens text to at most maxChars runes, appending
// DefaultMarker when at least one real character survives alongside it.
func TruncateText(text string, maxChars int) string {
	return TruncateTextWith(text, maxChars, DefaultMarker)
}

// TruncateTextWith is TruncateText with a caller-chosen marker. The
// result is always at most maxChars runes:
//   - maxChars <= 0 yields "".
//   - Text already within the limit is returned unchanged.
//   - If the marker plus one content character fit, the marker is
//     appended after maxChars-len(marker) characters of text.
//   - Otherwise the text is cut hard at maxChars with no marker.
func TruncateTextWith(text string, maxChars int, marker string) string {
	if maxChars <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	markerLen := runeLen(marker)
	if maxChars >= markerLen+1 {
		return string(runes[:maxChars-markerLen]) + marker
	}
	return string(runes[:maxChars])
}

// BudgetDocument fits a single long string (a document rather than a
// transcript) within the policy's effective budget.
func BudgetDocument(doc string, cfg Config) string {
	return TruncateText(doc, cfg.EffectiveBudget())
}

// ChunkText splits doc into fixed-size character chunks. A chunkSize
// below 1 is treated as 1. An empty doc yields no chunks.
func ChunkText(doc string, chunkSize int) []string {
	if chunkSize < 1 {
		chunkSize = 1
	}
	runes := []rune(doc)
	var chunks []string
	for i := 0; i < len(runes); i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
