package tts

import "strings"

// SplitText breaks text into fragments no longer than limit characters,
// preferring sentence boundaries. Network engines reject or garble very
// long inputs, and smaller fragments make Stop more responsive.
func SplitText(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkLimit
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], ". ")
		if cut >= 0 {
			cut++ // keep the period with its sentence
		} else {
			// No sentence boundary; break at the last space instead of
			// mid-word.
			cut = strings.LastIndex(text[:limit], " ")
			if cut <= 0 {
				cut = limit
			}
		}
		chunk := strings.TrimSpace(text[:cut])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
