package blogservice

const previewLength = 100

// preview truncates content to its first 100 characters plus an ellipsis.
// Content at or under the limit is returned unchanged. Counting is by rune so
// multi-byte content is never split mid-character.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}

	return string(runes[:previewLength]) + "..."
}
