package splitters

// CharacterSplitter cuts text into fixed-size windows with a fixed overlap,
// measured in runes. Successive chunks advance by Size-Overlap runes, so each
// chunk shares its trailing Overlap runes with the next one.
type CharacterSplitter struct {
	Size    int
	Overlap int
}

// NewCharacterSplitter creates a splitter. Overlap must be smaller than Size.
func NewCharacterSplitter(size, overlap int) *CharacterSplitter {
	return &CharacterSplitter{Size: size, Overlap: overlap}
}

// Split returns the chunks of text in order. Empty input yields no chunks.
// Splitting the same text twice yields identical chunks.
func (s *CharacterSplitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= s.Size {
		return []string{text}
	}

	step := s.Size - s.Overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.Size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
