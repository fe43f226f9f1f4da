package pipeline

import (
	"fmt"
	"path"
	"strings"

	"askmira/internal/rag/schema"
)

// chunkID builds the stable id for one chunk: the object key with every "/"
// replaced by "_", followed by the chunk index. The same key and index always
// map to the same id, which is what makes re-ingestion overwrite in place.
func chunkID(key string, index int) string {
	return fmt.Sprintf("%s_%d", strings.ReplaceAll(key, "/", "_"), index)
}

// deriveMetadata builds the document-level metadata for an object key.
// Keys under aacrao/<region>/<country>.txt get region and country fields;
// keys under the regulation prefixes are tagged as regulations with a
// category taken from the path segment after the prefix.
func deriveMetadata(key string) map[string]interface{} {
	md := map[string]interface{}{
		schema.MetadataKeySource: key,
	}

	parts := strings.Split(key, "/")
	if len(parts) == 3 && parts[0] == "aacrao" {
		md[schema.MetadataKeyRegion] = parts[1]
		md[schema.MetadataKeyCountry] = docStem(parts[2])
		return md
	}

	for _, prefix := range []string{"FCE Regulations TXT/", "FCE Regulations/"} {
		if strings.HasPrefix(key, prefix) {
			md[schema.MetadataKeyDocumentType] = "regulation"
			rest := strings.TrimPrefix(key, prefix)
			if i := strings.Index(rest, "/"); i >= 0 {
				md[schema.MetadataKeyCategory] = rest[:i]
			} else {
				md[schema.MetadataKeyCategory] = docStem(rest)
			}
			return md
		}
	}

	return md
}

// docStem strips the extension from a file name.
func docStem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// storedText caps the chunk text persisted as metadata.
func storedText(chunk string) string {
	runes := []rune(chunk)
	if len(runes) <= schema.MaxStoredTextLen {
		return chunk
	}
	return string(runes[:schema.MaxStoredTextLen])
}
