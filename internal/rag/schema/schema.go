package schema

// Metadata keys attached to every indexed chunk. The keys mirror what the
// vector store persists, so the online and offline paths stay in agreement.
const (
	// MetadataKeySource is the object-store key the chunk was derived from.
	MetadataKeySource = "source"
	// MetadataKeyChunkIndex is the 0-based position of the chunk within its document.
	MetadataKeyChunkIndex = "chunk_index"
	// MetadataKeyTotalChunks is the number of chunks produced from the same document.
	MetadataKeyTotalChunks = "total_chunks"
	// MetadataKeyText holds the chunk text, capped at MaxStoredTextLen characters.
	MetadataKeyText = "text"
	// MetadataKeyRegion and MetadataKeyCountry are derived from aacrao/<region>/<country>.txt keys.
	MetadataKeyRegion  = "region"
	MetadataKeyCountry = "country"
	// MetadataKeyDocumentType and MetadataKeyCategory are derived from regulation-prefixed keys.
	MetadataKeyDocumentType = "document_type"
	MetadataKeyCategory     = "category"
)

// MaxStoredTextLen bounds how much chunk text is stored as metadata.
// The full chunk may be longer; only this prefix is persisted.
const MaxStoredTextLen = 1000

// IndexEntry is one upsertable record: a stable id, its embedding, and the
// metadata describing where the chunk came from. Re-ingesting a document
// with unchanged chunk boundaries produces identical ids, so upserts
// overwrite rather than duplicate.
type IndexEntry struct {
	ID       string
	Vector   []float32
	Metadata map[string]interface{}
}

// QueryMatch is one nearest-neighbour result, ranked by descending Score.
type QueryMatch struct {
	ID       string
	Score    float32
	Metadata map[string]interface{}
}
