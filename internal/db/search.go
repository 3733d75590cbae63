package db

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a KNN search.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit, with its raw vector distance.
// Entries are ordered by non-decreasing distance.
type SearchEntry struct {
	Key      string
	Distance float64
	Fields   map[string]string
}
