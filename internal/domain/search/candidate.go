package search

// Candidate is a single vector index hit, prior to hydration and filtering.
// Candidates arrive ordered by ascending distance (closer = more relevant).
type Candidate struct {
	ProductID int64
	Distance  float64
}
