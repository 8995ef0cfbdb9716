package spellbook

// DefaultThreshold is the minimum score a candidate must reach to be
// accepted as a match.
const DefaultThreshold = 90

// Match is the best candidate for a query together with its score (0-100).
type Match struct {
	Name  string
	Score int
}

// Resolver finds the stored name that best matches free-text input.
type Resolver interface {
	// Resolve compares query against names ignoring case and returns the
	// highest scoring name. Ties keep the earliest name.
	// Returns ENOMATCH if names is empty or the best score is below the
	// resolver's threshold.
	Resolve(query string, names []string) (*Match, error)
}
