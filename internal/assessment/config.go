package assessment

// Config carries the content-configured knobs of the engine. Phase sizes and
// narrowing counts are authored alongside the question bank, never hardcoded.
type Config struct {
	// TopDomains is how many phase-1 domains survive into phase 2.
	TopDomains int
	// Shortlist is how many strengths survive into phase 3.
	Shortlist int
	// Ranked is the length of the final ranked list.
	Ranked int
}

func DefaultConfig() Config {
	return Config{TopDomains: 2, Shortlist: 7, Ranked: 5}
}
