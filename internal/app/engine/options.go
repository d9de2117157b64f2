package engine

// Options represents configuration options for the Engine.
type Options struct {
	// MatchSweepLimit caps how many top-of-book trades one sweep may execute.
	MatchSweepLimit int
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		MatchSweepLimit: 64,
	}
}
