package cache

import "sync"

// SweepResult is one configuration's outcome from a performance sweep.
type SweepResult struct {
	Config Config
	Stats  Stats
}

// Sweep runs the same access trace against every config in configs
// concurrently and returns one SweepResult per config, in the same order.
// This concurrency is confined to the sweep, which runs outside any
// per-tick pipeline state, so it is safe to fan the trace out across
// goroutines.
func Sweep(trace []int64, configs []Config) []SweepResult {
	results := make([]SweepResult, len(configs))
	var wg sync.WaitGroup
	for i, cfg := range configs {
		wg.Add(1)
		go func(i int, cfg Config) {
			defer wg.Done()
			s := New(cfg)
			for _, offset := range trace {
				s.Access(offset)
			}
			results[i] = SweepResult{Config: cfg, Stats: s.Stats()}
		}(i, cfg)
	}
	wg.Wait()
	return results
}
