package cyk

import (
	"context"
	"sync"

	"github.com/dhamidi/cyk/grammar"
)

// RecognizeAll checks every word against the grammar using up to workers
// goroutines. The index is shared read-only; each word gets its own table.
// Results are in the order of words. If ctx is cancelled, words not yet
// started are left false and ctx.Err() is returned.
func (p *Parser) RecognizeAll(ctx context.Context, words []grammar.Word, workers int) ([]bool, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(words) {
		workers = len(words)
	}

	results := make([]bool, len(words))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = p.Recognize(words[idx])
			}
		}()
	}

	var err error
feed:
	for idx := range words {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		logger().Warningf("batch recognition cancelled: %s", err)
	}
	return results, err
}
