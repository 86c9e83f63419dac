// Package wordcount counts whitespace-delimited words.
//
// DESIGN: Count is pure and allocation-light. CountVault fans document reads
// out to a small pool and sums the results; addition is order independent so
// documents may complete in any order.
package wordcount

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/j2h4u/beeminder-wordcount/internal/host"
)

// DefaultReaders is the number of concurrent document reads in CountVault.
const DefaultReaders = 4

// Count returns the number of non-empty, whitespace-separated tokens in text.
// Runs of whitespace (spaces, tabs, newlines) count as a single separator.
func Count(text string) int {
	return len(strings.Fields(text))
}

// CountVault reads every document in the vault and returns the summed word count.
// The first read error aborts the count.
func CountVault(ctx context.Context, vault host.Vault) (int, error) {
	docs, err := vault.Documents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list documents in vault %q: %w", vault.Name(), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan host.Document)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		total    int
		firstErr error
	)

	readers := DefaultReaders
	if len(docs) < readers {
		readers = len(docs)
	}
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				content, err := vault.Read(ctx, doc)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = fmt.Errorf("failed to read %s: %w", doc.Path, err)
						cancel()
					}
				} else {
					total += Count(content)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, doc := range docs {
		select {
		case jobs <- doc:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return 0, firstErr
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	log.Debug().
		Str("vault", vault.Name()).
		Int("documents", len(docs)).
		Int("words", total).
		Msg("vault counted")
	return total, nil
}
