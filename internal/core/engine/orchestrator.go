package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/domaincomb/domaincomb/internal/core"
	"github.com/domaincomb/domaincomb/internal/core/label"
)

// Checker performs a single-domain registration lookup.
type Checker interface {
	Lookup(ctx context.Context, domain string) core.LookupOutcome
}

// Orchestrator iterates the prefix × suffix combination space, normalizes
// each candidate, and drives valid candidates through the checker. Invalid
// labels bypass the network entirely. Every candidate yields exactly one
// record; the checker absorbs all failures into outcomes, so a batch of N
// candidates always produces N records.
type Orchestrator struct {
	Checker Checker
	Pacer   *Pacer

	// Workers above one enables parallel lookups. Records still land in
	// combination order; only pacing is shared between workers.
	Workers int

	// OnResult, when set, observes each record as it is produced. With
	// parallel workers the observation order follows completion, not
	// combination order.
	OnResult func(record core.ResultRecord)
}

type candidate struct {
	prefix string
	suffix string
}

// Run produces one record per (prefix, suffix) pair in prefix-major,
// suffix-minor order. Empty input sets are a precondition failure reported
// before any lookup is issued.
func (o *Orchestrator) Run(ctx context.Context, prefixes, suffixes []string, tld string) ([]core.ResultRecord, error) {
	if o == nil || o.Checker == nil {
		return nil, errors.New("checker is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(prefixes) == 0 {
		return nil, errors.New("at least one prefix is required")
	}
	if len(suffixes) == 0 {
		return nil, errors.New("at least one suffix is required")
	}

	candidates := make([]candidate, 0, len(prefixes)*len(suffixes))
	for _, prefix := range prefixes {
		for _, suffix := range suffixes {
			candidates = append(candidates, candidate{prefix: prefix, suffix: suffix})
		}
	}

	if o.Workers > 1 {
		return o.runParallel(ctx, candidates, tld), nil
	}

	records := make([]core.ResultRecord, 0, len(candidates))
	for _, cand := range candidates {
		record := o.check(ctx, cand, tld)
		records = append(records, record)
		if o.OnResult != nil {
			o.OnResult(record)
		}
	}
	return records, nil
}

// runParallel fans candidates out over a bounded worker pool. Results are
// written into an indexed slice so the returned order matches the
// sequential reference.
func (o *Orchestrator) runParallel(ctx context.Context, candidates []candidate, tld string) []core.ResultRecord {
	type job struct {
		index int
		cand  candidate
	}

	records := make([]core.ResultRecord, len(candidates))
	jobs := make(chan job)

	var wg sync.WaitGroup
	workers := o.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				record := o.check(ctx, j.cand, tld)
				records[j.index] = record
				if o.OnResult != nil {
					o.OnResult(record)
				}
			}
		}()
	}

	for i, cand := range candidates {
		jobs <- job{index: i, cand: cand}
	}
	close(jobs)
	wg.Wait()

	return records
}

// check resolves one candidate. Pacing applies only ahead of a real network
// call; normalization rejections never claim a request slot.
func (o *Orchestrator) check(ctx context.Context, cand candidate, tld string) core.ResultRecord {
	domain, err := label.Normalize(cand.prefix, cand.suffix, tld)
	if err != nil {
		return core.ResultRecord{
			Domain: label.Display(cand.prefix, cand.suffix, tld),
			Prefix: cand.prefix,
			Suffix: cand.suffix,
			Outcome: core.LookupOutcome{
				Status: core.StatusInvalid,
				Detail: "invalid label",
			},
		}
	}

	o.Pacer.Wait()

	return core.ResultRecord{
		Domain:  domain,
		Prefix:  cand.prefix,
		Suffix:  cand.suffix,
		Outcome: o.Checker.Lookup(ctx, domain),
	}
}
