/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: optimizer.go
Description: Behavioral rule set minimization. Fingerprints every rule program by the
output set it produces over a sample vocabulary, groups programs with identical
fingerprints, and keeps one representative per group. Signature computation runs on
a worker pool; grouping and selection are sequential and deterministic.
*/

package optimizer

import (
	"context"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/kleascm/akaylee-mangler/pkg/rules"
)

// Stats summarizes a minimization run.
type Stats struct {
	OriginalCount    int
	OptimizedCount   int
	RemovedCount     int
	RedundantGroups  int
	ReductionPercent float64
}

// sigSep joins sorted outputs inside a signature. A control character keeps
// password text from colliding with the separator.
const sigSep = "\x1f"

// Optimize removes behaviorally redundant programs. Two programs are redundant
// when they produce the same deduplicated output set over the sample; the
// representative of each group is the program with the fewest ops, ties broken
// by lexicographic rule text. Programs that fail on any sample word are never
// merged with working programs: each keeps a signature derived from its own
// text, so distinct failing rules survive untouched.
//
// Output order follows the first appearance of each group in the input, making
// the result deterministic for a given input and sample. Cancellation is
// checked between programs; a cancelled run returns ctx.Err() and no result.
func Optimize(ctx context.Context, programs []*rules.Program, sample []string, workers int) ([]*rules.Program, Stats, error) {
	if len(programs) == 0 {
		return nil, Stats{}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(programs) {
		workers = len(programs)
	}

	signatures := make([]string, len(programs))
	indexes := make(chan int, len(programs))
	for i := range programs {
		indexes <- i
	}
	close(indexes)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if ctx.Err() != nil {
					return
				}
				signatures[i] = signature(programs[i], sample)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	groups := make(map[string][]int)
	order := make([]string, 0, len(programs))
	for i, sig := range signatures {
		if _, seen := groups[sig]; !seen {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], i)
	}

	kept := make([]*rules.Program, 0, len(order))
	redundant := 0
	for _, sig := range order {
		members := groups[sig]
		if len(members) > 1 {
			redundant++
		}
		kept = append(kept, programs[representative(programs, members)])
	}

	stats := Stats{
		OriginalCount:   len(programs),
		OptimizedCount:  len(kept),
		RemovedCount:    len(programs) - len(kept),
		RedundantGroups: redundant,
	}
	if stats.OriginalCount > 0 {
		pct := float64(stats.RemovedCount) / float64(stats.OriginalCount) * 100
		stats.ReductionPercent = math.Round(pct*10) / 10
	}

	return kept, stats, nil
}

// signature fingerprints a program by its sorted, deduplicated output set over
// the sample. A program that fails on any sample word gets a signature in a
// separate namespace keyed by its own text, so failures never collapse into
// working groups.
func signature(prog *rules.Program, sample []string) string {
	outputs := make([]string, 0, len(sample))
	seen := make(map[string]struct{}, len(sample))

	for _, word := range sample {
		out, err := prog.Apply(word)
		if err != nil {
			return "!" + prog.String()
		}
		if _, dup := seen[out]; dup {
			continue
		}
		seen[out] = struct{}{}
		outputs = append(outputs, out)
	}

	sort.Strings(outputs)
	return "=" + strings.Join(outputs, sigSep)
}

// representative picks the group member with the fewest ops, ties broken by
// lexicographic rule text.
func representative(programs []*rules.Program, members []int) int {
	best := members[0]
	for _, i := range members[1:] {
		switch {
		case programs[i].OpCount() < programs[best].OpCount():
			best = i
		case programs[i].OpCount() == programs[best].OpCount() &&
			programs[i].String() < programs[best].String():
			best = i
		}
	}
	return best
}
