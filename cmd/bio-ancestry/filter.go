package main

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/grailbio/ancestry/tract"
)

// knownPops resolves requested population labels against those present in
// segs. An unknown label is an error; the message suggests the closest
// present label by Levenshtein distance, since a typo in a label would
// otherwise just filter everything out silently.
func knownPops(segs []tract.Segment, requested []string) ([]tract.Population, error) {
	present := map[tract.Population]bool{}
	for _, seg := range segs {
		present[seg.Pop] = true
	}
	pops := make([]tract.Population, 0, len(requested))
	for _, name := range requested {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		pop := tract.Population(name)
		if !present[pop] {
			if hint := closestPop(name, present); hint != "" {
				return nil, fmt.Errorf("population %q not present in input (did you mean %q?)", name, hint)
			}
			return nil, fmt.Errorf("population %q not present in input", name)
		}
		pops = append(pops, pop)
	}
	return pops, nil
}

func closestPop(name string, present map[tract.Population]bool) string {
	best := ""
	bestDist := -1
	for pop := range present {
		d := matchr.Levenshtein(name, string(pop))
		if bestDist < 0 || d < bestDist || (d == bestDist && string(pop) < best) {
			best = string(pop)
			bestDist = d
		}
	}
	return best
}
