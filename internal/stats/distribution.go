package stats

import (
	"sort"

	"cataloglens/pkg/contracts/domain"
)

// Distribute counts category frequencies for one categorical column. Empty
// values are excluded from the denominator. Output is ordered by descending
// count; ties keep first-seen order.
func Distribute(column string, values []string) domain.Distribution {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for _, v := range values {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			firstSeen[v] = len(order)
			order = append(order, v)
		}
		counts[v]++
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := counts[order[i]], counts[order[j]]
		if ci != cj {
			return ci > cj
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	dist := domain.Distribution{
		Column:      column,
		Total:       total,
		Unique:      len(order),
		Frequencies: make([]domain.Frequency, 0, len(order)),
	}
	for _, v := range order {
		dist.Frequencies = append(dist.Frequencies, domain.Frequency{
			Value: v,
			Count: counts[v],
			Share: float64(counts[v]) / float64(total),
		})
	}
	return dist
}

// Explode flattens multi-value fields (cast, country, genres) into a single
// value list, skipping any values in the exclude set. Sentinels are excluded
// so imputed placeholders never dominate a distribution.
func Explode(lists [][]string, exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	var out []string
	for _, list := range lists {
		for _, v := range list {
			if _, drop := skip[v]; drop {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}
