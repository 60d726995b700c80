package stats

import (
	"fmt"
	"sort"
	"time"

	"cataloglens/pkg/contracts/domain"
)

// CountByYear aggregates title counts per year, ascending. Zero years
// (missing date-added) are excluded.
func CountByYear(years []int) []domain.YearCount {
	counts := make(map[int]int)
	for _, y := range years {
		if y == 0 {
			continue
		}
		counts[y]++
	}

	keys := make([]int, 0, len(counts))
	for y := range counts {
		keys = append(keys, y)
	}
	sort.Ints(keys)

	out := make([]domain.YearCount, 0, len(keys))
	for _, y := range keys {
		out = append(out, domain.YearCount{Year: y, Count: counts[y]})
	}
	return out
}

// CountByMonth aggregates title counts per calendar month across all years,
// in calendar order. Empty month names (missing date-added) are excluded;
// months with no titles are reported with a zero count.
func CountByMonth(months []string) []domain.MonthCount {
	counts := make(map[string]int)
	for _, m := range months {
		if m == "" {
			continue
		}
		counts[m]++
	}

	out := make([]domain.MonthCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		out = append(out, domain.MonthCount{Month: name, Count: counts[name]})
	}
	return out
}

// bucketLabel names the bucket a year falls into given ascending inner
// edges. An edge year starts its bucket.
func bucketLabel(edges []int, year int) string {
	if year < edges[0] {
		return fmt.Sprintf("before %d", edges[0])
	}
	for i := len(edges) - 1; i >= 0; i-- {
		if year >= edges[i] {
			if i == len(edges)-1 {
				return fmt.Sprintf("%d and later", edges[i])
			}
			return fmt.Sprintf("%d-%d", edges[i], edges[i+1]-1)
		}
	}
	return ""
}

// RatingComposition computes the rating share per year-added bucket. Titles
// without a parsed date-added or without a rating are excluded. Buckets are
// reported in chronological order; empty buckets are omitted.
func RatingComposition(titles []domain.Title, edges []int) []domain.RatingBucket {
	if len(edges) == 0 {
		return nil
	}
	sorted := make([]int, len(edges))
	copy(sorted, edges)
	sort.Ints(sorted)

	labels := make([]string, 0, len(sorted)+1)
	labels = append(labels, bucketLabel(sorted, sorted[0]-1))
	for _, e := range sorted {
		labels = append(labels, bucketLabel(sorted, e))
	}

	ratingsByBucket := make(map[string][]string)
	for _, t := range titles {
		if t.YearAdded == 0 || t.Rating == "" {
			continue
		}
		label := bucketLabel(sorted, t.YearAdded)
		ratingsByBucket[label] = append(ratingsByBucket[label], t.Rating)
	}

	out := make([]domain.RatingBucket, 0, len(labels))
	for _, label := range labels {
		ratings, ok := ratingsByBucket[label]
		if !ok {
			continue
		}
		dist := Distribute(domain.ColumnRating, ratings)
		out = append(out, domain.RatingBucket{
			Label:  label,
			Total:  dist.Total,
			Shares: dist.Frequencies,
		})
	}
	return out
}
