package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cataloglens/pkg/contracts/domain"
)

func TestCountByYear(t *testing.T) {
	counts := CountByYear([]int{2020, 2018, 2020, 0, 2019, 2020})

	// zero years (missing dates) excluded; ascending order
	require.Len(t, counts, 3)
	assert.Equal(t, domain.YearCount{Year: 2018, Count: 1}, counts[0])
	assert.Equal(t, domain.YearCount{Year: 2019, Count: 1}, counts[1])
	assert.Equal(t, domain.YearCount{Year: 2020, Count: 3}, counts[2])
}

func TestCountByMonth(t *testing.T) {
	counts := CountByMonth([]string{"January", "March", "January", ""})

	require.Len(t, counts, 12)
	assert.Equal(t, domain.MonthCount{Month: "January", Count: 2}, counts[0])
	assert.Equal(t, domain.MonthCount{Month: "February", Count: 0}, counts[1])
	assert.Equal(t, domain.MonthCount{Month: "March", Count: 1}, counts[2])
	assert.Equal(t, "December", counts[11].Month)
}

func TestBucketLabel(t *testing.T) {
	edges := []int{2015, 2018, 2021}

	assert.Equal(t, "before 2015", bucketLabel(edges, 2010))
	assert.Equal(t, "2015-2017", bucketLabel(edges, 2015))
	assert.Equal(t, "2015-2017", bucketLabel(edges, 2017))
	assert.Equal(t, "2018-2020", bucketLabel(edges, 2019))
	assert.Equal(t, "2021 and later", bucketLabel(edges, 2021))
	assert.Equal(t, "2021 and later", bucketLabel(edges, 2024))
}

func title(yearAdded int, rating string) domain.Title {
	return domain.Title{YearAdded: yearAdded, Rating: rating}
}

func TestRatingComposition(t *testing.T) {
	titles := []domain.Title{
		title(2014, "TV-MA"),
		title(2016, "TV-MA"),
		title(2016, "PG-13"),
		title(2019, "TV-MA"),
		title(2022, "R"),
		title(0, "TV-MA"),  // no parsed date: excluded
		title(2022, ""),    // no rating: excluded
	}

	buckets := RatingComposition(titles, []int{2015, 2018, 2021})
	require.Len(t, buckets, 4)

	assert.Equal(t, "before 2015", buckets[0].Label)
	assert.Equal(t, 1, buckets[0].Total)

	assert.Equal(t, "2015-2017", buckets[1].Label)
	assert.Equal(t, 2, buckets[1].Total)
	assert.Equal(t, 0.5, buckets[1].Shares[0].Share)

	assert.Equal(t, "2018-2020", buckets[2].Label)
	assert.Equal(t, "2021 and later", buckets[3].Label)
	assert.Equal(t, 1, buckets[3].Total)
	assert.Equal(t, "R", buckets[3].Shares[0].Value)
}

func TestRatingComposition_EmptyBucketsOmitted(t *testing.T) {
	titles := []domain.Title{title(2022, "R")}

	buckets := RatingComposition(titles, []int{2015, 2018, 2021})
	require.Len(t, buckets, 1)
	assert.Equal(t, "2021 and later", buckets[0].Label)
}
