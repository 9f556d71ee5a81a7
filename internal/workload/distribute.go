package workload

import "github.com/alexanderramin/portfolio/internal/domain"

// DaysPerWeek is the normalization base for capacity. Capacity is a weekly
// rate everywhere, whatever the bucket length.
const DaysPerWeek = 7

// OverlapDays returns the number of calendar days shared by s and b.
func OverlapDays(s Slice, b Bucket) int {
	start := s.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := s.End
	if b.End.Before(end) {
		end = b.End
	}
	return domain.DaysInclusive(start, end)
}

// Distribute returns the share of s that falls into b.
func Distribute(s Slice, b Bucket) float64 {
	overlap := OverlapDays(s, b)
	if overlap == 0 {
		return 0
	}
	return s.Capacity * float64(overlap) / DaysPerWeek
}

// Spread distributes every slice over every bucket and returns the per-bucket
// totals. The result has one entry per bucket.
func Spread(slices []Slice, buckets []Bucket) []float64 {
	out := make([]float64, len(buckets))
	for _, s := range slices {
		for i, b := range buckets {
			out[i] += Distribute(s, b)
		}
	}
	return out
}
