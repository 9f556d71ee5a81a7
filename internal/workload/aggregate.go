package workload

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// OwnerKey is the join key for owners across plans: the trimmed, case-folded
// display name. Two people sharing a name share a key; there is no durable
// owner identity to tell them apart.
func OwnerKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// OwnerLoad is one owner's load per bucket, split between the active plan and
// every other plan.
type OwnerLoad struct {
	Owner string
	Own   []float64
	Other []float64
}

// Total returns own plus other load in bucket i.
func (l OwnerLoad) Total(i int) float64 {
	return l.Own[i] + l.Other[i]
}

// Overloaded reports whether the combined load in bucket i exceeds threshold.
func (l OwnerLoad) Overloaded(i int, threshold float64) bool {
	return l.Total(i) > threshold
}

// Peak returns the highest combined load over all buckets.
func (l OwnerLoad) Peak() float64 {
	var peak float64
	for i := range l.Own {
		if total := l.Total(i); total > peak {
			peak = total
		}
	}
	return peak
}

// AggregateLoad sums the distributed load of every task assigned to owner,
// separately for the active plan and for all other plans. An unknown or blank
// owner yields all-zero arrays.
func AggregateLoad(owner string, active domain.Plan, others []domain.Plan, buckets []Bucket) OwnerLoad {
	key := OwnerKey(owner)
	load := OwnerLoad{
		Owner: strings.TrimSpace(owner),
		Own:   ownerSpread(key, active, buckets),
		Other: make([]float64, len(buckets)),
	}
	for _, p := range others {
		for i, v := range ownerSpread(key, p, buckets) {
			load.Other[i] += v
		}
	}
	return load
}

func ownerSpread(key string, p domain.Plan, buckets []Bucket) []float64 {
	out := make([]float64, len(buckets))
	if key == "" {
		return out
	}
	for _, t := range p.Tasks {
		if OwnerKey(t.Responsible) != key {
			continue
		}
		for i, v := range Spread(ResolveSlices(t), buckets) {
			out[i] += v
		}
	}
	return out
}

// OwnerRow is one line of the capacity heatmap.
type OwnerRow struct {
	Owner string
	Load  []float64
	Peak  float64
}

// Heatmap returns the combined load of every owner appearing in plans. Rows
// are sorted by peak load, highest first, then by owner name. The display
// name of a row is the first spelling encountered. Unassigned tasks are
// skipped.
func Heatmap(plans []domain.Plan, buckets []Bucket) []OwnerRow {
	index := map[string]int{}
	var rows []OwnerRow
	for _, p := range plans {
		for _, t := range p.Tasks {
			key := OwnerKey(t.Responsible)
			if key == "" {
				continue
			}
			i, ok := index[key]
			if !ok {
				i = len(rows)
				index[key] = i
				rows = append(rows, OwnerRow{
					Owner: strings.TrimSpace(t.Responsible),
					Load:  make([]float64, len(buckets)),
				})
			}
			for j, v := range Spread(ResolveSlices(t), buckets) {
				rows[i].Load[j] += v
			}
		}
	}

	for i := range rows {
		for _, v := range rows[i].Load {
			if v > rows[i].Peak {
				rows[i].Peak = v
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Peak != rows[j].Peak {
			return rows[i].Peak > rows[j].Peak
		}
		return rows[i].Owner < rows[j].Owner
	})
	return rows
}
