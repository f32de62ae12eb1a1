package services

import (
	"sort"
	"time"

	"complaints-dashboard/models"
)

// DefaultHistogramBins is the number of description length bins.
const DefaultHistogramBins = 20

// Aggregator computes the summary tables of a view.
type Aggregator struct {
	entities []string
	bins     int
}

// NewAggregator creates an Aggregator. entities is the fixed label list
// reported by Counts, in display order.
func NewAggregator(entities []string, bins int) *Aggregator {
	if bins < 1 {
		bins = DefaultHistogramBins
	}
	return &Aggregator{entities: entities, bins: bins}
}

// Generate computes every aggregate of view. An empty view yields zero
// counts and empty tables.
func (a *Aggregator) Generate(view []models.Complaint) *models.Report {
	return &models.Report{
		Counts:          a.Counts(view),
		Timeline:        timeline(view),
		ByRegion:        byRegion(view),
		ByStatus:        byStatus(view),
		LengthHistogram: lengthHistogram(view, a.bins),
	}
}

// Counts returns the total and the per-entity row counts. Every fixed
// entity is listed even when it has no rows; unexpected labels are appended
// so the per-entity counts always sum to the total.
func (a *Aggregator) Counts(view []models.Complaint) models.Counts {
	counts := make(map[string]int, len(a.entities))
	for i := range view {
		counts[view[i].Entity]++
	}

	out := models.Counts{Total: len(view), ByEntity: make([]models.EntityCount, 0, len(a.entities))}
	known := make(map[string]struct{}, len(a.entities))
	for _, e := range a.entities {
		known[e] = struct{}{}
		out.ByEntity = append(out.ByEntity, models.EntityCount{Entity: e, Count: counts[e]})
	}

	var extra []string
	for e := range counts {
		if _, ok := known[e]; !ok {
			extra = append(extra, e)
		}
	}
	sort.Strings(extra)
	for _, e := range extra {
		out.ByEntity = append(out.ByEntity, models.EntityCount{Entity: e, Count: counts[e]})
	}
	return out
}

// timeline counts complaints per exact timestamp, oldest first.
func timeline(view []models.Complaint) []models.TimeCount {
	counts := make(map[int64]int)
	first := make(map[int64]time.Time)
	for i := range view {
		key := view[i].Timestamp.UnixNano()
		if _, ok := first[key]; !ok {
			first[key] = view[i].Timestamp
		}
		counts[key]++
	}

	out := make([]models.TimeCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, models.TimeCount{Timestamp: first[key], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// byRegion counts complaints per region, most frequent first.
func byRegion(view []models.Complaint) []models.KeyCount {
	counts := make(map[string]int)
	for i := range view {
		counts[view[i].Region]++
	}

	out := make([]models.KeyCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.KeyCount{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// byStatus reports each status' share of the view, largest first.
func byStatus(view []models.Complaint) []models.KeyShare {
	counts := make(map[string]int)
	for i := range view {
		counts[view[i].Status]++
	}

	out := make([]models.KeyShare, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.KeyShare{Key: k, Count: n, Share: float64(n) / float64(len(view))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// lengthHistogram spreads description lengths over bins equal-width bins
// spanning the observed min and max. When every length is equal the bins
// are one character wide starting at that length.
func lengthHistogram(view []models.Complaint, bins int) []models.HistogramBin {
	if len(view) == 0 {
		return []models.HistogramBin{}
	}

	lengths := make([]int, len(view))
	lo, hi := view[0].DescriptionLength(), view[0].DescriptionLength()
	for i := range view {
		l := view[i].DescriptionLength()
		lengths[i] = l
		if l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}

	width := float64(hi-lo) / float64(bins)
	if width == 0 {
		width = 1
	}

	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = float64(lo) + float64(i)*width
		out[i].Upper = float64(lo) + float64(i+1)*width
	}

	for _, l := range lengths {
		idx := int(float64(l-lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}
