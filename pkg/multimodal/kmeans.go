package multimodal

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	clustersMin = 1
	clustersMax = 10

	// normalizedMin is the elbow threshold: the smallest k whose
	// normalized distortion improvement falls below it wins.
	normalizedMin = 0.1

	kmeansMaxIterations = 100
)

type interval struct {
	lo, hi float64
}

// numericClusters partitions one-dimensional points into intervals: a
// k-means fit for k in [1, 10], k selected by the elbow method over the
// distortion curve, and each cluster widened by the fit's distortion.
// acc is the number of decimals kept (negative keeps all).
func numericClusters(points []float64, acc int) []interval {
	if len(points) == 0 {
		return nil
	}

	var (
		distortions []float64
		models      [][]float64
	)
	for k := clustersMin; k <= clustersMax && k <= len(points); k++ {
		centers := kmeans1d(points, k)
		models = append(models, centers)
		distortions = append(distortions, distortion(points, centers))
	}

	best := len(models) - 1
	if len(distortions) > 1 {
		deltas := make([]float64, len(distortions)-1)
		dmin, dmax := math.Inf(1), math.Inf(-1)
		for i := range deltas {
			deltas[i] = distortions[i] - distortions[i+1]
			dmin = math.Min(dmin, deltas[i])
			dmax = math.Max(dmax, deltas[i])
		}

		for i, delta := range deltas {
			normalized := 0.0
			if dmax > dmin {
				normalized = (delta - dmin) / (dmax - dmin)
			}
			if normalized < normalizedMin {
				best = i
				break
			}
		}
	}

	radius := distortions[best]
	intervals := make([]interval, 0, len(models[best]))
	for _, center := range models[best] {
		intervals = append(intervals, interval{
			lo: round(center-radius, acc),
			hi: round(center+radius, acc),
		})
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].lo < intervals[j].lo })
	return intervals
}

// kmeans1d runs Lloyd's algorithm on sorted points with quantile
// initialisation; deterministic for a given input multiset.
func kmeans1d(points []float64, k int) []float64 {
	sorted := append([]float64(nil), points...)
	sort.Float64s(sorted)

	centers := make([]float64, k)
	for i := range centers {
		centers[i] = sorted[i*len(sorted)/k]
	}

	assignments := make([]int, len(sorted))
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i, p := range sorted {
			nearest := nearestCenter(p, centers)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, p := range sorted {
			sums[assignments[i]] += p
			counts[assignments[i]]++
		}
		for c := range centers {
			if counts[c] > 0 {
				centers[c] = sums[c] / float64(counts[c])
			}
		}
	}

	sort.Float64s(centers)
	return centers
}

func nearestCenter(p float64, centers []float64) int {
	nearest, best := 0, math.Inf(1)
	for i, c := range centers {
		if d := math.Abs(p - c); d < best {
			nearest, best = i, d
		}
	}
	return nearest
}

// distortion is the mean distance of each point to its nearest center.
func distortion(points, centers []float64) float64 {
	total := 0.0
	for _, p := range points {
		total += math.Abs(p - centers[nearestCenter(p, centers)])
	}
	return total / float64(len(points))
}

func round(v float64, acc int) float64 {
	if acc < 0 {
		return v
	}
	scale := math.Pow10(acc)
	return math.Round(v*scale) / scale
}

// parseFloatStrict trims surrounding whitespace but otherwise requires
// a plain decimal form.
func parseFloatStrict(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
