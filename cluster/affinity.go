package cluster

import "fmt"

// AffinityPropagationConfig controls affinity propagation clustering.
type AffinityPropagationConfig struct {
	// Damping factor for the message updates, in [0.5, 1). Higher
	// values slow oscillation at the cost of convergence speed.
	Damping float64

	// Preference is the self-similarity assigned to every point. More
	// negative values yield fewer exemplars (clusters).
	Preference float64

	// MaxIter is the maximum number of message-passing iterations.
	// Default: 200.
	MaxIter int

	// ConvergenceIter stops early once the exemplar set has been stable
	// for this many iterations. Default: 15.
	ConvergenceIter int
}

// DefaultAffinityPropagationConfig returns a config with the usual
// defaults: damping 0.5 is the textbook minimum, MaxIter 200.
func DefaultAffinityPropagationConfig() AffinityPropagationConfig {
	return AffinityPropagationConfig{
		Damping:         0.5,
		Preference:      -50,
		MaxIter:         200,
		ConvergenceIter: 15,
	}
}

// AffinityPropagation clusters by exchanging responsibility and
// availability messages until a stable exemplar set emerges. Similarity
// is the negative squared euclidean distance; every point's
// self-similarity is the configured preference.
type AffinityPropagation struct {
	cfg    AffinityPropagationConfig
	labels []int
}

// NewAffinityPropagation returns an unfitted estimator for the config.
func NewAffinityPropagation(cfg AffinityPropagationConfig) *AffinityPropagation {
	if cfg.MaxIter == 0 {
		cfg.MaxIter = 200
	}
	if cfg.ConvergenceIter == 0 {
		cfg.ConvergenceIter = 15
	}
	return &AffinityPropagation{cfg: cfg}
}

// Fit runs message passing and stores per-point labels. When no
// exemplars emerge every point is labeled Noise.
func (a *AffinityPropagation) Fit(points [][]float64) error {
	if a.cfg.Damping < 0.5 || a.cfg.Damping >= 1 {
		return fmt.Errorf("cluster: Damping must be in [0.5, 1), got %f", a.cfg.Damping)
	}
	n := len(points)
	if n == 0 {
		a.labels = []int{}
		return nil
	}

	// Similarity matrix with preferences on the diagonal.
	s := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				s[i*n+j] = a.cfg.Preference
			} else {
				s[i*n+j] = -SquaredEuclidean(points[i], points[j])
			}
		}
	}

	r := make([]float64, n*n)  // responsibilities
	av := make([]float64, n*n) // availabilities
	damp := a.cfg.Damping

	prevExemplars := -1
	stable := 0
	for iter := 0; iter < a.cfg.MaxIter; iter++ {
		// Responsibilities: r(i,k) = s(i,k) - max_{k'!=k}(a(i,k') + s(i,k')).
		for i := 0; i < n; i++ {
			max1, max2 := negInf, negInf
			arg1 := -1
			for k := 0; k < n; k++ {
				v := av[i*n+k] + s[i*n+k]
				if v > max1 {
					max2 = max1
					max1, arg1 = v, k
				} else if v > max2 {
					max2 = v
				}
			}
			for k := 0; k < n; k++ {
				sub := max1
				if k == arg1 {
					sub = max2
				}
				r[i*n+k] = damp*r[i*n+k] + (1-damp)*(s[i*n+k]-sub)
			}
		}

		// Availabilities: a(i,k) = min(0, r(k,k) + sum_{i'∉{i,k}} max(0, r(i',k)))
		// and a(k,k) = sum_{i'!=k} max(0, r(i',k)).
		for k := 0; k < n; k++ {
			var sum float64
			for i := 0; i < n; i++ {
				if i != k && r[i*n+k] > 0 {
					sum += r[i*n+k]
				}
			}
			for i := 0; i < n; i++ {
				var v float64
				if i == k {
					v = sum
				} else {
					v = r[k*n+k] + sum
					if r[i*n+k] > 0 {
						v -= r[i*n+k]
					}
					if v > 0 {
						v = 0
					}
				}
				av[i*n+k] = damp*av[i*n+k] + (1-damp)*v
			}
		}

		exemplars := 0
		for k := 0; k < n; k++ {
			if r[k*n+k]+av[k*n+k] > 0 {
				exemplars++
			}
		}
		if exemplars == prevExemplars && exemplars > 0 {
			if stable++; stable >= a.cfg.ConvergenceIter {
				break
			}
		} else {
			stable = 0
		}
		prevExemplars = exemplars
	}

	a.labels = assignToExemplars(s, r, av, n)
	return nil
}

// Labels returns the per-point assignment from the last Fit.
func (a *AffinityPropagation) Labels() []int { return a.labels }

func assignToExemplars(s, r, av []float64, n int) []int {
	var exemplars []int
	for k := 0; k < n; k++ {
		if r[k*n+k]+av[k*n+k] > 0 {
			exemplars = append(exemplars, k)
		}
	}
	labels := make([]int, n)
	if len(exemplars) == 0 {
		for i := range labels {
			labels[i] = Noise
		}
		return labels
	}
	for i := 0; i < n; i++ {
		best, bestSim := 0, negInf
		for ci, k := range exemplars {
			if i == k {
				best = ci
				break
			}
			if s[i*n+k] > bestSim {
				best, bestSim = ci, s[i*n+k]
			}
		}
		labels[i] = best
	}
	return labels
}

const negInf = -1e308
