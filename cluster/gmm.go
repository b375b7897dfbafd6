package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// GaussianMixtureConfig controls EM fitting of a full-covariance
// gaussian mixture.
type GaussianMixtureConfig struct {
	// NComponents is the number of mixture components. Must be >= 1.
	NComponents int

	// MaxIter bounds the EM iterations. Default: 100.
	MaxIter int

	// Tol stops EM once the mean log-likelihood improves by less than
	// this amount. Default: 1e-3.
	Tol float64

	// Reg is added to covariance diagonals to keep them positive
	// definite. Default: 1e-6.
	Reg float64

	// Seed feeds the k-means++ style initialization.
	Seed int64
}

// DefaultGaussianMixtureConfig returns a config with the usual EM
// defaults for nComponents components.
func DefaultGaussianMixtureConfig(nComponents int) GaussianMixtureConfig {
	return GaussianMixtureConfig{
		NComponents: nComponents,
		MaxIter:     100,
		Tol:         1e-3,
		Reg:         1e-6,
	}
}

// GaussianMixture fits a full-covariance mixture with
// expectation-maximization. It is predict-based: assignments come from
// the posterior argmax of a Predict pass, not from fitting itself.
type GaussianMixture struct {
	cfg     GaussianMixtureConfig
	dims    int
	weights []float64
	means   [][]float64
	chols   []*mat.Cholesky
}

// NewGaussianMixture returns an unfitted estimator for the config.
func NewGaussianMixture(cfg GaussianMixtureConfig) *GaussianMixture {
	if cfg.MaxIter == 0 {
		cfg.MaxIter = 100
	}
	if cfg.Tol == 0 {
		cfg.Tol = 1e-3
	}
	if cfg.Reg == 0 {
		cfg.Reg = 1e-6
	}
	return &GaussianMixture{cfg: cfg}
}

// Fit estimates the mixture parameters from the points.
func (g *GaussianMixture) Fit(points [][]float64) error {
	if g.cfg.NComponents < 1 {
		return fmt.Errorf("cluster: NComponents must be >= 1, got %d", g.cfg.NComponents)
	}
	n := len(points)
	if n < g.cfg.NComponents {
		return fmt.Errorf("cluster: %d points cannot fit %d components", n, g.cfg.NComponents)
	}
	g.dims = len(points[0])
	k := g.cfg.NComponents

	// Hard-assignment initialization from k-means++ seeded centers.
	rng := rand.New(rand.NewSource(g.cfg.Seed))
	centers := seedCenters(points, k, rng)
	resp := make([][]float64, n)
	for i, p := range points {
		resp[i] = make([]float64, k)
		resp[i][nearestCenter(p, centers)] = 1
	}

	prevLL := math.Inf(-1)
	for iter := 0; iter < g.cfg.MaxIter; iter++ {
		if err := g.mStep(points, resp); err != nil {
			return err
		}
		ll := g.eStep(points, resp)
		if math.Abs(ll-prevLL) < g.cfg.Tol {
			break
		}
		prevLL = ll
	}
	return nil
}

// Predict returns the posterior-argmax component for each point.
func (g *GaussianMixture) Predict(points [][]float64) []int {
	labels := make([]int, len(points))
	logp := make([]float64, g.cfg.NComponents)
	for i, p := range points {
		for c := 0; c < g.cfg.NComponents; c++ {
			logp[c] = math.Log(g.weights[c]) + g.logGaussian(p, c)
		}
		best := 0
		for c := 1; c < len(logp); c++ {
			if logp[c] > logp[best] {
				best = c
			}
		}
		labels[i] = best
	}
	return labels
}

// Means returns the fitted component means.
func (g *GaussianMixture) Means() [][]float64 { return g.means }

// mStep re-estimates weights, means and covariances from the
// responsibilities.
func (g *GaussianMixture) mStep(points [][]float64, resp [][]float64) error {
	n := len(points)
	k := g.cfg.NComponents
	d := g.dims

	g.weights = make([]float64, k)
	g.means = make([][]float64, k)
	g.chols = make([]*mat.Cholesky, k)

	for c := 0; c < k; c++ {
		var nk float64
		for i := 0; i < n; i++ {
			nk += resp[i][c]
		}
		if nk < 1e-10 {
			nk = 1e-10
		}
		g.weights[c] = nk / float64(n)

		mean := make([]float64, d)
		for i, p := range points {
			for j := 0; j < d; j++ {
				mean[j] += resp[i][c] * p[j]
			}
		}
		for j := range mean {
			mean[j] /= nk
		}
		g.means[c] = mean

		cov := mat.NewSymDense(d, nil)
		diff := make([]float64, d)
		for i, p := range points {
			for j := 0; j < d; j++ {
				diff[j] = p[j] - mean[j]
			}
			w := resp[i][c]
			for a := 0; a < d; a++ {
				for bq := a; bq < d; bq++ {
					cov.SetSym(a, bq, cov.At(a, bq)+w*diff[a]*diff[bq])
				}
			}
		}
		for a := 0; a < d; a++ {
			for bq := a; bq < d; bq++ {
				v := cov.At(a, bq) / nk
				if a == bq {
					v += g.cfg.Reg
				}
				cov.SetSym(a, bq, v)
			}
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(cov); !ok {
			return fmt.Errorf("cluster: component %d covariance not positive definite", c)
		}
		g.chols[c] = &chol
	}
	return nil
}

// eStep recomputes responsibilities and returns the mean
// log-likelihood.
func (g *GaussianMixture) eStep(points [][]float64, resp [][]float64) float64 {
	n := len(points)
	k := g.cfg.NComponents

	var total float64
	logp := make([]float64, k)
	for i, p := range points {
		maxLog := math.Inf(-1)
		for c := 0; c < k; c++ {
			logp[c] = math.Log(g.weights[c]) + g.logGaussian(p, c)
			if logp[c] > maxLog {
				maxLog = logp[c]
			}
		}
		// Log-sum-exp for numerical stability.
		var sum float64
		for c := 0; c < k; c++ {
			sum += math.Exp(logp[c] - maxLog)
		}
		logSum := maxLog + math.Log(sum)
		for c := 0; c < k; c++ {
			resp[i][c] = math.Exp(logp[c] - logSum)
		}
		total += logSum
	}
	return total / float64(n)
}

// logGaussian evaluates the log density of component c at p using the
// cached Cholesky factorization.
func (g *GaussianMixture) logGaussian(p []float64, c int) float64 {
	d := g.dims
	diff := mat.NewVecDense(d, nil)
	for j := 0; j < d; j++ {
		diff.SetVec(j, p[j]-g.means[c][j])
	}
	var solved mat.VecDense
	if err := g.chols[c].SolveVecTo(&solved, diff); err != nil {
		return math.Inf(-1)
	}
	maha := mat.Dot(diff, &solved)
	return -0.5 * (float64(d)*math.Log(2*math.Pi) + g.chols[c].LogDet() + maha)
}
