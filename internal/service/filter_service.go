package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/resorr/reservoir-backend-go/internal/filter"
	"github.com/resorr/reservoir-backend-go/internal/geoio"
	"github.com/resorr/reservoir-backend-go/internal/models"
	"github.com/resorr/reservoir-backend-go/internal/repository"
)

// FilterJob carries the observations for one reservoir through the
// correction pipeline.
type FilterJob struct {
	Name    string
	NomArea float64
	Optical []models.Observation
	SAR     []models.Observation
}

// RunOutcome reports the result of filtering one reservoir. Error is
// empty on success.
type RunOutcome struct {
	Name  string `json:"name"`
	Rows  int    `json:"rows"`
	Error string `json:"error,omitempty"`
}

// FilterService runs the surface area correction pipeline across
// reservoirs and persists the corrected series.
type FilterService struct {
	series  *repository.SeriesRepository
	dataDir string
	workers int
}

// NewFilterService creates a new filter service
func NewFilterService(series *repository.SeriesRepository, dataDir string, workers int) *FilterService {
	if workers < 1 {
		workers = 1
	}
	return &FilterService{series: series, dataDir: dataDir, workers: workers}
}

// LoadJob reads the per-satellite CSVs for one reservoir from the data
// directory. SAR and at least one optical source are required.
func (s *FilterService) LoadJob(name string, nomArea float64, satellites []string) (FilterJob, error) {
	job := FilterJob{Name: name, NomArea: nomArea}
	for _, sat := range satellites {
		switch sat {
		case "l8", "l9":
			obs, err := geoio.LoadLandsat(filepath.Join(s.dataDir, sat, name+".csv"))
			if err != nil {
				return FilterJob{}, fmt.Errorf("loading %s for %s: %w", sat, name, err)
			}
			job.Optical = append(job.Optical, obs...)
		case "s2":
			obs, err := geoio.LoadSentinel2(filepath.Join(s.dataDir, "s2", name+".csv"))
			if err != nil {
				return FilterJob{}, fmt.Errorf("loading s2 for %s: %w", name, err)
			}
			job.Optical = append(job.Optical, obs...)
		case "s1":
			obs, err := geoio.LoadSAR(filepath.Join(s.dataDir, "sar", name+"_12d_sar.csv"))
			if err != nil {
				return FilterJob{}, fmt.Errorf("loading sar for %s: %w", name, err)
			}
			job.SAR = append(job.SAR, obs...)
		default:
			return FilterJob{}, fmt.Errorf("unknown satellite %q", sat)
		}
	}
	if len(job.SAR) == 0 {
		return FilterJob{}, fmt.Errorf("reservoir %s: SAR observations are required", name)
	}
	if len(job.Optical) == 0 {
		return FilterJob{}, fmt.Errorf("reservoir %s: optical observations are required", name)
	}
	return job, nil
}

// Run filters each job on a bounded worker pool. Persistence happens on
// the collecting goroutine so the database sees a single writer. A
// failing reservoir does not stop the others.
func (s *FilterService) Run(ctx context.Context, jobs []FilterJob, t filter.Thresholds) []RunOutcome {
	jobCh := make(chan FilterJob)

	type result struct {
		name string
		rows []models.CorrectedArea
		err  error
	}
	resCh := make(chan result)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				rows, err := filter.Run(job.Name, job.Optical, job.SAR, job.NomArea, t)
				select {
				case resCh <- result{name: job.Name, rows: rows, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resCh)
	}()

	outcomes := make([]RunOutcome, 0, len(jobs))
	for r := range resCh {
		o := RunOutcome{Name: r.name}
		switch {
		case r.err != nil:
			o.Error = r.err.Error()
		default:
			if err := s.series.Save(r.name, r.rows); err != nil {
				o.Error = err.Error()
			} else {
				o.Rows = len(r.rows)
			}
		}
		outcomes = append(outcomes, o)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Name < outcomes[j].Name })
	return outcomes
}

// GetSeries returns stored corrected series matching the filter
func (s *FilterService) GetSeries(f models.SeriesFilter) ([]models.CorrectedArea, error) {
	return s.series.GetSeries(f)
}
