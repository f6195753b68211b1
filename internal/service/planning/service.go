package planning

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/sheet"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ServiceConfig configures the planner service.
type ServiceConfig struct {
	RosterURL      string
	AllocationsURL string
	CacheTTL       time.Duration
	Constants      Constants
	INTMatch       INTMatchMode
}

// snapshot is one successful load of both source tables. It is replaced
// wholesale on refresh and never mutated.
type snapshot struct {
	roster      planning.Roster
	allocations []planning.Allocation
	fetchedAt   time.Time
}

type PlannerServiceImpl struct {
	client *sheet.Client
	opts   ServiceConfig

	mu   sync.RWMutex
	snap *snapshot
}

func NewPlannerService(client *sheet.Client, opts ServiceConfig) planning.PlannerService {
	if opts.INTMatch == "" {
		opts.INTMatch = INTMatchBracket
	}
	return &PlannerServiceImpl{client: client, opts: opts}
}

// Refresh fetches roster and allocations in parallel. A failure in either
// fetch aborts the whole refresh without touching the current snapshot.
func (s *PlannerServiceImpl) Refresh(ctx context.Context) error {
	start := time.Now()

	var (
		rosterTable *sheet.Table
		allocTable  *sheet.Table
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.client.Fetch(gCtx, s.opts.RosterURL)
		if err != nil {
			metrics.SourceFetchErrorsTotal.WithLabelValues("roster").Inc()
			return fmt.Errorf("%w: roster: %v", planning.ErrSourceUnavailable, err)
		}
		rosterTable = t
		return nil
	})
	g.Go(func() error {
		t, err := s.client.Fetch(gCtx, s.opts.AllocationsURL)
		if err != nil {
			metrics.SourceFetchErrorsTotal.WithLabelValues("allocations").Inc()
			return fmt.Errorf("%w: allocations: %v", planning.ErrSourceUnavailable, err)
		}
		allocTable = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	now := time.Now()
	roster := NormalizeRoster(rosterTable)
	allocations := NormalizeAllocations(allocTable, now.Year())

	metrics.SourceFetchDurationSeconds.Observe(time.Since(start).Seconds())
	metrics.RowsParsedTotal.WithLabelValues("roster").Add(float64(len(roster)))
	metrics.RowsParsedTotal.WithLabelValues("allocations").Add(float64(len(allocations)))

	s.mu.Lock()
	s.snap = &snapshot{roster: roster, allocations: allocations, fetchedAt: now}
	s.mu.Unlock()
	return nil
}

// current returns a fresh-enough snapshot, refreshing first when the cache
// is empty or past its TTL. A failed re-fetch falls back to the stale
// snapshot; only a cold cache surfaces the error.
func (s *PlannerServiceImpl) current(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	fresh := snap != nil && (s.opts.CacheTTL <= 0 || time.Since(snap.fetchedAt) < s.opts.CacheTTL)
	if fresh {
		return snap, nil
	}

	if err := s.Refresh(ctx); err != nil {
		if snap != nil {
			return snap, nil
		}
		return nil, err
	}

	s.mu.RLock()
	snap = s.snap
	s.mu.RUnlock()
	if snap == nil {
		return nil, planning.ErrNoSnapshot
	}
	return snap, nil
}

// BuildReport runs one pure computation pass over the snapshot.
func (s *PlannerServiceImpl) BuildReport(ctx context.Context, filter planning.Filter) (*planning.Report, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	period := ResolvePeriod(&filter)
	report := Aggregate(snap.roster, snap.allocations, period, &filter, s.opts.Constants, s.opts.INTMatch)
	report.ID = uuid.NewString()
	report.GeneratedAt = time.Now().Format(time.RFC3339)

	metrics.ReportBuildDurationSeconds.Observe(time.Since(start).Seconds())
	metrics.EmployeesReported.Set(float64(len(report.Employees)))
	return &report, nil
}

// Options lists distinct departments (plus the "All" sentinel) and month
// labels present in the snapshot.
func (s *PlannerServiceImpl) Options(ctx context.Context) (*planning.FilterOptions, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	deptSet := make(map[string]struct{})
	for _, p := range snap.roster {
		if p.Department != "" {
			deptSet[p.Department] = struct{}{}
		}
	}
	departments := make([]string, 0, len(deptSet)+1)
	departments = append(departments, planning.DepartmentAll)
	for d := range deptSet {
		departments = append(departments, d)
	}
	sort.Strings(departments[1:])

	monthSet := make(map[string]struct{})
	for _, a := range snap.allocations {
		if a.Month != "" {
			monthSet[a.Month] = struct{}{}
		}
	}
	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		ti, erri := time.Parse(monthLabelLayout, months[i])
		tj, errj := time.Parse(monthLabelLayout, months[j])
		if erri != nil || errj != nil {
			return months[i] < months[j]
		}
		return ti.Before(tj)
	})

	return &planning.FilterOptions{Departments: departments, Months: months}, nil
}
