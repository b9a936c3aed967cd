package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure; searches still work.
	Degraded Status = "degraded"
	// Unhealthy indicates searches cannot be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckDataset  = "dataset"
	CheckDatabase = "database"
)

// Report aggregates health check results.
type Report struct {
	Status   Status
	Checks   map[string]CheckResult
	Features int
}

// Service coordinates health checks.
type Service struct {
	dataset DatasetReader
	db      DBPinger
}

// New creates a Service. db can be nil when no store is configured.
func New(dataset DatasetReader, db DBPinger) *Service {
	return &Service{dataset: dataset, db: db}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	report := Report{Status: Healthy, Checks: checks}

	if col, ok := s.dataset.Current(); ok {
		checks[CheckDataset] = CheckOK
		report.Features = col.Len()
	} else {
		checks[CheckDataset] = CheckError
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks[CheckDatabase] = CheckError
		} else {
			checks[CheckDatabase] = CheckOK
		}
	}

	switch {
	case checks[CheckDataset] == CheckError:
		report.Status = Unhealthy
	case checks[CheckDatabase] == CheckError:
		report.Status = Degraded
	}
	return report
}
