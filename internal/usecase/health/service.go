package health

import (
	"context"
	"errors"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates that search works with reduced scope.
	Degraded Status = "degraded"
	// Unhealthy indicates that the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckMissing indicates an optional component that is absent.
	CheckMissing CheckResult = "missing"
)

// Check names in a Report.
const (
	CheckDatabase  = "database"
	CheckDirectory = "tenant_directory"
	CheckSocial    = "social_extension"
)

var errMissing = errors.New("missing")

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	indexes   IndexChecker
	directory string
	probe     ExtensionProbe
}

// New creates a Service. indexes and probe can be nil.
func New(db DBPinger, indexes IndexChecker, directory string, probe ExtensionProbe) *Service {
	return &Service{db: db, indexes: indexes, directory: directory, probe: probe}
}

// Check runs health checks against all components. A database failure is
// unhealthy; any other failing check degrades.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks[CheckDatabase] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks[CheckDatabase] = CheckOK

	if s.indexes != nil {
		checks[CheckDirectory] = result(present(s.indexes.IndexExists(ctx, s.directory)))
	}
	if s.probe != nil {
		checks[CheckSocial] = result(present(s.probe.Installed(ctx)))
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}
	return Report{Status: status, Checks: checks}
}

func present(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return errMissing
	}
	return nil
}

func result(err error) CheckResult {
	switch {
	case err == nil:
		return CheckOK
	case errors.Is(err, errMissing):
		return CheckMissing
	default:
		return CheckError
	}
}
