// Package batch holds per-item outcomes of bulk indexing.
package batch

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
)

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of writing one document.
type Result struct {
	id     string
	kind   kind.Kind
	status ItemStatus
	err    error
}

// NewOK creates a successful batch result.
func NewOK(id string, k kind.Kind) Result { return Result{id: id, kind: k, status: StatusOK} }

// NewError creates a failed batch result.
func NewError(id string, k kind.Kind, err error) Result {
	return Result{id: id, kind: k, status: StatusError, err: err}
}

// ID returns the item identifier.
func (r Result) ID() string { return r.id }

// Kind returns the content kind of the item.
func (r Result) Kind() kind.Kind { return r.kind }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Report aggregates the results of one bulk run.
type Report struct {
	Results []Result
}

// Add appends results.
func (r *Report) Add(results ...Result) { r.Results = append(r.Results, results...) }

// Indexed counts successful items.
func (r *Report) Indexed() int {
	n := 0
	for _, res := range r.Results {
		if res.status == StatusOK {
			n++
		}
	}
	return n
}

// Failed counts failed items.
func (r *Report) Failed() int { return len(r.Results) - r.Indexed() }

// Err joins distinct item errors, nil when every item succeeded.
func (r *Report) Err() error {
	var errs []error
	seen := make(map[string]bool)
	for _, res := range r.Results {
		if res.err == nil {
			continue
		}
		msg := res.err.Error()
		if seen[msg] {
			continue
		}
		seen[msg] = true
		errs = append(errs, fmt.Errorf("%s %s: %w", res.kind, res.id, res.err))
	}
	return errors.Join(errs...)
}
