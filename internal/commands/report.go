// Per-item mutation reporting.
//
// Every multi-target step (service grants, revocations, password
// rotation) runs to completion: one failed item never short-circuits the
// remaining items. Each outcome is printed as it happens and the command
// exits non-zero when any item failed.
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/ethz-iam/iamctl/internal/audit"
	cerrors "github.com/ethz-iam/iamctl/internal/errors"
)

// MutationResult is the outcome of one mutation against one target.
type MutationResult struct {
	Operation string `json:"operation"`
	Target    string `json:"target"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// mutationReport collects per-item outcomes across the batch steps of one
// command and prints them as they occur.
type mutationReport struct {
	out     io.Writer
	auditor *audit.Logger
	admin   string
	quiet   bool
	results []MutationResult
	failed  int
}

func newMutationReport(out io.Writer, auditor *audit.Logger, admin string, quiet bool) *mutationReport {
	return &mutationReport{out: out, auditor: auditor, admin: admin, quiet: quiet}
}

// record logs one outcome: a success line or the error message, plus an
// audit entry.
func (r *mutationReport) record(operation, entity string, params map[string]interface{}, start time.Time, message string, err error) {
	result := MutationResult{Operation: operation, Target: entity, Success: err == nil}
	outcome := "success"
	if err != nil {
		result.Error = err.Error()
		outcome = "failure"
		r.failed++
		// Failures are always printed; quiet only mutes success lines.
		fmt.Fprintln(r.out, err.Error())
	} else if message != "" && !r.quiet {
		fmt.Fprintln(r.out, message)
	}
	r.results = append(r.results, result)

	_ = r.auditor.LogOperation(audit.Operation{
		Type:       operation,
		Admin:      r.admin,
		Entity:     entity,
		Parameters: params,
		Outcome:    outcome,
		Duration:   time.Since(start),
		Error:      err,
	})
}

// err returns nil when every recorded mutation succeeded, otherwise a
// partial-failure error carrying the counts.
func (r *mutationReport) err() error {
	if r.failed == 0 {
		return nil
	}
	return cerrors.NewPartialFailureError(r.failed, len(r.results))
}
