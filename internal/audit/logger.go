// Package audit provides audit logging for privileged IAM operations.
//
// Purpose:
//
//	Emit one structured JSON log entry for every mutation against the IAM
//	backend (deletion, service grant/revoke, password rotation, membership
//	changes) with timestamp, acting admin, target entity, outcome and
//	duration. Sensitive parameter values are masked before they reach the
//	log stream.
//
// Dependencies:
//   - encoding/json: Structured JSON log output
package audit

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"
)

// Logger emits audit entries for privileged operations.
type Logger struct {
	output *json.Encoder
}

// NewLogger creates an audit logger writing to w. A nil writer defaults to
// stderr so audit entries never mix with command output on stdout.
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{output: json.NewEncoder(w)}
}

// Operation describes one privileged operation to be logged.
type Operation struct {
	Type       string                 // user_delete, service_grant, password_set, ...
	Admin      string                 // acting admin username
	Entity     string                 // target entity identifier
	Parameters map[string]interface{} // masked before logging
	Outcome    string                 // success, failure
	Duration   time.Duration
	Error      error
}

// entry is the wire form of one audit record.
type entry struct {
	Timestamp  string                 `json:"timestamp"`
	Operation  string                 `json:"operation"`
	Admin      string                 `json:"admin,omitempty"`
	Entity     string                 `json:"entity,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Outcome    string                 `json:"outcome"`
	Duration   string                 `json:"duration,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// LogOperation writes one audit entry.
func (l *Logger) LogOperation(op Operation) error {
	e := entry{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Operation:  op.Type,
		Admin:      op.Admin,
		Entity:     op.Entity,
		Parameters: maskParameters(op.Parameters),
		Outcome:    op.Outcome,
	}
	if op.Duration > 0 {
		e.Duration = op.Duration.String()
	}
	if op.Error != nil {
		e.Error = op.Error.Error()
	}
	return l.output.Encode(e)
}

var sensitiveKeys = []string{"password", "secret", "token", "credential"}

// maskParameters masks values whose key names something secret.
func maskParameters(params map[string]interface{}) map[string]interface{} {
	if params == nil {
		return nil
	}

	masked := make(map[string]interface{}, len(params))
	for k, v := range params {
		if isSensitiveKey(k) && v != nil {
			masked[k] = mask(v)
		} else {
			masked[k] = v
		}
	}
	return masked
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func mask(v interface{}) string {
	s, ok := v.(string)
	if !ok || len(s) <= 4 {
		return "***"
	}
	return "***" + s[len(s)-4:]
}
