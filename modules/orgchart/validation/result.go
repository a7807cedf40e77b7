package validation

import "time"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one validation observation: an error, a warning or a
// recommendation, identified by a stable code and scoped to a component.
type Finding struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Severity  Severity       `json:"severity"`
	Component string         `json:"component"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// IsCritical reports whether the finding carries the is_critical detail flag.
func (f Finding) IsCritical() bool {
	if f.Details == nil {
		return false
	}
	v, ok := f.Details["is_critical"].(bool)
	return ok && v
}

// Result accumulates validation findings. It never fails: every Add method
// appends and returns. Valid flips to false on the first error and stays
// false for the lifetime of the result.
//
// Valid and HasCriticalErrors are deliberately independent signals: Valid
// reacts to any error, critical errors are the subset that blocks regulatory
// compliance. CompliesWithRegulations is the single authoritative compliance
// predicate derived from both.
type Result struct {
	Valid           bool           `json:"is_valid"`
	Errors          []Finding      `json:"errors"`
	Warnings        []Finding      `json:"warnings"`
	Recommendations []Finding      `json:"recommendations"`
	Summary         map[string]any `json:"summary"`
	Timestamp       time.Time      `json:"validation_timestamp"`
}

// NewResult returns an empty, valid result stamped with the current time.
func NewResult() *Result {
	return &Result{
		Valid:           true,
		Errors:          []Finding{},
		Warnings:        []Finding{},
		Recommendations: []Finding{},
		Summary:         map[string]any{},
		Timestamp:       time.Now().UTC(),
	}
}

// AddError records an error finding and marks the result invalid.
func (r *Result) AddError(code, message, component string, details map[string]any) {
	r.Valid = false
	r.Errors = append(r.Errors, Finding{
		Code:      code,
		Message:   message,
		Severity:  SeverityError,
		Component: component,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// AddCriticalError records an error finding flagged is_critical.
func (r *Result) AddCriticalError(code, message, component string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	details["is_critical"] = true
	r.AddError(code, message, component, details)
}

// AddWarning records a warning finding; Valid is unaffected.
func (r *Result) AddWarning(code, message, component string, details map[string]any) {
	r.Warnings = append(r.Warnings, Finding{
		Code:      code,
		Message:   message,
		Severity:  SeverityWarning,
		Component: component,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// AddRecommendation records an informational finding; Valid is unaffected.
func (r *Result) AddRecommendation(code, message, component string, details map[string]any) {
	r.Recommendations = append(r.Recommendations, Finding{
		Code:      code,
		Message:   message,
		Severity:  SeverityInfo,
		Component: component,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// CriticalErrors returns the errors whose details carry is_critical=true.
func (r *Result) CriticalErrors() []Finding {
	out := make([]Finding, 0)
	for _, e := range r.Errors {
		if e.IsCritical() {
			out = append(out, e)
		}
	}
	return out
}

// HasCriticalErrors reports whether any critical error was recorded.
func (r *Result) HasCriticalErrors() bool {
	for _, e := range r.Errors {
		if e.IsCritical() {
			return true
		}
	}
	return false
}

// CompliesWithRegulations is the authoritative compliance predicate: no
// errors at all, critical or otherwise.
func (r *Result) CompliesWithRegulations() bool {
	return r.Valid && !r.HasCriticalErrors()
}

// Merge appends another result's findings and summary into this one,
// combining validity.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Recommendations = append(r.Recommendations, other.Recommendations...)
	for k, v := range other.Summary {
		r.Summary[k] = v
	}
}

// ToMap renders the result as the JSON-serializable report shape consumed
// by callers.
func (r *Result) ToMap() map[string]any {
	summary := map[string]any{
		"total_errors":              len(r.Errors),
		"total_warnings":            len(r.Warnings),
		"total_recommendations":     len(r.Recommendations),
		"critical_errors":           len(r.CriticalErrors()),
		"complies_with_regulations": r.CompliesWithRegulations(),
	}
	for k, v := range r.Summary {
		summary[k] = v
	}
	return map[string]any{
		"is_valid":             r.Valid,
		"validation_timestamp": r.Timestamp,
		"summary":              summary,
		"errors":               r.Errors,
		"warnings":             r.Warnings,
		"recommendations":      r.Recommendations,
	}
}
