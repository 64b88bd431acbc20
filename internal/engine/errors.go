package engine

import "fmt"

// ErrorKind classifies calculation failures so the API layer can map
// them onto response statuses.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindSourceUnavailable ErrorKind = "source_unavailable"
	KindInvalidFormula    ErrorKind = "invalid_formula"
	KindCyclicDefinition  ErrorKind = "cyclic_definition"
)

// Error is a calculation failure tied to a KPI and, for load failures,
// the table that could not be read.
type Error struct {
	Kind  ErrorKind
	KPI   string
	Table string
	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("KPI %s not found in catalogue", e.KPI)
	case KindSourceUnavailable:
		return fmt.Sprintf("could not load data from %s: %v", e.Table, e.cause)
	case KindInvalidFormula:
		return fmt.Sprintf("KPI %s has a malformed ratio formula", e.KPI)
	case KindCyclicDefinition:
		return fmt.Sprintf("KPI %s participates in a cyclic ratio definition", e.KPI)
	}
	return fmt.Sprintf("KPI %s: calculation failed", e.KPI)
}

// Unwrap exposes the underlying load error, if any.
func (e *Error) Unwrap() error { return e.cause }

func notFoundErr(kpiID string) *Error {
	return &Error{Kind: KindNotFound, KPI: kpiID}
}

func sourceErr(kpiID, tbl string, cause error) *Error {
	return &Error{Kind: KindSourceUnavailable, KPI: kpiID, Table: tbl, cause: cause}
}

func formulaErr(kpiID string) *Error {
	return &Error{Kind: KindInvalidFormula, KPI: kpiID}
}

func cycleErr(kpiID string) *Error {
	return &Error{Kind: KindCyclicDefinition, KPI: kpiID}
}
