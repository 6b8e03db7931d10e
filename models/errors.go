package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// UnprocessableEntityError is rendered with the http status code 422
	UnprocessableEntityError = errors.New("unprocessable entity")
)

// Authentication related errors
var (
	ErrUnknownEvaluator = errors.Wrap(NotFoundError, "unknown evaluator")
	ErrInvalidPassword  = errors.Wrap(UnAuthorizedError, "invalid password")
)

// Ratings export related errors
var (
	ErrMissingColumn     = errors.Wrap(BadParameterError, "ratings export is missing a required column")
	ErrMalformedQueryNum = errors.Wrap(BadParameterError, "query number is not numeric")
)

// Adjudication related errors
var (
	ErrUnknownQuery       = errors.Wrap(NotFoundError, "query is not in the disagreement partition")
	ErrIllegalTransition  = errors.Wrap(BadParameterError, "illegal screen transition")
	ErrNothingToAdvanceTo = errors.Wrap(NotFoundError, "no incomplete query left in group")
)

// Evaluation related errors
var (
	ErrUnknownAssignment = errors.Wrap(NotFoundError, "query is not in the evaluator's assignment")
	ErrMissingReasons    = errors.Wrap(UnprocessableEntityError, "preference reasons are required")
)

// IncompleteAdjudicationError reports the fields a reviewer still has to fill
// in before a resolution can be accepted. The three lists hold display names
// and are reported in that order.
type IncompleteAdjudicationError struct {
	MissingRatings    []string
	MissingFindings   []string
	MissingRootCauses []string
}

func (e IncompleteAdjudicationError) Error() string {
	return fmt.Sprintf(
		"incomplete adjudication: missing ratings %v, missing findings %v, missing root causes %v",
		e.MissingRatings, e.MissingFindings, e.MissingRootCauses)
}

func (e IncompleteAdjudicationError) Unwrap() error {
	return UnprocessableEntityError
}
