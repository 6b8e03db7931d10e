package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
}

type ErrorCode string

const (
	// adjudication submission related
	IncompleteAdjudication ErrorCode = "incomplete_adjudication"
	NothingToAdvanceTo     ErrorCode = "nothing_to_advance_to"

	// session related
	InvalidPassword   ErrorCode = "invalid_password"
	IllegalTransition ErrorCode = "illegal_screen_transition"

	// general
	UnknownEvaluator ErrorCode = "unknown_evaluator"
)
