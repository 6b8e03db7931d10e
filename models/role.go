package models

import "slices"

type Role int

const (
	NO_ROLE Role = iota
	EVALUATOR
	ADJUDICATOR
	REVIEW_ADMIN
)

func (r Role) String() string {
	switch r {
	case NO_ROLE:
		return "NO_ROLE"
	case EVALUATOR:
		return "EVALUATOR"
	case ADJUDICATOR:
		return "ADJUDICATOR"
	case REVIEW_ADMIN:
		return "REVIEW_ADMIN"
	default:
		return "UNKNOWN_ROLE"
	}
}

func (r Role) Permissions() []Permission {
	permissions := ROLES_PERMISSIONS[r]
	if permissions == nil {
		return []Permission{}
	}
	return permissions
}

func (r Role) HasPermission(permission Permission) bool {
	return slices.Contains(r.Permissions(), permission)
}

func RoleFromString(s string) Role {
	switch s {
	case "EVALUATOR":
		return EVALUATOR
	case "ADJUDICATOR":
		return ADJUDICATOR
	case "REVIEW_ADMIN":
		return REVIEW_ADMIN
	}
	return NO_ROLE
}

var ROLES_PERMISSIONS = map[Role][]Permission{
	NO_ROLE: {},
	EVALUATOR: {
		EVALUATION_READ,
		EVALUATION_SUBMIT,
	},
	ADJUDICATOR: {
		ADJUDICATION_QUEUE_READ,
		ADJUDICATION_SUBMIT,
		PROGRESS_READ,
	},
	REVIEW_ADMIN: {
		ADJUDICATION_QUEUE_READ,
		ADJUDICATION_SUBMIT,
		EVALUATION_READ,
		PROGRESS_READ,
		DASHBOARD_READ,
		RECOVERY_RUN,
	},
}
