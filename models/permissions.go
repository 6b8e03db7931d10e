package models

type Permission int

const (
	ADJUDICATION_QUEUE_READ Permission = iota
	ADJUDICATION_SUBMIT
	EVALUATION_READ
	EVALUATION_SUBMIT
	PROGRESS_READ
	DASHBOARD_READ
	RECOVERY_RUN
)

func (p Permission) String() string {
	switch p {
	case ADJUDICATION_QUEUE_READ:
		return "ADJUDICATION_QUEUE_READ"
	case ADJUDICATION_SUBMIT:
		return "ADJUDICATION_SUBMIT"
	case EVALUATION_READ:
		return "EVALUATION_READ"
	case EVALUATION_SUBMIT:
		return "EVALUATION_SUBMIT"
	case PROGRESS_READ:
		return "PROGRESS_READ"
	case DASHBOARD_READ:
		return "DASHBOARD_READ"
	case RECOVERY_RUN:
		return "RECOVERY_RUN"
	default:
		return "UNKNOWN_PERMISSION"
	}
}
