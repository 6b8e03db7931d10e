package models

// EvaluationTask is one query an evaluator has to grade, carried with the
// context shown on the grading screens. BasePatientId names the patient
// block the query belongs to (four consecutive queries share one block).
type EvaluationTask struct {
	PatientId      string
	BasePatientId  string
	QueryNum       string
	FullQuery      string
	PatientSummary string
	Group          Group
	QueryType      string
	PhiDependency  string
}

// Assignment is the ordered task list of one evaluator, derived
// deterministically from the query dataset. Regenerating it from the same
// dataset always yields the same list.
type Assignment struct {
	Evaluator string
	Group     Group
	Tasks     []EvaluationTask
}

// Find returns the task for one patient and query number.
func (a Assignment) Find(patientId, queryNum string) (EvaluationTask, bool) {
	for _, task := range a.Tasks {
		if task.PatientId == patientId && task.QueryNum == queryNum {
			return task, true
		}
	}
	return EvaluationTask{}, false
}

// Next returns the task following the given one in assignment order.
func (a Assignment) Next(patientId, queryNum string) (EvaluationTask, bool) {
	for i, task := range a.Tasks {
		if task.PatientId == patientId && task.QueryNum == queryNum {
			if i+1 < len(a.Tasks) {
				return a.Tasks[i+1], true
			}
			return EvaluationTask{}, false
		}
	}
	return EvaluationTask{}, false
}

// TaskStatus pairs one assigned query with its evaluation stage flags, the
// query-list screen's row.
type TaskStatus struct {
	Task   EvaluationTask
	Record EvaluationRecord
}
