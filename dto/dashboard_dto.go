package dto

import (
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/pure_utils"
)

type GroupProgress struct {
	Group    string        `json:"group"`
	Progress ProgressStats `json:"progress"`
}

type RootCauseDistribution struct {
	RootCause string  `json:"root_cause"`
	Count     int     `json:"count"`
	Percent   float64 `json:"percent"`
}

type RootCauseByMetric struct {
	Metric    string `json:"metric"`
	Label     string `json:"label"`
	RootCause string `json:"root_cause"`
	Count     int    `json:"count"`
}

type AdjudicationDashboard struct {
	Overall    ProgressStats           `json:"overall"`
	PerGroup   []GroupProgress         `json:"per_group"`
	RootCauses []RootCauseDistribution `json:"root_causes"`
	CrossTab   []RootCauseByMetric     `json:"cross_tab"`
}

func AdaptAdjudicationDashboardDto(dashboard models.AdjudicationDashboard) AdjudicationDashboard {
	return AdjudicationDashboard{
		Overall: AdaptProgressStatsDto(dashboard.Overall),
		PerGroup: pure_utils.Map(dashboard.PerGroup, func(g models.GroupProgress) GroupProgress {
			return GroupProgress{
				Group:    g.Group.String(),
				Progress: AdaptProgressStatsDto(g.Progress),
			}
		}),
		RootCauses: pure_utils.Map(dashboard.RootCauses,
			func(d models.RootCauseDistribution) RootCauseDistribution {
				return RootCauseDistribution{
					RootCause: d.RootCause,
					Count:     d.Count,
					Percent:   d.Percent,
				}
			}),
		CrossTab: pure_utils.Map(dashboard.CrossTab,
			func(c models.RootCauseByMetric) RootCauseByMetric {
				return RootCauseByMetric{
					Metric:    string(c.Metric),
					Label:     c.Metric.DisplayName(),
					RootCause: c.RootCause,
					Count:     c.Count,
				}
			}),
	}
}

type EvaluatorProgress struct {
	Evaluator string  `json:"evaluator"`
	Group     string  `json:"group"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	ModelA    int     `json:"model_a"`
	ModelB    int     `json:"model_b"`
	Started   int     `json:"started"`
	Percent   float64 `json:"percent"`
}

type PatientCompletion struct {
	Evaluator string `json:"evaluator"`
	Group     string `json:"group"`
	PatientId string `json:"patient_id"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type EvaluationDashboard struct {
	TotalQueries   int                 `json:"total_queries"`
	TotalCompleted int                 `json:"total_completed"`
	Percent        float64             `json:"percent"`
	Evaluators     []EvaluatorProgress `json:"evaluators"`
	Patients       []PatientCompletion `json:"patients"`
}

func AdaptEvaluationDashboardDto(dashboard models.EvaluationDashboard) EvaluationDashboard {
	return EvaluationDashboard{
		TotalQueries:   dashboard.TotalQueries,
		TotalCompleted: dashboard.TotalCompleted,
		Percent:        dashboard.Percent,
		Evaluators: pure_utils.Map(dashboard.Evaluators,
			func(e models.EvaluatorProgress) EvaluatorProgress {
				return EvaluatorProgress{
					Evaluator: e.Evaluator,
					Group:     e.Group.String(),
					Total:     e.Total,
					Completed: e.Completed,
					ModelA:    e.ModelA,
					ModelB:    e.ModelB,
					Started:   e.Started,
					Percent:   e.Percent,
				}
			}),
		Patients: pure_utils.Map(dashboard.Patients,
			func(p models.PatientCompletion) PatientCompletion {
				return PatientCompletion{
					Evaluator: p.Evaluator,
					Group:     p.Group.String(),
					PatientId: p.PatientId,
					Completed: p.Completed,
					Total:     p.Total,
				}
			}),
	}
}
