package dto

import "github.com/gmkhealth/verdict-backend/models"

type ProgressStats struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Remaining int     `json:"remaining"`
	Percent   float64 `json:"percent"`
}

func AdaptProgressStatsDto(stats models.ProgressStats) ProgressStats {
	return ProgressStats{
		Total:     stats.Total,
		Completed: stats.Completed,
		Remaining: stats.Remaining,
		Percent:   stats.Percent,
	}
}
