package dto

import "github.com/gmkhealth/verdict-backend/models"

type RecoveryReport struct {
	Recovered  int      `json:"recovered"`
	SampleKeys []string `json:"sample_keys"`
}

func AdaptRecoveryReportDto(report models.RecoveryReport) RecoveryReport {
	return RecoveryReport{
		Recovered:  report.Recovered,
		SampleKeys: report.SampleKeys,
	}
}
