package models

type AnalyticsEvent string

const (
	AnalyticsTokenCreated          AnalyticsEvent = "Created a Token"
	AnalyticsAdjudicationSubmitted AnalyticsEvent = "Submitted an Adjudication"
	AnalyticsEvaluationGraded      AnalyticsEvent = "Graded an Evaluation Stage"
	AnalyticsComparisonSubmitted   AnalyticsEvent = "Submitted a Comparison"
	AnalyticsDatasetMerged         AnalyticsEvent = "Merged the Final Dataset"
	AnalyticsProgressRecovered     AnalyticsEvent = "Recovered Progress"
	AnalyticsEvaluationsReset      AnalyticsEvent = "Reset Evaluations"
)
