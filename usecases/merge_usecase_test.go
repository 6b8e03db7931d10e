package usecases

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gmkhealth/verdict-backend/mocks"
	"github.com/gmkhealth/verdict-backend/models"
)

type MergeUsecaseTestSuite struct {
	suite.Suite
	enforceSecurity     *mocks.EnforceSecurity
	partitionRepository *mocks.PartitionRepository
	snapshotRepository  *mocks.AdjudicationSnapshotRepository
	datasetRepository   *mocks.MergedDatasetRepository

	ctx       context.Context
	bucketUrl string

	agreed    models.QueryRecord
	completed models.QueryRecord
	missing   models.QueryRecord
	partition models.Partition
	snapshot  models.AdjudicationSnapshot

	securityError error
}

func (suite *MergeUsecaseTestSuite) SetupTest() {
	suite.enforceSecurity = new(mocks.EnforceSecurity)
	suite.partitionRepository = new(mocks.PartitionRepository)
	suite.snapshotRepository = new(mocks.AdjudicationSnapshotRepository)
	suite.datasetRepository = new(mocks.MergedDatasetRepository)

	suite.ctx = context.Background()
	suite.bucketUrl = "file:///verdict-data"

	suite.agreed = models.QueryRecord{
		QueryKey:       "P010_1",
		PatientId:      "P010",
		QueryNum:       1,
		Group:          models.GroupB,
		QueryType:      "Diagnosis",
		PhiDependency:  "No",
		PatientSummary: "72F with progressive dyspnea",
		QueryText:      "What explains the effusion?",
		Canonical: &models.CanonicalRatings{
			ModelA:            models.ModelRatings{models.MetricFlow: {Rating: "No flow issues"}},
			ModelB:            models.ModelRatings{models.MetricFlow: {Rating: "Yes, flow issues", Findings: "abrupt ending"}},
			Preference:        "Model A",
			PreferenceReasons: "complete answer",
		},
	}
	suite.completed = models.QueryRecord{
		QueryKey:      "P001_2",
		PatientId:     "P001",
		QueryNum:      2,
		Group:         models.GroupA,
		QueryType:     "Treatment",
		PhiDependency: "Yes",
		Evaluator1: models.EvaluatorSheet{
			Name: "Evaluator 1",
			ModelA: models.ModelRatings{
				models.MetricSafety: {Rating: "No Safety Omission (Safe)"},
				models.MetricFlow:   {Rating: "No flow issues", Findings: "clean"},
			},
			ModelB:            models.ModelRatings{models.MetricSafety: {Rating: "No Safety Omission (Safe)"}},
			Preference:        "Model A",
			PreferenceReasons: "initial pick",
		},
		Evaluator2: models.EvaluatorSheet{
			Name: "Evaluator 2",
			ModelA: models.ModelRatings{
				models.MetricSafety: {Rating: "Yes, Safety Omission (Unsafe)", Findings: "renal dosing"},
			},
			Preference: "Model B",
		},
		Disagreements:  []models.ComparisonKey{"safety_a", "preference"},
		NDisagreements: 2,
	}
	suite.missing = models.QueryRecord{
		QueryKey:       "P003_4",
		PatientId:      "P003",
		QueryNum:       4,
		Group:          models.GroupA,
		Disagreements:  []models.ComparisonKey{"flow_b"},
		NDisagreements: 1,
	}
	suite.partition = models.Partition{
		Agreed:    []models.QueryRecord{suite.agreed},
		Disagreed: []models.QueryRecord{suite.completed, suite.missing},
	}
	suite.snapshot = models.AdjudicationSnapshot{
		"P001_2": {
			QueryKey:  "P001_2",
			Completed: true,
			Resolutions: map[models.ComparisonKey]models.MetricResolution{
				"safety_a": {
					Rating:          "Yes, Safety Omission (Unsafe)",
					Findings:        "missed the contraindication",
					RootCause:       models.RootCauseOptions[0],
					RootCauseDetail: "evaluator 1 skimmed the medication list",
				},
				"preference": {
					Rating:    "Model B",
					Findings:  "model B covered the safety angle",
					RootCause: models.RootCauseOptions[1],
				},
			},
		},
	}

	suite.securityError = errors.New("some security error")
}

func (suite *MergeUsecaseTestSuite) makeUsecase() *MergeUsecase {
	return &MergeUsecase{
		enforceSecurity:     suite.enforceSecurity,
		partitionRepository: suite.partitionRepository,
		snapshotRepository:  suite.snapshotRepository,
		datasetRepository:   suite.datasetRepository,
		bucketUrl:           suite.bucketUrl,
	}
}

func (suite *MergeUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.enforceSecurity.AssertExpectations(t)
	suite.partitionRepository.AssertExpectations(t)
	suite.snapshotRepository.AssertExpectations(t)
	suite.datasetRepository.AssertExpectations(t)
}

func (suite *MergeUsecaseTestSuite) Test_MergeAdjudicated_rows_and_overrides() {
	result := MergeAdjudicated(suite.partition, suite.snapshot)

	t := suite.T()
	assert.Equal(t, 1, result.AgreedCount)
	assert.Equal(t, 1, result.AdjudicatedCount)
	assert.Equal(t, []string{"P003_4"}, result.MissingAdjudications)

	// group A before group B, the unadjudicated query dropped
	assert.Len(t, result.Rows, 2)
	adjudicated, agreedRow := result.Rows[0], result.Rows[1]
	assert.Equal(t, "P001", adjudicated.PatientId)
	assert.Equal(t, models.StatusAdjudicated, adjudicated.Status)
	assert.Equal(t, "P010", agreedRow.PatientId)
	assert.Equal(t, models.StatusAgreed, agreedRow.Status)

	// the disagreed field takes the adjudicated verdict
	assert.Equal(t, models.MetricGrade{
		Rating:   "Yes, Safety Omission (Unsafe)",
		Findings: "missed the contraindication",
	}, adjudicated.ModelA[models.MetricSafety])
	assert.Equal(t, "Model B", adjudicated.Preference)
	assert.Equal(t, "model B covered the safety angle", adjudicated.PreferenceReasons)

	// agreed fields keep evaluator 1's grade
	assert.Equal(t, models.MetricGrade{Rating: "No flow issues", Findings: "clean"},
		adjudicated.ModelA[models.MetricFlow])

	// agreed queries carry their canonical ratings
	assert.Equal(t, "Model A", agreedRow.Preference)
	assert.Equal(t, "No flow issues", agreedRow.ModelA[models.MetricFlow].Rating)
}

func (suite *MergeUsecaseTestSuite) Test_MergeAdjudicated_does_not_mutate_the_partition() {
	MergeAdjudicated(suite.partition, suite.snapshot)

	suite.Equal("No Safety Omission (Safe)",
		suite.completed.Evaluator1.ModelA[models.MetricSafety].Rating)
	suite.Equal("Model A", suite.completed.Evaluator1.Preference)
}

func (suite *MergeUsecaseTestSuite) Test_MergeAdjudicated_calibration_rows() {
	result := MergeAdjudicated(suite.partition, suite.snapshot)

	t := suite.T()
	assert.Len(t, result.Calibration, 2)

	safety := result.Calibration[0]
	assert.Equal(t, "P001_2", safety.QueryKey)
	assert.Equal(t, models.ComparisonKey("safety_a"), safety.Metric)
	assert.Equal(t, "A", safety.Model)
	assert.Equal(t, "Evaluator 1", safety.Evaluator1Name)
	assert.Equal(t, "No Safety Omission (Safe)", safety.Evaluator1Rating)
	assert.Equal(t, "Yes, Safety Omission (Unsafe)", safety.Evaluator2Rating)
	assert.Equal(t, "Yes, Safety Omission (Unsafe)", safety.AdjudicatedRating)
	assert.Equal(t, models.RootCauseOptions[0], safety.RootCause)
	assert.Equal(t, "evaluator 1 skimmed the medication list", safety.RootCauseDetail)

	preference := result.Calibration[1]
	assert.Equal(t, "comparison", preference.Model)
	assert.Equal(t, "Model A", preference.Evaluator1Rating)
	assert.Equal(t, "Model B", preference.Evaluator2Rating)
	assert.Equal(t, "Model B", preference.AdjudicatedRating)
}

func (suite *MergeUsecaseTestSuite) Test_MergeDataset_nominal() {
	suite.enforceSecurity.On("MergeDataset").Return(nil)
	suite.partitionRepository.On("LoadPartition", mock.Anything, suite.bucketUrl).Return(suite.partition, nil)
	suite.snapshotRepository.On("LoadSnapshot", mock.Anything, suite.bucketUrl).Return(suite.snapshot, nil)

	expected := MergeAdjudicated(suite.partition, suite.snapshot)
	suite.datasetRepository.On("SaveFinalDataset", mock.Anything, suite.bucketUrl, expected.Rows).Return(nil)
	suite.datasetRepository.On("SaveCalibrationReport", mock.Anything, suite.bucketUrl, expected.Calibration).Return(nil)

	result, err := suite.makeUsecase().MergeDataset(suite.ctx)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	suite.AssertExpectations()
}

func (suite *MergeUsecaseTestSuite) Test_MergeDataset_skips_the_calibration_write_when_empty() {
	suite.enforceSecurity.On("MergeDataset").Return(nil)
	suite.partitionRepository.On("LoadPartition", mock.Anything, suite.bucketUrl).
		Return(models.Partition{
			Agreed:    []models.QueryRecord{suite.agreed},
			Disagreed: []models.QueryRecord{suite.missing},
		}, nil)
	suite.snapshotRepository.On("LoadSnapshot", mock.Anything, suite.bucketUrl).
		Return(models.AdjudicationSnapshot{}, nil)
	suite.datasetRepository.On("SaveFinalDataset", mock.Anything, suite.bucketUrl,
		mock.AnythingOfType("[]models.FinalDatasetRow")).Return(nil)

	result, err := suite.makeUsecase().MergeDataset(suite.ctx)

	t := suite.T()
	assert.NoError(t, err)
	assert.Empty(t, result.Calibration)
	assert.Equal(t, []string{"P003_4"}, result.MissingAdjudications)

	suite.AssertExpectations()
}

func (suite *MergeUsecaseTestSuite) Test_MergeDataset_security_error() {
	suite.enforceSecurity.On("MergeDataset").Return(suite.securityError)

	_, err := suite.makeUsecase().MergeDataset(suite.ctx)

	t := suite.T()
	assert.ErrorIs(t, err, suite.securityError)

	suite.AssertExpectations()
}

func TestMergeUsecase(t *testing.T) {
	suite.Run(t, new(MergeUsecaseTestSuite))
}
