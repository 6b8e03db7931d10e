package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gmkhealth/verdict-backend/mocks"
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/repositories/clock"
)

type AdjudicationUsecaseTestSuite struct {
	suite.Suite
	enforceSecurity     *mocks.EnforceSecurity
	partitionRepository *mocks.PartitionRepository
	snapshotRepository  *mocks.AdjudicationSnapshotRepository
	mirrorRepository    *mocks.SheetsMirrorRepository

	ctx       context.Context
	now       time.Time
	bucketUrl string

	narrow    models.QueryRecord
	wide      models.QueryRecord
	tiebreak  models.QueryRecord
	otherSide models.QueryRecord
	disagreed []models.QueryRecord
	snapshot  models.AdjudicationSnapshot

	repositoryError error
	securityError   error
}

func (suite *AdjudicationUsecaseTestSuite) SetupTest() {
	suite.enforceSecurity = new(mocks.EnforceSecurity)
	suite.partitionRepository = new(mocks.PartitionRepository)
	suite.snapshotRepository = new(mocks.AdjudicationSnapshotRepository)
	suite.mirrorRepository = new(mocks.SheetsMirrorRepository)

	suite.ctx = context.Background()
	suite.now = time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	suite.bucketUrl = "file:///verdict-data"

	// Group A corpus: one completed single-field query, two incomplete
	// two-field queries tied on width, one incomplete four-field query.
	suite.narrow = models.QueryRecord{
		QueryKey:       "P001_1",
		PatientId:      "P001",
		QueryNum:       1,
		Group:          models.GroupA,
		QueryType:      "Diagnosis",
		Disagreements:  []models.ComparisonKey{"hallucination_a"},
		NDisagreements: 1,
	}
	suite.wide = models.QueryRecord{
		QueryKey:  "P002_2",
		PatientId: "P002",
		QueryNum:  2,
		Group:     models.GroupA,
		QueryType: "Treatment",
		Evaluator1: models.EvaluatorSheet{
			Name:   "Evaluator 1",
			ModelA: models.ModelRatings{models.MetricSafety: {Rating: "No Safety Omission (Safe)"}},
		},
		Evaluator2: models.EvaluatorSheet{
			Name:   "Evaluator 2",
			ModelA: models.ModelRatings{models.MetricSafety: {Rating: "Yes, Safety Omission (Unsafe)"}},
		},
		Disagreements:  []models.ComparisonKey{"safety_a", "preference"},
		NDisagreements: 2,
	}
	suite.tiebreak = models.QueryRecord{
		QueryKey:       "P004_4",
		PatientId:      "P004",
		QueryNum:       4,
		Group:          models.GroupA,
		QueryType:      "Diagnosis",
		Disagreements:  []models.ComparisonKey{"source_b", "flow_b"},
		NDisagreements: 2,
	}
	suite.otherSide = models.QueryRecord{
		QueryKey:       "P009_3",
		PatientId:      "P009",
		QueryNum:       3,
		Group:          models.GroupB,
		Disagreements:  []models.ComparisonKey{"content_a"},
		NDisagreements: 1,
	}
	suite.disagreed = []models.QueryRecord{suite.narrow, suite.wide, suite.tiebreak, suite.otherSide}

	suite.snapshot = models.AdjudicationSnapshot{
		"P001_1": {
			QueryKey:  "P001_1",
			Completed: true,
			Timestamp: suite.now.Add(-24 * time.Hour),
			Resolutions: map[models.ComparisonKey]models.MetricResolution{
				"hallucination_a": {
					Rating:    "No Hallucination",
					Findings:  "agreed after rereading the citation",
					RootCause: models.RootCauseOptions[0],
				},
			},
		},
	}

	suite.repositoryError = errors.New("some repository error")
	suite.securityError = errors.New("some security error")
}

func (suite *AdjudicationUsecaseTestSuite) makeUsecase() *AdjudicationUsecase {
	return &AdjudicationUsecase{
		enforceSecurity:     suite.enforceSecurity,
		credentials:         models.NewGroupCredentials(models.GroupA),
		partitionRepository: suite.partitionRepository,
		snapshotRepository:  suite.snapshotRepository,
		mirrorRepository:    suite.mirrorRepository,
		clock:               clock.NewMock(suite.now),
		bucketUrl:           suite.bucketUrl,
	}
}

func (suite *AdjudicationUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.enforceSecurity.AssertExpectations(t)
	suite.partitionRepository.AssertExpectations(t)
	suite.snapshotRepository.AssertExpectations(t)
	suite.mirrorRepository.AssertExpectations(t)
}

func (suite *AdjudicationUsecaseTestSuite) completeResolutions(query models.QueryRecord,
) map[models.ComparisonKey]models.MetricResolution {
	resolutions := make(map[models.ComparisonKey]models.MetricResolution, len(query.Disagreements))
	for _, key := range query.Disagreements {
		resolutions[key] = models.MetricResolution{
			Rating:    key.RatingOptions()[1],
			Findings:  "settled on the failure reading",
			RootCause: models.RootCauseOptions[1],
		}
	}
	return resolutions
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetQueue_nominal() {
	suite.enforceSecurity.On("ReadQueue", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(suite.snapshot, nil)

	queue, err := suite.makeUsecase().GetQueue(suite.ctx, models.GroupA)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.GroupA, queue.Group)
	assert.Equal(t, "Evaluator 1", queue.Evaluator1)
	assert.Equal(t, "Evaluator 2", queue.Evaluator2)
	assert.Equal(t, 0, queue.Recovered)

	// incomplete before completed, ties on width broken by query number
	keys := make([]string, 0, len(queue.Entries))
	for _, entry := range queue.Entries {
		keys = append(keys, entry.QueryKey)
	}
	assert.Equal(t, []string{"P002_2", "P004_4", "P001_1"}, keys)
	assert.True(t, queue.Entries[2].Completed)
	assert.Equal(t, models.SeverityMedium, queue.Entries[0].Severity)
	assert.Equal(t, models.NewProgressStats(3, 1), queue.Progress)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetQueue_recovers_an_empty_store() {
	recovered := models.AdjudicationRecord{
		QueryKey:  "P001_1",
		Completed: true,
		Timestamp: suite.now,
		Resolutions: map[models.ComparisonKey]models.MetricResolution{
			"hallucination_a": {Rating: "No Hallucination", Findings: "from the mirror", RootCause: models.RootCauseOptions[0]},
		},
	}
	suite.enforceSecurity.On("ReadQueue", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(models.AdjudicationSnapshot{}, nil)
	suite.mirrorRepository.On("PullAdjudications", suite.ctx, suite.now).Return([]models.AdjudicationRecord{recovered}, nil)
	suite.snapshotRepository.On("SaveSnapshot", suite.ctx, suite.bucketUrl,
		models.AdjudicationSnapshot{"P001_1": recovered}).Return(nil)

	queue, err := suite.makeUsecase().GetQueue(suite.ctx, models.GroupA)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Recovered)
	assert.Equal(t, models.NewProgressStats(3, 1), queue.Progress)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetQueue_serves_when_the_mirror_is_down() {
	suite.enforceSecurity.On("ReadQueue", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(models.AdjudicationSnapshot{}, nil)
	suite.mirrorRepository.On("PullAdjudications", suite.ctx, suite.now).
		Return([]models.AdjudicationRecord(nil), suite.repositoryError)

	queue, err := suite.makeUsecase().GetQueue(suite.ctx, models.GroupA)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, 0, queue.Recovered)
	assert.Equal(t, models.NewProgressStats(3, 0), queue.Progress)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetQueue_security_error() {
	suite.enforceSecurity.On("ReadQueue", models.GroupB).Return(suite.securityError)

	_, err := suite.makeUsecase().GetQueue(suite.ctx, models.GroupB)

	t := suite.T()
	assert.ErrorIs(t, err, suite.securityError)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetNextQuery_skips_completed_and_after() {
	suite.enforceSecurity.On("ReadQueue", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(suite.snapshot, nil)

	// P001_1 is completed, P002_2 is the query being left
	next, err := suite.makeUsecase().GetNextQuery(suite.ctx, models.GroupA, "P002_2")

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, "P004_4", next.QueryKey)
	assert.False(t, next.Completed)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetNextQuery_nothing_left() {
	done := models.AdjudicationSnapshot{
		"P001_1": {QueryKey: "P001_1", Completed: true},
		"P004_4": {QueryKey: "P004_4", Completed: true},
	}
	suite.enforceSecurity.On("ReadQueue", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(done, nil)

	_, err := suite.makeUsecase().GetNextQuery(suite.ctx, models.GroupA, "P002_2")

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrNothingToAdvanceTo)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetReviewBundle_nominal() {
	docLinks := models.DocLinksMap{
		"P002": {ModelAUrl: "https://docs.example.com/a/P002", ModelBUrl: "https://docs.example.com/b/P002"},
	}
	suite.enforceSecurity.On("ReadQueue", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(suite.snapshot, nil)
	suite.partitionRepository.On("LoadDocLinks", suite.ctx, suite.bucketUrl).Return(docLinks, nil)

	bundle, err := suite.makeUsecase().GetReviewBundle(suite.ctx, "P002_2")

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, suite.wide, bundle.Query)
	assert.Nil(t, bundle.Resolution)
	if assert.NotNil(t, bundle.DocLinks) {
		assert.Equal(t, "https://docs.example.com/a/P002", bundle.DocLinks.ModelAUrl)
	}

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetReviewBundle_existing_resolution() {
	suite.enforceSecurity.On("ReadQueue", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(suite.snapshot, nil)
	suite.partitionRepository.On("LoadDocLinks", suite.ctx, suite.bucketUrl).Return(models.DocLinksMap{}, nil)

	bundle, err := suite.makeUsecase().GetReviewBundle(suite.ctx, "P001_1")

	t := suite.T()
	assert.NoError(t, err)
	if assert.NotNil(t, bundle.Resolution) {
		assert.True(t, bundle.Resolution.Completed)
	}
	assert.Nil(t, bundle.DocLinks)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetReviewBundle_unknown_query() {
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)

	_, err := suite.makeUsecase().GetReviewBundle(suite.ctx, "P999_9")

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrUnknownQuery)
	assert.ErrorIs(t, err, models.NotFoundError)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_SubmitAdjudication_nominal() {
	resolutions := suite.completeResolutions(suite.wide)
	storedRecord := models.AdjudicationRecord{
		QueryKey:    "P002_2",
		Completed:   true,
		Timestamp:   suite.now,
		Resolutions: resolutions,
	}
	expectedSnapshot := models.AdjudicationSnapshot{
		"P001_1": suite.snapshot["P001_1"],
		"P002_2": storedRecord,
	}

	suite.enforceSecurity.On("SubmitAdjudication", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(suite.snapshot, nil)
	suite.snapshotRepository.On("SaveSnapshot", suite.ctx, suite.bucketUrl, expectedSnapshot).Return(nil)
	suite.mirrorRepository.On("PushAdjudication", suite.ctx, suite.wide, storedRecord, "Group A", suite.now).Return(nil)

	outcome, err := suite.makeUsecase().SubmitAdjudication(suite.ctx, "P002_2", resolutions)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.SubmitOutcome{QueryKey: "P002_2", Synced: true, NextQueryKey: "P004_4"}, outcome)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_SubmitAdjudication_resubmission_refreshes_the_timestamp() {
	resolutions := suite.completeResolutions(suite.narrow)
	revisedAt := suite.now.Add(time.Hour)
	storedRecord := models.AdjudicationRecord{
		QueryKey:    "P001_1",
		Completed:   true,
		Timestamp:   revisedAt,
		Resolutions: resolutions,
	}

	suite.enforceSecurity.On("SubmitAdjudication", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(suite.snapshot, nil)
	suite.snapshotRepository.On("SaveSnapshot", suite.ctx, suite.bucketUrl,
		models.AdjudicationSnapshot{"P001_1": storedRecord}).Return(nil)
	suite.mirrorRepository.On("PushAdjudication", suite.ctx, suite.narrow, storedRecord,
		"Group A", revisedAt).Return(nil)

	usecase := suite.makeUsecase()
	mockClock := clock.NewMock(suite.now)
	mockClock.Advance(time.Hour)
	usecase.clock = mockClock

	outcome, err := usecase.SubmitAdjudication(suite.ctx, "P001_1", resolutions)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.SubmitOutcome{QueryKey: "P001_1", Synced: true, NextQueryKey: "P002_2"}, outcome)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_SubmitAdjudication_mirror_down_is_not_an_error() {
	resolutions := suite.completeResolutions(suite.wide)

	suite.enforceSecurity.On("SubmitAdjudication", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(suite.snapshot, nil)
	suite.snapshotRepository.On("SaveSnapshot", suite.ctx, suite.bucketUrl,
		mock.AnythingOfType("models.AdjudicationSnapshot")).Return(nil)
	suite.mirrorRepository.On("PushAdjudication", suite.ctx, suite.wide,
		mock.AnythingOfType("models.AdjudicationRecord"), "Group A", suite.now).Return(suite.repositoryError)

	outcome, err := suite.makeUsecase().SubmitAdjudication(suite.ctx, "P002_2", resolutions)

	t := suite.T()
	assert.NoError(t, err)
	assert.False(t, outcome.Synced)
	assert.Equal(t, "P004_4", outcome.NextQueryKey)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_SubmitAdjudication_incomplete() {
	resolutions := map[models.ComparisonKey]models.MetricResolution{
		"safety_a": {
			Rating:    "Yes, Safety Omission (Unsafe)",
			Findings:  "  ",
			RootCause: models.RootCauseUnset,
		},
		// preference resolution entirely absent
	}
	suite.enforceSecurity.On("SubmitAdjudication", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)

	_, err := suite.makeUsecase().SubmitAdjudication(suite.ctx, "P002_2", resolutions)

	t := suite.T()
	assert.ErrorIs(t, err, models.UnprocessableEntityError)
	var incomplete models.IncompleteAdjudicationError
	if assert.ErrorAs(t, err, &incomplete) {
		assert.Equal(t, []string{"Model Preference"}, incomplete.MissingRatings)
		assert.Equal(t, []string{"Safety Omission (Model A)", "Model Preference"}, incomplete.MissingFindings)
		assert.Equal(t, []string{"Safety Omission (Model A)", "Model Preference"}, incomplete.MissingRootCauses)
	}

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_SubmitAdjudication_rejects_a_rating_outside_the_options() {
	resolutions := suite.completeResolutions(suite.wide)
	resolutions["safety_a"] = models.MetricResolution{
		Rating:    "Mostly fine",
		Findings:  "free text rating",
		RootCause: models.RootCauseOptions[0],
	}
	suite.enforceSecurity.On("SubmitAdjudication", models.GroupA).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)

	_, err := suite.makeUsecase().SubmitAdjudication(suite.ctx, "P002_2", resolutions)

	t := suite.T()
	assert.ErrorIs(t, err, models.BadParameterError)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_SubmitAdjudication_unknown_query() {
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)

	_, err := suite.makeUsecase().SubmitAdjudication(suite.ctx, "P999_9",
		map[models.ComparisonKey]models.MetricResolution{})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrUnknownQuery)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetProgress_for_one_group() {
	group := models.GroupA
	suite.enforceSecurity.On("ReadProgress", group).Return(nil)
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(suite.snapshot, nil)

	progress, err := suite.makeUsecase().GetProgress(suite.ctx, &group)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.NewProgressStats(3, 1), progress)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetProgress_overall_needs_every_group() {
	suite.enforceSecurity.On("ReadProgress", models.GroupA).Return(nil)
	suite.enforceSecurity.On("ReadProgress", models.GroupB).Return(suite.securityError)

	_, err := suite.makeUsecase().GetProgress(suite.ctx, nil)

	t := suite.T()
	assert.ErrorIs(t, err, suite.securityError)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_GetProgress_overall() {
	for _, group := range models.AllGroups {
		suite.enforceSecurity.On("ReadProgress", group).Return(nil)
	}
	suite.partitionRepository.On("LoadDisagreements", suite.ctx, suite.bucketUrl).Return(suite.disagreed, nil)
	suite.snapshotRepository.On("LoadSnapshot", suite.ctx, suite.bucketUrl).Return(suite.snapshot, nil)

	progress, err := suite.makeUsecase().GetProgress(suite.ctx, nil)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.NewProgressStats(4, 1), progress)

	suite.AssertExpectations()
}

func (suite *AdjudicationUsecaseTestSuite) Test_ValidateScreenTransition() {
	t := suite.T()
	usecase := suite.makeUsecase()

	screen, err := usecase.ValidateScreenTransition(suite.ctx, "login", "queue")
	assert.NoError(t, err)
	assert.Equal(t, models.ScreenQueue, screen)

	// review to review is the auto-advance
	_, err = usecase.ValidateScreenTransition(suite.ctx, "review", "review")
	assert.NoError(t, err)

	_, err = usecase.ValidateScreenTransition(suite.ctx, "login", "review")
	assert.ErrorIs(t, err, models.ErrIllegalTransition)

	_, err = usecase.ValidateScreenTransition(suite.ctx, "queue", "lobby")
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestAdjudicationUsecase(t *testing.T) {
	suite.Run(t, new(AdjudicationUsecaseTestSuite))
}
