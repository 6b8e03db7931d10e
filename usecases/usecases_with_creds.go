package usecases

import (
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/usecases/security"
)

type UsecasesWithCreds struct {
	Usecases
	Credentials models.Credentials
}

func (usecases *UsecasesWithCreds) NewEnforceSecurity() security.EnforceSecurity {
	return &security.EnforceSecurityImpl{
		Credentials: usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceAdjudicationSecurity() security.EnforceSecurityAdjudication {
	return &security.EnforceSecurityAdjudicationImpl{
		EnforceSecurity: usecases.NewEnforceSecurity(),
		Credentials:     usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceEvaluationSecurity() security.EnforceSecurityEvaluation {
	return &security.EnforceSecurityEvaluationImpl{
		EnforceSecurity: usecases.NewEnforceSecurity(),
		Credentials:     usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceAdminSecurity() security.EnforceSecurityAdmin {
	return &security.EnforceSecurityAdminImpl{
		EnforceSecurity: usecases.NewEnforceSecurity(),
		Credentials:     usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewAdjudicationUsecase() AdjudicationUsecase {
	return AdjudicationUsecase{
		enforceSecurity:     usecases.NewEnforceAdjudicationSecurity(),
		credentials:         usecases.Credentials,
		partitionRepository: usecases.Repositories.PartitionRepository,
		snapshotRepository:  usecases.Repositories.AdjudicationSnapshotRepository,
		mirrorRepository:    usecases.Repositories.SheetsMirrorRepository,
		clock:               usecases.clock,
		bucketUrl:           usecases.bucketUrl,
	}
}

func (usecases *UsecasesWithCreds) NewEvaluationUsecase() EvaluationUsecase {
	return EvaluationUsecase{
		enforceSecurity:    usecases.NewEnforceEvaluationSecurity(),
		datasetRepository:  usecases.Repositories.QueryDatasetRepository,
		snapshotRepository: usecases.Repositories.EvaluationSnapshotRepository,
		mirrorRepository:   usecases.Repositories.SheetsMirrorRepository,
		bucketUrl:          usecases.bucketUrl,
		datasetFileName:    usecases.datasetFileName,
	}
}

func (usecases *UsecasesWithCreds) NewDashboardUsecase() DashboardUsecase {
	return DashboardUsecase{
		enforceSecurity:       usecases.NewEnforceAdminSecurity(),
		partitionRepository:   usecases.Repositories.PartitionRepository,
		adjudicationSnapshots: usecases.Repositories.AdjudicationSnapshotRepository,
		evaluationSnapshots:   usecases.Repositories.EvaluationSnapshotRepository,
		datasetRepository:     usecases.Repositories.QueryDatasetRepository,
		bucketUrl:             usecases.bucketUrl,
		datasetFileName:       usecases.datasetFileName,
	}
}

func (usecases *UsecasesWithCreds) NewPreparationUsecase() PreparationUsecase {
	return PreparationUsecase{
		enforceSecurity:     usecases.NewEnforceAdminSecurity(),
		exportRepository:    usecases.Repositories.RatingsExportRepository,
		partitionRepository: usecases.Repositories.PartitionRepository,
		bucketUrl:           usecases.bucketUrl,
		ratingsFileName:     usecases.ratingsFileName,
	}
}

func (usecases *UsecasesWithCreds) NewMergeUsecase() MergeUsecase {
	return MergeUsecase{
		enforceSecurity:     usecases.NewEnforceAdminSecurity(),
		partitionRepository: usecases.Repositories.PartitionRepository,
		snapshotRepository:  usecases.Repositories.AdjudicationSnapshotRepository,
		datasetRepository:   usecases.Repositories.MergedDatasetRepository,
		bucketUrl:           usecases.bucketUrl,
	}
}

func (usecases *UsecasesWithCreds) NewRecoveryUsecase() RecoveryUsecase {
	return RecoveryUsecase{
		enforceSecurity:       usecases.NewEnforceAdminSecurity(),
		adjudicationSnapshots: usecases.Repositories.AdjudicationSnapshotRepository,
		evaluationSnapshots:   usecases.Repositories.EvaluationSnapshotRepository,
		mirrorRepository:      usecases.Repositories.SheetsMirrorRepository,
		submissionsRepository: usecases.Repositories.SubmissionsExportRepository,
		clock:                 usecases.clock,
		bucketUrl:             usecases.bucketUrl,
		submissionsFileName:   usecases.submissionsFileName,
	}
}
