package repositories

import (
	"crypto/rsa"
	"net/http"

	"github.com/gmkhealth/verdict-backend/infra"
)

type options struct {
	sheetsClient *http.Client
}

type Option func(*options)

// WithSheetsHttpClient overrides the mirror HTTP client, used by tests to
// point the repository at an intercepted transport.
func WithSheetsHttpClient(client *http.Client) Option {
	return func(o *options) {
		o.sheetsClient = client
	}
}

type Repositories struct {
	BlobRepository                 BlobRepository
	SessionJwtRepository           *SessionJwtRepository
	AdjudicationSnapshotRepository AdjudicationSnapshotRepository
	EvaluationSnapshotRepository   EvaluationSnapshotRepository
	PartitionRepository            PartitionRepository
	RatingsExportRepository        RatingsExportRepository
	QueryDatasetRepository         QueryDatasetRepository
	SubmissionsExportRepository    SubmissionsExportRepository
	MergedDatasetRepository        MergedDatasetRepository
	SheetsMirrorRepository         SheetsMirrorRepository
}

func NewRepositories(jwtSigningKey *rsa.PrivateKey, sheetsEndpointUrl string, opts ...Option) Repositories {
	o := options{
		sheetsClient: infra.NewSheetsHttpClient(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	blobRepository := NewBlobRepository()

	return Repositories{
		BlobRepository:                 blobRepository,
		SessionJwtRepository:           NewSessionJwtRepository(jwtSigningKey),
		AdjudicationSnapshotRepository: NewAdjudicationSnapshotRepository(blobRepository),
		EvaluationSnapshotRepository:   NewEvaluationSnapshotRepository(blobRepository),
		PartitionRepository:            NewPartitionRepository(blobRepository),
		RatingsExportRepository:        NewRatingsExportRepository(blobRepository),
		QueryDatasetRepository:         NewQueryDatasetRepository(blobRepository),
		SubmissionsExportRepository:    NewSubmissionsExportRepository(blobRepository),
		MergedDatasetRepository:        NewMergedDatasetRepository(blobRepository),
		SheetsMirrorRepository:         NewSheetsMirrorRepository(sheetsEndpointUrl, o.sheetsClient),
	}
}
