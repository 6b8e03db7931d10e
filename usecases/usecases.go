package usecases

import (
	"github.com/gmkhealth/verdict-backend/repositories"
	"github.com/gmkhealth/verdict-backend/repositories/clock"
)

const (
	DefaultBucketUrl           = "file://./verdict_data?create_dir=1"
	DefaultRatingsFileName     = "ratings_export.csv"
	DefaultDatasetFileName     = "query_dataset.csv"
	DefaultSubmissionsFileName = "submissions_export.csv"
)

type Usecases struct {
	Repositories repositories.Repositories

	clock               clock.Clock
	bucketUrl           string
	ratingsFileName     string
	datasetFileName     string
	submissionsFileName string
}

type Option func(*options)

func WithBucketUrl(bucketUrl string) Option {
	return func(o *options) {
		o.bucketUrl = bucketUrl
	}
}

func WithRatingsFileName(fileName string) Option {
	return func(o *options) {
		o.ratingsFileName = fileName
	}
}

func WithDatasetFileName(fileName string) Option {
	return func(o *options) {
		o.datasetFileName = fileName
	}
}

func WithSubmissionsFileName(fileName string) Option {
	return func(o *options) {
		o.submissionsFileName = fileName
	}
}

// WithClock substitutes the wall clock, used by tests to pin timestamps.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

type options struct {
	clock               clock.Clock
	bucketUrl           string
	ratingsFileName     string
	datasetFileName     string
	submissionsFileName string
}

func newUsecasesWithOptions(repositories repositories.Repositories, o *options) Usecases {
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.bucketUrl == "" {
		o.bucketUrl = DefaultBucketUrl
	}
	if o.ratingsFileName == "" {
		o.ratingsFileName = DefaultRatingsFileName
	}
	if o.datasetFileName == "" {
		o.datasetFileName = DefaultDatasetFileName
	}
	if o.submissionsFileName == "" {
		o.submissionsFileName = DefaultSubmissionsFileName
	}
	return Usecases{
		Repositories:        repositories,
		clock:               o.clock,
		bucketUrl:           o.bucketUrl,
		ratingsFileName:     o.ratingsFileName,
		datasetFileName:     o.datasetFileName,
		submissionsFileName: o.submissionsFileName,
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return newUsecasesWithOptions(repositories, o)
}
