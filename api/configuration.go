package api

import (
	"time"
)

type Configuration struct {
	Env                 string
	AppName             string
	AppVersion          string
	Port                string
	AppUrl              string
	RequestLoggingLevel string
	TokenLifetimeMinute int
	SegmentWriteKey     string
	DisableSegment      bool
	DefaultTimeout      time.Duration
	RecoveryTimeout     time.Duration

	// Raw "name=secret" comma lists, parsed by token.NewPasswordDirectory.
	GroupPasswords     string
	EvaluatorPasswords string
	AdminPassword      string
}
