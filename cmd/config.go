package cmd

// CompiledConfig carries the values baked into the binary at build time with
// -ldflags, as opposed to the environment-provided runtime configuration.
type CompiledConfig struct {
	Version         string
	SegmentWriteKey string
}
