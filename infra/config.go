package infra

type GcpConfig struct {
	ProjectId                    string
	GoogleApplicationCredentials string
	EnableTracing                bool
}

type TelemetrySamplingMap struct {
	HttpRoutes map[string]float64
	SpanNames  map[string]float64
}

type TelemetryConfiguration struct {
	Enabled         bool
	ApplicationName string
	ProjectID       string
	Exporter        string
	SamplingMap     TelemetrySamplingMap
}
