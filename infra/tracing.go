package infra

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	gcppropagator "github.com/GoogleCloudPlatform/opentelemetry-operations-go/propagator"
	"google.golang.org/api/option"

	"go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type TelemetryRessources struct {
	TracerProvider    trace.TracerProvider
	Tracer            trace.Tracer
	TextMapPropagator propagation.TextMapPropagator
}

func NoopTelemetry() TelemetryRessources {
	return TelemetryRessources{
		TracerProvider:    noop.NewTracerProvider(),
		Tracer:            &noop.Tracer{},
		TextMapPropagator: nil,
	}
}

func InitTelemetry(configuration TelemetryConfiguration, apiVersion string) (TelemetryRessources, error) {
	if !configuration.Enabled {
		return NoopTelemetry(), nil
	}

	var exporter sdktrace.SpanExporter

	switch configuration.Exporter {
	case "gcp":
		projectId := configuration.ProjectID
		if projectId == "" {
			// GOOGLE_CLOUD_PROJECT not set, ask the metadata server.
			projectId, _ = GetProjectId()
		}
		gcpExporter, err := texporter.New(
			texporter.WithProjectID(projectId),
			texporter.WithTraceClientOptions([]option.ClientOption{option.WithTelemetryDisabled()}),
		)
		if err != nil {
			return TelemetryRessources{}, fmt.Errorf("texporter.New error: %w", err)
		}

		exporter = gcpExporter

	default: // "otlp"
		otlpExporter, err := otlptracegrpc.New(context.Background())
		if err != nil {
			return TelemetryRessources{}, fmt.Errorf("otlptracegrpc.New error: %w", err)
		}

		exporter = otlpExporter
	}

	res, err := resource.New(context.Background(),
		resource.WithDetectors(gcp.NewDetector()),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(configuration.ApplicationName),
			semconv.ServiceVersion(apiVersion),
		),
	)
	if err != nil {
		return TelemetryRessources{}, fmt.Errorf("resource.New error: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(VerdictSampler{SamplingMap: configuration.SamplingMap}),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	tracer := tp.Tracer(configuration.ApplicationName)

	propagators := propagation.NewCompositeTextMapPropagator(
		gcppropagator.CloudTraceFormatPropagator{},
		propagation.TraceContext{},
		propagation.Baggage{},
	)

	otel.SetTextMapPropagator(propagators)

	return TelemetryRessources{
		TracerProvider:    tp,
		Tracer:            tracer,
		TextMapPropagator: propagators,
	}, nil
}

const DEFAULT_SAMPLING_RATE = 0.3

var (
	// Batch jobs run a handful of times per study, keep every trace. The
	// mirror push fires on each submission and is only interesting when it
	// degrades, sample it low.
	defaultSpanNamesSampling = map[string]float64{
		"prepare_adjudication": 1.0,
		"merge_dataset":        1.0,
		"recover_progress":     1.0,
		"sheets_mirror_push":   0.05,
	}

	defaultRoutePrefixSampling = map[string]float64{
		"/liveness": 0.0,
		"/token":    0.1,
	}
)

type VerdictSampler struct {
	SamplingMap TelemetrySamplingMap
}

func (VerdictSampler) Description() string {
	return "verdict-sampler"
}

func (vs VerdictSampler) ShouldSample(p sdktrace.SamplingParameters) sdktrace.SamplingResult {
	var (
		prob     = DEFAULT_SAMPLING_RATE
		decision = sdktrace.Drop
	)

	psc := trace.SpanContextFromContext(p.ParentContext)

	// This span should not be sampled if the parent is not. Except for the root
	// span ID (the one that does not have a trace ID).
	if psc.HasTraceID() && !psc.IsSampled() {
		return sdktrace.NeverSample().ShouldSample(p)
	}

	route := ""
	for _, attr := range p.Attributes {
		if attr.Key == semconv.HTTPRouteKey {
			route = attr.Value.AsString()
			break
		}
	}

rates:
	switch {
	case route != "":
		for prefix, prefixProb := range vs.SamplingMap.HttpRoutes {
			if strings.HasPrefix(route, prefix) {
				prob = prefixProb
				break rates
			}
		}
		for prefix, prefixProb := range defaultRoutePrefixSampling {
			if strings.HasPrefix(route, prefix) {
				prob = prefixProb
				break rates
			}
		}

	default:
		if ratio, ok := vs.SamplingMap.SpanNames[p.Name]; ok {
			prob = ratio
			break rates
		}
		if ratio, ok := defaultSpanNamesSampling[p.Name]; ok {
			prob = ratio
			break rates
		}

		prob = 1.0
	}

	traceId := binary.BigEndian.Uint64(p.TraceID[:8])

	if traceId < uint64(prob*float64(math.MaxUint64)) {
		decision = sdktrace.RecordAndSample
	}

	return sdktrace.SamplingResult{
		Decision:   decision,
		Attributes: p.Attributes,
		Tracestate: trace.SpanContextFromContext(p.ParentContext).TraceState(),
	}
}
