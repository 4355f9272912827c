package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	annotationCounter metric.Int64Counter
	uploadCounter     metric.Int64Counter
	uploadBytes       metric.Int64Histogram
)

// InitLabellingMetrics initializes the labelling-related instruments.
func InitLabellingMetrics() error {
	meter := otel.Meter("annotator.labelling")

	var err error

	annotationCounter, err = meter.Int64Counter(
		"annotation.submit.count",
		metric.WithDescription("Number of submitted annotations"),
		metric.WithUnit("{annotation}"),
	)
	if err != nil {
		return err
	}

	uploadCounter, err = meter.Int64Counter(
		"upload.images.count",
		metric.WithDescription("Number of images stored by the upload paths"),
		metric.WithUnit("{image}"),
	)
	if err != nil {
		return err
	}

	uploadBytes, err = meter.Int64Histogram(
		"upload.images.bytes",
		metric.WithDescription("Size of stored images"),
		metric.WithUnit("By"),
	)
	return err
}

// RecordAnnotation counts one submitted annotation.
func RecordAnnotation(ctx context.Context, datasetID string) {
	if annotationCounter != nil {
		annotationCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("dataset_id", datasetID)),
		)
	}
}

// RecordUpload counts one stored image and its size.
func RecordUpload(ctx context.Context, datasetID string, size int64) {
	if uploadCounter != nil {
		uploadCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("dataset_id", datasetID)),
		)
	}
	if uploadBytes != nil {
		uploadBytes.Record(ctx, size,
			metric.WithAttributes(attribute.String("dataset_id", datasetID)),
		)
	}
}
