package telemetry

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"

	"github.com/denysvitali/dirscope-runtime/pkg/dirlist"
	"github.com/denysvitali/dirscope-runtime/pkg/fserr"
)

// Attribute keys set on operation spans
const (
	AttrPath       = attribute.Key("dirscope.path")
	AttrEntryCount = attribute.Key("dirscope.entry.count")
	AttrDirCount   = attribute.Key("dirscope.dir.count")
	AttrHomePath   = attribute.Key("dirscope.home.path")
	AttrErrorKind  = attribute.Key("dirscope.error.kind")
)

// ListingSummary condenses a listing to what is worth recording
type ListingSummary struct {
	Path    string
	Entries int
	Dirs    int
}

// Summarize counts the entries and directories of listing
func Summarize(path string, listing dirlist.Listing) ListingSummary {
	sum := ListingSummary{Path: path, Entries: len(listing)}
	for _, e := range listing {
		if e.IsDir {
			sum.Dirs++
		}
	}
	return sum
}

// Files is the number of entries that are not directories
func (s ListingSummary) Files() int {
	return s.Entries - s.Dirs
}

// RecordListing annotates the span in ctx with a listing summary and logs it
// at debug level
func RecordListing(ctx context.Context, logger *logrus.Logger, path string, listing dirlist.Listing) ListingSummary {
	sum := Summarize(path, listing)

	trace.SpanFromContext(ctx).SetAttributes(
		AttrPath.String(sum.Path),
		AttrEntryCount.Int(sum.Entries),
		AttrDirCount.Int(sum.Dirs),
	)

	logger.WithFields(logrus.Fields{
		"path":    sum.Path,
		"entries": sum.Entries,
		"dirs":    sum.Dirs,
		"files":   sum.Files(),
	}).Debug("Listed directory")

	emit(ctx, otellog.SeverityDebug, "list_dir",
		otellog.String(string(AttrPath), sum.Path),
		otellog.Int(string(AttrEntryCount), sum.Entries),
		otellog.Int(string(AttrDirCount), sum.Dirs),
	)
	return sum
}

// RecordHomeDir annotates the span in ctx with the resolved home directory
func RecordHomeDir(ctx context.Context, logger *logrus.Logger, home string) {
	trace.SpanFromContext(ctx).SetAttributes(AttrHomePath.String(home))
	logger.WithField("path", home).Debug("Resolved home directory")
	emit(ctx, otellog.SeverityDebug, "home_dir", otellog.String(string(AttrHomePath), home))
}

// RecordFailure marks the span in ctx as failed with the error's kind. path
// may be empty.
func RecordFailure(ctx context.Context, logger *logrus.Logger, op, path string, err error) {
	kind := string(fserr.KindOf(err))

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(AttrErrorKind.String(kind))
	if path != "" {
		span.SetAttributes(AttrPath.String(path))
	}

	logger.WithFields(logrus.Fields{
		"op":   op,
		"path": path,
		"kind": kind,
	}).Debugf("Operation failed: %v", err)

	emit(ctx, otellog.SeverityWarn, op+": "+err.Error(),
		otellog.String(string(AttrErrorKind), kind),
		otellog.String(string(AttrPath), path),
	)
}

func emit(ctx context.Context, severity otellog.Severity, body string, attrs ...otellog.KeyValue) {
	var record otellog.Record
	now := time.Now()
	record.SetTimestamp(now)
	record.SetObservedTimestamp(now)
	record.SetSeverity(severity)
	record.SetBody(otellog.StringValue(body))
	record.AddAttributes(attrs...)
	global.GetLoggerProvider().Logger(ServiceName).Emit(ctx, record)
}
