package musicservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	musicmetrics "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/metrics"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
	"github.com/Black-And-White-Club/music-backend/pkg/observability/attr"
	"github.com/Black-And-White-Club/music-backend/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "MusicService"

// MusicService implements the Service interface.
type MusicService struct {
	bands       musicdb.BandRepository
	musicians   musicdb.MusicianRepository
	memberships musicdb.MembershipRepository
	logger      *slog.Logger
	metrics     musicmetrics.MusicMetrics
	tracer      trace.Tracer
	db          *bun.DB
	rules       ownershipRules
}

// NewMusicService creates a new MusicService.
func NewMusicService(
	bands musicdb.BandRepository,
	musicians musicdb.MusicianRepository,
	memberships musicdb.MembershipRepository,
	logger *slog.Logger,
	metrics musicmetrics.MusicMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MusicService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MusicService{
		bands:       bands,
		musicians:   musicians,
		memberships: memberships,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		db:          db,
	}
	s.rules = defaultOwnershipRules(memberships)
	return s
}

var _ Service = (*MusicService)(nil)

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// txFunc is an operation body bound to one transaction.
type txFunc[S any, F any] func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error)

// execute runs fn in a transaction wrapped with telemetry and converts the result to (S, error).
func execute[S any](s *MusicService, ctx context.Context, operationName, identifier string, fn txFunc[S, error]) (S, error) {
	result, err := withTelemetry(s, ctx, operationName, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		return runInTx(s, ctx, fn)
	})
	if err != nil {
		var zero S
		return zero, err
	}
	return results.Unwrap(result)
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *MusicService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	// Start span
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// errRollback aborts a transaction whose operation produced a failure result.
var errRollback = errors.New("rollback: operation returned failure result")

// runInTx ensures the operation runs within a transaction. Infrastructure errors
// and failure results both roll back; only successes commit.
func runInTx[S any, F any](
	s *MusicService,
	ctx context.Context,
	fn txFunc[S, F],
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		if txErr == nil && result.IsFailure() {
			return errRollback
		}
		return txErr
	})
	if errors.Is(err, errRollback) {
		return result, nil
	}

	return result, err
}

// conflict records the rejection and builds the failure.
func (s *MusicService) conflict(ctx context.Context, entity, detail string) *ConflictError {
	if s.metrics != nil {
		s.metrics.RecordConflict(ctx, entity)
	}
	return &ConflictError{Entity: entity, Detail: detail}
}

func now() *time.Time {
	t := time.Now().UTC()
	return &t
}
