package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
	"github.com/custodia-labs/prodsearch/internal/core/ports/driven"
	"github.com/custodia-labs/prodsearch/internal/core/ports/driving"
	"github.com/custodia-labs/prodsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const instrumentationName = "github.com/custodia-labs/prodsearch/internal/core/services"

// SearchService runs product searches tagged with the client identifier.
type SearchService struct {
	identity         driving.IdentityService
	catalog          driven.ProductCatalog
	throttle         driven.Throttle
	validate         *validator.Validate
	identifierLength int

	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewSearchService creates a new search service.
func NewSearchService(identity driving.IdentityService, catalog driven.ProductCatalog) *SearchService {
	s := &SearchService{
		identity:         identity,
		catalog:          catalog,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		identifierLength: domain.DefaultIdentifierLength,
		tracer:           otel.Tracer(instrumentationName),
	}

	meter := otel.Meter(instrumentationName)
	if c, err := meter.Int64Counter("prodsearch.search.requests",
		metric.WithDescription("Product search requests by outcome")); err == nil {
		s.requests = c
	}
	if h, err := meter.Float64Histogram("prodsearch.search.duration",
		metric.WithDescription("Product search latency"),
		metric.WithUnit("s")); err == nil {
		s.duration = h
	}

	return s
}

// SetThrottle sets the optional client-side request pacer.
func (s *SearchService) SetThrottle(t driven.Throttle) {
	s.throttle = t
}

// SetIdentifierLength sets the length of newly generated identifiers.
func (s *SearchService) SetIdentifierLength(n int) {
	if n <= 0 {
		n = domain.DefaultIdentifierLength
	}
	s.identifierLength = n
}

// Search validates the query, attaches the client identifier and issues one
// request to the catalog. Transport failures are returned unchanged as
// *domain.TransportError.
func (s *SearchService) Search(ctx context.Context, query domain.SearchQuery) (domain.SearchResult, error) {
	logger.Section("Product Search")

	if s.catalog == nil {
		return domain.SearchResult{}, domain.ErrSearchUnavailable
	}
	if s.identity == nil {
		return domain.SearchResult{}, domain.ErrStoreUnavailable
	}

	query = query.Normalize()
	if err := s.validateQuery(query); err != nil {
		return domain.SearchResult{}, err
	}
	logger.Debug("Keyword: %q, from: %d, size: %d", query.Keyword, query.From, query.Size)

	apiKey, err := s.identity.GetOrCreate(s.identifierLength)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("client identifier: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Wait(ctx); err != nil {
			return domain.SearchResult{}, &domain.TransportError{Message: err.Error(), Err: err}
		}
	}

	ctx, span := s.tracer.Start(ctx, "product.search", trace.WithAttributes(
		attribute.String("search.keyword", query.Keyword),
		attribute.Int("search.from", query.From),
		attribute.Int("search.size", query.Size),
	))
	defer span.End()

	start := time.Now()
	result, err := s.catalog.Search(ctx, apiKey, query)
	s.record(ctx, start, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("Search failed: %v", err)
		return domain.SearchResult{}, err
	}

	span.SetAttributes(
		attribute.Int64("search.total", result.Total),
		attribute.Int("search.items", len(result.Items)),
	)
	logger.Info("Received %d of %d products", len(result.Items), result.Total)
	return result, nil
}

func (s *SearchService) validateQuery(query domain.SearchQuery) error {
	err := s.validate.Struct(query)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func (s *SearchService) record(ctx context.Context, start time.Time, err error) {
	outcome := "ok"
	if te, ok := domain.AsTransportError(err); ok {
		switch {
		case te.IsRateLimited():
			outcome = "rate_limited"
		case te.HasResponse():
			outcome = "rejected"
		default:
			outcome = "network"
		}
	} else if err != nil {
		outcome = "error"
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	if s.requests != nil {
		s.requests.Add(ctx, 1, attrs)
	}
	if s.duration != nil {
		s.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}
