package services

import (
	"context"

	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/server/models"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

// CatalogProvider returns the catalog's JSON document for one item.
type CatalogProvider interface {
	GetItem(ctx context.Context, itemID int64) (json.RawMessage, error)
}

// TextGenerator turns a prompt into free text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ListService is the facade used by the transport layer. It combines the
// membership sets with catalog enrichment and recommendations.
type ListService struct {
	*MembershipService

	catalog        CatalogProvider
	textgen        TextGenerator
	maxConcurrency int
	logger         logging.Logger
}

func NewListService(ms *MembershipService, catalog CatalogProvider, textgen TextGenerator, maxConcurrency int, l logging.Logger) *ListService {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &ListService{
		MembershipService: ms,
		catalog:           catalog,
		textgen:           textgen,
		maxConcurrency:    maxConcurrency,
		logger:            l.With("module", "list_service"),
	}
}

// ListWithDetails returns the catalog document of every item in the
// user's set, in set order. An empty set never reaches the catalog. One
// failed lookup fails the whole call and cancels the lookups still in
// flight.
func (s *ListService) ListWithDetails(ctx context.Context, kind models.SetKind, userID int64) ([]json.RawMessage, error) {
	ids, err := s.List(ctx, kind, userID)
	if err != nil {
		return nil, err
	}

	details := make([]json.RawMessage, len(ids))
	if len(ids) == 0 {
		return details, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			doc, err := s.catalog.GetItem(gctx, id)
			if err != nil {
				return err
			}
			details[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn(ctx, "catalog enrichment failed", "set", kind, "user_id", userID, "items", len(ids), "error", err)
		return nil, collaboratorError("list details", err)
	}

	return details, nil
}

// Recommend asks the text generator for recommendations matching p and
// parses the titles out of its answer.
func (s *ListService) Recommend(ctx context.Context, p models.PreferenceRequest) (models.Recommendation, error) {
	text, err := s.textgen.Generate(ctx, BuildPrompt(p))
	if err != nil {
		s.logger.Warn(ctx, "recommendation failed", "error", err)
		return models.Recommendation{}, collaboratorError("recommend", err)
	}
	return ParseRecommendation(text), nil
}
