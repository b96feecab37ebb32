package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/security"
	"github.com/rs/zerolog/log"
)

const defaultTagLimit = 20

// TagLister is the cache in front of the unfiltered tag listing.
// Cache failures degrade to store reads, never to errors.
type TagLister interface {
	Get(ctx context.Context, userID uuid.UUID) ([]domain.TagWithCount, error)
	Set(ctx context.Context, userID uuid.UUID, tags []domain.TagWithCount) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// TagService maintains the user's tag vocabulary and scoped usage counts
type TagService struct {
	tagRepo domain.TagRepository
	access  *AccessService
	cache   TagLister
}

// NewTagService creates a new tag service. cache may be nil.
func NewTagService(tagRepo domain.TagRepository, access *AccessService, cache TagLister) *TagService {
	return &TagService{tagRepo: tagRepo, access: access, cache: cache}
}

// GetUserTags retrieves the principal's tags matching the query:
// case-insensitive substring on the name, counts restricted to the
// workspace when one is given, alphabetical.
func (s *TagService) GetUserTags(ctx context.Context, principal domain.Principal, query domain.TagQuery) ([]domain.TagWithCount, error) {
	if query.Limit <= 0 {
		query.Limit = defaultTagLimit
	}

	if query.WorkspaceID != nil {
		if _, err := s.access.AuthorizeWorkspace(ctx, principal, *query.WorkspaceID, ActionRead); err != nil {
			return nil, err
		}
	}

	cacheable := s.cache != nil && query.Query == "" && query.WorkspaceID == nil && query.Limit == defaultTagLimit
	if cacheable {
		if tags, err := s.cache.Get(ctx, principal.ID); err == nil && tags != nil {
			return tags, nil
		}
	}

	tags, err := s.tagRepo.ListWithCounts(ctx, principal.ID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, principal.ID, tags); err != nil {
			log.Warn().Err(err).Msg("Failed to cache tag listing")
		}
	}

	return tags, nil
}

// ResolveTags upserts each tag name for the user and returns the
// resolved tags. Matching is case-insensitive, so names differing only
// by case converge on one tag; duplicates within the input collapse too.
func (s *TagService) ResolveTags(ctx context.Context, userID uuid.UUID, names []string) ([]domain.Tag, error) {
	if len(names) > domain.MaxTagsPerBookmark {
		return nil, domain.NewValidation("at most %d tags per bookmark", domain.MaxTagsPerBookmark)
	}

	seen := make(map[string]bool, len(names))
	tags := make([]domain.Tag, 0, len(names))
	anyCreated := false

	for _, name := range names {
		if !security.ValidateTagName(name) {
			return nil, domain.NewValidation("invalid tag name %q", name)
		}
		normalized := security.NormalizeTagName(name)
		if seen[normalized] {
			continue
		}
		seen[normalized] = true

		// Trimmed before it reaches the store, so " Go " and "go"
		// collide on the (user_id, lower(name)) index.
		tag, created, err := s.tagRepo.GetOrCreate(ctx, userID, strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("failed to upsert tag %q: %w", name, err)
		}
		if created {
			anyCreated = true
		}
		tags = append(tags, *tag)
	}

	if anyCreated && s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate tag cache")
		}
	}

	return tags, nil
}

// InvalidateCache drops the user's cached tag listing. Bookmark writes
// call this because they change usage counts.
func (s *TagService) InvalidateCache(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate tag cache")
	}
}
