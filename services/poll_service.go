package services

import (
	"context"
	"errors"

	"friendgraph-api/models"
	"friendgraph-api/repositories"
)

// pollScanBatch is how many polls are read per round while filling a page.
const pollScanBatch = 100

type PollService struct {
	content    repositories.ContentStore
	visibility *VisibilityResolver
}

func NewPollService(content repositories.ContentStore, visibility *VisibilityResolver) *PollService {
	return &PollService{
		content:    content,
		visibility: visibility,
	}
}

// Collection returns one page of the polls the viewer may see, newest first.
// Pages are counted over visible polls only.
func (s *PollService) Collection(ctx context.Context, viewerID string, page, limit int) (*models.PollPage, error) {
	if page < 1 || limit < 1 {
		return nil, invalidArgument("Invalid pagination!")
	}

	result := &models.PollPage{Polls: make([]models.Poll, 0, min(limit, pollScanBatch)), Page: page, Limit: limit}
	skip, ok := pageOffset(page, limit)
	if !ok {
		return result, nil
	}

	for offset := 0; ; offset += pollScanBatch {
		batch, err := s.content.ListPolls(ctx, offset, pollScanBatch)
		if err != nil {
			return nil, internal("failed to list polls", err)
		}

		visible, err := Filter(ctx, s.visibility, viewerID, batch)
		if err != nil {
			return nil, err
		}

		for _, poll := range visible {
			if skip > 0 {
				skip--
				continue
			}
			if len(result.Polls) == limit {
				result.HasMore = true
				return result, nil
			}
			result.Polls = append(result.Polls, poll)
		}

		if len(batch) < pollScanBatch {
			return result, nil
		}
	}
}

// Get returns a single poll. A poll the viewer may not see is reported as not found.
func (s *PollService) Get(ctx context.Context, viewerID, pollID string) (*models.Poll, error) {
	if pollID == "" {
		return nil, invalidArgument("Poll id missing.")
	}

	poll, err := s.content.FindPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Poll not found!")
		}
		return nil, internal("failed to load poll", err)
	}

	visible, err := s.visibility.CanViewOne(ctx, viewerID, *poll)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, notFound("Poll not found!")
	}
	return poll, nil
}
