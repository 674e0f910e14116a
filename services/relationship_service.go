package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"friendgraph-api/models"
	"friendgraph-api/repositories"
)

// RelationshipService owns the friend request / friendship state machine.
//
// Every mutation re-reads the accounts it touches and writes back only their
// relation sets through a versioned conditional write, so a concurrent change
// between read and write is reported as a conflict instead of being
// overwritten. Mutations spanning two accounts run inside one store
// transaction: either both accounts change or neither does.
type RelationshipService struct {
	accounts  repositories.AccountStore
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewRelationshipService(accounts repositories.AccountStore, publisher EventPublisher, logger *slog.Logger) *RelationshipService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = NewLogEventPublisher(logger)
	}
	return &RelationshipService{
		accounts:  accounts,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// RequestFriendship records that requester wants to be target's friend.
// A second request while the first is still pending is a conflict. Whether
// the two are already friends is not checked.
func (s *RelationshipService) RequestFriendship(ctx context.Context, requesterID, targetID string) error {
	err := s.requestFriendship(ctx, requesterID, targetID)
	s.finish(ctx, "request", models.RelationshipEventRequested, requesterID, targetID, err)
	return err
}

func (s *RelationshipService) requestFriendship(ctx context.Context, requesterID, targetID string) error {
	if err := validatePair(requesterID, targetID); err != nil {
		return err
	}

	requester, target, err := loadPair(ctx, s.accounts, requesterID, targetID)
	if err != nil {
		return err
	}

	if target.HasPendingRequestFrom(requester.ID) {
		return conflict("Friend request already pending!")
	}

	return write(ctx, s.accounts, target, models.RelationFields{
		Friends:               target.Friends,
		PendingFriendRequests: target.PendingFriendRequests.With(requester.ID),
	})
}

// AcceptFriendship lets target accept the pending request from requester.
func (s *RelationshipService) AcceptFriendship(ctx context.Context, requesterID, targetID string) error {
	err := s.atomically(ctx, requesterID, targetID, func(store repositories.AccountStore, requester, target *models.Account) error {
		if err := checkPendingDecision(requester, target); err != nil {
			return err
		}

		if err := write(ctx, store, target, models.RelationFields{
			Friends:               target.Friends.With(requester.ID),
			PendingFriendRequests: target.PendingFriendRequests.Without(requester.ID),
		}); err != nil {
			return err
		}

		return write(ctx, store, requester, models.RelationFields{
			Friends:               requester.Friends.With(target.ID),
			PendingFriendRequests: requester.PendingFriendRequests.Without(target.ID),
		})
	})
	s.finish(ctx, "accept", models.RelationshipEventAccepted, targetID, requesterID, err)
	return err
}

// DeclineFriendship lets target turn down the pending request from requester.
// No friendship is created; any reciprocal pending request is cleared as well.
func (s *RelationshipService) DeclineFriendship(ctx context.Context, requesterID, targetID string) error {
	err := s.atomically(ctx, requesterID, targetID, func(store repositories.AccountStore, requester, target *models.Account) error {
		if err := checkPendingDecision(requester, target); err != nil {
			return err
		}

		if err := write(ctx, store, target, models.RelationFields{
			Friends:               target.Friends,
			PendingFriendRequests: target.PendingFriendRequests.Without(requester.ID),
		}); err != nil {
			return err
		}

		if !requester.HasPendingRequestFrom(target.ID) {
			return nil
		}
		return write(ctx, store, requester, models.RelationFields{
			Friends:               requester.Friends,
			PendingFriendRequests: requester.PendingFriendRequests.Without(target.ID),
		})
	})
	s.finish(ctx, "decline", models.RelationshipEventDeclined, targetID, requesterID, err)
	return err
}

// Unfriend ends the friendship between a and b. Both must list each other;
// a one-sided friendship is reported as a conflict and left untouched.
func (s *RelationshipService) Unfriend(ctx context.Context, aID, bID string) error {
	err := s.atomically(ctx, aID, bID, func(store repositories.AccountStore, a, b *models.Account) error {
		if !a.IsFriendOf(b.ID) || !b.IsFriendOf(a.ID) {
			return conflict("You are not friends!")
		}

		if err := write(ctx, store, a, models.RelationFields{
			Friends:               a.Friends.Without(b.ID),
			PendingFriendRequests: a.PendingFriendRequests,
		}); err != nil {
			return err
		}

		return write(ctx, store, b, models.RelationFields{
			Friends:               b.Friends.Without(a.ID),
			PendingFriendRequests: b.PendingFriendRequests,
		})
	})
	s.finish(ctx, "unfriend", models.RelationshipEventRemoved, aID, bID, err)
	return err
}

// MutualCount returns how many friends a and b have in common.
func (s *RelationshipService) MutualCount(ctx context.Context, aID, bID string) (int, error) {
	if aID == "" || bID == "" {
		return 0, invalidArgument("Account id missing.")
	}

	a, b, err := loadPair(ctx, s.accounts, aID, bID)
	if err != nil {
		return 0, err
	}
	return len(models.MutualFriends(a, b)), nil
}

// Status describes how viewer and other relate to each other.
func (s *RelationshipService) Status(ctx context.Context, viewerID, otherID string) (models.FriendshipStatus, error) {
	if viewerID == "" || otherID == "" {
		return models.FriendshipStatus{}, invalidArgument("Account id missing.")
	}
	if viewerID == otherID {
		return models.FriendshipStatus{}, nil
	}

	viewer, other, err := loadPair(ctx, s.accounts, viewerID, otherID)
	if err != nil {
		return models.FriendshipStatus{}, err
	}

	return models.FriendshipStatus{
		IsFriend:           viewer.IsFriendOf(other.ID),
		HasPendingSent:     other.HasPendingRequestFrom(viewer.ID),
		HasPendingReceived: viewer.HasPendingRequestFrom(other.ID),
	}, nil
}

// atomically validates the pair and runs fn on freshly read accounts inside a transaction.
func (s *RelationshipService) atomically(ctx context.Context, firstID, secondID string, fn func(store repositories.AccountStore, first, second *models.Account) error) error {
	if err := validatePair(firstID, secondID); err != nil {
		return err
	}

	err := s.accounts.Atomically(ctx, func(store repositories.AccountStore) error {
		first, second, err := loadPair(ctx, store, firstID, secondID)
		if err != nil {
			return err
		}
		return fn(store, first, second)
	})
	if err != nil {
		var serviceErr *Error
		if errors.As(err, &serviceErr) {
			return err
		}
		return internal("transaction failed", err)
	}
	return nil
}

func (s *RelationshipService) finish(ctx context.Context, operation string, eventType models.RelationshipEventType, actorID, targetID string, err error) {
	relationshipOperations.WithLabelValues(operation, resultLabel(err)).Inc()

	if err != nil {
		s.logger.DebugContext(ctx, "relationship operation rejected",
			"operation", operation,
			"actor_id", actorID,
			"target_id", targetID,
			"error", err,
		)
		return
	}

	event := models.RelationshipEvent{
		Type:       eventType,
		ActorID:    actorID,
		TargetID:   targetID,
		OccurredAt: s.now(),
	}
	if pubErr := s.publisher.Publish(ctx, event); pubErr != nil {
		s.logger.WarnContext(ctx, "failed to publish relationship event", "type", eventType, "error", pubErr)
	}
}

// checkPendingDecision holds for both accept and decline: target must have a
// pending request from requester and must not already count it as a friend.
func checkPendingDecision(requester, target *models.Account) error {
	if !target.HasPendingRequestFrom(requester.ID) {
		return conflict("No pending friend request from this account!")
	}
	if target.IsFriendOf(requester.ID) {
		return conflict("You are already friends!")
	}
	return nil
}

func validatePair(firstID, secondID string) error {
	if firstID == "" || secondID == "" {
		return invalidArgument("Account id missing.")
	}
	if firstID == secondID {
		return invalidArgument("An account cannot befriend itself!")
	}
	return nil
}

func loadPair(ctx context.Context, store repositories.AccountStore, firstID, secondID string) (*models.Account, *models.Account, error) {
	first, err := loadAccount(ctx, store, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := loadAccount(ctx, store, secondID)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func loadAccount(ctx context.Context, store repositories.AccountStore, id string) (*models.Account, error) {
	account, err := store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Account not found!")
		}
		return nil, internal("failed to load account", err)
	}
	return account, nil
}

func write(ctx context.Context, store repositories.AccountStore, account *models.Account, fields models.RelationFields) error {
	err := store.ConditionalUpdate(ctx, account.ID, account.Version, fields)
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrPreconditionFailed) {
		return conflict("Account was modified concurrently, please retry!")
	}
	return internal("failed to update relations", err)
}
