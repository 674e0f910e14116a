package services

import (
	"context"
	"errors"

	"friendgraph-api/models"
	"friendgraph-api/repositories"
)

// CanView reports whether viewerID may see content owned by owner.
// An empty viewerID is an anonymous viewer. A nil owner means the owner
// account no longer exists; only public content stays visible then.
func CanView(viewerID string, owner *models.Account, content models.Gated) bool {
	if !content.FriendOnly() {
		return true
	}
	if viewerID == "" {
		return false
	}
	if viewerID == content.GatedOwner() {
		return true
	}
	return owner != nil && owner.IsFriendOf(viewerID)
}

// VisibilityResolver checks gated content against the current friend graph.
// Nothing is cached; each call reads the owners it needs.
type VisibilityResolver struct {
	accounts repositories.AccountStore
}

func NewVisibilityResolver(accounts repositories.AccountStore) *VisibilityResolver {
	return &VisibilityResolver{accounts: accounts}
}

// Filter keeps the items viewerID may see, preserving their order.
// Owners are loaded with a single batched read.
func Filter[T models.Gated](ctx context.Context, r *VisibilityResolver, viewerID string, items []T) ([]T, error) {
	ownerIDs := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if !item.FriendOnly() || viewerID == "" || item.GatedOwner() == viewerID {
			continue
		}
		if _, ok := seen[item.GatedOwner()]; ok {
			continue
		}
		seen[item.GatedOwner()] = struct{}{}
		ownerIDs = append(ownerIDs, item.GatedOwner())
	}

	owners := make(map[string]*models.Account, len(ownerIDs))
	if len(ownerIDs) > 0 {
		accounts, err := r.accounts.FindByIDs(ctx, ownerIDs)
		if err != nil {
			return nil, internal("failed to load content owners", err)
		}
		for i := range accounts {
			owners[accounts[i].ID] = &accounts[i]
		}
	}

	visible := make([]T, 0, len(items))
	for _, item := range items {
		if CanView(viewerID, owners[item.GatedOwner()], item) {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

// CanViewOne checks a single item, loading its owner.
func (r *VisibilityResolver) CanViewOne(ctx context.Context, viewerID string, content models.Gated) (bool, error) {
	if !content.FriendOnly() || viewerID == "" || viewerID == content.GatedOwner() {
		return CanView(viewerID, nil, content), nil
	}

	owner, err := r.accounts.FindByID(ctx, content.GatedOwner())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, internal("failed to load content owner", err)
	}
	return CanView(viewerID, owner, content), nil
}
