package service

import (
	"context"
	"database/sql"
	"errors"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/repository"
)

// activeMembership resolves the actor's membership in a community and
// rejects missing or deactivated memberships with a PermissionError.
func activeMembership(ctx context.Context, userRepo repository.UserRepository, userID, communityID int32) (*domain.Membership, error) {
	m, err := userRepo.GetMembership(ctx, userID, communityID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewPermissionError("you are not a member of this community")
	}
	if err != nil {
		return nil, err
	}
	if !m.Active {
		return nil, domain.NewPermissionError("your community membership is inactive")
	}
	return m, nil
}

func requireJanitorial(m *domain.Membership) error {
	if !m.Role.CanActAsJanitorial() {
		return domain.NewPermissionError("janitorial or admin role required")
	}
	return nil
}

func requireAdmin(m *domain.Membership) error {
	if m.Role != domain.CommunityRoleAdmin {
		return domain.NewPermissionError("admin role required")
	}
	return nil
}
