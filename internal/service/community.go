package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/repository"
)

type communityService struct {
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
	noteRepo      repository.NotificationRepository
}

func NewCommunityService(
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
) CommunityService {
	return &communityService{
		communityRepo: communityRepo,
		userRepo:      userRepo,
		noteRepo:      noteRepo,
	}
}

// CreateCommunity registers the community and makes its creator the first
// admin member.
func (s *communityService) CreateCommunity(ctx context.Context, userID int32, c *domain.Community) error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError("community name is required")
	}
	if err := s.communityRepo.Create(ctx, c); err != nil {
		return err
	}
	return s.userRepo.AddMembership(ctx, &domain.Membership{
		UserID:      userID,
		CommunityID: c.ID,
		Role:        domain.CommunityRoleAdmin,
		Active:      true,
	})
}

func (s *communityService) GetCommunity(ctx context.Context, userID, communityID int32) (*domain.Community, error) {
	if _, err := activeMembership(ctx, s.userRepo, userID, communityID); err != nil {
		return nil, err
	}
	return s.communityRepo.GetByID(ctx, communityID)
}

func (s *communityService) AddMember(ctx context.Context, adminID, communityID int32, email string, role domain.CommunityRole) (*domain.Membership, error) {
	m, err := activeMembership(ctx, s.userRepo, adminID, communityID)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(m); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewValidationError("no account exists for " + email)
	}
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetMembership(ctx, user.ID, communityID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		// Re-adding a deactivated member reactivates them with the new role.
		existing.Role = role
		existing.Active = true
		if err := s.userRepo.UpdateMembership(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	membership := &domain.Membership{
		UserID:      user.ID,
		CommunityID: communityID,
		Role:        role,
		Active:      true,
	}
	if err := s.userRepo.AddMembership(ctx, membership); err != nil {
		return nil, err
	}

	if community, cErr := s.communityRepo.GetByID(ctx, communityID); cErr == nil {
		note := &domain.Notification{
			EventID:     newEventID(),
			UserID:      user.ID,
			CommunityID: communityID,
			Title:       "Welcome to " + community.Name,
			Message:     fmt.Sprintf("You were added to %s as %s", community.Name, role),
			Attributes:  map[string]string{"type": "MEMBER_ADDED"},
		}
		_ = s.noteRepo.Create(ctx, note)
	}

	return membership, nil
}

func (s *communityService) ListMembers(ctx context.Context, userID, communityID int32) ([]domain.User, []domain.Membership, error) {
	if _, err := activeMembership(ctx, s.userRepo, userID, communityID); err != nil {
		return nil, nil, err
	}
	return s.userRepo.ListMembersByCommunity(ctx, communityID)
}

func (s *communityService) DeactivateMember(ctx context.Context, adminID, communityID, userID int32) error {
	m, err := activeMembership(ctx, s.userRepo, adminID, communityID)
	if err != nil {
		return err
	}
	if err := requireAdmin(m); err != nil {
		return err
	}
	if adminID == userID {
		return domain.NewValidationError("admins cannot deactivate their own membership")
	}

	target, err := s.userRepo.GetMembership(ctx, userID, communityID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewValidationError("the user is not a member of this community")
	}
	if err != nil {
		return err
	}
	target.Active = false
	return s.userRepo.UpdateMembership(ctx, target)
}
