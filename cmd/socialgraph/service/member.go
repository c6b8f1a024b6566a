package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/common/logger"
)

// MemberService owns member lifecycle. Deleting a member cascades
// removal of every edge, notification, post and conversation that
// references it.
type MemberService struct {
	members MemberStore
	log     *logger.Logger
}

// NewMemberService creates a new member service
func NewMemberService(members MemberStore, log *logger.Logger) *MemberService {
	return &MemberService{members: members, log: log}
}

// ProfileInput carries the mutable profile attributes
type ProfileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Location  string `json:"location"`
}

// Register creates a member. The caller supplies the identity; profile
// fields may arrive later via UpdateProfile.
func (s *MemberService) Register(ctx context.Context, id uuid.UUID, profile ProfileInput) (*models.Member, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}

	member := &models.Member{
		ID:        id,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Company:   profile.Company,
		Position:  profile.Position,
		Location:  profile.Location,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	s.log.Info("member registered", "member_id", member.ID, "profile_complete", member.ProfileComplete)
	return member, nil
}

// Get retrieves a member
func (s *MemberService) Get(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	return s.members.Get(ctx, id)
}

// UpdateProfile replaces a member's profile attributes and recomputes
// the profile-complete flag.
func (s *MemberService) UpdateProfile(ctx context.Context, id uuid.UUID, profile ProfileInput) (*models.Member, error) {
	member, err := s.members.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	member.FirstName = profile.FirstName
	member.LastName = profile.LastName
	member.Company = profile.Company
	member.Position = profile.Position
	member.Location = profile.Location

	if err := s.members.UpdateProfile(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member and everything referencing it
func (s *MemberService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("member deleted", "member_id", id)
	return nil
}
