package usecase

import (
	"context"

	"github.com/shandysiswandi/nova/internal/account/entity"
)

type ProfileOutput struct {
	User entity.User
}

// Profile returns the account of the authenticated user.
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, clm.UserID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{User: *user}, nil
}
