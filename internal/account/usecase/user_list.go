package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type UserListInput struct {
	Search         string
	IncludeDeleted bool
	Size           int32
	Page           int32
	SortBy         string
	SortOrder      string // `asc` or `desc`
}

type UserListOutput struct {
	Page  int32
	Size  int32
	Total int64
	Users []entity.User
}

func (s *Usecase) UserList(ctx context.Context, in UserListInput) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}
	filter := entity.UserListFilter{
		Search:         strings.TrimSpace(in.Search),
		IncludeDeleted: in.IncludeDeleted,
		OrderBy:        strings.TrimSpace(in.SortBy),
		OrderDirection: strings.ToLower(strings.TrimSpace(in.SortOrder)),
		Size:           in.Size,
		Offset:         (max(in.Page, 1) - 1) * in.Size,
	}
	if filter.Search != "" {
		filter.IsFilterBySearch = true
	}

	users, count, err := s.repoDB.GetUserList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{
		Page:  max(in.Page, 1),
		Size:  in.Size,
		Total: count,
		Users: users,
	}, nil
}
