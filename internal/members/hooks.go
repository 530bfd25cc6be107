package members

import (
	"context"
	"strings"

	"github.com/JaimeStill/entity-handlers/pkg/handlers"
	"github.com/JaimeStill/entity-handlers/pkg/pagination"
)

func normalizeCreate(_ context.Context, cmd *CreateCommand) error {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Bio = strings.TrimSpace(cmd.Bio)
	return nil
}

func normalizeUpdate(_ context.Context, cmd *UpdateCommand) error {
	if cmd.Name != nil {
		v := strings.TrimSpace(*cmd.Name)
		cmd.Name = &v
	}
	if cmd.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*cmd.Email))
		cmd.Email = &v
	}
	if cmd.Bio != nil {
		v := strings.TrimSpace(*cmd.Bio)
		cmd.Bio = &v
	}
	return nil
}

func deriveDomain(_ context.Context, m *Member) error {
	m.EmailDomain = emailDomain(m.Email)
	return nil
}

// retrieve narrows the page search to the query filter when one is given.
func retrieve(ctx context.Context, q ListQuery, repo handlers.Repository[Record]) (pagination.Page[*Record], error) {
	req := q.PageRequest()
	if q.Filter != nil {
		if f := strings.TrimSpace(*q.Filter); f != "" {
			req.Search = &f
		}
	}
	return repo.FindPage(ctx, req)
}
