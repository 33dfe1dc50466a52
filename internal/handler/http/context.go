package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/auth"
	"github.com/talkweave/forum-backend-go/internal/domain/page"
)

// actorFrom reads the authenticated member out of the verified JWT claims.
func actorFrom(r *http.Request) (page.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return page.Actor{}, auth.ErrInvalidToken
	}

	memberID, ok := claims["member_id"].(string)
	if !ok || memberID == "" {
		return page.Actor{}, auth.ErrInvalidToken
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return page.Actor{MemberID: memberID, IsAdmin: isAdmin}, nil
}
