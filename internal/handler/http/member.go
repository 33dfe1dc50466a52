package http

import (
	"net/http"

	"github.com/talkweave/forum-backend-go/internal/domain/member"
	"github.com/talkweave/forum-backend-go/internal/handler/http/response"
)

type MemberHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	ListGroups(w http.ResponseWriter, r *http.Request)
}

type MemberHandlerImpl struct {
	memberRepo member.Repository
	groupRepo  member.GroupRepository
	siteID     string
}

func NewMemberHandler(memberRepo member.Repository, groupRepo member.GroupRepository, siteID string) MemberHandler {
	return &MemberHandlerImpl{
		memberRepo: memberRepo,
		groupRepo:  groupRepo,
		siteID:     siteID,
	}
}

// Me implements MemberHandler.
func (h *MemberHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	m, err := h.memberRepo.GetByID(r.Context(), h.siteID, actor.MemberID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, member.ToResponse(m, true))
}

// ListGroups implements MemberHandler.
func (h *MemberHandlerImpl) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupRepo.ListBySite(r.Context(), h.siteID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]member.GroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = member.ToGroupResponse(g)
	}
	response.Success(w, responses)
}
