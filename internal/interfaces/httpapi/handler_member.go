package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/usecase"
)

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMembers")
	defer span.End()

	var kind member.Kind
	if raw := strings.TrimSpace(r.URL.Query().Get("kind")); raw != "" {
		parsed, err := parseKindValue(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		kind = parsed
	}

	members, err := h.rosterService.ListMembers(ctx, r.PathValue("team"), kind)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, membersToDTO(members))
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMember")
	defer span.End()

	var req memberRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	m, err := req.toMember()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamName := r.PathValue("team")
	added, err := h.rosterService.AddMember(ctx, teamName, m)
	if err != nil {
		h.logger.WarnContext(ctx, "add member failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, memberToDTO(usecase.MemberDetails{Member: added}))
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMember")
	defer span.End()

	var req memberRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	m, err := req.toMember()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamName := r.PathValue("team")
	updated, err := h.rosterService.UpdateMember(ctx, teamName, r.PathValue("memberID"), m)
	if err != nil {
		h.logger.WarnContext(ctx, "update member failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, memberToDTO(usecase.MemberDetails{Member: updated}))
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveMember")
	defer span.End()

	if err := h.rosterService.RemoveMember(ctx, r.PathValue("team"), r.PathValue("memberID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ChangeMemberKind(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeMemberKind")
	defer span.End()

	var req changeKindRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamName := r.PathValue("team")
	replacement, err := h.rosterService.ChangeMemberKind(ctx, teamName, r.PathValue("memberID"), member.Kind(req.Kind))
	if err != nil {
		h.logger.WarnContext(ctx, "change member kind failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, memberToDTO(usecase.MemberDetails{Member: replacement}))
}

func parseKindValue(raw string) (member.Kind, error) {
	kind, err := member.ParseKind(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return kind, nil
}
