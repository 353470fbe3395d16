package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/wrestling-roster/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	summaries := h.rosterService.ListTeams(ctx)
	items := make([]teamSummaryDTO, 0, len(summaries))
	for _, item := range summaries {
		items = append(items, teamSummaryDTO{
			Name:     item.Name,
			FilePath: item.FilePath,
			Members:  item.Members,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.CreateTeam(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "team", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamSummaryDTO{
		Name:     item.Name,
		FilePath: item.FilePath,
		Members:  item.TotalMembers(),
	})
}

func (h *Handler) OpenTeamFile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenTeamFile")
	defer span.End()

	var req openTeamRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	path, err := h.rosterDir.Resolve(req.Path)
	if err != nil {
		h.logger.WarnContext(ctx, "open roster file refused", "path", req.Path, "error", err)
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.OpenFile(ctx, path)
	if err != nil {
		h.logger.WarnContext(ctx, "open roster file failed", "path", req.Path, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, loadResultToDTO(result))
}

func (h *Handler) UploadTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadTeam")
	defer span.End()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(ctx, w, fmt.Errorf("%w: query parameter name is required", usecase.ErrInvalidInput))
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	result, err := h.rosterService.ImportTeam(ctx, name, body)
	if err != nil {
		h.logger.WarnContext(ctx, "upload roster failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, loadResultToDTO(result))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	name := r.PathValue("team")
	item, err := h.rosterService.GetTeam(ctx, name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	members, err := h.rosterService.ListMembers(ctx, name, "")
	if err != nil {
		h.logger.ErrorContext(ctx, "list team members failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	kinds := make([]string, 0, len(item.Kinds()))
	for _, kind := range item.Kinds() {
		kinds = append(kinds, string(kind))
	}

	writeSuccess(ctx, w, http.StatusOK, teamDTO{
		Name:     item.Name,
		FilePath: item.FilePath,
		Kinds:    kinds,
		Members:  membersToDTO(members),
	})
}

func (h *Handler) CloseTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseTeam")
	defer span.End()

	if err := h.rosterService.CloseTeam(ctx, r.PathValue("team")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTeam")
	defer span.End()

	var req saveTeamRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	name := r.PathValue("team")
	path := ""
	if strings.TrimSpace(req.Path) != "" {
		resolved, err := h.rosterDir.Resolve(req.Path)
		if err != nil {
			h.logger.WarnContext(ctx, "save roster file refused", "team", name, "path", req.Path, "error", err)
			writeError(ctx, w, err)
			return
		}
		path = resolved
	}

	if err := h.rosterService.SaveTeam(ctx, name, path); err != nil {
		h.logger.ErrorContext(ctx, "save team failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.GetTeam(ctx, name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSummaryDTO{
		Name:     item.Name,
		FilePath: item.FilePath,
		Members:  item.TotalMembers(),
	})
}

func (h *Handler) SaveAllTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveAllTeams")
	defer span.End()

	results, err := h.rosterService.SaveAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "save all teams finished with errors", "error", err)
	}
	if results == nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]saveResultDTO, 0, len(results))
	for _, result := range results {
		item := saveResultDTO{Team: result.Team, Path: result.Path}
		if result.Err != nil {
			item.Error = result.Err.Error()
		}
		items = append(items, item)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStatistics")
	defer span.End()

	stats, err := h.rosterService.Statistics(ctx, r.PathValue("team"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statisticsToDTO(stats))
}

func (h *Handler) GetWeightBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeightBreakdown")
	defer span.End()

	entries, err := h.rosterService.WeightBreakdown(ctx, r.PathValue("team"))
	if err != nil {
		h.logger.ErrorContext(ctx, "weight breakdown failed", "team", r.PathValue("team"), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]breakdownEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, breakdownEntryDTO{
			WeightCategory: entry.WeightCategory,
			All:            entry.All,
			Male:           entry.Male,
			Female:         entry.Female,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListArchivedTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListArchivedTeams")
	defer span.End()

	names, err := h.rosterService.ListArchived(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list archived teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, names)
}

func (h *Handler) ArchiveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ArchiveTeam")
	defer span.End()

	name := r.PathValue("team")
	if err := h.rosterService.ArchiveTeam(ctx, name); err != nil {
		h.logger.ErrorContext(ctx, "archive team failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"team": name, "status": "archived"})
}

func (h *Handler) RestoreTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RestoreTeam")
	defer span.End()

	name := r.PathValue("team")
	item, err := h.rosterService.RestoreTeam(ctx, name)
	if err != nil {
		h.logger.ErrorContext(ctx, "restore team failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamSummaryDTO{
		Name:     item.Name,
		FilePath: item.FilePath,
		Members:  item.TotalMembers(),
	})
}
