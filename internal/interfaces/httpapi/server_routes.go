package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/attributes/{kind}", handler.ListAttributes)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("POST /v1/teams/open", handler.OpenTeamFile)
	mux.HandleFunc("POST /v1/teams/upload", handler.UploadTeam)
	mux.HandleFunc("POST /v1/teams/save", handler.SaveAllTeams)
	mux.HandleFunc("GET /v1/teams/{team}", handler.GetTeam)
	mux.HandleFunc("DELETE /v1/teams/{team}", handler.CloseTeam)
	mux.HandleFunc("POST /v1/teams/{team}/save", handler.SaveTeam)
	mux.HandleFunc("GET /v1/teams/{team}/stats", handler.GetTeamStatistics)
	mux.HandleFunc("GET /v1/teams/{team}/weight-breakdown", handler.GetWeightBreakdown)
}

func registerMemberRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{team}/members", handler.ListMembers)
	mux.HandleFunc("POST /v1/teams/{team}/members", handler.AddMember)
	mux.HandleFunc("PUT /v1/teams/{team}/members/{memberID}", handler.UpdateMember)
	mux.HandleFunc("DELETE /v1/teams/{team}/members/{memberID}", handler.RemoveMember)
	mux.HandleFunc("PUT /v1/teams/{team}/members/{memberID}/kind", handler.ChangeMemberKind)
}

func registerArchiveRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/archive", handler.ListArchivedTeams)
	mux.HandleFunc("POST /v1/teams/{team}/archive", handler.ArchiveTeam)
	mux.HandleFunc("POST /v1/archive/{team}/restore", handler.RestoreTeam)
}
