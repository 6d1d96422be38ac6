package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"pollapi/internal/auth"
	"pollapi/internal/http/middleware"
	"pollapi/internal/service"
)

// Services bundles the service dependencies of the HTTP layer.
type Services struct {
	Accounts   service.AccountService
	Workspaces service.WorkspaceService
	Groups     service.GroupService
	Polls      service.PollService
	Votes      service.VoteService
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app. Routes
// below /auth (except /auth/me) and the probes are public; everything else
// requires a bearer access token.
func RegisterRoutes(app *fiber.App, db *sql.DB, tokens *auth.TokenManager, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/register", Register(svcs.Accounts))
	app.Post("/auth/login", Login(svcs.Accounts))
	app.Post("/auth/refresh", RefreshToken(svcs.Accounts))

	authed := app.Group("", middleware.Auth(tokens))

	authed.Get("/auth/me", CurrentAccount(svcs.Accounts))

	authed.Get("/workspaces", ListWorkspaces(svcs.Workspaces))
	authed.Post("/workspaces", CreateWorkspace(svcs.Workspaces))
	authed.Get("/workspaces/:id", GetWorkspace(svcs.Workspaces))
	authed.Patch("/workspaces/:id", UpdateWorkspace(svcs.Workspaces))
	authed.Delete("/workspaces/:id", DeleteWorkspace(svcs.Workspaces))

	authed.Get("/workspaces/:id/members", ListWorkspaceMembers(svcs.Workspaces))
	authed.Post("/workspaces/:id/members", AddWorkspaceMembers(svcs.Workspaces))
	authed.Delete("/workspaces/:id/members/:account_id", RemoveWorkspaceMember(svcs.Workspaces))

	authed.Get("/workspaces/:id/policies", ListWorkspacePolicies(svcs.Workspaces))
	authed.Get("/workspaces/:id/policy", GetWorkspacePolicy(svcs.Workspaces))
	authed.Put("/workspaces/:id/policy", SetWorkspacePolicy(svcs.Workspaces))

	authed.Get("/workspaces/:id/groups", ListGroups(svcs.Groups))
	authed.Post("/workspaces/:id/groups", CreateGroup(svcs.Groups))
	authed.Get("/groups/:id", GetGroup(svcs.Groups))
	authed.Patch("/groups/:id", UpdateGroup(svcs.Groups))
	authed.Delete("/groups/:id", DeleteGroup(svcs.Groups))
	authed.Get("/groups/:id/members", ListGroupMembers(svcs.Groups))
	authed.Post("/groups/:id/members", AddGroupMembers(svcs.Groups))
	authed.Delete("/groups/:id/members/:account_id", RemoveGroupMember(svcs.Groups))

	authed.Get("/workspaces/:id/polls", ListPolls(svcs.Polls))
	authed.Post("/workspaces/:id/polls", CreatePoll(svcs.Polls))
	authed.Get("/polls/:id", GetPoll(svcs.Polls))
	authed.Patch("/polls/:id", UpdatePoll(svcs.Polls))
	authed.Delete("/polls/:id", DeletePoll(svcs.Polls))
	authed.Post("/polls/:id/publish", PublishPoll(svcs.Polls))
	authed.Delete("/polls/:id/publish", UnpublishPoll(svcs.Polls))

	authed.Post("/polls/:id/votes", CastBallot(svcs.Votes))
	authed.Get("/polls/:id/results", GetPollResults(svcs.Votes))
	authed.Get("/polls/:id/results/export", ExportPollResults(svcs.Votes))
}
