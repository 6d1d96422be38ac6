package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pollapi/internal/service"
)

// pageParams reads limit/offset query parameters with the defaults shared by
// every list endpoint.
func pageParams(c *fiber.Ctx) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, nil
}

// parseID validates a UUID path parameter.
func parseID(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return id, nil
}

// ListWorkspaces returns the caller's workspaces (GET /workspaces).
func ListWorkspaces(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return err
		}
		res, err := svc.List(c.UserContext(), accountIDFromCtx(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateWorkspace makes a new workspace (POST /workspaces).
func CreateWorkspace(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.WorkspaceInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		ws, err := svc.Create(c.UserContext(), accountIDFromCtx(c), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ws)
	}
}

// GetWorkspace returns one workspace (GET /workspaces/:id). The include query
// parameter may name groups, members, policies, or all.
func GetWorkspace(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var include []string
		if raw := c.Query("include"); raw != "" {
			include = strings.Split(raw, ",")
		}
		detail, err := svc.Get(c.UserContext(), accountIDFromCtx(c), id, include)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(detail)
	}
}

// UpdateWorkspace changes name and description (PATCH /workspaces/:id).
func UpdateWorkspace(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var in service.WorkspaceInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		ws, err := svc.Update(c.UserContext(), accountIDFromCtx(c), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(ws)
	}
}

// DeleteWorkspace removes a workspace (DELETE /workspaces/:id).
func DeleteWorkspace(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), accountIDFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListWorkspaceMembers returns the roster (GET /workspaces/:id/members).
func ListWorkspaceMembers(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		members, err := svc.ListMembers(c.UserContext(), accountIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(members)
	}
}

// AddWorkspaceMembers adds accounts to a workspace (POST /workspaces/:id/members).
func AddWorkspaceMembers(svc service.WorkspaceService) fiber.Handler {
	type addMembersRequest struct {
		AccountIDs []string `json:"account_ids"`
	}
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var in addMembersRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		members, err := svc.AddMembers(c.UserContext(), accountIDFromCtx(c), id, in.AccountIDs)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(members)
	}
}

// RemoveWorkspaceMember removes one account (DELETE /workspaces/:id/members/:account_id).
func RemoveWorkspaceMember(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		memberID, err := parseID(c, "account_id")
		if err != nil {
			return err
		}
		if err := svc.RemoveMember(c.UserContext(), accountIDFromCtx(c), id, memberID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListWorkspacePolicies returns all policies (GET /workspaces/:id/policies).
func ListWorkspacePolicies(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		policies, err := svc.ListPolicies(c.UserContext(), accountIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(policies)
	}
}

// GetWorkspacePolicy returns effective permissions (GET /workspaces/:id/policy).
// With ?holder_id= it reads another holder, otherwise the caller's own.
func GetWorkspacePolicy(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		view, err := svc.GetPolicy(c.UserContext(), accountIDFromCtx(c), id, c.Query("holder_id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(view)
	}
}

// SetWorkspacePolicy replaces a holder's permission set (PUT /workspaces/:id/policy).
func SetWorkspacePolicy(svc service.WorkspaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var in service.SetPolicyInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		view, err := svc.SetPolicy(c.UserContext(), accountIDFromCtx(c), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(view)
	}
}
