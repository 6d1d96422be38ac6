package handler

import (
	"github.com/gofiber/fiber/v2"

	"pollapi/internal/service"
)

// ListGroups returns the groups of a workspace (GET /workspaces/:id/groups).
func ListGroups(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		groups, err := svc.List(c.UserContext(), accountIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(groups)
	}
}

// CreateGroup makes a new group (POST /workspaces/:id/groups).
func CreateGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var in service.GroupInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		g, err := svc.Create(c.UserContext(), accountIDFromCtx(c), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	}
}

// GetGroup returns one group (GET /groups/:id).
func GetGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		g, err := svc.Get(c.UserContext(), accountIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(g)
	}
}

// UpdateGroup changes name and description (PATCH /groups/:id).
func UpdateGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var in service.GroupInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		g, err := svc.Update(c.UserContext(), accountIDFromCtx(c), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(g)
	}
}

// DeleteGroup removes a group (DELETE /groups/:id).
func DeleteGroup(svc service.GroupService) fiber.Handler {
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

// ListGroupMembers returns the group roster (GET /groups/:id/members).
func ListGroupMembers(svc service.GroupService) fiber.Handler {
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

// AddGroupMembers adds workspace members to a group (POST /groups/:id/members).
func AddGroupMembers(svc service.GroupService) fiber.Handler {
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

// RemoveGroupMember removes one account (DELETE /groups/:id/members/:account_id).
func RemoveGroupMember(svc service.GroupService) fiber.Handler {
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
