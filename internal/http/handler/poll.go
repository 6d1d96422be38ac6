package handler

import (
	"github.com/gofiber/fiber/v2"

	"pollapi/internal/service"
)

// ListPolls returns the polls of a workspace (GET /workspaces/:id/polls).
func ListPolls(svc service.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		limit, offset, err := pageParams(c)
		if err != nil {
			return err
		}
		res, err := svc.List(c.UserContext(), accountIDFromCtx(c), id, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreatePoll makes a new draft poll (POST /workspaces/:id/polls).
func CreatePoll(svc service.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var in service.PollInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		p, err := svc.Create(c.UserContext(), accountIDFromCtx(c), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// GetPoll returns one poll with its questions (GET /polls/:id).
func GetPoll(svc service.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		p, err := svc.Get(c.UserContext(), accountIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// UpdatePoll changes name and description (PATCH /polls/:id).
func UpdatePoll(svc service.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var in service.PollUpdateInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		p, err := svc.Update(c.UserContext(), accountIDFromCtx(c), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// PublishPoll opens a poll for voting (POST /polls/:id/publish).
func PublishPoll(svc service.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		p, err := svc.Publish(c.UserContext(), accountIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// UnpublishPoll closes a poll again (DELETE /polls/:id/publish).
func UnpublishPoll(svc service.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		p, err := svc.Unpublish(c.UserContext(), accountIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// DeletePoll removes a poll and its votes (DELETE /polls/:id).
func DeletePoll(svc service.PollService) fiber.Handler {
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
