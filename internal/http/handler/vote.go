package handler

import (
	"github.com/gofiber/fiber/v2"

	"pollapi/internal/service"
)

// CastBallot records the caller's answers (POST /polls/:id/votes).
func CastBallot(svc service.VoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var in service.BallotInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := svc.CastBallot(c.UserContext(), accountIDFromCtx(c), id, in); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusCreated)
	}
}

// GetPollResults returns per-option tallies (GET /polls/:id/results).
func GetPollResults(svc service.VoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		results, err := svc.Results(c.UserContext(), accountIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(results)
	}
}

// ExportPollResults uploads a CSV rendition of the results and returns a
// presigned download URL (GET /polls/:id/results/export).
func ExportPollResults(svc service.VoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		export, err := svc.ExportResults(c.UserContext(), accountIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(export)
	}
}
