package api

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"taskmanager/internal/model"
	"taskmanager/internal/service"
)

func (s *Server) listTasks(c *fiber.Ctx) error {
	tasks, err := s.tasks.List(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(tasks)
}

func (s *Server) getTask(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "id must be a positive integer")
	}

	task, err := s.tasks.Get(c.Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	if task == nil {
		return notFound(c, id)
	}
	return c.JSON(task)
}

func (s *Server) createTask(c *fiber.Ctx) error {
	var req taskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !req.Status.Known() {
		return badRequest(c, "unknown status value")
	}

	task := model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		CompletedAt: req.CompletedAt,
	}
	if err := s.tasks.Create(c.Context(), &task); err != nil {
		return s.respondError(c, err)
	}

	c.Location(fmt.Sprintf("/api/tasks/%d", task.ID))
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *Server) updateTask(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "id must be a positive integer")
	}

	var req taskUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Status != nil && !req.Status.Known() {
		return badRequest(c, "unknown status value")
	}

	task, err := s.tasks.Get(c.Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	if task == nil {
		return notFound(c, id)
	}

	req.applyTo(task)
	if err := s.tasks.Update(c.Context(), task); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteTask(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "id must be a positive integer")
	}

	if err := s.tasks.Delete(c.Context(), id); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// respondError maps service errors onto transport status codes. Anything
// that is neither a validation nor a not-found error is reported with a
// generic message so internal detail never reaches the client.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	var nferr *service.NotFoundError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: verr.Error()})
	case errors.As(err, &nferr):
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: nferr.Error()})
	default:
		log.Printf("api: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Error: "internal server error, please try again later",
		})
	}
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: msg})
}

func notFound(c *fiber.Ctx, id uint) error {
	return c.Status(fiber.StatusNotFound).JSON(errorResponse{
		Error: fmt.Sprintf("task with id %d not found", id),
	})
}
