package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/controller/node"
	"github.com/dirbridge/dirbridge/internal/db/controller/subscription"
	"github.com/dirbridge/dirbridge/internal/groups"
)

// Problem is the JSON error payload returned to API clients.
type Problem struct {
	// Parameter names the rejected input parameter, if any.
	Parameter string `json:"parameter,omitempty"`
	// Rule names the violated validation rule, if any.
	Rule string `json:"rule,omitempty"`
	// Message is a short human readable description.
	Message string `json:"message"`
}

// Fail maps a domain error to the matching HTTP status and JSON payload.
// Validation failures carry the parameter and rule so the UI can attach
// the message to the right form field.
func Fail(c *fiber.Ctx, err error) error {
	var validation *groups.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(Problem{
			Parameter: validation.Parameter,
			Rule:      validation.Rule,
			Message:   validation.Error(),
		})
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, subscription.ErrSubscriptionNotFound),
		errors.Is(err, node.ErrNodeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(Problem{Message: err.Error()})
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(Problem{Message: "service unavailable"})
	}
}
