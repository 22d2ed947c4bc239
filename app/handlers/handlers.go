// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
	"github.com/openmusic/api/utils"
)

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param()
	case "max":
		return err.Field() + " must be at most " + err.Param()
	case "alphanum":
		return err.Field() + " must contain only letters and digits"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

// validationMessages flattens validator errors into per-field messages
func validationMessages(err error) []string {
	var messages []string
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range errs {
			messages = append(messages, getValidationErrorMessage(fieldErr))
		}
	} else {
		messages = append(messages, err.Error())
	}
	return messages
}

// SuccessResponse writes a success envelope
func SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.SuccessEnvelope(message, data))
}

// FailResponse writes a client-fault envelope
func FailResponse(c fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(dto.FailEnvelope(message))
}

// ErrorResponse writes a server-fault envelope with a generic message
func ErrorResponse(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).
		JSON(dto.ErrorEnvelope("Internal server error"))
}

// FlowErrorResponse maps business flow errors onto HTTP statuses: missing
// resources to 404, denied access to 403, bad credentials to 401,
// violated business rules to 400, everything else to 500. Only the 500
// branch logs; client faults are expected traffic.
func FlowErrorResponse(c fiber.Ctx, operation string, err error) error {
	switch {
	case businessflow.IsNotFound(err):
		return FailResponse(c, fiber.StatusNotFound, err.Error())
	case businessflow.IsForbidden(err):
		return FailResponse(c, fiber.StatusForbidden, err.Error())
	case businessflow.IsInvalidCredentials(err):
		return FailResponse(c, fiber.StatusUnauthorized, err.Error())
	case businessflow.IsCoverTooLarge(err):
		return FailResponse(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case businessflow.IsUsernameTaken(err),
		businessflow.IsRefreshTokenInvalid(err),
		businessflow.IsSongAlreadyInPlaylist(err),
		businessflow.IsCollaborationExists(err),
		businessflow.IsCollaboratorIsOwner(err),
		businessflow.IsAlreadyLiked(err),
		businessflow.IsUnsupportedImageType(err):
		return FailResponse(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("%s failed: %v", operation, err)
		return ErrorResponse(c)
	}
}

// clientMetadata extracts client information for the flow layer
func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get(businessflow.RequestIDKey))
	return metadata
}

// createRequestContext creates a context with a timeout and request-scoped values
func createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}

// authenticatedUserID returns the user id the auth middleware stored
func authenticatedUserID(c fiber.Ctx) string {
	if userID, ok := c.Locals("user_id").(string); ok {
		return userID
	}
	return ""
}
