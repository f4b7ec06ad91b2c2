package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "fin-tools-backend/lib/utils/auth-utils"
	"fin-tools-backend/models"
	apimodels "fin-tools-backend/models/api"
)

func GetUserOrg(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if org, exist := claims["org"]; exist {
		if orgID, ok := org.(string); ok {
			return orgID
		}
	}
	return ""
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if userID, ok := sub.(string); ok {
			return userID
		}
	}
	return ""
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if name, exist := claims["name"]; exist {
		if userName, ok := name.(string); ok {
			return userName
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

// OrgRequired rejects tokens without an organization claim; issuer portal
// routes are always org-scoped.
func OrgRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserOrg(ctx) == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not available"))
		}
		return ctx.Next()
	}
}

func AdminRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.UserRoleAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not available"))
		}
		return ctx.Next()
	}
}
