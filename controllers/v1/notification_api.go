package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fin-tools-backend/controllers"
	notificationhandler "fin-tools-backend/lib/notification"
	"fin-tools-backend/middleware"
	apimodels "fin-tools-backend/models/api"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app fiber.Router) {
	controller := notificationApiController{}
	app.Route("notification", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Put(":id/seen", controller.markSeen)
	})
}

// @Summary Notification list
// @Tags Notification
// @Description Organization's notifications, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   unseen        		query   bool    false   "unseen only"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.Notification}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/notification/list [get]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	orgID := middleware.GetUserOrg(ctx)
	unseenOnly := ctx.QueryBool("unseen", false)
	list, err := notificationhandler.Instance.List(orgID, unseenOnly)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list notifications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Mark notification seen
// @Tags Notification
// @Description Mark notification seen
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/notification/{id}/seen [put]
func (c *notificationApiController) markSeen(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	err = notificationhandler.Instance.MarkSeen(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to mark notification seen")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
