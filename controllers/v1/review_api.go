package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"fin-tools-backend/controllers"
	reviewhandler "fin-tools-backend/lib/review"
	"fin-tools-backend/middleware"
	"fin-tools-backend/models"
	apimodels "fin-tools-backend/models/api"
	applicationapimodels "fin-tools-backend/models/api/application"
	reviewapimodels "fin-tools-backend/models/api/review"
)

type reviewApiController struct {
	controllers.BaseAPIController
}

func InitReviewApiRouters(app fiber.Router) {
	controller := reviewApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export/xlsx", controller.exportXLSX)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("export/pdf", controller.exportPDF)
			idRoute.Put("approve", controller.approveApplication)
			idRoute.Put("reject", controller.rejectApplication)
			idRoute.Route("review", func(reviewRoute fiber.Router) {
				reviewRoute.Get("", controller.review)
				reviewRoute.Get("feed", controller.feed)
				reviewRoute.Route("section/:section", func(sectionRoute fiber.Router) {
					sectionRoute.Put("approve", controller.approveSection)
					sectionRoute.Put("reject", controller.rejectSection)
					sectionRoute.Put("amendment", controller.requestSectionAmendment)
				})
				reviewRoute.Route("item", func(itemRoute fiber.Router) {
					itemRoute.Put("approve", controller.approveItem)
					itemRoute.Put("reject", controller.rejectItem)
					itemRoute.Put("amendment", controller.requestItemAmendment)
				})
			})
		})
	})
}

func actor(ctx *fiber.Ctx) reviewhandler.Actor {
	return reviewhandler.Actor{
		ID:   middleware.GetUserID(ctx),
		Name: middleware.GetUserName(ctx),
	}
}

// @Summary Application list
// @Tags Review
// @Description Applications across all organizations
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.Filter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/list [post]
func (c *reviewApiController) list(ctx *fiber.Ctx) error {
	var payload applicationapimodels.Filter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := reviewhandler.Instance.ListApplications(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Application register export
// @Tags Review
// @Description Filtered application register as an xlsx file
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.Filter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/export/xlsx [post]
func (c *reviewApiController) exportXLSX(ctx *fiber.Ctx) error {
	var payload applicationapimodels.Filter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := reviewhandler.Instance.ExportApplicationsXLSX(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export applications")
	}
	fileName := fmt.Sprintf("applications_%v.xlsx", time.Now().Format("02.01.2006"))
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%v"`, fileName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Application by ID
// @Tags Review
// @Description Application by ID, any organization
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id} [get]
func (c *reviewApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := reviewhandler.Instance.GetApplication(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get application")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Application summary export
// @Tags Review
// @Description One-page pdf summary of the application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/export/pdf [get]
func (c *reviewApiController) exportPDF(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	pdfFile, hMsg, err := reviewhandler.Instance.ExportApplicationPDF(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export application summary")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="application_%v.pdf"`, id))
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}

// @Summary Review state
// @Tags Review
// @Description Sections, items and whether final approval is offered
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=reviewapimodels.ReviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/review [get]
func (c *reviewApiController) review(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := reviewhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get review state")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Review activity feed
// @Tags Review
// @Description Append-only audit trail of the review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]reviewapimodels.EventView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/review/feed [get]
func (c *reviewApiController) feed(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := reviewhandler.Instance.Feed(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get review feed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approve section
// @Tags Review
// @Description Approve section
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Param   section     		path    string  true    "section key"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/review/section/{section}/approve [put]
func (c *reviewApiController) approveSection(ctx *fiber.Ctx) error {
	id, section, err := c.sectionParams(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reviewhandler.Instance.ApproveSection(id, section, actor(ctx))
	return c.sendActionResult(ctx, hMsg, err, "failed to approve section")
}

// @Summary Reject section
// @Tags Review
// @Description Reject section, a remark is required
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reviewapimodels.ActionRequest	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Param   section     		path    string  true    "section key"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/review/section/{section}/reject [put]
func (c *reviewApiController) rejectSection(ctx *fiber.Ctx) error {
	id, section, err := c.sectionParams(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload reviewapimodels.ActionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.ValidateNote(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reviewhandler.Instance.RejectSection(id, section, payload.Note, actor(ctx))
	return c.sendActionResult(ctx, hMsg, err, "failed to reject section")
}

// @Summary Request section amendment
// @Tags Review
// @Description Returns the application to the issuer for rework, a remark is required
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reviewapimodels.ActionRequest	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Param   section     		path    string  true    "section key"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/review/section/{section}/amendment [put]
func (c *reviewApiController) requestSectionAmendment(ctx *fiber.Ctx) error {
	id, section, err := c.sectionParams(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload reviewapimodels.ActionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.ValidateNote(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reviewhandler.Instance.RequestSectionAmendment(id, section, payload.Note, actor(ctx))
	return c.sendActionResult(ctx, hMsg, err, "failed to request section amendment")
}

// @Summary Approve item
// @Tags Review
// @Description Approve one invoice or document
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reviewapimodels.ItemActionRequest	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/review/item/approve [put]
func (c *reviewApiController) approveItem(ctx *fiber.Ctx) error {
	id, payload, err := c.itemParams(ctx, false)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reviewhandler.Instance.ApproveItem(id, payload.ItemType, payload.ItemKey, actor(ctx))
	return c.sendActionResult(ctx, hMsg, err, "failed to approve item")
}

// @Summary Reject item
// @Tags Review
// @Description Reject one invoice or document, a remark is required
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reviewapimodels.ItemActionRequest	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/review/item/reject [put]
func (c *reviewApiController) rejectItem(ctx *fiber.Ctx) error {
	id, payload, err := c.itemParams(ctx, true)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reviewhandler.Instance.RejectItem(id, payload.ItemType, payload.ItemKey, payload.Note, actor(ctx))
	return c.sendActionResult(ctx, hMsg, err, "failed to reject item")
}

// @Summary Request item amendment
// @Tags Review
// @Description Returns the application to the issuer over one invoice or document, a remark is required
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reviewapimodels.ItemActionRequest	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/review/item/amendment [put]
func (c *reviewApiController) requestItemAmendment(ctx *fiber.Ctx) error {
	id, payload, err := c.itemParams(ctx, true)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reviewhandler.Instance.RequestItemAmendment(id, payload.ItemType, payload.ItemKey, payload.Note, actor(ctx))
	return c.sendActionResult(ctx, hMsg, err, "failed to request item amendment")
}

// @Summary Approve application
// @Tags Review
// @Description Final approval, offered only when every section is approved
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/approve [put]
func (c *reviewApiController) approveApplication(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reviewhandler.Instance.ApproveApplication(id, actor(ctx))
	return c.sendActionResult(ctx, hMsg, err, "failed to approve application")
}

// @Summary Reject application
// @Tags Review
// @Description Final rejection, a remark is required
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reviewapimodels.ActionRequest	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/application/{id}/reject [put]
func (c *reviewApiController) rejectApplication(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload reviewapimodels.ActionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.ValidateNote(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reviewhandler.Instance.RejectApplication(id, payload.Note, actor(ctx))
	return c.sendActionResult(ctx, hMsg, err, "failed to reject application")
}

func (c *reviewApiController) sectionParams(ctx *fiber.Ctx) (id string, section models.ReviewSectionKey, err error) {
	id, err = c.GetID(ctx)
	if err != nil {
		return "", "", err
	}
	sectionKey, err := c.GetIDByKey(ctx, "section")
	if err != nil {
		return "", "", err
	}
	return id, models.ReviewSectionKey(sectionKey), nil
}

func (c *reviewApiController) itemParams(ctx *fiber.Ctx, noteRequired bool) (id string, payload reviewapimodels.ItemActionRequest, err error) {
	id, err = c.GetID(ctx)
	if err != nil {
		return "", payload, err
	}
	if err = c.BodyParser(ctx, &payload); err != nil {
		return "", payload, err
	}
	if err = payload.Validate(); err != nil {
		return "", payload, err
	}
	if noteRequired {
		if err = (reviewapimodels.ActionRequest{Note: payload.Note}).ValidateNote(); err != nil {
			return "", payload, err
		}
	}
	return id, payload, nil
}

func (c *reviewApiController) sendActionResult(ctx *fiber.Ctx, hMsg string, err error, message string) error {
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, message)
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
