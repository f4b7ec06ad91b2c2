package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fin-tools-backend/controllers"
	invoicehandler "fin-tools-backend/lib/invoice"
	"fin-tools-backend/middleware"
	apimodels "fin-tools-backend/models/api"
	invoiceapimodels "fin-tools-backend/models/api/invoice"
)

type invoiceApiController struct {
	controllers.BaseAPIController
}

func InitInvoiceApiRouters(app fiber.Router) {
	controller := invoiceApiController{}
	app.Route("application/:id/invoice", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":invoice_id", func(idRoute fiber.Router) {
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Invoice list
// @Tags Invoice
// @Description Application's invoices
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "application ID"
// @Success 200 {object} apimodels.Response{data=[]invoiceapimodels.InvoiceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/invoice/list [post]
func (c *invoiceApiController) list(ctx *fiber.Ctx) error {
	applicationID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	list, err := invoicehandler.Instance.ListByApplication(orgID, applicationID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list invoices")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Add invoice
// @Tags Invoice
// @Description Add invoice to the application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 invoiceapimodels.InvoiceData	true	"request body"
// @Param   id          		path    string  true    "application ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/invoice [post]
func (c *invoiceApiController) create(ctx *fiber.Ctx) error {
	applicationID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload invoiceapimodels.InvoiceData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	id, hMsg, err := invoicehandler.Instance.Create(orgID, applicationID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to add invoice")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update invoice
// @Tags Invoice
// @Description Update invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 invoiceapimodels.InvoiceData	true	"request body"
// @Param   id          		path    string  true    "application ID"
// @Param   invoice_id     		path    string  true    "invoice ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/invoice/{invoice_id} [put]
func (c *invoiceApiController) update(ctx *fiber.Ctx) error {
	invoiceID, err := c.GetIDByKey(ctx, "invoice_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload invoiceapimodels.InvoiceData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	hMsg, err := invoicehandler.Instance.Update(orgID, invoiceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update invoice")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete invoice
// @Tags Invoice
// @Description Delete invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "application ID"
// @Param   invoice_id     		path    string  true    "invoice ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/invoice/{invoice_id} [delete]
func (c *invoiceApiController) delete(ctx *fiber.Ctx) error {
	invoiceID, err := c.GetIDByKey(ctx, "invoice_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	hMsg, err := invoicehandler.Instance.Delete(orgID, invoiceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete invoice")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
