package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fin-tools-backend/controllers"
	producthandler "fin-tools-backend/lib/product"
	apimodels "fin-tools-backend/models/api"
	productapimodels "fin-tools-backend/models/api/product"
)

type productApiController struct {
	controllers.BaseAPIController
}

// InitProductApiRouters mounts the issuer-facing catalog: active products
// only, read only.
func InitProductApiRouters(app fiber.Router) {
	controller := productApiController{}
	app.Route("product", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get(":id", controller.get)
	})
}

// InitAdminProductApiRouters mounts the catalog management routes.
func InitAdminProductApiRouters(app fiber.Router) {
	controller := productApiController{}
	app.Route("product", func(router fiber.Router) {
		router.Post("list", controller.adminList)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Active product list
// @Tags Product
// @Description Products open for new applications
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 apimodels.Pagination	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]productapimodels.ProductView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/product/list [post]
func (c *productApiController) list(ctx *fiber.Ctx) error {
	return c.listProducts(ctx, true)
}

// @Summary Product list
// @Tags Product
// @Description Full catalog, inactive products included
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 apimodels.Pagination	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]productapimodels.ProductView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/product/list [post]
func (c *productApiController) adminList(ctx *fiber.Ctx) error {
	return c.listProducts(ctx, false)
}

func (c *productApiController) listProducts(ctx *fiber.Ctx, activeOnly bool) error {
	var payload apimodels.Pagination
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	page, limit := payload.GetPage()
	list, rowCount, err := producthandler.Instance.List(page, limit, activeOnly)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list products")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Product by ID
// @Tags Product
// @Description Product by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=productapimodels.ProductView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/product/{id} [get]
func (c *productApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := producthandler.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get product")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Create product
// @Tags Product
// @Description Create product
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 productapimodels.ProductData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/product [post]
func (c *productApiController) create(ctx *fiber.Ctx) error {
	var payload productapimodels.ProductData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := producthandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create product")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update product
// @Tags Product
// @Description Update product, bumps the product version
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 productapimodels.ProductData	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/product/{id} [put]
func (c *productApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload productapimodels.ProductData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = producthandler.Instance.Update(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update product")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete product
// @Tags Product
// @Description Delete product, in-flight applications freeze
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/product/{id} [delete]
func (c *productApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = producthandler.Instance.Delete(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete product")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
