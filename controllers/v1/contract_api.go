package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fin-tools-backend/controllers"
	contracthandler "fin-tools-backend/lib/contract"
	"fin-tools-backend/middleware"
	apimodels "fin-tools-backend/models/api"
)

type contractApiController struct {
	controllers.BaseAPIController
}

func InitContractApiRouters(app fiber.Router) {
	controller := contractApiController{}
	app.Route("contract", func(router fiber.Router) {
		router.Post("approved_list", controller.approvedList)
		router.Get(":id", controller.get)
	})
}

// @Summary Approved contract list
// @Tags Contract
// @Description Contracts selectable under the existing-contract structure
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/contract/approved_list [post]
func (c *contractApiController) approvedList(ctx *fiber.Ctx) error {
	orgID := middleware.GetUserOrg(ctx)
	list, err := contracthandler.Instance.ListApproved(orgID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list approved contracts")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Contract by ID
// @Tags Contract
// @Description Contract by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/contract/{id} [get]
func (c *contractApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, err := contracthandler.Instance.GetByID(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get contract")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
