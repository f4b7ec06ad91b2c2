package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fin-tools-backend/controllers"
	applicationhandler "fin-tools-backend/lib/application"
	filestorage "fin-tools-backend/lib/file-storage"
	reviewhandler "fin-tools-backend/lib/review"
	"fin-tools-backend/middleware"
	"fin-tools-backend/models"
	apimodels "fin-tools-backend/models/api"
	applicationapimodels "fin-tools-backend/models/api/application"
	filesapimodels "fin-tools-backend/models/api/files"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app fiber.Router) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.archive)
			idRoute.Get("step", controller.loadStep)
			idRoute.Post("step", controller.saveStep)
			idRoute.Post("restart", controller.restart)
			idRoute.Post("upload_url", controller.uploadURL)
			idRoute.Delete("file", controller.deleteFile)
			idRoute.Get("notes", controller.notes)
		})
	})
}

// @Summary Application list
// @Tags Application
// @Description Organization's applications, archived ones excluded
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.Filter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/list [post]
func (c *applicationApiController) list(ctx *fiber.Ctx) error {
	var payload applicationapimodels.Filter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	list, rowCount, err := applicationhandler.Instance.List(ctx.UserContext(), orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create application
// @Tags Application
// @Description Opens a draft against the product's current version
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.CreateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application [post]
func (c *applicationApiController) create(ctx *fiber.Ctx) error {
	var payload applicationapimodels.CreateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	id, hMsg, err := applicationhandler.Instance.Create(ctx.UserContext(), orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create application")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Application by ID
// @Tags Application
// @Description Application by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, hMsg, err := applicationhandler.Instance.GetByID(ctx.UserContext(), orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get application")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Archive application
// @Tags Application
// @Description Hides the application from lists, records are kept
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id} [delete]
func (c *applicationApiController) archive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	err = applicationhandler.Instance.Archive(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to archive application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Load wizard step
// @Tags Application
// @Description Step view with guard verdict; step=0 resumes at the highest reachable one
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Param   step        		query   int     false   "1-based step position"
// @Param   structure       	query   string  false   "financing structure override"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.StepView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/step [get]
func (c *applicationApiController) loadStep(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	requested := ctx.QueryInt("step", 0)
	override := models.FinancingStructure(ctx.Query("structure"))
	resp, hMsg, err := applicationhandler.Instance.LoadStep(ctx.UserContext(), orgID, id, requested, override)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load step")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Save wizard step
// @Tags Application
// @Description Validate, commit and advance; a fail message means nothing was written
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.StepSaveRequest	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.SaveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/step [post]
func (c *applicationApiController) saveStep(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.StepSaveRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, hMsg, err := applicationhandler.Instance.SaveStep(ctx.UserContext(), orgID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to save step")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Restart application
// @Tags Application
// @Description Archives a frozen application and opens a fresh draft on the current product version
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/restart [post]
func (c *applicationApiController) restart(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	newID, hMsg, err := applicationhandler.Instance.Restart(ctx.UserContext(), orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to restart application")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(newID))
}

// @Summary Document upload URL
// @Tags Application
// @Description Presigned PUT URL for a supporting document
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 filesapimodels.UploadURLRequest	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=filesapimodels.UploadURLResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/upload_url [post]
func (c *applicationApiController) uploadURL(ctx *fiber.Ctx) error {
	var payload filesapimodels.UploadURLRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, err := filestorage.Instance.RequestUploadURL(ctx.UserContext(), orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to request upload url")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete uploaded file
// @Tags Application
// @Description Removes an uploaded object; best effort, a missing object is not an error
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Param   key					query	string	true	"object key"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/file [delete]
func (c *applicationApiController) deleteFile(ctx *fiber.Ctx) error {
	key := ctx.Query("key")
	if key == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("object key is not specified"))
	}
	orgID := middleware.GetUserOrg(ctx)
	filestorage.Instance.DeleteObject(ctx.UserContext(), orgID, key)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Amendment notes
// @Tags Application
// @Description Reviewer instructions attached to an amendment request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]reviewapimodels.NoteView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/application/{id}/notes [get]
func (c *applicationApiController) notes(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, hMsg, err := reviewhandler.Instance.IssuerNotes(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list amendment notes")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
