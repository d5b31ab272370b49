package dict

import (
	"template-approval-backend/controllers"
	unitprovider "template-approval-backend/lib/dicts/unit"
	"template-approval-backend/middleware"
	apimodels "template-approval-backend/models/api"
	dictapimodels "template-approval-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type unitApiController struct {
	controllers.BaseAPIController
}

func InitUnitDictApiRouters(app *fiber.App) {
	controller := unitApiController{}
	app.Route("units", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", middleware.AdminRequired(), controller.create)
	})
}

// @Summary List
// @Tags Units
// @Description Unit reference list
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.UnitView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/units [get]
func (c *unitApiController) list(ctx *fiber.Ctx) error {
	list, err := unitprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list units")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Create
// @Tags Units
// @Description Adds a unit
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.UnitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/units [post]
func (c *unitApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.UnitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := unitprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create the unit")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}
