package dict

import (
	"template-approval-backend/controllers"
	departmentprovider "template-approval-backend/lib/dicts/department"
	"template-approval-backend/middleware"
	apimodels "template-approval-backend/models/api"
	dictapimodels "template-approval-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type departmentApiController struct {
	controllers.BaseAPIController
}

func InitDepartmentDictApiRouters(app *fiber.App) {
	controller := departmentApiController{}
	app.Route("departments", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", middleware.AdminRequired(), controller.create)
	})
}

// @Summary List
// @Tags Departments
// @Description Department reference list
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DepartmentView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/departments [get]
func (c *departmentApiController) list(ctx *fiber.Ctx) error {
	list, err := departmentprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list departments")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Create
// @Tags Departments
// @Description Adds a department
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/departments [post]
func (c *departmentApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.DepartmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := departmentprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create the department")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}
