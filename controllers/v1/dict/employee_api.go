package dict

import (
	"strconv"

	"template-approval-backend/controllers"
	employeehandler "template-approval-backend/lib/employee"
	"template-approval-backend/middleware"
	apimodels "template-approval-backend/models/api"
	dictapimodels "template-approval-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type employeeApiController struct {
	controllers.BaseAPIController
}

func InitEmployeeDictApiRouters(app *fiber.App) {
	controller := employeeApiController{}
	app.Route("employees", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", middleware.AdminRequired(), controller.create)
		router.Get(":cardno", controller.getByCardNo)
	})
	app.Get("approval-authorities", controller.listApprovers)
}

// @Summary List
// @Tags Employees
// @Description Employee reference list
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.EmployeeView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees [get]
func (c *employeeApiController) list(ctx *fiber.Ctx) error {
	list, err := employeehandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list employees")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get by card number
// @Tags Employees
// @Description Finds the employee a card number belongs to
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   cardno      		path    int     true         "card number"
// @Success 200 {object} apimodels.Response{data=dictapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{cardno} [get]
func (c *employeeApiController) getByCardNo(ctx *fiber.Ctx) error {
	cardNo, err := strconv.ParseInt(ctx.Params("cardno"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("card number must be numeric"))
	}
	item, err := employeehandler.Instance.GetByCardNo(cardNo)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to find the employee")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Approval authorities
// @Tags Employees
// @Description Employees a form can be routed to for approval
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.EmployeeView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval-authorities [get]
func (c *employeeApiController) listApprovers(ctx *fiber.Ctx) error {
	list, err := employeehandler.Instance.ListApprovers()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list approval authorities")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Create
// @Tags Employees
// @Description Adds an employee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees [post]
func (c *employeeApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.EmployeeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := employeehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create the employee")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}
