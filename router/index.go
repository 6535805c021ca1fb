package router

import (
	"gym_manager/handler"
	"gym_manager/middleware"
	"gym_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	checkin := v1.Group("/checkin", logger.New())
	checkin.Post("/", middleware.Protected(), validate.CheckIn(), handler.CheckIn)
	checkin.Post("/public", validate.PublicCheckIn(), handler.PublicCheckIn)
	checkin.Get("/logs", middleware.Protected(), handler.GetCheckInLogs)
	checkin.Get("/feed/:branchId", websocket.New(handler.CheckInFeedSocket))

	ticket := v1.Group("/ticket", logger.New())
	ticket.Get("/", middleware.Protected(), handler.GetTickets)
	ticket.Get("/by-phone/:phone", middleware.Protected(), handler.GetTicketsByPhone)
	ticket.Post("/", middleware.Protected(), validate.CreateTicket(), handler.CreateTicket)
	ticket.Post("/:code/token", middleware.Protected(), handler.IssueTicketToken)
	ticket.Put("/:code", middleware.Protected(), validate.EditTicket(), handler.EditTicket)
	ticket.Patch("/:code/lock/:locked", middleware.Protected(), handler.LockTicket)
	ticket.Delete("/:code", middleware.Protected(), handler.DeleteTicket)

	customer := v1.Group("/customer", logger.New())
	customer.Get("/", middleware.Protected(), handler.GetCustomers)
	customer.Post("/", middleware.Protected(), validate.CreateCustomer(), handler.CreateCustomer)
	customer.Put("/:customerId", middleware.Protected(), validate.GetById("customerId"), validate.EditCustomer(), handler.EditCustomer)
	customer.Post("/change-pin", middleware.Protected(), validate.ChangePin(), handler.ChangePin)
	customer.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteCustomers)

	staff := v1.Group("/staff", logger.New())
	staff.Get("/", middleware.Protected(), handler.GetStaffs)
	staff.Post("/", middleware.Protected(), validate.CreateStaff(), handler.CreateStaff)
	staff.Put("/:staffId", middleware.Protected(), validate.GetById("staffId"), validate.UpdateStaff(), handler.UpdateStaff)

	branch := v1.Group("/branch", logger.New())
	branch.Get("/", middleware.Protected(), handler.GetBranches)
	branch.Post("/", middleware.Protected(), validate.CreateBranch(), handler.CreateBranch)
	branch.Put("/:branchId", middleware.Protected(), validate.GetById("branchId"), validate.EditBranch(), handler.EditBranch)

	tenant := v1.Group("/tenant", logger.New())
	tenant.Get("/", middleware.Protected(), handler.GetTenants)
	tenant.Post("/", middleware.Protected(), validate.CreateTenant(), handler.CreateTenant)
	tenant.Put("/:tenantId", middleware.Protected(), validate.GetById("tenantId"), validate.EditTenant(), handler.EditTenant)
	tenant.Delete("/:tenantId", middleware.Protected(), validate.GetById("tenantId"), handler.DeleteTenant)
	tenant.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/overview", middleware.Protected(), handler.GetOverviewStats)
}
