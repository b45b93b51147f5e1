package router

import (
	"pasarKarya/business/policy"
	"pasarKarya/internal/middleware"
	"pasarKarya/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/email-verification", handler.VerifyEmail)
	users.POST("/forgot-password", handler.ForgotPassword)
	users.POST("/password-reset/:code", handler.ResetPassword)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, middleware.SelfOrAdmin())
	users.GET("/:id", handler.GetUserByID, authRequired, middleware.SelfOrAdmin())
	users.GET("", handler.GetAllUsers, authRequired, middleware.AdminOnly())
	users.DELETE("/:id", handler.DeleteUser, authRequired, middleware.AdminOnly())
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc) {
	products := api.Group("/products")

	// Public storefront
	products.GET("", handler.GetCatalog)

	products.GET("/mine", handler.GetMyProducts, authRequired, middleware.Permit(policy.ActionSubmitProduct))
	products.GET("/:id", handler.GetProductByID, authRequired)
	products.PUT("/:id", handler.UpdateProduct, authRequired, middleware.Permit(policy.ActionEditProduct))
	products.DELETE("/:id", handler.DeleteProduct, authRequired, middleware.Permit(policy.ActionDeleteProduct))
	products.POST("/assets", handler.UploadAsset, authRequired, middleware.Permit(policy.ActionSubmitProduct))
}

func SetupCurationRoutes(api *echo.Group, handler *rest.CurationHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/products", handler.SubmitProduct, authRequired, middleware.Permit(policy.ActionSubmitProduct))

	curationGroup := api.Group("/curation", authRequired, middleware.Permit(policy.ActionReviewProduct))
	curationGroup.GET("/products", handler.ListPendingProducts)
	curationGroup.POST("/products/:id/review", handler.ReviewProduct)
}

func SetupCuratorRoutes(api *echo.Group, handler *rest.CuratorHandler, authRequired echo.MiddlewareFunc) {
	curators := api.Group("/admin/curators", authRequired, middleware.AdminOnly())

	curators.GET("", handler.ListPending)
	curators.POST("/:id/approve", handler.Approve)
	curators.POST("/:id/reject", handler.Reject)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)
	orders.POST("", ordersHandler.CreateOrderItem)
	orders.GET("", ordersHandler.GetAllOrders)
	orders.GET("/:id", ordersHandler.GetOrderByID)
}

func SetRedeemRoutes(api *echo.Group, redeemHandler *rest.RedeemHandler, authRequired echo.MiddlewareFunc) {
	redeem := api.Group("/redeem", authRequired)

	redeem.GET("/products", redeemHandler.ListRedeemProducts)
	redeem.POST("/products", redeemHandler.CreateRedeemProduct, middleware.AdminOnly())
	redeem.POST("/products/:id", redeemHandler.Redeem)
	redeem.GET("/history", redeemHandler.GetMyRedemptions)
}
