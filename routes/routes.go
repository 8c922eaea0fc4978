package routes

import (
	"campus-cravings-api/handlers"
	"campus-cravings-api/middleware"
	"campus-cravings-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Auth ───────────────────────────────────────────────────────
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.GET("/google", handlers.GoogleLogin)
		auth.GET("/google/callback", handlers.GoogleCallback)
		auth.GET("/me", middleware.AuthRequired(), handlers.Me)
	}

	// ── Menu ───────────────────────────────────────────────────────
	menu := r.Group("/api/menu")
	{
		menu.GET("", handlers.ListMenu)
		menu.POST("", handlers.ListMenu) // some clients send filters in a POST body
		menu.GET("/categories", handlers.ListCategories)

		admin := menu.Group("", middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/add", handlers.CreateMenuItem)
			admin.PUT("/:itemId", handlers.UpdateMenuItem)
			admin.DELETE("/:itemId", handlers.DeleteMenuItem)
		}
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := r.Group("/api/orders", middleware.AuthRequired())
	{
		orders.GET("", handlers.GetMyOrders)
		orders.POST("", handlers.CreateOrder)
		orders.GET("/transitions", handlers.GetOrderTransitions)

		admin := orders.Group("/admin", middleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/all", handlers.AdminGetAllOrders)
			admin.POST("/all", handlers.AdminGetAllOrders)
			admin.PUT("/:orderId/status", handlers.UpdateOrderStatus)
		}
	}

	// ── User ───────────────────────────────────────────────────────
	user := r.Group("/api/user", middleware.AuthRequired())
	{
		user.POST("/update", handlers.UpdatePhone)
		user.POST("/verify", handlers.VerifyPhone)
		user.GET("/status", handlers.PhoneStatus)
		user.GET("/profile", handlers.GetProfile)
		user.POST("/update-username", handlers.UpdateUsername)
		user.POST("/fcm-token", handlers.SaveFCMToken)
	}

	// ── College ────────────────────────────────────────────────────
	college := r.Group("/api/college")
	{
		college.GET("/all", handlers.ListColleges)

		authed := college.Group("/user", middleware.AuthRequired())
		{
			authed.PUT("/college", handlers.UpdateUserCollege)
			authed.GET("/college", handlers.GetUserCollege)
		}

		admin := college.Group("", middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("", handlers.CreateCollege)
			admin.PUT("/:id", handlers.UpdateCollege)
			admin.DELETE("/:id", handlers.DeleteCollege)
		}
	}
}
