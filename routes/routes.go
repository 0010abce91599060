package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/pkg/storage"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, store *storage.Store, feed *ws.OrderFeed) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	userSvc := services.NewUserService(userRepo, store)
	productSvc := services.NewProductService(db, productRepo, store)
	cartSvc := services.NewCartService(db, cartRepo, productRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, productRepo, services.AllowAllTransitions, feed)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, int(cfg.JWTTTL.Seconds()))
	userCtrl := controllers.NewUserController(userSvc)
	productCtrl := controllers.NewProductController(productSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	adminOnly := middlewares.AuthMiddleware(cfg.JWTSecret, "admin")

	// Auth (public)
	r.POST("/register", authCtrl.Register)
	r.POST("/login", authCtrl.Login)

	// Auth (protected)
	r.GET("/user", auth, authCtrl.Me)
	r.POST("/logout", auth, authCtrl.Logout)
	r.POST("/refresh", auth, authCtrl.Refresh)

	// Catalog (public reads)
	r.GET("/products", productCtrl.Index)
	r.GET("/products/search", productCtrl.Search)
	r.GET("/products/:id", productCtrl.Show)

	// Cart
	cart := r.Group("/cart", auth)
	{
		cart.GET("", cartCtrl.Show)
		cart.POST("/add", cartCtrl.Add)
		cart.POST("/update-quantity", cartCtrl.UpdateQuantity)
		cart.POST("/update-selection/:cartItemId", cartCtrl.UpdateSelection)
		cart.POST("/remove", cartCtrl.Remove)
	}

	// Orders
	orders := r.Group("/orders", auth)
	{
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Show)
		orders.POST("/place-from-cart", orderCtrl.PlaceFromCart)
		orders.POST("/quick-order", orderCtrl.QuickOrder)
		orders.POST("/:id/cancel", orderCtrl.Cancel)
		orders.PATCH("/:id/status", adminOnly, orderCtrl.UpdateStatus)
	}

	// Catalog management (admin)
	r.POST("/products", adminOnly, productCtrl.Store)
	r.POST("/products/:id", adminOnly, productCtrl.Update) // method-spoofing clients
	r.PUT("/products/:id", adminOnly, productCtrl.Update)
	r.DELETE("/products/:id", adminOnly, productCtrl.Destroy)
	r.DELETE("/products/:id/ingredients/:ingredientId", adminOnly, productCtrl.DestroyIngredient)

	// User management (admin)
	users := r.Group("/users", adminOnly)
	{
		users.GET("", userCtrl.Index)
		users.GET("/:id", userCtrl.Show)
		users.POST("/:id", userCtrl.Update)
		users.DELETE("/:id", userCtrl.Destroy)
	}

	// Admin maintenance + live order feed
	r.POST("/admin/images/clean-orphans", adminOnly, productCtrl.CleanOrphanImages)
	r.GET("/ws/orders", adminOnly, feed.HandleWebSocket)
}
