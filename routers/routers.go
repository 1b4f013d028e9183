package routers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shopease/handlers"
	"shopease/middleware"
)

func SetupRouters(db *gorm.DB, rdb *redis.Client, jwtSecret []byte) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: false,
	}))
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil
	}

	api := router.Group("/api")

	// Auth
	api.POST("/signup", func(c *gin.Context) {
		handlers.SignUpHandler(c, db)
	})
	api.POST("/users", func(c *gin.Context) {
		handlers.SignUpHandler(c, db)
	})
	api.POST("/signin", func(c *gin.Context) {
		handlers.SignInHandler(c, db, jwtSecret)
	})

	// Catalog (CRUD open, matching the frontend contract)
	api.GET("/products", func(c *gin.Context) {
		handlers.ListProductsHandler(c, db, rdb)
	})
	api.GET("/products/search", func(c *gin.Context) {
		handlers.SearchProductsHandler(c, db)
	})
	api.GET("/products/category/:categoryId", func(c *gin.Context) {
		handlers.ListProductsByCategoryHandler(c, db)
	})
	api.GET("/products/:id", func(c *gin.Context) {
		handlers.GetProductHandler(c, db)
	})
	api.POST("/products", func(c *gin.Context) {
		handlers.CreateProductHandler(c, db, rdb)
	})
	api.PUT("/products/:id", func(c *gin.Context) {
		handlers.UpdateProductHandler(c, db, rdb)
	})
	api.DELETE("/products/:id", func(c *gin.Context) {
		handlers.DeleteProductHandler(c, db, rdb)
	})

	api.GET("/categories", func(c *gin.Context) {
		handlers.ListCategoriesHandler(c, db)
	})
	api.GET("/categories/:id", func(c *gin.Context) {
		handlers.GetCategoryHandler(c, db)
	})
	api.POST("/categories", func(c *gin.Context) {
		handlers.CreateCategoryHandler(c, db)
	})
	api.PUT("/categories/:id", func(c *gin.Context) {
		handlers.UpdateCategoryHandler(c, db)
	})
	api.DELETE("/categories/:id", func(c *gin.Context) {
		handlers.DeleteCategoryHandler(c, db)
	})

	// Users
	api.GET("/users", func(c *gin.Context) {
		handlers.ListUsersHandler(c, db)
	})
	api.GET("/users/:id", func(c *gin.Context) {
		handlers.GetUserHandler(c, db)
	})
	api.PUT("/users/:id", func(c *gin.Context) {
		handlers.UpdateUserHandler(c, db)
	})
	api.DELETE("/users/:id", func(c *gin.Context) {
		handlers.DeleteUserHandler(c, db)
	})

	// Orders are bare receipts; creation is open, listing is per-user.
	api.POST("/orders", func(c *gin.Context) {
		handlers.CreateOrderHandler(c, db)
	})

	// Admin-style cart CRUD
	api.GET("/carts", func(c *gin.Context) {
		handlers.ListCartsHandler(c, db)
	})
	api.GET("/carts/:userId", func(c *gin.Context) {
		handlers.GetCartByUserHandler(c, db)
	})
	api.POST("/carts", func(c *gin.Context) {
		handlers.CreateCartHandler(c, db)
	})
	api.DELETE("/carts/:userId", func(c *gin.Context) {
		handlers.DeleteCartByUserHandler(c, db)
	})

	api.GET("/cart-items/:cartId", func(c *gin.Context) {
		handlers.GetCartItemsHandler(c, db)
	})
	api.POST("/cart-items", func(c *gin.Context) {
		handlers.CreateCartItemHandler(c, db)
	})
	api.PUT("/cart-items/:cartItemId", func(c *gin.Context) {
		handlers.UpdateCartItemByIDHandler(c, db)
	})
	api.DELETE("/cart-items/:cartItemId", func(c *gin.Context) {
		handlers.DeleteCartItemByIDHandler(c, db)
	})

	// Bearer-token routes
	authRequired := api.Group("")
	authRequired.Use(middleware.RequireAuth(jwtSecret, rdb))
	{
		authRequired.POST("/signout", func(c *gin.Context) {
			handlers.SignOutHandler(c, rdb)
		})
		authRequired.GET("/userinfo", func(c *gin.Context) {
			handlers.GetUserInfoHandler(c, db)
		})
		authRequired.PUT("/userinfo", func(c *gin.Context) {
			handlers.UpdateUserInfoHandler(c, db)
		})

		authRequired.GET("/cart", func(c *gin.Context) {
			handlers.GetCartHandler(c, db)
		})
		authRequired.POST("/cart/add", func(c *gin.Context) {
			handlers.AddToCartHandler(c, db)
		})
		authRequired.PUT("/cart/update", func(c *gin.Context) {
			handlers.UpdateCartItemHandler(c, db)
		})
		authRequired.DELETE("/cart/remove", func(c *gin.Context) {
			handlers.RemoveFromCartHandler(c, db)
		})

		authRequired.GET("/wishlist", func(c *gin.Context) {
			handlers.GetWishlistHandler(c, db)
		})
		authRequired.POST("/wishlist/add", func(c *gin.Context) {
			handlers.AddToWishlistHandler(c, db)
		})
		authRequired.DELETE("/wishlist/remove", func(c *gin.Context) {
			handlers.RemoveFromWishlistHandler(c, db)
		})
		authRequired.GET("/wishlist/check", func(c *gin.Context) {
			handlers.CheckWishlistHandler(c, db)
		})

		authRequired.GET("/orders", func(c *gin.Context) {
			handlers.ListOrdersHandler(c, db)
		})
	}

	return router
}
