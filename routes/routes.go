package routes

import (
	"net/http"
	"time"

	"storefront/auth"
	"storefront/controllers"
	"storefront/events"
	"storefront/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Handler     *controllers.Handler
	Tokens      *auth.TokenManager
	Hub         *events.Hub
	CORSOrigins []string
}

func Register(r *gin.Engine, d Deps) {
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.Session(d.Tokens, d.Handler.Cookie.Name))

	h := d.Handler

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/auth/status", h.AuthStatus)
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.POST("/orders", h.SubmitOrder)

	api := r.Group("/api")
	{
		read := api.Group("/read")
		{
			read.GET("/products", h.GetProductsPublic)
			read.GET("/products/:slug", h.GetProductBySlug)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			shopper := protected.Group("/cart")
			{
				shopper.GET("", h.GetCart)
				shopper.POST("/items", h.AddToCart)
				shopper.PUT("/items/:productId", h.UpdateCart)
				shopper.DELETE("/items/:productId", h.RemoveFromCart)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.POST("/products", h.CreateProduct)
				admin.GET("/products/export", h.ExportProducts)
				admin.PUT("/products/:id", h.UpdateProduct)
				admin.DELETE("/products/:id", h.DeleteProduct)

				admin.GET("/orders", h.GetOrdersAdmin)
				admin.GET("/orders/feed", d.Hub.ServeWS)
				admin.GET("/orders/:id", h.GetOrderByIDAdmin)
				admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
			}
		}
	}
}
