package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tiffin/cmd/fx/account_fx"
	"tiffin/cmd/fx/cache_fx"
	"tiffin/cmd/fx/controllers_fx"
	"tiffin/cmd/fx/customer_fx"
	"tiffin/cmd/fx/db_fx"
	"tiffin/cmd/fx/mealplan_fx"
	"tiffin/cmd/fx/membership_fx"
	"tiffin/internal/api/controllers"
	"tiffin/internal/infra"
	"tiffin/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		cache_fx.Module,
		account_fx.Module,
		customer_fx.Module,
		mealplan_fx.Module,
		membership_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cache *infra.RedisCache,
	accountController *controllers.AccountController,
	customerController *controllers.CustomerController,
	mealPlanController *controllers.MealPlanController,
	membershipController *controllers.MembershipController,
) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, cache, accountController, customerController, mealPlanController, membershipController)

	return r
}

func RegisterRoutes(
	r *gin.Engine,
	cache *infra.RedisCache,
	accountController *controllers.AccountController,
	customerController *controllers.CustomerController,
	mealPlanController *controllers.MealPlanController,
	membershipController *controllers.MembershipController,
) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware())

	customers := authed.Group("/customers")
	customers.POST("", customerController.CreateCustomer)
	customers.GET("", customerController.ListCustomers)
	customers.GET("/:id", customerController.GetCustomerById)
	customers.PUT("/:id", customerController.UpdateCustomer)
	customers.DELETE("/:id", customerController.DeleteCustomer)

	mealPlans := authed.Group("/meal-plans")
	mealPlans.POST("", mealPlanController.CreateMealPlan)
	mealPlans.GET("", mealPlanController.ListMealPlans)
	mealPlans.GET("/:id", mealPlanController.GetMealPlanById)
	mealPlans.PUT("/:id", mealPlanController.UpdateMealPlan)
	mealPlans.DELETE("/:id", mealPlanController.DeleteMealPlan)

	memberships := authed.Group("/user-memberships")
	memberships.Use(middleware.IdempotencyMiddleware(cache))
	memberships.POST("", membershipController.CreateMembership)
	memberships.GET("", membershipController.ListMemberships)
	memberships.GET("/:id", membershipController.GetMembershipById)
	memberships.PUT("/:id", membershipController.UpdateMembership)
	memberships.PATCH("/:id/status", membershipController.SetMembershipStatus)
	memberships.POST("/:id/punch", membershipController.PunchMeals)
	memberships.PATCH("/:id/update-meal-selections", membershipController.UpdateMealSelections)
	memberships.DELETE("/:id", membershipController.DeleteMembership)
}
