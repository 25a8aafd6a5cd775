package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wellness-backend/controllers"
	"wellness-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	bc *controllers.BookingController,
	cc *controllers.CompanyController,
	oc *controllers.OfficeController,
	uc *controllers.CompanyUserController,
	sc *controllers.SettingsController,
	exportDir string,
	apiKey string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	r.Static("/exports", exportDir)

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-Key", "X-Actor-ID", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.APIKey(apiKey))
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.PATCH("/:id/status", bc.UpdateBookingStatus)
			bookings.DELETE("/:id", bc.DeleteBooking)
		}

		companies := api.Group("/companies")
		{
			companies.GET("", cc.GetCompanies)
			companies.POST("", cc.CreateCompany)
			companies.GET("/:id", cc.GetCompany)
			companies.PUT("/:id", cc.UpdateCompany)
			companies.DELETE("/:id", cc.DeleteCompany)
		}

		offices := api.Group("/offices")
		{
			offices.GET("", oc.GetOffices)
			offices.POST("", oc.CreateOffice)
			offices.PUT("/:id", oc.UpdateOffice)
			offices.DELETE("/:id", oc.DeleteOffice)
		}

		companyUsers := api.Group("/company-users")
		{
			companyUsers.GET("", uc.GetCompanyUsers)
			companyUsers.POST("", uc.CreateCompanyUser)
			companyUsers.DELETE("/:id", uc.DeleteCompanyUser)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/platform", sc.GetSettings)
			settings.PUT("/platform", sc.UpdateSettings)
		}
	}

	return r
}
