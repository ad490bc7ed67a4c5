package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"waypoint/cache"
	"waypoint/config"
	"waypoint/database"
	adminRoutes "waypoint/routers/adminRoutes"
	authRoutes "waypoint/routers/authRoutes"
	courseRoutes "waypoint/routers/courseRoutes"
	profileRoutes "waypoint/routers/profileRoutes"
	serviceRoutes "waypoint/routers/serviceRoutes"
	"waypoint/scheduler"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	cache.Init()

	app := fiber.New(fiber.Config{
		AppName: config.AppConfig.AppName,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-Service-Key",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	profileRoutes.SetupProfileRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	serviceRoutes.SetupServiceRoutes(app)

	jobs := scheduler.Start(database.Database.Db)
	defer jobs.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
