package main

import (
	"fmt"
	"log"
	"os"

	_ "room_booking/docs"
	"room_booking/internal/auth"
	"room_booking/internal/booking"
	"room_booking/internal/clockwork"
	"room_booking/internal/handlers"
	"room_booking/internal/models"
	"room_booking/internal/notify"
	"room_booking/internal/queue"
	"room_booking/internal/recurring"
	"room_booking/internal/storage"
	"room_booking/internal/tasks"
	"room_booking/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Система бронирования аудиторий
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.Booking{},
		&models.RecurringBooking{},
		&models.BookingQueue{},
	); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	// Письма уходят через SMTP, если он настроен, иначе в лог.
	var notifier notify.Notifier
	if os.Getenv("MAIL_SERVER") != "" {
		notifier = notify.NewEmailNotifier()
	} else {
		log.Println("MAIL_SERVER не задан, уведомления пишутся в лог")
		notifier = notify.ConsoleNotifier{}
	}
	mail := notify.NewDispatcher(notifier)
	defer mail.Close()

	clock := clockwork.System()
	queues := queue.NewManager(storage.DB, clock)
	bookings := booking.NewService(storage.DB, clock, mail, queues)
	recurr := recurring.NewService(storage.DB, clock)

	handlers.Init(bookings, queues, recurr, clock)
	tasks.InitScheduler(bookings, queues, recurr, mail)

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/refresh", auth.RefreshToken)
	}

	api := r.Group("/api")
	{
		api.GET("/classrooms", handlers.GetClassroomsHandler)
		api.GET("/classrooms/:id/availability", handlers.CheckAvailabilityHandler)
		api.GET("/classrooms/:id/schedule", handlers.GetClassroomScheduleHandler)
		api.GET("/classrooms/:id/ws", ws.ClassroomWebSocketHandler)
	}

	user := r.Group("/api", auth.AuthMiddleware())
	{
		user.POST("/bookings", handlers.CreateBookingHandler)
		user.DELETE("/bookings/:id", handlers.CancelBookingHandler)
		user.POST("/recurring", handlers.CreateRecurringHandler)
		user.DELETE("/recurring/:id", handlers.CancelRecurringHandler)
		user.DELETE("/queue/:id", handlers.RemoveFromQueueHandler)
		user.GET("/profile/bookings", handlers.GetUserBookingsHandler)
		user.GET("/profile/queue", handlers.GetUserQueueHandler)
		user.GET("/profile/recurring", handlers.GetUserRecurringHandler)
	}

	admin := r.Group("/api/admin", auth.AuthMiddleware(), auth.RequirePrivileged())
	{
		admin.GET("/bookings", handlers.GetPendingBookingsHandler)
		admin.POST("/bookings/:id/approve", handlers.ApproveBookingHandler)
		admin.POST("/bookings/:id/reject", handlers.RejectBookingHandler)
		admin.POST("/classrooms", handlers.CreateClassroomHandler)
		admin.PUT("/classrooms/:id", handlers.UpdateClassroomHandler)
		admin.DELETE("/classrooms/:id", handlers.DeactivateClassroomHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
