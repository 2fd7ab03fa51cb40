package main

import (
	"log"
	"time"

	"barangay_portal_go/config"
	"barangay_portal_go/db"
	"barangay_portal_go/handlers"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.Resident{},
		&models.StaffAdmin{},
		&models.Session{},
		&models.Complaint{},
		&models.ComplaintAttachment{},
		&models.AssistanceRequest{},
		&models.AssistanceAttachment{},
		&models.Notification{},
		&models.ActivityLog{},
		&models.Feedback{},
		&models.ForumPost{},
		&models.PostReaction{},
		&models.PostComment{},
		&models.CommentReaction{},
		&models.SMSLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	services.InitializeStorage(cfg)

	if err := services.SeedAdminFromEnv(db.DB); err != nil {
		log.Printf("[SEED] admin bootstrap: %v", err)
	}

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	e.Static("/static", "static")

	// Public routes
	e.GET("/", handlers.HomeHandler)
	e.GET("/health", handlers.HealthHandler)
	e.GET("/login", handlers.LoginHandler)
	e.POST("/login", handlers.LoginPostHandler, middleware.LoginRateLimiter.Middleware())
	e.GET("/register", handlers.RegisterHandler)
	e.POST("/register", handlers.RegisterPostHandler, middleware.PublicFormRateLimiter.Middleware())
	e.GET("/staff/login", handlers.StaffLoginHandler)
	e.POST("/staff/login", handlers.StaffLoginPostHandler, middleware.LoginRateLimiter.Middleware())
	e.GET("/feedback", handlers.FeedbackFormHandler)
	e.POST("/feedback", handlers.SubmitFeedbackHandler, middleware.PublicFormRateLimiter.Middleware())

	// Resident routes
	resident := e.Group("")
	resident.Use(middleware.RequireResident())
	{
		resident.GET("/dashboard", handlers.DashboardHandler)
		resident.POST("/logout", handlers.LogoutHandler)
		resident.GET("/logout", handlers.LogoutHandler)

		resident.GET("/complaints", handlers.MyComplaintsHandler)
		resident.GET("/complaints/new", handlers.NewComplaintHandler)
		resident.POST("/complaints", handlers.CreateComplaintHandler)
		resident.GET("/complaints/:id", handlers.ComplaintDetailHandler)
		resident.POST("/complaints/:id/follow-up", handlers.ComplaintFollowUpHandler)
		resident.POST("/complaints/:id/delete", handlers.DeleteComplaintHandler)

		resident.GET("/assistance", handlers.MyAssistanceHandler)
		resident.GET("/assistance/new", handlers.NewAssistanceHandler)
		resident.POST("/assistance", handlers.CreateAssistanceHandler)
		resident.POST("/assistance/emergency", handlers.EmergencyAssistanceHandler)
		resident.GET("/assistance/:id", handlers.AssistanceDetailHandler)
		resident.POST("/assistance/:id/follow-up", handlers.AssistanceFollowUpHandler)
		resident.POST("/assistance/:id/delete", handlers.DeleteAssistanceHandler)

		resident.GET("/forum", handlers.ForumHandler)
		resident.POST("/forum", handlers.CreateForumPostHandler)
		resident.GET("/forum/:id", handlers.ForumPostHandler)
		resident.POST("/forum/:id", handlers.UpdateForumPostHandler)
		resident.POST("/forum/:id/delete", handlers.DeleteForumPostHandler)
		resident.POST("/forum/:id/react", handlers.ReactToPostHandler)
		resident.POST("/forum/:id/comments", handlers.CommentOnPostHandler)
		resident.POST("/forum/comments/:comment_id/delete", handlers.DeleteCommentHandler)
		resident.POST("/forum/comments/:comment_id/react", handlers.ReactToCommentHandler)

		resident.GET("/notifications", handlers.NotificationsHandler)
		resident.GET("/notifications/unread-count", handlers.UnreadCountHandler)
		resident.POST("/notifications/:id/read", handlers.MarkNotificationReadHandler)
		resident.POST("/notifications/:id/archive", handlers.ArchiveNotificationHandler)
		resident.POST("/notifications/read-all", handlers.MarkAllNotificationsReadHandler)

		resident.GET("/profile", handlers.ProfileHandler)
		resident.POST("/profile", handlers.UpdateProfileHandler)
		resident.POST("/profile/password", handlers.ChangePasswordHandler)

		resident.POST("/chatbot", handlers.ChatbotHandler, middleware.ChatbotRateLimiter.Middleware())
	}

	// Attachment downloads (owner, assignee or admin; checked per record)
	files := e.Group("/attachments")
	files.Use(middleware.RequireAnyActor())
	{
		files.GET("/complaints/:id", handlers.DownloadComplaintAttachmentHandler)
		files.GET("/assistance/:id", handlers.DownloadAssistanceAttachmentHandler)
	}

	// Staff routes
	staff := e.Group("/staff")
	staff.Use(middleware.RequireStaff())
	{
		staff.GET("/dashboard", handlers.StaffDashboardHandler)
		staff.POST("/logout", handlers.StaffLogoutHandler)
		staff.GET("/logout", handlers.StaffLogoutHandler)

		staff.GET("/complaints", handlers.StaffComplaintsHandler)
		staff.GET("/complaints/:id", handlers.StaffComplaintDetailHandler)
		staff.GET("/assistance", handlers.StaffAssistanceHandler)
		staff.GET("/assistance/:id", handlers.StaffAssistanceDetailHandler)
		staff.POST("/cases/:type/:id/status", handlers.StaffUpdateStatusHandler)
		staff.POST("/cases/:type/:id/notes", handlers.StaffAddNotesHandler)

		staff.GET("/notifications", handlers.NotificationsHandler)
		staff.GET("/notifications/unread-count", handlers.UnreadCountHandler)
		staff.POST("/notifications/:id/read", handlers.MarkNotificationReadHandler)
		staff.POST("/notifications/:id/archive", handlers.ArchiveNotificationHandler)
		staff.POST("/notifications/read-all", handlers.MarkAllNotificationsReadHandler)
	}

	// Admin routes
	admin := e.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/dashboard", handlers.AdminDashboardHandler)

		admin.GET("/complaints", handlers.AdminComplaintsHandler)
		admin.GET("/complaints/export", handlers.AdminExportComplaintsHandler)
		admin.GET("/complaints/:id", handlers.AdminComplaintDetailHandler)
		admin.GET("/assistance", handlers.AdminAssistanceHandler)
		admin.GET("/assistance/export", handlers.AdminExportAssistanceHandler)
		admin.GET("/assistance/:id", handlers.AdminAssistanceDetailHandler)
		admin.POST("/cases/:type/:id/assign", handlers.AdminAssignCaseHandler)
		admin.POST("/cases/:type/:id/status", handlers.AdminUpdateStatusHandler)
		admin.GET("/cases/:type/:id/pdf", handlers.AdminCasePDFHandler)

		admin.GET("/residents", handlers.AdminResidentsHandler)
		admin.POST("/residents/:id/verify", handlers.AdminVerifyResidentHandler)
		admin.POST("/residents/:id/delete", handlers.AdminDeleteResidentHandler)

		admin.GET("/accounts", handlers.AdminAccountsHandler)
		admin.POST("/accounts", handlers.AdminCreateAccountHandler)
		admin.POST("/accounts/:id", handlers.AdminUpdateAccountHandler)
		admin.POST("/accounts/:id/toggle", handlers.AdminToggleAccountHandler)
		admin.POST("/accounts/:id/delete", handlers.AdminDeleteAccountHandler)

		admin.GET("/feedback", handlers.AdminFeedbackHandler)
		admin.POST("/feedback/:id/read", handlers.AdminFeedbackReadHandler)
		admin.POST("/feedback/:id/respond", handlers.AdminFeedbackRespondHandler)
		admin.POST("/feedback/:id/delete", handlers.AdminFeedbackDeleteHandler)

		admin.GET("/activity", handlers.AdminActivityLogHandler)
		admin.GET("/activity/export", handlers.AdminActivityExportHandler)
		admin.GET("/analytics", handlers.AdminAnalyticsHandler)
		admin.GET("/sms-logs", handlers.AdminSMSLogsHandler)
		admin.POST("/sms-logs/test", handlers.AdminTestSMSHandler)

		admin.POST("/forum/:id/pin", handlers.AdminPinPostHandler)
		admin.POST("/forum/:id/delete", handlers.AdminDeletePostHandler)
		admin.POST("/forum/comments/:comment_id/delete", handlers.AdminDeleteCommentHandler)
	}

	// Hourly janitor: drop expired sessions and archive stale notifications
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("[JANITOR] session cleanup: %v", err)
			}
			notifications := services.NewNotificationService(db.DB)
			if n, err := notifications.ArchiveOlderThan(30); err != nil {
				log.Printf("[JANITOR] notification archive: %v", err)
			} else if n > 0 {
				log.Printf("[JANITOR] archived %d stale notifications", n)
			}
		}
	}()

	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
