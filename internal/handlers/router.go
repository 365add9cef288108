package handlers

import (
	"github.com/campus-hq/portal-service/internal/config"
	"github.com/campus-hq/portal-service/internal/services"
	"github.com/campus-hq/portal-service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	cfg                 *config.Config
	authHandler         *AuthHandler
	academicHandler     *AcademicHandler
	questionHandler     *QuestionHandler
	examHandler         *ExamHandler
	resultHandler       *ResultHandler
	notificationHandler *NotificationHandler
	settingsHandler     *SettingsHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		cfg:                 cfg,
		authHandler:         NewAuthHandler(serviceManager.Auth(), cfg, logger),
		academicHandler:     NewAcademicHandler(serviceManager.Academic(), logger),
		questionHandler:     NewQuestionHandler(serviceManager.Question(), logger),
		examHandler:         NewExamHandler(serviceManager.Exam(), logger),
		resultHandler:       NewResultHandler(serviceManager.Result(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		settingsHandler:     NewSettingsHandler(serviceManager.Settings(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
	}))

	router.GET("/health", HealthCheck)

	authRequired := AuthMiddleware(hm.cfg.JWTSecret, hm.cfg.CookieName)
	adminOnly := AdminMiddleware()

	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/admin/login", hm.authHandler.LoginAdmin)
			auth.POST("/logout", hm.authHandler.Logout)
			auth.POST("/otp/send", hm.authHandler.SendOTP)
			auth.POST("/otp/verify", hm.authHandler.VerifyOTP)
		}

		// Academic hierarchy routes
		faculties := v1.Group("/faculties")
		{
			faculties.GET("", hm.academicHandler.ListFaculties)
			faculties.GET("/:id", hm.academicHandler.GetFaculty)
			faculties.POST("", authRequired, adminOnly, hm.academicHandler.CreateFaculty)
			faculties.DELETE("/:id", authRequired, adminOnly, hm.academicHandler.DeleteFaculty)
		}

		departments := v1.Group("/departments")
		{
			departments.GET("", hm.academicHandler.ListDepartments)
			departments.POST("", authRequired, adminOnly, hm.academicHandler.CreateDepartment)
			departments.DELETE("/:id", authRequired, adminOnly, hm.academicHandler.DeleteDepartment)
		}

		levels := v1.Group("/levels")
		{
			levels.GET("", hm.academicHandler.ListLevels)
			levels.POST("", authRequired, adminOnly, hm.academicHandler.CreateLevel)
			levels.DELETE("/:id", authRequired, adminOnly, hm.academicHandler.DeleteLevel)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", hm.academicHandler.ListCourses)
			courses.GET("/:id", hm.academicHandler.GetCourse)
			courses.GET("/:id/notes", hm.academicHandler.ListCourseNotes)
			courses.POST("", authRequired, adminOnly, hm.academicHandler.CreateCourse)
			courses.DELETE("/:id", authRequired, adminOnly, hm.academicHandler.DeleteCourse)
		}

		notes := v1.Group("/notes", authRequired, adminOnly)
		{
			notes.POST("", hm.academicHandler.CreateNote)
			notes.DELETE("/:id", hm.academicHandler.DeleteNote)
		}

		// Question routes
		questions := v1.Group("/questions", authRequired, adminOnly)
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.POST("/bulk", hm.questionHandler.BulkUpload)
			questions.POST("/import", hm.questionHandler.ImportQuestions)
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}

		// Exam routes
		exams := v1.Group("/exams")
		{
			exams.GET("", authRequired, hm.examHandler.ListExams)
			exams.GET("/:id", authRequired, hm.examHandler.GetExam)
			exams.GET("/:id/timer", authRequired, hm.examHandler.GetTimer)
			exams.POST("", authRequired, adminOnly, hm.examHandler.CreateExam)
			exams.PUT("/:id", authRequired, adminOnly, hm.examHandler.UpdateExam)
			exams.PUT("/:id/status", authRequired, adminOnly, hm.examHandler.SetExamActive)
			exams.DELETE("/:id", authRequired, adminOnly, hm.examHandler.DeleteExam)
		}

		// Result routes
		results := v1.Group("/results", authRequired)
		{
			results.POST("", hm.resultHandler.RecordResult)
			results.GET("/me", hm.resultHandler.GetMyResults)
			results.GET("/:id", hm.resultHandler.GetResult)
			results.GET("/student/:student_id", adminOnly, hm.resultHandler.GetStudentResults)
			results.GET("/exam/:exam_id", adminOnly, hm.resultHandler.GetExamResults)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		{
			notifications.POST("/subscribe", authRequired, hm.notificationHandler.Subscribe)
			notifications.POST("/unsubscribe", authRequired, hm.notificationHandler.Unsubscribe)
			notifications.GET("", authRequired, hm.notificationHandler.ListNotifications)
			notifications.POST("/send", authRequired, adminOnly, hm.notificationHandler.SendNotification)
			notifications.DELETE("/:id", authRequired, adminOnly, hm.notificationHandler.DeleteNotification)
		}

		// Settings routes
		settings := v1.Group("/settings")
		{
			settings.GET("/ads", hm.settingsHandler.GetAds)
			settings.PUT("/ads", authRequired, adminOnly, hm.settingsHandler.SetAds)
		}
	}
}
