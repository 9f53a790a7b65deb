package server

import (
	"context"
	"net/http"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/booking"
	"gymdesk/internal/checkin"
	"gymdesk/internal/class"
	"gymdesk/internal/config"
	"gymdesk/internal/email"
	"gymdesk/internal/gym"
	"gymdesk/internal/member"
	"gymdesk/internal/message"
	"gymdesk/internal/payment"
	"gymdesk/internal/plan"
	"gymdesk/internal/session"
	"gymdesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config
	email      *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	memberRepo := member.NewRepository(db)
	gymRepo := gym.NewRepository(db)
	classRepo := class.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	sessionRepo := session.NewRepository(db)
	planRepo := plan.NewRepository(db)
	checkinRepo := checkin.NewRepository(db)
	messageRepo := message.NewRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	memberHandler := member.NewHandler(memberRepo)
	gymHandler := gym.NewHandler(gym.NewService(gymRepo))
	classHandler := class.NewHandler(class.NewService(classRepo, gymRepo))
	bookingHandler := booking.NewHandler(
		booking.NewService(bookingRepo, classRepo, memberRepo, emailService),
		memberRepo,
	)
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, memberRepo, emailService))
	sessionHandler := session.NewHandler(sessionRepo, memberRepo)
	planHandler := plan.NewHandler(planRepo, memberRepo, emailService)
	checkinHandler := checkin.NewHandler(checkinRepo, memberRepo)
	messageHandler := message.NewHandler(messageRepo)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/members/me", memberHandler.GetMe)
		protected.PUT("/members/me", memberHandler.UpdateMe)
		protected.GET("/members/:memberID/checkin-qr", memberHandler.CheckinQR)

		protected.GET("/gyms", gymHandler.ListGyms)
		protected.GET("/gyms/:gymID", gymHandler.GetGym)
		protected.GET("/gyms/:gymID/classes", classHandler.ListClassesByGym)

		protected.GET("/classes", classHandler.ListClasses)
		protected.GET("/classes/:classID", classHandler.GetClass)
		protected.GET("/classes/:classID/schedules", classHandler.ListSchedules)

		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/schedules/:scheduleID/book", bookingHandler.BookSchedule)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)

		protected.GET("/plans", planHandler.ListPlans)
		protected.GET("/plans/:planID", planHandler.GetPlan)
		protected.POST("/plans/:planID/purchase", planHandler.Purchase)
		protected.GET("/memberships", planHandler.ListMyMemberships)

		protected.GET("/sessions", sessionHandler.ListMySessions)
		protected.GET("/sessions/:sessionID", sessionHandler.GetSession)

		protected.GET("/checkins", checkinHandler.ListMyCheckIns)

		protected.POST("/messages", messageHandler.Send)
		protected.GET("/messages/inbox", messageHandler.Inbox)
		protected.GET("/messages/sent", messageHandler.Sent)
		protected.POST("/messages/:messageID/read", messageHandler.MarkRead)
		protected.DELETE("/messages/:messageID", messageHandler.Delete)
	}

	trainer := router.Group("/")
	trainer.Use(authMiddleware, auth.RequireRole(auth.RoleTrainer, auth.RoleAdmin))
	{
		trainer.GET("/payments/earnings", paymentHandler.Earnings)
	}

	staff := router.Group("/staff")
	staff.Use(authMiddleware, auth.RequireRole(auth.RoleReceptionist, auth.RoleAdmin))
	{
		staff.POST("/members", memberHandler.Create)
		staff.GET("/members", memberHandler.List)
		staff.GET("/members/:memberID", memberHandler.Get)
		staff.PUT("/members/:memberID", memberHandler.Update)
		staff.DELETE("/members/:memberID", memberHandler.Delete)
		staff.GET("/members/:memberID/payments", paymentHandler.ListMemberPayments)
		staff.GET("/members/:memberID/memberships", planHandler.ListMemberMemberships)

		staff.POST("/classes", classHandler.CreateClass)
		staff.PUT("/classes/:classID", classHandler.UpdateClass)
		staff.DELETE("/classes/:classID", classHandler.DeleteClass)
		staff.POST("/classes/:classID/schedules", classHandler.CreateSchedule)
		staff.GET("/classes/:classID/schedules", classHandler.ListSchedules)
		staff.DELETE("/schedules/:scheduleID", classHandler.DeleteSchedule)
		staff.GET("/classes/:classID/bookings", bookingHandler.ListBookingsByClass)

		staff.GET("/bookings", bookingHandler.ListAllBookings)
		staff.DELETE("/bookings/:bookingID", bookingHandler.DeleteBooking)

		staff.POST("/payments", paymentHandler.CreatePayment)
		staff.GET("/payments", paymentHandler.ListAllPayments)
		staff.GET("/payments/:paymentID", paymentHandler.GetPayment)
		staff.POST("/payments/:paymentID/pay", paymentHandler.MarkPaid)

		staff.POST("/sessions", sessionHandler.CreateSession)
		staff.PUT("/sessions/:sessionID/status", sessionHandler.UpdateSessionStatus)
		staff.DELETE("/sessions/:sessionID", sessionHandler.DeleteSession)
		staff.GET("/trainers/:trainerID/sessions", sessionHandler.ListTrainerSessions)

		staff.POST("/checkins", checkinHandler.CheckIn)
		staff.POST("/checkins/code/:code", checkinHandler.CheckInByCode)
		staff.GET("/gyms/:gymID/checkins", checkinHandler.ListGymCheckIns)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/users", userHandler.CreateStaff)
		admin.GET("/users", userHandler.ListUsers)

		admin.POST("/gyms", gymHandler.CreateGym)
		admin.PUT("/gyms/:gymID", gymHandler.UpdateGym)
		admin.DELETE("/gyms/:gymID", gymHandler.DeleteGym)

		admin.POST("/plans", planHandler.CreatePlan)
		admin.DELETE("/plans/:planID", planHandler.DeletePlan)
	}

	router.GET("/health", Health)
	router.GET("/test-email", TestEmail(emailService))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
