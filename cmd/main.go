package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/cancel_booking"
	createGroundHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/create_ground"
	createPaymentOrderHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/create_payment_order"
	exportBookingsHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/export_bookings"
	getBookingHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/get_booking"
	getGroundHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/get_ground"
	getGroundBookingsHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/get_ground_bookings"
	getGroundSlotsHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/get_ground_slots"
	getOwnerGroundsHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/get_owner_grounds"
	getUserBookingsHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/get_user_bookings"
	latestNotificationHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/latest_notification"
	listGroundsHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/list_grounds"
	manualBookingHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/manual_booking"
	paymentWebhookHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/payment_webhook"
	verifyPaymentHandler "github.com/footbook/FB-GroundBookingService/internal/api/handlers/verify_payment"
	"github.com/footbook/FB-GroundBookingService/internal/api/middleware"
	"github.com/footbook/FB-GroundBookingService/internal/config"
	activityLogRepo "github.com/footbook/FB-GroundBookingService/internal/infra/storage/activitylog"
	bookingRepo "github.com/footbook/FB-GroundBookingService/internal/infra/storage/booking"
	groundRepo "github.com/footbook/FB-GroundBookingService/internal/infra/storage/ground"
	slotRepo "github.com/footbook/FB-GroundBookingService/internal/infra/storage/slot"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/notifier"
	"github.com/footbook/FB-GroundBookingService/internal/integrations/razorpay"
	activityService "github.com/footbook/FB-GroundBookingService/internal/service/activity"
	bookingsService "github.com/footbook/FB-GroundBookingService/internal/service/bookings"
	groundsService "github.com/footbook/FB-GroundBookingService/internal/service/grounds"
	reportsService "github.com/footbook/FB-GroundBookingService/internal/service/reports"
	cancelBookingUC "github.com/footbook/FB-GroundBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/footbook/FB-GroundBookingService/internal/usecase/create_booking"
	createPaymentOrderUC "github.com/footbook/FB-GroundBookingService/internal/usecase/create_payment_order"
	generateSlotsUC "github.com/footbook/FB-GroundBookingService/internal/usecase/generate_slots"
	getGroundSlotsUC "github.com/footbook/FB-GroundBookingService/internal/usecase/get_ground_slots"
	reconcileWebhookUC "github.com/footbook/FB-GroundBookingService/internal/usecase/reconcile_webhook"
	sendRemindersUC "github.com/footbook/FB-GroundBookingService/internal/usecase/send_reminders"
	verifyPaymentUC "github.com/footbook/FB-GroundBookingService/internal/usecase/verify_payment"
	"github.com/footbook/FB-GroundBookingService/pkg/logger"
	"github.com/footbook/FB-GroundBookingService/pkg/metrics"
	"github.com/footbook/FB-GroundBookingService/pkg/txmanager"
)

// systemClock источник текущего времени для use cases и сервисов
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting FB-GroundBookingService...")
	log.Info("Configuration loaded from config.toml")

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории и transaction manager
	grounds := groundRepo.NewRepository(db)
	slots := slotRepo.NewRepository(db)
	bookings := bookingRepo.NewRepository(db)
	activityLogs := activityLogRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Платёжный шлюз
	gateway := razorpay.NewClient(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		cfg.Razorpay.Currency,
		log,
	)
	log.Info("Payment gateway client initialized (currency=%s)", cfg.Razorpay.Currency)

	// Уведомления через брокер (если включены)
	var eventNotifier createBookingUC.Notifier = notifier.Noop{}
	if cfg.Notifications.Enabled {
		amqpNotifier, err := notifier.New(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer amqpNotifier.Close()
		eventNotifier = amqpNotifier
		log.Info("Notifications enabled (exchange=%s)", cfg.Notifications.Exchange)
	}

	clock := systemClock{}

	// Инициализируем use cases
	generateSlots := generateSlotsUC.New(grounds, slots, loc, log)

	createBooking := createBookingUC.New(
		slots,
		bookings,
		grounds,
		activityLogs,
		txMgr,
		eventNotifier,
		createBookingUC.Config{
			PlatformFee:         cfg.Booking.PlatformFee,
			MaxBookingsPerDay:   cfg.Booking.MaxBookingsPerDay,
			RestrictedStartHour: cfg.Booking.RestrictedStartHour,
			RestrictedEndHour:   cfg.Booking.RestrictedEndHour,
			Location:            loc,
		},
		clock,
		log,
	)

	cancelBooking := cancelBookingUC.New(
		bookings,
		slots,
		grounds,
		activityLogs,
		txMgr,
		eventNotifier,
		loc,
		clock,
		log,
	)

	createPaymentOrder := createPaymentOrderUC.New(
		slots,
		bookings,
		grounds,
		gateway,
		createPaymentOrderUC.Config{
			AdvanceAmount:     cfg.Booking.AdvanceAmount,
			MaxBookingsPerDay: cfg.Booking.MaxBookingsPerDay,
			Location:          loc,
		},
		clock,
		log,
	)

	verifyPayment := verifyPaymentUC.New(
		gateway,
		createBooking,
		slots,
		grounds,
		activityLogs,
		verifyPaymentUC.Config{
			AdvanceAmount: cfg.Booking.AdvanceAmount,
			Location:      loc,
		},
		clock,
		log,
	)

	reconcileWebhook := reconcileWebhookUC.New(gateway, bookings, clock, log)

	getGroundSlots := getGroundSlotsUC.New(grounds, slots, bookings, generateSlots, loc, clock, log)

	sendReminders := sendRemindersUC.New(bookings, eventNotifier, loc, clock, log)

	// Инициализируем сервисы
	groundsSvc := groundsService.NewService(grounds, generateSlots, cfg.Booking.SlotHorizonDays, clock, log)
	bookingsSvc := bookingsService.NewService(bookings, slots, grounds, loc, clock, log)
	reportsSvc := reportsService.NewService(bookings, slots, grounds, log)
	activitySvc := activityService.NewService(activityLogs, bookings, slots, grounds, log)

	// Инициализируем handlers
	createGround := createGroundHandler.NewHandler(groundsSvc, log)
	listGrounds := listGroundsHandler.NewHandler(groundsSvc, log)
	getGround := getGroundHandler.NewHandler(groundsSvc, log)
	getOwnerGrounds := getOwnerGroundsHandler.NewHandler(groundsSvc, log)
	groundSlots := getGroundSlotsHandler.NewHandler(getGroundSlots, log)
	paymentOrder := createPaymentOrderHandler.NewHandler(createPaymentOrder, metricsCollector, log)
	paymentVerify := verifyPaymentHandler.NewHandler(verifyPayment, metricsCollector, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(reconcileWebhook, metricsCollector, log)
	manualBooking := manualBookingHandler.NewHandler(createBooking, metricsCollector, log)
	bookingCancel := cancelBookingHandler.NewHandler(cancelBooking, metricsCollector, log)
	bookingByID := getBookingHandler.NewHandler(bookingsSvc, log)
	userBookings := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	groundBookings := getGroundBookingsHandler.NewHandler(bookingsSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(reportsSvc, log)
	latestNotification := latestNotificationHandler.NewHandler(activitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог площадок
	api.HandleFunc("/grounds", listGrounds.Handle).Methods(http.MethodGet)
	api.HandleFunc("/grounds/{id}", getGround.Handle).Methods(http.MethodGet)

	// Сетка слотов площадки на дату
	api.HandleFunc("/grounds/{id}/slots", groundSlots.Handle).Methods(http.MethodGet)

	// Последнее бронирование для живой ленты
	api.HandleFunc("/bookings/latest-event", latestNotification.Handle).Methods(http.MethodGet)

	// Вебхук платёжного шлюза (подпись проверяется в use case)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Площадки (для владельцев) ---
	protected.HandleFunc("/grounds", createGround.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/owner/grounds", getOwnerGrounds.Handle).Methods(http.MethodGet)

	// --- Онлайн-оплата ---
	protected.HandleFunc("/payments/orders", paymentOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/verify", paymentVerify.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/manual", manualBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", userBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", bookingByID.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/cancel", bookingCancel.Handle).Methods(http.MethodPost)

	// --- Бронирования площадки (для владельцев) ---
	protected.HandleFunc("/grounds/{id}/bookings", groundBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/grounds/{id}/bookings/export", exportBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновая рассылка напоминаний о предстоящих слотах
	reminderCtx, stopReminders := context.WithCancel(context.Background())
	defer stopReminders()
	if cfg.Notifications.Enabled {
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-reminderCtx.Done():
					return
				case <-ticker.C:
					if _, err := sendReminders.Execute(reminderCtx); err != nil {
						log.Error("Reminder dispatch failed: %v", err)
					}
				}
			}
		}()
		log.Info("Booking reminder dispatcher started")
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
