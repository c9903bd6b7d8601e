package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	bookSlotHandler "github.com/m04kA/SMC-ReservationService/internal/api/commands/book_slot"
	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/commands/cancel_reservation"
	getAvailableDatesHandler "github.com/m04kA/SMC-ReservationService/internal/api/commands/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/commands/get_available_slots"
	getReportHandler "github.com/m04kA/SMC-ReservationService/internal/api/commands/get_report"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/commands/list_reservations"
	logInHandler "github.com/m04kA/SMC-ReservationService/internal/api/commands/log_in"
	logOutHandler "github.com/m04kA/SMC-ReservationService/internal/api/commands/log_out"
	signUpHandler "github.com/m04kA/SMC-ReservationService/internal/api/commands/sign_up"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/session"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/document"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	authService "github.com/m04kA/SMC-ReservationService/internal/service/auth"
	reportsService "github.com/m04kA/SMC-ReservationService/internal/service/reports"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	bookSlotUC "github.com/m04kA/SMC-ReservationService/internal/usecase/book_slot"
	cancelReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_reservation"
	getAvailableDatesUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Загружаем .env и конфигурацию
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		return commands.ExitInternal
	}

	cfgPath := config.PathFromEnv()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return commands.ExitInternal
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return commands.ExitInternal
	}
	defer log.Close()

	log.Debug("Configuration loaded from %s", cfgPath)

	// Метрики собираются всегда, в textfile выгружаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	if cfg.Metrics.Enabled && cfg.Metrics.Textfile != "" {
		defer func() {
			if err := metricsCollector.WriteToTextfile(cfg.Metrics.Textfile); err != nil {
				log.Error("Failed to write metrics textfile: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Подключаемся к хранилищу
	openCtx, cancel := context.WithTimeout(ctx, cfg.Storage.Timeout())
	rawStore, closeStore, err := openStore(openCtx, cfg, log)
	cancel()
	if err != nil {
		log.Error("Failed to open storage: %v", err)
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		return commands.ExitUnavailable
	}
	defer closeStore()

	store := document.NewInstrumentedStore(rawStore, cfg.Storage.Driver, metricsCollector)

	// Блокировка и transaction manager
	locker, closeLocker, err := newLocker(cfg, log)
	if err != nil {
		log.Error("Failed to initialize lock: %v", err)
		fmt.Fprintf(os.Stderr, "Failed to initialize lock: %v\n", err)
		return commands.ExitInternal
	}
	defer closeLocker()

	txMgr := txmanager.NewTransactionManager(
		locker,
		txmanager.WithMaxAttempts(cfg.Booking.MaxRetries),
		txmanager.WithBackoff(cfg.Booking.RetryBackoff()),
		txmanager.WithRetryHook(metricsCollector.ObserveRetry),
	)

	// Сессия CLI
	keys, err := sessionKeys(cfg)
	if err != nil {
		log.Error("Failed to load session keys: %v", err)
		fmt.Fprintf(os.Stderr, "Failed to load session keys: %v\n", err)
		return commands.ExitInternal
	}
	sessions, err := session.NewManager(cfg.Session.File, keys, cfg.Session.MaxAge())
	if err != nil {
		log.Error("Failed to initialize session: %v", err)
		fmt.Fprintf(os.Stderr, "Failed to initialize session: %v\n", err)
		return commands.ExitInternal
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(store)
	userRepository := userRepo.NewRepository(store)

	// Инициализируем сервисы
	authSvc := authService.NewService(userRepository, txMgr, cfg.Auth.BcryptCost, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, txMgr, log)
	reportsSvc := reportsService.NewService(reservationRepository, txMgr, cfg.Booking.TopN, log)

	// Инициализируем use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(reservationRepository, txMgr, metricsCollector, log)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(reservationRepository, txMgr, metricsCollector, log)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(reservationRepository, cfg.Booking.WindowDays, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(reservationRepository, log)

	// Инициализируем handlers
	signUp := signUpHandler.NewHandler(authSvc, log)
	logIn := logInHandler.NewHandler(authSvc, sessions, log)
	logOut := logOutHandler.NewHandler(sessions, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	getReport := getReportHandler.NewHandler(reportsSvc, log)

	// Настраиваем дерево команд
	root := &cobra.Command{
		Use:           "smc-reservations",
		Short:         "Book appointment slots and inspect reservation statistics",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// ============================================================
	// PUBLIC COMMANDS (без входа)
	// ============================================================

	userCmd := &cobra.Command{Use: "user", Short: "Manage your account and session"}
	userCmd.AddCommand(
		signUp.Command(),
		logIn.Command(),
		logOut.LogoutCommand(),
		logOut.WhoAmICommand(),
	)

	availabilityCmd := &cobra.Command{Use: "availability", Short: "Browse free dates, times and slots"}
	availabilityCmd.AddCommand(
		getAvailableDates.Command(),
		getAvailableSlots.TimesCommand(),
		getAvailableSlots.SlotsCommand(),
	)

	// Отчет доступен всем, --mine требует входа
	reportCmd := getReport.Command()
	middleware.Apply(reportCmd, middleware.OptionalAuth(sessions, log))

	// ============================================================
	// PROTECTED COMMANDS (требуют входа)
	// ============================================================

	protected := []*cobra.Command{
		bookSlot.Command(),
		cancelReservation.Command(),
		listReservations.Command(),
	}
	for _, cmd := range protected {
		middleware.Apply(cmd, middleware.Auth(sessions, log))
	}

	root.AddCommand(userCmd, availabilityCmd, reportCmd)
	root.AddCommand(protected...)

	// Метрики команд
	middleware.Apply(root, middleware.Metrics(metricsCollector))

	log.Info("Starting %s", os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		code := commands.ExitCode(err)
		log.Warn("Command failed: exit=%d, error=%v", code, err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", commands.Message(err))
		return code
	}

	return commands.ExitOK
}

// sessionKeys ключи сессии из конфигурации или из файла рядом с файлом сессии
func sessionKeys(cfg *config.Config) (session.Keys, error) {
	if cfg.Session.HashKey != "" {
		return session.DecodeKeys(cfg.Session.HashKey, cfg.Session.BlockKey)
	}
	return session.LoadOrCreateKeys(cfg.Session.File)
}
