package main

import (
	"github.com/joho/godotenv"

	adminsrepo "groundbook/internal/admins/repository"
	availabilityhandler "groundbook/internal/availability/handler"
	availabilityservice "groundbook/internal/availability/service"
	bookingshandler "groundbook/internal/bookings/handler"
	bookingsrepo "groundbook/internal/bookings/repository"
	bookingsservice "groundbook/internal/bookings/service"
	bookingsvalidator "groundbook/internal/bookings/validator"
	groundshandler "groundbook/internal/grounds/handler"
	groundsrepo "groundbook/internal/grounds/repository"
	groundsservice "groundbook/internal/grounds/service"
	groundsvalidator "groundbook/internal/grounds/validator"
	"groundbook/internal/notifications"
	hourshandler "groundbook/internal/operatinghours/handler"
	hoursrepo "groundbook/internal/operatinghours/repository"
	hoursservice "groundbook/internal/operatinghours/service"
	hoursvalidator "groundbook/internal/operatinghours/validator"
	profileshandler "groundbook/internal/profiles/handler"
	profilesrepo "groundbook/internal/profiles/repository"
	profilesservice "groundbook/internal/profiles/service"
	"groundbook/pkg/app"
	"groundbook/pkg/auth"
	"groundbook/pkg/clock"
	"groundbook/pkg/config"
	"groundbook/pkg/contracts"
	"groundbook/pkg/kafka"
)

const ServiceName = "server"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	if cfg.JWTSecret == "" {
		cfg.Log.Fatal("JWT_SECRET must be set")
	}

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.BookingEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	defer producer.Close()

	appHandler := initHandlers(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(appHandler)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, producer *kafka.Producer) contracts.Handler {
	verifier := auth.NewVerifier(cfg.JWTSecret)
	roster := adminsrepo.NewMongoAdminRoster(cfg)
	policy := auth.NewCompositePolicy(cfg.AdminEmails, roster, cfg.Log)
	clk := clock.New()
	publisher := notifications.NewKafkaPublisher(producer, cfg.Log)

	hoursRepo := hoursrepo.NewMongoOperatingHoursRepository(cfg)
	hoursService := hoursservice.NewOperatingHoursService(
		hoursRepo,
		hoursvalidator.NewOperatingHoursValidator(cfg.Log),
		cfg,
	)

	groundsRepo := groundsrepo.NewMongoGroundRepository(cfg)
	groundService := groundsservice.NewGroundService(
		groundsRepo,
		hoursService,
		groundsvalidator.NewGroundValidator(cfg.Log),
		cfg,
	)

	profileRepo := profilesrepo.NewMongoProfileRepository(cfg)
	profileService := profilesservice.NewProfileService(profileRepo, cfg)

	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		groundsRepo,
		hoursRepo,
		profileRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		policy,
		publisher,
		clk,
		cfg,
	)

	availabilityService := availabilityservice.NewAvailabilityService(
		groundsRepo,
		hoursRepo,
		bookingRepo,
		clk,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return contracts.Composite(
		groundshandler.NewGroundHandler(groundService, verifier, policy, cfg.Log),
		hourshandler.NewOperatingHoursHandler(hoursService, verifier, policy, cfg.Log),
		profileshandler.NewProfileHandler(profileService, verifier, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, verifier, policy, cfg.Log),
		availabilityhandler.NewAvailabilityHandler(availabilityService, cfg.Log),
	)
}
