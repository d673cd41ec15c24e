package main

import (
	"io"

	apptHandler "pitstop/internal/appointments/handler"
	"pitstop/internal/appointments/repository"
	apptService "pitstop/internal/appointments/service"
	"pitstop/internal/appointments/validator"
	capHandler "pitstop/internal/capacity/handler"
	capService "pitstop/internal/capacity/service"
	"pitstop/internal/notifier"
	"pitstop/internal/scheduling"
	"pitstop/pkg/app"
	"pitstop/pkg/config"
	kafka_config "pitstop/pkg/kafka/config"
)

const ServiceName = "scheduler"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Scheduler service")
	notify := initNotifier(cfg)
	if closer, ok := notify.(io.Closer); ok {
		defer closer.Close()
	}

	appointmentService, capacityService := initServices(cfg, notify)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		apptHandler.NewAppointmentHandler(appointmentService, cfg.Log),
		capHandler.NewCapacityHandler(capacityService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, notify notifier.Notifier) (apptService.AppointmentService, capService.CapacityService) {
	rules := scheduling.Rules{
		MaxBays:            cfg.MaxBays,
		OpenHour:           cfg.OpenHour,
		CloseHour:          cfg.CloseHour,
		MinDurationMinutes: cfg.MinAppointmentMinutes,
		MaxDurationMinutes: cfg.MaxAppointmentMinutes,
	}

	appointmentValidator := validator.NewAppointmentValidator(rules, cfg.Log)
	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)

	appointmentService := apptService.NewAppointmentService(
		appointmentRepo,
		appointmentValidator,
		notify,
		rules,
		cfg,
	)
	capacityService := capService.NewCapacityService(appointmentRepo, rules, cfg)

	cfg.Log.Info("Scheduling services initialized",
		"database", cfg.MongoDatabaseName,
		"max_bays", rules.MaxBays,
	)
	return appointmentService, capacityService
}

// initNotifier returns the Kafka notifier when brokers are configured and a
// no-op one otherwise.
func initNotifier(cfg *config.Config) notifier.Notifier {
	kafkaCfg := kafka_config.Load()
	if kafkaCfg == nil {
		cfg.Log.Info("Kafka brokers not configured, scheduling events disabled")
		return notifier.NewNoop()
	}

	notify, err := notifier.NewKafkaNotifier(kafkaCfg, notifier.DefaultTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka notifier", "error", err)
	}
	return notify
}
