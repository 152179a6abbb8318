// WardCall Core - hospital nurse-call coordination service.
//
// This is the main entry point for the WardCall Core application.
// It connects bedside call devices (HTTP or MQTT), ward dashboards
// (WebSocket), and the nursing roster into one coordination service:
// calls in, broadcasts out, badge-verified closures audited.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/wardlink/wardcall-core/migrations"

	"github.com/wardlink/wardcall-core/internal/api"
	"github.com/wardlink/wardcall-core/internal/call"
	"github.com/wardlink/wardcall-core/internal/infrastructure/config"
	"github.com/wardlink/wardcall-core/internal/infrastructure/database"
	"github.com/wardlink/wardcall-core/internal/infrastructure/influxdb"
	"github.com/wardlink/wardcall-core/internal/infrastructure/logging"
	"github.com/wardlink/wardcall-core/internal/infrastructure/mqtt"
	"github.com/wardlink/wardcall-core/internal/roster"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting WardCall Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Repositories
	rosterRepo := roster.NewSQLiteRepository(db.DB)
	recordRepo := call.NewSQLiteRecordRepository(db.DB)

	// Call service: tracker + roster directory + audit store
	tracker := call.NewTracker()
	callService := call.NewService(tracker, &rosterDirectory{repo: rosterRepo}, recordRepo)
	callService.SetLogger(log)

	// Dashboard hub, created here so it can be registered as a
	// broadcaster before the server starts.
	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)
	callService.AddBroadcaster(hub)

	// Connect to MQTT broker (optional device transport)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		// Mirror call events onto wardcall/event/{name} for integrations.
		callService.AddBroadcaster(&mqttBroadcaster{client: mqttClient, log: log})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional call telemetry)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		callService.SetTelemetry(influxClient)
	} else {
		log.Info("InfluxDB disabled")
	}

	// API server (HTTP routes + WebSocket + MQTT device topics)
	server, err := api.New(api.Deps{
		Config:  cfg.API,
		WS:      cfg.WebSocket,
		Logger:  log,
		Calls:   callService,
		Roster:  rosterRepo,
		Records: recordRepo,
		MQTT:    mqttClient,
		Hub:     hub,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, server, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("WardCall Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses WARDCALL_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("WARDCALL_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// mqttClient and influxClient may be nil when disabled.
func healthCheck(ctx context.Context, db *database.DB, server *api.Server, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}

// rosterDirectory adapts the roster repository to the call service's
// BadgeDirectory interface, keeping the call package decoupled from
// the roster types.
type rosterDirectory struct {
	repo roster.Repository
}

// FindEnabledByBadge implements call.BadgeDirectory.
func (d *rosterDirectory) FindEnabledByBadge(ctx context.Context, badge string) (*call.NurseRef, error) {
	nurse, err := d.repo.FindEnabledByBadge(ctx, badge)
	if err != nil {
		return nil, err
	}
	if nurse == nil {
		return nil, nil
	}
	return &call.NurseRef{Badge: nurse.NFC, Name: nurse.Name}, nil
}

// RecordAttendance implements call.BadgeDirectory.
func (d *rosterDirectory) RecordAttendance(ctx context.Context, badge string) error {
	return d.repo.IncrementAttendances(ctx, badge)
}

// mqttBroadcaster mirrors call events onto the MQTT event topics so
// non-dashboard integrations (paging, corridor signs) see the same
// vocabulary as the WebSocket channel.
type mqttBroadcaster struct {
	client *mqtt.Client
	log    *logging.Logger
}

// Broadcast implements call.Broadcaster.
func (b *mqttBroadcaster) Broadcast(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.log.Error("failed to marshal MQTT event", "event", event, "error", err)
		return
	}
	if err := b.client.PublishEvent(event, data); err != nil {
		b.log.Warn("failed to mirror event to MQTT", "event", event, "error", err)
	}
}
