package internal

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"gamereview/internal/managers"
	"gamereview/internal/schemas"
	"gamereview/internal/utils"
	"gamereview/internal/validators"
)

const envFile = ".env"

// App holds the connection pool and the managers built on it.
type App struct {
	Pool            *pgxpool.Pool
	DatabaseManager managers.DatabaseMgr
	MailManager     managers.MailMgr
	AccountManager  managers.AccountMgr
}

// Close releases the connection pool.
func (app *App) Close() {
	app.Pool.Close()
	log.Info("Closed database connection pool")
}

// Init loads the configuration, connects to the database, makes sure the schema exists and wires the managers.
// Any failure is fatal.
func Init(ctx context.Context) *App {
	err := godotenv.Load(envFile)
	if err != nil {
		log.Info("No .env file found, using environment variables from system")
	} else {
		log.Info("Loaded environment variables from .env file")
	}

	setLogLevel(os.Getenv("LOG_LEVEL"))

	ctx = utils.WithTraceId(ctx)

	pool := initializeDatabase(ctx)
	if err := schemas.ApplySchema(ctx, pool); err != nil {
		pool.Close()
		log.Fatal("error applying database schema: ", err)
	}

	// build the validator eagerly so configuration problems show up at startup
	validators.GetValidator()

	databaseMgr := managers.NewDatabaseManager(pool)
	mailMgr := managers.NewMailManager()

	return &App{
		Pool:            pool,
		DatabaseManager: databaseMgr,
		MailManager:     mailMgr,
		AccountManager:  managers.NewAccountManager(databaseMgr, mailMgr),
	}
}

func initializeDatabase(ctx context.Context) *pgxpool.Pool {
	log.Info("Initializing database")

	var (
		dbHost     = os.Getenv("DB_HOST")
		dbPort     = os.Getenv("DB_PORT")
		dbUser     = os.Getenv("DB_USER")
		dbPassword = os.Getenv("DB_PASS")
		dbName     = os.Getenv("DB_NAME")
	)

	if dbHost == "" || dbPort == "" || dbUser == "" || dbPassword == "" || dbName == "" {
		log.Fatal("database environment variables not set")
	}

	url := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort, dbUser, dbPassword, dbName)
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Fatal("error configuring database: ", err)
	}

	config.MinConns = 5
	config.MaxConns = 30
	config.MaxConnIdleTime = time.Minute * 2
	config.HealthCheckPeriod = time.Minute * 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		log.Fatal("error connecting to database: ", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatal("error reaching database: ", err)
	}
	log.Info("Connected to database")
	return pool
}

func setLogLevel(logLevel string) {
	switch logLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	log.SetReportCaller(true)

	log.SetOutput(os.Stdout)
}
