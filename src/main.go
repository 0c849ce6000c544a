package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"hexmap/src/args"
	"hexmap/src/commands"
	"hexmap/src/config"
	"hexmap/src/database"
)

const (
	// Default log levels
	defaultDebugLogLevel   = "debug"
	defaultReleaseLogLevel = "info"
)

// openDB creates a new catalog database connection
func openDB(ctx context.Context, arguments *args.Args) (database.DBAdapter, error) {
	dbURL := arguments.DB
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
		if dbURL == "" {
			return nil, fmt.Errorf("database url must be provided using either --db or DATABASE_URL env var")
		}
	}
	return database.CreateDatabaseAdapter(ctx, dbURL)
}

// loadProfile loads the decode profile from the --profile flag, falling
// back to the permissive default profile.
func loadProfile(arguments *args.Args) (*config.Profile, error) {
	if arguments.Profile == "" {
		return config.DefaultProfile(), nil
	}
	profile, err := config.LoadProfileFromPath(arguments.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	logrus.Debugf("Using decode profile '%s'", profile.Name)
	return profile, nil
}

// asyncMain is the main async function that handles the application logic
func asyncMain(ctx context.Context, arguments *args.Args) error {
	profile, err := loadProfile(arguments)
	if err != nil {
		return err
	}

	// Handle subcommands. Only the catalog commands open the database.
	switch arguments.SubCmd.Name {
	case "":
		// No subcommand provided, show help
		return nil
	case "inspect":
		return commands.RunInspect(ctx, arguments.SubCmd.InspectArgs, profile)
	case "segments":
		return commands.RunSegments(ctx, arguments.SubCmd.InspectArgs, profile)
	case "slice":
		return commands.RunSlice(ctx, arguments.SubCmd.SliceArgs, profile)
	case "flatten":
		return commands.RunFlatten(ctx, arguments.SubCmd.FlattenArgs, profile)
	case "publish":
		return commands.RunPublish(ctx, arguments.SubCmd.PublishArgs, profile)
	case "record":
		db, err := openDB(ctx, arguments)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		return commands.RunRecord(ctx, arguments.SubCmd.RecordArgs, db, profile)
	case "list":
		db, err := openDB(ctx, arguments)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		return commands.RunList(ctx, db)
	case "drop":
		db, err := openDB(ctx, arguments)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		return commands.RunDrop(ctx, arguments.SubCmd.DropArgs, db)
	default:
		return fmt.Errorf("unknown subcommand: %s", arguments.SubCmd.Name)
	}
}

// setupLogging configures the logging system
func setupLogging() {
	// Determine default log level based on build mode
	var defaultLogLevel string
	if os.Getenv("DEBUG") == "true" {
		defaultLogLevel = defaultDebugLogLevel
	} else {
		defaultLogLevel = defaultReleaseLogLevel
	}

	// Get log level from environment or use default
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = defaultLogLevel
	}

	// Set log level
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', using info level", logLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	// Set log format with timestamp
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	// Setup error handling and logging
	setupLogging()

	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Parse command line arguments
	arguments, err := args.ParseArgs()
	if err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	// Create context for the application
	ctx := context.Background()

	// Run the main application logic
	if err := asyncMain(ctx, arguments); err != nil {
		logrus.Fatalf("Application error: %v", err)
	}
}
