package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"typing-tutor/credential"
	"typing-tutor/internal/constants"
	"typing-tutor/story"
)

// Global Variables and Constants
var (

	// Logger
	log = logrus.New()

	// Environment Variables
	port             = envOrDefault("PORT", "3000")
	logLevel         = strings.ToLower(os.Getenv("LOG_LEVEL"))
	credentialStore  = strings.ToLower(envOrDefault("CREDENTIAL_STORE", "file"))
	apiKeyFile       = envOrDefault("API_KEY_FILE", "api-key.txt")
	credentialDBPath = envOrDefault("CREDENTIAL_DB_PATH", "db/credentials.db")
	llmModel         = envOrDefault("LLM_MODEL", constants.DefaultModel)
	openaiBaseURL    = os.Getenv("OPENAI_BASE_URL")
	publicDir        = envOrDefault("PUBLIC_DIR", "public")
	promptsDir       = envOrDefault("PROMPTS_DIR", "prompts")
)

// bindHost is the address the server listens on: every interface.
const bindHost = "0.0.0.0"

// storyGenerator is the part of story.Generator the HTTP handlers use.
type storyGenerator interface {
	Generate(ctx context.Context, req story.Request) (string, error)
}

// App struct to hold dependencies
type App struct {
	Credentials credential.Store
	Stories     storyGenerator
	Assets      http.FileSystem
}

func main() {
	// Validate Environment Variables
	validateEnvVars()

	// Initialize logrus logger
	initLogger()

	// Initialize Credential Store
	store, err := createCredentialStore()
	if err != nil {
		log.Fatalf("Failed to create credential store: %v", err)
	}

	// Load Templates
	promptTemplate, err := story.LoadPromptTemplate(promptsDir)
	if err != nil {
		log.Fatalf("Failed to load story template: %v", err)
	}

	// Initialize Story Generator
	generator, err := story.NewGenerator(store, story.Config{
		Model:   llmModel,
		BaseURL: openaiBaseURL,
		Prompt:  promptTemplate,
	})
	if err != nil {
		log.Fatalf("Failed to create story generator: %v", err)
	}

	// Initialize App with dependencies
	app := &App{
		Credentials: store,
		Stories:     generator,
		Assets:      gin.Dir(publicDir, false),
	}

	server := &http.Server{
		Addr:              bindHost + ":" + port,
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to run server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	app.logStartup(context.Background())

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Info("Server stopped")
}

// setupRouter builds the gin engine with all routes and middleware.
func (app *App) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(), gin.CustomRecovery(recoverWithJSON), cors.Default())

	// API routes
	api := router.Group("/api")
	{
		api.POST("/save-key", app.saveKeyHandler)
		api.GET("/get-key", app.getKeyHandler)
		api.POST("/generate-story", app.generateStoryHandler)
	}

	// Landing page and static assets
	router.GET("/", app.indexHandler)
	router.NoRoute(app.assetHandler)

	return router
}

func initLogger() {
	switch logLevel {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
		if logLevel != "" {
			log.Fatalf("Invalid log level: '%s'.", logLevel)
		}
	}

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	credential.SetLogger(log)
	story.SetLogger(log)
}

// validateEnvVars ensures all environment variables hold usable values
func validateEnvVars() {
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		log.Fatalf("Please set the PORT environment variable to a valid port number, got '%s'.", port)
	}

	if credentialStore != "file" && credentialStore != "sqlite" {
		log.Fatal("Please set the CREDENTIAL_STORE environment variable to 'file' or 'sqlite'.")
	}
}

// createCredentialStore creates the credential store selected by CREDENTIAL_STORE
func createCredentialStore() (credential.Store, error) {
	switch credentialStore {
	case "file":
		return credential.NewFileStore(apiKeyFile), nil
	case "sqlite":
		return credential.OpenSQLiteStore(credentialDBPath)
	default:
		return nil, fmt.Errorf("unsupported credential store: %s", credentialStore)
	}
}

func envOrDefault(name, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return fallback
}
