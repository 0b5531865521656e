package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Durgeshmauryaji/project-management-app/config"
	"github.com/Durgeshmauryaji/project-management-app/handlers"
	"github.com/Durgeshmauryaji/project-management-app/logging"
	"github.com/Durgeshmauryaji/project-management-app/middleware"
	"github.com/Durgeshmauryaji/project-management-app/services"
	"github.com/Durgeshmauryaji/project-management-app/utils"

	"github.com/gorilla/mux"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createEmailIndex(collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on user email: %v", err)
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_LOAD_ERROR, Description: %v", err)
	}

	logging.InitLogger(cfg.LogsPath, cfg.IsDevelopment())
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting project tracker API...")

	utils.SetSecret(cfg.JWTSecret)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", cfg.MongoURI)

	db := client.Database(cfg.MongoDBName)
	userCollection := db.Collection("users")
	projectCollection := db.Collection("projects")
	taskCollection := db.Collection("tasks")

	if err := createEmailIndex(userCollection); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	// One breaker guards every Mongo round trip; a missing document or a
	// duplicate key is an answer from the database, not a failure of it.
	mongoBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mongo-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, mongo.ErrNoDocuments) || mongo.IsDuplicateKeyError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	userService := services.NewUserService(userCollection, mongoBreaker)
	projectService := services.NewProjectService(projectCollection, userCollection, mongoBreaker)
	taskService := services.NewTaskService(taskCollection, mongoBreaker)

	loginHandler := handlers.NewLoginHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API is working!"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", loginHandler.Register).Methods("POST")
	api.HandleFunc("/login", loginHandler.Login).Methods("POST")

	protected := api.PathPrefix("/").Subrouter()
	protected.Use(middleware.JWTAuthMiddleware)
	protected.HandleFunc("/projects", projectHandler.CreateProject).Methods("POST")
	protected.HandleFunc("/projects", projectHandler.ListProjects).Methods("GET")
	protected.HandleFunc("/projects/{id}", projectHandler.GetProjectByID).Methods("GET")
	protected.HandleFunc("/projects/{id}/members", projectHandler.AddMember).Methods("POST")
	protected.HandleFunc("/tasks", taskHandler.CreateTask).Methods("POST")
	protected.HandleFunc("/tasks/{projectId}", taskHandler.GetTasksByProject).Methods("GET")
	protected.HandleFunc("/tasks/{taskId}", taskHandler.UpdateTaskStatus).Methods("PATCH")
	protected.HandleFunc("/tasks/{taskId}", taskHandler.DeleteTask).Methods("DELETE")
	protected.HandleFunc("/users", userHandler.GetUsers).Methods("GET")

	corsRouter := enableCORS(r, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logging.Logger.Infof("Event ID: SERVER_LISTENING, Description: Server running on port %s", cfg.Port)
	logging.Logger.Fatal(srv.ListenAndServe())
}

// enableCORS allows requests from the configured frontend origins only.
func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
