package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/polisure/commission-api/internal/agent"
	"github.com/polisure/commission-api/internal/agreement"
	"github.com/polisure/commission-api/internal/auth"
	"github.com/polisure/commission-api/internal/client"
	"github.com/polisure/commission-api/internal/commission"
	"github.com/polisure/commission-api/internal/company"
	"github.com/polisure/commission-api/internal/extractor"
	"github.com/polisure/commission-api/internal/meetingsummary"
	"github.com/polisure/commission-api/internal/notification"
	"github.com/polisure/commission-api/internal/product"
	"github.com/polisure/commission-api/internal/transaction"
	"github.com/polisure/commission-api/internal/utils/db"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	database, err := db.Connect()
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(
		&agent.Agent{},
		&company.InsuranceCompany{},
		&product.Product{},
		&client.Client{},
		&agreement.Agreement{},
		&agreement.CommissionStructure{},
		&agreement.PaymentTerms{},
		&transaction.Transaction{},
		&commission.Commission{},
		&meetingsummary.MeetingSummary{},
	); err != nil {
		logger.Fatal("automigrate failed", zap.Error(err))
	}

	gateway := extractor.NewGateway(extractor.ConfigFromEnv(), logger)
	notifier := notification.NewNotifier(os.Getenv("COMMISSION_WEBHOOK_URL"), logger)
	pipeline := meetingsummary.NewPipeline(database, gateway, logger)

	// Handlers
	agentHandler := agent.NewHandler(database)
	companyHandler := company.NewHandler(database)
	productHandler := product.NewHandler(database)
	clientHandler := client.NewHandler(database)
	agreementHandler := agreement.NewHandler(database)
	transactionHandler := transaction.NewHandler(database)
	commissionHandler := commission.NewHandler(database, notifier, logger)
	summaryHandler := meetingsummary.NewHandler(database, pipeline)

	// Router
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/register", agentHandler.Register).Methods("POST")
	r.HandleFunc("/login", agentHandler.Login).Methods("POST")

	// Authenticated routes
	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/profile", agentHandler.Profile).Methods("GET")
	api.HandleFunc("/profile", agentHandler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/profile/password", agentHandler.ChangePassword).Methods("PUT")
	api.Handle("/agents", auth.RequireAdmin(http.HandlerFunc(agentHandler.List))).Methods("GET")
	api.Handle("/agents/{id}", auth.RequireAdmin(http.HandlerFunc(agentHandler.Get))).Methods("GET")

	api.HandleFunc("/companies", companyHandler.Create).Methods("POST")
	api.HandleFunc("/companies", companyHandler.List).Methods("GET")
	api.HandleFunc("/companies/{id}", companyHandler.Get).Methods("GET")
	api.HandleFunc("/companies/{id}", companyHandler.Update).Methods("PUT")
	api.HandleFunc("/companies/{id}", companyHandler.Delete).Methods("DELETE")

	api.HandleFunc("/products", productHandler.Create).Methods("POST")
	api.HandleFunc("/products", productHandler.List).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.Get).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.Update).Methods("PUT")
	api.HandleFunc("/products/{id}", productHandler.Delete).Methods("DELETE")

	api.HandleFunc("/clients", clientHandler.Create).Methods("POST")
	api.HandleFunc("/clients", clientHandler.List).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.Get).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", clientHandler.Delete).Methods("DELETE")

	api.HandleFunc("/agreements", agreementHandler.Create).Methods("POST")
	api.HandleFunc("/agreements", agreementHandler.List).Methods("GET")
	api.HandleFunc("/agreements/{id}", agreementHandler.Get).Methods("GET")
	api.HandleFunc("/agreements/{id}", agreementHandler.Update).Methods("PUT")
	api.HandleFunc("/agreements/{id}", agreementHandler.Delete).Methods("DELETE")

	api.HandleFunc("/transactions", transactionHandler.Create).Methods("POST")
	api.HandleFunc("/transactions", transactionHandler.List).Methods("GET")
	api.HandleFunc("/transactions/{id}", transactionHandler.Get).Methods("GET")
	api.HandleFunc("/transactions/{id}/status", transactionHandler.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/transactions/{id}", transactionHandler.Delete).Methods("DELETE")

	api.HandleFunc("/transactions/{id}/calculate-commission", commissionHandler.Calculate).Methods("POST")
	api.HandleFunc("/transactions/{id}/commissions", commissionHandler.ListByTransaction).Methods("GET")
	api.HandleFunc("/commissions", commissionHandler.ListMine).Methods("GET")
	api.HandleFunc("/commissions/{id}/status", commissionHandler.UpdateStatus).Methods("PATCH")

	api.HandleFunc("/meeting-summaries", summaryHandler.Submit).Methods("POST")
	api.HandleFunc("/meeting-summaries", summaryHandler.List).Methods("GET")
	api.HandleFunc("/meeting-summaries/{id}", summaryHandler.Get).Methods("GET")

	handler := cors.AllowAll().Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server listening", zap.String("addr", ":"+port))
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
