package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/consite-erp/consite-backend-go/internal/config"
	appHTTP "github.com/consite-erp/consite-backend-go/internal/handler/http"
	"github.com/consite-erp/consite-backend-go/internal/pkg/database"
	"github.com/consite-erp/consite-backend-go/internal/pkg/email"
	"github.com/consite-erp/consite-backend-go/internal/pkg/identity"
	"github.com/consite-erp/consite-backend-go/internal/pkg/jwt"
	"github.com/consite-erp/consite-backend-go/internal/pkg/token"
	"github.com/consite-erp/consite-backend-go/internal/repository/postgresql"
	invitationService "github.com/consite-erp/consite-backend-go/internal/service/invitation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	invitationRepo := postgresql.NewInvitationRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SessionExpiration)

	tokenCodec, err := token.ForName(cfg.Invitation.Codec)
	if err != nil {
		log.Fatal("Failed to initialize token codec:", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	invitationSvc := invitationService.NewInvitationService(
		invitationRepo,
		projectRepo,
		tokenCodec,
		identity.NewDefaultBinder(),
		emailService,
		cfg.Invitation,
		cfg.App.FrontendURL,
	)

	invitationHandler := appHTTP.NewInvitationHandler(invitationSvc)
	sessionHandler := appHTTP.NewSessionHandler()

	router := appHTTP.NewRouter(
		jwtService,
		invitationHandler,
		sessionHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
