package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/talkweave/forum-backend-go/internal/config"
	"github.com/talkweave/forum-backend-go/internal/fixtures"
	appHTTP "github.com/talkweave/forum-backend-go/internal/handler/http"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
	"github.com/talkweave/forum-backend-go/internal/pkg/jwt"
	"github.com/talkweave/forum-backend-go/internal/pkg/oauth"
	"github.com/talkweave/forum-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/talkweave/forum-backend-go/internal/service/auth"
	serviceCategory "github.com/talkweave/forum-backend-go/internal/service/category"
	serviceNotfPref "github.com/talkweave/forum-backend-go/internal/service/notfpref"
	servicePage "github.com/talkweave/forum-backend-go/internal/service/page"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	memberRepo := postgresql.NewMemberRepository(db)
	groupRepo := postgresql.NewGroupRepository(db)
	categoryRepo := postgresql.NewCategoryRepository(db)
	pageRepo := postgresql.NewPageRepository(db)
	postRepo := postgresql.NewPostRepository(db)
	notfPrefRepo := postgresql.NewNotfPrefRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	if _, err := fixtures.SeedSiteDefaults(context.Background(), cfg.App.SiteID, groupRepo, categoryRepo); err != nil {
		log.Fatal("Failed to seed site defaults: ", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID,
		cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL,
		cfg.OAuth2Google.Scopes,
	)

	authService := serviceAuth.NewAuthService(db, memberRepo, groupRepo, jwtService, jwtRepo, googleService)
	categoryService := serviceCategory.NewCategoryService(categoryRepo)
	pageService := servicePage.NewPageService(db, pageRepo, postRepo, categoryRepo)
	notfPrefService := serviceNotfPref.NewNotfPrefService(notfPrefRepo, pageRepo, memberRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authService, cfg.App.SiteID, cfg.App.FrontendURL)
	pageHandler := appHTTP.NewPageHandler(pageService, cfg.App.SiteID)
	categoryHandler := appHTTP.NewCategoryHandler(categoryService, cfg.App.SiteID)
	notfPrefHandler := appHTTP.NewNotfPrefHandler(notfPrefService, cfg.App.SiteID)
	memberHandler := appHTTP.NewMemberHandler(memberRepo, groupRepo, cfg.App.SiteID)

	router := appHTTP.NewRouter(
		jwtService,
		cfg.App.FrontendURL,
		cfg.App.Env,
		authHandler,
		pageHandler,
		categoryHandler,
		notfPrefHandler,
		memberHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
