// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gocolly/colly/v2"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/larderapp/server/internal/config"
	"github.com/larderapp/server/internal/handler/addreminder"
	"github.com/larderapp/server/internal/handler/getmealplan"
	"github.com/larderapp/server/internal/handler/importrecipe"
	"github.com/larderapp/server/internal/handler/parseingredients"
	"github.com/larderapp/server/internal/handler/removedish"
	"github.com/larderapp/server/internal/handler/removereminder"
	"github.com/larderapp/server/internal/handler/savedish"
	"github.com/larderapp/server/internal/handler/shelflifelookup"
	"github.com/larderapp/server/internal/images"
	"github.com/larderapp/server/internal/llm"
	"github.com/larderapp/server/internal/planner"
	"github.com/larderapp/server/internal/reminders"
	"github.com/larderapp/server/internal/scrape"
	"github.com/larderapp/server/internal/shelflife"
	"github.com/larderapp/server/internal/web"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storage, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	publicBucket := conf.Google.Project + "-public"

	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		Project: conf.Google.Project,
	})
	if err != nil {
		return fmt.Errorf("main: create genai client: %w", err)
	}

	oai := openai.NewClient()

	baseCollector := colly.NewCollector(
		colly.UserAgent(conf.Scrape.UserAgent),
	)
	fetcher := scrape.NewFetcher(baseCollector)

	extractor := llm.NewFallbackExtractor(genAI, conf.Models.Extract)
	parser := llm.NewParser(oai, conf.Models.Parse)

	plannerSvc := planner.NewService(firestore)
	mirror := images.NewMirror(fetcher, storage, publicBucket)
	shelfScraper := shelflife.NewCachedScraper(shelflife.NewScraper(fetcher, conf.ShelfLife.BaseURL), firestore)

	scheduler := reminders.NewScheduler(reminders.NewFirestoreStore(firestore), reminders.LogNotifier{}, nil)
	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("main: start reminder scheduler: %w", err)
	}
	defer scheduler.Close()

	// CORS first so preflight requests never hit the auth check.
	mux.Use(web.CORS)
	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		// The import, parse, and shelf-life endpoints are public.
		return strings.HasPrefix(r.URL.Path, "/planner/")
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok")) //nolint:errcheck
	})

	mux.Post("/api/recipes/import", importrecipe.NewHandler(fetcher, extractor, parser).ImportRecipe)
	mux.Post("/api/ingredients/parse", parseingredients.NewHandler(parser).ParseIngredients)
	mux.Get("/api/shelf-life", shelflifelookup.NewHandler(shelfScraper).ShelfLife)

	mux.Post("/planner/dishes", savedish.NewHandler(plannerSvc, mirror).SaveDish)
	mux.Post("/planner/dishes/remove", removedish.NewHandler(plannerSvc).RemoveDish)
	mux.Get("/planner/plan", getmealplan.NewHandler(plannerSvc).GetMealPlan)
	mux.Post("/planner/reminders", addreminder.NewHandler(scheduler).AddReminder)
	mux.Post("/planner/reminders/remove", removereminder.NewHandler(scheduler).RemoveReminder)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: start server: %w", err)
	}
	return nil
}