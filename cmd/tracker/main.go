package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JigneshCalidad/Achivement-Tracker/api"
	"github.com/JigneshCalidad/Achivement-Tracker/config"
	"github.com/JigneshCalidad/Achivement-Tracker/services"
	"github.com/JigneshCalidad/Achivement-Tracker/testserver"
)

func main() {
	cfg := config.Load()
	config.InitLogging()

	baseURL := cfg.APIBaseURL
	if cfg.DemoMode {
		srv := testserver.New(cfg.JWTSecret)
		srv.SeedDemo(services.DateKey(time.Now()))

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatal().Err(err).Msg("demo server listen failed")
		}
		go http.Serve(ln, srv.Handler())

		baseURL = "http://" + ln.Addr().String()
		log.Info().Str("url", baseURL).Msg("demo server running")
	}

	client := api.New(baseURL)
	session := services.NewSessionService(client)
	days := services.NewDayService(client)
	mutations := services.NewMutationService(client, days)

	ctx := context.Background()

	if err := session.Login(ctx, cfg.Email, cfg.Password); err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
	user := session.CurrentUser()
	fmt.Printf("Signed in as %s <%s>\n", user.DisplayName, user.Email)

	today := services.DateKey(time.Now())
	day, err := days.SelectDate(ctx, today)
	if err != nil {
		log.Fatal().Err(err).Msg("day load failed")
	}

	if len(os.Args) > 1 {
		title := strings.Join(os.Args[1:], " ")
		todo, err := mutations.AddTodo(ctx, today, title, "", "", "")
		if err != nil {
			log.Fatal().Err(err).Msg("todo create failed")
		}
		if todo != nil {
			fmt.Printf("Added todo #%d: %s\n", todo.ID, todo.Title)
		}
		day = days.Cached(today)
	}

	fmt.Printf("\n%s\n", today)
	fmt.Printf("Achievements (%d):\n", len(day.Achievements))
	for _, a := range day.Achievements {
		fmt.Printf("  [%s] %s\n", mark(a.Completed), a.Title)
	}
	fmt.Printf("Todos (%d):\n", len(day.Todos))
	for _, t := range day.Todos {
		fmt.Printf("  [%s] %s (%s)\n", mark(t.Completed), t.Title, t.Priority)
	}
}

func mark(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}
