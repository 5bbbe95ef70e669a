package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abushaidislam/study-guide/internal/calendar"
	"github.com/abushaidislam/study-guide/internal/cli"
	"github.com/abushaidislam/study-guide/internal/config"
	"github.com/abushaidislam/study-guide/internal/db"
	"github.com/abushaidislam/study-guide/internal/events"
	"github.com/abushaidislam/study-guide/internal/intelligence"
	"github.com/abushaidislam/study-guide/internal/intent"
	"github.com/abushaidislam/study-guide/internal/lexicon"
	"github.com/abushaidislam/study-guide/internal/llm"
	"github.com/abushaidislam/study-guide/internal/metrics"
	"github.com/abushaidislam/study-guide/internal/repository"
	"github.com/abushaidislam/study-guide/internal/service"
	"github.com/mattn/go-isatty"
)

// wire builds the App from cfg. cleanup releases the database and the NATS
// connection.
func wire(cfg *config.Config, logger *slog.Logger) (*cli.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	closers = append(closers, func() { database.Close() })

	taskRepo := repository.NewSQLiteTaskRepo(database)
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	blockRepo := repository.NewSQLiteBlockRepo(database)
	chatRepo := repository.NewSQLiteChatRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	lex, err := lexicon.Load(cfg.VocabularyFile)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	vocab := intent.NewReloadable(lex)

	m := metrics.New()
	observers := []service.UseCaseObserver{service.NewSlogUseCaseObserver(logger), m}
	if cfg.Events.NATSURL != "" {
		pub, err := events.Connect(cfg.Events.NATSURL)
		if err != nil {
			logger.Warn("plan events disabled", "error", err)
		} else {
			closers = append(closers, pub.Close)
			observers = append(observers, events.NewPlanObserver(pub, cfg.Events.Subject, logger))
		}
	}
	observer := service.CombineObservers(observers...)

	llmCfg := llm.LoadConfig()
	llmObs := llm.MultiObserver{m}
	if llmCfg.LogCalls {
		llmObs = append(llmObs, llm.NewLogObserver(os.Stderr))
	}
	assistant := intelligence.NewChatAssistant(llm.NewClient(llmCfg, llmObs), logger)

	plans := service.NewPlanService(taskRepo, service.NewBlockStore(blockRepo, uow), vocab,
		service.PlannerSettings{
			TotalMinutes: cfg.Planner.TotalMinutes,
			BlockMinutes: cfg.Planner.BlockMinutes,
			StartHour:    cfg.Planner.DefaultStartHour,
		},
		observer)
	chat := service.NewChatService(chatRepo, vocab, plans, assistant,
		service.ChatSettings{HistoryLimit: cfg.Chat.HistoryLimit, TranscriptLimit: cfg.Chat.TranscriptLimit},
		observer)

	app := &cli.App{
		Tasks:            service.NewTaskService(taskRepo, subjectRepo, uow, observer),
		Subjects:         service.NewSubjectService(subjectRepo),
		Plans:            plans,
		Chat:             chat,
		DefaultStartHour: cfg.Planner.DefaultStartHour,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	app.Serve = func(ctx context.Context, addr string) error {
		if addr == "" {
			addr = cfg.Server.Addr
		}
		if stop := watchVocabulary(ctx, cfg.VocabularyFile, vocab, logger); stop != nil {
			defer stop()
		}
		return serve(ctx, addr, app, cfg.Server.APIKey, m, logger)
	}
	app.Calendar = func(ctx context.Context) (cli.CalendarSyncer, error) {
		oauthCfg, err := calendar.OAuthConfig(cfg.Calendar.CredentialsFile)
		if err != nil {
			return nil, err
		}
		client, err := calendar.HTTPClient(ctx, oauthCfg, cfg.Calendar.TokenFile)
		if err != nil {
			return nil, err
		}
		srv, err := calendar.NewService(ctx, client)
		if err != nil {
			return nil, err
		}
		return calendar.NewSyncer(srv, cfg.Calendar.CalendarID), nil
	}
	app.AuthorizeCalendar = func(ctx context.Context, out io.Writer) error {
		oauthCfg, err := calendar.OAuthConfig(cfg.Calendar.CredentialsFile)
		if err != nil {
			return err
		}
		return calendar.AuthorizeLoopback(ctx, oauthCfg, cfg.Calendar.TokenFile, out)
	}

	return app, cleanup, nil
}

// watchVocabulary hot-reloads the vocabulary file into vocab while the
// server runs. It returns nil when there is nothing to watch.
func watchVocabulary(ctx context.Context, path string, vocab *intent.Reloadable, logger *slog.Logger) func() {
	if path == "" {
		return nil
	}
	w, err := lexicon.NewWatcher(path, vocab.Reload, logger)
	if err == nil {
		err = w.Start(ctx)
	}
	if err != nil {
		logger.Warn("vocabulary hot reload disabled", "error", err)
		return nil
	}
	return func() { _ = w.Stop() }
}
