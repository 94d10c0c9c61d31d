package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/lessonplan/internal/cli"
	"github.com/alexanderramin/lessonplan/internal/config"
	"github.com/alexanderramin/lessonplan/internal/db"
	"github.com/alexanderramin/lessonplan/internal/planner"
	"github.com/alexanderramin/lessonplan/internal/repository"
	"github.com/alexanderramin/lessonplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	stageRepo := repository.NewSQLiteStageRepo(database)
	exerciseRepo := repository.NewSQLiteExerciseRepo(database)
	planRepo := repository.NewSQLiteLessonPlanRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	defaults := service.PlanDefaults{
		BudgetSeconds: cfg.BudgetSeconds,
		WarningBand:   cfg.WarningBandSeconds,
		StartTime:     cfg.DefaultStartTime,
	}

	app := &cli.App{
		Catalog: service.NewCatalogService(stageRepo, exerciseRepo, uow, observer),
		Plans:   service.NewLessonPlanService(planRepo, stageRepo, exerciseRepo, uow, defaults, observer),
		Budget:  planner.Budget{Ceiling: cfg.BudgetSeconds, WarningBand: cfg.WarningBandSeconds},
	}

	// Prompts only when a person is at the keyboard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
