package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	knowledgeusecases "parlor/internal/application/knowledge/usecases"
	"parlor/internal/infrastructure/config"
	"parlor/internal/infrastructure/database"
	"parlor/internal/infrastructure/knowledge"
	"parlor/internal/infrastructure/repository"
	"parlor/internal/shared/logger"
)

var (
	env      string
	seedFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-knowledge",
		Short: "Load knowledge base articles from a YAML file",
		Long:  `Upsert knowledge base articles from a YAML seed file. Existing slugs are updated, new slugs are created.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to seed file (default: knowledge.seed_file from config)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	path := seedFile
	if path == "" {
		path = cfg.Knowledge.SeedFile
	}

	log := logger.NewLogger()
	articleRepo := repository.NewArticleRepository(database.Get())
	saveUC := knowledgeusecases.NewSaveArticleUseCase(articleRepo, log)
	seeder := knowledge.NewSeeder(saveUC, log)

	return seeder.SeedFromFile(context.Background(), path)
}
