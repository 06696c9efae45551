package cli

import (
	"context"
	"fmt"

	"talent-match/internal/database"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (e *env) connect(ctx context.Context) (database.DB, error) {
	db, err := dbpostgres.Connect(ctx, e.cfg.Database, e.logger)
	if err != nil {
		return nil, err
	}
	if _, err := migration.Default(e.logger).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := dbpostgres.Connect(ctx, e.cfg.Database, e.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := migration.Default(e.logger).Run(ctx, db.SQLDB())
			if err != nil {
				return err
			}
			e.logger.Info("migrations applied", zap.Int("count", n))
			return nil
		},
	}
}

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo jobs, candidates and applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := seeder.Runner{Seeders: seeder.Defaults(), Logger: e.logger}.Run(ctx, db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tables, demo recruiter %s\n", n, seeder.DemoRecruiterID)
			return nil
		},
	}
}
