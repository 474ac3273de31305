package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"maintdesk/internal/infrastructure/config"
	"maintdesk/internal/infrastructure/database"
	"maintdesk/internal/infrastructure/persistence/models"
	"maintdesk/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage the database schema and seed reference data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create or update the database schema",
		RunE:  runUp,
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample reference data",
		Long:  `Insert a small set of sections, facilities, technicians and users for local development.`,
		RunE:  runSeed,
	}
}

func setup() error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	return nil
}

func runUp(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	logger.Info("running migrations", "environment", env)

	if err := database.Get().AutoMigrate(
		&models.TicketModel{},
		&models.CommentModel{},
		&models.SectionModel{},
		&models.FacilityModel{},
		&models.TechnicianModel{},
		&models.UserModel{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("migrations completed")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	db := database.Get()

	sections := []models.SectionModel{
		{Name: "Electrical"},
		{Name: "Plumbing"},
		{Name: "HVAC"},
		{Name: "Carpentry"},
	}
	for _, s := range sections {
		if err := db.Where(models.SectionModel{Name: s.Name}).FirstOrCreate(&s).Error; err != nil {
			return fmt.Errorf("failed to seed section %q: %w", s.Name, err)
		}
	}

	facilities := []models.FacilityModel{
		{Name: "Main Building"},
		{Name: "Annex"},
		{Name: "Workshop"},
	}
	for _, f := range facilities {
		if err := db.Where(models.FacilityModel{Name: f.Name}).FirstOrCreate(&f).Error; err != nil {
			return fmt.Errorf("failed to seed facility %q: %w", f.Name, err)
		}
	}

	users := []models.UserModel{
		{FirstName: "Alice", LastName: "Morgan", Email: "alice.morgan@example.com"},
		{FirstName: "Ben", LastName: "Okafor", Email: "ben.okafor@example.com"},
	}
	for _, u := range users {
		if err := db.Where(models.UserModel{Email: u.Email}).FirstOrCreate(&u).Error; err != nil {
			return fmt.Errorf("failed to seed user %q: %w", u.Email, err)
		}
	}

	technicians := []models.TechnicianModel{
		{FirstName: "Carlos", LastName: "Reyes", SectionID: 1},
		{FirstName: "Dana", LastName: "Schmidt", SectionID: 2},
		{FirstName: "Elif", LastName: "Yilmaz", SectionID: 3},
	}
	for _, t := range technicians {
		if err := db.Where(models.TechnicianModel{
			FirstName: t.FirstName,
			LastName:  t.LastName,
		}).FirstOrCreate(&t).Error; err != nil {
			return fmt.Errorf("failed to seed technician %q: %w", t.FirstName+" "+t.LastName, err)
		}
	}

	logger.Info("seed data inserted",
		"sections", len(sections),
		"facilities", len(facilities),
		"users", len(users),
		"technicians", len(technicians))
	return nil
}
