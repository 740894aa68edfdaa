package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	catalogpgx "github.com/spicehouse/storefront-api/internal/domains/catalog/adapters/persistence/pgx"
	catalogapp "github.com/spicehouse/storefront-api/internal/domains/catalog/application"
	"github.com/spicehouse/storefront-api/internal/domains/catalog/application/types"
	"github.com/spicehouse/storefront-api/internal/platform/catalogdb"
)

type seedFlags struct {
	dsn   string
	reset bool
}

func main() {
	var flags seedFlags
	root := &cobra.Command{
		Use:   "seed",
		Short: "Populate the menu catalog with the storefront's starter menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), flags)
		},
	}
	root.Flags().StringVar(&flags.dsn, "dsn", "", "catalog database DSN (defaults to CATALOG_DSN)")
	root.Flags().BoolVar(&flags.reset, "reset", false, "delete existing menu items before seeding")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(ctx context.Context, flags seedFlags) error {
	_ = godotenv.Load()
	dsn := flags.dsn
	if dsn == "" {
		dsn = os.Getenv("CATALOG_DSN")
	}
	if dsn == "" {
		return fmt.Errorf("catalog DSN is required: pass --dsn or set CATALOG_DSN")
	}

	pool, err := catalogdb.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	defer pool.Close()
	if err := catalogpgx.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}

	if flags.reset {
		if _, err := pool.Exec(ctx, "DELETE FROM menu_items"); err != nil {
			return fmt.Errorf("failed to delete existing menu items: %w", err)
		}
		fmt.Println("Deleted existing menu items")
	}

	service := catalogapp.NewService(catalogpgx.NewRepository(pool))
	for _, item := range starterMenu() {
		created, err := service.CreateMenuItem(ctx, item)
		if err != nil {
			return fmt.Errorf("failed to seed %q: %w", item.Name, err)
		}
		fmt.Printf("Seeded %s (%s) at %.0f\n", created.Entity.Name, created.Entity.Category, created.Entity.Price)
	}
	fmt.Printf("Seeded %d menu items\n", len(starterMenu()))
	return nil
}

func starterMenu() []types.MenuItemInput {
	return []types.MenuItemInput{
		{
			Name:        "Paneer Tikka",
			Description: "Chunks of paneer marinated in spices and grilled in a tandoor for a smoky flavor.",
			Price:       250,
			Category:    "Appetizers",
			ImageURL:    "/static/images/paneertikka.jpg",
		},
		{
			Name:        "Chicken Tikka Masala",
			Description: "Tender chicken pieces marinated in cream, cheese, and mild spices, cooked until juicy and golden.",
			Price:       280,
			Category:    "Appetizers",
			ImageURL:    "/static/images/chickentikka.jpg",
		},
		{
			Name:        "Samosa",
			Description: "Crisp golden pastry filled with spicy mashed potatoes and green peas.",
			Price:       60,
			Category:    "Appetizers",
			ImageURL:    "/static/images/samosa.jpg",
		},
		{
			Name:        "Butter Chicken",
			Description: "Juicy chicken cooked in a rich and creamy tomato gravy with a hint of butter and spices.",
			Price:       360,
			Category:    "Main Course",
			ImageURL:    "/static/images/butterchicken.jpg",
		},
		{
			Name:        "Paneer Butter Masala",
			Description: "Soft paneer cubes simmered in a buttery tomato-cashew gravy, flavored with Indian spices.",
			Price:       320,
			Category:    "Main Course",
			ImageURL:    "/static/images/paneerbuttermasala.jpg",
		},
		{
			Name:        "Mutton Rogan Josh",
			Description: "Aromatic Kashmiri lamb curry slow-cooked with yogurt and a blend of traditional spices",
			Price:       400,
			Category:    "Main Course",
			ImageURL:    "/static/images/roganjosh.jpg",
		},
		{
			Name:        "Vegetable Biryani",
			Description: "Fragrant basmati rice layered with spiced vegetables, saffron, and herbs.",
			Price:       290,
			Category:    "Main Course",
			ImageURL:    "/static/images/vegbiryani.jpg",
		},
		{
			Name:        "Gulab Jamun",
			Description: "Deep-fried milk dumplings soaked in cardamom-flavored sugar syrup",
			Price:       120,
			Category:    "Desserts",
			ImageURL:    "/static/images/gulab.jpg",
		},
		{
			Name:        "Rasmalai",
			Description: "Soft cottage cheese balls immersed in chilled saffron and cardamom-flavored sweet milk.",
			Price:       150,
			Category:    "Desserts",
			ImageURL:    "/static/images/rasmalai.jpg",
		},
		{
			Name:        "Masala Chai",
			Description: "Classic Indian tea brewed with milk, ginger, and aromatic spices.",
			Price:       40,
			Category:    "Drinks",
			ImageURL:    "/static/images/chai.jpg",
		},
		{
			Name:        "Mango Lassi",
			Description: "Refreshing yogurt-based drink blended with sweet ripe mangoes.",
			Price:       90,
			Category:    "Drinks",
			ImageURL:    "/static/images/lassi.jpg",
		},
		{
			Name:        "Sweet Lime Soda",
			Description: "Fizzy soda mixed with lemon juice and sugar for a zesty, refreshing treat.",
			Price:       70,
			Category:    "Drinks",
			ImageURL:    "/static/images/soda.jpg",
		},
	}
}
