// Package main provides the interactive terminal planner: pick a profile,
// generate or optimize a weekly menu, inspect and substitute slots and
// print the shopping list.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"

	"github.com/platewise/v1/internal/application/planner"
	"github.com/platewise/v1/internal/domain/menu"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/infrastructure/cache"
	"github.com/platewise/v1/internal/infrastructure/config"
	"github.com/platewise/v1/internal/infrastructure/ingestion"
	"github.com/platewise/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/platewise/v1/internal/infrastructure/persistence/gorm"
	"github.com/platewise/v1/internal/infrastructure/persistence/sqlite"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:  "warn", // keep the terminal clean for the interactive loop
		Format: "console",
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	service, err := buildPlanner(cfg, zlog)
	if err != nil {
		log.Fatalf("failed to initialize planner: %v", err)
	}

	showDisclaimer()
	run(service, cfg)
}

func buildPlanner(cfg *config.Config, zlog *zap.Logger) (inbound.PlannerService, error) {
	logLevel := gormLogger.Silent
	if cfg.Database.LogQueries {
		logLevel = gormLogger.Info
	}
	db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
	if err != nil {
		return nil, err
	}

	pool := gormRepo.NewPoolRepository(db, zlog)
	loader := ingestion.NewLoader(pool, ingestion.Config{
		RecipesCSV:      cfg.Dataset.RecipesCSV,
		InteractionsCSV: cfg.Dataset.InteractionsCSV,
		RowLimit:        cfg.Dataset.RowLimit,
	}, zlog)

	fmt.Println("Loading recipe dataset...")
	if _, err := loader.Run(context.Background()); err != nil {
		return nil, err
	}
	records, err := pool.LoadAll(context.Background())
	if err != nil {
		return nil, err
	}
	fmt.Printf("Candidate pool ready: %d recipes.\n", len(records))

	return planner.NewPlannerService(records, cache.NewMemoryRepository(), monitoring.NewMetrics(), planner.Options{
		EliteSize:       cfg.Planner.EliteSize,
		SolverTimeLimit: cfg.Planner.SolverTimeLimit,
		DefaultCalMax:   cfg.Planner.CalMaxDaily,
		DefaultProtMin:  cfg.Planner.ProtMinDaily,
		PlanCacheTTL:    cfg.Planner.PlanCacheTTL,
	}, zlog), nil
}

func showDisclaimer() {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(" IMPORTANT DATA DISCLAIMER")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(" This planner uses a public dataset (Food.com).")
	fmt.Println(" Recipes have been filtered to remove obvious errors,")
	fmt.Println(" but please review ingredients before cooking.")
	fmt.Println(strings.Repeat("-", 60))
}

func run(service inbound.PlannerService, cfg *config.Config) {
	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	for {
		profile, ok := chooseProfile(reader)
		if !ok {
			fmt.Println("Goodbye!")
			return
		}

		current, err := buildMenu(ctx, reader, service, cfg, profile)
		if err != nil {
			fmt.Printf("Could not build a menu: %v\n", err)
			continue
		}

		if !menuLoop(ctx, reader, service, current) {
			fmt.Println("Goodbye!")
			return
		}
	}
}

func chooseProfile(reader *bufio.Reader) (recipe.Profile, bool) {
	fmt.Println("\nChoose your weekly goal:")
	for i, p := range recipe.Profiles() {
		fmt.Printf(" [%d] %s\n", i+1, p)
	}
	fmt.Println(" [Q] Quit")

	for {
		choice := prompt(reader, "> ")
		if strings.EqualFold(choice, "q") {
			return "", false
		}
		idx, err := strconv.Atoi(choice)
		if err == nil && idx >= 1 && idx <= len(recipe.Profiles()) {
			return recipe.Profiles()[idx-1], true
		}
		fmt.Println("Please choose a listed option.")
	}
}

func buildMenu(ctx context.Context, reader *bufio.Reader, service inbound.PlannerService, cfg *config.Config, profile recipe.Profile) (*inbound.MenuDTO, error) {
	fmt.Println("\nHow should the week be planned?")
	fmt.Println(" [1] Quick plan (randomized top performers)")
	fmt.Printf(" [2] Exact plan (calorie ceiling %.0f kcal/day, protein floor %.0f%%/day)\n",
		cfg.Planner.CalMaxDaily, cfg.Planner.ProtMinDaily)

	for {
		switch prompt(reader, "> ") {
		case "1":
			return service.GenerateMenu(ctx, inbound.GenerateMenuCommand{Profile: profile})
		case "2":
			fmt.Println("Solving, this can take up to the configured time budget...")
			dto, err := service.OptimizeMenu(ctx, inbound.OptimizeMenuCommand{Profile: profile})
			if err == nil && dto.Stats != nil {
				fmt.Printf("Solver status: %s | total score %.2f | avg %.0f kcal/day | avg %.1f%% protein/day\n",
					dto.Stats.Status, dto.Stats.TotalScore, dto.Stats.AvgDailyCalories, dto.Stats.AvgDailyProteinPDV)
			}
			return dto, err
		default:
			fmt.Println("Please choose 1 or 2.")
		}
	}
}

// menuLoop returns false when the user wants to quit entirely.
func menuLoop(ctx context.Context, reader *bufio.Reader, service inbound.PlannerService, current *inbound.MenuDTO) bool {
	for {
		printMenu(current)
		fmt.Println("\nACTIONS: [slot number] view recipe | [L] shopping list | [N] new plan | [Q] quit")

		choice := prompt(reader, "> ")
		switch {
		case strings.EqualFold(choice, "q"):
			return false
		case strings.EqualFold(choice, "n"):
			return true
		case strings.EqualFold(choice, "l"):
			printShoppingList(ctx, service, current)
		default:
			slot, err := strconv.Atoi(choice)
			if err != nil || slot < 0 || slot >= menu.Slots {
				fmt.Printf("Slots are numbered 0 to %d.\n", menu.Slots-1)
				continue
			}
			slotLoop(ctx, reader, service, current, slot)
			refreshed, err := service.GetMenu(ctx, current.ID)
			if err == nil {
				*current = *refreshed
			}
		}
	}
}

func slotLoop(ctx context.Context, reader *bufio.Reader, service inbound.PlannerService, current *inbound.MenuDTO, slot int) {
	for {
		detail, err := service.SlotDetails(ctx, current.ID, slot)
		if err != nil {
			fmt.Printf("Could not load slot: %v\n", err)
			return
		}
		printDetail(detail)
		fmt.Println("ACTIONS: [Enter] back | [C] change this recipe")

		switch strings.ToUpper(prompt(reader, "> ")) {
		case "":
			return
		case "C":
			result, err := service.SubstituteSlot(ctx, inbound.SubstituteSlotCommand{
				MenuID: current.ID,
				Slot:   slot,
			})
			if err != nil {
				fmt.Printf("Substitution failed: %v\n", err)
				return
			}
			if !result.Replaced {
				fmt.Println("No substitute available for this slot.")
				continue
			}
			fmt.Printf("Replaced with: %s\n", result.Replacement.Name)
		}
	}
}

func printMenu(dto *inbound.MenuDTO) {
	fmt.Printf("\n=== WEEKLY MENU (%s) ===\n", dto.Profile)
	for day := 0; day < menu.Days; day++ {
		fmt.Printf("\nDay %d\n", day+1)
		for meal := 0; meal < menu.MealsPerDay; meal++ {
			slot := dto.Slots[day*menu.MealsPerDay+meal]
			fmt.Printf("  [%2d] %-9s %-3s %s\n", slot.Index, slot.Kind, slot.CostSymbol, slot.Name)
		}
	}
}

func printDetail(d *inbound.RecipeDetailDTO) {
	line := strings.Repeat("=", 60)
	fmt.Println("\n" + line)
	fmt.Printf(" %s\n RECIPE: %s\n", d.TypeLabel, strings.ToUpper(d.Slot.Name))
	fmt.Println(line)
	fmt.Printf(" Est. Cost: %s (%.2f u.)\n", d.Slot.CostSymbol, d.Slot.Cost)
	fmt.Printf(" Rating: %.2f/5.0 %s\n", d.Slot.Rating, d.RatingStars)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(" NUTRITION PER SERVING:")
	fmt.Printf("    - Calories: %.0f kcal\n", d.Slot.Calories)
	fmt.Printf("    - Protein:  %.0f%% DV\n", d.Slot.ProteinPDV)
	fmt.Printf("    - Fat:      %.0f%% DV\n", d.FatPDV)
	fmt.Printf("    - Carbs:    %.0f%% DV\n", d.CarbsPDV)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf(" INGREDIENTS (%d):\n", len(d.Ingredients))
	for _, ing := range d.Ingredients {
		fmt.Printf("    - %s\n", ing)
	}
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(" INSTRUCTIONS:")
	for i, step := range d.Steps {
		fmt.Printf("   %d. %s\n", i+1, step)
	}
	fmt.Println(line)
}

func printShoppingList(ctx context.Context, service inbound.PlannerService, current *inbound.MenuDTO) {
	list, err := service.ShoppingList(ctx, current.ID)
	if err != nil {
		fmt.Printf("Could not build shopping list: %v\n", err)
		return
	}
	fmt.Printf("\n--- SHOPPING LIST (%d meals) ---\n", list.Meals)
	for _, item := range list.Items {
		fmt.Printf(" [ ] %s (x%d)\n", item.Ingredient, item.Count)
	}
	if list.Remaining > 0 {
		fmt.Printf("... and %d other items.\n", list.Remaining)
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	text, _ := reader.ReadString('\n')
	return strings.TrimSpace(text)
}
