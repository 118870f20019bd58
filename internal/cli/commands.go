package cli

import (
	"fmt"
	"time"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/pkg/common"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func (a *app) searchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search the master ingredient list",
		Example: `  mealctl search tomato
  mealctl search "olive oil" --limit 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.service.SearchIngredients(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max results (0 = default)")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe-id>",
		Short: "Show a recipe and its ingredient list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.service.Recipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n", r.Name, r.ID)
			if r.Cuisine != "" {
				fmt.Fprintf(w, "Cuisine: %s\n", r.Cuisine)
			}
			fmt.Fprintf(w, "Meal: %s, %d min\n", r.MealType, r.TotalTime())
			fmt.Fprint(w, common.FormatIngredients(r.Ingredients))
			return nil
		},
	}
}

func (a *app) matchCmd() *cobra.Command {
	var (
		have      []string
		minimum   int
		sortBy    string
		direction string
	)
	cmd := &cobra.Command{
		Use:     "match",
		Short:   "Find recipes that can be made from the ingredients you have",
		Example: `  mealctl match --have egg,butter,flour --min 50 --sort missingCount --dir asc`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.service.MatchPantry(cmd.Context(), recipe.MatchRequest{
				AvailableIngredientIDs: have,
				MinimumMatchPercentage: minimum,
				SortBy:                 sortBy,
				SortDirection:          direction,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringSliceVar(&have, "have", nil, "ingredient ids you have")
	cmd.Flags().IntVar(&minimum, "min", 0, "minimum match percentage")
	cmd.Flags().StringVar(&sortBy, "sort", "", "matchPercentage, missingCount, cookTime or name")
	cmd.Flags().StringVar(&direction, "dir", "", "asc or desc")
	return cmd
}

func (a *app) suggestCmd() *cobra.Command {
	var (
		have  []string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest the next ingredients worth buying",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			suggestions, err := a.service.SuggestIngredients(cmd.Context(), have, limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), suggestions)
		},
	}
	cmd.Flags().StringSliceVar(&have, "have", nil, "ingredient ids you have")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max suggestions (0 = default)")
	return cmd
}

func (a *app) pairingsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "pairings <recipe-id>",
		Short: "Recipes that share the most ingredients with a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairings, err := a.service.Pairings(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), pairings)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max results (0 = default)")
	return cmd
}

func (a *app) similarCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "similar <recipe-id>",
		Short: "Recipes similar by ingredients, cuisine and time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			similar, err := a.service.Similar(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), similar)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max results (0 = default)")
	return cmd
}

// planFlags 規劃命令共用的篩選參數
type planFlags struct {
	exclude []string
	tags    []string
}

func (p *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&p.exclude, "exclude", nil, "recipe ids to leave out")
	cmd.Flags().StringSliceVar(&p.tags, "tags", nil, "only recipes with any of these dietary tags")
}

func (a *app) planCmd() *cobra.Command {
	var (
		meals int
		pf    planFlags
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Pick recipes that minimise distinct ingredients to buy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := a.service.EfficientPlan(cmd.Context(), recipe.PlanRequest{
				MealCount:        meals,
				ExcludeRecipeIDs: pf.exclude,
				DietaryTags:      pf.tags,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().IntVar(&meals, "meals", 0, "number of recipes (0 = default)")
	pf.register(cmd)
	return cmd
}

func (a *app) weekCmd() *cobra.Command {
	var (
		start string
		pf    planFlags
	)
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Seven-day breakfast/lunch/dinner plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if start != "" {
				var err error
				startDate, err = time.Parse(dateLayout, start)
				if err != nil {
					return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
				}
			}
			plan, err := a.service.WeekPlan(cmd.Context(), startDate, recipe.PlanRequest{
				ExcludeRecipeIDs: pf.exclude,
				DietaryTags:      pf.tags,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD (default today)")
	pf.register(cmd)
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Catalog and index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), a.service.Status())
		},
	}
}
