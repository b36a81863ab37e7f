package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"folio/internal/services"
	"folio/pkg/categorizer"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// categorizeCmd represents the base command for categorization operations.
var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Suggest and apply post categories",
	Long: `Provides commands to rank categories for a post, run an auto-categorization
batch over uncategorized posts, and approve suggestions by hand.`,
}

var (
	batchLimit int
	batchAsync bool
)

var categorizeSuggestCmd = &cobra.Command{
	Use:   "suggest <post_id>",
	Short: "Show ranked category suggestions for a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID '%s': %w", args[0], err)
		}
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.CategorizationService.SuggestForPost(cmd.Context(), postID)
		if err != nil {
			return fmt.Errorf("failed to suggest categories: %w", err)
		}
		renderSuggestions(os.Stdout, res)
		return nil
	},
}

var categorizeBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Auto-categorize uncategorized posts",
	Long: `Scores the newest uncategorized posts against every category. Posts whose best
suggestion is confident enough are assigned; the rest are listed for review.
With --async the batch is queued for the worker and its job ID is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		limit := appInstance.Config.Categorization.BatchLimit
		if cmd.Flags().Changed("limit") {
			limit = batchLimit
		}
		if limit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}

		if batchAsync {
			jobID, err := appInstance.CategorizationService.EnqueueAutoCategorize(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to enqueue batch: %w", err)
			}
			fmt.Printf("%s auto-categorization job %s\n", color.GreenString("Queued"), jobID)
			fmt.Printf("Check progress with: folio job show %s\n", jobID)
			return nil
		}

		result, err := appInstance.CategorizationService.AutoCategorize(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("auto-categorization failed: %w", err)
		}
		renderBatchResult(os.Stdout, result)
		return nil
	},
}

var categorizeApplyCmd = &cobra.Command{
	Use:   "apply <post_id> <category_id>",
	Short: "Assign a category to a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID '%s': %w", args[0], err)
		}
		categoryID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category ID '%s': %w", args[1], err)
		}
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if err := appInstance.CategorizationService.ApplyCategory(cmd.Context(), postID, categoryID); err != nil {
			return fmt.Errorf("failed to apply category: %w", err)
		}
		fmt.Printf("%s post %d -> category %d\n", color.GreenString("Assigned"), postID, categoryID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
	categorizeCmd.AddCommand(categorizeSuggestCmd, categorizeBatchCmd, categorizeApplyCmd)

	categorizeBatchCmd.Flags().IntVar(&batchLimit, "limit", 0, "Maximum number of posts to process (0 = no cap; default from categorization.batch_limit)")
	categorizeBatchCmd.Flags().BoolVar(&batchAsync, "async", false, "Queue the batch for the worker instead of running it now")
}

// confidenceString colors a confidence by how close it is to auto-assignment.
func confidenceString(c float64) string {
	s := fmt.Sprintf("%.2f", c)
	switch {
	case c > categorizer.DefaultAutoAssignThreshold:
		return color.GreenString(s)
	case c >= 0.5:
		return color.YellowString(s)
	default:
		return s
	}
}

func renderSuggestions(w io.Writer, res *services.SuggestionResult) {
	a := res.Analysis
	fmt.Fprintf(w, "Post %d: %s, %d chars, ~%d min read\n", res.PostID, a.Type, a.CharacterLength, a.ReadingMinutes)
	if kw := a.Keywords(); len(kw) > 0 {
		fmt.Fprintf(w, "Keywords: %s\n", strings.Join(kw, ", "))
	}

	if len(res.Suggestions) == 0 {
		fmt.Fprintln(w, "No category scored above the visibility threshold.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category ID", "Category", "Confidence", "Reasons"})
	table.SetBorder(true)
	table.SetRowLine(true)
	table.SetAutoWrapText(false)
	for _, s := range res.Suggestions {
		table.Append([]string{
			strconv.FormatInt(s.CategoryID, 10),
			s.CategoryName,
			confidenceString(s.Confidence),
			strings.Join(s.Reasons, "; "),
		})
	}
	table.Render()
}

func renderBatchResult(w io.Writer, result categorizer.BatchResult) {
	failed := strconv.Itoa(result.Failed)
	if result.Failed > 0 {
		failed = color.RedString(failed)
	}
	fmt.Fprintf(w, "Processed: %d  Categorized: %s  Failed: %s  Needs review: %d\n",
		result.Processed, color.GreenString(strconv.Itoa(result.Categorized)), failed, len(result.Suggestions))

	if len(result.Suggestions) == 0 {
		return
	}

	fmt.Fprintln(w, "Review queue:")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Post ID", "Title", "Suggestions"})
	table.SetBorder(true)
	table.SetRowLine(true)
	table.SetAutoWrapText(false)
	for _, entry := range result.Suggestions {
		parts := make([]string, 0, len(entry.Suggestions))
		for _, s := range entry.Suggestions {
			parts = append(parts, fmt.Sprintf("%s #%d (%.2f)", s.CategoryName, s.CategoryID, s.Confidence))
		}
		table.Append([]string{strconv.FormatInt(entry.ContentID, 10), entry.Title, strings.Join(parts, "\n")})
	}
	table.Render()
}
