package cmd

import (
	"fmt"
	"os"
	"strconv"

	"folio/internal/clix"
	"folio/internal/services"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryDescription string

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		params := services.CategoryParams{Name: args[0]}
		if cmd.Flags().Changed("description") {
			params.Description = &categoryDescription
		}
		params.Keywords = clix.ParseKeywords(cmd.Flags())
		category, err := appInstance.CategoryService.CreateCategory(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		fmt.Printf("%s category %d (%s)\n", color.GreenString("Created"), category.ID, category.Slug)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		categories, err := appInstance.CategoryService.ListCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if len(categories) == 0 {
			fmt.Println("No categories found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Name", "Slug", "Description", "Keywords"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, c := range categories {
			desc, kw := "", ""
			if c.Description != nil {
				desc = *c.Description
			}
			if c.Keywords != nil {
				kw = *c.Keywords
			}
			table.Append([]string{strconv.FormatInt(c.ID, 10), c.Name, c.Slug, desc, kw})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd)

	categoryAddCmd.Flags().StringVar(&categoryDescription, "description", "", "Category description")
	categoryAddCmd.Flags().String("keywords", "", "Comma separated keywords that should match this category")
}
