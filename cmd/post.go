package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"folio/internal/clix"
	"folio/internal/fileingest"
	"folio/internal/inputprocessor"
	"folio/internal/services"
	"folio/internal/store"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage posts",
}

var (
	postTitle  string
	postBody   string
	postFrom   string
	postStatus string

	postListCategory int64
	postListStatus   string
)

var postAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a post",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, body := postTitle, postBody
		if postFrom != "" {
			res, err := inputprocessor.New(nil).Process(cmd.Context(), postFrom)
			if err != nil {
				return err
			}
			body = res.Body
			if title == "" {
				title = res.Title
			}
		}
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("a --title is required when the source has none")
		}
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		post, err := appInstance.PostService.CreatePost(cmd.Context(), services.CreatePostParams{
			Title:  title,
			Body:   body,
			Status: postStatus,
		})
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		fmt.Printf("%s post %d (%s)\n", color.GreenString("Created"), post.ID, post.Slug)
		return nil
	},
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		page, err := clix.ParsePagination(cmd.Flags())
		if err != nil {
			return err
		}
		params := store.ListPostsParams{Limit: page.Limit, Offset: page.Offset, Status: postListStatus}
		if postListCategory > 0 {
			params.CategoryID = &postListCategory
		}

		posts, err := appInstance.PostService.ListPosts(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("failed to list posts: %w", err)
		}
		if len(posts) == 0 {
			fmt.Println("No posts found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Status", "Category", "Created At"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, p := range posts {
			category := color.YellowString("uncategorized")
			if p.CategoryID != nil {
				category = strconv.FormatInt(*p.CategoryID, 10)
			}
			table.Append([]string{
				strconv.FormatInt(p.ID, 10),
				p.Title,
				p.Status,
				category,
				p.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		table.Render()
		return nil
	},
}

var postImportCmd = &cobra.Command{
	Use:   "import <directory>",
	Short: "Create a post for every markdown, HTML or text file in a directory",
	Long: `Recursively walks the directory and creates one post per .md, .markdown,
.html, .htm or .txt file. The title comes from the document (<title>, first
<h1> or first line) and falls back to the file name. Files that fail are
reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		files, err := fileingest.DiscoverPostFiles(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to scan directory: %w", err)
		}
		if len(files) == 0 {
			fmt.Println("No importable files found.")
			return nil
		}

		processor := inputprocessor.New(nil)
		created, failed := 0, 0
		for _, f := range files {
			res, err := processor.Process(cmd.Context(), f.Path)
			if err == nil {
				title := res.Title
				if title == "" {
					title = strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
				}
				_, err = appInstance.PostService.CreatePost(cmd.Context(), services.CreatePostParams{
					Title:  title,
					Body:   res.Body,
					Status: postStatus,
				})
			}
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("Failed"), f.Path, err)
				continue
			}
			created++
		}
		fmt.Printf("Imported %d of %d files (%d failed)\n", created, len(files), failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.AddCommand(postAddCmd, postListCmd, postImportCmd)

	postAddCmd.Flags().StringVar(&postTitle, "title", "", "Post title (defaults to the title found in --from)")
	postAddCmd.Flags().StringVar(&postBody, "body", "", "Post body (HTML or plain text)")
	postAddCmd.Flags().StringVar(&postFrom, "from", "", "Read the post body from a file path or http(s) URL")
	postAddCmd.Flags().StringVar(&postStatus, "status", "draft", "Post status: draft, published or archived")
	postImportCmd.Flags().StringVar(&postStatus, "status", "draft", "Status for imported posts")

	postListCmd.Flags().Int("limit", 20, "Maximum number of posts to list")
	postListCmd.Flags().Int("offset", 0, "Number of posts to skip")
	postListCmd.Flags().Int64Var(&postListCategory, "category", 0, "Only list posts in this category ID")
	postListCmd.Flags().StringVar(&postListStatus, "status", "", "Only list posts with this status")
}
