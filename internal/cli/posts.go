package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/thoughtcloud/thoughtcloud/internal/client"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Args:  cobra.NoArgs,
	Run:   runList,
}

var viewCmd = &cobra.Command{
	Use:   "view [post-id]",
	Short: "Show a single post",
	Args:  cobra.ExactArgs(1),
	Run:   runView,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	Args:  cobra.NoArgs,
	Run:   runCreate,
}

var editCmd = &cobra.Command{
	Use:   "edit [post-id]",
	Short: "Edit one of your posts",
	Args:  cobra.ExactArgs(1),
	Run:   runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [post-id]",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	Run:   runDelete,
}

func init() {
	listCmd.Flags().String("search", "", "Filter by title, content, or author")
	listCmd.Flags().Int("page", 1, "Page to display")
	listCmd.Flags().Int("page-size", 10, "Posts per page")

	createCmd.Flags().String("title", "", "Post title")
	createCmd.Flags().String("content", "", "Post content")
	createCmd.Flags().String("image", "", "Path to an image file (jpeg/png, max 5 MiB)")
	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("content")

	editCmd.Flags().String("title", "", "New title (empty keeps the current one)")
	editCmd.Flags().String("content", "", "New content (empty keeps the current one)")
	editCmd.Flags().String("image", "", "Path to a replacement image")

	RootCmd.AddCommand(listCmd, viewCmd, createCmd, editCmd, deleteCmd)
}

func runList(cmd *cobra.Command, args []string) {
	search, _ := cmd.Flags().GetString("search")
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	posts, err := newAPIClient().ListPosts()
	if err != nil {
		outputErrorAndExit("Error fetching posts: %v", err)
	}

	index := client.NewPostIndex()
	index.SetAll(posts)
	index.SetQuery(search)
	index.SetPageSize(pageSize)
	index.SetPage(page)

	totalPages := index.TotalPages()
	if totalPages == 0 {
		fmt.Println("No posts found")
		return
	}
	if page < 1 || page > totalPages {
		outputErrorAndExit("Page %d out of range (1-%d)", page, totalPages)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Title", "Author", "Created"})
	for _, post := range index.Displayed() {
		table.Append([]string{
			strconv.FormatInt(post.ID, 10),
			post.Title,
			post.Author.Username,
			post.CreatedAt.Format("2006-01-02"),
		})
	}
	table.Render()

	color.New(color.Faint).Printf("page %d/%d (%d posts)\n", index.Page(), totalPages, index.Total())
}

func runView(cmd *cobra.Command, args []string) {
	postID := parsePostID(args[0])

	post, err := newAPIClient().GetPost(postID)
	if err != nil {
		outputErrorAndExit("Error fetching post: %v", err)
	}

	color.New(color.Bold).Println(post.Title)
	color.New(color.Faint).Printf("by %s on %s\n\n", post.Author.Username, post.CreatedAt.Format("2006-01-02"))
	fmt.Println(post.Content)
	if post.ImageURL != nil {
		fmt.Printf("\nimage: %s\n", *post.ImageURL)
	}
}

func runCreate(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	imagePath, _ := cmd.Flags().GetString("image")

	session, err := requireSession()
	if err != nil {
		outputErrorAndExit("%v", err)
	}

	post, err := newAPIClient().CreatePost(session.Token, title, content, imagePath)
	if err != nil {
		outputErrorAndExit("Error creating post: %v", err)
	}

	color.Green("Created post %d", post.ID)
}

func runEdit(cmd *cobra.Command, args []string) {
	postID := parsePostID(args[0])
	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	imagePath, _ := cmd.Flags().GetString("image")

	session, err := requireSession()
	if err != nil {
		outputErrorAndExit("%v", err)
	}

	post, err := newAPIClient().UpdatePost(session.Token, postID, title, content, imagePath)
	if err != nil {
		outputErrorAndExit("Error updating post: %v", err)
	}

	color.Green("Updated post %d", post.ID)
}

func runDelete(cmd *cobra.Command, args []string) {
	postID := parsePostID(args[0])

	session, err := requireSession()
	if err != nil {
		outputErrorAndExit("%v", err)
	}

	if err := newAPIClient().DeletePost(session.Token, postID); err != nil {
		outputErrorAndExit("Error deleting post: %v", err)
	}

	color.Green("Deleted post %d", postID)
}

func parsePostID(arg string) int64 {
	postID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		outputErrorAndExit("Invalid post id %q", arg)
	}
	return postID
}
