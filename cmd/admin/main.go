// Command admin is an interactive console for managing blog posts. It
// drives the same editing workflow the web admin uses: list, create,
// edit, and delete with an explicit confirm step.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/editor"
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/repository"
	"inkwell/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	notifications.InitRedis(cfg.RedisURL)
	notifier := notifications.NewNotifier(notifications.GetClient())

	repo := repository.NewPostRepository(db)
	session := editor.NewSession(service.NewPostService(repo, notifier))

	ctx := context.Background()
	if err := session.Refresh(ctx); err != nil {
		fmt.Printf("warning: could not load posts: %v\n", err)
	}

	fmt.Println("Inkwell admin console. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s]> ", session.View())
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "help":
			printHelp()
		case "quit", "exit":
			return
		case "list":
			printPosts(session.Visible())
		case "refresh":
			runOrReport(session.Refresh(ctx))
			printPosts(session.Visible())
		case "search":
			session.SetSearch(arg)
			printPosts(session.Visible())
		case "filter":
			category := models.Category(arg)
			if arg == "" {
				category = models.CategoryAll
			}
			if category != models.CategoryAll && !category.Valid() {
				fmt.Println("unknown category; use All, Web Design, Technology, History or Personal Life")
				continue
			}
			session.SetCategoryFilter(category)
			printPosts(session.Visible())
		case "new":
			session.StartCreate()
			fmt.Println("drafting a new post; use 'set <field> <value>' then 'submit'")
		case "edit":
			post, ok := pickPost(session, arg)
			if !ok {
				continue
			}
			session.StartEdit(post)
			fmt.Printf("editing %q; use 'set <field> <value>' then 'submit'\n", post.Title)
		case "show":
			printDraft(session)
		case "set":
			setField(session, arg)
		case "submit":
			post, err := session.Submit(ctx)
			if err != nil {
				fmt.Printf("submit failed: %v\n", err)
				continue
			}
			fmt.Printf("saved %q (%s)\n", post.Title, post.Slug)
		case "cancel":
			session.Cancel()
		case "delete":
			post, ok := pickPost(session, arg)
			if !ok {
				continue
			}
			session.RequestDelete(post.ID)
			fmt.Printf("about to delete %q; type 'confirm' to proceed or 'abort' to keep it\n", post.Title)
		case "confirm":
			runOrReport(session.ConfirmDelete(ctx))
		case "abort":
			session.CancelDelete()
		default:
			fmt.Printf("unknown command %q; type 'help'\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  list                  show posts (respects search/filter)
  refresh               reload posts from the database
  search <text>         filter by title/excerpt text (empty to clear)
  filter <category>     filter by category (All clears)
  new                   start a new draft
  edit <n>              edit post number n from the list
  show                  print the current draft
  set <field> <value>   field: title|slug|excerpt|content|category|readtime
  submit                save the draft
  cancel                discard the draft
  delete <n>            request deletion of post number n
  confirm / abort       resolve a pending delete
  quit`)
}

func printPosts(posts []*models.Post) {
	if len(posts) == 0 {
		fmt.Println("no posts")
		return
	}
	for i, p := range posts {
		fmt.Printf("%2d. %-50s %-13s %s\n", i+1, p.Title, p.Category, p.PublishedAt.Format("2006-01-02"))
	}
}

func printDraft(session *editor.Session) {
	d := session.Draft()
	fmt.Printf("title:    %s\nslug:     %s\ncategory: %s\nreadtime: %d\nexcerpt:  %s\ncontent:  %s\n",
		d.Title, d.Slug, d.Category, d.ReadTime, d.Excerpt, d.Content)
}

func pickPost(session *editor.Session, arg string) (*models.Post, bool) {
	posts := session.Visible()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(posts) {
		fmt.Printf("pick a post number between 1 and %d\n", len(posts))
		return nil, false
	}
	return posts[n-1], true
}

func setField(session *editor.Session, arg string) {
	field, value, _ := strings.Cut(arg, " ")
	value = strings.TrimSpace(value)

	switch field {
	case "title":
		session.SetTitle(value)
	case "slug":
		session.SetSlug(value)
	case "excerpt":
		session.SetExcerpt(value)
	case "content":
		session.SetContent(value)
	case "category":
		category := models.Category(value)
		if !category.Valid() {
			fmt.Println("unknown category; use Web Design, Technology, History or Personal Life")
			return
		}
		session.SetCategory(category)
	case "readtime":
		session.SetReadTime(value)
	default:
		fmt.Printf("unknown field %q\n", field)
		return
	}
	printDraft(session)
}

func runOrReport(err error) {
	if err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
