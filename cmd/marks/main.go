package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/MrSnakeDoc/marks/internal/client"
	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/picker"
)

func main() {
	app := &cli.App{
		Name:  "marks",
		Usage: "personal bookmark catalog client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "marksd server URL (overrides config file)",
				EnvVars: []string{"MARKS_SERVER"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all bookmarks",
				Action: func(c *cli.Context) error {
					return runList(c.Context, newClient(c))
				},
			},
			{
				Name:      "add",
				Usage:     "add a bookmark",
				ArgsUsage: "[url] [label]",
				Action: func(c *cli.Context) error {
					return runAdd(c.Context, newClient(c), c.Args().Get(0), c.Args().Get(1))
				},
			},
			{
				Name:  "search",
				Usage: "fuzzy-search bookmarks interactively",
				Action: func(c *cli.Context) error {
					return runSearch(c.Context, newClient(c))
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a bookmark by id",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
					if err != nil {
						return fmt.Errorf("delete needs a numeric bookmark id")
					}
					return runDelete(c.Context, newClient(c), id)
				},
			},
		},
		// No subcommand defaults to interactive search, like fzf flows.
		Action: func(c *cli.Context) error {
			return runSearch(c.Context, newClient(c))
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(c *cli.Context) *client.Client {
	if server := c.String("server"); server != "" {
		return client.New(server)
	}

	if path, err := client.DefaultConfigPath(); err == nil {
		if cfg, err := client.LoadConfig(path); err == nil {
			return client.New(cfg.ServerURL)
		}
	}
	return client.New(client.DefaultServerURL)
}

func runList(ctx context.Context, c *client.Client) error {
	bookmarks, err := c.List(ctx)
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks found")
		return nil
	}

	fmt.Printf("Found %d bookmarks:\n\n", len(bookmarks))
	for _, b := range bookmarks {
		fmt.Printf("[%d] %s\n", b.ID, displayLabel(b))
		fmt.Printf("\t%s\n\n", b.URL)
	}
	return nil
}

func runAdd(ctx context.Context, c *client.Client, rawURL, label string) error {
	reader := bufio.NewReader(os.Stdin)

	if rawURL == "" {
		fmt.Print("Enter URL: ")
		line, _ := reader.ReadString('\n')
		rawURL = strings.TrimSpace(line)
		if rawURL == "" {
			return fmt.Errorf("URL cannot be empty")
		}

		fmt.Print("Enter label (optional): ")
		line, _ = reader.ReadString('\n')
		label = strings.TrimSpace(line)
	}

	// Scheme prefixing and label fallback are client-side conveniences;
	// the server stores what it is given.
	rawURL = ensureScheme(rawURL)
	if label == "" {
		label = fallbackLabel(rawURL)
	}

	created, err := c.Add(ctx, label, rawURL)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.IsConflict() {
			fmt.Println(apiErr.Detail)
			return nil
		}
		return err
	}

	fmt.Printf("✓ Added bookmark [%d]: %s\n", created.ID, displayLabel(*created))
	return nil
}

func runSearch(ctx context.Context, c *client.Client) error {
	bookmarks, err := c.List(ctx)
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks found")
		return nil
	}

	selected, err := picker.Run(bookmarks)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}

	fmt.Println("\nSelected Bookmark:")
	fmt.Printf("   ID: %d\n", selected.ID)
	fmt.Printf("   Label: %s\n", displayLabel(*selected))
	fmt.Printf("   URL: %s\n", selected.URL)

	fmt.Print("\n[o]pen URL, [c]opy URL, [d]elete, or [Enter] to exit: ")
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "o":
		return openURL(selected.URL)
	case "c":
		return copyToClipboard(selected.URL)
	case "d":
		fmt.Printf("Delete '%s'? [y/N]: ", displayLabel(*selected))
		confirm, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(confirm)) == "y" {
			return runDelete(ctx, c, selected.ID)
		}
	}
	return nil
}

func runDelete(ctx context.Context, c *client.Client, id int64) error {
	confirmation, err := c.Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %s\n", confirmation)
	return nil
}

func displayLabel(b domain.Bookmark) string {
	if b.Label == "" {
		return "No Label"
	}
	return b.Label
}

// ensureScheme prefixes https:// when the input has no scheme.
func ensureScheme(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

// fallbackLabel derives a label from the URL host.
func fallbackLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
