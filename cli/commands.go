package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"itemserver/catalog"
	"itemserver/client"
	"itemserver/config"
	"itemserver/openapi"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CLI colors and styles
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	headerColor  = color.New(color.FgMagenta, color.Bold)
	subtleColor  = color.New(color.FgHiBlack)
)

// ConfigLoader returns the effective configuration for a command run.
type ConfigLoader func() (*config.Config, error)

// CreateCLICommands creates the item, call and endpoint command groups.
func CreateCLICommands(svc *catalog.Service, load ConfigLoader) []*cobra.Command {
	return []*cobra.Command{
		itemsCommand(svc),
		callCommand(load),
		endpointsCommand(load),
	}
}

func itemsCommand(svc *catalog.Service) *cobra.Command {
	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "Inspect the built-in item catalog",
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List every catalog item",
		Aliases: []string{"ls", "show"},
		RunE: func(cmd *cobra.Command, args []string) error {
			list := svc.GetCallList()
			headerColor.Fprintf(cmd.OutOrStdout(), "\n📦 %d item(s) in catalog:\n\n", len(list.Items))
			return renderItems(cmd.OutOrStdout(), list.Items)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <title>",
		Short: "Look an item up by exact title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := svc.GetCallObject(args[0])
			if item == nil {
				warningColor.Fprintf(cmd.OutOrStdout(), "⚠️  No item titled %q\n", args[0])
				return nil
			}
			return renderItems(cmd.OutOrStdout(), []catalog.Item{*item})
		},
	}

	itemsCmd.AddCommand(listCmd, getCmd)
	return itemsCmd
}

func callCommand(load ConfigLoader) *cobra.Command {
	var serverURL string
	var username, password, token string

	callCmd := &cobra.Command{
		Use:   "call",
		Short: "Call a running item server",
	}
	callCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Base URL of the item API (default from config)")

	newClient := func() (*client.Client, error) {
		cfg, err := load()
		if err != nil {
			return nil, err
		}
		base := cfg.Client.BaseURL
		if serverURL != "" {
			base = serverURL
		}
		return client.New(base, cfg.Client.Timeout()), nil
	}

	getCmd := &cobra.Command{
		Use:   "get <title>",
		Short: "GET get-call-obj for a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			item, err := c.GetCallObject(callContext(cmd), args[0])
			if err != nil {
				return err
			}
			return printItem(cmd.OutOrStdout(), args[0], item)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "GET get-call-list",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			list, err := c.GetCallList(callContext(cmd))
			if err != nil {
				return err
			}
			return renderItems(cmd.OutOrStdout(), list.Items)
		},
	}

	postCmd := &cobra.Command{
		Use:   "post <query>",
		Short: "POST post-call with a username/password body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := askCredentials(cmd, username, password)
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			item, err := c.PostCall(callContext(cmd), args[0], req)
			if err != nil {
				return err
			}
			return printItem(cmd.OutOrStdout(), args[0], item)
		},
	}

	exchangeCmd := &cobra.Command{
		Use:   "exchange",
		Short: "POST exchange-call with a token header and username/password body",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("token") {
				prompt := &survey.Input{
					Message: "X-Authorization token:",
					Help:    "Sent as the X-Authorization header. The server logs it but never checks it.",
				}
				if err := survey.AskOne(prompt, &token); err != nil {
					return fmt.Errorf("prompt token: %w", err)
				}
			}
			req, err := askCredentials(cmd, username, password)
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			list, err := c.ExchangeCall(callContext(cmd), token, req)
			if err != nil {
				return err
			}
			return renderItems(cmd.OutOrStdout(), list.Items)
		},
	}

	for _, cmd := range []*cobra.Command{postCmd, exchangeCmd} {
		cmd.Flags().StringVarP(&username, "username", "u", "", "Username sent in the body")
		cmd.Flags().StringVar(&password, "password", "", "Password sent in the body")
	}
	exchangeCmd.Flags().StringVarP(&token, "token", "t", "", "Value for the X-Authorization header")

	callCmd.AddCommand(getCmd, listCmd, postCmd, exchangeCmd)
	return callCmd
}

// askCredentials prompts for any of username/password not given as a flag.
func askCredentials(cmd *cobra.Command, username, password string) (catalog.UserRequest, error) {
	var qs []*survey.Question
	if !cmd.Flags().Changed("username") {
		qs = append(qs, &survey.Question{
			Name:   "username",
			Prompt: &survey.Input{Message: "Username:"},
		})
	}
	if !cmd.Flags().Changed("password") {
		qs = append(qs, &survey.Question{
			Name:   "password",
			Prompt: &survey.Password{Message: "Password:"},
		})
	}

	answers := struct {
		Username string
		Password string
	}{Username: username, Password: password}
	if len(qs) > 0 {
		if err := survey.Ask(qs, &answers); err != nil {
			return catalog.UserRequest{}, fmt.Errorf("prompt credentials: %w", err)
		}
	}

	return catalog.UserRequest{
		Username: catalog.Text(answers.Username),
		Password: catalog.Text(answers.Password),
	}, nil
}

func endpointsCommand(load ConfigLoader) *cobra.Command {
	endpointsCmd := &cobra.Command{
		Use:   "endpoints",
		Short: "Show the API description (Swagger 2.0)",
	}

	listCmd := &cobra.Command{
		Use:     "list [spec-file]",
		Short:   "List endpoints from a Swagger file, or from the built-in description",
		Aliases: []string{"ls", "show"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var d *openapi.Described
			if len(args) == 1 {
				if !openapi.ValidateOpenAPIFile(args[0]) {
					return fmt.Errorf("invalid OpenAPI specification file: %s", args[0])
				}
				parsed, err := openapi.ParseFile(args[0])
				if err != nil {
					return err
				}
				d = parsed
			} else {
				cfg, err := load()
				if err != nil {
					return err
				}
				parsed, err := openapi.Parse(openapi.Document(cfg.Server.PathPrefix))
				if err != nil {
					return err
				}
				d = parsed
			}
			return renderEndpoints(cmd.OutOrStdout(), d)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [filename]",
		Short: "Write the built-in description to a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "swagger.json"
			if len(args) > 0 {
				filename = args[0]
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := openapi.Export(filename, openapi.Document(cfg.Server.PathPrefix)); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✅ Exported API description to '%s'\n", filename)
			return nil
		},
	}

	endpointsCmd.AddCommand(listCmd, exportCmd)
	return endpointsCmd
}

func printItem(w io.Writer, query string, item *catalog.Item) error {
	if item == nil {
		warningColor.Fprintf(w, "⚠️  Server returned null for %q\n", query)
		return nil
	}
	return renderItems(w, []catalog.Item{*item})
}

// renderItems displays items in a table
func renderItems(w io.Writer, items []catalog.Item) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Title", "Price")
	for i, item := range items {
		table.Append(fmt.Sprintf("%d", i+1), item.Title, formatPrice(item.Price))
	}
	return table.Render()
}

// renderEndpoints displays a parsed API description in a table
func renderEndpoints(w io.Writer, d *openapi.Described) error {
	source := d.Source
	if source != "built-in" {
		source = filepath.Base(source)
	}
	infoColor.Fprintf(w, "API: %s (v%s) from %s\n\n", d.Title, d.Version, source)

	if len(d.Endpoints) == 0 {
		warningColor.Fprintln(w, "⚠️  No endpoints found")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Method", "Path", "Params", "Summary")
	for i, ep := range d.Endpoints {
		summary := ep.Summary
		if len(summary) > 50 {
			summary = summary[:47] + "..."
		}
		table.Append(fmt.Sprintf("%d", i+1), ep.Method, ep.Path, strings.Join(ep.Params, ", "), summary)
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	subtleColor.Fprintln(w, "💡 Use 'itemserver endpoints export' to write the description to a file")
	return nil
}

var pricePrinter = message.NewPrinter(language.English)

// formatPrice groups digits in threes: 3888000 -> 3,888,000.
func formatPrice(price int) string {
	return pricePrinter.Sprintf("%d", price)
}

// Fail prints err in the CLI error style and exits with status 1.
func Fail(err error) {
	errorColor.Fprintf(os.Stderr, "❌ %v\n", err)
	os.Exit(1)
}

// callContext is used by commands run without a cobra context.
func callContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
