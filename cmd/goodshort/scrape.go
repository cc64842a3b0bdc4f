package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/goodshort-api/internal/catalog"
	"github.com/JakeFAU/goodshort-api/internal/goodshort"
)

type scrapeFlags struct {
	lang    string
	channel string
	token   string
	bookID  string
}

// scrapeArgs is the number of positional arguments each endpoint takes.
var scrapeArgs = map[string]int{
	goodshort.EndpointNavChannel: 0,
	goodshort.EndpointHome:       0,
	goodshort.EndpointSearch:     1,
	goodshort.EndpointHot:        0,
	goodshort.EndpointBook:       1,
	goodshort.EndpointChapters:   1,
	goodshort.EndpointPlay:       1,
	goodshort.EndpointStream:     1,
}

func newScrapeCmd() *cobra.Command {
	var flags scrapeFlags

	cmd := &cobra.Command{
		Use:   "scrape <endpoint> [arg]",
		Short: "Run one endpoint and print its records as JSON",
		Long: `Fetches a single upstream page and prints what the extractor read from it.
Endpoints: navChannel, home, search <query>, hot, book <id>, chapters <id>,
play <chapterId> --book <id>, m3u8 <chapterId> --book <id>.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			return runScrape(cmd.Context(), appInstance.Catalog(), flags, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.lang, "lang", "", "upstream language (default from config)")
	cmd.Flags().StringVar(&flags.channel, "channel", "", "channel id for home")
	cmd.Flags().StringVar(&flags.token, "token", "", "token passed to chapters")
	cmd.Flags().StringVar(&flags.bookID, "book", "", "book id for play and m3u8")

	return cmd
}

func runScrape(ctx context.Context, svc *catalog.Service, flags scrapeFlags, args []string, out io.Writer) error {
	endpoint, rest := args[0], args[1:]
	want, ok := scrapeArgs[endpoint]
	if !ok {
		return fmt.Errorf("unknown endpoint %q (want one of %s)", endpoint, strings.Join(scrapeEndpoints(), ", "))
	}
	if len(rest) != want {
		return fmt.Errorf("%s takes %d argument(s), got %d", endpoint, want, len(rest))
	}

	records, err := scrapeOne(ctx, svc, endpoint, flags, rest)
	if err != nil {
		return fmt.Errorf("scrape %s: %w", endpoint, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func scrapeOne(ctx context.Context, svc *catalog.Service, endpoint string, f scrapeFlags, args []string) (any, error) {
	switch endpoint {
	case goodshort.EndpointNavChannel:
		return svc.NavChannels(ctx, f.lang)
	case goodshort.EndpointHome:
		return svc.Home(ctx, f.lang, f.channel)
	case goodshort.EndpointSearch:
		return svc.Search(ctx, f.lang, args[0])
	case goodshort.EndpointHot:
		return svc.Hot(ctx, f.lang)
	case goodshort.EndpointBook:
		return svc.Book(ctx, args[0], f.lang)
	case goodshort.EndpointChapters:
		return svc.Chapters(ctx, args[0], f.lang, f.token)
	case goodshort.EndpointPlay:
		return svc.Play(ctx, args[0], f.bookID, f.lang)
	default:
		return svc.Stream(args[0], f.bookID)
	}
}

func scrapeEndpoints() []string {
	return []string{
		goodshort.EndpointNavChannel,
		goodshort.EndpointHome,
		goodshort.EndpointSearch,
		goodshort.EndpointHot,
		goodshort.EndpointBook,
		goodshort.EndpointChapters,
		goodshort.EndpointPlay,
		goodshort.EndpointStream,
	}
}
