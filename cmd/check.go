package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// posterWarmCount limits how many posters the check command fetches.
const posterWarmCount = 5

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test the catalog endpoint",
	Long: `Fetch the movie catalog, report how many movies it contains, and
verify a few poster URLs are reachable.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Printf("Testing catalog endpoint at %s...\n", cfg.IMDb.URL)

	catalog, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s (%w)", errorMessage(err), err)
	}

	fmt.Printf("✓ Catalog loaded: %d movies\n", len(catalog.Items))

	count := posterWarmCount
	if count > len(catalog.Items) {
		count = len(catalog.Items)
	}

	fmt.Printf("Fetching %d posters...\n", count)

	sizes := make([]int, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			poster, err := client.FetchPoster(gctx, catalog.Items[i])
			if err != nil {
				return fmt.Errorf("poster for %q: %w", catalog.Items[i].Title, err)
			}
			sizes[i] = len(poster)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		fmt.Printf("  • %s (%d bytes)\n", catalog.Items[i].Title, sizes[i])
	}

	fmt.Println("✓ All posters reachable")
	return nil
}
