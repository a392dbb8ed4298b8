package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

var (
	searchPage int
	searchSize int
	searchJSON bool
	searchFull bool
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword...]",
	Short: "Search the product catalog",
	Long: `Searches products by keyword, one page at a time.

Multiple arguments are joined with spaces. Without a keyword the first page of
the whole catalog is shown. Page sizes are 10, 20 or 50.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "page number, starting at 1")
	searchCmd.Flags().IntVarP(&searchSize, "size", "s", domain.DefaultPageSize, "results per page (10, 20 or 50)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchFull, "full", false, "do not shorten descriptions")
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the JSON shape printed with --json.
type searchOutput struct {
	Items     []domain.Product `json:"items"`
	Total     int64            `json:"total"`
	Page      int              `json:"page"`
	Size      int              `json:"size"`
	PageCount int              `json:"page_count"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return fmt.Errorf("search %w", errNotConfigured)
	}
	if !domain.IsPageSizeOption(searchSize) {
		return fmt.Errorf("%w: --size must be one of %v", domain.ErrInvalidInput, domain.PageSizeOptions)
	}
	if searchPage < 1 {
		return fmt.Errorf("%w: --page must be at least 1", domain.ErrInvalidInput)
	}

	pager := domain.NewPager()
	pager.SetPageSize(searchSize)
	pager.SetPage(searchPage)

	keyword := strings.Join(args, " ")
	result, err := searchService.Search(commandContext(cmd), pager.Query(keyword))
	if err != nil {
		explainFailure(cmd, err)
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, pager, result)
	}
	return outputSearchTable(cmd, pager, result)
}

// explainFailure prints a hint for failures the user can act on.
func explainFailure(cmd *cobra.Command, err error) {
	te, ok := domain.AsTransportError(err)
	if !ok {
		return
	}
	switch {
	case te.IsRateLimited():
		cmd.PrintErrln("The server is throttling this client. Wait a few seconds and try again.")
	case te.IsUnauthorized():
		cmd.PrintErrln("The server rejected the client identifier. Run 'prodsearch identity reset' to get a new one.")
	case !te.HasResponse():
		cmd.PrintErrln("The search endpoint could not be reached. Check base_url and your network.")
	}
}

func outputSearchJSON(cmd *cobra.Command, pager *domain.Pager, result domain.SearchResult) error {
	items := result.Items
	if items == nil {
		items = []domain.Product{}
	}
	data, err := json.MarshalIndent(searchOutput{
		Items:     items,
		Total:     result.Total,
		Page:      pager.Page,
		Size:      pager.PageSize,
		PageCount: pager.PageCount(result.Total),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, pager *domain.Pager, result domain.SearchResult) error {
	if len(result.Items) == 0 {
		if result.Total > 0 {
			cmd.Printf("No products on page %d (%d pages).\n", pager.Page, pager.PageCount(result.Total))
			return nil
		}
		cmd.Println("No products found.")
		return nil
	}

	width := descriptionWidth(cmd.OutOrStdout())
	rows := make([][]string, len(result.Items))
	for i, p := range result.Items {
		desc := oneLine(p.Description)
		if !searchFull {
			desc = truncate(desc, width)
		}
		rows[i] = []string{p.SKU, p.Title, desc}
	}

	if err := renderTable(cmd.OutOrStdout(), []string{"SKU", "Title", "Description"}, rows); err != nil {
		return err
	}

	cmd.Println()
	cmd.Printf("Page %d of %d, %d products\n", pager.Page, pager.PageCount(result.Total), result.Total)
	return nil
}
