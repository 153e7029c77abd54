package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendata-tools/govcat/pkg/catalog"
	"github.com/opendata-tools/govcat/pkg/dataset"
	"github.com/opendata-tools/govcat/pkg/export"
	"github.com/opendata-tools/govcat/pkg/formats"
)

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		byQuery    bool
		formatsStr string
		encoding   string
		output     string
		exportFmt  string
		preview    int
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <identifier>",
		Short: "Download and parse a dataset's distributions",
		Long: `Download and parse one dataset's distributions.

The dataset's distribution list is filtered to the acceptable formats and
ordered by the priority list; each selected distribution is downloaded,
decoded (text encodings are detected statistically unless --encoding forces
one), and parsed into a table. A distribution that cannot be fetched or
parsed degrades to a placeholder without failing the rest.

When the reference matches several datasets, an interactive picker opens on
a terminal; otherwise the ambiguity is reported with the matching
identifiers.

Use --query to treat the argument as a search query instead of an
identifier, and --output to export the parsed tables to a directory with a
run manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := c.loaderFor(formatsStr)
			if err != nil {
				return err
			}
			if encoding == "" {
				encoding = c.Config.Encoding
			}

			client := c.newCatalogClient(cmd, noCache)
			defer client.Close()

			records, err := c.lookupRecords(cmd, client, args[0], byQuery)
			if err != nil {
				return err
			}

			res, err := c.loadOne(cmd, loader, records, dataset.LoadOptions{Encoding: encoding})
			if err != nil {
				return err
			}
			printResult(res, preview)

			if output != "" {
				manifest, err := export.Write(res, export.Options{Dir: output, Format: exportFmt})
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				printSuccess("Exported %d files to %s (run %s)", len(manifest.Files), output, manifest.RunID)
				for _, f := range manifest.Files {
					printFile(f.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&byQuery, "query", "q", false, "treat the argument as a search query")
	cmd.Flags().StringVarP(&formatsStr, "formats", "f", "", "format priority list (e.g. csv,xlsx,xml)")
	cmd.Flags().StringVarP(&encoding, "encoding", "e", "", "force a charset label for text formats")
	cmd.Flags().StringVarP(&output, "output", "o", "", "export parsed tables to this directory")
	cmd.Flags().StringVar(&exportFmt, "export-format", "", "exported table format: csv (default) or json")
	cmd.Flags().IntVar(&preview, "preview", 5, "table preview rows (0 disables)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")

	return cmd
}

// loaderFor builds the loader with the flag-supplied priority list, falling
// back to the configured one.
func (c *CLI) loaderFor(formatsStr string) (*dataset.Loader, error) {
	if formatsStr == "" {
		return c.newLoader()
	}
	priority, err := formats.ParsePriority(formatsStr)
	if err != nil {
		return nil, err
	}
	return dataset.NewLoader(nil, priority, c.Logger), nil
}

// lookupRecords resolves the argument to candidate records, by identifier or
// by keyword search.
func (c *CLI) lookupRecords(cmd *cobra.Command, client *catalog.Client, ref string, byQuery bool) ([]catalog.DatasetRecord, error) {
	spinner := newSpinner(cmd.Context(), fmt.Sprintf("Looking up %q...", ref))
	spinner.Start()
	defer spinner.Stop()

	if byQuery {
		return client.Search(cmd.Context(), ref, catalog.SearchOptions{})
	}
	return client.DatasetByID(cmd.Context(), ref)
}

// loadOne loads the single dataset behind records, recovering from an
// ambiguous reference with the interactive picker when a terminal is
// attached.
func (c *CLI) loadOne(cmd *cobra.Command, loader *dataset.Loader, records []catalog.DatasetRecord, opts dataset.LoadOptions) (*dataset.FetchResult, error) {
	res, err := loader.LoadOne(cmd.Context(), records, opts)

	var multi *dataset.MultipleDatasetsError
	if errors.As(err, &multi) {
		picked, pickErr := pickDataset(records)
		if pickErr != nil {
			printWarning("Reference matches %d datasets: %v", len(multi.IDs), multi.IDs)
			return nil, err
		}
		if picked == nil {
			return nil, fmt.Errorf("selection cancelled")
		}
		return loader.Load(cmd.Context(), *picked, opts)
	}
	return res, err
}
