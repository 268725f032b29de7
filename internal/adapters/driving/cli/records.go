package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sifter/internal/adapters/driven/storage/file"
)

var (
	recordsJSON      bool
	importIncomplete bool
)

var errNoRecords = errors.New("record service not configured")

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect and import records",
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every record",
	Args:  cobra.NoArgs,
	RunE:  runRecordsList,
}

var recordsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsGet,
}

var recordsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import records from a file into the record store",
	Long: `Reads records from a JSON, YAML or TOML file and saves them into the
configured SQLite record store. Records with an existing ID are replaced in
place; new records are appended.

The collection is marked complete unless --partial is given, which stops
periodic refreshing in running sessions.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordsImport,
}

var recordsReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload records from the source and rebuild the index",
	Args:  cobra.NoArgs,
	RunE:  runRecordsReload,
}

func init() {
	recordsListCmd.Flags().BoolVar(&recordsJSON, "json", false, "output records as JSON")
	recordsGetCmd.Flags().BoolVar(&recordsJSON, "json", false, "output the record as JSON")
	recordsImportCmd.Flags().BoolVar(&importIncomplete, "partial", false, "leave the collection marked incomplete")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsGetCmd)
	recordsCmd.AddCommand(recordsImportCmd)
	recordsCmd.AddCommand(recordsReloadCmd)
	rootCmd.AddCommand(recordsCmd)
}

func runRecordsList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errNoRecords
	}

	records, err := recordService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	if recordsJSON {
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records.")
		return nil
	}
	title := titleField()
	for _, r := range records {
		if t := r.Field(title); t != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.ID, t)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), r.ID)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d records", len(records))
	if !recordService.Loaded() {
		fmt.Fprint(cmd.OutOrStdout(), " (collection still loading)")
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func runRecordsGet(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errNoRecords
	}

	rec, err := recordService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if recordsJSON {
		return printJSON(cmd, rec)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", rec.ID)
	for _, name := range rec.FieldNames() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, rec.Field(name))
	}
	return nil
}

func runRecordsImport(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errNoRecords
	}

	records, err := file.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	if err := recordService.Import(cmd.Context(), records, !importIncomplete); err != nil {
		return fmt.Errorf("failed to import records: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records.\n", len(records))
	return nil
}

func runRecordsReload(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errNoRecords
	}

	if err := recordService.Reload(cmd.Context()); err != nil {
		return err
	}
	records, err := recordService.List(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reloaded %d records.\n", len(records))
	return nil
}
