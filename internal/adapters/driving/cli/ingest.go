package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
)

var (
	ingestCompany string
	ingestVersion string
	ingestURI     string
	ingestJSON    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the content store",
	Long: `Stores a document, chunks it, and indexes the chunks for retrieval.
Content is addressed by SHA-256: ingesting identical bytes for the same
company resolves to the existing document instead of creating a duplicate.

Provide either a local file path or --uri for remote content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestCompany, "company", "c", "", "company the document belongs to (required)")
	ingestCmd.Flags().StringVar(&ingestVersion, "version-label", "", "filing version label, e.g. q3-2025 (required)")
	ingestCmd.Flags().StringVar(&ingestURI, "uri", "", "remote location to fetch the document from")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output result as JSON")
	_ = ingestCmd.MarkFlagRequired("company")
	_ = ingestCmd.MarkFlagRequired("version-label")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	req := driving.IngestRequest{
		CompanyID:    ingestCompany,
		VersionLabel: ingestVersion,
		SourceURI:    ingestURI,
	}

	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		req.Bytes = data
		req.SourceURI = ""
	} else if ingestURI == "" {
		return errors.New("provide a file path or --uri")
	}

	result, err := ingestService.Ingest(context.Background(), req)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if ingestJSON {
		data, err := json.MarshalIndent(map[string]string{
			"document_id": result.DocumentID,
			"status":      string(result.Status),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	switch result.Status {
	case driving.IngestExists:
		cmd.Printf("Already ingested as document %s\n", result.DocumentID)
	default:
		cmd.Printf("Ingested document %s\n", result.DocumentID)
	}
	return nil
}
