package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
)

var (
	retrieveDocument string
	retrieveCompany  string
	retrieveTopK     int
	retrieveJSON     bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Retrieve evidence chunks for a query",
	Long: `Ranks indexed chunks against the query with hybrid scoring:
lexical token overlap fused with semantic similarity when an embedding
provider is configured.

Scope the query with exactly one of --document or --company. A company
scope covers only that company's most recent completed document.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().StringVarP(&retrieveDocument, "document", "d", "", "limit to one document")
	retrieveCmd.Flags().StringVarP(&retrieveCompany, "company", "c", "", "limit to a company's latest completed document")
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "n", driving.DefaultTopK, "maximum number of results")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	scope, err := scopeFromFlags(retrieveDocument, retrieveCompany)
	if err != nil {
		return err
	}

	opts := driving.RetrievalOptions{TopK: retrieveTopK}
	results, err := retrievalService.Retrieve(context.Background(), args[0], scope, opts)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if retrieveJSON {
		return outputRetrieveJSON(cmd, results)
	}
	return outputRetrieveTable(cmd, results)
}

func outputRetrieveJSON(cmd *cobra.Command, results []domain.RetrievalResult) error {
	type row struct {
		ChunkID       string  `json:"chunk_id"`
		DocumentID    string  `json:"document_id"`
		Index         int     `json:"index"`
		PageNumber    int     `json:"page_number,omitempty"`
		Text          string  `json:"text"`
		LexicalScore  float64 `json:"lexical_score"`
		SemanticScore float64 `json:"semantic_score"`
		FusedScore    float64 `json:"fused_score"`
	}

	rows := make([]row, len(results))
	for i := range results {
		rows[i] = row{
			ChunkID:       results[i].ChunkID,
			DocumentID:    results[i].Chunk.DocumentID,
			Index:         results[i].Chunk.Index,
			PageNumber:    results[i].Chunk.PageNumber,
			Text:          results[i].Chunk.Text,
			LexicalScore:  results[i].LexicalScore,
			SemanticScore: results[i].SemanticScore,
			FusedScore:    results[i].FusedScore,
		}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRetrieveTable(cmd *cobra.Command, results []domain.RetrievalResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] chunk %d (%.2f)", i+1, results[i].Chunk.Index, results[i].FusedScore)
		if results[i].Chunk.PageNumber > 0 {
			cmd.Printf(" page %d", results[i].Chunk.PageNumber)
		}
		cmd.Println()
		if results[i].Chunk.SectionTitle != "" {
			cmd.Printf("      Section: %s\n", results[i].Chunk.SectionTitle)
		}
		cmd.Printf("      %s\n", preview(results[i].Chunk.Text, 160))
		cmd.Println()
	}

	return nil
}
