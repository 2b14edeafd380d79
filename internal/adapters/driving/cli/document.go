package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage ingested documents",
	Long:  `List, inspect, or delete ingested documents and their chunks.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list [company-id]",
	Short: "List documents for a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentChunksCmd = &cobra.Command{
	Use:   "chunks [doc-id]",
	Short: "List a document's chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentChunks,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentChunksCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if docStore == nil {
		return errors.New("document store not configured")
	}

	companyID := args[0]
	ctx := context.Background()

	docs, err := docStore.ListDocuments(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for company: %s\n", companyID)
		return nil
	}

	cmd.Printf("Documents for company %s:\n\n", companyID)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Version: %s\n", docs[i].VersionLabel)
		cmd.Printf("    Status:  %s\n", docs[i].Status)
		cmd.Printf("    Created: %s\n", docs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if docStore == nil {
		return errors.New("document store not configured")
	}

	docID := args[0]
	ctx := context.Background()

	doc, err := docStore.GetDocument(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Company:  %s\n", doc.CompanyID)
	cmd.Printf("  Version:  %s\n", doc.VersionLabel)
	cmd.Printf("  Status:   %s\n", doc.Status)
	cmd.Printf("  Hash:     %s\n", doc.ContentHash)
	if doc.SourceURI != "" {
		cmd.Printf("  Source:   %s\n", doc.SourceURI)
	}
	if doc.PageCount > 0 {
		cmd.Printf("  Pages:    %d\n", doc.PageCount)
	}
	cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

func runDocumentChunks(cmd *cobra.Command, args []string) error {
	if docStore == nil {
		return errors.New("document store not configured")
	}

	docID := args[0]
	ctx := context.Background()

	chunks, err := docStore.GetChunks(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get chunks: %w", err)
	}

	if len(chunks) == 0 {
		cmd.Printf("No chunks found for document: %s\n", docID)
		return nil
	}

	for i := range chunks {
		cmd.Printf("[%d] %s", chunks[i].Index, chunks[i].ID)
		if chunks[i].PageNumber > 0 {
			cmd.Printf(" (page %d)", chunks[i].PageNumber)
		}
		cmd.Println()
		if chunks[i].SectionTitle != "" {
			cmd.Printf("    Section: %s\n", chunks[i].SectionTitle)
		}
		cmd.Printf("    Tokens: %d\n", chunks[i].TokenCount)
		cmd.Printf("    %s\n", preview(chunks[i].Text, 120))
		cmd.Println()
	}

	cmd.Printf("Total: %d chunks\n", len(chunks))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if docStore == nil {
		return errors.New("document store not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if err := docStore.DeleteDocument(ctx, docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", docID)
	return nil
}

// preview trims text to a single display line of at most max runes.
func preview(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
