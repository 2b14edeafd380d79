package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
)

var (
	verifyDocument   string
	verifyCompany    string
	verifyTranscript string
	verifyJSON       bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [claim]",
	Short: "Verify a claim against indexed documents",
	Long: `Retrieves evidence for the claim and produces a verdict with
citations: VERIFIED, CONTRADICTED, PARTIALLY_VERIFIED, or NOT_FOUND.

Pass a single claim as the argument, or --transcript with a file path
to extract and verify every claim in a call transcript.

Scope verification with exactly one of --document or --company.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyDocument, "document", "d", "", "verify against one document")
	verifyCmd.Flags().StringVarP(&verifyCompany, "company", "c", "", "verify against a company's latest completed document")
	verifyCmd.Flags().StringVarP(&verifyTranscript, "transcript", "t", "", "path to a transcript file to extract claims from")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "output report as JSON")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if verificationService == nil {
		return errors.New("verification service not configured")
	}

	scope, err := scopeFromFlags(verifyDocument, verifyCompany)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var report *driving.VerificationReport
	switch {
	case verifyTranscript != "":
		data, err := os.ReadFile(verifyTranscript)
		if err != nil {
			return fmt.Errorf("reading %s: %w", verifyTranscript, err)
		}
		report, err = verificationService.VerifyTranscript(ctx, string(data), scope)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	case len(args) == 1:
		claim := domain.Claim{Text: args[0], Category: "other"}
		report, err = verificationService.VerifyClaims(ctx, []domain.Claim{claim}, scope)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	default:
		return errors.New("provide a claim or --transcript")
	}

	if verifyJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputReport(cmd, report)
}

func outputReport(cmd *cobra.Command, report *driving.VerificationReport) error {
	for i := range report.Results {
		r := &report.Results[i]

		cmd.Printf("Claim: %s\n", r.Claim.Text)
		cmd.Printf("  Verdict:    %s (confidence %d)\n", r.Verdict, r.Confidence)
		if r.Explanation != "" {
			cmd.Printf("  Reason:     %s\n", r.Explanation)
		}
		if r.Error != "" {
			cmd.Printf("  Error:      %s\n", r.Error)
		}
		for _, c := range r.Citations {
			cmd.Printf("  Citation:   doc %s chunk %s", c.DocumentID, c.ChunkID)
			if c.PageNumber > 0 {
				cmd.Printf(" page %d", c.PageNumber)
			}
			cmd.Println()
			if c.Excerpt != "" {
				cmd.Printf("              %q\n", preview(c.Excerpt, 160))
			}
		}
		cmd.Println()
	}

	s := report.Summary
	cmd.Printf("Summary: %d claims, %d verified, %d contradicted, %d partial, %d not found\n",
		s.TotalClaims, s.Verified, s.Contradicted, s.PartiallyVerified, s.NotFound)
	return nil
}
