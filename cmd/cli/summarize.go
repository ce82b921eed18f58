package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	summarizePrompt  string
	summarizeTimeout time.Duration
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Extract a transcript and print an AI summary without storing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizePrompt, "prompt", "p", "", "summarization instruction (required)")
	summarizeCmd.Flags().DurationVar(&summarizeTimeout, "timeout", 2*time.Minute, "provider request timeout")
	summarizeCmd.MarkFlagRequired("prompt")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), summarizeTimeout)
	defer cancel()

	a := newApp()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	res, err := a.extractor().ExtractReader(f, filepath.Base(args[0]))
	if err != nil {
		return err
	}

	svc := a.summarizer(ctx)
	if svc == nil {
		return errors.New("no AI provider configured")
	}
	summary, err := svc.SummarizeTranscript(ctx, res.Text, summarizePrompt)
	if err != nil {
		return fmt.Errorf("generate summary: %w", err)
	}
	if strings.TrimSpace(summary) == "" {
		return errors.New("provider returned no content")
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)
	return err
}
