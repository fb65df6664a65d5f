package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Answer a single query",
	Long: `Train the pipeline and print the canned response predicted for one query.

Examples:
  replybot ask "hello there"
  replybot ask --json "where is my refund"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("json", false, "print the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("getting json flag: %w", err)
	}

	chat, err := trainChat(cmd.Context())
	if err != nil {
		return err
	}
	return printAnswer(cmd.Context(), cmd.OutOrStdout(), chat, args[0], asJSON)
}

// printAnswer answers query and writes the label, or the whole answer as JSON.
func printAnswer(ctx context.Context, out io.Writer, chat driving.ChatService, query string, asJSON bool) error {
	answer, err := chat.Answer(ctx, domain.NewAnswerRequest(query))
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}
	_, err = fmt.Fprintln(out, answer.Label)
	return err
}
