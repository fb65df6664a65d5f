package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/replybot/internal/adapters/driving/tui"
	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
)

const linePrompt = "> "

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the bot interactively",
	Long: `Start an interactive chat session.

On a terminal this opens a full-screen interface. When input is piped, or
with --plain, each input line is answered on its own output line.

Examples:
  replybot chat
  printf 'hello\nbye\n' | replybot chat`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().Bool("plain", false, "use line mode even on a terminal")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	plain, err := cmd.Flags().GetBool("plain")
	if err != nil {
		return fmt.Errorf("getting plain flag: %w", err)
	}

	chat, err := trainChat(cmd.Context())
	if err != nil {
		return err
	}
	return chatSession(cmd, chat, plain)
}

// chatSession runs the full-screen chat on a terminal and line mode otherwise.
func chatSession(cmd *cobra.Command, chat driving.ChatService, plain bool) error {
	in := cmd.InOrStdin()
	if !plain && isTerminal(in) {
		app, err := tui.NewApp(&tui.Ports{Chat: chat})
		if err != nil {
			return err
		}
		return app.WithContext(cmd.Context()).Run()
	}
	return runLineChat(cmd.Context(), in, cmd.OutOrStdout(), cmd.ErrOrStderr(), chat)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runLineChat answers one query per input line until EOF or cancellation.
// Blank lines are skipped. Validation failures are reported and the
// session continues; internal failures end it.
func runLineChat(ctx context.Context, in io.Reader, out, errOut io.Writer, chat driving.ChatService) error {
	interactive := isTerminal(in)
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, linePrompt)
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		answer, err := chat.Answer(ctx, domain.NewAnswerRequest(line))
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			return err
		}
		fmt.Fprintln(out, answer.Label)
	}
	return scanner.Err()
}
