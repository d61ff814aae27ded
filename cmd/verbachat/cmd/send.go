package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entrepeneur4lyf/verbachat/internal/markdown"
	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

var (
	sendFile string
	sendRaw  bool
)

var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send one message and print the conversation",
	Long: `Send a message, a file or both, then print what was sent and the reply.

With no message argument the text is read from stdin when it is piped.
Backend failures are printed as the reply; only local problems such as
an unreadable file or an empty submission exit with an error.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if text == "" {
			piped, err := readPiped(cmd.InOrStdin())
			if err != nil {
				return err
			}
			text = piped
		}

		// nothing leaves the machine for an empty submission, not even the priming GET
		if strings.TrimSpace(text) == "" && sendFile == "" {
			return widget.ErrNothingToSend
		}

		ctrl, err := newController(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}

		if sendFile != "" {
			if err := ctrl.SelectFile(sendFile); err != nil {
				return fmt.Errorf("cannot attach %s: %w", sendFile, err)
			}
		}

		if err := ctrl.Submit(cmd.Context(), text); err != nil {
			return err
		}

		var md *markdown.Renderer
		if !sendRaw {
			md, err = markdown.NewRenderer(markdown.PlainConfig())
			if err != nil {
				return err
			}
		}
		return printTranscript(cmd.OutOrStdout(), ctrl.Transcript(), md)
	},
}

// readPiped returns stdin when it is a pipe or redirect, and "" for a terminal
func readPiped(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// printTranscript writes each message as a header line and its body. A nil
// renderer prints assistant text unchanged, as does a reply with no markdown.
func printTranscript(w io.Writer, messages []widget.Message, md *markdown.Renderer) error {
	for i, m := range messages {
		if i > 0 {
			fmt.Fprintln(w)
		}

		label := "You"
		if m.Sender == widget.SenderAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(w, "%s (%s):\n", label, m.Timestamp())

		body := m.Text
		switch {
		case m.Kind == widget.KindFile:
			body = fmt.Sprintf("📎 %s (%s)", m.DisplayName(), m.MIMEType)
			if m.SourcePath != "" {
				body += " " + m.SourcePath
			}
		case m.Sender == widget.SenderAssistant && !m.Failed && md != nil && markdown.IsMarkdown(m.Text):
			rendered, err := md.Render(m.Text)
			if err != nil {
				return fmt.Errorf("failed to render reply: %w", err)
			}
			body = rendered
		}

		if _, err := fmt.Fprintln(w, body); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	sendCmd.Flags().StringVarP(&sendFile, "file", "f", "", "File to attach")
	sendCmd.Flags().BoolVar(&sendRaw, "raw", false, "Print replies without markdown rendering")
	rootCmd.AddCommand(sendCmd)
}
