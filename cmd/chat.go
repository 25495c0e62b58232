package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/leofalp/llmsdk/providers/ai/openai"
)

type chatOptions struct {
	root    *rootOptions
	baseURL string
	timeout time.Duration
	dryRun  bool
}

func newChatCmd(root *rootOptions) *cobra.Command {
	opts := &chatOptions{root: root}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a chat completion request",
		Long:  "Send a request to the chat/completions endpoint. The request body has no fields yet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "API base URL (default: OPENAI_API_BASE_URL or "+openai.DefaultBaseURL+")")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", time.Minute, "HTTP timeout")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the request body without sending it")

	return cmd
}

func (o *chatOptions) run(cmd *cobra.Command) error {
	request := openai.ChatCompletionRequest{}
	if o.dryRun {
		return printJSON(cmd, request)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := newClient(o.root, o.baseURL, &http.Client{Timeout: o.timeout})
	if _, err := client.ChatCompletion(ctx, request); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "chat completion received")
	return nil
}
