package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leofalp/llmsdk/internal/utils"
	"github.com/leofalp/llmsdk/providers/ai/openai"
	slogobs "github.com/leofalp/llmsdk/providers/observability/slog"
)

type imageOptions struct {
	root *rootOptions

	model          string
	n              int
	quality        string
	size           string
	style          string
	responseFormat string
	user           string

	fromFile  string
	baseURL   string
	outputDir string
	timeout   time.Duration
	dryRun    bool
}

func newImageCmd(root *rootOptions) *cobra.Command {
	opts := &imageOptions{root: root}

	cmd := &cobra.Command{
		Use:   "image [prompt]",
		Short: "Generate images from a prompt",
		Long: "Generate images with the images/generations endpoint.\n" +
			"Only flags that are set explicitly are sent; the API applies its defaults to the rest.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.model, "model", openai.DefaultImageModel.String(), "image model (dall-e-3)")
	flags.IntVar(&opts.n, "n", 1, "number of images to generate (1-10)")
	flags.StringVar(&opts.quality, "quality", openai.DefaultImageQuality.String(), "image quality (standard, hd)")
	flags.StringVar(&opts.size, "size", openai.DefaultImageSize.String(), "image size (1024x1024, 1792x1024, 1024*1792)")
	flags.StringVar(&opts.style, "style", openai.DefaultImageStyle.String(), "image style (vivid, natural)")
	flags.StringVar(&opts.responseFormat, "response-format", openai.DefaultImageResponseFormat.String(), "response format (url, b64_json)")
	flags.StringVar(&opts.user, "user", "", "end-user identifier for abuse monitoring")
	flags.StringVar(&opts.fromFile, "from-file", "", "read the request from a JSON file instead of flags")
	flags.StringVar(&opts.baseURL, "base-url", "", "API base URL (default: OPENAI_API_BASE_URL or "+openai.DefaultBaseURL+")")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "write generated images into this directory")
	flags.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "HTTP timeout for the request and downloads")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the request body without sending it")

	return cmd
}

func (o *imageOptions) run(cmd *cobra.Command, args []string) error {
	request, err := o.buildRequest(cmd, args)
	if err != nil {
		return err
	}

	if o.dryRun {
		return printJSON(cmd, request)
	}

	httpClient := &http.Client{Timeout: o.timeout}
	client := newClient(o.root, o.baseURL, httpClient)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	response, err := client.CreateImage(ctx, request)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created: %s\n", time.Unix(response.Created, 0).UTC().Format(time.RFC3339))
	for i, image := range response.Data {
		fmt.Fprintf(out, "[%d] revised prompt: %s\n", i, image.RevisedPrompt)
		if image.URL != nil {
			fmt.Fprintf(out, "[%d] url: %s\n", i, *image.URL)
		}

		if o.outputDir == "" {
			continue
		}
		path, err := saveImage(ctx, httpClient, o.outputDir, response.Created, i, image)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "[%d] saved: %s\n", i, path)
	}
	return nil
}

// buildRequest assembles the request from --from-file or from the prompt
// arguments plus every flag the user set explicitly.
func (o *imageOptions) buildRequest(cmd *cobra.Command, args []string) (openai.CreateImageRequest, error) {
	var request openai.CreateImageRequest

	if o.fromFile != "" {
		if len(args) > 0 {
			return request, errors.New("a prompt argument cannot be combined with --from-file")
		}
		data, err := os.ReadFile(o.fromFile)
		if err != nil {
			return request, fmt.Errorf("read request file: %w", err)
		}
		if err := json.Unmarshal(data, &request); err != nil {
			return request, fmt.Errorf("parse request file %s: %w", o.fromFile, err)
		}
		return request, nil
	}

	builder := openai.NewCreateImageRequestBuilder().Prompt(strings.TrimSpace(strings.Join(args, " ")))
	flags := cmd.Flags()

	if flags.Changed("model") {
		model, err := openai.ParseImageModel(o.model)
		if err != nil {
			return request, fmt.Errorf("--model: %w", err)
		}
		builder.Model(model)
	}
	if flags.Changed("n") {
		builder.N(o.n)
	}
	if flags.Changed("quality") {
		quality, err := openai.ParseImageQuality(o.quality)
		if err != nil {
			return request, fmt.Errorf("--quality: %w", err)
		}
		builder.Quality(quality)
	}
	if flags.Changed("size") {
		size, err := openai.ParseImageSize(o.size)
		if err != nil {
			return request, fmt.Errorf("--size: %w", err)
		}
		builder.Size(size)
	}
	if flags.Changed("style") {
		style, err := openai.ParseImageStyle(o.style)
		if err != nil {
			return request, fmt.Errorf("--style: %w", err)
		}
		builder.Style(style)
	}
	if flags.Changed("response-format") {
		format, err := openai.ParseImageResponseFormat(o.responseFormat)
		if err != nil {
			return request, fmt.Errorf("--response-format: %w", err)
		}
		builder.ResponseFormat(format)
	}
	if flags.Changed("user") {
		builder.User(o.user)
	}

	return builder.Build()
}

// saveImage writes one generated image, decoding inline base64 data or
// downloading it from its URL.
func saveImage(ctx context.Context, httpClient *http.Client, dir string, created int64, index int, image openai.ImageObject) (string, error) {
	var data []byte
	switch {
	case image.B64JSON != nil:
		decoded, err := base64.StdEncoding.DecodeString(*image.B64JSON)
		if err != nil {
			return "", fmt.Errorf("decode image %d: %w", index, err)
		}
		data = decoded
	case image.URL != nil:
		downloaded, err := utils.DoGet(ctx, httpClient, *image.URL)
		if err != nil {
			return "", fmt.Errorf("download image %d: %w", index, err)
		}
		data = downloaded
	default:
		return "", fmt.Errorf("image %d carries neither b64_json nor url", index)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("image-%d-%d.png", created, index))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image %d: %w", index, err)
	}
	slog.Debug("image saved", "path", path, "bytes", len(data))
	return path, nil
}

// newClient configures an API client from the environment and flags.
func newClient(root *rootOptions, baseURL string, httpClient *http.Client) *openai.Client {
	client := openai.New().WithHttpClient(httpClient)
	if baseURL != "" {
		client.WithBaseURL(baseURL)
	}
	if root.verbose {
		client.WithObserver(slogobs.New(slog.Default()))
	}
	return client
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
