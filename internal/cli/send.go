package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/waha"
	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	var (
		chatID       string
		message      string
		session      string
		msgType      string
		mediaURL     string
		mediaCaption string
		retries      int
		retryDelay   int
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message through the WAHA upstream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			client := waha.New(cfg.Waha, log)
			req := waha.SendRequest{
				ChatID:       chatID,
				Message:      message,
				Session:      session,
				Type:         msgType,
				MediaURL:     mediaURL,
				MediaCaption: mediaCaption,
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var resp *waha.Response
			for attempt := 1; attempt <= retries; attempt++ {
				resp = client.SendMessage(ctx, req)
				if resp.Success {
					fmt.Printf("sent to %s (attempt %d/%d)\n", chatID, attempt, retries)
					if id, ok := resp.Data["id"].(string); ok && id != "" {
						fmt.Printf("message id: %s\n", id)
					}
					return nil
				}
				log.Warn().
					Int("attempt", attempt).
					Int("max", retries).
					Str("code", resp.Code).
					Msg(resp.Error)
				if attempt < retries {
					time.Sleep(time.Duration(retryDelay) * time.Second)
				}
			}

			return fmt.Errorf("send failed after %d attempt(s): %s", retries, resp.Error)
		},
	}

	cmd.Flags().StringVar(&chatID, "chat-id", "", "recipient chat ID, e.g. 6281234567890@c.us")
	cmd.Flags().StringVar(&message, "message", "", "message text")
	cmd.Flags().StringVar(&session, "session", "", "WAHA session (default from config)")
	cmd.Flags().StringVar(&msgType, "type", "text", "message type (text, image, document, audio, video)")
	cmd.Flags().StringVar(&mediaURL, "media-url", "", "media URL for non-text messages")
	cmd.Flags().StringVar(&mediaCaption, "media-caption", "", "caption for media messages")
	cmd.Flags().IntVar(&retries, "retry", 3, "number of send attempts")
	cmd.Flags().IntVar(&retryDelay, "retry-delay", 5, "seconds between attempts")
	cmd.MarkFlagRequired("chat-id")
	cmd.MarkFlagRequired("message")

	return cmd
}
