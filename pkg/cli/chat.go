package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/mnemo-app/mnemo/pkg/cli/config"
	"github.com/mnemo-app/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
	"github.com/mnemo-app/mnemo/pkg/repository/memory"
	"github.com/mnemo-app/mnemo/pkg/usecase"
	"github.com/mnemo-app/mnemo/pkg/utils/logging"
	"github.com/mnemo-app/mnemo/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var userID string
	var userName string
	var mode string
	var repoCfg config.Repository
	var llmCfg config.LLM

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-id",
			Usage:       "User ID for the chat session",
			Value:       "local",
			Sources:     cli.EnvVars("MNEMO_USER_ID"),
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "user-name",
			Usage:       "Display name used in the assistant persona",
			Sources:     cli.EnvVars("MNEMO_USER_NAME"),
			Destination: &userName,
		},
		&cli.StringFlag{
			Name:        "mode",
			Usage:       "Provider policy override for this session",
			Sources:     cli.EnvVars("MNEMO_CHAT_MODE"),
			Destination: &mode,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Interactive chat session on the terminal",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// A local session without Firestore credentials falls back to the
			// in-memory store instead of failing.
			var repo interfaces.Repository
			if repoCfg.Backend() == "firestore" && repoCfg.ProjectID() == "" {
				logging.Default().Info("No Firestore project configured, using in-memory store")
				repo = memory.New()
			} else {
				r, err := repoCfg.Configure(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize repository")
				}
				repo = r
			}
			defer safe.Close(ctx, repo)

			llmClient, err := llmCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM providers")
			}
			if llmClient == nil {
				return goerr.New("at least one LLM provider is required for chat")
			}

			uc := usecase.New(repo, llmClient)

			userColor := color.New(color.FgGreen, color.Bold)
			assistantColor := color.New(color.FgCyan)

			fmt.Println("Type your message and press Enter. Ctrl-D or /quit to exit.")

			var history []model.ChatMessage
			scanner := bufio.NewScanner(os.Stdin)
			for {
				userColor.Print("you> ")
				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "/quit" || line == "/exit" {
					break
				}

				history = append(history, model.ChatMessage{
					Role:    model.RoleUser,
					Content: line,
				})

				reply, err := uc.Chat(ctx, usecase.ChatInput{
					UserID:   types.UserID(userID),
					UserName: userName,
					Messages: history,
					Mode:     mode,
				})
				if err != nil {
					logging.Default().Error("chat failed", "error", err)
					continue
				}

				history = append(history, model.ChatMessage{
					Role:    model.RoleAssistant,
					Content: reply,
				})

				assistantColor.Printf("mnemo> %s\n", reply)
			}

			if err := scanner.Err(); err != nil {
				return goerr.Wrap(err, "failed to read input")
			}

			fmt.Println("bye")
			return nil
		},
	}
}
