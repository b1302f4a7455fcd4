package cmd

import (
	"fmt"

	"github.com/arin/askr/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage askr configuration",
}

var setOpenRouterKeyCmd = &cobra.Command{
	Use:   "set-openrouter-key <api-key>",
	Short: "Set your OpenRouter API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetOpenRouterKey(args[0]); err != nil {
			return fmt.Errorf("failed to save API key: %w", err)
		}
		fmt.Println("OpenRouter API key saved.")
		return nil
	},
}

var setExaKeyCmd = &cobra.Command{
	Use:   "set-exa-key <api-key>",
	Short: "Set your Exa API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetExaKey(args[0]); err != nil {
			return fmt.Errorf("failed to save API key: %w", err)
		}
		fmt.Println("Exa API key saved.")
		return nil
	},
}

var setSearchModelCmd = &cobra.Command{
	Use:   "set-search-model <model-name>",
	Short: "Set the model used for keyword generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetSearchModel(args[0]); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}
		fmt.Printf("Search model set to %s.\n", args[0])
		return nil
	},
}

var setAnswerModelCmd = &cobra.Command{
	Use:   "set-answer-model <model-name>",
	Short: "Set the model used for answer generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetAnswerModel(args[0]); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}
		fmt.Printf("Answer model set to %s.\n", args[0])
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Printf("Search model: %s\n", cfg.SearchModel)
		fmt.Printf("Answer model: %s\n", cfg.AnswerModel)
		fmt.Printf("OpenRouter:   %s\n", maskKey(cfg.OpenRouterKey))
		fmt.Printf("Exa:          %s\n", maskKey(cfg.ExaKey))
		fmt.Printf("Config dir:   %s\n", config.Dir())
		return nil
	},
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) < 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func init() {
	configCmd.AddCommand(setOpenRouterKeyCmd)
	configCmd.AddCommand(setExaKeyCmd)
	configCmd.AddCommand(setSearchModelCmd)
	configCmd.AddCommand(setAnswerModelCmd)
	configCmd.AddCommand(showConfigCmd)
}
