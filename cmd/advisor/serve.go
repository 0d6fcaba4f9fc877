package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/benefits-advisor/internal/llm"
	"github.com/jonathan/benefits-advisor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that generates, parses and reviews financial profiles.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to config port, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	tier, err := llm.ParseModelTier(cfg.ModelTier)
	if err != nil {
		return err
	}

	var client llm.Client
	if cfg.APIKey == "" {
		log.Printf("[server] GEMINI_API_KEY not set; /recommendations will answer 502")
	} else {
		client, err = llm.NewClient(cmd.Context(), cfg.LLMConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		PreviewRows:    cfg.PreviewRows,
		MaxUploadBytes: cfg.MaxUploadBytes,
		ModelTier:      tier,
		Strategy:       cfg.Strategy,
	}, client)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
