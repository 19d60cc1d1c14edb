// Copyright 2025 Talentsift Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/talentsift/talentsift"
	"github.com/talentsift/talentsift/ai"
	"github.com/talentsift/talentsift/ingestion"
	"github.com/talentsift/talentsift/search"
	"github.com/talentsift/talentsift/server"
	"github.com/urfave/cli/v2"
)

func main() {
	// Missing .env is fine; flags and process env still apply.
	godotenv.Load()

	app := &cli.App{
		Name:  "talentsift",
		Usage: "Résumé ingestion and semantic candidate search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8000",
						EnvVars: []string{"LISTEN_ADDR"},
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for batch ingestion (0 = auto)",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search stored candidate profiles from the command line",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of candidates to return",
						Value:   5,
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print per-stage search diagnostics",
					},
				),
			},
			{
				Name:      "reindex",
				Usage:     "Rebuild the search index of a stored document",
				ArgsUsage: "DOCUMENT_ID",
				Action:    reindexCommand,
				Flags:     databaseFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// databaseFlags are shared by every command that opens the database.
func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "./talentsift_db",
			EnvVars: []string{"DB_PATH"},
		},
		&cli.StringFlag{
			Name:    "documents-dir",
			Usage:   "Directory raw document blobs are stored in",
			Value:   "documents",
			EnvVars: []string{"DOCUMENTS_DIR"},
		},
		&cli.StringFlag{
			Name:    "llm-host",
			Usage:   "Extraction model service host URL",
			EnvVars: []string{"LLM_HOST"},
		},
		&cli.StringFlag{
			Name:    "llm-model",
			Usage:   "Extraction model name",
			EnvVars: []string{"LLM_MODEL"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			EnvVars: []string{"EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the model services",
			EnvVars: []string{"LLM_API_KEY"},
		},
	}
}

// openDatabase builds the AI config from flags and opens the database.
func openDatabase(c *cli.Context) (*talentsift.Database, error) {
	var configOpts []ai.ConfigOption
	if host := c.String("llm-host"); host != "" {
		configOpts = append(configOpts, ai.WithExtractorHost(host))
	}
	if model := c.String("llm-model"); model != "" {
		configOpts = append(configOpts, ai.WithExtractorModel(model))
	}
	if host := c.String("embedding-host"); host != "" {
		configOpts = append(configOpts, ai.WithEmbeddingHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		configOpts = append(configOpts, ai.WithEmbeddingModel(model))
	}
	if key := c.String("api-key"); key != "" {
		configOpts = append(configOpts, ai.WithAPIKey(key))
	}

	aiConfig := ai.DefaultConfig()
	if len(configOpts) > 0 {
		aiConfig = ai.NewConfig(configOpts...)
	}
	aiConfig.Normalize()
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return talentsift.NewDatabase(c.String("db"),
		talentsift.WithAIConfig(aiConfig),
		talentsift.WithDocumentsDir(c.String("documents-dir")),
	)
}

func serveCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var pipelineOpts []ingestion.Option
	if size := c.Int("pool-size"); size > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(size))
	}

	pipeline, err := db.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	engine, err := db.NewSearchEngine()
	if err != nil {
		return fmt.Errorf("failed to create search engine: %w", err)
	}

	srv := server.NewServer(pipeline, engine, db.ProfileRepository(), db.BlobStore())
	return srv.ListenAndServe(c.String("addr"))
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := db.NewSearchEngine()
	if err != nil {
		return fmt.Errorf("failed to create search engine: %w", err)
	}

	var monitor search.SearchMonitor
	if c.Bool("verbose") {
		monitor = &verboseMonitor{out: os.Stderr}
	}

	results, err := engine.SearchWithMonitor(context.Background(), query, nil, c.Int("limit"), monitor)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d candidates\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: %s — %s (%s)[%0.3f]\n",
			i, hit.Profile.Name, hit.Profile.Position, hit.DocumentID, hit.Score)
		for _, snippet := range hit.Snippets {
			fmt.Printf("   · %s\n", snippet)
		}
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one document ID is required")
	}
	id, err := uuid.Parse(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid document ID: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	count, err := pipeline.Reindex(context.Background(), id)
	if err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Reindexed %s: %d chunks\n", id, count)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
