package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLoggerLevels(t *testing.T) {
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Before: setupLogger,
		Action: func(c *cli.Context) error { return nil },
	}

	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
		err := app.Run([]string{"talentsift", "--log-level", level})
		assert.NoError(t, err, "level %q should be accepted", level)
	}

	err := app.Run([]string{"talentsift", "--log-level", "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestReindexArgumentValidation(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:      "reindex",
				ArgsUsage: "DOCUMENT_ID",
				Action:    reindexCommand,
				Flags:     databaseFlags(),
			},
		},
	}

	err := app.Run([]string{"talentsift", "reindex"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document ID")

	err = app.Run([]string{"talentsift", "reindex", "not-a-uuid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid document ID")
}

func TestSearchRequiresQuery(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{Name: "limit", Value: 5},
					&cli.BoolFlag{Name: "verbose"},
				),
			},
		},
	}

	err := app.Run([]string{"talentsift", "search"})
	require.Error(t, err)
	assert.Contains(t, fmt.Sprint(err), "query is required")
}
