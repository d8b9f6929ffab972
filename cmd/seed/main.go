// Package main provides a tool to seed the catalog with sample data.
//
// It creates artists, albums, songs, users and playlists through the
// service layer, so every row passes the same validation as API writes.
//
// Usage:
//
//	DB_PATH=~/.catalog/catalog.db go run ./cmd/seed
//	go run ./cmd/seed --db /tmp/catalog.db --fixture catalog.yaml --playlists 5 --songs 8
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/listenupapp/catalog-server/internal/logger"
	"github.com/listenupapp/catalog-server/internal/store/sqlite"
)

func main() {
	app := &cli.Command{
		Name:  "seed",
		Usage: "Populate a catalog database with demo data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to the SQLite database",
				Value:   "catalog.db",
				Sources: cli.EnvVars("DB_PATH"),
			},
			&cli.StringFlag{
				Name:    "fixture",
				Aliases: []string{"f"},
				Usage:   "YAML catalog fixture (defaults to the built-in demo catalog)",
			},
			&cli.IntFlag{
				Name:  "playlists",
				Usage: "Playlists to create per user",
				Value: 2,
			},
			&cli.IntFlag{
				Name:  "songs",
				Usage: "Songs to add to each playlist",
				Value: 6,
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	f, err := loadFixture(cmd.String("fixture"))
	if err != nil {
		return err
	}

	path := cmd.String("db")
	fmt.Printf("Opening database at: %s\n", path)

	slogger := logger.New(logger.Config{Level: logger.ParseLevel("warn")}).Logger

	st, err := sqlite.Open(path, slogger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	s := newSeeder(st, slogger, cmd.Int("playlists"), cmd.Int("songs"))
	stats, err := s.seed(ctx, f)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d artists, %d albums, %d songs, %d users, %d playlists\n",
		stats.Artists, stats.Albums, stats.Songs, stats.Users, stats.Playlists)
	return nil
}
