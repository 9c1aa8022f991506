package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/writingpad/writingpad/internal/config"
	"github.com/writingpad/writingpad/internal/database"
	"github.com/writingpad/writingpad/internal/export"
	"github.com/writingpad/writingpad/internal/storage"
	"github.com/writingpad/writingpad/internal/writing/service"
	"github.com/writingpad/writingpad/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "writingctl",
	Short: "Operational commands for the writingpad store",
	Long: `writingctl talks to the same MongoDB collection as the server,
using the same environment configuration (MONGODB_URI, MONGODB_DATABASE, ...).`,
	SilenceUsage: true,
}

var (
	seedCount     int
	exportPrefix  string
	exportPresign time.Duration
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample writings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc service.Service) error {
			n, err := seed(ctx, svc, seedCount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d writings\n", n)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upload a JSON snapshot of all writings to MinIO",
	Long: `Lists every writing and stores them as one JSON object in the MinIO bucket
configured by MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc service.Service) error {
			store, err := storage.NewMinIOStorage(ctx, storage.LoadMinIOConfig())
			if err != nil {
				return err
			}
			key, n, err := export.Export(ctx, svc, store, exportPrefix, time.Now())
			if err != nil {
				return err
			}
			logger.Infof("exported %d writings to %s/%s", n, store.Bucket(), key)
			fmt.Fprintln(cmd.OutOrStdout(), key)
			if exportPresign > 0 {
				u, err := store.GetPresignedURL(ctx, key, exportPresign)
				if err != nil {
					return fmt.Errorf("presign %s: %w", key, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		})
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 10, "number of writings to insert")
	exportCmd.Flags().StringVar(&exportPrefix, "prefix", "exports", "object key prefix")
	exportCmd.Flags().DurationVar(&exportPresign, "presign", 0, "also print a download URL valid for this long")
	rootCmd.AddCommand(seedCmd, exportCmd)
}

// withService connects to MongoDB, runs fn and disconnects.
func withService(ctx context.Context, fn func(context.Context, service.Service) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
	return fn(ctx, service.NewMongoService(col))
}

// seed inserts n sample writings and returns how many were stored.
func seed(ctx context.Context, svc service.Service, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("count must not be negative, got %d", n)
	}
	for i := 1; i <= n; i++ {
		title := fmt.Sprintf("샘플 글 %d", i)
		contents := fmt.Sprintf("샘플 내용입니다. (%d/%d)", i, n)
		if _, err := svc.Create(ctx, title, contents); err != nil {
			return i - 1, fmt.Errorf("insert sample %d: %w", i, err)
		}
	}
	return n, nil
}
