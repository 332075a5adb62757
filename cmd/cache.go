package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stormlightlabs.org/hockey/internal/config"
	"stormlightlabs.org/hockey/internal/echo"
)

// CacheCmd creates the cache command group
func CacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Payload cache inspection and management",
		Long:  "Inspect and manage the Redis cache of raw NHL payloads.",
	}

	cmd.AddCommand(CacheStatsCmd())
	cmd.AddCommand(CacheClearCmd())
	return cmd
}

// CacheStatsCmd shows key counts per payload kind
func CacheStatsCmd() *cobra.Command {
	var configFlag string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Long:  "Display cached-payload counts per kind (gamecenter, reports, shifts, ...).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}

			rdb, err := newRedis(cfg)
			if err != nil {
				return err
			}
			if rdb == nil {
				return fmt.Errorf("caching is disabled; set cache.enabled = true")
			}

			counts, err := newCache(cfg, rdb).Stats(cmd.Context())
			if err != nil {
				return err
			}

			echo.Header("Cache statistics")
			total := int64(0)
			for kind, count := range counts {
				echo.Infof("%-12s %d", kind, count)
				total += count
			}
			echo.Successf("✓ %d cached payloads", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&configFlag, "config", "", "Path to config file")
	return cmd
}

// CacheClearCmd removes every cached payload under the configured namespace
func CacheClearCmd() *cobra.Command {
	var configFlag string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the payload cache",
		Long:  "Delete every cached payload under the configured namespace.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}

			rdb, err := newRedis(cfg)
			if err != nil {
				return err
			}
			if rdb == nil {
				return fmt.Errorf("caching is disabled; set cache.enabled = true")
			}

			deleted, err := newCache(cfg, rdb).Flush(cmd.Context())
			if err != nil {
				return err
			}

			echo.Successf("✓ Deleted %d cached payloads", deleted)
			return nil
		},
	}

	cmd.Flags().StringVar(&configFlag, "config", "", "Path to config file")
	return cmd
}
