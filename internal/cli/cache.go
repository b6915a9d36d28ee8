package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/marmotbyte/stash/pkg/cache"
	"github.com/marmotbyte/stash/pkg/config"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Long:  "Display entry counts, hit rates, and the on-disk footprint of both cache layers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, mgr, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			if cfg.Settings.OutputFormat == "json" {
				stats := mgr.Stats()
				encoded, err := json.MarshalIndent(stats, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode stats: %w", err)
				}
				cmd.Println(string(encoded))
				return nil
			}

			cmd.Println(cache.NewOperation(mgr).Info())
			return nil
		},
	}
}

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Read a cached payload",
		Long:  "Print the serialized payload stored under a key, if present and unexpired",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			value, ok := mgr.GetRaw(args[0])
			if !ok {
				return fmt.Errorf("key %q not found", args[0])
			}
			cmd.Println(value)
			return nil
		},
	}
}

// NewSetCmd creates the set command.
func NewSetCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a payload",
		Long:  "Write a serialized payload under a key with a time-to-live",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgr, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			if ttl == 0 {
				ttl = cfg.Settings.DefaultTTL
			}
			if err := mgr.SetRaw(args[0], args[1], ttl); err != nil {
				return err
			}
			cmd.Printf("Stored %q (ttl: %s)\n", args[0], ttl)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "time-to-live for the entry (default: configured default_ttl)")
	return cmd
}

// NewDeleteCmd creates the delete command.
func NewDeleteCmd() *cobra.Command {
	var prefix bool

	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete cached entries",
		Long:  "Remove one key, or with --prefix every key in a namespace (e.g. 'search:')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			if prefix {
				count, err := mgr.DeletePrefix(args[0])
				if err != nil {
					return err
				}
				cmd.Printf("Deleted %d entries with prefix %q\n", count, args[0])
				return nil
			}

			removed, err := mgr.Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				cmd.Printf("Key %q was not cached\n", args[0])
				return nil
			}
			cmd.Printf("Deleted %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&prefix, "prefix", false, "treat the argument as a key prefix")
	return cmd
}

// NewClearCmd creates the clear command.
func NewClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		Long:  "Empty both cache layers and reset the hit/miss counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, mgr, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			msg, err := cache.NewOperation(mgr).Clear()
			if err != nil {
				return err
			}
			cmd.Println(msg)
			return nil
		},
	}
}

// NewPruneCmd creates the prune command.
func NewPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired entries",
		Long:  "Delete all entries past their time-to-live from the disk layer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, mgr, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			msg, err := cache.NewOperation(mgr).Prune()
			if err != nil {
				return err
			}
			cmd.Println(msg)
			return nil
		},
	}
}

// NewVacuumCmd creates the vacuum command.
func NewVacuumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vacuum",
		Short: "Compact the cache database",
		Long:  "Rebuild the database file to reclaim space after large deletions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, mgr, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			msg, err := cache.NewOperation(mgr).Vacuum()
			if err != nil {
				return err
			}
			cmd.Println(msg)
			return nil
		},
	}
}

// NewInvalidateCmd creates the invalidate command.
func NewInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate",
		Short: "Invalidate all cache entries",
		Long:  "Mark every entry created before now as stale, independent of per-entry TTLs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, mgr, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = mgr.Close() }()

			cmd.Println(cache.NewOperation(mgr).Invalidate())
			return nil
		},
	}
}

// NewDirCmd creates the dir command.
func NewDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		Long:  "Display the path of the directory holding the cache database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir, err := cfg.CacheDir()
			if err != nil {
				return err
			}
			cmd.Println(dir)
			return nil
		},
	}
}

// setup loads the configuration and opens the cache manager.
func setup() (*config.Config, *cache.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	mgr, err := openManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, mgr, nil
}
