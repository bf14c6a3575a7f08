package scout

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cacheCmd := &cobra.Command{Use: "cache", Short: "Cache helpers"}
	rootCmd.AddCommand(cacheCmd)

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "path [type...]",
		Short: "Print the cache file path for each cache type (all registered types if none given)",
		RunE:  runCachePath,
	})
}

func runCachePath(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	types := args
	if len(types) == 0 {
		types = cfg.CacheTypes()
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		m := make(map[string]string, len(types))
		for _, t := range types {
			m[t] = cfg.CachePath(t)
		}
		return writeJSON(out, m)
	}
	if len(args) == 1 {
		fmt.Fprintln(out, cfg.CachePath(args[0]))
		return nil
	}
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{t, cfg.CachePath(t)})
	}
	return renderTable(out, []string{"Type", "Path"}, rows)
}
