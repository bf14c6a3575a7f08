package scout

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scout/scout/internal/files"
)

var flagGitignore bool

func init() {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the cache and log directories",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().BoolVar(&flagGitignore, "gitignore", false, "add the cache and log directories to the enclosing repository's .gitignore")
	rootCmd.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Initialize(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagGitignore {
		if err := ignoreProvisioned(cfg.CacheDir, cfg.LogDir); err != nil {
			return err
		}
	}
	if flagJSON {
		return writeJSON(out, map[string]string{"cache_dir": cfg.CacheDir, "log_dir": cfg.LogDir})
	}
	fmt.Fprintln(out, styled(out, okStyle, "ready"))
	fmt.Fprintln(out, "  cache:", cfg.CacheDir)
	fmt.Fprintln(out, "  logs: ", cfg.LogDir)
	return nil
}

func ignoreProvisioned(dirs ...string) error {
	root, err := files.RepoRoot(dirs[0])
	if errors.Is(err, files.ErrNotInRepo) {
		logger.WithField("dir", dirs[0]).Warn("not inside a git repository; .gitignore left alone")
		return nil
	}
	if err != nil {
		return err
	}
	for _, p := range files.IgnorePatterns(root, dirs...) {
		added, err := files.AppendIgnore(root, p)
		if err != nil {
			return err
		}
		if added {
			logger.WithField("pattern", p).Info("added to .gitignore")
		}
	}
	return nil
}
