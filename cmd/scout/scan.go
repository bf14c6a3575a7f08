package scout

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scout/scout/internal/engine"
	"github.com/scout/scout/internal/types"
	"github.com/scout/scout/pkg/core"
)

var (
	flagPath    string
	flagInclude string
	flagExclude string
	flagNoCache bool
	flagChanged bool
	flagDryRun  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List documents and images eligible for ingestion",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "do not read or update the content cache")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "only count eligible files; read nothing and leave the cache alone")
	cmd.Flags().BoolVar(&flagChanged, "changed", false, "only list documents whose content changed since the last scan")
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(flagPath)
	if err != nil {
		return err
	}
	if flagDryRun {
		filter := engine.NewFilter(cfg, flagInclude, flagExclude)
		n, err := engine.CountTargets(cmd.Context(), abs, filter)
		if err != nil {
			return err
		}
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]int{"documents": n})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d documents would be scanned\n", n)
		return nil
	}
	res, err := engine.Scan(cmd.Context(), cfg, engine.Options{
		Root:         abs,
		IncludeGlobs: flagInclude,
		ExcludeGlobs: flagExclude,
		NoCache:      flagNoCache,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	docs := res.Documents
	if flagChanged {
		docs = onlyChanged(docs)
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		return core.MarshalDocuments(out, docs)
	}
	if len(docs) == 0 {
		fmt.Fprintln(out, styled(out, dimStyle, "no documents"))
		return nil
	}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{d.Path, string(d.Kind), strconv.FormatInt(d.Size, 10), strconv.FormatBool(d.Changed)})
	}
	if err := renderTable(out, []string{"Path", "Kind", "Bytes", "Changed"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d documents (%d images, %d changed)\n", len(res.Documents), res.Images, res.Changed)
	return nil
}

func onlyChanged(docs []types.Document) []types.Document {
	var out []types.Document
	for _, d := range docs {
		if d.Changed {
			out = append(out, d)
		}
	}
	return out
}
