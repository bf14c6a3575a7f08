package scout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/scout/scout/internal/config"
)

var (
	cfgShowYAML bool
	cfgOutput   string
	cfgForce    bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	showCmd.Flags().BoolVar(&cfgShowYAML, "yaml", false, "print as YAML in config file format")
	cfgCmd.AddCommand(showCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .scout.yml holding the current settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().StringVar(&cfgOutput, "output", ".scout.yml", "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)

	modelCmd := &cobra.Command{
		Use:   "model [name]",
		Short: "Resolve a model alias to its model id",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigModel,
	}
	cfgCmd.AddCommand(modelCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, config.FromConfig(cfg))
	}
	if cfgShowYAML {
		b, err := yaml.Marshal(config.FromConfig(cfg))
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	}
	fmt.Fprintln(out, styled(out, titleStyle, "Scout configuration"))
	return renderTable(out, []string{"Setting", "Value"}, settingsRows(cfg))
}

func settingsRows(cfg *config.Config) [][]string {
	rows := [][]string{
		{"cache_dir", cfg.CacheDir},
		{"log_dir", cfg.LogDir},
	}
	for _, t := range cfg.CacheTypes() {
		rows = append(rows, []string{"cache." + t, cfg.CachePath(t)})
	}
	aliases := make([]string, 0, len(cfg.ModelAliases))
	for k, v := range cfg.ModelAliases {
		aliases = append(aliases, k+"="+v)
	}
	sort.Strings(aliases)
	rows = append(rows,
		[]string{"exclude_keywords", strings.Join(cfg.ExcludeKeywords, ", ")},
		[]string{"exclude_filenames", strings.Join(cfg.ExcludeFilenames, ", ")},
		[]string{"file_extensions", strings.Join(cfg.FileExtensions, " ")},
		[]string{"image_extensions", strings.Join(cfg.ImageExtensions, " ")},
		[]string{"tesseract_config", cfg.TesseractConfig},
		[]string{"ocr_dpi", strconv.Itoa(cfg.OCRDPI)},
		[]string{"max_chars", strconv.Itoa(cfg.MaxChars)},
		[]string{"timeout", cfg.DefaultTimeout.String()},
		[]string{"batch_size", strconv.Itoa(cfg.BatchSize)},
		[]string{"save_interval", strconv.Itoa(cfg.SaveInterval)},
		[]string{"preview_length", strconv.Itoa(cfg.PreviewLength)},
		[]string{"default_model", cfg.DefaultModel},
		[]string{"model_aliases", strings.Join(aliases, ", ")},
		[]string{"yolo_weights", cfg.YOLOWeights},
		[]string{"yolo_config", cfg.YOLOConfig},
		[]string{"yolo_classes", cfg.YOLOClasses},
		[]string{"yolo_confidence", strconv.FormatFloat(cfg.YOLOConfidence, 'g', -1, 64)},
		[]string{"face_similarity", strconv.FormatFloat(cfg.FaceSimilarityThreshold, 'g', -1, 64)},
	)
	return rows
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	fc := config.FromConfig(cfg)
	// keep the file portable: directories stay relative to where scout runs
	cacheDir, logDir := "caches", "logs"
	fc.CacheDir, fc.LogDir = &cacheDir, &logDir

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func runConfigModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfg.ResolveModel(name))
	return nil
}
