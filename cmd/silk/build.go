package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/recera/silk/cmd/silk/internal/config"
	"github.com/recera/silk/pkg/compiler"
	"github.com/recera/silk/pkg/host"
	"github.com/recera/silk/pkg/registry"
)

func newBuildCommand() *cobra.Command {
	var outDir string
	var cwd string

	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Compile .slk source units to CSS and HTML artifacts",
		Long: `Compiles each source unit independently: a unit that fails to parse is
reported and skipped without aborting the others. The joined stylesheet is
written once; markup is written per unit. When silk.yaml names a host page,
the page is processed with its embedded blocks and written alongside.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", cwd, err)
				}
			}
			return runBuild(args, outDir)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (overrides silk.yaml)")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the project (defaults to current)")

	return cmd
}

func runBuild(args []string, outDir string) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Warn("failed to load silk.yaml, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	if outDir == "" {
		outDir = cfg.OutDir
	}

	files := args
	if len(files) == 0 {
		files, err = filepath.Glob(filepath.Join(cfg.SourceDir, "*.slk"))
		if err != nil {
			return err
		}
	}
	if len(files) == 0 && cfg.Page == "" {
		return fmt.Errorf("no .slk files found in %s", cfg.SourceDir)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	comp := compiler.New()
	sink := registry.New()
	built := 0

	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			log.Error("failed to read unit", "file", file, "err", err)
			continue
		}

		out, err := comp.Compile(string(source))
		if err != nil {
			// One unit's failure must not take the others down.
			log.Error("compile failed, skipping unit", "file", file, "err", err)
			continue
		}

		name := strings.TrimSuffix(filepath.Base(file), ".slk")
		sink.Append(name, out.CSS)

		htmlPath := filepath.Join(outDir, name+".html")
		if err := os.WriteFile(htmlPath, []byte(out.HTML+"\n"), 0644); err != nil {
			return err
		}
		log.Info("compiled", "unit", name, "html", htmlPath)
		built++
	}

	if sink.Len() > 0 {
		cssPath := filepath.Join(outDir, "silk.css")
		if err := os.WriteFile(cssPath, []byte(sink.CSS()), 0644); err != nil {
			return err
		}
		log.Info("stylesheet written", "path", cssPath, "units", sink.Len())
	}

	if cfg.Page != "" {
		if err := buildPage(cfg, comp, outDir); err != nil {
			return err
		}
	}

	log.Info("build complete", "units", built, "out", outDir)
	return nil
}

// buildPage processes the host page template, compiling its embedded
// blocks and injecting their output in place.
func buildPage(cfg *config.Config, comp *compiler.Compiler, outDir string) error {
	doc, err := os.ReadFile(cfg.Page)
	if err != nil {
		return fmt.Errorf("failed to read page template: %w", err)
	}

	proc := host.NewProcessor(host.WithCompiler(comp))
	processed := proc.Process(string(doc))

	pagePath := filepath.Join(outDir, filepath.Base(cfg.Page))
	if err := os.WriteFile(pagePath, []byte(processed), 0644); err != nil {
		return err
	}
	log.Info("page written", "path", pagePath)
	return nil
}
