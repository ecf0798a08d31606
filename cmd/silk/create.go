package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/recera/silk/cmd/silk/internal/config"
	"github.com/recera/silk/cmd/silk/internal/wizard"
)

func newNewCommand() *cobra.Command {
	var interactive bool
	var template string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a new Silk project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			opts := wizard.Defaults(name)
			opts.Template = template
			if interactive {
				var err error
				opts, err = wizard.Run(name)
				if err != nil {
					return err
				}
			}
			return scaffold(opts)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the interactive project wizard")
	cmd.Flags().StringVarP(&template, "template", "t", "basic", "Project template: basic | dashboard")

	return cmd
}

func scaffold(opts wizard.Options) error {
	if _, err := os.Stat(opts.Name); err == nil {
		return fmt.Errorf("directory %s already exists", opts.Name)
	}

	dirs := []string{
		opts.Name,
		filepath.Join(opts.Name, "ui"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	cfg := &config.Config{
		SourceDir: "ui",
		OutDir:    "dist",
		Page:      "page.html",
		Target:    "silk-root",
		Dev: &config.DevConfig{
			Host: "localhost",
			Port: opts.Port,
		},
	}
	if err := cfg.Save(opts.Name); err != nil {
		return err
	}

	unit := templateUnits[opts.Template]
	if unit == "" {
		unit = templateUnits["basic"]
	}
	if err := os.WriteFile(filepath.Join(opts.Name, "ui", "app.slk"), []byte(unit), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(opts.Name, "page.html"), []byte(pageTemplate), 0644); err != nil {
		return err
	}

	log.Info("project created", "name", opts.Name, "template", opts.Template)
	fmt.Printf("\nNext steps:\n\n  cd %s\n  silk dev\n\n", opts.Name)
	return nil
}

var templateUnits = map[string]string{
	"basic": `// A first surface. Run "silk dev" and edit this file.
styledef panel {
    color: glass(#1a1a2e, 0.85)
    radius: 12px
    pad: 24px
}

container app {
    width: 480px
    layout: column
    gap: 16px
    style: panel

    text "Hello from Silk" {
        color: #f8fafc
        size: 24px
        weight: 600
    }

    text "Edit ui/app.slk and watch this page update." {
        color: #94a3b8
        size: 14px
    }
}
`,
	"dashboard": `styledef card {
    color: linear(#1e293b, #0f172a)
    radius: 10px
    pad: 20px
}

container dashboard {
    layout: row
    gap: 16px

    container sidebar {
        width: 220px
        style: card

        text "Menu" {
            color: #e2e8f0
            weight: 600
        }
    }

    container content {
        width: fill
        style: card

        text "Overview" {
            color: #e2e8f0
            size: 20px
            weight: 600
        }
    }
}
`,
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>silk app</title>
</head>
<body>
  <div id="silk-root"></div>

  <script type="text/silk">
    container footer {
        pad: 12px

        text "Embedded directly in the page." {
            color: #64748b
            size: 12px
        }
    }
  </script>
</body>
</html>
`
