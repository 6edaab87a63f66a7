package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/pyapi/collaborators/pysearch"
	"github.com/viant/pyapi/docstring"
	"github.com/viant/pyapi/encoding"
	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/loader"
)

func newDumpCommand() *cobra.Command {
	var (
		searchDirs  []string
		outTemplate string
		extSpecs    []string
		mode        string
		showDigest  bool
	)

	cmd := &cobra.Command{
		Use:   "dump <package>...",
		Short: "Load one or more packages and emit their object model as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(extSpecs) > 0 {
				slogExtensionsUnsupported(extSpecs)
			}

			encMode := encoding.ModeBase
			if strings.EqualFold(mode, "full") {
				encMode = encoding.ModeFull
			}
			enc := encoding.NewEncoder(encMode)

			paths, err := pysearch.SearchPaths(".", searchDirs)
			if err != nil {
				return fmt.Errorf("pyapi: resolve search paths: %w", err)
			}

			bus := extension.NewBus()
			for _, pkg := range args {
				ld := loader.New(pkg, bus, nil)
				opts := loader.Options{
					SearchPaths:    paths,
					Submodules:     true,
					DocstringStyle: docstring.StyleAuto,
					ResolveAliases: true,
				}
				mod, err := ld.Load(context.Background(), pkg, opts)
				if err != nil {
					return fmt.Errorf("pyapi: load %q: %w", pkg, err)
				}

				root, err := enc.EncodeModule(mod)
				if err != nil {
					return fmt.Errorf("pyapi: encode %q: %w", pkg, err)
				}
				payload := map[string]any{
					"schema_version": encoding.SchemaVersion,
					"modules":        map[string]any{pkg: root},
				}
				if showDigest {
					digest, err := ld.Project.Digest(enc)
					if err != nil {
						return fmt.Errorf("pyapi: digest %q: %w", pkg, err)
					}
					payload["digest"] = strconv.FormatUint(digest, 16)
				}
				data, err := json.MarshalIndent(payload, "", "  ")
				if err != nil {
					return err
				}

				if err := writeDump(cmd, pkg, outTemplate, data); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&searchDirs, "search", "s", nil, "additional search directory (repeatable)")
	cmd.Flags().StringVarP(&outTemplate, "output", "o", "", "output path template; {package} is replaced per argument (default: stdout)")
	cmd.Flags().StringArrayVarP(&extSpecs, "ext", "e", nil, "extension spec (repeatable); logged, not dynamically loaded")
	cmd.Flags().StringVar(&mode, "mode", "base", "encoding mode: base or full")
	cmd.Flags().BoolVar(&showDigest, "digest", false, "include a deterministic base-mode digest of the loaded project")
	return cmd
}

func writeDump(cmd *cobra.Command, pkg, template string, data []byte) error {
	if template == "" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	path := strings.ReplaceAll(template, "{package}", pkg)
	return os.WriteFile(path, data, 0o644)
}

func slogExtensionsUnsupported(specs []string) {
	fmt.Fprintf(os.Stderr, "pyapi: dynamically-loaded extensions are not supported; register them in-process instead (specs ignored: %s)\n", strings.Join(specs, ", "))
}
