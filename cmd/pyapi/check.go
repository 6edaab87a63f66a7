package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/pyapi/collaborators/gitsrc"
	"github.com/viant/pyapi/differ"
	"github.com/viant/pyapi/docstring"
	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/loader"
	"github.com/viant/pyapi/model"
)

func newCheckCommand() *cobra.Command {
	var (
		baseRef    string
		compareRef string
		searchDir  string
		format     string
		repoURL    string
	)

	cmd := &cobra.Command{
		Use:   "check <package>",
		Short: "Diff a package's public API between two git refs and report breakages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := args[0]

			oldMod, oldProject, cleanupOld, err := loadAtRef(repoURL, baseRef, pkg, searchDir)
			if err != nil {
				return fmt.Errorf("pyapi: load %q at %q: %w", pkg, baseRef, err)
			}
			defer cleanupOld()

			newMod, newProject, cleanupNew, err := loadAtRef(repoURL, compareRef, pkg, searchDir)
			if err != nil {
				return fmt.Errorf("pyapi: load %q at %q: %w", pkg, compareRef, err)
			}
			defer cleanupNew()

			d := differ.New(oldProject, newProject)
			breakages := d.Check(oldMod, newMod)

			style := differ.Style(strings.ToLower(format))
			if err := differ.Render(cmd.OutOrStdout(), breakages, style); err != nil {
				return err
			}

			if len(breakages) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&repoURL, "repo", "r", "", "git repository URL to clone (required unless package is already checked out under the search path)")
	cmd.Flags().StringVarP(&baseRef, "base", "b", "HEAD~1", "base ref to compare from")
	cmd.Flags().StringVarP(&compareRef, "compare", "a", "HEAD", "ref to compare against base")
	cmd.Flags().StringVarP(&searchDir, "search", "s", ".", "search directory to load the package from when --repo is not set")
	cmd.Flags().StringVarP(&format, "format", "f", string(differ.StyleOneline), "report format: oneline, verbose, markdown, github")
	return cmd
}

// loadAtRef resolves pkg at ref. When repoURL is set it clones the repo and
// checks out ref first (spec.md §6 "Git collaborator"); otherwise it loads
// directly from searchDir, ignoring ref, for comparing a working tree
// against itself (e.g. local uncommitted changes).
func loadAtRef(repoURL, ref, pkg, searchDir string) (*model.Module, *model.Project, func(), error) {
	noop := func() {}

	root := searchDir
	cleanup := noop
	if repoURL != "" {
		path, gitCleanup, err := gitsrc.Checkout(repoURL, ref)
		if err != nil {
			return nil, nil, noop, err
		}
		root = path
		cleanup = func() { _ = gitCleanup() }
	}

	bus := extension.NewBus()
	ld := loader.New(pkg, bus, nil)
	opts := loader.Options{
		SearchPaths:    []string{root},
		Submodules:     true,
		DocstringStyle: docstring.StyleAuto,
		ResolveAliases: true,
	}
	mod, err := ld.Load(context.Background(), pkg, opts)
	if err != nil {
		cleanup()
		return nil, nil, noop, err
	}
	return mod, ld.Project, cleanup, nil
}
