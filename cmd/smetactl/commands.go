package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/7svn/smeta-backend/internal/estimates/aggregate"
	"github.com/7svn/smeta-backend/internal/estimates/domain"
	"github.com/7svn/smeta-backend/internal/estimates/store"
	"github.com/7svn/smeta-backend/internal/estimates/templates"
	"github.com/7svn/smeta-backend/internal/export"
)

type app struct {
	open func(ctx context.Context) (store.Store, func(), error)
	now  func() time.Time
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "smetactl",
		Short: "Inspect and export renovation estimates",
		Long: `smetactl reads estimates from the configured store (STORE_BACKEND,
DB_DSN, REDIS_ADDR) and renders them without going through the API.

Examples:
  smetactl templates
  smetactl summary --owner demo-user
  smetactl export --owner demo-user --project 1f0c... --out smeta.xlsx`,
		SilenceUsage: true,
	}
	root.AddCommand(newTemplatesCmd(), newSummaryCmd(a), newExportCmd(a))
	return root
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List built-in templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tITEMS")
			for _, t := range templates.List() {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", t.ID, t.Name, len(t.Lines))
			}
			return tw.Flush()
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals and progress for an owner's projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.list(cmd.Context(), owner)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tITEMS\tPROGRESS\tTOTAL")
			for _, p := range projects {
				s := aggregate.Summarize(p.Items)
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d%%\t%.2f\n", p.ID, p.Name, s.ItemCount, s.Progress, s.Total)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Owner id (required)")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		owner, projectID, out string
		html                  bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a project as .xlsx or printable HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.list(cmd.Context(), owner)
			if err != nil {
				return err
			}
			p, ok := findProject(projects, projectID)
			if !ok {
				return fmt.Errorf("project %s: %w", projectID, domain.ErrProjectNotFound)
			}

			if out == "" {
				out = export.FileName(p.Name)
				if html {
					out = out[:len(out)-len(filepath.Ext(out))] + ".html"
				}
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if html {
				err = export.RenderPrintHTML(f, p, a.now())
			} else {
				err = export.WriteXLSX(f, p, a.now())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (total %.2f)\n", out, aggregate.Total(p.Items))
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Owner id (required)")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, defaults to the project name")
	cmd.Flags().BoolVar(&html, "html", false, "Write the printable HTML page instead of .xlsx")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func (a *app) list(ctx context.Context, owner string) ([]domain.RenovationProject, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, closeFn, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return st.List(ctx, owner)
}

func findProject(ps []domain.RenovationProject, id string) (domain.RenovationProject, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return domain.RenovationProject{}, false
}
