package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Epistemic-Technology/pdf-splitter/internal/documents"
	"github.com/Epistemic-Technology/pdf-splitter/internal/export"
	"github.com/Epistemic-Technology/pdf-splitter/internal/gallery"
	"github.com/Epistemic-Technology/pdf-splitter/internal/pdf"
	"github.com/Epistemic-Technology/pdf-splitter/models"
)

// loadActive submits a local file through intake, so the CLI applies the same
// media type gate as the browser.
func loadActive(a *app, path string) (models.InputFile, error) {
	candidate, err := documents.FromPath(path)
	if err != nil {
		return models.InputFile{}, err
	}
	if err := a.splitter.Submit(candidate); err != nil {
		return models.InputFile{}, fmt.Errorf("%s: %w", path, err)
	}
	active, _ := a.splitter.Active()
	return active, nil
}

func writeArtifact(dir string, artifact *models.ExportArtifact) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	target := filepath.Join(dir, artifact.Filename)
	if err := os.WriteFile(target, artifact.Data, 0644); err != nil {
		return "", err
	}
	return target, nil
}

func exportCmd(configPath *string) *cobra.Command {
	var out string
	var page int

	cmd := &cobra.Command{
		Use:   "export <pdf>",
		Short: "Write one page of a PDF to page_<N>.pdf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			active, err := loadActive(a, args[0])
			if err != nil {
				return err
			}
			artifact, err := a.splitter.Export(models.ExportRequest{Source: active.Data, PageNumber: page})
			if err != nil {
				return err
			}
			target, err := writeArtifact(out, artifact)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "1-based page number")
	return cmd
}

func splitCmd(configPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "split <pdf>",
		Short: "Write every page of a PDF to page_<N>.pdf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			active, err := loadActive(a, args[0])
			if err != nil {
				return err
			}
			pages, err := pdf.SplitPdf(active.Data)
			if err != nil {
				return err
			}
			for i, pageData := range pages {
				artifact := &models.ExportArtifact{
					Filename:  export.Filename(i + 1),
					MediaType: models.PDFMediaType,
					Data:      models.PdfData(pageData),
				}
				target, err := writeArtifact(out, artifact)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), target)
			}
			a.log.Info("Wrote %d pages of %s to %s", len(pages), active.Name, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	return cmd
}

func infoCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info <pdf>",
		Short: "Print the file summary and page count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			active, err := loadActive(a, args[0])
			if err != nil {
				return err
			}
			count, err := pdf.PageCount(active.Data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s, %d pages\n", gallery.Summary(active), count)
			return nil
		},
	}
}
