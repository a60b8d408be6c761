package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beeleads/replysift/internal/pipeline"
	"github.com/beeleads/replysift/internal/report"
	"github.com/beeleads/replysift/internal/store"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: classify, extract, enrich and export",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipeline.New(cfg, logger)

			res, err := p.Run()
			if err != nil {
				return err
			}
			if err := p.WriteArtifacts(res); err != nil {
				return err
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()
			err = st.SaveRun(res.RunID, res.Total, res.Categories, res.Contacts,
				cfg.HighScoreThreshold, cfg.MediumScoreThreshold)
			if err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}

			logger.Info("run complete",
				zap.String("run_id", res.RunID),
				zap.Int("messages", res.Total),
				zap.Int("contacts", len(res.Contacts)),
				zap.Int("high_quality", res.HighQuality))

			report.PrintCategorySummary(os.Stdout, res.Categories)
			report.PrintEnrichmentSummary(os.Stdout, res.Contacts,
				cfg.HighScoreThreshold, cfg.MediumScoreThreshold)
			return nil
		},
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Classify messages and write the categorization artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipeline.New(cfg, logger)

			res, err := p.ClassifyAll()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.OutputPath, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := report.WriteCategoriesJSON(outPath(pipeline.CategoriesFile), res.Categories); err != nil {
				return err
			}
			if err := report.WriteCategoryCSV(outPath(pipeline.CategoryCSVFile), res.Categories); err != nil {
				return err
			}
			if err := report.WriteComprehensiveCSV(outPath(pipeline.ComprehensiveFile), res.Details); err != nil {
				return err
			}
			if err := report.WriteAnalysisReport(outPath(pipeline.ReportFile), res.Categories); err != nil {
				return err
			}

			report.PrintCategorySummary(os.Stdout, res.Categories)
			return nil
		},
	}
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Extract contacts from a previous classification",
		Long: `Extract reads ` + pipeline.CategoriesFile + ` from the output directory, so
the classify command must have run first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := report.ReadCategoriesJSON(outPath(pipeline.CategoriesFile))
			if err != nil {
				return fmt.Errorf("no classification found, run classify first: %w", err)
			}

			p := pipeline.New(cfg, logger)
			records := p.ExtractContacts(categories)

			if err := report.WriteContactsCSV(outPath(pipeline.ContactsCSVFile), records); err != nil {
				return err
			}
			if err := report.WriteContactsJSON(outPath(pipeline.ContactsJSONFile), records); err != nil {
				return err
			}

			fmt.Printf("Extracted %d contact records\n", len(records))
			return nil
		},
	}
}

func newEnrichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Fuse and score contacts from a previous extraction",
		Long: `Enrich reads ` + pipeline.ContactsJSONFile + ` from the output directory, so
the extract command must have run first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := report.ReadContactsJSON(outPath(pipeline.ContactsJSONFile))
			if err != nil {
				return fmt.Errorf("no extracted contacts found, run extract first: %w", err)
			}

			p := pipeline.New(cfg, logger)
			contacts := p.EnrichContacts(records)

			if err := report.WriteEnrichedCSV(outPath(pipeline.EnrichedCSVFile), contacts); err != nil {
				return err
			}
			if err := report.WriteEnrichedJSON(outPath(pipeline.EnrichedJSONFile), contacts); err != nil {
				return err
			}
			if err := report.WriteHighQualityCSV(outPath(pipeline.HighQualityFile), contacts, cfg.HighScoreThreshold); err != nil {
				return err
			}

			report.PrintEnrichmentSummary(os.Stdout, contacts,
				cfg.HighScoreThreshold, cfg.MediumScoreThreshold)
			return nil
		},
	}
}

func outPath(name string) string {
	return filepath.Join(cfg.OutputPath, name)
}
