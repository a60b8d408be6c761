// Package pipeline orchestrates the batch run: discover messages,
// classify, extract contacts, fuse, enrich and export.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/config"
	"github.com/beeleads/replysift/internal/enrich"
	"github.com/beeleads/replysift/internal/extract"
	"github.com/beeleads/replysift/internal/fuse"
	"github.com/beeleads/replysift/internal/message"
	"github.com/beeleads/replysift/internal/report"
	"github.com/beeleads/replysift/internal/scanner"
)

// Export artifact file names, fixed for downstream consumers.
const (
	CategoriesFile    = "categories.json"
	CategoryCSVFile   = "email_categories.csv"
	ComprehensiveFile = "comprehensive_email_details.csv"
	ReportFile        = "analysis_report.txt"
	ContactsCSVFile   = "extracted_contacts.csv"
	ContactsJSONFile  = "extracted_contacts.json"
	EnrichedCSVFile   = "enriched_contacts.csv"
	EnrichedJSONFile  = "enriched_contacts.json"
	HighQualityFile   = "high_quality_leads.csv"
)

const bodyPreviewLen = 500

// Pipeline wires the classification, extraction, fusion and enrichment
// stages together over a message directory.
type Pipeline struct {
	cfg        *config.Config
	log        *zap.Logger
	scan       *scanner.Scanner
	classifier *classify.Classifier
	extractor  *extract.Extractor
	enricher   *enrich.Enricher
}

// New builds a pipeline from configuration.
func New(cfg *config.Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		log:        logger,
		scan:       scanner.New(cfg.EmailsPath, ".eml"),
		classifier: classify.New(classify.DefaultVocabulary()),
		extractor:  extract.New(cfg.SenderExclusions),
		enricher:   enrich.New(),
	}
}

// ClassifyResult holds the output of the classification stage.
type ClassifyResult struct {
	Total      int
	Categories map[classify.Category][]string
	Details    []report.MessageDetail
}

// Result holds the output of a full pipeline run.
type Result struct {
	RunID      string
	Total      int
	Categories map[classify.Category][]string
	Details    []report.MessageDetail
	Records    []*extract.Record
	Contacts   []enrich.Contact

	HighQuality   int
	MediumQuality int
	LowQuality    int
}

// Run executes every stage and returns the aggregated result.
func (p *Pipeline) Run() (*Result, error) {
	classified, err := p.ClassifyAll()
	if err != nil {
		return nil, err
	}

	records := p.ExtractContacts(classified.Categories)
	contacts := p.EnrichContacts(records)

	res := &Result{
		RunID:      uuid.NewString(),
		Total:      classified.Total,
		Categories: classified.Categories,
		Details:    classified.Details,
		Records:    records,
		Contacts:   contacts,
	}
	for _, c := range contacts {
		switch {
		case c.LeadScore >= p.cfg.HighScoreThreshold:
			res.HighQuality++
		case c.LeadScore >= p.cfg.MediumScoreThreshold:
			res.MediumQuality++
		default:
			res.LowQuality++
		}
	}
	return res, nil
}

// ClassifyAll discovers and classifies every message under the input
// directory using a worker pool. Per-message parse failures degrade to an
// empty view and never abort the batch; a missing input directory is the
// only fatal condition.
func (p *Pipeline) ClassifyAll() (*ClassifyResult, error) {
	if _, err := os.Stat(p.cfg.EmailsPath); err != nil {
		return nil, fmt.Errorf("input directory %s: %w", p.cfg.EmailsPath, err)
	}

	files, err := p.scan.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan for messages: %w", err)
	}

	p.log.Info("classifying messages",
		zap.Int("total", len(files)),
		zap.Int("workers", p.workers()))

	type outcome struct {
		path     string
		category classify.Category
		detail   report.MessageDetail
	}

	fileChan := make(chan string, len(files))
	resultChan := make(chan outcome, len(files))

	var wg sync.WaitGroup
	for i := 0; i < p.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range fileChan {
				v := p.parse(path)
				category := p.classifier.Classify(v)
				resultChan <- outcome{
					path:     path,
					category: category,
					detail: report.MessageDetail{
						Source:            path,
						Category:          category,
						From:              v.Header("From"),
						To:                v.To(),
						Subject:           v.Subject(),
						Date:              v.Date(),
						BodyPreview:       preview(v.Body()),
						OriginalRecipient: p.extractor.OriginalRecipient(v),
					},
				}
			}
		}()
	}

	for _, file := range files {
		fileChan <- file
	}
	close(fileChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	categories := make(map[classify.Category][]string, len(classify.Categories))
	for _, cat := range classify.Categories {
		categories[cat] = []string{}
	}
	detailByPath := make(map[string]report.MessageDetail, len(files))
	for out := range resultChan {
		categories[out.category] = append(categories[out.category], out.path)
		detailByPath[out.path] = out.detail
	}
	for cat := range categories {
		sort.Strings(categories[cat])
	}

	// Details in a stable order: alphabetical category, then path.
	details := make([]report.MessageDetail, 0, len(files))
	cats := make([]classify.Category, 0, len(categories))
	for cat := range categories {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	for _, cat := range cats {
		for _, path := range categories[cat] {
			details = append(details, detailByPath[path])
		}
	}

	return &ClassifyResult{
		Total:      len(files),
		Categories: categories,
		Details:    details,
	}, nil
}

// ExtractContacts runs contact extraction over the configured target
// categories in the canonical traversal order: category priority order,
// then ascending source path. The output preserves that order, which
// fusion depends on.
func (p *Pipeline) ExtractContacts(categories map[classify.Category][]string) []*extract.Record {
	targets := make(map[classify.Category]bool, len(p.cfg.TargetCategories))
	for _, t := range p.cfg.TargetCategories {
		targets[classify.Category(t)] = true
	}

	type job struct {
		seq      int
		path     string
		category classify.Category
	}

	var jobs []job
	for _, cat := range classify.Categories {
		if !targets[cat] {
			continue
		}
		paths := append([]string(nil), categories[cat]...)
		sort.Strings(paths)
		for _, path := range paths {
			jobs = append(jobs, job{seq: len(jobs), path: path, category: cat})
		}
	}

	p.log.Info("extracting contacts",
		zap.Int("messages", len(jobs)),
		zap.Int("workers", p.workers()))

	results := make([]*extract.Record, len(jobs))
	jobChan := make(chan job, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				if _, err := os.Stat(p.scan.Resolve(j.path)); err != nil {
					p.log.Warn("skipping missing message", zap.String("path", j.path))
					continue
				}
				v := p.parse(j.path)
				results[j.seq] = p.extractor.Extract(v, j.category, j.path)
			}
		}()
	}
	for _, j := range jobs {
		jobChan <- j
	}
	close(jobChan)
	wg.Wait()

	// Workers fill fixed slots, so order survives the pool; drop the
	// empty records here.
	records := make([]*extract.Record, 0, len(results))
	for _, r := range results {
		if r != nil {
			records = append(records, r)
		}
	}

	p.log.Info("contacts extracted", zap.Int("records", len(records)))
	return records
}

// EnrichContacts fuses raw records into canonical contacts and scores
// them. The returned slice is sorted by lead score descending; ties keep
// first-seen order.
func (p *Pipeline) EnrichContacts(records []*extract.Record) []enrich.Contact {
	merged := fuse.Merge(records)

	contacts := make([]enrich.Contact, 0, len(merged))
	for _, c := range merged {
		contacts = append(contacts, p.enricher.Enrich(c))
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].LeadScore > contacts[j].LeadScore
	})

	p.log.Info("contacts enriched", zap.Int("contacts", len(contacts)))
	return contacts
}

// WriteArtifacts writes every export artifact of the run into the output
// directory.
func (p *Pipeline) WriteArtifacts(res *Result) error {
	if err := os.MkdirAll(p.cfg.OutputPath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	out := func(name string) string { return filepath.Join(p.cfg.OutputPath, name) }

	if err := report.WriteCategoriesJSON(out(CategoriesFile), res.Categories); err != nil {
		return err
	}
	if err := report.WriteCategoryCSV(out(CategoryCSVFile), res.Categories); err != nil {
		return err
	}
	if err := report.WriteComprehensiveCSV(out(ComprehensiveFile), res.Details); err != nil {
		return err
	}
	if err := report.WriteAnalysisReport(out(ReportFile), res.Categories); err != nil {
		return err
	}
	if err := report.WriteContactsCSV(out(ContactsCSVFile), res.Records); err != nil {
		return err
	}
	if err := report.WriteContactsJSON(out(ContactsJSONFile), res.Records); err != nil {
		return err
	}
	if err := report.WriteEnrichedCSV(out(EnrichedCSVFile), res.Contacts); err != nil {
		return err
	}
	if err := report.WriteEnrichedJSON(out(EnrichedJSONFile), res.Contacts); err != nil {
		return err
	}
	return report.WriteHighQualityCSV(out(HighQualityFile), res.Contacts, p.cfg.HighScoreThreshold)
}

// parse reads one message into a view. Unparseable files are logged and
// degrade to the empty view so that classification still proceeds.
func (p *Pipeline) parse(relPath string) *message.View {
	v, err := message.ParseFile(p.scan.Resolve(relPath))
	if err != nil {
		p.log.Warn("failed to parse message", zap.String("path", relPath), zap.Error(err))
		return message.Empty()
	}
	return v
}

func (p *Pipeline) workers() int {
	if p.cfg.Workers < 1 {
		return 1
	}
	return p.cfg.Workers
}

var previewFold = strings.NewReplacer("\n", " ", "\r", " ")

func preview(body string) string {
	if len(body) > bodyPreviewLen {
		body = body[:bodyPreviewLen]
	}
	return strings.TrimSpace(previewFold.Replace(body))
}
