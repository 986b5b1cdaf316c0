package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"craftdex/core/reconcile"
	"craftdex/core/storage"
	"craftdex/feature/catalog"
	"craftdex/feature/catalog/models"
	"craftdex/feature/transfer/codec"
	"craftdex/feature/transfer/records"
)

// Bundle file names inside a CSV export directory.
const (
	resourcesCSVName = "resources.csv"
	recipesCSVName   = "crafting_recipes.csv"
)

// Report aggregates the outcome of one import run.
type Report struct {
	Format   codec.Format       `json:"format"`
	Strategy reconcile.Strategy `json:"strategy"`
	// Resources and Recipes hold per-record outcomes for each entity kind.
	Resources *reconcile.Result `json:"resources,omitempty"`
	Recipes   *reconcile.Result `json:"recipes,omitempty"`
}

// TotalFailed returns the number of records that could not be imported.
func (r *Report) TotalFailed() int {
	total := 0
	if r.Resources != nil {
		total += r.Resources.Failed
	}
	if r.Recipes != nil {
		total += r.Recipes.Failed
	}
	return total
}

// Service drives the export and import pipelines. Exports read the whole
// catalog, assemble canonical records and hand them to a codec. Imports
// decode a document and reconcile it against the catalog, resources before
// recipes so ingredient references can resolve against resources created in
// the same run.
type Service struct {
	store    catalog.Store
	cfg      Config
	logger   *zap.Logger
	engine   *reconcile.Engine
	resolver *Resolver

	json     codec.JSONCodec
	markdown codec.MarkdownCodec
	csv      codec.CSVCodec

	backups storage.Client
	bucket  string
}

// NewService creates the transfer service.
func NewService(store catalog.Store, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		cfg:      cfg,
		logger:   logger,
		engine:   reconcile.NewEngine(logger),
		resolver: NewResolver(store, logger),
		json:     codec.JSONCodec{},
		markdown: codec.NewMarkdownCodec(logger),
		csv:      codec.NewCSVCodec(logger),
	}
}

// EnableBackups wires an object storage client as the backup destination.
func (s *Service) EnableBackups(client storage.Client, bucket string) {
	s.backups = client
	s.bucket = bucket
}

// ImportData imports a document from the filesystem. For the CSV format the
// source must be a bundle directory; for JSON and Markdown it is a single
// file.
func (s *Service) ImportData(ctx context.Context, source string, format codec.Format, strategy reconcile.Strategy) (*Report, error) {
	if format == codec.FormatCSV {
		return s.importCSVBundle(ctx, source, strategy)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return s.ImportBytes(ctx, data, format, strategy)
}

// ImportBytes imports a single JSON or Markdown document held in memory.
func (s *Service) ImportBytes(ctx context.Context, data []byte, format codec.Format, strategy reconcile.Strategy) (*Report, error) {
	var (
		doc *records.Document
		err error
	)
	switch format {
	case codec.FormatJSON:
		doc, err = s.json.Decode(data)
	case codec.FormatMarkdown:
		doc, err = s.markdown.Decode(data)
	case codec.FormatCSV:
		return nil, fmt.Errorf("csv import requires a bundle directory")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	return s.importDocument(ctx, doc, format, strategy), nil
}

// importCSVBundle decodes both tables of a bundle directory before touching
// the store, so a malformed table fails the import without partial effects.
func (s *Service) importCSVBundle(ctx context.Context, dir string, strategy reconcile.Strategy) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV bundle: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("csv import source must be a directory: %s", dir)
	}

	doc := &records.Document{}
	found := false

	resourcesPath := filepath.Join(dir, resourcesCSVName)
	if data, err := os.ReadFile(resourcesPath); err == nil {
		found = true
		doc.Resources, err = s.csv.DecodeResources(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", resourcesCSVName, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", resourcesCSVName, err)
	}

	recipesPath := filepath.Join(dir, recipesCSVName)
	if data, err := os.ReadFile(recipesPath); err == nil {
		found = true
		doc.Recipes, err = s.csv.DecodeRecipes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", recipesCSVName, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", recipesCSVName, err)
	}

	if !found {
		return nil, fmt.Errorf("no %s or %s in bundle directory %s", resourcesCSVName, recipesCSVName, dir)
	}

	return s.importDocument(ctx, doc, codec.FormatCSV, strategy), nil
}

// importDocument reconciles a decoded document, resources first.
func (s *Service) importDocument(ctx context.Context, doc *records.Document, format codec.Format, strategy reconcile.Strategy) *Report {
	report := &Report{Format: format, Strategy: strategy}

	if len(doc.Resources) > 0 {
		recs := make([]reconcile.Record, 0, len(doc.Resources))
		for _, r := range doc.Resources {
			recs = append(recs, r)
		}
		report.Resources = s.engine.Run(ctx, newResourceAdapter(s.store), recs, strategy)
	}

	if len(doc.Recipes) > 0 {
		recs := make([]reconcile.Record, 0, len(doc.Recipes))
		for _, r := range doc.Recipes {
			recs = append(recs, r)
		}
		report.Recipes = s.engine.Run(ctx, newRecipeAdapter(s.store, s.resolver), recs, strategy)
	}

	return report
}

// ExportData writes the whole catalog to dest in the given format. For CSV
// the destination's extension is stripped and a bundle directory is created
// in its place.
func (s *Service) ExportData(ctx context.Context, dest string, format codec.Format) error {
	doc, err := s.assembleDocument(ctx)
	if err != nil {
		return err
	}

	switch format {
	case codec.FormatJSON, codec.FormatMarkdown:
		data, err := s.encodeDocument(doc, format)
		if err != nil {
			return err
		}
		return writeFile(dest, data)

	case codec.FormatCSV:
		dir := strings.TrimSuffix(dest, filepath.Ext(dest))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create bundle directory: %w", err)
		}
		resData, err := s.csv.EncodeResources(doc.Resources)
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(dir, resourcesCSVName), resData); err != nil {
			return err
		}
		recData, err := s.csv.EncodeRecipes(doc.Recipes)
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(dir, recipesCSVName), recData)

	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// ExportBytes renders the whole catalog in the given format. CSV has no
// single-document form and is rejected.
func (s *Service) ExportBytes(ctx context.Context, format codec.Format) ([]byte, error) {
	doc, err := s.assembleDocument(ctx)
	if err != nil {
		return nil, err
	}
	return s.encodeDocument(doc, format)
}

// ExportResources writes only the resources to dest. CSV writes a single
// table file rather than a bundle directory.
func (s *Service) ExportResources(ctx context.Context, dest string, format codec.Format) error {
	resources, err := s.store.ListResources(ctx)
	if err != nil {
		return err
	}
	doc := &records.Document{
		Metadata:  s.buildMetadata(len(resources), 0),
		Resources: resourceRecords(resources),
	}

	if format == codec.FormatCSV {
		data, err := s.csv.EncodeResources(doc.Resources)
		if err != nil {
			return err
		}
		return writeFile(dest, data)
	}

	data, err := s.encodeDocument(doc, format)
	if err != nil {
		return err
	}
	return writeFile(dest, data)
}

// ExportRecipes writes only the crafting recipes to dest. CSV writes a
// single table file rather than a bundle directory.
func (s *Service) ExportRecipes(ctx context.Context, dest string, format codec.Format) error {
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return err
	}
	doc := &records.Document{
		Metadata: s.buildMetadata(0, len(recipes)),
		Recipes:  recipeRecords(recipes),
	}

	if format == codec.FormatCSV {
		data, err := s.csv.EncodeRecipes(doc.Recipes)
		if err != nil {
			return err
		}
		return writeFile(dest, data)
	}

	data, err := s.encodeDocument(doc, format)
	if err != nil {
		return err
	}
	return writeFile(dest, data)
}

// Backup uploads a JSON export of the whole catalog to the storage bucket.
func (s *Service) Backup(ctx context.Context) error {
	if s.backups == nil {
		return fmt.Errorf("backup storage is not configured")
	}

	data, err := s.ExportBytes(ctx, codec.FormatJSON)
	if err != nil {
		return err
	}

	exists, err := s.backups.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check backup bucket: %w", err)
	}
	if !exists {
		if err := s.backups.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create backup bucket: %w", err)
		}
	}

	_, err = s.backups.PutObject(ctx, s.bucket, s.cfg.BackupObject,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload backup: %w", err)
	}

	s.logger.Info("Backup uploaded",
		zap.String("bucket", s.bucket),
		zap.String("object", s.cfg.BackupObject),
		zap.Int("bytes", len(data)))
	return nil
}

// Restore downloads the latest backup from the storage bucket and imports it
// with the given strategy.
func (s *Service) Restore(ctx context.Context, strategy reconcile.Strategy) (*Report, error) {
	if s.backups == nil {
		return nil, fmt.Errorf("backup storage is not configured")
	}

	obj, err := s.backups.GetObject(ctx, s.bucket, s.cfg.BackupObject, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download backup: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	return s.ImportBytes(ctx, data, codec.FormatJSON, strategy)
}

func (s *Service) encodeDocument(doc *records.Document, format codec.Format) ([]byte, error) {
	switch format {
	case codec.FormatJSON:
		return s.json.Encode(doc)
	case codec.FormatMarkdown:
		return s.markdown.Encode(doc)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// assembleDocument reads the whole catalog into canonical records. Recipe
// ingredients carry resource names freshly resolved by the store.
func (s *Service) assembleDocument(ctx context.Context) (*records.Document, error) {
	resources, err := s.store.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	return &records.Document{
		Metadata:  s.buildMetadata(len(resources), len(recipes)),
		Resources: resourceRecords(resources),
		Recipes:   recipeRecords(recipes),
	}, nil
}

func (s *Service) buildMetadata(totalResources, totalRecipes int) records.Metadata {
	return records.Metadata{
		ExportDate:     time.Now().UTC().Format(time.RFC3339),
		AppVersion:     s.cfg.AppVersion,
		TotalResources: totalResources,
		TotalRecipes:   totalRecipes,
	}
}

func resourceRecords(resources []models.Resource) []records.Resource {
	out := make([]records.Resource, 0, len(resources))
	for _, m := range resources {
		m := m
		out = append(out, records.Resource{
			ID:              &m.ID,
			Name:            m.Name,
			Category:        &m.Category,
			Rarity:          &m.Rarity,
			Description:     &m.Description,
			SourceLocations: &m.SourceLocations,
			IconPath:        &m.IconPath,
			Discovered:      &m.Discovered,
			CreatedAt:       m.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:       m.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func recipeRecords(recipes []models.CraftingRecipe) []records.Recipe {
	out := make([]records.Recipe, 0, len(recipes))
	for _, m := range recipes {
		m := m
		rec := records.Recipe{
			ID:                  &m.ID,
			Name:                m.Name,
			Description:         &m.Description,
			OutputItemName:      &m.OutputItemName,
			OutputQuantity:      &m.OutputQuantity,
			CraftingTimeSeconds: &m.CraftingTimeSeconds,
			RequiredStation:     &m.RequiredStation,
			SkillRequirement:    &m.SkillRequirement,
			IconPath:            &m.IconPath,
			Discovered:          &m.Discovered,
			Ingredients:         make([]records.Ingredient, 0, len(m.Ingredients)),
			CreatedAt:           m.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:           m.UpdatedAt.UTC().Format(time.RFC3339),
		}
		for _, ing := range m.Ingredients {
			ing := ing
			rec.Ingredients = append(rec.Ingredients, records.Ingredient{
				ResourceID:   &ing.ResourceID,
				ResourceName: ing.ResourceName,
				Quantity:     ing.Quantity,
			})
		}
		out = append(out, rec)
	}
	return out
}

func writeFile(dest string, data []byte) error {
	if dir := filepath.Dir(dest); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
