package importhandlers

import (
	"context"

	"github.com/google/uuid"
	importservice "github.com/rosterhq/roster-import/app/modules/playerimport/application"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
)

// ------------------------
// Fake Import Service
// ------------------------

type FakeImportService struct {
	trace []string

	ValidateUploadFunc   func(ctx context.Context, clubID uuid.UUID, fileName string, fileData []byte) (*importdomain.ValidationSummary, error)
	RevalidateFunc       func(ctx context.Context, clubID uuid.UUID, rows []*importdomain.ImportRow) (*importdomain.ValidationSummary, error)
	CommitFunc           func(ctx context.Context, clubID, actingUser uuid.UUID, fileName string, rows []*importdomain.ImportRow) (*importdomain.ImportResult, error)
	GetImportFunc        func(ctx context.Context, clubID, importID uuid.UUID) (*importdb.ImportAudit, error)
	GenerateTemplateFunc func(format string) (*importservice.Template, error)
}

func NewFakeImportService() *FakeImportService {
	return &FakeImportService{
		trace: []string{},
	}
}

func (f *FakeImportService) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Service Interface Implementation ---

func (f *FakeImportService) ValidateUpload(ctx context.Context, clubID uuid.UUID, fileName string, fileData []byte) (*importdomain.ValidationSummary, error) {
	f.record("ValidateUpload")
	if f.ValidateUploadFunc != nil {
		return f.ValidateUploadFunc(ctx, clubID, fileName, fileData)
	}
	return &importdomain.ValidationSummary{}, nil
}

func (f *FakeImportService) Revalidate(ctx context.Context, clubID uuid.UUID, rows []*importdomain.ImportRow) (*importdomain.ValidationSummary, error) {
	f.record("Revalidate")
	if f.RevalidateFunc != nil {
		return f.RevalidateFunc(ctx, clubID, rows)
	}
	return &importdomain.ValidationSummary{}, nil
}

func (f *FakeImportService) Commit(ctx context.Context, clubID, actingUser uuid.UUID, fileName string, rows []*importdomain.ImportRow) (*importdomain.ImportResult, error) {
	f.record("Commit")
	if f.CommitFunc != nil {
		return f.CommitFunc(ctx, clubID, actingUser, fileName, rows)
	}
	return &importdomain.ImportResult{}, nil
}

func (f *FakeImportService) GetImport(ctx context.Context, clubID, importID uuid.UUID) (*importdb.ImportAudit, error) {
	f.record("GetImport")
	if f.GetImportFunc != nil {
		return f.GetImportFunc(ctx, clubID, importID)
	}
	return nil, importdb.ErrNotFound
}

func (f *FakeImportService) GenerateTemplate(format string) (*importservice.Template, error) {
	f.record("GenerateTemplate")
	if f.GenerateTemplateFunc != nil {
		return f.GenerateTemplateFunc(format)
	}
	return &importservice.Template{FileName: "player_import_template.csv", ContentType: "text/csv"}, nil
}

// --- Accessors for assertions ---

func (f *FakeImportService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ importservice.Service = (*FakeImportService)(nil)
