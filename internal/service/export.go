package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/duitku/duitku-server/internal/storage"
	"github.com/duitku/duitku-server/internal/storage/savings"
)

// ContentTypeCSV is the media type of export artifacts.
const ContentTypeCSV = "text/csv; charset=utf-8"

const exportDateLayout = "2006-01-02"

// Artifact is a rendered export: a byte buffer plus the filename embedding
// the export date.
type Artifact struct {
	Filename string
	Data     []byte
}

// ExportService renders the current store contents into CSV artifacts.
// Row ordering matches the record service's read ordering exactly, so
// exporting twice with no intervening writes is byte-identical apart from
// the filename date.
type ExportService struct {
	storage *storage.Storage
	now     func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(store *storage.Storage) *ExportService {
	return &ExportService{storage: store, now: time.Now}
}

// TransactionsCSV renders the user's transactions (date descending, with
// category names resolved) followed by their savings pools (name
// ascending) as a second table region in the same artifact.
func (s *ExportService) TransactionsCSV(ctx context.Context, userID string) (*Artifact, error) {
	transactions, err := s.storage.Transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories, err := s.storage.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}

	pools, err := s.storage.Savings.List(ctx, userID, savings.OrderNameAsc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"Judul", "Jumlah", "Deskripsi", "Tanggal", "Tipe", "Kategori"})
	for _, tx := range transactions {
		categoryName := ""
		if tx.CategoryID != nil {
			categoryName = categoryNames[*tx.CategoryID]
		}
		_ = w.Write([]string{
			tx.Title,
			tx.Amount.String(),
			tx.Description,
			tx.Date.Format(exportDateLayout),
			tx.Type,
			categoryName,
		})
	}

	_ = w.Write([]string{""})
	writeSavingsRegion(w, pools)

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &Artifact{
		Filename: "Laporan_Transaksi_" + s.now().Format(exportDateLayout) + ".csv",
		Data:     buf.Bytes(),
	}, nil
}

// SavingsCSV renders the user's savings pools alone, name ascending.
func (s *ExportService) SavingsCSV(ctx context.Context, userID string) (*Artifact, error) {
	pools, err := s.storage.Savings.List(ctx, userID, savings.OrderNameAsc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	writeSavingsRegion(w, pools)
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &Artifact{
		Filename: "Laporan_Tabungan_" + s.now().Format(exportDateLayout) + ".csv",
		Data:     buf.Bytes(),
	}, nil
}

func writeSavingsRegion(w *csv.Writer, pools []*savings.SavingsPool) {
	_ = w.Write([]string{"Nama", "Saldo Awal", "Jumlah Saat Ini"})
	for _, pool := range pools {
		_ = w.Write([]string{
			pool.Name,
			pool.InitialBalance.String(),
			pool.CurrentAmount.String(),
		})
	}
}
