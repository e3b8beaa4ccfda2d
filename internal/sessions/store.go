package sessions

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Houeta/top20-launcher/internal/models"
	"github.com/google/uuid"
)

// File names inside one session directory. Existing saved searches depend on them.
const (
	DataFile = "results.csv"
	MetaFile = "meta.json"
)

const (
	idLen    = 12
	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	ErrNotFound  = errors.New("saved search not found")
	ErrInvalidID = errors.New("invalid saved search id")
)

// Columns is the header of results.csv: Micro Center fields first, then Amazon fields.
var Columns = []string{
	"MC SKU", "MC Title", "MC Retail", "MC Cost", "1-4 Avg", "Attributes", "Notes",
	"Rank", "ASIN", "Amazon Title", "Amazon Price", "Sell Through", "Amazon URL", "Image URL",
}

var idPattern = regexp.MustCompile(`^[0-9a-f-]{1,64}$`)

// Store reads and writes saved searches under a single directory.
type Store struct {
	log *slog.Logger
	dir string
	now func() time.Time
}

func NewStore(log *slog.Logger, dir string) *Store {
	return &Store{log: log, dir: dir, now: time.Now}
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// NewID returns a short random session id.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLen]
}

// Save writes both session files, assigning an id and creation time when missing.
func (s *Store) Save(ctx context.Context, session *models.Session) (string, error) {
	const opn = "sessions.Store.Save"

	if session.ID == "" {
		session.ID = NewID()
	}
	if !idPattern.MatchString(session.ID) {
		return "", fmt.Errorf("%s: %w: %q", opn, ErrInvalidID, session.ID)
	}
	if session.Meta.CreatedAt.IsZero() {
		session.Meta.CreatedAt = s.now().UTC()
	}
	session.Meta.ItemCount = len(session.Rows)

	dir := filepath.Join(s.dir, session.ID)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("%s: failed to create session directory: %w", opn, err)
	}

	if err := writeAtomic(filepath.Join(dir, DataFile), func(w io.Writer) error {
		return writeRows(w, session.Rows)
	}); err != nil {
		return "", fmt.Errorf("%s: failed to write %s: %w", opn, DataFile, err)
	}

	if err := writeAtomic(filepath.Join(dir, MetaFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(session.Meta)
	}); err != nil {
		return "", fmt.Errorf("%s: failed to write %s: %w", opn, MetaFile, err)
	}

	s.log.DebugContext(ctx, "Saved search stored", "op", opn, "id", session.ID, "rows", len(session.Rows))

	return session.ID, nil
}

// Load reads one session with all of its rows.
func (s *Store) Load(id string) (*models.Session, error) {
	const opn = "sessions.Store.Load"

	if !idPattern.MatchString(id) {
		return nil, fmt.Errorf("%s: %w: %q", opn, ErrInvalidID, id)
	}

	meta, err := s.readMeta(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	file, err := os.Open(filepath.Join(s.dir, id, DataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %s: %w", opn, id, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: failed to open %s: %w", opn, DataFile, err)
	}
	defer file.Close()

	rows, err := readRows(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", opn, id, err)
	}

	return &models.Session{ID: id, Meta: *meta, Rows: rows}, nil
}

// List returns every readable session without rows, newest first.
// Directories with a missing or broken meta file are skipped.
func (s *Store) List(ctx context.Context) ([]models.Session, error) {
	const opn = "sessions.Store.List"

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	var list []models.Session
	for _, entry := range entries {
		if !entry.IsDir() || !idPattern.MatchString(entry.Name()) {
			continue
		}

		meta, err := s.readMeta(entry.Name())
		if err != nil {
			s.log.WarnContext(ctx, "skipping unreadable saved search", "op", opn, "id", entry.Name(), "error", err)
			continue
		}
		list = append(list, models.Session{ID: entry.Name(), Meta: *meta})
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].Meta.CreatedAt.Equal(list[j].Meta.CreatedAt) {
			return list[i].Meta.CreatedAt.After(list[j].Meta.CreatedAt)
		}
		return list[i].ID < list[j].ID
	})

	return list, nil
}

// Delete removes a session directory.
func (s *Store) Delete(id string) error {
	const opn = "sessions.Store.Delete"

	if !idPattern.MatchString(id) {
		return fmt.Errorf("%s: %w: %q", opn, ErrInvalidID, id)
	}

	dir := filepath.Join(s.dir, id)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %s: %w", opn, id, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", opn, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

func (s *Store) readMeta(id string) (*models.SessionMeta, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, id, MetaFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", MetaFile, err)
	}

	var meta models.SessionMeta
	if err = json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", MetaFile, err)
	}

	return &meta, nil
}

func writeRows(w io.Writer, rows []models.MatchRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.MCSKU, r.MCTitle, r.MCRetail, r.MCCost, r.Avg14, r.Attributes, r.Notes,
			strconv.Itoa(r.Rank), r.ASIN, r.AmazonTitle, r.AmazonPrice, r.SellThrough, r.AmazonURL, r.ImageURL,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func readRows(r io.Reader) ([]models.MatchRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, col := range Columns {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i+1, header[i], col)
		}
	}

	var rows []models.MatchRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		rank := 0
		if strings.TrimSpace(rec[7]) != "" {
			if rank, err = strconv.Atoi(strings.TrimSpace(rec[7])); err != nil {
				return nil, fmt.Errorf("row %d: invalid rank %q: %w", line, rec[7], err)
			}
		}

		rows = append(rows, models.MatchRow{
			MCSKU:       rec[0],
			MCTitle:     rec[1],
			MCRetail:    rec[2],
			MCCost:      rec[3],
			Avg14:       rec[4],
			Attributes:  rec[5],
			Notes:       rec[6],
			Rank:        rank,
			ASIN:        rec[8],
			AmazonTitle: rec[9],
			AmazonPrice: rec[10],
			SellThrough: rec[11],
			AmazonURL:   rec[12],
			ImageURL:    rec[13],
		})
	}

	return rows, nil
}

// writeAtomic writes through a temp file in the same directory and renames it into place.
func writeAtomic(path string, fill func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err = fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
