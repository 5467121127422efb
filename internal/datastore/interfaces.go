// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MSSputnik/RVEZeitmessung/internal/conf"
	"github.com/MSSputnik/RVEZeitmessung/internal/errors"
	"github.com/MSSputnik/RVEZeitmessung/internal/timecode"
)

// Sentinel errors surfaced to callers.
var (
	// ErrNotFound is returned when no TimeRecord exists for a bib number.
	ErrNotFound = errors.NewStd("time record not found")
	// ErrInvalidKey is returned for bib numbers that are not positive integers.
	ErrInvalidKey = errors.NewStd("invalid bib number")
)

// Outcome describes the result of a write operation.
type Outcome int

const (
	// Inserted means a fresh record was created; no audit entry is written.
	Inserted Outcome = iota
	// Updated means an existing record was corrected and one audit entry appended.
	Updated
	// Unchanged means the new time equals the stored one; nothing was written.
	Unchanged
)

// String returns a human readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Comments written into the audit log, matching the legacy tool.
const (
	CommentStamp      = "New time for"
	CommentCorrection = "Change time of"
)

// Interface abstracts the underlying database implementation and defines
// the operations of the time-record store.
type Interface interface {
	Open() error
	Close() error
	Get(bib int) (TimeRecord, error)
	Upsert(bib, hour, minute, second int) (Outcome, error)
	UpdateWithHistory(bib, hour, minute, second int, comment string) (Outcome, error)
	Delete(bib int) error
	MaxNumber() (int, error)
	AllRecords() ([]TimeRecord, error)
	AuditForSubject(bib int) ([]AuditEntry, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new DataStore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// ParseBib converts operator text input into a bib number. The store
// itself only accepts parsed positive integers; this is the helper for
// callers holding raw input.
func ParseBib(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidKey)
	}
	bib, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidKey, input)
	}
	if bib <= 0 {
		return 0, fmt.Errorf("%w: %d is not positive", ErrInvalidKey, bib)
	}
	return bib, nil
}

func validateInputs(bib, hour, minute, second int) error {
	if bib <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidKey, bib)
	}
	if !timecode.ValidClock(hour, minute, second) {
		return validationError("time of day out of range", "time",
			timecode.Clock(hour, minute, second))
	}
	return nil
}

// Get retrieves the time record for a bib number.
func (ds *DataStore) Get(bib int) (TimeRecord, error) {
	if bib <= 0 {
		return TimeRecord{}, fmt.Errorf("%w: %d", ErrInvalidKey, bib)
	}
	var record TimeRecord
	if err := ds.DB.First(&record, "nummer = ?", bib).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeRecord{}, fmt.Errorf("bib %d: %w", bib, ErrNotFound)
		}
		return TimeRecord{}, dbError(err, "get", "bib", bib)
	}
	return record, nil
}

// Upsert stamps a time against a bib number. A fresh bib number creates
// a record with empty history and no audit entry; an existing one is
// corrected through the history shift.
func (ds *DataStore) Upsert(bib, hour, minute, second int) (Outcome, error) {
	if err := validateInputs(bib, hour, minute, second); err != nil {
		return Unchanged, err
	}

	var existing TimeRecord
	err := ds.DB.First(&existing, "nummer = ?", bib).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := TimeRecord{
			Number:     bib,
			TimeString: timecode.Clock(hour, minute, second),
			Hour:       hour,
			Minute:     minute,
			Second:     second,
			SecToday:   timecode.SecondsSinceMidnight(hour, minute, second),
		}
		if err := ds.DB.Create(&record).Error; err != nil {
			return Unchanged, dbError(err, "insert", "bib", bib)
		}
		return Inserted, nil
	case err != nil:
		return Unchanged, dbError(err, "upsert", "bib", bib)
	}

	return ds.correct(&existing, hour, minute, second, CommentStamp)
}

// UpdateWithHistory applies a manual correction to an existing record.
// It fails with ErrNotFound when the bib number has never been stamped.
func (ds *DataStore) UpdateWithHistory(bib, hour, minute, second int, comment string) (Outcome, error) {
	if err := validateInputs(bib, hour, minute, second); err != nil {
		return Unchanged, err
	}
	if comment == "" {
		comment = CommentCorrection
	}

	var existing TimeRecord
	if err := ds.DB.First(&existing, "nummer = ?", bib).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Unchanged, fmt.Errorf("bib %d: %w", bib, ErrNotFound)
		}
		return Unchanged, dbError(err, "update", "bib", bib)
	}

	return ds.correct(&existing, hour, minute, second, comment)
}

// correct shifts the history register and writes the new canonical
// fields together with exactly one audit entry, in a single
// transaction. A correction that does not change the sort key writes
// nothing at all, so the audit log only records real changes.
func (ds *DataStore) correct(record *TimeRecord, hour, minute, second int, comment string) (Outcome, error) {
	newSec := timecode.SecondsSinceMidnight(hour, minute, second)
	if newSec == record.SecToday {
		return Unchanged, nil
	}

	newString := timecode.Clock(hour, minute, second)
	oldString := record.TimeString

	nowH, nowM, nowS := timecode.Now()
	entry := AuditEntry{
		TimeString: timecode.Clock(nowH, nowM, nowS),
		Hour:       nowH,
		Minute:     nowM,
		Second:     nowS,
		Name:       comment,
		Subject:    record.Number,
		Data:       fmt.Sprintf("from %s to %s", oldString, newString),
	}

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"timeString": newString,
			"h":          hour,
			"min":        minute,
			"sec":        second,
			"secToday":   newSec,
			"backup1":    record.SecToday,
			"backup2":    record.Backup1,
		}
		if err := tx.Model(&TimeRecord{}).Where("nummer = ?", record.Number).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("updating record: %w", err)
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("appending audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return Unchanged, dbError(err, "correct", "bib", record.Number)
	}
	return Updated, nil
}

// Delete removes the record and every audit entry describing it. It is
// a no-op when the bib number does not exist.
func (ds *DataStore) Delete(bib int) error {
	if bib <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidKey, bib)
	}
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("int = ?", bib).Delete(&AuditEntry{}).Error; err != nil {
			return fmt.Errorf("deleting audit entries for bib %d: %w", bib, err)
		}
		if err := tx.Where("nummer = ?", bib).Delete(&TimeRecord{}).Error; err != nil {
			return fmt.Errorf("deleting record for bib %d: %w", bib, err)
		}
		return nil
	})
	if err != nil {
		return dbError(err, "delete", "bib", bib)
	}
	return nil
}

// MaxNumber returns the highest bib number currently stored, or 0 when
// the store is empty. The caller pre-fills the next expected bib with it.
func (ds *DataStore) MaxNumber() (int, error) {
	var maxNumber int
	err := ds.DB.Model(&TimeRecord{}).
		Select("COALESCE(MAX(nummer), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, dbError(err, "max_number")
	}
	return maxNumber, nil
}

// AllRecords returns every record ordered by secToday descending, the
// latest time first. Ties are broken by bib number so repeated calls
// return identical sequences.
func (ds *DataStore) AllRecords() ([]TimeRecord, error) {
	var records []TimeRecord
	if err := ds.DB.Order("secToday DESC, nummer ASC").Find(&records).Error; err != nil {
		return nil, dbError(err, "all_records")
	}
	return records, nil
}

// AuditForSubject returns the audit entries describing a bib number in
// append order.
func (ds *DataStore) AuditForSubject(bib int) ([]AuditEntry, error) {
	if bib <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKey, bib)
	}
	var entries []AuditEntry
	if err := ds.DB.Where("int = ?", bib).Order("nummer ASC").Find(&entries).Error; err != nil {
		return nil, dbError(err, "audit_for_subject", "bib", bib)
	}
	return entries, nil
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&TimeRecord{}, &AuditEntry{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}

	return nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}
