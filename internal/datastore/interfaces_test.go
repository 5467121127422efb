package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSSputnik/RVEZeitmessung/internal/conf"
)

// createDatabase initializes a temporary database for testing purposes.
// It ensures the database connection is opened and handles potential errors.
func createDatabase(t *testing.T) Interface {
	t.Helper()
	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = t.TempDir() + "/test.db"

	store := New(settings)
	require.NotNil(t, store, "No store returned for SQLite settings")

	require.NoError(t, store.Open(), "Failed to open database")

	t.Cleanup(func() {
		assert.NoError(t, store.Close(), "Failed to close datastore")
	})

	return store
}

func TestFreshInsert(t *testing.T) {
	store := createDatabase(t)

	outcome, err := store.Upsert(12, 9, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Inserted, outcome)

	record, err := store.Get(12)
	require.NoError(t, err)
	assert.Equal(t, 32400, record.SecToday)
	assert.Equal(t, "09:00:00", record.TimeString)
	assert.Equal(t, 0, record.Backup1)
	assert.Equal(t, 0, record.Backup2)
	assert.False(t, record.Corrected())

	// first stamp is not a correction
	entries, err := store.AuditForSubject(12)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryShiftDepthOne(t *testing.T) {
	store := createDatabase(t)

	_, err := store.Upsert(12, 9, 0, 0)
	require.NoError(t, err)

	outcome, err := store.UpdateWithHistory(12, 9, 5, 0, "corrected")
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	record, err := store.Get(12)
	require.NoError(t, err)
	assert.Equal(t, 32700, record.SecToday)
	assert.Equal(t, "09:05:00", record.TimeString)
	assert.Equal(t, 32400, record.Backup1)
	assert.Equal(t, 0, record.Backup2)
	assert.True(t, record.Corrected())

	entries, err := store.AuditForSubject(12)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 12, entries[0].Subject)
	assert.Equal(t, "corrected", entries[0].Name)
	assert.Equal(t, "from 09:00:00 to 09:05:00", entries[0].Data)
}

func TestHistoryShiftDepthTwo(t *testing.T) {
	store := createDatabase(t)

	_, err := store.Upsert(12, 9, 0, 0)
	require.NoError(t, err)
	_, err = store.UpdateWithHistory(12, 9, 5, 0, "")
	require.NoError(t, err)

	outcome, err := store.UpdateWithHistory(12, 9, 10, 0, "")
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	record, err := store.Get(12)
	require.NoError(t, err)
	assert.Equal(t, 33000, record.SecToday)
	assert.Equal(t, 32700, record.Backup1)
	assert.Equal(t, 32400, record.Backup2)

	entries, err := store.AuditForSubject(12)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryShiftDiscardsOldest(t *testing.T) {
	store := createDatabase(t)

	_, err := store.Upsert(12, 9, 0, 0)
	require.NoError(t, err)
	for _, minute := range []int{5, 10, 15} {
		_, err = store.UpdateWithHistory(12, 9, minute, 0, "")
		require.NoError(t, err)
	}

	record, err := store.Get(12)
	require.NoError(t, err)
	assert.Equal(t, 33300, record.SecToday)
	assert.Equal(t, 33000, record.Backup1)
	assert.Equal(t, 32700, record.Backup2) // 32400 has been discarded
}

func TestUpsertRestampShiftsHistory(t *testing.T) {
	store := createDatabase(t)

	_, err := store.Upsert(7, 10, 0, 0)
	require.NoError(t, err)

	outcome, err := store.Upsert(7, 10, 0, 30)
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	record, err := store.Get(7)
	require.NoError(t, err)
	assert.Equal(t, 36030, record.SecToday)
	assert.Equal(t, 36000, record.Backup1)

	entries, err := store.AuditForSubject(7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, CommentStamp, entries[0].Name)
}

func TestNoopCorrection(t *testing.T) {
	store := createDatabase(t)

	_, err := store.Upsert(12, 9, 0, 0)
	require.NoError(t, err)
	_, err = store.UpdateWithHistory(12, 9, 5, 0, "")
	require.NoError(t, err)

	outcome, err := store.UpdateWithHistory(12, 9, 5, 0, "")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome)

	record, err := store.Get(12)
	require.NoError(t, err)
	assert.Equal(t, 32700, record.SecToday)
	assert.Equal(t, 32400, record.Backup1)
	assert.Equal(t, 0, record.Backup2)

	// the skipped correction must not show up in the audit log
	entries, err := store.AuditForSubject(12)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpdateMissingRecord(t *testing.T) {
	store := createDatabase(t)

	_, err := store.UpdateWithHistory(99, 9, 0, 0, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCascadeDelete(t *testing.T) {
	store := createDatabase(t)

	_, err := store.Upsert(12, 9, 0, 0)
	require.NoError(t, err)
	_, err = store.UpdateWithHistory(12, 9, 5, 0, "")
	require.NoError(t, err)
	_, err = store.UpdateWithHistory(12, 9, 10, 0, "")
	require.NoError(t, err)

	// an unrelated record survives the cascade
	_, err = store.Upsert(13, 8, 0, 0)
	require.NoError(t, err)
	_, err = store.UpdateWithHistory(13, 8, 1, 0, "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(12))

	_, err = store.Get(12)
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := store.AuditForSubject(12)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = store.AuditForSubject(13)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	store := createDatabase(t)

	assert.NoError(t, store.Delete(4711))
}

func TestAllRecordsDescending(t *testing.T) {
	store := createDatabase(t)

	times := map[int][3]int{
		3:  {9, 30, 0},
		17: {8, 15, 0},
		9:  {11, 0, 5},
		5:  {7, 59, 59},
	}
	for bib, hms := range times {
		_, err := store.Upsert(bib, hms[0], hms[1], hms[2])
		require.NoError(t, err)
	}

	records, err := store.AllRecords()
	require.NoError(t, err)
	require.Len(t, records, 4)
	for i := 0; i < len(records)-1; i++ {
		assert.GreaterOrEqual(t, records[i].SecToday, records[i+1].SecToday)
	}

	// repeated read without mutation returns the identical sequence
	again, err := store.AllRecords()
	require.NoError(t, err)
	assert.Equal(t, records, again)
}

func TestMaxNumber(t *testing.T) {
	store := createDatabase(t)

	maxNumber, err := store.MaxNumber()
	require.NoError(t, err)
	assert.Equal(t, 0, maxNumber, "empty store must report 0")

	for _, bib := range []int{3, 17, 9} {
		_, err := store.Upsert(bib, 9, 0, bib)
		require.NoError(t, err)
	}

	maxNumber, err = store.MaxNumber()
	require.NoError(t, err)
	assert.Equal(t, 17, maxNumber)

	require.NoError(t, store.Delete(17))

	maxNumber, err = store.MaxNumber()
	require.NoError(t, err)
	assert.Equal(t, 9, maxNumber)
}

func TestInvalidInputs(t *testing.T) {
	store := createDatabase(t)

	_, err := store.Upsert(0, 9, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = store.Upsert(5, 24, 0, 0)
	assert.Error(t, err, "hour 24 must be rejected")

	_, err = store.Get(-1)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestParseBib(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"plain number", "12", 12, false},
		{"surrounding spaces", " 42 ", 42, false},
		{"empty", "", 0, true},
		{"blank", "   ", 0, true},
		{"not a number", "abc", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBib(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuditSequenceMonotonic(t *testing.T) {
	store := createDatabase(t)

	_, err := store.Upsert(1, 9, 0, 0)
	require.NoError(t, err)
	for minute := 1; minute <= 4; minute++ {
		_, err = store.UpdateWithHistory(1, 9, minute, 0, "")
		require.NoError(t, err)
	}

	entries, err := store.AuditForSubject(1)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	for i := 0; i < len(entries)-1; i++ {
		assert.Less(t, entries[i].Number, entries[i+1].Number)
	}
}
