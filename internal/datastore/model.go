// model.go this code defines the data model for the application
package datastore

// TimeRecord represents one stamped time per bib number. The table and
// column names follow the legacy file layout so existing databases stay
// readable.
type TimeRecord struct {
	Number     int    `gorm:"column:nummer;primaryKey"`
	TimeString string `gorm:"column:timeString"`
	Hour       int    `gorm:"column:h"`
	Minute     int    `gorm:"column:min"`
	Second     int    `gorm:"column:sec"`
	SecToday   int    `gorm:"column:secToday;index:idx_zeiten_sectoday"` // canonical sort key, seconds since midnight
	Backup1    int    `gorm:"column:backup1"`                            // secToday before the most recent correction
	Backup2    int    `gorm:"column:backup2"`                            // previous Backup1, corrections older than two are discarded
}

// TableName overrides the default table name for legacy compatibility.
func (TimeRecord) TableName() string {
	return "zeiten"
}

// Corrected reports whether the record has been manually corrected at
// least once. Listings annotate these entries.
func (r *TimeRecord) Corrected() bool {
	return r.Backup1 != 0
}

// AuditEntry is one immutable correction event. Entries are append-only
// and ordered by their auto-assigned sequence number.
type AuditEntry struct {
	Number     int    `gorm:"column:nummer;primaryKey;autoIncrement"` // sequence, never reused
	TimeString string `gorm:"column:timeString"`                      // time the correction was made
	Hour       int    `gorm:"column:h"`
	Minute     int    `gorm:"column:min"`
	Second     int    `gorm:"column:sec"`
	Name       string `gorm:"column:name"`                       // label/comment classifying the event
	Subject    int    `gorm:"column:int;index:idx_meta_subject"` // bib number the entry describes
	Data       string `gorm:"column:data"`                       // transition detail, old and new value
}

// TableName overrides the default table name for legacy compatibility.
func (AuditEntry) TableName() string {
	return "meta"
}
