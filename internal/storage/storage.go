package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/Tiliavir/trivial-jira-logger/internal/model"
)

// BaseDir returns the root journal directory (~/.tjl/journal).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tjl", "journal"), nil
}

// dayFilePath returns the path for the given date's JSON file.
func dayFilePath(base string, t time.Time) string {
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02")+".json")
}

// lock takes the journal-wide file lock, blocking until it is free.
func lock(base string) (*flock.Flock, error) {
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating directories: %w", err)
	}
	fl := flock.New(filepath.Join(base, ".lock"))
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("storage error locking journal: %w", err)
	}
	return fl, nil
}

// LoadDay loads the DayFile for the given date. Returns an empty DayFile if not found.
func LoadDay(base string, t time.Time) (model.DayFile, error) {
	path := dayFilePath(base, t)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DayFile{Date: t.Format("2006-01-02"), Entries: []model.JournalEntry{}}, nil
	}
	if err != nil {
		return model.DayFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var df model.DayFile
	if err := json.Unmarshal(data, &df); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.DayFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return df, nil
}

// SaveDay atomically writes a DayFile for the given date.
func SaveDay(base string, t time.Time, df model.DayFile) error {
	path := dayFilePath(base, t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// UpdateEntry records entry in the day file of its start date, replacing an
// earlier entry for the same worklog. Concurrent writers are serialized.
func UpdateEntry(base string, entry model.JournalEntry) error {
	fl, err := lock(base)
	if err != nil {
		return err
	}
	defer fl.Unlock()

	day := entry.Started.Local()
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	for i, e := range df.Entries {
		if e.WorklogID == entry.WorklogID && e.Server == entry.Server {
			df.Entries[i] = entry
			return SaveDay(base, day, df)
		}
	}
	df.Entries = append(df.Entries, entry)
	return SaveDay(base, day, df)
}

// RemoveEntry drops a worklog's entry from the day file of day.
func RemoveEntry(base string, day time.Time, server, worklogID string) error {
	fl, err := lock(base)
	if err != nil {
		return err
	}
	defer fl.Unlock()

	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	kept := df.Entries[:0]
	for _, e := range df.Entries {
		if e.WorklogID != worklogID || e.Server != server {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(df.Entries) {
		return nil
	}
	df.Entries = kept
	return SaveDay(base, day, df)
}

// FindEntry searches the journal (most recent first, up to days back from
// now) for the entry of a worklog.
func FindEntry(base, server, worklogID string, now time.Time, days int) (*model.JournalEntry, error) {
	for i := 0; i <= days; i++ {
		df, err := LoadDay(base, now.AddDate(0, 0, -i))
		if err != nil {
			return nil, err
		}
		for j := len(df.Entries) - 1; j >= 0; j-- {
			e := df.Entries[j]
			if e.WorklogID == worklogID && e.Server == server {
				return &e, nil
			}
		}
	}
	return nil, nil
}

// LoadRange loads all entries in [from, to] inclusive.
func LoadRange(base string, from, to time.Time) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		df, err := LoadDay(base, d)
		if err != nil {
			return nil, err
		}
		entries = append(entries, df.Entries...)
	}
	return entries, nil
}
