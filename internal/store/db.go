package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
)

var db *sql.DB

// InitDB opens the job database and creates the schema when missing.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			line_no INTEGER,
			line TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_summary (
			job_id TEXT PRIMARY KEY,
			total_rows INTEGER,
			matches_found INTEGER,
			click_url_updates INTEGER,
			impression_url_updates INTEGER,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS output_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			file_name TEXT,
			file_path TEXT,
			file_type TEXT,
			file_size INTEGER,
			created_at DATETIME
		);`,
	}
	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

// SaveJob stores a new update job.
func SaveJob(jobID string, spec model.UpdateJobSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO jobs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		jobID, specJSON, "pending", now, now)
	return err
}

// UpdateJobStatus updates job status.
func UpdateJobStatus(jobID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`, status, now, jobID)
	return err
}

// SaveJobError records an error for a job.
func SaveJobError(jobID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO job_errors (job_id, error_message, created_at) VALUES (?, ?, ?)`,
		jobID, err.Error(), now)
	return e
}

// ListJobs returns all jobs with basic info.
func ListJobs() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return jobs, rows.Err()
}

// GetJob fetches full job spec and status.
func GetJob(jobID string) (map[string]interface{}, error) {
	var specJSON string
	var status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM jobs WHERE id = ?`, jobID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.UpdateJobSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        jobID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetJobErrors returns all recorded errors for a job, oldest first.
func GetJobErrors(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM job_errors WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errors []map[string]interface{}
	for rows.Next() {
		var message string
		var createdAt time.Time
		if err := rows.Scan(&message, &createdAt); err != nil {
			return nil, err
		}
		errors = append(errors, map[string]interface{}{
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return errors, rows.Err()
}

// SaveJobLogLines replaces the stored processing log for a job. Line order
// is preserved via line_no.
func SaveJobLogLines(jobID string, lines []string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM job_logs WHERE job_id = ?`, jobID); err != nil {
		return err
	}

	now := time.Now().UTC()
	for i, line := range lines {
		if _, err := tx.Exec(`INSERT INTO job_logs (job_id, line_no, line, created_at) VALUES (?, ?, ?, ?)`,
			jobID, i, line, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetJobLogLines returns the processing log of a job in original order.
func GetJobLogLines(jobID string, limit int) ([]string, error) {
	rows, err := db.Query(`SELECT line FROM job_logs WHERE job_id = ? ORDER BY line_no LIMIT ?`, jobID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// SaveJobSummary stores the counters of one processing pass.
func SaveJobSummary(jobID string, summary model.Summary) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT OR REPLACE INTO job_summary
		(job_id, total_rows, matches_found, click_url_updates, impression_url_updates, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, summary.TotalRows, summary.MatchesFound, summary.ClickURLUpdates, summary.ImpressionURLUpdates, now)
	return err
}

// GetJobSummary fetches the counters of a job's processing pass.
func GetJobSummary(jobID string) (model.Summary, error) {
	var summary model.Summary
	err := db.QueryRow(`SELECT total_rows, matches_found, click_url_updates, impression_url_updates
		FROM job_summary WHERE job_id = ?`, jobID).
		Scan(&summary.TotalRows, &summary.MatchesFound, &summary.ClickURLUpdates, &summary.ImpressionURLUpdates)
	return summary, err
}

// SaveOutputFile records an output file produced by a job.
func SaveOutputFile(jobID, fileName, filePath, fileType string, fileSize int64) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO output_files (job_id, file_name, file_path, file_type, file_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, fileName, filePath, fileType, fileSize, now)
	return err
}

// GetOutputFiles returns all recorded output files for a job.
func GetOutputFiles(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT file_name, file_path, file_type, file_size, created_at
		FROM output_files WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []map[string]interface{}
	for rows.Next() {
		var name, path, ftype string
		var size int64
		var createdAt time.Time
		if err := rows.Scan(&name, &path, &ftype, &size, &createdAt); err != nil {
			return nil, err
		}
		files = append(files, map[string]interface{}{
			"file_name":  name,
			"file_path":  path,
			"file_type":  ftype,
			"file_size":  size,
			"created_at": createdAt,
		})
	}
	return files, rows.Err()
}

// DeleteJob removes a job and everything recorded for it.
func DeleteJob(jobID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM job_logs WHERE job_id = ?`,
		`DELETE FROM job_summary WHERE job_id = ?`,
		`DELETE FROM job_errors WHERE job_id = ?`,
		`DELETE FROM output_files WHERE job_id = ?`,
		`DELETE FROM jobs WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, jobID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
