// Command seed_catalog loads catalog sections from a JSON dump into
// Postgres. It upserts by CRN so re-running against a newer dump
// refreshes existing rows.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/openclass/planner-api/internal/models"
	"github.com/openclass/planner-api/pkg/config"
	"github.com/openclass/planner-api/pkg/database"
)

const upsertSection = `
	INSERT INTO sections (crn, course_id, course, title, credits, instruction_method, instruction_type, term, days, start_time, end_time, instructors)
	VALUES (:crn, :course_id, :course, :title, :credits, :instruction_method, :instruction_type, :term, :days, :start_time, :end_time, :instructors)
	ON CONFLICT (crn) DO UPDATE SET
		course_id = EXCLUDED.course_id,
		course = EXCLUDED.course,
		title = EXCLUDED.title,
		credits = EXCLUDED.credits,
		instruction_method = EXCLUDED.instruction_method,
		instruction_type = EXCLUDED.instruction_type,
		term = EXCLUDED.term,
		days = EXCLUDED.days,
		start_time = EXCLUDED.start_time,
		end_time = EXCLUDED.end_time,
		instructors = EXCLUDED.instructors`

func main() {
	var (
		path    string
		timeout time.Duration
	)

	flag.StringVar(&path, "file", "catalog.json", "Path to the catalog JSON dump")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall import timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	sections, err := loadSections(path)
	if err != nil {
		log.Fatalf("failed to read catalog dump: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		log.Fatalf("failed to begin transaction: %v", err)
	}

	for i := range sections {
		if _, err := tx.NamedExecContext(ctx, upsertSection, &sections[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			log.Fatalf("failed to upsert section %s: %v", sections[i].CRN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("failed to commit: %v", err)
	}

	log.Printf("imported %d sections from %s", len(sections), path)
}

func loadSections(path string) ([]models.Section, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sections []models.Section
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}
