// Durable record of completed analyses
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"gcode-inspect/pkg/analysis"
)

// Store keeps one row per analyzed file in a sqlite database.
type Store struct {
	db *sql.DB
}

// Record is one stored analysis result.
type Record struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Lines            int       `json:"lines"`
	PrePrintStart    int       `json:"pre_print_start"`
	PrePrintEnd      int       `json:"pre_print_end"`
	PostPrintStart   int       `json:"post_print_start"`
	PostPrintEnd     int       `json:"post_print_end"`
	Planar           bool      `json:"planar"`
	FirstLayerHeight int64     `json:"first_layer_height_um"`
	LayerHeight      int64     `json:"layer_height_um"`
	CreatedAt        time.Time `json:"created_at"`
}

// Open creates or opens the database at path and ensures the schema.
// ":memory:" gives an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			lines INT NOT NULL,
			pre_start INT NOT NULL,
			pre_end INT NOT NULL,
			post_start INT NOT NULL,
			post_end INT NOT NULL,
			planar INT NOT NULL,
			first_layer_um INT NOT NULL,
			layer_um INT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordAnalysis inserts one completed analysis and returns its row id.
func (s *Store) RecordAnalysis(name string, rep analysis.Report) (int64, error) {
	planar := 0
	if rep.Planar {
		planar = 1
	}
	res, err := s.db.Exec(`
		INSERT INTO analyses
			(name, lines, pre_start, pre_end, post_start, post_end, planar, first_layer_um, layer_um)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, rep.Lines,
		rep.PrePrint.Start, rep.PrePrint.End,
		rep.PostPrint.Start, rep.PostPrint.End,
		planar, int64(rep.FirstLayerHeight), int64(rep.LayerHeight),
	)
	if err != nil {
		return 0, fmt.Errorf("history: record %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: record %q: %w", name, err)
	}
	return id, nil
}

// Recent returns up to n records, newest first.
func (s *Store) Recent(n int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, name, lines, pre_start, pre_end, post_start, post_end,
		       planar, first_layer_um, layer_um, created_at
		FROM analyses ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var planar int
		if err := rows.Scan(&r.ID, &r.Name, &r.Lines,
			&r.PrePrintStart, &r.PrePrintEnd,
			&r.PostPrintStart, &r.PostPrintEnd,
			&planar, &r.FirstLayerHeight, &r.LayerHeight, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		r.Planar = planar != 0
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: rows: %w", err)
	}
	return out, nil
}
