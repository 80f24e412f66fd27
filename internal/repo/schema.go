/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package repo

// The surrounding admin screens own these tables; Migrate only exists so a
// fresh database (dev, tests) has something to read.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS content_status (
		id BIGSERIAL PRIMARY KEY,
		module_code TEXT NOT NULL,
		feature_code TEXT NOT NULL,
		workflow_status TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT 'medium',
		documentation_status TEXT NOT NULL DEFAULT 'not_started',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS content_status_stage_idx ON content_status(workflow_status, updated_at)`,
	`CREATE TABLE IF NOT EXISTS published_manuals (
		id BIGSERIAL PRIMARY KEY,
		manual_id TEXT NOT NULL,
		manual_name TEXT NOT NULL DEFAULT '',
		published_version TEXT NOT NULL DEFAULT '',
		source_version TEXT NOT NULL DEFAULT '',
		sections_published INTEGER NOT NULL DEFAULT 0,
		changelog TEXT[],
		published_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		status TEXT NOT NULL DEFAULT 'current'
	)`,
	`CREATE TABLE IF NOT EXISTS quickstart_guides (
		id BIGSERIAL PRIMARY KEY,
		module_code TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft'
	)`,
	`CREATE TABLE IF NOT EXISTS release_lifecycle (
		id INTEGER PRIMARY KEY,
		base_version TEXT NOT NULL,
		version_freeze_enabled BOOLEAN NOT NULL DEFAULT false,
		release_status TEXT NOT NULL DEFAULT 'pre-release',
		milestones JSONB NOT NULL DEFAULT '[]',
		target_ga_date DATE,
		last_readiness_score DOUBLE PRECISION
	)`,
}

// SQLite keeps timestamps as text (any layout in timeLayouts) and arrays as
// JSON text.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS content_status (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		module_code TEXT NOT NULL,
		feature_code TEXT NOT NULL,
		workflow_status TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT 'medium',
		documentation_status TEXT NOT NULL DEFAULT 'not_started',
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS content_status_stage_idx ON content_status(workflow_status, updated_at)`,
	`CREATE TABLE IF NOT EXISTS published_manuals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		manual_id TEXT NOT NULL,
		manual_name TEXT NOT NULL DEFAULT '',
		published_version TEXT NOT NULL DEFAULT '',
		source_version TEXT NOT NULL DEFAULT '',
		sections_published INTEGER NOT NULL DEFAULT 0,
		changelog TEXT,
		published_at TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'current'
	)`,
	`CREATE TABLE IF NOT EXISTS quickstart_guides (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		module_code TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft'
	)`,
	`CREATE TABLE IF NOT EXISTS release_lifecycle (
		id INTEGER PRIMARY KEY,
		base_version TEXT NOT NULL,
		version_freeze_enabled INTEGER NOT NULL DEFAULT 0,
		release_status TEXT NOT NULL DEFAULT 'pre-release',
		milestones TEXT NOT NULL DEFAULT '[]',
		target_ga_date TEXT,
		last_readiness_score REAL
	)`,
}
