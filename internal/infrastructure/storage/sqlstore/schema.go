package sqlstore

// Timestamps are fixed-width UTC text in both dialects; ORDER BY relies on it.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS evaluations (
		id           TEXT    PRIMARY KEY,
		user_id      TEXT    NOT NULL,
		project_name TEXT    NOT NULL,
		description  TEXT    NOT NULL,
		target_users TEXT    NOT NULL DEFAULT '',
		features     TEXT    NOT NULL DEFAULT '[]',
		constraints  TEXT    NOT NULL DEFAULT '[]',
		model_id     TEXT    NOT NULL,
		status       TEXT    NOT NULL,
		total_score  INTEGER,
		created_at   TEXT    NOT NULL,
		completed_at TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS evaluation_metrics (
		id                TEXT    PRIMARY KEY,
		evaluation_id     TEXT    NOT NULL,
		clarity_score     INTEGER NOT NULL,
		capability_score  INTEGER NOT NULL,
		objectivity_score INTEGER NOT NULL,
		data_score        INTEGER NOT NULL,
		tolerance_score   INTEGER NOT NULL,
		matrix_x          INTEGER NOT NULL,
		matrix_y          INTEGER NOT NULL,
		zone              TEXT    NOT NULL,
		suggestions       TEXT    NOT NULL DEFAULT '[]',
		risks             TEXT    NOT NULL DEFAULT '[]',
		reasoning         TEXT    NOT NULL DEFAULT '',
		created_at        TEXT    NOT NULL,
		FOREIGN KEY (evaluation_id) REFERENCES evaluations(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_metrics_evaluation ON evaluation_metrics(evaluation_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS evaluations (
		id           VARCHAR(64)  NOT NULL,
		user_id      VARCHAR(64)  NOT NULL,
		project_name VARCHAR(255) NOT NULL,
		description  TEXT         NOT NULL,
		target_users TEXT         NOT NULL,
		features     JSON         NOT NULL,
		constraints  JSON         NOT NULL,
		model_id     VARCHAR(128) NOT NULL,
		status       VARCHAR(32)  NOT NULL,
		total_score  INT,
		created_at   VARCHAR(40)  NOT NULL,
		completed_at VARCHAR(40),
		PRIMARY KEY (id),
		INDEX idx_evaluations_created (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS evaluation_metrics (
		id                VARCHAR(64) NOT NULL,
		evaluation_id     VARCHAR(64) NOT NULL,
		clarity_score     INT         NOT NULL,
		capability_score  INT         NOT NULL,
		objectivity_score INT         NOT NULL,
		data_score        INT         NOT NULL,
		tolerance_score   INT         NOT NULL,
		matrix_x          INT         NOT NULL,
		matrix_y          INT         NOT NULL,
		zone              VARCHAR(32) NOT NULL,
		suggestions       JSON        NOT NULL,
		risks             JSON        NOT NULL,
		reasoning         TEXT        NOT NULL,
		created_at        VARCHAR(40) NOT NULL,
		PRIMARY KEY (id),
		INDEX idx_metrics_evaluation (evaluation_id),
		FOREIGN KEY (evaluation_id) REFERENCES evaluations(id)
	)`,
}
