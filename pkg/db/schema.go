package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- URLs table: normalized URL components
CREATE TABLE IF NOT EXISTS urls (
    url_id INTEGER PRIMARY KEY AUTOINCREMENT,
    original_url TEXT NOT NULL UNIQUE,
    scheme TEXT NOT NULL,
    domain TEXT NOT NULL,
    path TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_urls_domain ON urls(domain);

-- Runs: one row per scrape invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    base_url TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    page_count INTEGER NOT NULL,
    failed_count INTEGER DEFAULT 0,
    chunk_count INTEGER DEFAULT 0,
    output_path TEXT NOT NULL,
    status TEXT NOT NULL          -- running, completed, failed, interrupted
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

-- Page results: every page attempt within a run
CREATE TABLE IF NOT EXISTS page_results (
    result_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    url_id INTEGER NOT NULL,
    status TEXT NOT NULL,         -- ok, skipped, failed
    status_code INTEGER DEFAULT 0,
    error_type TEXT,
    error_message TEXT,
    word_count INTEGER DEFAULT 0,
    chunk_count INTEGER DEFAULT 0,
    attempted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    FOREIGN KEY (url_id) REFERENCES urls(url_id)
);

CREATE INDEX IF NOT EXISTS idx_page_results_run ON page_results(run_id);
`
