package store

// Schema for run history and enriched contacts. Multi-valued fields
// (emails, phones) are stored joined with "; " to match the CSV exports.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at DATETIME NOT NULL,
    total_messages INTEGER NOT NULL DEFAULT 0,
    total_contacts INTEGER NOT NULL DEFAULT 0,
    high_quality INTEGER NOT NULL DEFAULT 0,
    medium_quality INTEGER NOT NULL DEFAULT 0,
    low_quality INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_categories (
    run_id TEXT NOT NULL,
    category TEXT NOT NULL,
    message_count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, category),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS contacts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    lead_score INTEGER NOT NULL DEFAULT 0,
    name TEXT,
    primary_email TEXT NOT NULL,
    emails TEXT,
    primary_phone TEXT,
    phones TEXT,
    title TEXT,
    company TEXT,
    domain TEXT,
    is_free_email BOOLEAN DEFAULT 0,
    response_type TEXT,
    category TEXT,
    original_subject TEXT,
    date TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contacts_run ON contacts(run_id);
CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(primary_email);
CREATE INDEX IF NOT EXISTS idx_contacts_score ON contacts(lead_score DESC);
`
