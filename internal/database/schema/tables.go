package schema

// TableDefinitions contains the SQL statements to create the CRM tables.
// Referential integrity lives in the engine: uniqueness on users.username
// and leads.phone, and cascade deletes from leads to their children, hold
// even under concurrent writers.
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(100),
		role VARCHAR(50) NOT NULL DEFAULT 'Staff',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(20) UNIQUE NOT NULL,
		email VARCHAR(100),
		event_type VARCHAR(50),
		guests_count INTEGER,
		event_date DATE,
		venue VARCHAR(200),
		notes TEXT,
		stage VARCHAR(50) NOT NULL DEFAULT 'New',
		created_by BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id BIGSERIAL PRIMARY KEY,
		type VARCHAR(50) NOT NULL,
		content TEXT,
		lead_id BIGINT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS followups (
		id BIGSERIAL PRIMARY KEY,
		scheduled_at TIMESTAMP NOT NULL,
		note TEXT,
		lead_id BIGINT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attachments (
		id BIGSERIAL PRIMARY KEY,
		filename VARCHAR(255) NOT NULL,
		file_path VARCHAR(500) NOT NULL,
		lead_id BIGINT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		action VARCHAR(100) NOT NULL,
		details JSONB,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_lead_id ON activities(lead_id)`,
	`CREATE INDEX IF NOT EXISTS idx_followups_lead_id ON followups(lead_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attachments_lead_id ON attachments(lead_id)`,
}
