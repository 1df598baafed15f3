package migrations

import "empleos/common/database/schema"

var CreateJobPostingsTable = schema.Migration{
	Version:     1,
	Description: "Create job_postings table",
	Up: `
		CREATE TABLE IF NOT EXISTS job_postings (
			id UUID,
			source_platform LowCardinality(String),
			platform_job_id String,
			listing_url String,
			company_name String,
			sector LowCardinality(String),
			company_size String,
			exact_location LowCardinality(String),
			verified Bool,
			title String,
			seniority_level LowCardinality(String),
			area LowCardinality(String),
			modality LowCardinality(String),
			contract_type LowCardinality(String),
			work_schedule LowCardinality(String),
			salary_min Nullable(Float64),
			salary_max Nullable(Float64),
			salary_period LowCardinality(String),
			currency LowCardinality(String),
			benefits Array(String),
			years_experience Nullable(Int32),
			min_education LowCardinality(String),
			technical_skills Array(String),
			soft_skills Array(String),
			languages_required Array(String),
			posting_date String,
			scrape_date Date,
			status LowCardinality(String),
			ingested_at DateTime
		) ENGINE = ReplacingMergeTree(ingested_at)
		PARTITION BY toYYYYMM(scrape_date)
		ORDER BY (id)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS job_postings`,
}

// All lists every migration in version order.
var All = []schema.Migration{
	CreateJobPostingsTable,
}
