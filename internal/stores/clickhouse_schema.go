package stores

// Schema is applied on startup and safe to run repeatedly. The rollup table
// and its materialized view maintain per-repo {count, earliest, latest} over
// PR-opened events so AveragePRInterval can avoid scanning raw rows.
var clickHouseSchema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		event_id    String,
		event_type  LowCardinality(String),
		repo_name   String,
		repo_id     Int64,
		created_at  DateTime64(3, 'UTC'),
		action      LowCardinality(String),
		ingested_at DateTime64(3, 'UTC')
	) ENGINE = MergeTree
	ORDER BY (event_type, repo_name, created_at)`,

	`CREATE TABLE IF NOT EXISTS pr_opened_rollup (
		repo_name String,
		pr_count  AggregateFunction(count),
		first_pr  AggregateFunction(min, DateTime64(3, 'UTC')),
		last_pr   AggregateFunction(max, DateTime64(3, 'UTC'))
	) ENGINE = AggregatingMergeTree
	ORDER BY repo_name`,

	`CREATE MATERIALIZED VIEW IF NOT EXISTS pr_opened_rollup_mv TO pr_opened_rollup AS
	SELECT
		repo_name,
		countState()          AS pr_count,
		minState(created_at)  AS first_pr,
		maxState(created_at)  AS last_pr
	FROM events
	WHERE event_type = 'PullRequestEvent' AND action = 'opened'
	GROUP BY repo_name`,
}
