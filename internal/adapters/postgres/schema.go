package postgres

import _ "embed"

// Schema is the affiliates table definition. It is applied by deployment
// tooling and by the test harness; the statements are idempotent.
//
//go:embed migrations/0001_create_affiliates.sql
var Schema string
