package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Export queries

//go:embed sql/insert_export.sql
var InsertExportSQL string

//go:embed sql/update_export_finished.sql
var UpdateExportFinishedSQL string

//go:embed sql/select_exports.sql
var SelectExportsSQL string

//go:embed sql/select_exports_by_input.sql
var SelectExportsByInputSQL string

//go:embed sql/select_export_by_job.sql
var SelectExportByJobSQL string

//go:embed sql/mark_stale_exports.sql
var MarkStaleExportsSQL string

//go:embed sql/delete_exports.sql
var DeleteExportsSQL string
