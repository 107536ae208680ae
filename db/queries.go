package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Video queries

//go:embed sql/upsert_video.sql
var UpsertVideoSQL string

//go:embed sql/select_video_by_path.sql
var SelectVideoByPathSQL string

//go:embed sql/update_video_duration.sql
var UpdateVideoDurationSQL string

//go:embed sql/select_recent_videos.sql
var SelectRecentVideosSQL string

// Export lifecycle queries

//go:embed sql/insert_export_pending.sql
var InsertExportPendingSQL string

//go:embed sql/mark_export_processing.sql
var MarkExportProcessingSQL string

//go:embed sql/mark_export_complete.sql
var MarkExportCompleteSQL string

//go:embed sql/mark_export_error.sql
var MarkExportErrorSQL string

//go:embed sql/select_export_by_id.sql
var SelectExportByIDSQL string

//go:embed sql/select_recent_exports.sql
var SelectRecentExportsSQL string
